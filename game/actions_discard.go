package game

import (
	"hanabi-reactor-server/action"
	"hanabi-reactor-server/identity"
)

// onDiscard handles an observed Discard action (§4.4). A failed play
// also arrives here (Failed set, §6.1): the driver never emits a
// separate Play for a card that didn't land, so ApplyDiscard alone is
// the source of a strike.
func (g *Game) onDiscard(pub action.Public) error {
	id := identity.Identity{SuitIndex: pub.SuitIndex, Rank: pub.Rank}
	reactSlot := slotIn(g.State.Hands[pub.PlayerIndex], pub.Order) + 1

	g.State.ApplyDiscard(pub.PlayerIndex, pub.Order, id, pub.Failed)

	for _, p := range g.allViewpoints() {
		p.ApplyReveal(pub.Order, id)
	}

	g.runElim(true)

	if g.Convention != nil {
		g.Convention.InterpretReaction(g, pub.PlayerIndex, pub.Order, reactSlot, false, id)
	}
	return nil
}
