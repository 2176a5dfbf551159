package game

import (
	"hanabi-reactor-server/action"
	"hanabi-reactor-server/identity"
)

// onPlay handles an observed Play action (§4.4): the card leaves its
// hand and lands on its stack, every viewpoint collapses its belief
// about the order to the now-revealed identity, the elim pass runs,
// and the convention gets a chance to resolve any reaction it was
// waiting on.
func (g *Game) onPlay(pub action.Public) error {
	id := identity.Identity{SuitIndex: pub.SuitIndex, Rank: pub.Rank}
	reactSlot := slotIn(g.State.Hands[pub.PlayerIndex], pub.Order) + 1

	g.State.ApplyPlay(pub.PlayerIndex, pub.Order, id)

	for _, p := range g.allViewpoints() {
		p.ApplyReveal(pub.Order, id)
	}

	g.runElim(true)

	if g.Convention != nil {
		g.Convention.InterpretReaction(g, pub.PlayerIndex, pub.Order, reactSlot, true, id)
	}
	return nil
}

// slotIn returns order's 0-based position in hand, or -1.
func slotIn(hand []int, order int) int {
	for i, o := range hand {
		if o == order {
			return i
		}
	}
	return -1
}
