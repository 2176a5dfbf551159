package game

import (
	"hanabi-reactor-server/action"
	"hanabi-reactor-server/fix"
	"hanabi-reactor-server/identity"
)

// onClue handles an observed Clue action (§4.4): State marks the
// touched cards and spends a token, every viewpoint narrows belief
// about the target's hand, the unified elim pass runs with good-touch
// elimination enabled (a clue is exactly the event good-touch reasons
// about), and finally the convention gets to interpret what the clue
// means. The fix-detector snapshot is captured before any mutation so
// the convention can tell a repaired belief from one that was never
// wrong.
func (g *Game) onClue(pub action.Public) error {
	before := fix.Capture(g.State, g.Common)
	touchSet := identity.FromSlice(g.State.Variant.TouchPossibilities(pub.Clue))

	g.State.ApplyClue(pub.Giver, pub.Target, g.State.TurnCount, pub.List, pub.Clue)

	for _, p := range g.allViewpoints() {
		p.ApplyClue(g.State, pub.Target, pub.List, touchSet)
	}

	g.runElim(true)

	if g.Convention != nil {
		g.Convention.InterpretClue(g, pub.Giver, pub.Target, g.State.TurnCount, pub.List, pub.Clue, before)
	}
	return nil
}
