package game

import "hanabi-reactor-server/card"

// runElim is the unified pass every action handler runs after its own
// State/Thought bookkeeping (§4.4): rebuild card elimination for every
// viewpoint, optionally apply good-touch elimination, re-validate
// links, recompute hypo stacks, and drop any "called to play" status
// that no longer survives the fresh elimination.
func (g *Game) runElim(goodTouch bool) {
	f := g.Frame()
	for _, p := range g.allViewpoints() {
		p.CardElim(g.State)
		if goodTouch {
			p.GoodTouchElim(f)
		}
		p.RefreshLinks(f, goodTouch)
		p.UpdateHypoStacks(f)
	}
	g.resetStaleCalledToPlay()
}

// resetStaleCalledToPlay clears a CalledToPlay status whenever the
// common viewpoint's surviving possibilities for that order are no
// longer unanimously playable — the elim pass may have ruled out the
// identity the call depended on (§4.4).
func (g *Game) resetStaleCalledToPlay() {
	for order, m := range g.Meta {
		if m.Status != card.StatusCalledToPlay {
			continue
		}
		t, ok := g.Common.Thoughts[order]
		if !ok {
			continue
		}
		possible := t.Possibilities().ToSlice()
		if len(possible) == 0 {
			continue
		}
		for _, id := range possible {
			if !g.State.IsPlayable(id) {
				m.Clear()
				break
			}
		}
	}
}
