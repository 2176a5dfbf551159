package player

import (
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/state"
)

// ApplyClue narrows belief for one viewpoint after an observed Clue
// action (§4.4): touched orders have possible/inferred intersected with
// touchSet (every identity the clue could be true of); every other
// order in the receiver's hand, clued or not, has touchSet differenced
// out, since the clue did not touch it.
func (p *Player) ApplyClue(s *state.State, target int, list []int, touchSet identity.Set) {
	touched := make(map[int]bool, len(list))
	for _, o := range list {
		touched[o] = true
	}
	for _, order := range s.Hands[target] {
		t, ok := p.Thoughts[order]
		if !ok {
			continue
		}
		if touched[order] {
			t.Possible = t.Possible.Intersect(touchSet)
			t.Inferred = t.Inferred.Intersect(touchSet)
		} else {
			t.Possible = t.Possible.Difference(touchSet)
			t.Inferred = t.Inferred.Difference(touchSet)
		}
	}
}

// ApplyReveal collapses order's belief to the single now-known identity,
// used when a Play or Discard action reveals what was previously only
// inferred (§4.4 "collapse that order's possible/inferred to the
// singleton").
func (p *Player) ApplyReveal(order int, id identity.Identity) {
	t, ok := p.Thoughts[order]
	if !ok {
		return
	}
	t.Possible = identity.Single(id)
	t.Inferred = identity.Single(id)
}
