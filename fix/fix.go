// Package fix implements the fix-clue detector (§4.6.5): deciding
// whether a clue's primary effect was to repair a previously-wrong
// belief rather than to call a play or discard. It stands alone from
// convention so the decision tree in §4.6.1 can consult it without
// convention depending on anything but game.
package fix

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/player"
	"hanabi-reactor-server/state"
)

// Snapshot captures whatever the detector needs to know about the
// pre-clue belief state: the inferred set of each already-clued order
// not already in the reset state (so a reset by the new clue can be
// recognized), and whether any two already-clued
// orders already resolved to the same identity (so a newly-created
// duplicate can be told apart from a pre-existing one).
type Snapshot struct {
	Inferred  map[int]identity.Set
	Duplicate bool
}

// Capture records the common-knowledge viewpoint's state for every
// already-clued order, before a new clue is applied.
func Capture(s *state.State, common *player.Player) Snapshot {
	snap := Snapshot{Inferred: make(map[int]identity.Set)}
	for _, hand := range s.Hands {
		for _, order := range hand {
			c := s.Deck[order]
			if c == nil || !c.Clued {
				continue
			}
			if t, ok := common.Thoughts[order]; ok && !t.Reset {
				snap.Inferred[order] = t.Inferred
			}
		}
	}
	snap.Duplicate = duplicateAmongClued(s, common)
	return snap
}

// duplicateAmongClued reports whether two already-clued orders resolve
// (symmetrically) to the same identity.
func duplicateAmongClued(s *state.State, common *player.Player) bool {
	seen := make(map[identity.Identity]int)
	for _, hand := range s.Hands {
		for _, order := range hand {
			c := s.Deck[order]
			if c == nil || !c.Clued {
				continue
			}
			t, ok := common.Thoughts[order]
			if !ok {
				continue
			}
			if id, ok := t.Identity(card.IDOptions{Symmetric: true}); ok {
				seen[id]++
			}
		}
	}
	for _, n := range seen {
		if n > 1 {
			return true
		}
	}
	return false
}

// Detect reports whether the clue just applied (State/Thoughts already
// updated, before captured beforehand) qualifies as a fix (§4.6.5):
// (a) a previously-clued order's inferences were reset by the new
// clue, or (b) the clue newly created a duplicate between two clued
// orders that didn't coincide before.
func Detect(s *state.State, common *player.Player, before Snapshot) bool {
	for order, prior := range before.Inferred {
		if prior.IsEmpty() {
			continue
		}
		t, ok := common.Thoughts[order]
		if ok && t.Reset {
			return true
		}
	}
	if !before.Duplicate && duplicateAmongClued(s, common) {
		return true
	}
	return false
}
