package convention

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/game"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/variant"
)

// chopBefore mimics frame.ChopOrder but treats every order in touched
// as still unclued, recovering the chop as it stood immediately before
// this clue was applied (State.ApplyClue has already flipped Clued to
// true for them by the time a handler reaches here).
func chopBefore(f frame.Frame, hand []int, touched map[int]bool) int {
	for i := len(hand) - 1; i >= 0; i-- {
		order := hand[i]
		m := f.ConvOf(order)
		if m.Status != card.StatusNone {
			continue
		}
		if f.IsTouched(order) && !touched[order] {
			continue
		}
		return order
	}
	return -1
}

// nearestUnclued scans hand starting just before fromIdx toward the
// front (newer) for the first unclued, unmarked, not-already-touched
// slot — the "ref play" target (§4.6.2).
func nearestUnclued(f frame.Frame, hand []int, fromIdx int, touched map[int]bool) (int, bool) {
	for i := fromIdx - 1; i >= 0; i-- {
		order := hand[i]
		if touched[order] {
			continue
		}
		m := f.ConvOf(order)
		if f.IsTouched(order) || m.Status != card.StatusNone {
			continue
		}
		return order, true
	}
	return 0, false
}

// nearestUnclueAfter scans hand starting just after fromIdx toward the
// back (older) for the first unclued slot — the "ref discard" target.
func nearestUnclueAfter(f frame.Frame, hand []int, fromIdx int, touched map[int]bool) (int, bool) {
	for i := fromIdx + 1; i < len(hand); i++ {
		order := hand[i]
		if touched[order] {
			continue
		}
		m := f.ConvOf(order)
		if f.IsTouched(order) || m.Status != card.StatusNone {
			continue
		}
		return order, true
	}
	return 0, false
}

// refPlayInferred is the inferred set a colour-clue ref-play target
// gets: every suit's rank-1 identity except the clued suit's — the
// clue says "not this colour", and the convention reads a called-to-
// play slot left of focus as "some other suit's one."
func refPlayInferred(v *variant.Variant, clue variant.BaseClue) identity.Set {
	var ids []identity.Identity
	for suit := range v.Suits {
		if clue.Kind == variant.ClueColour && suit == clue.Value {
			continue
		}
		ids = append(ids, identity.Identity{SuitIndex: suit, Rank: 1})
	}
	return identity.FromSlice(ids)
}

// interpretStable implements §4.6.2 and its validity check. Returns
// false when the reading fails validity (caller may retry as a forced
// response inversion).
func (r *Reactor) interpretStable(g *game.Game, giver, target int, list []int, clue variant.BaseClue) bool {
	f := g.Frame()
	hand := g.State.Hands[target]

	touchedSet := make(map[int]bool, len(list))
	for _, o := range list {
		touchedSet[o] = true
	}
	newly := newlyTouched(g, list)
	chop := chopBefore(f, hand, touchedSet)

	// Trash promise / playable promise: a rank clue whose value makes
	// every suit's identity at that rank uniformly trash or playable.
	if clue.Kind == variant.ClueRank {
		allTrash, allPlayOrTrash := true, true
		for suit := range g.State.Variant.Suits {
			id := identity.Identity{SuitIndex: suit, Rank: clue.Value}
			if !g.State.IsBasicTrash(id) {
				allTrash = false
				if !g.State.IsPlayable(id) {
					allPlayOrTrash = false
				}
			}
		}
		if len(newly) > 0 {
			focus, _ := focusOf(hand, newly, chop)
			if allTrash {
				g.ConvOf(focus).Trash = true
				return true
			}
			if allPlayOrTrash {
				g.ConvOf(focus).Focused = true
				setCalled(g, focus, card.StatusCalledToPlay, giver)
				return true
			}
		}
	}

	// Lock: a rank clue that touches the pre-clue chop. Since
	// hasBetterStableAlternative always reports false, this branch is
	// taken whenever the chop is touched, whether or not other cards
	// were newly touched as well.
	if clue.Kind == variant.ClueRank && touchedSet[chop] {
		nonChopNewly := 0
		for _, o := range newly {
			if o != chop {
				nonChopNewly++
			}
		}
		if nonChopNewly == 0 || !r.hasBetterStableAlternative(g, target) {
			for _, order := range hand {
				if !f.IsTouched(order) && g.ConvOf(order).Status == card.StatusNone {
					setCalled(g, order, card.StatusChopMoved, giver)
				}
			}
			return true
		}
	}

	if len(newly) == 0 {
		// Reveal (§4.6.2): nothing newly touched. No call is issued
		// and nothing is recorded; the stable reading is accepted.
		return true
	}

	focus, _ := focusOf(hand, newly, chop)
	focusIdx := slotOf(hand, focus)

	if clue.Kind == variant.ClueRank {
		if g.Common.IsTrash(g.State, focus) {
			// Trash push: treat as ref play one slot left of focus.
			if target, ok := nearestUnclued(f, hand, focusIdx, touchedSet); ok {
				setCalled(g, target, card.StatusCalledToPlay, giver)
				g.Common.Thoughts[target].Inferred = refPlayInferred(g.State.Variant, clue)
			}
			return true
		}
		if target, ok := nearestUnclueAfter(f, hand, focusIdx, touchedSet); ok {
			setCalled(g, target, card.StatusCalledToDiscard, giver)
		}
		return r.validateStable(g, target)
	}

	// Colour clue: ref play.
	if playTarget, ok := nearestUnclued(f, hand, focusIdx, touchedSet); ok {
		setCalled(g, playTarget, card.StatusCalledToPlay, giver)
		g.ConvOf(playTarget).Focused = true
		t := g.Common.Thoughts[playTarget]
		if t != nil {
			t.Inferred = t.Inferred.Intersect(refPlayInferred(g.State.Variant, clue))
			if t.Inferred.IsEmpty() {
				t.Inferred = refPlayInferred(g.State.Variant, clue)
			}
		}
	}
	return r.validateStable(g, target)
}

// hasBetterStableAlternative is a conservative stand-in for the full
// "does a non-bad ref-play/ref-discard clue exist instead" validity
// check (§4.6.2): without re-running the giver's own candidate
// enumeration here, Lock is accepted whenever the chop is touched.
func (r *Reactor) hasBetterStableAlternative(g *game.Game, target int) bool {
	return false
}

// validateStable runs the §4.6.2 stable-validity check against every
// called order in target's hand, including orders called on earlier
// turns.
func (r *Reactor) validateStable(g *game.Game, target int) bool {
	for _, order := range g.State.Hands[target] {
		m := g.ConvOf(order)
		t := g.Common.Thoughts[order]
		if t == nil {
			continue
		}
		switch m.Status {
		case card.StatusCalledToPlay:
			consistent := false
			for _, id := range t.Inferred.ToSlice() {
				if c := g.State.Deck[order]; c.Base == nil || *c.Base == id {
					consistent = true
					break
				}
			}
			if !consistent && !t.Inferred.IsEmpty() {
				return false
			}
		case card.StatusCalledToDiscard:
			if c := g.State.Deck[order]; c.Base != nil && g.State.IsCritical(*c.Base) {
				return false
			}
		}
	}
	return true
}
