package player

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/identity"
)

// elimLink resolves a group of linked orders down to a single focused
// winner: the focus keeps id as its sole inference, every other order
// in the group loses id as a possibility (§4.5.4).
func (p *Player) elimLink(f frame.Frame, matches []int, focusedOrder int, id identity.Identity, goodTouch bool) {
	for _, order := range matches {
		t := p.Thoughts[order]
		if order == focusedOrder {
			t.Inferred = identity.Single(id)
		} else {
			t.Inferred = t.Inferred.Without(id)
		}

		if t.Inferred.IsEmpty() && !t.Reset {
			t.ResetInferences()
			if goodTouch {
				t.Inferred = t.Inferred.Filter(func(i identity.Identity) bool { return !f.State.IsBasicTrash(i) })
			}
		}
	}
}

// candidateOrders returns the hand(s) this viewpoint reasons about link
// membership over: every seat's hand for the common viewpoint, just
// this seat's own hand otherwise.
func (p *Player) candidateOrders(f frame.Frame) []int {
	if p.IsCommon {
		var all []int
		for _, hand := range f.State.Hands {
			all = append(all, hand...)
		}
		return all
	}
	return f.State.Hands[p.PlayerIndex]
}

// FindLinks scans for new groups of orders sharing an identical,
// small inferred set where the group is larger than the set itself —
// meaning at least one member must hold each inference, even though
// which member isn't yet known (§4.5.4).
func (p *Player) FindLinks(f frame.Frame, goodTouch bool) {
	linked := make(map[int]bool)
	for _, link := range p.Links {
		for _, o := range link.Orders {
			linked[o] = true
		}
	}

	var linkable []int
	for _, order := range p.candidateOrders(f) {
		t, ok := p.Thoughts[order]
		if !ok {
			continue
		}
		if _, known := t.Identity(card.IDOptions{}); known {
			continue
		}
		n := t.Inferred.Len()
		if n > 3 {
			continue
		}
		allTrash := true
		for _, id := range t.Inferred.ToSlice() {
			if !f.State.IsBasicTrash(id) {
				allTrash = false
				break
			}
		}
		if allTrash && n > 0 {
			continue
		}
		linkable = append(linkable, order)
	}

	for _, order := range linkable {
		if linked[order] {
			continue
		}
		t := p.Thoughts[order]

		var matches []int
		for _, o := range linkable {
			if p.Thoughts[o].Inferred.Equal(t.Inferred) {
				matches = append(matches, o)
			}
		}
		if len(matches) == 1 {
			continue
		}

		var focused []int
		for _, o := range matches {
			if f.ConvOf(o).Focused {
				focused = append(focused, o)
			}
		}

		if len(focused) == 1 && t.Inferred.Len() == 1 {
			id, _ := t.Inferred.Only()
			p.elimLink(f, matches, focused[0], id, goodTouch)
			continue
		}

		if len(matches) > t.Inferred.Len() {
			for _, o := range matches {
				linked[o] = true
			}
			p.Links = append(p.Links, card.Link{Orders: matches, IDs: t.Inferred})
		}
	}
}

// RefreshLinks re-validates every existing link against the current
// beliefs: a Promised link resolves once one candidate remains or the
// target's own possibilities rule out its suit; an Unpromised link is
// dropped if any member has since learned its true identity, or if any
// member lost one of the shared inferences entirely (a contradiction
// that means the link no longer holds). Surviving links are re-run
// through FindLinks in case clearing room revealed new groups.
func (p *Player) RefreshLinks(f frame.Frame, goodTouch bool) {
	var kept []card.Link

	for _, link := range p.Links {
		if link.Promised {
			resolved := false
			for _, o := range link.Orders {
				if p.Thoughts[o].Is(link.ID) {
					resolved = true
					break
				}
			}
			if resolved {
				continue
			}

			targetThought := p.Thoughts[link.Target]
			suitStillPossible := false
			for _, id := range targetThought.Possible.ToSlice() {
				if id.SuitIndex == link.ID.SuitIndex {
					suitStillPossible = true
					break
				}
			}
			if !suitStillPossible {
				continue
			}

			var viable []int
			for _, o := range link.Orders {
				if p.Thoughts[o].Possible.Contains(link.ID) {
					viable = append(viable, o)
				}
			}
			switch len(viable) {
			case 0:
				// Promise is unfulfillable under current beliefs; drop
				// it rather than carry a contradiction forward.
			case 1:
				p.Thoughts[viable[0]].Inferred = identity.Single(link.ID)
			default:
				kept = append(kept, card.Link{Orders: viable, Promised: true, ID: link.ID, Target: link.Target})
			}
			continue
		}

		revealed := false
		for _, o := range link.Orders {
			t := p.Thoughts[o]
			if _, known := t.Identity(card.IDOptions{}); known {
				revealed = true
				break
			}
			for _, id := range link.IDs.ToSlice() {
				if !t.Possible.Contains(id) {
					revealed = true
					break
				}
			}
			if revealed {
				break
			}
		}
		if revealed {
			continue
		}

		var focused []int
		for _, o := range link.Orders {
			if f.ConvOf(o).Focused {
				focused = append(focused, o)
			}
		}
		if len(focused) == 1 && link.IDs.Len() == 1 {
			id, _ := link.IDs.Only()
			p.elimLink(f, link.Orders, focused[0], id, goodTouch)
		}

		lostInference := false
		for _, id := range link.IDs.ToSlice() {
			for _, o := range link.Orders {
				if !p.Thoughts[o].Inferred.Contains(id) {
					lostInference = true
					break
				}
			}
			if lostInference {
				break
			}
		}
		if lostInference {
			continue
		}

		kept = append(kept, link)
	}

	p.Links = kept
	p.FindLinks(f, goodTouch)
}
