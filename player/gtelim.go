package player

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/identity"
)

// GoodTouchElim strips basic-trash identities out of every touched or
// chop-moved order's inferred set (§4.5.3). The fuller asymmetric
// good-touch principle — eliminating an inference elsewhere because
// every remaining holder of it was clued in a way that would be a lie
// otherwise — is deliberately not chased to a fixpoint here, matching
// the shipped behaviour this is adapted from: the cross-player
// reasoning it requires is expensive and rarely changes a real verdict,
// so only the unconditionally-safe trash removal runs automatically.
func (p *Player) GoodTouchElim(f frame.Frame) {
	p.certainMap = make(map[identity.Identity][]matchEntry)
	p.inferMap = make(map[identity.Identity][]matchEntry)

	var candidates []gtEntry
	for i := 0; i < f.State.NumPlayers; i++ {
		for _, order := range f.State.Hands[i] {
			t, ok := p.Thoughts[order]
			if !ok {
				continue
			}
			m := f.ConvOf(order)
			if m.Trash || t.Reset {
				continue
			}
			if _, known := t.Identity(card.IDOptions{Symmetric: true}); known {
				continue
			}

			hasNonTrash := false
			for _, id := range t.Possible.ToSlice() {
				if !f.State.IsBasicTrash(id) {
					hasNonTrash = true
					break
				}
			}
			if t.Inferred.IsEmpty() || !hasNonTrash {
				continue
			}

			if f.IsTouched(order) {
				candidates = append(candidates, gtEntry{order: order, playerIndex: i, cm: false})
			} else if m.ChopMoved() {
				candidates = append(candidates, gtEntry{order: order, playerIndex: i, cm: p.IsCommon})
			}
		}
	}

	trashIDs := make(map[identity.Identity]bool)
	for _, id := range f.State.Variant.AllIdentities() {
		if f.State.IsBasicTrash(id) {
			trashIDs[id] = true
		}
	}

	for _, e := range candidates {
		t := p.Thoughts[e.order]
		t.Inferred = t.Inferred.Filter(func(id identity.Identity) bool { return !trashIDs[id] })
		if !e.cm && t.Inferred.IsEmpty() && !t.Reset {
			t.ResetInferences()
		}
	}
}
