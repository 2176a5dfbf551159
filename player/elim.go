package player

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/state"
)

// contains32 reports whether x appears in xs.
func contains32(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// updateMap removes id as a possibility from every order still holding
// it as a candidate in idMap, except orders held by an excluded seat or
// already certain_map-backed against it. It returns whether any Thought
// changed, and the set of identities that became newly certain as a
// side effect (a Thought that collapsed to a single possibility).
func (p *Player) updateMap(id identity.Identity, exclude []int) (bool, []identity.Identity) {
	changed := false
	var recursive []identity.Identity

	candidates, ok := p.idMap[id]
	if !ok {
		return false, nil
	}

	var kept []idEntry
	var crossRemovals []int
	for _, e := range candidates {
		noElim := contains32(exclude, e.playerIndex)
		if !noElim {
			if certains, ok := p.certainMap[id]; ok {
				for _, c := range certains {
					if c.order == e.order || contains32(c.unknownTo, e.playerIndex) {
						noElim = true
						break
					}
				}
			}
		}
		if noElim {
			kept = append(kept, e)
			continue
		}

		t := p.Thoughts[e.order]
		changed = true
		t.Inferred = t.Inferred.Without(id)
		t.Possible = t.Possible.Without(id)

		if t.Possible.IsEmpty() && !t.Reset {
			t.ResetInferences()
		} else if rid, ok := t.Possible.Only(); ok {
			p.certainMap[rid] = append(p.certainMap[rid], matchEntry{order: e.order})
			recursive = append(recursive, rid)
			crossRemovals = append(crossRemovals, e.order)
		}
	}
	p.idMap[id] = kept

	if len(crossRemovals) > 0 {
		var retained []idEntry
		for _, c := range p.crossElimCandidates {
			if !contains32(crossRemovals, c.order) {
				retained = append(retained, c)
			}
		}
		p.crossElimCandidates = retained
	}

	return changed, recursive
}

// basicCardElim is the core empathy operation (§4.5.1): once every
// remaining copy of an identity is accounted for by certain knowledge,
// it is removed as a possibility everywhere else, including future
// draws.
func (p *Player) basicCardElim(s *state.State, ids map[identity.Identity]bool) bool {
	changed := false
	recursive := make(map[identity.Identity]bool)

	for id := range ids {
		known := s.BaseCount(id) + len(p.certainMap[id])
		if known == s.CardCount(id) {
			innerChanged, innerRecursive := p.updateMap(id, nil)
			changed = changed || innerChanged
			for _, r := range innerRecursive {
				recursive[r] = true
			}
		}
	}

	if len(recursive) > 0 {
		p.basicCardElim(s, recursive)
	}

	return changed
}

// performCrossElim applies one "sudoku" deduction for a candidate
// subset of cards whose combined possibilities exactly match the
// remaining multiplicity of ids (§4.5.2): the identities in ids must be
// distributed among exactly these orders, so every other order can
// have them removed as a possibility.
func (p *Player) performCrossElim(s *state.State, entries []idEntry, ids map[identity.Identity]bool) bool {
	changed := false

	groups := make(map[identity.Identity][]idEntry)
	for _, e := range entries {
		c := s.Deck[e.order]
		if c.Base == nil {
			continue
		}
		groups[*c.Base] = append(groups[*c.Base], e)
	}

	for id, group := range groups {
		certains := 0
		if c, ok := p.certainMap[id]; ok {
			for _, m := range c {
				inGroup := false
				for _, g := range group {
					if g.order == m.order {
						inGroup = true
						break
					}
				}
				if !inGroup {
					certains++
				}
			}
		}

		if _, ok := p.idMap[id]; !ok {
			continue
		}
		remaining := s.RemainingMultiplicity([]identity.Identity{id})
		if len(group) < remaining-certains {
			continue
		}

		var exclude []int
		for _, g := range group {
			exclude = append(exclude, g.playerIndex)
		}
		innerChanged, _ := p.updateMap(id, exclude)
		changed = changed || innerChanged
	}

	var allExclude []int
	for _, e := range entries {
		allExclude = append(allExclude, e.playerIndex)
	}
	for id := range ids {
		if _, ok := p.idMap[id]; !ok {
			continue
		}
		innerChanged, _ := p.updateMap(id, allExclude)
		changed = changed || innerChanged
	}

	return p.basicCardElim(s, ids) || changed
}

// crossCardElimState threads the recursive subset search's accumulator
// arguments, mirroring the reference's recursive signature in a shape
// Go can express without repeating five parameters at every call site.
type crossCardElimState struct {
	contained []idEntry
	accIDs    map[identity.Identity]bool
	certains  map[int]bool
}

// crossCardElim performs a bounded subset search over crossElimCandidates
// looking for a group whose combined possibility count exactly matches
// the remaining multiplicity of the identities it spans (§4.5.2). The
// search is exponential in the candidate count in the worst case, like
// the reference; crossElimCandidates is pruned to plausible-card orders
// (1-10 possibilities, not already basic trash) to keep it small in
// practice.
func (p *Player) crossCardElim(s *state.State, st crossCardElimState, nextIndex int) bool {
	if len(p.crossElimCandidates) == 1 {
		return false
	}

	idList := make([]identity.Identity, 0, len(st.accIDs))
	for id := range st.accIDs {
		idList = append(idList, id)
	}
	multiplicity := s.RemainingMultiplicity(idList)

	if multiplicity-len(st.certains) > len(st.contained)+(len(p.crossElimCandidates)-nextIndex) {
		return false
	}

	if len(st.contained) >= 2 && multiplicity-len(st.certains) == len(st.contained) {
		if p.performCrossElim(s, st.contained, st.accIDs) {
			return true
		}
	}

	if nextIndex >= len(p.crossElimCandidates) {
		return false
	}

	item := p.crossElimCandidates[nextIndex]
	t := p.Thoughts[item.order]

	newAccIDs := make(map[identity.Identity]bool, len(st.accIDs))
	for id := range st.accIDs {
		newAccIDs[id] = true
	}
	for _, id := range t.Possible.ToSlice() {
		newAccIDs[id] = true
	}

	nextContained := append(append([]idEntry{}, st.contained...), item)

	newCertains := make(map[int]bool, len(st.certains))
	for id := range st.certains {
		newCertains[id] = true
	}
	for _, id := range t.Possible.ToSlice() {
		if st.accIDs[id] {
			continue
		}
		for _, m := range p.certainMap[id] {
			newCertains[m.order] = true
		}
	}
	for _, e := range nextContained {
		delete(newCertains, e.order)
	}

	if p.crossCardElim(s, crossCardElimState{contained: nextContained, accIDs: newAccIDs, certains: newCertains}, nextIndex+1) {
		return true
	}

	return p.crossCardElim(s, crossCardElimState{contained: st.contained, accIDs: st.accIDs, certains: st.certains}, nextIndex+1)
}

// allIdentitySet turns a variant's identity universe into a lookup set
// for the elimination passes below.
func allIdentitySet(s *state.State) map[identity.Identity]bool {
	out := make(map[identity.Identity]bool)
	for _, id := range s.Variant.AllIdentities() {
		out[id] = true
	}
	return out
}

// CardElim rebuilds this viewpoint's certainty bookkeeping from scratch
// and applies basic and cross elimination to a fixpoint (§4.5.1-4.5.2).
// Call after any clue, draw, play, or discard changes what's knowable.
func (p *Player) CardElim(s *state.State) {
	p.certainMap = make(map[identity.Identity][]matchEntry)
	p.idMap = make(map[identity.Identity][]idEntry)
	p.crossElimCandidates = nil

	for playerIndex := 0; playerIndex < s.NumPlayers; playerIndex++ {
		for _, order := range s.Hands[playerIndex] {
			t := p.Thoughts[order]
			if t == nil {
				continue
			}
			id, ok := p.IdentityOf(order, false)

			var unknownTo []int
			if _, symOK := t.Identity(card.IDOptions{Symmetric: true}); !symOK {
				unknownTo = []int{playerIndex}
			}

			if ok {
				p.certainMap[id] = append(p.certainMap[id], matchEntry{order: order, unknownTo: unknownTo})
			}

			possible := t.Possible.ToSlice()
			if n := len(possible); n >= 1 && n <= 10 {
				hasNonTrash := false
				for _, pid := range possible {
					if !s.IsBasicTrash(pid) {
						hasNonTrash = true
						break
					}
				}
				if hasNonTrash {
					p.crossElimCandidates = append(p.crossElimCandidates, idEntry{order: order, playerIndex: playerIndex})
				}
			}

			for _, pid := range possible {
				p.idMap[pid] = append(p.idMap[pid], idEntry{order: order, playerIndex: playerIndex})
			}
		}
	}

	all := allIdentitySet(s)
	p.basicCardElim(s, all)
	for p.crossCardElim(s, crossCardElimState{accIDs: map[identity.Identity]bool{}, certains: map[int]bool{}}, 0) {
	}
}
