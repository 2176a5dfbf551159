package player

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/frame"
)

// UpdateHypoStacks recomputes each suit's hypothetical play stack
// (§4.5.5): starting from the real stacks, advance each suit as long as
// some still-in-hand order is, under this viewpoint, certainly that
// suit's next rank — the same lookahead a finesse relies on to treat an
// earlier, not-yet-played card as already accounted for.
func (p *Player) UpdateHypoStacks(f frame.Frame) {
	numSuits := len(f.State.Variant.Suits)
	stacks := make([]int, numSuits)
	copy(stacks, f.State.PlayStacks)

	var liveOrders []int
	for _, hand := range f.State.Hands {
		liveOrders = append(liveOrders, hand...)
	}

	for {
		advanced := false
		for suit := 0; suit < numSuits; suit++ {
			for _, order := range liveOrders {
				t, ok := p.Thoughts[order]
				if !ok {
					continue
				}
				id, ok := t.Identity(card.IDOptions{Infer: true})
				if !ok || id.SuitIndex != suit {
					continue
				}
				if id.Rank == stacks[suit]+1 {
					stacks[suit]++
					advanced = true
					break
				}
			}
		}
		if !advanced {
			break
		}
	}

	p.HypoStacks = stacks
}
