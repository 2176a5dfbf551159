package state

import "hanabi-reactor-server/card"

// Clone returns an independent deep copy, used before any hypothetical
// simulation step so the live game is never mutated by it (§5).
func (s *State) Clone() *State {
	clone := *s

	clone.Hands = make([][]int, len(s.Hands))
	for i, h := range s.Hands {
		clone.Hands[i] = append([]int(nil), h...)
	}

	clone.Deck = make([]*card.Card, len(s.Deck))
	for i, c := range s.Deck {
		if c != nil {
			clone.Deck[i] = c.Clone()
		}
	}

	clone.PlayStacks = append([]int(nil), s.PlayStacks...)
	clone.MaxRanks = append([]int(nil), s.MaxRanks...)

	clone.DiscardStacks = make([][][]int, len(s.DiscardStacks))
	for i, suit := range s.DiscardStacks {
		clone.DiscardStacks[i] = make([][]int, len(suit))
		for j, ranks := range suit {
			clone.DiscardStacks[i][j] = append([]int(nil), ranks...)
		}
	}

	if s.EndgameTurns != nil {
		n := *s.EndgameTurns
		clone.EndgameTurns = &n
	}

	clone.cardCount = append([]int(nil), s.cardCount...)

	return &clone
}
