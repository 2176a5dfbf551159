// Package state holds the public game facts shared by every viewpoint:
// hands, the deck, stacks, tokens, and the turn counter (§3 "State").
package state

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/variant"

	"github.com/shopspring/decimal"
)

// State is the public, variant-scoped game state. It never holds a
// private belief — that lives in player.Player — only facts every
// viewpoint agrees on (plus, transiently, the Deck's true identities,
// which a given Thought may or may not yet know).
type State struct {
	Variant *variant.Variant

	TurnCount         int
	ClueTokens        decimal.Decimal // exact; avoids float drift under clue-starved halves (§9)
	Strikes           int
	Hands             [][]int // per player, newest-first
	Deck              []*card.Card
	PlayerNames       []string
	NumPlayers        int
	OurPlayerIndex    int
	CardOrder         int // serial number of the next card to draw
	CardsLeft         int
	PlayStacks        []int
	DiscardStacks     [][][]int // [suit][rank-1] -> orders discarded at that identity
	MaxRanks          []int
	CurrentPlayerIndex int
	EndgameTurns      *int // nil until the draw pile empties; then counts down

	cardCount []int // precomputed per-ordinal copy counts
}

// New builds the starting State for a fresh game.
func New(playerNames []string, ourPlayerIndex int, v *variant.Variant) *State {
	numPlayers := len(playerNames)
	numSuits := len(v.Suits)

	cardCount := make([]int, numSuits*5)
	cardsLeft := 0
	for _, id := range v.AllIdentities() {
		n := v.CardCount(id)
		cardCount[id.Ord()] = n
		cardsLeft += n
	}

	discardStacks := make([][][]int, numSuits)
	for i := range discardStacks {
		discardStacks[i] = make([][]int, 5)
	}

	maxRanks := make([]int, numSuits)
	for i := range maxRanks {
		maxRanks[i] = 5
	}

	return &State{
		Variant:           v,
		TurnCount:         0,
		ClueTokens:        decimal.NewFromInt(8),
		Strikes:           0,
		Hands:             make([][]int, numPlayers),
		Deck:              nil,
		PlayerNames:       playerNames,
		NumPlayers:        numPlayers,
		OurPlayerIndex:    ourPlayerIndex,
		CardOrder:         0,
		CardsLeft:         cardsLeft,
		PlayStacks:        make([]int, numSuits),
		DiscardStacks:     discardStacks,
		MaxRanks:          maxRanks,
		CurrentPlayerIndex: 0,
		EndgameTurns:      nil,
		cardCount:         cardCount,
	}
}

// HandSize is the standard per-seat hand size by player count.
func HandSize(numPlayers int) int {
	sizes := [7]int{0, 0, 5, 5, 4, 4, 3}
	if numPlayers < 0 || numPlayers >= len(sizes) {
		return 4
	}
	return sizes[numPlayers]
}

// Score returns the sum of the play stacks.
func (s *State) Score() int {
	total := 0
	for _, n := range s.PlayStacks {
		total += n
	}
	return total
}

// MaxScore returns the sum of the max playable ranks across suits.
func (s *State) MaxScore() int {
	total := 0
	for _, n := range s.MaxRanks {
		total += n
	}
	return total
}

// RemainingScore is how many points are still needed to reach MaxScore.
func (s *State) RemainingScore() int {
	return s.MaxScore() - s.Score()
}

// Pace is the number of discards still affordable before the maximum
// achievable score necessarily drops (§4.3).
func (s *State) Pace() int {
	return s.Score() + s.CardsLeft + s.NumPlayers - s.MaxScore()
}

// InEndgame reports whether the game has entered its tight final phase.
func (s *State) InEndgame() bool {
	return s.Pace() < s.NumPlayers || s.Score() >= s.MaxScore()-5
}

// Ended reports whether the game is over: three strikes, final score
// reached, or the post-draw-pile countdown has run out.
func (s *State) Ended() bool {
	if s.Strikes >= 3 || s.Score() == s.MaxScore() {
		return true
	}
	return s.EndgameTurns != nil && *s.EndgameTurns == 0
}

// IsBasicTrash reports whether id is already played or can never be
// played (its suit's stack has already passed, or been capped below,
// its rank).
func (s *State) IsBasicTrash(id identity.Identity) bool {
	return id.Rank <= s.PlayStacks[id.SuitIndex] || id.Rank > s.MaxRanks[id.SuitIndex]
}

// PlayableAway returns the signed distance from playable: 0 means
// immediately playable, negative means already played past.
func (s *State) PlayableAway(id identity.Identity) int {
	return id.Rank - (s.PlayStacks[id.SuitIndex] + 1)
}

// IsPlayable reports whether id can be played onto its stack right now.
func (s *State) IsPlayable(id identity.Identity) bool {
	return s.PlayableAway(id) == 0
}

// IsCritical reports whether id is not trash and exactly one copy of
// it remains unaccounted for (played or discarded).
func (s *State) IsCritical(id identity.Identity) bool {
	if s.IsBasicTrash(id) {
		return false
	}
	return len(s.DiscardStacks[id.SuitIndex][id.Rank-1]) == s.CardCount(id)-1
}

// CardCount returns the total copies of id in the deck for this variant.
func (s *State) CardCount(id identity.Identity) int {
	return s.cardCount[id.Ord()]
}

// BaseCount returns the number of copies of id already played or
// discarded (i.e. visibly "used up").
func (s *State) BaseCount(id identity.Identity) int {
	n := 0
	if s.PlayStacks[id.SuitIndex] >= id.Rank {
		n++
	}
	n += len(s.DiscardStacks[id.SuitIndex][id.Rank-1])
	return n
}

// RemainingMultiplicity sums, over ids, the copies not yet played or
// discarded — i.e. still somewhere in a hand or the draw pile.
func (s *State) RemainingMultiplicity(ids []identity.Identity) int {
	total := 0
	for _, id := range ids {
		total += s.CardCount(id) - s.BaseCount(id)
	}
	return total
}

// OurHand returns our own hand's order list.
func (s *State) OurHand() []int {
	return s.Hands[s.OurPlayerIndex]
}

// HolderOf returns the seat currently holding order, or -1 if no hand
// contains it (already played/discarded).
func (s *State) HolderOf(order int) int {
	for i, hand := range s.Hands {
		for _, o := range hand {
			if o == order {
				return i
			}
		}
	}
	return -1
}

// NextPlayerIndex returns the seat after player, wrapping around.
func (s *State) NextPlayerIndex(player int) int {
	return (player + 1) % s.NumPlayers
}

// LastPlayerIndex returns the seat before player, wrapping around.
func (s *State) LastPlayerIndex(player int) int {
	return (player + s.NumPlayers - 1) % s.NumPlayers
}

// CanClue reports whether at least one full clue token is available.
func (s *State) CanClue() bool {
	return s.ClueTokens.Cmp(decimal.NewFromInt(1)) >= 0
}

// RegainClue returns one token (or half, in clue-starved variants),
// capped at 8.
func (s *State) RegainClue() {
	gain := decimal.NewFromInt(1)
	if s.Variant.ClueStarved {
		gain = decimal.NewFromFloat(0.5)
	}
	s.ClueTokens = s.ClueTokens.Add(gain)
	if s.ClueTokens.Cmp(decimal.NewFromInt(8)) > 0 {
		s.ClueTokens = decimal.NewFromInt(8)
	}
}

// ClueTouched filters orders to those touched by clue.
func (s *State) ClueTouched(orders []int, clue variant.BaseClue) []int {
	var out []int
	for _, order := range orders {
		c := s.Deck[order]
		if c.Base != nil && s.Variant.IDTouched(*c.Base, clue) {
			out = append(out, order)
		}
	}
	return out
}

// AllValidClues enumerates every colour/rank clue that touches at
// least one card in target's hand (§B.2, used by move enumeration and
// the endgame solver's possible-actions builder).
func (s *State) AllValidClues(target int) []variant.BaseClue {
	var out []variant.BaseClue
	for rank := 1; rank <= 5; rank++ {
		clue := variant.BaseClue{Kind: variant.ClueRank, Value: rank}
		if len(s.ClueTouched(s.Hands[target], clue)) > 0 {
			out = append(out, clue)
		}
	}
	for i := range s.Variant.ColourableSuits() {
		clue := variant.BaseClue{Kind: variant.ClueColour, Value: i}
		if len(s.ClueTouched(s.Hands[target], clue)) > 0 {
			out = append(out, clue)
		}
	}
	return out
}

// LogID renders an identity using the active variant's short forms.
func (s *State) LogID(id identity.Identity) string {
	return s.Variant.LogID(id)
}

// Hash is a digest of each hand's orders (in hand order), every deck
// card's identity as recorded in Deck, clue tokens, and endgame_turns.
// Used as the endgame solver's memoization key (§9). Deck identities
// are hashed whether or not their holder can see them, so two states
// that differ only in a hidden card's identity hash differently.
func (s *State) Hash() uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	mix := func(x uint64) {
		h ^= x
		h *= 1099511628211 // FNV prime
	}
	for _, hand := range s.Hands {
		mix(uint64(len(hand)))
		for _, order := range hand {
			mix(uint64(order))
		}
	}
	mix(uint64(len(s.Deck)))
	for _, c := range s.Deck {
		if c.Base != nil {
			mix(uint64(c.Base.Ord()) + 1)
		} else {
			mix(0)
		}
	}
	tokens := s.ClueTokens.Shift(1).IntPart() // tenths of a token, exact for halves
	mix(uint64(tokens))
	if s.EndgameTurns != nil {
		mix(1)
		mix(uint64(*s.EndgameTurns))
	} else {
		mix(0)
	}
	return h
}
