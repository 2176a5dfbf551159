package state

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/variant"

	"github.com/shopspring/decimal"
)

// removeFromHand drops order from a hand, returning the resulting hand
// (unchanged if order was not in it).
func removeFromHand(hand []int, order int) []int {
	for i, o := range hand {
		if o == order {
			return append(hand[:i:i], hand[i+1:]...)
		}
	}
	return hand
}

// ApplyClue mutates State for an observed Clue action (§4.4): clued
// orders are marked and gain a CardClue record, a token is spent, and
// the endgame countdown (if running) ticks down. It does not touch any
// Thought — narrowing belief is the caller's (player package) job,
// since State has no notion of a viewpoint.
func (s *State) ApplyClue(giver, target, turn int, list []int, clue variant.BaseClue) {
	for _, order := range list {
		c := s.Deck[order]
		c.Clued = true
		kind := card.ClueColour
		if clue.Kind == variant.ClueRank {
			kind = card.ClueRank
		}
		c.Clues = append(c.Clues, card.Clue{Kind: kind, Value: clue.Value, Giver: giver, Turn: turn})
	}
	s.ClueTokens = s.ClueTokens.Sub(decimal.NewFromInt(1))
	if s.EndgameTurns != nil {
		*s.EndgameTurns--
	}
}

// ApplyDraw mutates State for an observed Draw action (§4.4): the order
// is prepended to the drawer's hand (hands are newest-first) and a
// permanent Card record is created. base is the true identity, or nil
// when the draw is hidden from the viewpoint applying it (our own
// hand). When the pile empties, endgame_turns starts counting down from
// num_players.
func (s *State) ApplyDraw(playerIndex, order int, base *identity.Identity) {
	s.Hands[playerIndex] = append([]int{order}, s.Hands[playerIndex]...)
	if order >= len(s.Deck) {
		grown := make([]*card.Card, order+1)
		copy(grown, s.Deck)
		s.Deck = grown
	}
	s.Deck[order] = card.NewCard(base, order, s.CardOrder)
	s.CardOrder++
	s.CardsLeft--
	if s.CardsLeft == 0 && s.EndgameTurns == nil {
		n := s.NumPlayers
		s.EndgameTurns = &n
	}
}

// ApplyPlay mutates State for an observed Play action (§4.4): the order
// leaves its hand, the identity is recorded (if newly learned), and the
// play stack advances. The driver only emits Play for a card that
// actually lands on its stack; a card that fails to play arrives as a
// Discard with failed set (§6.1), handled by ApplyDiscard instead.
func (s *State) ApplyPlay(playerIndex, order int, id identity.Identity) {
	s.Hands[playerIndex] = removeFromHand(s.Hands[playerIndex], order)
	c := s.Deck[order]
	if c.Base == nil {
		c.Base = &id
	}
	s.PlayStacks[id.SuitIndex] = id.Rank
	if id.Rank == 5 {
		s.RegainClue()
	}
	if s.EndgameTurns != nil {
		*s.EndgameTurns--
	}
}

// ApplyDiscard mutates State for an observed Discard action (§4.4): the
// order leaves its hand, joins the discard stack for its identity, and
// a clue token is regained unless the discard was a bomb (failed ==
// true, i.e. a failed play, which costs a strike instead). If every
// copy of the identity is now
// gone, max_ranks drops to cap further plays at that suit.
func (s *State) ApplyDiscard(playerIndex, order int, id identity.Identity, failed bool) {
	s.Hands[playerIndex] = removeFromHand(s.Hands[playerIndex], order)
	c := s.Deck[order]
	if c.Base == nil {
		c.Base = &id
	}
	s.DiscardStacks[id.SuitIndex][id.Rank-1] = append(s.DiscardStacks[id.SuitIndex][id.Rank-1], order)
	if len(s.DiscardStacks[id.SuitIndex][id.Rank-1]) == s.CardCount(id) && s.MaxRanks[id.SuitIndex] >= id.Rank {
		s.MaxRanks[id.SuitIndex] = id.Rank - 1
	}
	if failed {
		s.Strikes++
	} else {
		s.RegainClue()
	}
	if s.EndgameTurns != nil {
		*s.EndgameTurns--
	}
}
