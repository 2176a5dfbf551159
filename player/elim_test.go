package player

import (
	"testing"

	"hanabi-reactor-server/card"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/state"
	"hanabi-reactor-server/variant"
)

func twoSuitVariant() *variant.Variant {
	return &variant.Variant{
		Name: "test",
		Suits: []variant.Suit{
			{Name: "Red", ShortForm: "r"},
			{Name: "Yellow", ShortForm: "y"},
		},
	}
}

func newTestState(v *variant.Variant, numPlayers int) *state.State {
	names := make([]string, numPlayers)
	for i := range names {
		names[i] = "p"
	}
	return state.New(names, 0, v)
}

func TestBasicCardElimCollapsesLastPossibility(t *testing.T) {
	v := twoSuitVariant()
	s := newTestState(v, 2)
	red1 := identity.Identity{SuitIndex: 0, Rank: 1}
	yellow1 := identity.Identity{SuitIndex: 1, Rank: 1}

	s.Hands[0] = []int{0, 1}
	s.Hands[1] = []int{2, 3}
	s.Deck = []*card.Card{
		card.NewCard(nil, 0, 0),
		card.NewCard(nil, 1, 1),
		card.NewCard(nil, 2, 2),
		card.NewCard(nil, 3, 3),
	}

	p := New(-1, true)
	p.Thoughts[0] = card.NewThought(0, nil, identity.Single(red1))
	p.Thoughts[1] = card.NewThought(1, nil, identity.Single(red1))
	p.Thoughts[2] = card.NewThought(2, nil, identity.Single(red1))
	p.Thoughts[3] = card.NewThought(3, nil, identity.FromSlice([]identity.Identity{red1, yellow1}))

	p.CardElim(s)

	got, ok := p.Thoughts[3].Identity(card.IDOptions{Symmetric: true})
	if !ok || got != yellow1 {
		t.Fatalf("expected order 3 to collapse to yellow1, got %v ok=%v", got, ok)
	}
}

func TestThinksPlayablesRequiresUnanimousPlayability(t *testing.T) {
	v := twoSuitVariant()
	s := newTestState(v, 2)
	red1 := identity.Identity{SuitIndex: 0, Rank: 1}
	yellow2 := identity.Identity{SuitIndex: 1, Rank: 2}

	s.Hands[1] = []int{10, 11}
	s.Deck = make([]*card.Card, 12)
	s.Deck[10] = card.NewCard(nil, 10, 0)
	s.Deck[11] = card.NewCard(nil, 11, 1)

	p := New(-1, true)
	p.Thoughts[10] = card.NewThought(10, nil, identity.Single(red1))
	p.Thoughts[11] = card.NewThought(11, nil, identity.Single(yellow2))

	f := frame.New(s, map[int]*card.ConvData{})
	got := p.ThinksPlayables(f, 1)
	if len(got) != 1 || got[0] != 10 {
		t.Fatalf("expected only order 10 (red1, playable) to be thought playable, got %v", got)
	}
}
