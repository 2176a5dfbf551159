// Package variant holds the immutable suit/rank rules for a Hanabi
// variant: which colours exist, how a clue touches a card, and how
// many copies of each identity are in the deck.
package variant

import (
	"strings"

	"hanabi-reactor-server/identity"
)

// Category classifies a suit's clue-touch behavior.
type Category int

const (
	CategoryNormal Category = iota
	CategoryWhitish
	CategoryRainbowish
	CategoryPinkish
	CategoryBrownish
	CategoryDark
	CategoryPrism
)

// ClueKind distinguishes a colour clue from a rank clue.
type ClueKind int

const (
	ClueColour ClueKind = iota
	ClueRank
)

func (k ClueKind) String() string {
	if k == ClueColour {
		return "colour"
	}
	return "rank"
}

// BaseClue is the variant-agnostic description of a clue: its kind and
// the value given (a suit index for colour, a rank for rank).
type BaseClue struct {
	Kind  ClueKind
	Value int
}

// Suit describes one suit's rules. A suit can combine categories (e.g.
// a dark suit is also whitish in some variants); Categories lists every
// category that applies, checked in the order: Whitish, Rainbowish,
// Prism (colour clues), Brownish, Pinkish (rank clues). Dark always
// reduces card_count to 1 regardless of colour/rank category.
type Suit struct {
	Name       string
	ShortForm  string
	Categories []Category
}

func (s Suit) has(c Category) bool {
	for _, cat := range s.Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Variant is the immutable ruleset for one game. Variants are built
// once (by a Registry, see registry.go) and shared read-only
// across a Game and all of its simulation clones.
type Variant struct {
	ID             uint32
	Name           string
	Suits          []Suit
	ClueStarved    bool
	SpecialRank    int // 0 = none; otherwise the "critical rank" reduced to 1 copy
	SpecialRankDark bool
}

// ColourableSuits returns the suits that can be targeted by a colour
// clue at all (excludes whitish/rainbowish/prism suits, which are never
// targeted directly by suit index the way a normal suit is).
func (v *Variant) ColourableSuits() []Suit {
	var out []Suit
	for _, s := range v.Suits {
		if s.has(CategoryWhitish) || s.has(CategoryRainbowish) || s.has(CategoryPrism) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// AllIdentities enumerates every identity in the variant's universe.
func (v *Variant) AllIdentities() []identity.Identity {
	out := make([]identity.Identity, 0, len(v.Suits)*5)
	for suitIdx := range v.Suits {
		for rank := 1; rank <= 5; rank++ {
			out = append(out, identity.Identity{SuitIndex: suitIdx, Rank: rank})
		}
	}
	return out
}

// IDTouched reports whether the given clue touches the given identity,
// per the suit-category semantics in §4.2:
//   - whitish suits are never touched by colour clues
//   - rainbowish suits are always touched by colour clues
//   - prism suits are touched by a colour clue iff colour == (rank-1) mod |colourable suits|
//   - brownish suits are never touched by rank clues
//   - pinkish suits are always touched by rank clues
//
// SpecialRank is not consulted here: it changes only CardCount, never
// which cards a clue touches.
func (v *Variant) IDTouched(id identity.Identity, clue BaseClue) bool {
	suit := v.Suits[id.SuitIndex]

	if clue.Kind == ClueColour {
		if suit.has(CategoryWhitish) {
			return false
		}
		if suit.has(CategoryRainbowish) {
			return true
		}
		if suit.has(CategoryPrism) {
			n := len(v.ColourableSuits())
			if n == 0 {
				return false
			}
			return (id.Rank-1)%n == clue.Value
		}
		colourable := v.ColourableSuits()
		if clue.Value < 0 || clue.Value >= len(colourable) {
			return false
		}
		return suit.Name == colourable[clue.Value].Name
	}

	if suit.has(CategoryBrownish) {
		return false
	}
	if suit.has(CategoryPinkish) {
		return true
	}
	return id.Rank == clue.Value
}

// CardCount returns how many physical copies of id exist in the deck:
// 3/2/2/2/1 by rank, reduced to 1 for dark suits or the variant's
// configured special/critical rank.
func (v *Variant) CardCount(id identity.Identity) int {
	suit := v.Suits[id.SuitIndex]
	if suit.has(CategoryDark) {
		return 1
	}
	if v.SpecialRank != 0 && id.Rank == v.SpecialRank {
		return 1
	}
	return [5]int{3, 2, 2, 2, 1}[id.Rank-1]
}

// TouchPossibilities returns every identity that clue touches.
func (v *Variant) TouchPossibilities(clue BaseClue) []identity.Identity {
	var out []identity.Identity
	for _, id := range v.AllIdentities() {
		if v.IDTouched(id, clue) {
			out = append(out, id)
		}
	}
	return out
}

// ShortForm normalizes a suit's display letter: Black->k, Pink->i,
// Brown->n, otherwise the first unused lowercase letter of the name.
func ShortForm(suitName string, taken map[string]bool) string {
	switch suitName {
	case "Black":
		return "k"
	case "Pink":
		return "i"
	case "Brown":
		return "n"
	}
	lower := strings.ToLower(suitName)
	first := string(lower[0])
	if !taken[first] {
		return first
	}
	for _, r := range lower {
		c := string(r)
		if !taken[c] {
			return c
		}
	}
	return first
}

// LogID renders an identity using the variant's short forms (e.g. "r1").
func (v *Variant) LogID(id identity.Identity) string {
	return v.Suits[id.SuitIndex].ShortForm + string(rune('0'+id.Rank))
}
