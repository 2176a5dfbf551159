// Package player implements one viewpoint's empathy state: per-order
// beliefs (card.Thought), the elimination bookkeeping that keeps those
// beliefs consistent (§4.5.1-4.5.3), multi-card links (§4.5.4), and
// hypothetical play stacks used by finesse lookahead (§4.5.5).
//
// A Game keeps one Player per seat (that seat's own hidden-hand
// viewpoint) plus one additional "common" Player representing what
// every player agrees everyone else can deduce.
package player

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/state"
)

// matchEntry is a hard (certain_map) or soft (infer_map) identity match:
// an order known or inferred to be id, and the seats (if any) that
// can't yet see that for themselves.
type matchEntry struct {
	order     int
	unknownTo []int
}

// idEntry names one (order, holder) pair still carrying id as a
// possibility, used to drive both basic and cross elimination.
type idEntry struct {
	order       int
	playerIndex int
}

// gtEntry is a good-touch elimination candidate: a touched-but-unknown
// order, its holder, and whether it came from the common viewpoint's
// chop-move bookkeeping (cm) rather than a direct clue.
type gtEntry struct {
	order       int
	playerIndex int
	cm          bool
}

// Player is one viewpoint's empathy state over every order drawn so
// far. PlayerIndex is meaningless when IsCommon is true.
type Player struct {
	PlayerIndex int
	IsCommon    bool

	Thoughts map[int]*card.Thought
	Links    []card.Link

	// HypoStacks mirrors PlayStacks but advanced by cards this viewpoint
	// is confident are playable even before they're actually played
	// (§4.5.5), used to let finesses stack on unplayed earlier cards.
	HypoStacks []int

	certainMap          map[identity.Identity][]matchEntry
	inferMap            map[identity.Identity][]matchEntry
	idMap               map[identity.Identity][]idEntry
	crossElimCandidates []idEntry
}

// New creates an empty viewpoint for playerIndex (ignored when
// isCommon is true).
func New(playerIndex int, isCommon bool) *Player {
	return &Player{
		PlayerIndex: playerIndex,
		IsCommon:    isCommon,
		Thoughts:    make(map[int]*card.Thought),
	}
}

// Draw records a newly seen order with its initial possibility set.
func (p *Player) Draw(order int, base *identity.Identity, possible identity.Set) {
	p.Thoughts[order] = card.NewThought(order, base, possible)
}

// idOptsFor returns the belief-resolution options this viewpoint uses
// for its own holdings: symmetric when this is the common viewpoint,
// since common knowledge can never use a seat's own unseen Base.
func (p *Player) idOptsFor(infer bool) card.IDOptions {
	return card.IDOptions{Infer: infer, Symmetric: p.IsCommon}
}

// IdentityOf resolves order to a known identity under this viewpoint,
// optionally falling back to a singleton Inferred set.
func (p *Player) IdentityOf(order int, infer bool) (identity.Identity, bool) {
	t, ok := p.Thoughts[order]
	if !ok {
		return identity.Identity{}, false
	}
	return t.Identity(p.idOptsFor(infer))
}

// IsTrash reports whether every possibility left for order is already
// basic trash under s (so the card is safe to discard from this
// viewpoint, regardless of its true identity).
func (p *Player) IsTrash(s *state.State, order int) bool {
	t, ok := p.Thoughts[order]
	if !ok {
		return false
	}
	trash := true
	for _, id := range t.Possibilities().ToSlice() {
		if !s.IsBasicTrash(id) {
			trash = false
			break
		}
	}
	return trash
}

// ThinksPlayables returns the orders in seat's hand that this viewpoint
// believes are certainly playable right now: every remaining
// possibility for that order plays onto its stack.
func (p *Player) ThinksPlayables(f frame.Frame, seat int) []int {
	var out []int
	for _, order := range f.State.Hands[seat] {
		t, ok := p.Thoughts[order]
		if !ok {
			continue
		}
		possible := t.Possibilities().ToSlice()
		if len(possible) == 0 {
			continue
		}
		allPlayable := true
		for _, id := range possible {
			if !f.State.IsPlayable(id) {
				allPlayable = false
				break
			}
		}
		if allPlayable {
			out = append(out, order)
		}
	}
	return out
}

// ThinksTrash returns the orders in seat's hand this viewpoint believes
// are certainly safe to discard (every remaining possibility is basic
// trash).
func (p *Player) ThinksTrash(f frame.Frame, seat int) []int {
	var out []int
	for _, order := range f.State.Hands[seat] {
		if p.IsTrash(f.State, order) {
			out = append(out, order)
		}
	}
	return out
}

// ThinksLocked reports whether this viewpoint believes seat has no
// known-safe discard anywhere in hand.
func (p *Player) ThinksLocked(f frame.Frame, seat int) bool {
	for _, order := range f.State.Hands[seat] {
		m := f.ConvOf(order)
		if !f.IsTouched(order) && m.Status == card.StatusNone {
			return false
		}
	}
	return true
}
