// Package endgame implements the exhaustive winnability search run once
// the draw pile empties enough that every remaining card's fate can be
// enumerated (§4.7). It depends only on game and the leaf packages it
// aggregates — never on convention — so convention can call into it
// without a cycle.
package endgame

import (
	"errors"
	"time"

	"hanabi-reactor-server/action"
	"hanabi-reactor-server/game"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/variant"

	"github.com/shopspring/decimal"
)

// ErrTimeout is returned when the solver's deadline expires mid-search;
// the caller falls back to the evaluator's heuristic move (§4.7 step 5,
// §9 Open Question on the deadline being configurable).
var ErrTimeout = errors.New("endgame: search deadline exceeded")

// ErrTooManyUnknown is returned when more than two distinct non-trash
// identities remain unlocated: the branching factor makes an exact
// search impractical (§4.7 setup step 4).
var ErrTooManyUnknown = errors.New("endgame: too many unlocated non-trash identities")

// ErrUnwinnable is returned when the search exhausts every action
// without finding one with positive winrate.
var ErrUnwinnable = errors.New("endgame: no winning line found")

// remaining tracks, per identity, how many copies are still unlocated
// (neither in a known hand slot nor played/discarded).
type remaining map[identity.Identity]int

// Solver holds the memo tables across one Solve call. It is not safe
// for concurrent reuse; callers construct a fresh Solver per solve.
type Solver struct {
	winnableCache map[uint64]cacheEntry
	deadline      time.Time
}

type cacheEntry struct {
	action  action.Out
	winrate decimal.Decimal
	err     error
}

// New creates a Solver with the given wall-clock deadline (§9: made
// configurable rather than a hard-coded constant).
func New(deadlineMS int) *Solver {
	return &Solver{
		winnableCache: make(map[uint64]cacheEntry),
		deadline:      time.Now().Add(time.Duration(deadlineMS) * time.Millisecond),
	}
}

// Solve runs the endgame search from g's current position for seat
// playerTurn, returning the first action of a best line and its exact
// winrate (§4.7). Cards in our own hand that common knowledge cannot
// resolve to a known or inferred identity are left out of the search's
// play and discard candidates rather than guessed at.
func (s *Solver) Solve(g *game.Game, playerTurn int) (action.Out, decimal.Decimal, error) {
	rem, err := s.findRemaining(g)
	if err != nil {
		return action.Out{}, decimal.Zero, err
	}

	resolved, err := s.resolveOwnHand(g)
	if err != nil {
		return action.Out{}, decimal.Zero, err
	}

	acts, winrate, err := s.winnable(resolved, playerTurn, rem, 0)
	if err != nil {
		return action.Out{}, decimal.Zero, err
	}
	return acts[0], winrate, nil
}

// findRemaining computes, for every identity still live in the
// variant, how many copies are unlocated: not yet played or discarded,
// and not already pinned to a specific order by common knowledge
// (§4.7 setup steps 1-3). It rejects (ErrTooManyUnknown) when more
// than two distinct non-trash identities remain unlocated, matching
// the branching-factor guard in the original solver's setup phase.
func (s *Solver) findRemaining(g *game.Game) (remaining, error) {
	seen := make(map[identity.Identity]int)
	for _, hand := range g.State.Hands {
		for _, order := range hand {
			id, ok := g.Common.IdentityOf(order, true)
			if !ok {
				continue
			}
			seen[id]++
		}
	}

	rem := make(remaining)
	for _, id := range g.State.Variant.AllIdentities() {
		total := g.State.CardCount(id)
		missing := total - g.State.BaseCount(id) - seen[id]
		if missing > 0 {
			rem[id] = missing
		}
	}

	unlocated := 0
	for id, n := range rem {
		if n > 0 && !g.State.IsBasicTrash(id) {
			unlocated++
		}
	}
	if unlocated > 2 {
		return nil, ErrTooManyUnknown
	}
	return rem, nil
}

// resolveOwnHand returns a clone of g with every order in our own hand
// pinned to its best-known identity (State.Deck[order].Base), so the
// search can reason about concrete plays/discards of our own cards.
// Orders common knowledge cannot resolve at all are left unpinned and
// must never appear in a playable/discardable candidate list the
// search considers, since the solver never guesses.
func (s *Solver) resolveOwnHand(g *game.Game) (*game.Game, error) {
	clone := g.Clone()
	for _, order := range clone.State.OurHand() {
		if clone.State.Deck[order].Base != nil {
			continue
		}
		id, ok := clone.Common.IdentityOf(order, true)
		if !ok {
			continue
		}
		clone.State.Deck[order].Base = &identity.Identity{SuitIndex: id.SuitIndex, Rank: id.Rank}
	}
	return clone, nil
}

// winnable is the recursive search core (§4.7 search phase): it tries
// every possible action at this node, recursing through each of its
// draw outcomes weighted by probability, and memoizes by state hash.
func (s *Solver) winnable(g *game.Game, playerTurn int, rem remaining, depth int) ([]action.Out, decimal.Decimal, error) {
	hash := g.State.Hash()
	if entry, ok := s.winnableCache[hash]; ok {
		if entry.err != nil {
			return nil, decimal.Zero, entry.err
		}
		return []action.Out{entry.action}, entry.winrate, nil
	}

	if time.Now().After(s.deadline) {
		return nil, decimal.Zero, ErrTimeout
	}

	if g.State.Score() == g.State.MaxScore() {
		s.winnableCache[hash] = cacheEntry{winrate: decimal.NewFromInt(1)}
		return []action.Out{{Kind: action.OutTerminate}}, decimal.NewFromInt(1), nil
	}
	if s.unwinnableState(g, rem) {
		s.winnableCache[hash] = cacheEntry{err: ErrUnwinnable}
		return nil, decimal.Zero, ErrUnwinnable
	}

	actions := s.possibleActions(g, playerTurn)
	if len(actions) == 0 {
		s.winnableCache[hash] = cacheEntry{err: ErrUnwinnable}
		return nil, decimal.Zero, ErrUnwinnable
	}

	next := g.State.NextPlayerIndex(playerTurn)

	bestWinrate := decimal.Zero
	var bestActions []action.Out

	for _, cand := range actions {
		branches := s.drawBranches(g, rem, cand)

		actionWinrate := decimal.Zero
		for _, b := range branches {
			advanced := s.advance(g, playerTurn, cand, b.id, b.draws)
			if advanced.State.MaxScore() < g.State.MaxScore() {
				continue
			}
			_, winrate, err := s.winnable(advanced, next, b.remaining, depth+1)
			if err != nil {
				if errors.Is(err, ErrTimeout) {
					return nil, decimal.Zero, err
				}
				continue
			}
			actionWinrate = actionWinrate.Add(b.prob.Mul(winrate))
		}

		if actionWinrate.Equal(decimal.NewFromInt(1)) {
			s.winnableCache[hash] = cacheEntry{action: cand, winrate: actionWinrate}
			return []action.Out{cand}, actionWinrate, nil
		}
		if actionWinrate.GreaterThan(bestWinrate) {
			bestWinrate = actionWinrate
			bestActions = []action.Out{cand}
		}
	}

	if len(bestActions) == 0 {
		s.winnableCache[hash] = cacheEntry{err: ErrUnwinnable}
		return nil, decimal.Zero, ErrUnwinnable
	}
	s.winnableCache[hash] = cacheEntry{action: bestActions[0], winrate: bestWinrate}
	return bestActions, bestWinrate, nil
}

// unwinnableState reports whether every unlocated identity still in
// rem is a non-five critical (bottom-decked): no arrangement of the
// remaining draws can complete the suit.
func (s *Solver) unwinnableState(g *game.Game, rem remaining) bool {
	if g.State.Strikes >= 3 {
		return true
	}
	if len(rem) == 0 {
		return false
	}
	for id := range rem {
		if !(g.State.IsCritical(id) && id.Rank != 5) {
			return false
		}
	}
	return true
}

// possibleActions enumerates the candidate moves worth searching at
// this node (§4.7 step "possible actions"): every believed-playable
// order, a single rank-1 clue to the next seat when clues remain and it
// touches a card there, and every discard once pace allows it.
func (s *Solver) possibleActions(g *game.Game, playerTurn int) []action.Out {
	f := g.Frame()
	var acts []action.Out

	for _, order := range g.Common.ThinksPlayables(f, playerTurn) {
		if g.State.Deck[order].Base == nil {
			continue
		}
		acts = append(acts, action.Out{Kind: action.OutPlay, Target: order})
	}

	if g.State.CanClue() {
		target := g.State.NextPlayerIndex(playerTurn)
		if len(g.State.ClueTouched(g.State.Hands[target], variant.BaseClue{Kind: variant.ClueRank, Value: 1})) > 0 {
			acts = append(acts, action.Out{Kind: action.OutRank, Target: target, Value: 1})
		}
	}

	if g.State.Pace() > 0 {
		for _, order := range g.State.Hands[playerTurn] {
			if g.State.Deck[order].Base == nil {
				continue
			}
			acts = append(acts, action.Out{Kind: action.OutDiscard, Target: order})
		}
	}

	return acts
}

// drawBranch is one weighted outcome of a non-clue action: drawing id
// (if draws is true) with probability prob, and the remaining map
// after removing it.
type drawBranch struct {
	id        *identity.Identity
	draws     bool
	prob      decimal.Decimal
	remaining remaining
}

// drawBranches enumerates the possible draws following cand (no draw
// at all for a clue, or once the pile is empty).
func (s *Solver) drawBranches(g *game.Game, rem remaining, cand action.Out) []drawBranch {
	if cand.Kind == action.OutColour || cand.Kind == action.OutRank {
		return []drawBranch{{remaining: rem, prob: decimal.NewFromInt(1)}}
	}

	cardsLeft := g.State.CardsLeft
	if cardsLeft <= 0 || len(rem) == 0 {
		return []drawBranch{{remaining: rem, prob: decimal.NewFromInt(1)}}
	}

	var out []drawBranch
	for id, missing := range rem {
		id := id
		newRem := cloneRemaining(rem)
		if missing == 1 {
			delete(newRem, id)
		} else {
			newRem[id] = missing - 1
		}
		out = append(out, drawBranch{
			id:        &id,
			draws:     true,
			prob:      decimal.NewFromInt(int64(missing)).Div(decimal.NewFromInt(int64(cardsLeft))),
			remaining: newRem,
		})
	}
	return out
}

func cloneRemaining(rem remaining) remaining {
	out := make(remaining, len(rem))
	for id, n := range rem {
		out[id] = n
	}
	return out
}

// advance clones g, applies cand as playerTurn's action, and (for a
// non-clue action) draws drew into their hand — mirroring the live
// Game.Handle pipeline so belief state stays consistent through the
// search.
func (s *Solver) advance(g *game.Game, playerTurn int, cand action.Out, drew *identity.Identity, draws bool) *game.Game {
	ng := g.Clone()

	switch cand.Kind {
	case action.OutPlay:
		id := *ng.State.Deck[cand.Target].Base
		ng.Handle(action.Public{Kind: action.KindPlay, PlayerIndex: playerTurn, Order: cand.Target, SuitIndex: id.SuitIndex, Rank: id.Rank})
	case action.OutDiscard:
		id := *ng.State.Deck[cand.Target].Base
		ng.Handle(action.Public{Kind: action.KindDiscard, PlayerIndex: playerTurn, Order: cand.Target, SuitIndex: id.SuitIndex, Rank: id.Rank})
	case action.OutColour, action.OutRank:
		clue := variant.BaseClue{Kind: variant.ClueColour, Value: cand.Value}
		if cand.Kind == action.OutRank {
			clue = variant.BaseClue{Kind: variant.ClueRank, Value: cand.Value}
		}
		list := ng.State.ClueTouched(ng.State.Hands[cand.Target], clue)
		ng.Handle(action.Public{Kind: action.KindClue, Giver: playerTurn, Target: cand.Target, List: list, Clue: clue})
		return ng
	}

	if !draws {
		return ng
	}

	newOrder := len(ng.State.Deck)
	var base *identity.Identity
	if drew != nil {
		b := *drew
		base = &b
	}
	ng.Handle(action.Public{Kind: action.KindDraw, PlayerIndex: playerTurn, Order: newOrder,
		SuitIndex: suitIndexOrHidden(base), Rank: rankOrHidden(base)})

	return ng
}

func suitIndexOrHidden(id *identity.Identity) int {
	if id == nil {
		return -1
	}
	return id.SuitIndex
}

func rankOrHidden(id *identity.Identity) int {
	if id == nil {
		return 0
	}
	return id.Rank
}
