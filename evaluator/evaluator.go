// Package evaluator scores a candidate action by simulating the
// rotation of turns that follows it (§4.8). It depends only on game
// (plus the standalone clueresult package), matching convention's
// "interface lives where it's called" seam: convention calls into
// evaluator, never the reverse.
package evaluator

import (
	"hanabi-reactor-server/action"
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/clueresult"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/game"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/variant"

	"github.com/shopspring/decimal"
)

// Evaluator scores candidate actions for move selection (§4.6.6 step 4).
type Evaluator struct{}

// New creates an Evaluator. It carries no state of its own — every
// call clones the Game it's given, so one Evaluator is safely reused
// across candidates and turns.
func New() *Evaluator {
	return &Evaluator{}
}

// Score simulates candidate to completion of the next rotation and
// returns its terminal evaluation (§4.8). A higher score is better.
func (e *Evaluator) Score(g *game.Game, candidate action.Out) float64 {
	sim := g.Clone()
	var result *clueresult.Result
	if candidate.Kind == action.OutColour || candidate.Kind == action.OutRank {
		result = e.applyClueCandidate(sim, candidate)
	} else {
		e.applyPlayDiscardCandidate(sim, candidate)
	}

	e.advance(sim, 1)
	score := e.evalGame(sim)

	if result != nil {
		score += e.getResult(sim, *result)
	}
	return score
}

// applyClueCandidate simulates giving candidate as a clue from our
// seat, through the full clue pipeline (State update, belief update,
// elim pass, and convention interpretation), and returns the touched-
// card metrics for get_result scoring.
func (e *Evaluator) applyClueCandidate(sim *game.Game, candidate action.Out) *clueresult.Result {
	var clue variant.BaseClue
	if candidate.Kind == action.OutColour {
		clue = variant.BaseClue{Kind: variant.ClueColour, Value: candidate.Value}
	} else {
		clue = variant.BaseClue{Kind: variant.ClueRank, Value: candidate.Value}
	}
	list := sim.State.ClueTouched(sim.State.Hands[candidate.Target], clue)
	if len(list) == 0 {
		return nil
	}

	before := clueresult.Capture(sim.Common, sim.State.Hands[candidate.Target])

	pub := action.Public{
		Kind:   action.KindClue,
		Giver:  sim.State.OurPlayerIndex,
		Target: candidate.Target,
		List:   list,
		Clue:   clue,
	}
	sim.Handle(pub)

	res := clueresult.Compute(sim.Frame(), sim.Common, before, candidate.Target, list)
	return &res
}

// applyPlayDiscardCandidate simulates playing or discarding one of our
// own orders, using our best current belief about its identity (our
// own hand's true Base is hidden to us, matching the live game).
func (e *Evaluator) applyPlayDiscardCandidate(sim *game.Game, candidate action.Out) {
	id, ok := sim.Common.IdentityOf(candidate.Target, true)
	if !ok {
		return
	}

	if candidate.Kind == action.OutPlay {
		failed := !sim.State.IsPlayable(id)
		if failed {
			sim.Handle(action.Public{Kind: action.KindDiscard, PlayerIndex: sim.State.OurPlayerIndex,
				Order: candidate.Target, SuitIndex: id.SuitIndex, Rank: id.Rank, Failed: true})
			return
		}
		sim.Handle(action.Public{Kind: action.KindPlay, PlayerIndex: sim.State.OurPlayerIndex,
			Order: candidate.Target, SuitIndex: id.SuitIndex, Rank: id.Rank})
		return
	}

	sim.Handle(action.Public{Kind: action.KindDiscard, PlayerIndex: sim.State.OurPlayerIndex,
		Order: candidate.Target, SuitIndex: id.SuitIndex, Rank: id.Rank})
}

// advance simulates each following player's likely action, greedily,
// from offset 1 up to num_players-1 or until endgame_turns hits 0
// (§4.8): urgent calls first, then the first obvious playable, played
// as its single resolved identity (there is no branching over
// alternative identities, and an order with no resolved identity is
// not played), locked hands forced into a clue or, without clue
// tokens, a discard of their newest card, otherwise a trash discard,
// finally a chop discard.
func (e *Evaluator) advance(sim *game.Game, offset int) {
	for i := offset; i < sim.State.NumPlayers; i++ {
		if sim.State.EndgameTurns != nil && *sim.State.EndgameTurns <= 0 {
			return
		}
		if sim.State.Ended() {
			return
		}
		seat := (sim.State.OurPlayerIndex + i) % sim.State.NumPlayers
		e.simulateTurn(sim, seat)
	}
}

// simulateTurn greedily picks and applies one likely action for seat.
func (e *Evaluator) simulateTurn(sim *game.Game, seat int) {
	f := sim.Frame()

	for _, order := range sim.State.Hands[seat] {
		m := f.ConvOf(order)
		if m.Status == card.StatusCalledToPlay {
			e.simulatePlay(sim, seat, order)
			return
		}
		if m.Status == card.StatusCalledToDiscard {
			e.simulateDiscard(sim, seat, order)
			return
		}
	}

	if playables := sim.Common.ThinksPlayables(f, seat); len(playables) > 0 {
		e.simulatePlay(sim, seat, playables[0])
		return
	}

	if frame.IsLocked(f, sim.State.Hands[seat]) {
		if sim.State.CanClue() {
			e.simulatePass(sim, seat)
			return
		}
		if hand := sim.State.Hands[seat]; len(hand) > 0 {
			e.simulateDiscard(sim, seat, hand[0])
		}
		return
	}

	if trash := sim.Common.ThinksTrash(f, seat); len(trash) > 0 {
		e.simulateDiscard(sim, seat, trash[0])
		return
	}

	e.simulateDiscard(sim, seat, frame.ChopOrder(f, sim.State.Hands[seat]))
}

// simulatePlay applies order's real identity (known to our engine for
// every seat but our own) as a Play.
func (e *Evaluator) simulatePlay(sim *game.Game, seat, order int) {
	id, ok := resolvedIdentity(sim, order)
	if !ok {
		return
	}
	if sim.State.IsPlayable(id) {
		sim.Handle(action.Public{Kind: action.KindPlay, PlayerIndex: seat, Order: order, SuitIndex: id.SuitIndex, Rank: id.Rank})
	} else {
		sim.Handle(action.Public{Kind: action.KindDiscard, PlayerIndex: seat, Order: order, SuitIndex: id.SuitIndex, Rank: id.Rank, Failed: true})
	}
}

func (e *Evaluator) simulateDiscard(sim *game.Game, seat, order int) {
	if order < 0 {
		return
	}
	id, ok := resolvedIdentity(sim, order)
	if !ok {
		return
	}
	sim.Handle(action.Public{Kind: action.KindDiscard, PlayerIndex: seat, Order: order, SuitIndex: id.SuitIndex, Rank: id.Rank})
}

// simulatePass models spending a clue token with no belief-changing
// effect on the evaluated rotation (a locked hand stalling for time).
func (e *Evaluator) simulatePass(sim *game.Game, seat int) {
	sim.State.ClueTokens = sim.State.ClueTokens.Sub(decimal.NewFromInt(1))
}

// resolvedIdentity returns the identity our engine would use to
// simulate order's owner acting on it: the true Base if known, else a
// singleton common inference.
func resolvedIdentity(sim *game.Game, order int) (identity.Identity, bool) {
	if c := sim.State.Deck[order]; c != nil && c.Base != nil {
		return *c.Base, true
	}
	return sim.Common.IdentityOf(order, true)
}

// evalGame is eval_state/eval_game (§4.8): a terminal evaluation of a
// simulated rotation, combining score progress, clue-token economy,
// strike risk, and the future value still held in called orders.
func (e *Evaluator) evalGame(sim *game.Game) float64 {
	numSuits := len(sim.State.Variant.Suits)
	maxScore := sim.State.MaxScore()
	score := sim.State.Score()

	// Score points count double for the first 2*|suits| scored, since
	// early points unlock the most follow-up playables.
	doubled := score
	if doubled > 2*numSuits {
		doubled = 2 * numSuits
	}
	total := float64(score + doubled)

	// Clue-token shape: -2 at zero tokens, -1 below two, otherwise one
	// point per token above three (negative between two and three),
	// capped at 3 from six tokens up.
	tokens, _ := sim.State.ClueTokens.Float64()
	var clueValue float64
	switch {
	case tokens <= 0:
		clueValue = -2
	case tokens < 2:
		clueValue = -1
	default:
		clueValue = tokens - 3
		if clueValue > 3 {
			clueValue = 3
		}
	}

	absoluteMax := 5 * numSuits
	scoreLoss := absoluteMax - maxScore
	discardPenalty := -8 * float64(scoreLoss)

	strikePenalty := []float64{0, -1.5, -3.5, -100}[sim.State.Strikes]

	var futureValue float64
	for order := range sim.State.Deck {
		m := sim.Meta[order]
		if m == nil {
			continue
		}
		switch m.Status {
		case card.StatusCalledToPlay:
			futureValue += 1.5
		case card.StatusCalledToDiscard:
			futureValue += 0.1
		}
	}

	var reservePenalty float64
	for suitIdx := range sim.State.Variant.Suits {
		for rank := 1; rank <= 5; rank++ {
			discarded := len(sim.State.DiscardStacks[suitIdx][rank-1])
			extra := discarded - 1
			if extra <= 0 {
				continue
			}
			if rank == 1 {
				reservePenalty -= 0.5 * float64(extra*extra)
			} else {
				reservePenalty -= 0.3 * float64(extra)
			}
		}
	}

	return total + clueValue + discardPenalty + strikePenalty + futureValue + reservePenalty
}

// getResult is the clue-specific component of get_result (§4.8): a
// weighted read of clueresult's touched-card metrics, plus a bonus or
// penalty for how the clue was ultimately classified.
func (e *Evaluator) getResult(sim *game.Game, res clueresult.Result) float64 {
	score := 2*float64(res.Filled) - 3*float64(res.BadTouch) + 4*float64(res.NewPlayables) - 0.5*float64(res.Eliminated)

	switch sim.LastMove {
	case "fix":
		score += 5
	case "reactive":
		score += 3
	case "mistake":
		score -= 100
	}
	return score
}
