package convention

import (
	"hanabi-reactor-server/action"
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/endgame"
	"hanabi-reactor-server/evaluator"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/game"
	"hanabi-reactor-server/variant"
)

// SelectMove picks our next action (§4.6.6): an urgent call on our own
// hand first, the exact endgame solver once the position qualifies,
// otherwise an evaluator-scored enumeration over every reasonable
// candidate, falling back to a locked-chop discard if nothing else is
// safe.
func (r *Reactor) SelectMove(g *game.Game) (action.Out, error) {
	us := g.State.OurPlayerIndex
	f := g.Frame()

	for _, order := range g.State.Hands[us] {
		m := f.ConvOf(order)
		switch m.Status {
		case card.StatusCalledToPlay:
			return action.Out{Kind: action.OutPlay, Target: order}, nil
		case card.StatusCalledToDiscard:
			return action.Out{Kind: action.OutDiscard, Target: order}, nil
		}
	}

	if g.State.InEndgame() {
		solver := endgame.New(r.EndgameDeadlineMS)
		if out, _, err := solver.Solve(g, us); err == nil {
			return out, nil
		}
		// Falls through to heuristic selection (§4.7 step 5) when the
		// solver can't find or prove a winning line in time.
	}

	eval := evaluator.New()
	candidates := r.candidateMoves(g, f, us)
	if len(candidates) == 0 {
		return r.fallbackDiscard(g, f, us), nil
	}

	best := candidates[0]
	bestScore := eval.Score(g, best)
	for _, cand := range candidates[1:] {
		if s := eval.Score(g, cand); s > bestScore {
			best, bestScore = cand, s
		}
	}
	return best, nil
}

// candidateMoves enumerates every move worth scoring: believed
// playables, believed trash discards, and every valid clue to another
// seat (§4.6.6 step 3).
func (r *Reactor) candidateMoves(g *game.Game, f frame.Frame, us int) []action.Out {
	var out []action.Out

	for _, order := range g.Common.ThinksPlayables(f, us) {
		out = append(out, action.Out{Kind: action.OutPlay, Target: order})
	}

	if g.State.Pace() > 0 {
		for _, order := range g.Common.ThinksTrash(f, us) {
			out = append(out, action.Out{Kind: action.OutDiscard, Target: order})
		}
	}

	if g.State.CanClue() {
		for seat := 0; seat < g.State.NumPlayers; seat++ {
			if seat == us {
				continue
			}
			for _, clue := range g.State.AllValidClues(seat) {
				kind := action.OutRank
				if clue.Kind == variant.ClueColour {
					kind = action.OutColour
				}
				out = append(out, action.Out{Kind: kind, Target: seat, Value: clue.Value})
			}
		}
	}

	return out
}

// fallbackDiscard picks the chop (or, if the hand is locked, the newest
// card) when no candidate move survived enumeration.
func (r *Reactor) fallbackDiscard(g *game.Game, f frame.Frame, us int) action.Out {
	hand := g.State.Hands[us]
	if order := frame.ChopOrder(f, hand); order >= 0 {
		return action.Out{Kind: action.OutDiscard, Target: order}
	}
	return action.Out{Kind: action.OutDiscard, Target: hand[0]}
}
