// Package convention implements the Reactor convention family (§4.6):
// the clue-interpretation decision tree, the reactive modular-
// arithmetic reaction resolver, the fix-clue integration, and move
// selection. Reactor is the sole game.Convention implementation this
// module ships, matching the spec's single-convention scope.
package convention

import (
	"log/slog"

	"hanabi-reactor-server/card"
	"hanabi-reactor-server/fix"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/game"
	"hanabi-reactor-server/variant"
)

// Classification records how a clue was ultimately read (§4.6.1),
// surfaced for notes and for the evaluator's convention-specific
// scoring (§4.8 get_result).
type Classification int

const (
	ClassStable Classification = iota
	ClassReactive
	ClassFix
	ClassMistake
)

func (c Classification) String() string {
	switch c {
	case ClassStable:
		return "stable"
	case ClassReactive:
		return "reactive"
	case ClassFix:
		return "fix"
	case ClassMistake:
		return "mistake"
	default:
		return "unknown"
	}
}

// Reactor is the stateful convention strategy a Game drives through
// the game.Convention interface. EndgameDeadlineMS is passed to the
// endgame solver; both fields are configured from §6.5.
type Reactor struct {
	// EndgameDeadlineMS bounds the solver's search (§4.7, §9 Open
	// Question — made explicitly configurable rather than hard-coded).
	EndgameDeadlineMS int
	// MonteCarlo is the Monte-Carlo endgame toggle. No code reads it:
	// the endgame solver's search is the same whether it is set or not.
	MonteCarlo bool
}

// New creates a Reactor with the module's chosen defaults (§9: 1s
// solver deadline, Monte-Carlo pruning off by default).
func New() *Reactor {
	return &Reactor{EndgameDeadlineMS: 1000, MonteCarlo: false}
}

// slotOf returns order's 0-based position in hand (0 = newest), or -1.
func slotOf(hand []int, order int) int {
	for i, o := range hand {
		if o == order {
			return i
		}
	}
	return -1
}

// newlyTouched filters list to orders that had never been clued before
// this clue (recognized by card.Clues having exactly one entry, the
// one just appended by State.ApplyClue).
func newlyTouched(g *game.Game, list []int) []int {
	var out []int
	for _, order := range list {
		if c := g.State.Deck[order]; c != nil && len(c.Clues) == 1 {
			out = append(out, order)
		}
	}
	return out
}

// focusOf picks the clue's focus (§4.6.2): chop if it was newly
// touched (chop is the hand's pre-clue chop, since State.ApplyClue has
// already flipped Clued on every touched order by the time a handler
// gets here), else the rightmost (oldest-indexed, since hands are
// newest-first the "rightmost" physical slot is the highest index
// among non-chop candidates) newly-touched order.
func focusOf(hand []int, touched []int, chop int) (int, bool) {
	if len(touched) == 0 {
		return 0, false
	}
	for _, o := range touched {
		if o == chop {
			return o, true
		}
	}
	best, bestIdx := touched[0], slotOf(hand, touched[0])
	for _, o := range touched[1:] {
		if idx := slotOf(hand, o); idx > bestIdx {
			best, bestIdx = o, idx
		}
	}
	return best, true
}

// InterpretClue implements the §4.6.1 decision tree.
func (r *Reactor) InterpretClue(g *game.Game, giver, target, turn int, list []int, clue variant.BaseClue, before fix.Snapshot) {
	f := g.Frame()

	if fix.Detect(g.State, g.Common, before) {
		slog.Info("clue classified as fix", "tag", "convention", "giver", giver, "target", target)
		g.LastMove = ClassFix.String()
		r.applyFix(g, target, list)
		return
	}

	if forced, ok := g.ForcedInterp[turn]; ok {
		reacter, hasReacter := r.findReacter(g, giver)
		switch forced {
		case game.InterpForceReactive:
			if hasReacter {
				g.LastMove = ClassReactive.String()
				r.interpretReactive(g, giver, target, reacter, list, clue, true)
				return
			}
		case game.InterpForceStable:
			r.interpretStable(g, giver, target, list, clue)
			g.LastMove = ClassStable.String()
			return
		}
	}

	stableCase := g.State.ClueTokens.IntPart() == 8 && turn > 0
	stableCase = stableCase || g.State.InEndgame()
	if !stableCase {
		if frame.IsLocked(f, g.State.Hands[giver]) {
			stableCase = true
		}
	}

	reacter, hasReacter := r.findReacter(g, giver)

	if stableCase || !hasReacter || target == reacter {
		ok := r.interpretStable(g, giver, target, list, clue)
		if !ok && g.State.NextPlayerIndex(giver) != target && hasReacter {
			// Response inversion: a reverse clue whose stable reading
			// failed validity is retried as forced-reactive (§4.6.1).
			// The failed stable attempt may have set calls on target's
			// hand this turn; undo those before reclassifying.
			r.undoCallsThisTurn(g, target, turn)
			g.LastMove = ClassReactive.String()
			r.interpretReactive(g, giver, target, reacter, list, clue, true)
			return
		}
		g.LastMove = ClassStable.String()
		return
	}

	g.LastMove = ClassReactive.String()
	r.interpretReactive(g, giver, target, reacter, list, clue, false)
}

// findReacter scans players in turn order after giver for the first
// whose previously-known playable no longer survives the current
// public state (§4.6.1 step 2).
func (r *Reactor) findReacter(g *game.Game, giver int) (int, bool) {
	f := g.Frame()
	for i := 1; i < g.State.NumPlayers; i++ {
		seat := (giver + i) % g.State.NumPlayers
		if seat == giver {
			continue
		}
		if len(g.Common.ThinksPlayables(f, seat)) == 0 {
			return seat, true
		}
	}
	return -1, false
}

// applyFix marks the touched orders Fix-relevant in their ConvData so
// notes/evaluator scoring can see it, without calling-to-play/discard
// anything (a fix clue's purpose is belief repair, not a call).
func (r *Reactor) applyFix(g *game.Game, target int, list []int) {
	for _, order := range list {
		g.ConvOf(order).Reasoning = append(g.ConvOf(order).Reasoning, g.State.TurnCount)
	}
}

// setCalled marks order's status, recording giver and turn, and clears
// any stale DependsOn link.
func setCalled(g *game.Game, order int, status card.Status, by int) {
	m := g.ConvOf(order)
	m.Status = status
	b := by
	m.By = &b
	m.DependsOn = nil
	m.Reasoning = append(m.Reasoning, g.State.TurnCount)
}

// undoCallsThisTurn clears any call status a failed stable reading set
// on target's hand this turn, so a response-inversion retry starts
// clean.
func (r *Reactor) undoCallsThisTurn(g *game.Game, target, turn int) {
	for _, order := range g.State.Hands[target] {
		m := g.ConvOf(order)
		if len(m.Reasoning) > 0 && m.Reasoning[len(m.Reasoning)-1] == turn {
			m.Clear()
		}
	}
}
