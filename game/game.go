// Package game aggregates the public State together with every
// player's (and the common-knowledge) empathy viewpoint, and dispatches
// the inbound action stream to the handlers that keep them in sync
// (§3 "Game", §4.4 "Action Handlers").
package game

import (
	"log/slog"

	"hanabi-reactor-server/action"
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/fix"
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/player"
	"hanabi-reactor-server/state"
	"hanabi-reactor-server/variant"
)

// Convention is the pluggable interpretation/move-selection strategy a
// Game drives. The reference implementation is the Reactor convention
// (package convention); Game depends only on this interface so the core
// loop never imports the convention package, mirroring the teacher's
// PowerUpProvider seam between game and powerup.
type Convention interface {
	// InterpretClue attaches meaning to an observed Clue action after
	// State/belief updates have already run for it. before is the
	// pre-clue fix-detector snapshot (§4.6.5), captured by the handler
	// prior to mutation.
	InterpretClue(g *Game, giver, target, turn int, list []int, clue variant.BaseClue, before fix.Snapshot)
	// InterpretReaction resolves the active WaitingConnection (if any)
	// after the reacter's play or discard has been applied. reactSlot
	// is the order's 1-indexed position in the reacter's hand
	// immediately before the action removed it.
	InterpretReaction(g *Game, playerIndex, order, reactSlot int, played bool, id identity.Identity)
	// SelectMove picks our next action (§4.6.6).
	SelectMove(g *Game) (action.Out, error)
}

// snapshot is the immutable base Game state kept for rewind (§4.1/§9):
// a deep-enough copy that replaying the action log from here reproduces
// the live game exactly, before any forced reinterpretation is spliced
// in.
type snapshot struct {
	state *state.State
	turn  int
}

// Game is the mutable aggregate: one State, one Player per seat, one
// common-knowledge Player, and the per-order convention bookkeeping.
type Game struct {
	State      *state.State
	Players    []*player.Player
	Common     *player.Player
	Meta       map[int]*card.ConvData
	Convention Convention

	Waiting *card.WaitingConnection

	// CatchingUp disables side effects that only make sense against a
	// live opponent (note emission, §6.4) while replaying history.
	CatchingUp bool

	// LastMove tags how the most recently processed clue was classified
	// (Stable/Reactive/Fix/Mistake/...), used by notes and by the
	// evaluator's convention-specific scoring (§4.8 get_result).
	LastMove string

	// ForcedInterp records a classification forced onto a specific
	// turn's clue by Rewind (§9); consulted by Convention.InterpretClue
	// before it runs its own decision tree.
	ForcedInterp map[int]Interp
	// RewindDepth counts how many times this Game's lineage has already
	// been rewound, bounding retries (§7).
	RewindDepth int

	history []action.Public
	base    *snapshot
}

// New creates a Game for the given seats and starting variant. conv may
// be nil during tests that only exercise State/Player mechanics.
func New(playerNames []string, ourPlayerIndex int, v *variant.Variant, conv Convention) *Game {
	s := state.New(playerNames, ourPlayerIndex, v)

	players := make([]*player.Player, len(playerNames))
	for i := range players {
		players[i] = player.New(i, false)
	}
	common := player.New(-1, true)

	g := &Game{
		State:      s,
		Players:    players,
		Common:     common,
		Meta:       make(map[int]*card.ConvData),
		Convention: conv,
	}
	g.base = &snapshot{state: s.Clone(), turn: 0}
	return g
}

// Frame builds the ephemeral (State, ConvData) view used by player and
// convention queries.
func (g *Game) Frame() frame.Frame {
	return frame.New(g.State, g.Meta)
}

// allViewpoints returns every empathy viewpoint the elim pass runs
// over: each seat plus the common-knowledge player.
func (g *Game) allViewpoints() []*player.Player {
	out := make([]*player.Player, 0, len(g.Players)+1)
	out = append(out, g.Players...)
	out = append(out, g.Common)
	return out
}

// ConvOf returns (creating if absent) the ConvData for order.
func (g *Game) ConvOf(order int) *card.ConvData {
	m, ok := g.Meta[order]
	if !ok {
		m = card.NewConvData(order)
		g.Meta[order] = m
	}
	return m
}

// Handle dispatches one inbound public action to its handler and runs
// the unified elim pass afterward (§4.4). Status/Turn/Strike/GameOver
// actions are pure bookkeeping and don't need an elim pass.
func (g *Game) Handle(pub action.Public) error {
	g.history = append(g.history, pub)

	switch pub.Kind {
	case action.KindStatus:
		// Clue/score counters are derivable from State directly; the
		// Status action exists for driver-side display and needs no
		// core bookkeeping beyond logging a mismatch.
		if got := g.State.Score(); got != pub.Score {
			slog.Warn("status score mismatch", "tag", "game", "have", got, "want", pub.Score)
		}
		return nil
	case action.KindTurn:
		if pub.CurrentPlayerIndex >= 0 {
			g.State.CurrentPlayerIndex = pub.CurrentPlayerIndex
		}
		g.State.TurnCount = pub.Num
		return nil
	case action.KindClue:
		return g.onClue(pub)
	case action.KindDraw:
		return g.onDraw(pub)
	case action.KindPlay:
		return g.onPlay(pub)
	case action.KindDiscard:
		return g.onDiscard(pub)
	case action.KindStrike:
		slog.Warn("strike", "tag", "game", "num", pub.StrikeNum, "turn", pub.StrikeTurn, "order", pub.Order)
		return nil
	case action.KindGameOver:
		slog.Info("game over", "tag", "game", "end_condition", pub.EndCondition)
		return nil
	default:
		return nil
	}
}
