package matcherrors

import "errors"

// Sentinel errors shared across the transport and agent packages to
// avoid circular imports (§7, §A.2).
var (
	// ErrMalformedAction means an incoming action message failed basic
	// shape validation (unknown Kind, missing Target, out-of-range
	// clue Value) before it ever reached game.Handle.
	ErrMalformedAction = errors.New("malformed action")
	// ErrOutOfTurn means an action arrived for a seat other than the
	// one State.CurrentPlayerIndex names.
	ErrOutOfTurn = errors.New("action received out of turn")
	// ErrGameEnded means an action arrived after State.Ended() was
	// already true.
	ErrGameEnded = errors.New("game has already ended")
	// ErrSolverTimeout surfaces endgame.ErrTimeout to a caller that
	// doesn't want to import the endgame package directly.
	ErrSolverTimeout = errors.New("endgame solver exceeded its deadline")
	// ErrRewindFailed means game.Rewind couldn't replay history back
	// to a consistent belief state (§4.4).
	ErrRewindFailed = errors.New("rewind failed to reconstruct state")
	// ErrUnknownSeat means a message referenced a player index outside
	// State.NumPlayers.
	ErrUnknownSeat = errors.New("unknown seat index")
)
