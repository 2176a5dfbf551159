package game

import (
	"fmt"

	"hanabi-reactor-server/card"
	"hanabi-reactor-server/player"
)

// Interp is a forced interpretation marker spliced into a replay at a
// specific turn (§9 "Rewind"): convention.InterpretClue consults
// ForcedInterp for the clue's turn before running its own decision
// tree, so the prefix replays identically and only that one clue is
// reclassified.
type Interp int

const (
	InterpNone Interp = iota
	InterpForceReactive
	InterpForceStable
)

// maxRewindDepth bounds retries to prevent infinite rewind loops
// (§7 "Rewind").
const maxRewindDepth = 2

// Rewind rebuilds a fresh Game from the immutable base snapshot and
// replays the full action history, forcing the classification of the
// clue at turn to forced. Returns an error once maxRewindDepth is
// exceeded or no base snapshot exists, per §7's bounded-retry policy.
func (g *Game) Rewind(turn int, forced Interp) (*Game, error) {
	if g.base == nil {
		return nil, fmt.Errorf("game: no base snapshot to rewind to")
	}
	if g.RewindDepth >= maxRewindDepth {
		return nil, fmt.Errorf("game: rewind depth exceeded (max %d)", maxRewindDepth)
	}

	ng := &Game{
		State:        g.base.state.Clone(),
		Players:      make([]*player.Player, g.State.NumPlayers),
		Common:       player.New(-1, true),
		Meta:         make(map[int]*card.ConvData),
		Convention:   g.Convention,
		CatchingUp:   true,
		ForcedInterp: map[int]Interp{turn: forced},
		RewindDepth:  g.RewindDepth + 1,
		base:         g.base,
	}
	for i := range ng.Players {
		ng.Players[i] = player.New(i, false)
	}

	for _, pub := range g.history {
		if err := ng.Handle(pub); err != nil {
			return nil, err
		}
	}
	return ng, nil
}
