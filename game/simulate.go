package game

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/player"
)

// Clone returns an independent deep copy of the Game for hypothetical
// simulation (§5 "a deep clone is taken before any hypothetical
// step"). The clone shares the immutable Variant and Convention
// strategy but owns every mutable belief structure outright.
func (g *Game) Clone() *Game {
	clone := &Game{
		State:      g.State.Clone(),
		Players:    make([]*player.Player, len(g.Players)),
		Common:     g.Common.Clone(),
		Meta:       make(map[int]*card.ConvData, len(g.Meta)),
		Convention: g.Convention,
		CatchingUp: true, // simulation clones never emit side channels
		LastMove:   g.LastMove,
	}
	for i, p := range g.Players {
		clone.Players[i] = p.Clone()
	}
	for order, m := range g.Meta {
		clone.Meta[order] = m.Clone()
	}
	if g.Waiting != nil {
		wc := *g.Waiting
		wc.ReceiverHand = append([]int(nil), g.Waiting.ReceiverHand...)
		clone.Waiting = &wc
	}
	clone.base = g.base
	return clone
}
