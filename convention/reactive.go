package convention

import (
	"log/slog"

	"hanabi-reactor-server/card"
	"hanabi-reactor-server/game"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/variant"
)

// mod5 computes the §4.6.3 modular-arithmetic slot rule: the result of
// (a - b) mod 5, mapped so a result of 0 becomes 5 (slots are
// 1-indexed).
func mod5(a, b int) int {
	m := ((a-b)%5 + 5) % 5
	if m == 0 {
		return 5
	}
	return m
}

// interpretReactive stores the waiting connection for a clue classified
// reactive (or forced-reactive via response inversion) (§4.6.3).
func (r *Reactor) interpretReactive(g *game.Game, giver, target, reacter int, list []int, clue variant.BaseClue, inverted bool) {
	newly := newlyTouched(g, list)
	if len(newly) == 0 {
		newly = list
	}
	if len(newly) == 0 {
		return
	}
	f := g.Frame()
	hand := append([]int{}, g.State.Hands[target]...)
	touchedSet := make(map[int]bool, len(list))
	for _, o := range list {
		touchedSet[o] = true
	}
	chop := chopBefore(f, hand, touchedSet)
	focus, _ := focusOf(hand, newly, chop)
	focusSlot := slotOf(hand, focus) + 1

	g.Waiting = &card.WaitingConnection{
		Giver:        giver,
		Reacter:      reacter,
		Receiver:     target,
		ReceiverHand: hand,
		Clue:         toClueRef(clue),
		FocusSlot:    focusSlot,
		Inverted:     inverted,
		Turn:         g.State.TurnCount,
	}
}

func toClueRef(clue variant.BaseClue) card.BaseClueRef {
	kind := card.ClueColour
	if clue.Kind == variant.ClueRank {
		kind = card.ClueRank
	}
	return card.BaseClueRef{Kind: kind, Value: clue.Value}
}

// InterpretReaction resolves the active waiting connection once the
// reacter plays or discards (§4.6.4). If the action doesn't match the
// reacter the connection is waiting on, it is left untouched (it may
// still resolve on a later turn, or be abandoned by a later clue).
func (r *Reactor) InterpretReaction(g *game.Game, playerIndex, order, reactSlot int, played bool, id identity.Identity) {
	wc := g.Waiting
	if wc == nil || playerIndex != wc.Reacter {
		return
	}
	defer func() { g.Waiting = nil }()

	targetSlot := mod5(wc.FocusSlot, reactSlot)
	if targetSlot-1 >= len(wc.ReceiverHand) {
		slog.Warn("missed reaction, cancelling waiting connection", "tag", "convention",
			"reacter", playerIndex, "order", order, "turn", g.State.TurnCount)
		return
	}
	receiverOrder := wc.ReceiverHand[targetSlot-1]

	status := card.StatusCalledToDiscard
	if (wc.Clue.Kind == card.ClueColour && !played) || (wc.Clue.Kind == card.ClueRank && played) {
		status = card.StatusCalledToPlay
	}
	setCalled(g, receiverOrder, status, wc.Giver)

	r.eliminateNewerContradictions(g, wc, targetSlot, id)
}

// eliminateNewerContradictions removes id as a possibility from every
// receiver slot strictly newer than targetSlot: the reacter could have
// targeted one of those instead by reacting differently, and chose not
// to, so none of them are id (§4.6.4).
func (r *Reactor) eliminateNewerContradictions(g *game.Game, wc *card.WaitingConnection, targetSlot int, id identity.Identity) {
	for slot := 1; slot < targetSlot; slot++ {
		if slot-1 >= len(wc.ReceiverHand) {
			continue
		}
		order := wc.ReceiverHand[slot-1]
		for _, p := range g.Players {
			if t, ok := p.Thoughts[order]; ok {
				t.Possible = t.Possible.Without(id)
				t.Inferred = t.Inferred.Without(id)
			}
		}
		if t, ok := g.Common.Thoughts[order]; ok {
			t.Possible = t.Possible.Without(id)
			t.Inferred = t.Inferred.Without(id)
		}
	}
}
