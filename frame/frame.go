// Package frame provides the ephemeral, by-value view combining State
// and per-order ConvData that elimination and convention queries need
// (§4.3 "Frame"). A Frame borrows its fields; it never owns or mutates
// game lifecycle data itself.
package frame

import (
	"hanabi-reactor-server/card"
	"hanabi-reactor-server/state"
)

// Frame is a read-mostly combination of State and the ConvData vector,
// built fresh whenever a query needs both (cheap: two pointers).
type Frame struct {
	State *state.State
	Meta  map[int]*card.ConvData
}

// New builds a Frame over the given state and convention metadata.
func New(s *state.State, meta map[int]*card.ConvData) Frame {
	return Frame{State: s, Meta: meta}
}

// IsTouched reports whether order has ever been clued.
func (f Frame) IsTouched(order int) bool {
	c := f.State.Deck[order]
	return c != nil && c.Clued
}

// ConvOf returns the ConvData for order, or a fresh zero record if none
// has been recorded yet (should not normally happen once Draw has run).
func (f Frame) ConvOf(order int) *card.ConvData {
	if m, ok := f.Meta[order]; ok {
		return m
	}
	return card.NewConvData(order)
}

// ChopOrder returns the oldest unclued, unmarked order in a hand (the
// card that would be discarded if the hand had no better option), or
// -1 if every card is clued/called/chop-moved.
func ChopOrder(f Frame, hand []int) int {
	// Hands are stored newest-first; the chop is the oldest entry, i.e.
	// the last element, so scan from the back.
	for i := len(hand) - 1; i >= 0; i-- {
		order := hand[i]
		m := f.ConvOf(order)
		if f.IsTouched(order) || m.Status != card.StatusNone {
			continue
		}
		return order
	}
	return -1
}

// IsLocked reports whether every card in hand is clued, called, or
// chop-moved, so no safe discard exists (§ "Locked").
func IsLocked(f Frame, hand []int) bool {
	return ChopOrder(f, hand) == -1
}
