package card

import "hanabi-reactor-server/identity"

// Link records multi-card uncertainty shared across a set of orders
// (§4.5.4). A Promised link says "one of these orders is exactly ID,
// the card the clue-Target originally received"; an Unpromised link
// says "these orders collectively exhaust this set of identities".
type Link struct {
	Orders []int

	// Promised is true for a Promised link; ID and Target are only
	// meaningful in that case. Unpromised links instead populate IDs.
	Promised bool
	ID       identity.Identity
	Target   int

	IDs identity.Set
}

// Resolved reports whether only one candidate order remains consistent
// with the link (the link can be discarded once that happens).
func (l Link) Resolved(stillPossible func(order int) bool) bool {
	count := 0
	for _, o := range l.Orders {
		if stillPossible(o) {
			count++
		}
	}
	return count <= 1
}

// WaitingConnection is the single active reactive/response-inversion
// plan captured at clue time (§3). At most one is active per Game.
type WaitingConnection struct {
	Giver    int
	Reacter  int
	Receiver int

	// ReceiverHand snapshots the receiver's hand order at clue time, so
	// the modular-arithmetic slot rule (§4.6.3) resolves against the
	// hand as it stood then, not as it stands after later draws.
	ReceiverHand []int

	Clue      BaseClueRef
	FocusSlot int
	Inverted  bool
	Turn      int
}

// BaseClueRef avoids importing variant from card; it duplicates the
// two fields of variant.BaseClue that the waiting connection needs to
// remember (kind and value).
type BaseClueRef struct {
	Kind  ClueKind
	Value int
}
