package card

import "hanabi-reactor-server/identity"

// IDOptions controls how Thought.Identity resolves a belief to a
// concrete identity.
type IDOptions struct {
	// Infer allows falling back to a singleton Inferred set when
	// Possible has more than one member.
	Infer bool
	// Symmetric requests the common (all-player) viewpoint rather than
	// a single player's — in practice this only matters for the
	// card's own Base, which a holder never uses for their own hand.
	Symmetric bool
}

// Thought is one player's belief about one order: the still-possible
// identities (possible), the subset consistent with convention
// (inferred), and bookkeeping for inference resets.
type Thought struct {
	Order      int
	Base       *identity.Identity // the true identity, or nil if hidden from this viewpoint
	Possible   identity.Set
	Inferred   identity.Set
	OldInferred *identity.Set // snapshot used while testing a response inversion
	InfoLock   *identity.Set // post-play target's minimum inference set, preserved across resets
	Reset      bool
}

// NewThought creates a Thought whose inferred set starts equal to its
// possible set.
func NewThought(order int, base *identity.Identity, possible identity.Set) *Thought {
	return &Thought{Order: order, Base: base, Possible: possible, Inferred: possible}
}

// Possibilities returns Inferred, falling back to Possible if Inferred
// has collapsed to empty (should not normally happen outside of a
// Reset window, but keeps callers safe mid-update).
func (t *Thought) Possibilities() identity.Set {
	if t.Inferred.IsEmpty() {
		return t.Possible
	}
	return t.Inferred
}

// ResetInferences re-seeds Inferred from Possible (intersected with
// InfoLock if one is set) and marks Reset. Invariant (§3): if Reset is
// true, Inferred == Possible ∩ InfoLock (or == Possible with no lock).
func (t *Thought) ResetInferences() {
	t.Reset = true
	t.Inferred = t.Possible
	if t.InfoLock != nil {
		t.Inferred = t.Inferred.Intersect(*t.InfoLock)
	}
}

// Identity resolves the Thought to a concrete identity the way the
// empathy engine does: a singleton Possible always wins; otherwise,
// without Symmetric, a known Base is used (a player's own holding is
// never resolved this way since Base is nil in their own viewpoint);
// finally, with Infer requested, a singleton Inferred set resolves.
func (t *Thought) Identity(opts IDOptions) (identity.Identity, bool) {
	if id, ok := t.Possible.Only(); ok {
		return id, true
	}
	if !opts.Symmetric && t.Base != nil {
		return *t.Base, true
	}
	if opts.Infer {
		if id, ok := t.Inferred.Only(); ok {
			return id, true
		}
	}
	return identity.Identity{}, false
}

// Is reports whether id matches the Thought's resolved identity under
// default (non-symmetric, non-inferring) options.
func (t *Thought) Is(id identity.Identity) bool {
	got, ok := t.Identity(IDOptions{})
	return ok && got == id
}

// Clone returns an independent deep copy for simulation (§5).
func (t *Thought) Clone() *Thought {
	clone := *t
	if t.Base != nil {
		base := *t.Base
		clone.Base = &base
	}
	if t.OldInferred != nil {
		old := *t.OldInferred
		clone.OldInferred = &old
	}
	if t.InfoLock != nil {
		lock := *t.InfoLock
		clone.InfoLock = &lock
	}
	return &clone
}

// Matches compares two Thoughts' resolved identities.
func (t *Thought) Matches(other *Thought, opts IDOptions) bool {
	a, ok := t.Identity(IDOptions{Infer: opts.Infer, Symmetric: opts.Symmetric})
	if !ok {
		return false
	}
	b, ok := other.Identity(IDOptions{Infer: opts.Infer, Symmetric: opts.Symmetric})
	return ok && a == b
}
