// Package clueresult computes the touched/filled/eliminated/bad-touch/
// playable counters the Evaluator's get_result scoring reads off a
// hypothetical clue (§2, §4.8). It stands alone so the Evaluator can
// reuse it without depending on the convention package directly.
package clueresult

import (
	"hanabi-reactor-server/frame"
	"hanabi-reactor-server/identity"
	"hanabi-reactor-server/player"
)

// ThoughtSnapshot is a value copy of the fields of a Thought that
// change under elimination, taken before a hypothetical clue so
// Compute can diff against the post-clue state.
type ThoughtSnapshot struct {
	Possible identity.Set
	Inferred identity.Set
}

// Capture snapshots every order's common-knowledge Thought.
func Capture(common *player.Player, orders []int) map[int]ThoughtSnapshot {
	out := make(map[int]ThoughtSnapshot, len(orders))
	for _, order := range orders {
		if t, ok := common.Thoughts[order]; ok {
			out[order] = ThoughtSnapshot{Possible: t.Possible, Inferred: t.Inferred}
		}
	}
	return out
}

// Result is the per-clue metric bundle (§2).
type Result struct {
	Touched      int
	Filled       int
	Eliminated   int
	BadTouch     int
	NewPlayables int
}

// Compute diffs the common-knowledge viewpoint's post-clue Thoughts for
// touched against the pre-clue snapshot.
func Compute(f frame.Frame, common *player.Player, before map[int]ThoughtSnapshot, target int, touched []int) Result {
	res := Result{Touched: len(touched)}

	beforePlayableCount := 0
	for order := range before {
		b := before[order]
		if b.Possible.IsEmpty() {
			continue
		}
		allPlayable := true
		for _, id := range b.Possible.ToSlice() {
			if !f.State.IsPlayable(id) {
				allPlayable = false
				break
			}
		}
		if allPlayable {
			beforePlayableCount++
		}
	}

	for _, order := range touched {
		b, ok := before[order]
		if !ok {
			continue
		}
		t := common.Thoughts[order]
		if t == nil {
			continue
		}

		if b.Possible.Len() > 1 && t.Possible.Len() == 1 {
			res.Filled++
		}

		if d := b.Inferred.Len() - t.Inferred.Len(); d > 0 {
			res.Eliminated += d
		}

		nonTrash, anyPlayable := 0, false
		for _, id := range t.Inferred.ToSlice() {
			if !f.State.IsBasicTrash(id) {
				nonTrash++
				if f.State.IsPlayable(id) {
					anyPlayable = true
				}
			}
		}
		if nonTrash > 1 && !anyPlayable {
			res.BadTouch++
		}
	}

	afterPlayable := common.ThinksPlayables(f, target)
	res.NewPlayables = len(afterPlayable) - beforePlayableCount
	if res.NewPlayables < 0 {
		res.NewPlayables = 0
	}

	return res
}
