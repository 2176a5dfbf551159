package storage

import "context"

// HistoryStore abstracts persistence for finished-game summaries.
// Implementations can be swapped for testing (mocks) or different
// backends.
type HistoryStore interface {
	InsertGameResult(ctx context.Context, matchID, variantName string, playerNames []string, score, strikes, maxScore int, endReason string, turnCount int) error
	ListByVariant(ctx context.Context, variantName string, limit, offset int) ([]GameRecord, error)
	GetBestScore(ctx context.Context, variantName string) (*GameRecord, error)

	Close()
}

// Ensure *Store implements HistoryStore at compile time.
var _ HistoryStore = (*Store)(nil)
