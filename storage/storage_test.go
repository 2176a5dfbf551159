package storage

import (
	"context"
	"testing"
)

func TestNewStoreEmptyURLIsNoOp(t *testing.T) {
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error for empty databaseURL, got %v", err)
	}
	if store != nil {
		t.Fatalf("expected nil store for empty databaseURL, got %+v", store)
	}
}

func TestNilStoreMethodsAreNoOps(t *testing.T) {
	var store *Store
	ctx := context.Background()

	if err := store.InsertGameResult(ctx, "match-1", "No Variant", []string{"Alice", "Bob"}, 20, 0, 25, "perfect", 40); err != nil {
		t.Errorf("expected nil *Store InsertGameResult to be a no-op, got %v", err)
	}

	records, err := store.ListByVariant(ctx, "No Variant", 10, 0)
	if err != nil {
		t.Errorf("expected nil *Store ListByVariant to be a no-op, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty result from nil *Store, got %d records", len(records))
	}

	best, err := store.GetBestScore(ctx, "No Variant")
	if err != nil || best != nil {
		t.Errorf("expected nil result from nil *Store GetBestScore, got %+v, %v", best, err)
	}

	store.Close() // must not panic
}
