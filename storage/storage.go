package storage

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS game_history (
	id UUID PRIMARY KEY,
	played_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	variant_name TEXT NOT NULL,
	player_names TEXT[] NOT NULL,
	score INT NOT NULL,
	strikes SMALLINT NOT NULL,
	max_score INT NOT NULL,
	end_reason TEXT NOT NULL,
	turn_count INT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_game_history_variant ON game_history(variant_name);
CREATE INDEX IF NOT EXISTS idx_game_history_score ON game_history(variant_name, score DESC);
`

// Store persists finished-game summaries (§A.2). There is no Elo or
// win/loss tracking: Hanabi is cooperative, the only outcome worth
// ranking is the final score against a variant's max achievable score.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the game_history table
// exists. If databaseURL is empty, NewStore returns (nil, nil) and no
// persistence occurs — callers treat a nil *Store as a no-op sink.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	for _, q := range strings.Split(strings.TrimSpace(createTableSQL), ";") {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, err := pool.Exec(ctx, q); err != nil {
			pool.Close()
			return nil, err
		}
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// InsertGameResult records a finished game's outcome (§A.2: a game
// ends by Ended() — perfect play, a third strike, or deck exhaustion).
func (s *Store) InsertGameResult(ctx context.Context, matchID, variantName string, playerNames []string, score, strikes, maxScore int, endReason string, turnCount int) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO game_history (id, variant_name, player_names, score, strikes, max_score, end_reason, turn_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		matchID, variantName, playerNames, score, strikes, maxScore, endReason, turnCount)
	return err
}

// GameRecord is a single finished-game summary row.
type GameRecord struct {
	ID          string   `json:"id"`
	PlayedAt    string   `json:"played_at"` // ISO8601
	VariantName string   `json:"variant_name"`
	PlayerNames []string `json:"player_names"`
	Score       int      `json:"score"`
	Strikes     int      `json:"strikes"`
	MaxScore    int      `json:"max_score"`
	EndReason   string   `json:"end_reason"`
	TurnCount   int      `json:"turn_count"`
}

// ListByVariant returns finished games for variantName, newest first.
func (s *Store) ListByVariant(ctx context.Context, variantName string, limit, offset int) ([]GameRecord, error) {
	if s == nil || s.pool == nil {
		return []GameRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, played_at, variant_name, player_names, score, strikes, max_score, end_reason, turn_count
		FROM game_history
		WHERE variant_name = $1
		ORDER BY played_at DESC
		LIMIT $2 OFFSET $3`,
		variantName, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGameRecords(rows)
}

// GetBestScore returns the highest-scoring finished game recorded for
// variantName, or nil if none exist.
func (s *Store) GetBestScore(ctx context.Context, variantName string) (*GameRecord, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, played_at, variant_name, player_names, score, strikes, max_score, end_reason, turn_count
		FROM game_history
		WHERE variant_name = $1
		ORDER BY score DESC, played_at ASC
		LIMIT 1`,
		variantName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records, err := scanGameRecords(rows)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

func scanGameRecords(rows pgx.Rows) ([]GameRecord, error) {
	var out []GameRecord
	for rows.Next() {
		var r GameRecord
		var playedAt time.Time
		if err := rows.Scan(&r.ID, &playedAt, &r.VariantName, &r.PlayerNames, &r.Score, &r.Strikes, &r.MaxScore, &r.EndReason, &r.TurnCount); err != nil {
			return nil, err
		}
		r.PlayedAt = playedAt.UTC().Format(time.RFC3339)
		out = append(out, r)
	}
	return out, rows.Err()
}
