package database

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rkaran/silverdash/internal/model"
	"github.com/rkaran/silverdash/internal/purchases"
)

// StatesTable holds one row per state.
const StatesTable = "state_purchases"

const createStatesTable = `
	CREATE TABLE IF NOT EXISTS state_purchases (
		state               TEXT PRIMARY KEY,
		silver_purchased_kg DOUBLE PRECISION NOT NULL CHECK (silver_purchased_kg >= 0),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// DB is the subset of pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Ping(ctx context.Context) error
}

// StateStore reads and writes the state purchase table.
type StateStore struct {
	db     DB
	logger *slog.Logger
}

// NewStateStore creates a store over db.
func NewStateStore(db DB, logger *slog.Logger) *StateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateStore{db: db, logger: logger}
}

// EnsureSchema creates the state table if it does not exist.
func (s *StateStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createStatesTable); err != nil {
		return fmt.Errorf("create %s: %w", StatesTable, err)
	}
	return nil
}

type stateRow struct {
	State      string  `db:"state"`
	QuantityKg float64 `db:"silver_purchased_kg"`
}

// Load reads every state ordered by name.
func (s *StateStore) Load(ctx context.Context) (model.Dataset, error) {
	rows, err := s.db.Query(ctx, `
		SELECT state, silver_purchased_kg
		FROM state_purchases
		ORDER BY state
	`)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("query %s: %w", StatesTable, err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[stateRow])
	if err != nil {
		return model.Dataset{}, fmt.Errorf("scan %s: %w", StatesTable, err)
	}
	if len(collected) == 0 {
		return model.Dataset{}, purchases.ErrNoRows
	}

	out := make([]model.StatePurchase, len(collected))
	for i, r := range collected {
		out[i] = model.StatePurchase{State: r.State, QuantityKg: r.QuantityKg}
	}

	return model.Dataset{
		Rows:     out,
		Source:   model.SourcePostgres,
		Origin:   StatesTable,
		LoadedAt: time.Now(),
	}, nil
}

// SaveStates upserts rows. Rows naming the same state are summed first.
// It returns how many states were inserted and how many were updated.
func (s *StateStore) SaveStates(ctx context.Context, rows []model.StatePurchase) (inserted, updated int, err error) {
	merged := mergeStates(rows)
	if len(merged) == 0 {
		return 0, 0, nil
	}

	batch := &pgx.Batch{}
	for _, r := range merged {
		batch.Queue(`
			INSERT INTO state_purchases (state, silver_purchased_kg, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (state) DO UPDATE
			SET silver_purchased_kg = EXCLUDED.silver_purchased_kg, updated_at = now()
			RETURNING (xmax = 0)
		`, r.State, r.QuantityKg)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for _, r := range merged {
		var isInsert bool
		if err := results.QueryRow().Scan(&isInsert); err != nil {
			return inserted, updated, fmt.Errorf("upsert %s: %w", r.State, err)
		}
		if isInsert {
			inserted++
		} else {
			updated++
		}
	}

	s.logger.Info("Saved state purchases", "inserted", inserted, "updated", updated)
	return inserted, updated, nil
}

// Ping checks the database connection.
func (s *StateStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// mergeStates trims names, drops blanks and sums duplicates, ordered by name.
func mergeStates(rows []model.StatePurchase) []model.StatePurchase {
	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.State)
		if name == "" {
			continue
		}
		totals[name] += r.QuantityKg
	}

	out := make([]model.StatePurchase, 0, len(totals))
	for name, q := range totals {
		out = append(out, model.StatePurchase{State: name, QuantityKg: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}
