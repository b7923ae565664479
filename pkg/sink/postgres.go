package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/gruptree/pkg/gruptree"
)

// PGStore loads extraction tables into PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to the database and ensures the target table
// exists.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS gruptree_edges (
			deck                  TEXT NOT NULL,
			date                  DATE NOT NULL,
			child                 TEXT NOT NULL,
			parent                TEXT NOT NULL,
			type                  TEXT NOT NULL,
			terminal_pressure     DOUBLE PRECISION,
			vfp_table             INTEGER,
			alq                   DOUBLE PRECISION,
			sub_sea_manifold      TEXT,
			lift_gas_flow_through TEXT,
			alq_surface_eqv       TEXT
		);
		CREATE INDEX IF NOT EXISTS gruptree_edges_deck_date_idx
			ON gruptree_edges (deck, date);
	`
	_, err := s.pool.Exec(ctx, query)
	return err
}

// InsertTable loads all rows of a table under the given deck name.
// Earlier rows for the same deck are replaced, so re-running an
// extraction is idempotent at the database level too.
func (s *PGStore) InsertTable(ctx context.Context, deckName string, t *gruptree.Table) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM gruptree_edges WHERE deck = $1`, deckName); err != nil {
		return fmt.Errorf("failed to clear previous rows: %w", err)
	}

	query := `
		INSERT INTO gruptree_edges (
			deck, date, child, parent, type,
			terminal_pressure, vfp_table, alq,
			sub_sea_manifold, lift_gas_flow_through, alq_surface_eqv
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	batch := &pgx.Batch{}
	for _, row := range t.Rows {
		batch.Queue(query,
			deckName,
			row.Date,
			row.Child,
			row.Parent,
			string(row.Type),
			row.Attrs.TerminalPressure,
			row.Attrs.VFPTable,
			row.Attrs.ALQ,
			row.Attrs.SubSeaManifold,
			row.Attrs.LiftGasFlowThrough,
			row.Attrs.ALQSurfaceEqv,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}
	return tx.Commit(ctx)
}

// Ping checks database connectivity
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool
func (s *PGStore) Close() {
	s.pool.Close()
}
