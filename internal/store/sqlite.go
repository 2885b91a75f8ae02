package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"pricewatch/internal/models"
)

// SQLiteStore implements StateStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based state store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the required table.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- One record per symbol; state is the JSON-marshalled AlertState
	CREATE TABLE IF NOT EXISTS alert_state (
		symbol TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the persisted state for a symbol, or the zero state when the
// symbol has never been written.
func (s *SQLiteStore) Get(ctx context.Context, symbol string) (models.AlertState, error) {
	var state models.AlertState
	var raw string

	err := s.db.QueryRowContext(ctx,
		"SELECT state FROM alert_state WHERE symbol = ?", symbol).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("reading alert state for %s: %w", symbol, err)
	}

	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return models.AlertState{}, fmt.Errorf("decoding alert state for %s: %w", symbol, err)
	}
	return state, nil
}

// Put overwrites the persisted state for a symbol.
func (s *SQLiteStore) Put(ctx context.Context, symbol string, state models.AlertState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding alert state for %s: %w", symbol, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO alert_state (symbol, state, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(symbol) DO UPDATE SET
			state = excluded.state,
			updated_at = CURRENT_TIMESTAMP`,
		symbol, string(raw))
	if err != nil {
		return fmt.Errorf("writing alert state for %s: %w", symbol, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
