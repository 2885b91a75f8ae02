// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"pricewatch/internal/models"
)

// StateStore persists per-symbol alert state as a durable key to JSON record.
type StateStore interface {
	// Get returns the state for a symbol. A symbol never written before
	// yields the zero state, not an error.
	Get(ctx context.Context, symbol string) (models.AlertState, error)
	// Put overwrites the state for a symbol.
	Put(ctx context.Context, symbol string, state models.AlertState) error
	// Lifecycle
	Close() error
}
