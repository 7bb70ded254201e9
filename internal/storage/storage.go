// Package storage defines the cycle journal interface and its implementations.
package storage

import (
	"context"

	"homework_bot/internal/model"
)

// Journal is an append-only record of poll cycles.
// The poller only writes to it; nothing is restored from it on start.
type Journal interface {
	Append(ctx context.Context, entry *model.CycleEntry) error
	Recent(ctx context.Context, limit int) ([]model.CycleEntry, error)
	Close() error
}

// Nop is a Journal that keeps nothing. It is used when no database is configured.
type Nop struct{}

// Append discards entry.
func (Nop) Append(context.Context, *model.CycleEntry) error { return nil }

// Recent always returns no entries.
func (Nop) Recent(context.Context, int) ([]model.CycleEntry, error) { return nil, nil }

// Close does nothing.
func (Nop) Close() error { return nil }
