// Package store provides conversation history persistence.
package store

import (
	"context"

	"github.com/deepmonapara9/invoice-agent/internal/domain"
)

// Repository defines the interface for persisting conversation history.
type Repository interface {
	// AppendMessage appends a message to a session's history.
	AppendMessage(ctx context.Context, sessionID string, msg domain.StoredMessage) error

	// History retrieves up to limit most recent messages for a session,
	// oldest first.
	History(ctx context.Context, sessionID string, limit int) ([]domain.StoredMessage, error)

	// ClearSession removes all history for one session and returns the
	// number of messages deleted.
	ClearSession(ctx context.Context, sessionID string) (int64, error)

	// ClearAll removes history for every session.
	ClearAll(ctx context.Context) (int64, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
