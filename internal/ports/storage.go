package ports

import (
	"context"
	"time"

	"github.com/dvidx/focusdial/internal/domain"
)

// SessionRepository defines the interface for completed-interval
// persistence. This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Save persists a completed interval record.
	Save(ctx context.Context, record *domain.SessionRecord) error

	// FindRecent retrieves records completed at or after the given time,
	// newest first.
	FindRecent(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error)

	// SearchNotes retrieves records whose note fuzzily matches the query.
	SearchNotes(ctx context.Context, query string) ([]*domain.SessionRecord, error)

	// SetNote attaches a note to an existing record.
	SetNote(ctx context.Context, id, note string) error

	// GetDailyStats returns aggregated statistics for a specific date.
	GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error)

	// ClearAll removes every record.
	ClearAll(ctx context.Context) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Sessions provides access to session record operations.
	Sessions() SessionRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
