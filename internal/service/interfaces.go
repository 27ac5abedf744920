// Package service defines the contracts between the ledger core and its collaborators.
package service

import (
	"context"
	"time"

	"github.com/lzy117/accountint-app/internal/model"
)

// RecordFilter defines filtering options for record queries.
// Nil fields are ignored; all set fields must match.
type RecordFilter struct {
	Type       *model.RecordType
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *float64
	MaxAmount  *float64
	Tag        string
	NoteSearch string
	Limit      int
	Offset     int
}

// CategoryTotal is an aggregated expense amount for one category label.
type CategoryTotal struct {
	Category string
	Total    float64
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Record operations
	SaveRecord(ctx context.Context, rec *model.Record) (string, error)
	GetRecordByID(ctx context.Context, id string) (*model.Record, error)
	GetRecords(ctx context.Context, filter RecordFilter) ([]model.Record, error)
	DeleteRecord(ctx context.Context, id string) (bool, error)
	DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Tag operations
	AddTag(ctx context.Context, recordID, tagName string) (*model.Tag, error)
	RemoveTag(ctx context.Context, recordID, tagName string) (bool, error)

	// Photo operations
	AddPhoto(ctx context.Context, recordID, filePath string) (*model.Photo, error)
	GetPhotos(ctx context.Context, recordID string) ([]model.Photo, error)

	// Reminder operations
	SaveReminder(ctx context.Context, reminder *model.Reminder) (string, error)
	GetPendingReminders(ctx context.Context) ([]model.Reminder, error)
	CompleteReminder(ctx context.Context, id string) (bool, error)
	DeleteReminder(ctx context.Context, id string) (bool, error)

	// Report aggregates
	SumByType(ctx context.Context, recordType model.RecordType, start, end time.Time) (float64, error)
	ExpenseRecordsByPeriod(ctx context.Context, start, end time.Time) ([]model.Record, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a storage transaction.
type Transaction interface {
	Commit() error
	Rollback() error
}

// AuditEntry captures one record-creation attempt, valid or not.
type AuditEntry struct {
	AttemptedAt time.Time
	RawType     string
	RawAmount   string
	RawDate     string
	Note        string
	Outcome     string
	RecordID    string
}

// AuditLogger receives every creation attempt for later inspection.
// Implementations must tolerate concurrent callers. A nil logger on the
// record service disables auditing entirely.
type AuditLogger interface {
	LogAttempt(ctx context.Context, entry AuditEntry) error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
