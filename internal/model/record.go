// Package model defines the core domain types for the ledger.
package model

import "time"

// RecordType indicates whether a record is income or an expense.
type RecordType string

const (
	// TypeIncome marks money coming in.
	TypeIncome RecordType = "Income"
	// TypeExpense marks money going out.
	TypeExpense RecordType = "Expense"
)

// Valid reports whether the type is one of the two known values.
func (t RecordType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Record represents a single income or expense entry.
type Record struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
	Type      RecordType
	Note      string
	Tags      []Tag
	Photos    []Photo
	Amount    float64
}

// Tag is a user-assigned label on a record.
type Tag struct {
	ID   string
	Name string
}

// Photo is a receipt image attached to a record.
type Photo struct {
	ID       string
	FilePath string
}

// DateOnly truncates a timestamp to its calendar date in UTC.
// Records store dates, not instants; two records on the same day
// compare equal regardless of the wall clock they were entered at.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
