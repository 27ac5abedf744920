// Package storage provides the SQLite persistence layer for the ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lzy117/accountint-app/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrInvalidReminder = errors.New("invalid reminder")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord ensures a record is well-formed before it touches the
// database. The record service is the only writer, so a failure here is
// a programming error rather than bad user input.
func validateRecord(rec *model.Record) error {
	if rec == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if !rec.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRecord, rec.Type)
	}
	if rec.Amount <= 0 {
		return fmt.Errorf("%w: non-positive amount %v", ErrInvalidRecord, rec.Amount)
	}
	if rec.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	return nil
}

// validateReminder ensures a reminder is well-formed.
func validateReminder(reminder *model.Reminder) error {
	if reminder == nil {
		return fmt.Errorf("%w: reminder", ErrNilParameter)
	}
	if strings.TrimSpace(reminder.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidReminder)
	}
	if reminder.RemindAt.IsZero() {
		return fmt.Errorf("%w: missing remind time", ErrInvalidReminder)
	}
	return nil
}

// validateDateRange ensures start does not come after end.
func validateDateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("start date %v must not be after end date %v", start, end)
	}
	return nil
}
