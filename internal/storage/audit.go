package storage

import (
	"context"
	"fmt"

	"github.com/lzy117/accountint-app/internal/service"
)

// LogAttempt stores one record-creation attempt in the audit log.
// SQLiteStorage therefore satisfies service.AuditLogger in addition to
// service.Storage; callers that want auditing pass the same storage to
// the record service twice.
func (s *SQLiteStorage) LogAttempt(ctx context.Context, entry service.AuditEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(entry.Outcome, "outcome"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (attempted_at, raw_type, raw_amount, raw_date, note, outcome, record_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.AttemptedAt, entry.RawType, entry.RawAmount, entry.RawDate,
		entry.Note, entry.Outcome, entry.RecordID)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// GetAuditLog returns the most recent creation attempts, newest first.
func (s *SQLiteStorage) GetAuditLog(ctx context.Context, limit int) ([]service.AuditEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT attempted_at, raw_type, raw_amount, raw_date, note, outcome, record_id
		FROM audit_log
		ORDER BY attempted_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []service.AuditEntry{}
	for rows.Next() {
		var entry service.AuditEntry
		if err := rows.Scan(
			&entry.AttemptedAt, &entry.RawType, &entry.RawAmount,
			&entry.RawDate, &entry.Note, &entry.Outcome, &entry.RecordID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log: %w", err)
	}
	return entries, nil
}
