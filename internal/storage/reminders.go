package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lzy117/accountint-app/internal/model"
)

// SaveReminder inserts a new reminder and returns its generated identifier.
func (s *SQLiteStorage) SaveReminder(ctx context.Context, reminder *model.Reminder) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateReminder(reminder); err != nil {
		return "", err
	}

	id := uuid.NewString()
	createdAt := reminder.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var related any
	if reminder.RelatedRecordID != "" {
		related = reminder.RelatedRecordID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, title, remind_at, completed, related_record_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, reminder.Title, reminder.RemindAt, reminder.Completed, related, createdAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert reminder: %w", err)
	}
	return id, nil
}

// GetPendingReminders returns all uncompleted reminders, soonest first.
func (s *SQLiteStorage) GetPendingReminders(ctx context.Context) ([]model.Reminder, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, remind_at, completed, COALESCE(related_record_id, ''), created_at
		FROM reminders
		WHERE completed = 0
		ORDER BY remind_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	reminders := []model.Reminder{}
	for rows.Next() {
		var reminder model.Reminder
		if err := rows.Scan(
			&reminder.ID, &reminder.Title, &reminder.RemindAt,
			&reminder.Completed, &reminder.RelatedRecordID, &reminder.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}
	return reminders, nil
}

// CompleteReminder marks a reminder done, reporting whether it existed
// and was still pending.
func (s *SQLiteStorage) CompleteReminder(ctx context.Context, id string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(id, "id"); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE reminders SET completed = 1 WHERE id = ? AND completed = 0`, id)
	if err != nil {
		return false, fmt.Errorf("failed to complete reminder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteReminder removes a reminder, reporting whether it existed.
func (s *SQLiteStorage) DeleteReminder(ctx context.Context, id string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(id, "id"); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete reminder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}
