// Package reminder manages scheduled to-dos, optionally tied to records.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lzy117/accountint-app/internal/common"
	"github.com/lzy117/accountint-app/internal/model"
	"github.com/lzy117/accountint-app/internal/service"
)

var (
	// ErrEmptyTitle rejects reminders without a title.
	ErrEmptyTitle = errors.New("reminder title is required")
	// ErrZeroTime rejects reminders without a due time.
	ErrZeroTime = errors.New("reminder time is required")
)

// Service manages reminders against the persistence layer.
type Service struct {
	storage service.Storage
}

// NewService creates a reminder service.
func NewService(storage service.Storage) *Service {
	return &Service{storage: storage}
}

// Create stores a new reminder. A non-empty relatedRecordID must point
// at an existing record.
func (s *Service) Create(ctx context.Context, title string, remindAt time.Time, relatedRecordID string) (*model.Reminder, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if remindAt.IsZero() {
		return nil, ErrZeroTime
	}

	if relatedRecordID != "" {
		rec, err := s.storage.GetRecordByID(ctx, relatedRecordID)
		if err != nil {
			return nil, common.NewStorageError("get record", err)
		}
		if rec == nil {
			return nil, fmt.Errorf("%w: record %s", common.ErrNotFound, relatedRecordID)
		}
	}

	reminder := &model.Reminder{
		Title:           title,
		RemindAt:        remindAt,
		RelatedRecordID: relatedRecordID,
		CreatedAt:       time.Now().UTC(),
	}
	id, err := s.storage.SaveReminder(ctx, reminder)
	if err != nil {
		return nil, common.NewStorageError("save reminder", err)
	}
	reminder.ID = id
	return reminder, nil
}

// Pending returns uncompleted reminders, soonest first.
func (s *Service) Pending(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := s.storage.GetPendingReminders(ctx)
	if err != nil {
		return nil, common.NewStorageError("get reminders", err)
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	return reminders, nil
}

// Complete marks a reminder done, reporting whether it was still pending.
func (s *Service) Complete(ctx context.Context, id string) (bool, error) {
	done, err := s.storage.CompleteReminder(ctx, id)
	if err != nil {
		return false, common.NewStorageError("complete reminder", err)
	}
	return done, nil
}

// Delete removes a reminder, reporting whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.storage.DeleteReminder(ctx, id)
	if err != nil {
		return false, common.NewStorageError("delete reminder", err)
	}
	return deleted, nil
}
