package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lzy117/accountint-app/internal/common"
	"github.com/lzy117/accountint-app/internal/model"
	"github.com/lzy117/accountint-app/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reminderStorage stubs the storage calls the reminder service makes.
type reminderStorage struct {
	service.Storage
	records   map[string]*model.Record
	reminders map[string]*model.Reminder
	nextID    int
}

func newReminderStorage() *reminderStorage {
	return &reminderStorage{
		records:   make(map[string]*model.Record),
		reminders: make(map[string]*model.Reminder),
	}
}

func (s *reminderStorage) GetRecordByID(_ context.Context, id string) (*model.Record, error) {
	return s.records[id], nil
}

func (s *reminderStorage) SaveReminder(_ context.Context, reminder *model.Reminder) (string, error) {
	s.nextID++
	id := fmt.Sprintf("rem-%d", s.nextID)
	saved := *reminder
	saved.ID = id
	s.reminders[id] = &saved
	return id, nil
}

func (s *reminderStorage) GetPendingReminders(_ context.Context) ([]model.Reminder, error) {
	var out []model.Reminder
	for _, reminder := range s.reminders {
		if !reminder.Completed {
			out = append(out, *reminder)
		}
	}
	return out, nil
}

func (s *reminderStorage) CompleteReminder(_ context.Context, id string) (bool, error) {
	reminder, ok := s.reminders[id]
	if !ok || reminder.Completed {
		return false, nil
	}
	reminder.Completed = true
	return true, nil
}

func (s *reminderStorage) DeleteReminder(_ context.Context, id string) (bool, error) {
	if _, ok := s.reminders[id]; !ok {
		return false, nil
	}
	delete(s.reminders, id)
	return true, nil
}

func TestService_Create(t *testing.T) {
	store := newReminderStorage()
	svc := NewService(store)

	due := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	reminder, err := svc.Create(context.Background(), "  pay rent  ", due, "")
	require.NoError(t, err)

	assert.Equal(t, "rem-1", reminder.ID)
	assert.Equal(t, "pay rent", reminder.Title, "title should be trimmed")
	assert.True(t, reminder.RemindAt.Equal(due))
	assert.False(t, reminder.Completed)
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newReminderStorage())
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ", time.Now(), "")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = svc.Create(ctx, "no due time", time.Time{}, "")
	assert.ErrorIs(t, err, ErrZeroTime)
}

func TestService_Create_RelatedRecordMustExist(t *testing.T) {
	store := newReminderStorage()
	store.records["rec-1"] = &model.Record{ID: "rec-1"}
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, "linked", time.Now(), "rec-missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	reminder, err := svc.Create(ctx, "linked", time.Now(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", reminder.RelatedRecordID)
}

func TestService_PendingCompleteDelete(t *testing.T) {
	store := newReminderStorage()
	svc := NewService(store)
	ctx := context.Background()

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)

	reminder, err := svc.Create(ctx, "one", time.Now().UTC(), "")
	require.NoError(t, err)

	pending, err = svc.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	done, err := svc.Complete(ctx, reminder.ID)
	require.NoError(t, err)
	assert.True(t, done)

	pending, err = svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	deleted, err := svc.Delete(ctx, reminder.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, reminder.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
