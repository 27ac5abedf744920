package record

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lzy117/accountint-app/internal/common"
	"github.com/lzy117/accountint-app/internal/model"
	"github.com/lzy117/accountint-app/internal/service"
)

// Service orchestrates record creation, retrieval, and deletion against
// the persistence layer.
type Service struct {
	storage service.Storage
	audit   service.AuditLogger
	retry   service.RetryOptions
}

// NewService creates a record service. The audit logger is optional;
// pass nil to disable creation auditing.
func NewService(storage service.Storage, audit service.AuditLogger) *Service {
	return &Service{
		storage: storage,
		audit:   audit,
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     500 * time.Millisecond,
			Multiplier:   2.0,
		},
	}
}

// Create validates raw input and persists it as a new record. On
// validation failure the storage layer is never called and the
// validation error propagates untouched.
func (s *Service) Create(ctx context.Context, raw RawInput) (*model.Record, error) {
	validated, err := Validate(raw)
	if err != nil {
		s.logAttempt(ctx, raw, "rejected: "+err.Error(), "")
		return nil, err
	}

	rec := &model.Record{
		Type:      validated.Type,
		Amount:    validated.Amount,
		Date:      validated.Date,
		Note:      validated.Note,
		Tags:      []model.Tag{},
		Photos:    []model.Photo{},
		CreatedAt: time.Now().UTC(),
	}

	// A locked database is the one save failure worth retrying; anything
	// else fails the first attempt.
	var id string
	err = common.WithRetry(ctx, func() error {
		var saveErr error
		id, saveErr = s.storage.SaveRecord(ctx, rec)
		if saveErr != nil && !common.IsRetryable(saveErr) {
			return &common.RetryableError{Err: saveErr, Retryable: false}
		}
		return saveErr
	}, s.retry)
	if err != nil {
		s.logAttempt(ctx, raw, "storage failure: "+err.Error(), "")
		return nil, common.NewStorageError("save record", err)
	}
	rec.ID = id

	s.logAttempt(ctx, raw, "created", id)
	common.LogDebug("record created", common.Fields{"id": id, "type": rec.Type, "amount": rec.Amount})
	return rec, nil
}

// List returns records matching the filter. An empty result is a valid
// outcome and returns an empty slice, never an error.
func (s *Service) List(ctx context.Context, filter service.RecordFilter) ([]model.Record, error) {
	records, err := s.storage.GetRecords(ctx, filter)
	if err != nil {
		return nil, common.NewStorageError("get records", err)
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

// Get returns a single record by ID, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*model.Record, error) {
	rec, err := s.storage.GetRecordByID(ctx, id)
	if err != nil {
		return nil, common.NewStorageError("get record", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: record %s", common.ErrNotFound, id)
	}
	return rec, nil
}

// Delete removes a record and any receipt photos it owns from disk.
// It reports whether the record existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	photos, err := s.storage.GetPhotos(ctx, id)
	if err != nil {
		return false, common.NewStorageError("get photos", err)
	}

	for _, photo := range photos {
		if removeErr := os.Remove(photo.FilePath); removeErr != nil && !os.IsNotExist(removeErr) {
			// A stale file should not block the delete.
			common.LogError(removeErr, "failed to remove photo file",
				common.Fields{"record_id": id, "path": photo.FilePath})
		}
	}

	deleted, err := s.storage.DeleteRecord(ctx, id)
	if err != nil {
		return false, common.NewStorageError("delete record", err)
	}
	return deleted, nil
}

// Prune deletes all records dated strictly before cutoff and returns the
// number removed.
func (s *Service) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	count, err := s.storage.DeleteRecordsBefore(ctx, model.DateOnly(cutoff))
	if err != nil {
		return 0, common.NewStorageError("prune records", err)
	}
	return count, nil
}

// AddTag attaches a tag to an existing record. Attaching the same tag
// name twice is a no-op. The record must exist.
func (s *Service) AddTag(ctx context.Context, recordID, tagName string) (*model.Tag, error) {
	tagName = strings.TrimSpace(tagName)
	if tagName == "" {
		return nil, validationErrorf(ErrMissingField, "tag name is required")
	}

	if _, err := s.Get(ctx, recordID); err != nil {
		return nil, err
	}

	tag, err := s.storage.AddTag(ctx, recordID, tagName)
	if err != nil {
		return nil, common.NewStorageError("add tag", err)
	}
	return tag, nil
}

// RemoveTag detaches a tag from an existing record. It reports whether
// the tag was attached. The record must exist.
func (s *Service) RemoveTag(ctx context.Context, recordID, tagName string) (bool, error) {
	tagName = strings.TrimSpace(tagName)
	if tagName == "" {
		return false, validationErrorf(ErrMissingField, "tag name is required")
	}

	if _, err := s.Get(ctx, recordID); err != nil {
		return false, err
	}

	removed, err := s.storage.RemoveTag(ctx, recordID, tagName)
	if err != nil {
		return false, common.NewStorageError("remove tag", err)
	}
	return removed, nil
}

// AddPhoto attaches a photo path to an existing record. The record must
// exist; the file itself is not required to, since attachment may happen
// before the image lands on disk.
func (s *Service) AddPhoto(ctx context.Context, recordID, filePath string) (*model.Photo, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, validationErrorf(ErrMissingField, "photo path is required")
	}

	if _, err := s.Get(ctx, recordID); err != nil {
		return nil, err
	}

	photo, err := s.storage.AddPhoto(ctx, recordID, filePath)
	if err != nil {
		return nil, common.NewStorageError("add photo", err)
	}
	return photo, nil
}

// logAttempt records one creation attempt with the injected audit logger,
// if any. Audit failures are logged and swallowed; auditing must never
// change the outcome of a create.
func (s *Service) logAttempt(ctx context.Context, raw RawInput, outcome, recordID string) {
	if s.audit == nil {
		return
	}

	entry := service.AuditEntry{
		AttemptedAt: time.Now().UTC(),
		Outcome:     outcome,
		RecordID:    recordID,
	}
	if raw.Type != nil {
		entry.RawType = *raw.Type
	}
	if raw.Amount != nil {
		entry.RawAmount = raw.Amount.String()
	}
	if raw.Date != nil {
		entry.RawDate = raw.Date.String()
	}
	if raw.Note != nil {
		entry.Note = *raw.Note
	}

	if err := s.audit.LogAttempt(ctx, entry); err != nil {
		common.LogError(err, "audit log write failed", common.Fields{"outcome": outcome})
	}
}
