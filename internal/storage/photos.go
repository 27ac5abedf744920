package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lzy117/accountint-app/internal/common"
	"github.com/lzy117/accountint-app/internal/model"
)

// AddPhoto attaches a photo path to a record.
func (s *SQLiteStorage) AddPhoto(ctx context.Context, recordID, filePath string) (*model.Photo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return nil, err
	}
	if err := validateString(filePath, "filePath"); err != nil {
		return nil, err
	}

	var attached int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM photos WHERE record_id = ? AND file_path = ?`,
		recordID, filePath).Scan(&attached)
	if err != nil {
		return nil, fmt.Errorf("failed to check photo: %w", err)
	}
	if attached > 0 {
		return nil, fmt.Errorf("%w: photo %s", common.ErrDuplicateEntry, filePath)
	}

	photo := model.Photo{ID: uuid.NewString(), FilePath: filePath}
	// Explicit timestamp: CURRENT_TIMESTAMP only has second precision,
	// which loses attachment order for back-to-back inserts.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO photos (id, record_id, file_path, created_at)
		VALUES (?, ?, ?, ?)`, photo.ID, recordID, photo.FilePath, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert photo: %w", err)
	}
	return &photo, nil
}

// GetPhotos returns a record's photos in attachment order.
func (s *SQLiteStorage) GetPhotos(ctx context.Context, recordID string) ([]model.Photo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return nil, err
	}
	return s.loadPhotos(ctx, recordID)
}

func (s *SQLiteStorage) loadPhotos(ctx context.Context, recordID string) ([]model.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_path
		FROM photos
		WHERE record_id = ?
		ORDER BY created_at, id`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	photos := []model.Photo{}
	for rows.Next() {
		var photo model.Photo
		if err := rows.Scan(&photo.ID, &photo.FilePath); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}
	return photos, nil
}
