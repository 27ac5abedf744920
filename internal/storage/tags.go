package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lzy117/accountint-app/internal/model"
)

// AddTag attaches a tag to a record, creating the tag row on first use.
// Attaching the same name to the same record twice is a no-op returning
// the existing tag.
func (s *SQLiteStorage) AddTag(ctx context.Context, recordID, tagName string) (*model.Tag, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return nil, err
	}
	if err := validateString(tagName, "tagName"); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var tag model.Tag
	err = tx.QueryRowContext(ctx,
		`SELECT id, name FROM tags WHERE name = ?`, tagName,
	).Scan(&tag.ID, &tag.Name)
	if err == sql.ErrNoRows {
		tag = model.Tag{ID: uuid.NewString(), Name: tagName}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO tags (id, name) VALUES (?, ?)`, tag.ID, tag.Name); err != nil {
			return nil, fmt.Errorf("failed to insert tag: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to query tag: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO record_tags (record_id, tag_id)
		VALUES (?, ?)`, recordID, tag.ID); err != nil {
		return nil, fmt.Errorf("failed to link tag: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tag: %w", err)
	}
	return &tag, nil
}

// RemoveTag detaches a tag from a record, reporting whether a link existed.
// The tag row itself is kept for reuse.
func (s *SQLiteStorage) RemoveTag(ctx context.Context, recordID, tagName string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return false, err
	}
	if err := validateString(tagName, "tagName"); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM record_tags
		WHERE record_id = ?
		  AND tag_id IN (SELECT id FROM tags WHERE name = ?)`,
		recordID, tagName)
	if err != nil {
		return false, fmt.Errorf("failed to remove tag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

// loadTags returns a record's tags, sorted by name.
func (s *SQLiteStorage) loadTags(ctx context.Context, recordID string) ([]model.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tg.id, tg.name
		FROM tags tg
		JOIN record_tags rt ON rt.tag_id = tg.id
		WHERE rt.record_id = ?
		ORDER BY tg.name`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := []model.Tag{}
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}
