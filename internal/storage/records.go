package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lzy117/accountint-app/internal/model"
	"github.com/lzy117/accountint-app/internal/service"
)

// SaveRecord inserts a new record and returns its generated identifier.
func (s *SQLiteStorage) SaveRecord(ctx context.Context, rec *model.Record) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateRecord(rec); err != nil {
		return "", err
	}

	id := uuid.NewString()
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, type, amount, date, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(rec.Type), rec.Amount, model.DateOnly(rec.Date), rec.Note, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", mapBusy(err))
	}

	slog.Debug("saved record", "id", id, "type", rec.Type, "amount", rec.Amount)
	return id, nil
}

// GetRecordByID returns a record with its tags and photos, or nil if no
// record has that ID.
func (s *SQLiteStorage) GetRecordByID(ctx context.Context, id string) (*model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var rec model.Record
	var recType string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, type, amount, date, note, created_at
		FROM records WHERE id = ?`, id,
	).Scan(&rec.ID, &recType, &rec.Amount, &rec.Date, &rec.Note, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query record: %w", err)
	}
	rec.Type = model.RecordType(recType)

	if rec.Tags, err = s.loadTags(ctx, rec.ID); err != nil {
		return nil, err
	}
	if rec.Photos, err = s.loadPhotos(ctx, rec.ID); err != nil {
		return nil, err
	}

	return &rec, nil
}

// GetRecords returns all records matching the filter, newest first.
func (s *SQLiteStorage) GetRecords(ctx context.Context, filter service.RecordFilter) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		if err := validateDateRange(*filter.StartDate, *filter.EndDate); err != nil {
			return nil, err
		}
	}

	query := strings.Builder{}
	query.WriteString(`
		SELECT id, type, amount, date, note, created_at
		FROM records WHERE 1=1`)
	var args []any

	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.Date != nil {
		query.WriteString(" AND date = ?")
		args = append(args, model.DateOnly(*filter.Date))
	}
	if filter.StartDate != nil {
		query.WriteString(" AND date >= ?")
		args = append(args, model.DateOnly(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query.WriteString(" AND date <= ?")
		args = append(args, model.DateOnly(*filter.EndDate))
	}
	if filter.MinAmount != nil {
		query.WriteString(" AND amount >= ?")
		args = append(args, *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query.WriteString(" AND amount <= ?")
		args = append(args, *filter.MaxAmount)
	}
	if filter.Tag != "" {
		query.WriteString(` AND EXISTS (
			SELECT 1 FROM record_tags rt
			JOIN tags tg ON tg.id = rt.tag_id
			WHERE rt.record_id = records.id AND tg.name = ?)`)
		args = append(args, filter.Tag)
	}
	if filter.NoteSearch != "" {
		query.WriteString(" AND note LIKE ?")
		args = append(args, "%"+filter.NoteSearch+"%")
	}

	query.WriteString(" ORDER BY date DESC, created_at DESC")
	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, filter.Offset)
	case filter.Offset > 0:
		// SQLite only accepts OFFSET after a LIMIT; -1 means unbounded.
		query.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Tags, err = s.loadTags(ctx, records[i].ID); err != nil {
			return nil, err
		}
		if records[i].Photos, err = s.loadPhotos(ctx, records[i].ID); err != nil {
			return nil, err
		}
	}

	slog.Debug("retrieved records", "count", len(records))
	return records, nil
}

// DeleteRecord removes a record; tag links and photo rows cascade.
// It reports whether a row was actually deleted.
func (s *SQLiteStorage) DeleteRecord(ctx context.Context, id string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(id, "id"); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteRecordsBefore removes all records dated strictly before cutoff
// and returns the number of rows removed.
func (s *SQLiteStorage) DeleteRecordsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE date < ?`, model.DateOnly(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to prune records: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	slog.Info("pruned records", "cutoff", cutoff.Format("2006-01-02"), "count", affected)
	return affected, nil
}

// SumByType returns the total amount of records of one type within
// [start, end], inclusive on both ends.
func (s *SQLiteStorage) SumByType(ctx context.Context, recordType model.RecordType, start, end time.Time) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateDateRange(start, end); err != nil {
		return 0, err
	}

	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM records
		WHERE type = ? AND date >= ? AND date <= ?`,
		string(recordType), model.DateOnly(start), model.DateOnly(end),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum records: %w", err)
	}
	return total, nil
}

// ExpenseRecordsByPeriod returns expense records within [start, end].
func (s *SQLiteStorage) ExpenseRecordsByPeriod(ctx context.Context, start, end time.Time) ([]model.Record, error) {
	expense := model.TypeExpense
	return s.GetRecords(ctx, service.RecordFilter{
		Type:      &expense,
		StartDate: &start,
		EndDate:   &end,
	})
}

func scanRecords(rows *sql.Rows) ([]model.Record, error) {
	var records []model.Record
	for rows.Next() {
		var rec model.Record
		var recType string
		if err := rows.Scan(&rec.ID, &recType, &rec.Amount, &rec.Date, &rec.Note, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Type = model.RecordType(recType)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}
