package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/lzy117/accountint-app/internal/config"
	"github.com/lzy117/accountint-app/internal/record"
	"github.com/lzy117/accountint-app/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newRecordService wires a record service over the storage, with the
// storage doubling as the creation audit log unless auditing is
// disabled in config.
func newRecordService(store *storage.SQLiteStorage) *record.Service {
	if viper.IsSet("audit.enabled") && !viper.GetBool("audit.enabled") {
		return record.NewService(store, nil)
	}
	return record.NewService(store, store)
}

// rawInputFromFlags builds the untrusted record submission from CLI
// strings. Empty strings mean the flag was not provided; the validator
// decides what absence means per field.
func rawInputFromFlags(recordType, amount, date, note string) record.RawInput {
	var raw record.RawInput
	if recordType != "" {
		raw.Type = &recordType
	}
	if amount != "" {
		raw.Amount = record.AmountString(amount)
	}
	if date != "" {
		raw.Date = record.DateString(date)
	}
	if strings.TrimSpace(note) != "" {
		raw.Note = &note
	}
	return raw
}
