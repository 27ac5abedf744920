package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lzy117/accountint-app/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateRecord(t *testing.T) {
	date := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		rec     *model.Record
		name    string
		errMsg  string
		wantErr bool
	}{
		{
			name: "valid record",
			rec: &model.Record{
				Type:   model.TypeExpense,
				Amount: 12.50,
				Date:   date,
			},
			wantErr: false,
		},
		{
			name:    "nil record",
			rec:     nil,
			wantErr: true,
			errMsg:  "record",
		},
		{
			name: "unknown type",
			rec: &model.Record{
				Type:   model.RecordType("Loan"),
				Amount: 12.50,
				Date:   date,
			},
			wantErr: true,
			errMsg:  "unknown type",
		},
		{
			name: "zero amount",
			rec: &model.Record{
				Type: model.TypeIncome,
				Date: date,
			},
			wantErr: true,
			errMsg:  "non-positive amount",
		},
		{
			name: "negative amount",
			rec: &model.Record{
				Type:   model.TypeExpense,
				Amount: -1,
				Date:   date,
			},
			wantErr: true,
			errMsg:  "non-positive amount",
		},
		{
			name: "zero date",
			rec: &model.Record{
				Type:   model.TypeExpense,
				Amount: 12.50,
			},
			wantErr: true,
			errMsg:  "missing date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecord(tt.rec)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("validateRecord() error should contain %s, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestValidateReminder(t *testing.T) {
	remindAt := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		reminder *model.Reminder
		name     string
		errMsg   string
		wantErr  bool
	}{
		{
			name: "valid reminder",
			reminder: &model.Reminder{
				Title:    "Pay rent",
				RemindAt: remindAt,
			},
			wantErr: false,
		},
		{
			name:     "nil reminder",
			reminder: nil,
			wantErr:  true,
			errMsg:   "reminder",
		},
		{
			name: "blank title",
			reminder: &model.Reminder{
				Title:    "   ",
				RemindAt: remindAt,
			},
			wantErr: true,
			errMsg:  "missing title",
		},
		{
			name: "zero remind time",
			reminder: &model.Reminder{
				Title: "Pay rent",
			},
			wantErr: true,
			errMsg:  "missing remind time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReminder(tt.reminder)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateReminder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("validateReminder() error should contain %s, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	earlier := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{
			name:    "start before end",
			start:   earlier,
			end:     later,
			wantErr: false,
		},
		{
			name:    "same day",
			start:   earlier,
			end:     earlier,
			wantErr: false,
		},
		{
			name:    "start after end",
			start:   later,
			end:     earlier,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDateRange(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDateRange() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
