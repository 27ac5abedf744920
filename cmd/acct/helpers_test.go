package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawInputFromFlags(t *testing.T) {
	tests := []struct {
		name       string
		recordType string
		amount     string
		date       string
		note       string
		wantType   bool
		wantAmount bool
		wantDate   bool
		wantNote   bool
	}{
		{
			name:       "all flags set",
			recordType: "Expense",
			amount:     "12.50",
			date:       "2025-11-01",
			note:       "lunch",
			wantType:   true,
			wantAmount: true,
			wantDate:   true,
			wantNote:   true,
		},
		{
			name: "no flags set",
		},
		{
			name:       "whitespace note is absent",
			recordType: "Income",
			amount:     "100",
			date:       "2025-11-01",
			note:       "   ",
			wantType:   true,
			wantAmount: true,
			wantDate:   true,
			wantNote:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawInputFromFlags(tt.recordType, tt.amount, tt.date, tt.note)

			assert.Equal(t, tt.wantType, raw.Type != nil)
			assert.Equal(t, tt.wantAmount, raw.Amount != nil)
			assert.Equal(t, tt.wantDate, raw.Date != nil)
			assert.Equal(t, tt.wantNote, raw.Note != nil)
			if raw.Type != nil {
				assert.Equal(t, tt.recordType, *raw.Type)
			}
			if raw.Amount != nil {
				assert.Equal(t, tt.amount, raw.Amount.String())
			}
		})
	}
}

func TestParseDateFlag(t *testing.T) {
	t.Run("empty is nil", func(t *testing.T) {
		got, err := parseDateFlag("", "from")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("valid date", func(t *testing.T) {
		got, err := parseDateFlag("2025-11-01", "from")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("invalid date names the flag", func(t *testing.T) {
		_, err := parseDateFlag("11/01/2025", "from")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--from")
		assert.Contains(t, err.Error(), "YYYY-MM-DD")
	})
}

func TestParseMonthFlag(t *testing.T) {
	t.Run("empty defaults to current month", func(t *testing.T) {
		year, month, err := parseMonthFlag("")
		require.NoError(t, err)
		now := time.Now()
		assert.Equal(t, now.Year(), year)
		assert.Equal(t, now.Month(), month)
	})

	t.Run("valid month", func(t *testing.T) {
		year, month, err := parseMonthFlag("2025-02")
		require.NoError(t, err)
		assert.Equal(t, 2025, year)
		assert.Equal(t, time.February, month)
	})

	t.Run("invalid month", func(t *testing.T) {
		_, _, err := parseMonthFlag("2025-13")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "YYYY-MM")
	})
}

func TestParseReminderTime(t *testing.T) {
	t.Run("date only", func(t *testing.T) {
		got, err := parseReminderTime("2025-12-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("date with minutes", func(t *testing.T) {
		got, err := parseReminderTime("2025-12-01 09:30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC), got)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := parseReminderTime("")
		require.Error(t, err)
	})

	t.Run("unparseable value", func(t *testing.T) {
		_, err := parseReminderTime("tomorrow")
		require.Error(t, err)
	})
}
