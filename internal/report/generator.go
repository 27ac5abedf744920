// Package report builds monthly and month-over-month spending summaries.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/lzy117/accountint-app/internal/category"
	"github.com/lzy117/accountint-app/internal/common"
	"github.com/lzy117/accountint-app/internal/model"
	"github.com/lzy117/accountint-app/internal/service"
)

// CategoryShare is one slice of the monthly expense breakdown.
type CategoryShare struct {
	Category string
	Total    float64
	Share    float64
}

// MonthlyReport summarizes one calendar month.
type MonthlyReport struct {
	Breakdown    []CategoryShare
	Year         int
	Month        time.Month
	TotalIncome  float64
	TotalExpense float64
	Net          float64
}

// CategoryChange compares one category across two months. Percent is nil
// when the previous month had nothing in the category, since there is no
// base to compute a percentage against.
type CategoryChange struct {
	Percent  *float64
	Category string
	Current  float64
	Previous float64
	Change   float64
}

// ComparisonReport compares a month with the one before it.
type ComparisonReport struct {
	Changes []CategoryChange
	Year    int
	Month   time.Month
}

// Generator builds reports from stored records.
type Generator struct {
	storage service.Storage
}

// NewGenerator creates a report generator over the given storage.
func NewGenerator(storage service.Storage) *Generator {
	return &Generator{storage: storage}
}

// Monthly builds the report for one calendar month: income and expense
// totals plus the expense breakdown by category with each category's
// share of total spending.
func (g *Generator) Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	start, end := monthRange(year, month)

	income, err := g.storage.SumByType(ctx, model.TypeIncome, start, end)
	if err != nil {
		return nil, common.NewStorageError("sum income", err)
	}
	expense, err := g.storage.SumByType(ctx, model.TypeExpense, start, end)
	if err != nil {
		return nil, common.NewStorageError("sum expenses", err)
	}

	totals, err := g.expenseTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	breakdown := make([]CategoryShare, 0, len(totals))
	for label, total := range totals {
		share := 0.0
		if expense > 0 {
			share = total / expense
		}
		breakdown = append(breakdown, CategoryShare{
			Category: label,
			Total:    total,
			Share:    share,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total != breakdown[j].Total {
			return breakdown[i].Total > breakdown[j].Total
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return &MonthlyReport{
		Year:         year,
		Month:        month,
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          income - expense,
		Breakdown:    breakdown,
	}, nil
}

// Comparison builds the month-over-month report: per-category expense
// change against the previous calendar month.
func (g *Generator) Comparison(ctx context.Context, year int, month time.Month) (*ComparisonReport, error) {
	currentStart, currentEnd := monthRange(year, month)
	previousStart, previousEnd := monthRange(currentStart.AddDate(0, -1, 0).Year(), currentStart.AddDate(0, -1, 0).Month())

	current, err := g.expenseTotals(ctx, currentStart, currentEnd)
	if err != nil {
		return nil, err
	}
	previous, err := g.expenseTotals(ctx, previousStart, previousEnd)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]bool, len(current)+len(previous))
	for label := range current {
		labels[label] = true
	}
	for label := range previous {
		labels[label] = true
	}

	changes := make([]CategoryChange, 0, len(labels))
	for label := range labels {
		change := CategoryChange{
			Category: label,
			Current:  current[label],
			Previous: previous[label],
			Change:   current[label] - previous[label],
		}
		if change.Previous > 0 {
			percent := change.Change / change.Previous
			change.Percent = &percent
		}
		changes = append(changes, change)
	}
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Current != changes[j].Current {
			return changes[i].Current > changes[j].Current
		}
		return changes[i].Category < changes[j].Category
	})

	return &ComparisonReport{
		Year:    year,
		Month:   month,
		Changes: changes,
	}, nil
}

// expenseTotals buckets a period's expenses by category, categorizing
// each record from its note text.
func (g *Generator) expenseTotals(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	records, err := g.storage.ExpenseRecordsByPeriod(ctx, start, end)
	if err != nil {
		return nil, common.NewStorageError("expenses by period", err)
	}

	totals := make(map[string]float64)
	for _, rec := range records {
		totals[category.Categorize(rec.Note)] += rec.Amount
	}
	return totals, nil
}

// monthRange returns the first and last day of a calendar month.
func monthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}
