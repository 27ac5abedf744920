// Package record implements validation and orchestration for ledger entries.
package record

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lzy117/accountint-app/internal/model"
)

// Validation error categories. Specific failures unwrap to exactly one of
// these, so callers can branch with errors.Is while still receiving a
// message naming the offending value.
var (
	ErrMissingField  = errors.New("missing field")
	ErrInvalidEnum   = errors.New("invalid enum")
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidDate   = errors.New("invalid date")
)

// ValidationError carries the user-facing message for a rejected input
// and unwraps to one of the category sentinels above.
type ValidationError struct {
	kind error
	msg  string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func validationErrorf(kind error, format string, args ...any) error {
	return &ValidationError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type amountKind int

const (
	amountUnset amountKind = iota
	amountNumber
	amountText
)

// RawAmount is an amount as submitted: a number, a string, or something
// else entirely. The zero value represents an unsupported submission type.
type RawAmount struct {
	text   string
	number float64
	kind   amountKind
}

// AmountNumber wraps an already-numeric amount.
func AmountNumber(v float64) *RawAmount {
	return &RawAmount{kind: amountNumber, number: v}
}

// AmountString wraps an amount submitted as text.
func AmountString(s string) *RawAmount {
	return &RawAmount{kind: amountText, text: s}
}

// String returns the submitted value for use in error messages.
func (a *RawAmount) String() string {
	switch a.kind {
	case amountNumber:
		return strconv.FormatFloat(a.number, 'g', -1, 64)
	case amountText:
		return a.text
	default:
		return "<unsupported amount>"
	}
}

type dateKind int

const (
	dateUnset dateKind = iota
	dateValue
	dateText
)

// RawDate is a date as submitted: a calendar value, a string, or something
// else entirely. The zero value represents an unsupported submission type.
type RawDate struct {
	day  time.Time
	text string
	kind dateKind
}

// DateValue wraps an already-parsed calendar date.
func DateValue(t time.Time) *RawDate {
	return &RawDate{kind: dateValue, day: t}
}

// DateString wraps a date submitted as text.
func DateString(s string) *RawDate {
	return &RawDate{kind: dateText, text: s}
}

// String returns the submitted value for use in error messages.
func (d *RawDate) String() string {
	switch d.kind {
	case dateValue:
		return d.day.Format(dateLayout)
	case dateText:
		return d.text
	default:
		return "<unsupported date>"
	}
}

// RawInput is the untrusted boundary shape for record creation. Nil fields
// are absent; the validator decides what that means per field.
type RawInput struct {
	Amount *RawAmount
	Date   *RawDate
	Type   *string
	Note   *string
}

// ValidatedRecord is the canonical trusted shape. It is only ever
// constructed by Validate after all checks pass; there is no
// partially-valid state.
type ValidatedRecord struct {
	Date   time.Time
	Type   model.RecordType
	Note   string
	Amount float64
}

// dateLayout is the only accepted string form for dates.
const dateLayout = "2006-01-02"

// Validate normalizes raw into a ValidatedRecord or rejects it with the
// first failing check. Checks run in fixed order: type, amount, date.
func Validate(raw RawInput) (*ValidatedRecord, error) {
	recordType, err := validateType(raw.Type)
	if err != nil {
		return nil, err
	}

	amount, err := validateAmount(raw.Amount)
	if err != nil {
		return nil, err
	}

	date, err := validateDate(raw.Date)
	if err != nil {
		return nil, err
	}

	note := ""
	if raw.Note != nil {
		note = *raw.Note
	}

	return &ValidatedRecord{
		Type:   recordType,
		Amount: amount,
		Date:   date,
		Note:   note,
	}, nil
}

func validateType(raw *string) (model.RecordType, error) {
	if raw == nil {
		return "", validationErrorf(ErrMissingField, "type is required")
	}

	recordType := model.RecordType(*raw)
	if !recordType.Valid() {
		return "", validationErrorf(ErrInvalidEnum,
			"invalid record type: %s, must be Income or Expense", *raw)
	}
	return recordType, nil
}

func validateAmount(raw *RawAmount) (float64, error) {
	if raw == nil {
		return 0, validationErrorf(ErrMissingField, "amount is required")
	}

	var amount float64
	switch raw.kind {
	case amountNumber:
		amount = raw.number
	case amountText:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw.text), 64)
		if err != nil {
			return 0, validationErrorf(ErrInvalidNumber,
				"amount must be numeric: %s", raw.text)
		}
		amount = parsed
	default:
		return 0, validationErrorf(ErrInvalidNumber,
			"amount must be numeric: %s", raw)
	}

	// NaN and the infinities are rejected outright rather than risking a
	// NaN comparison sneaking through the positivity check below.
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, validationErrorf(ErrInvalidNumber,
			"amount must be numeric: %s", raw)
	}

	if amount <= 0 {
		return 0, validationErrorf(ErrInvalidNumber,
			"amount must be positive: %s", raw)
	}
	return amount, nil
}

func validateDate(raw *RawDate) (time.Time, error) {
	if raw == nil {
		return time.Time{}, validationErrorf(ErrMissingField, "date is required")
	}

	switch raw.kind {
	case dateValue:
		return model.DateOnly(raw.day), nil
	case dateText:
		if strings.TrimSpace(raw.text) == "" {
			return time.Time{}, validationErrorf(ErrInvalidDate,
				"date string must not be empty")
		}
		parsed, err := time.Parse(dateLayout, raw.text)
		if err != nil {
			return time.Time{}, validationErrorf(ErrInvalidDate,
				"invalid date format: %s, expected YYYY-MM-DD", raw.text)
		}
		return model.DateOnly(parsed), nil
	default:
		return time.Time{}, validationErrorf(ErrInvalidDate,
			"invalid date type: unsupported value")
	}
}
