package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the calendar date format used for expense and settlement dates.
const DateLayout = "2006-01-02"

// MoneyEpsilon is the tolerance used when comparing monetary amounts.
// Differences below a cent are treated as equal; this absorbs the
// floating point rounding that equal and percentage splits introduce.
const MoneyEpsilon = 0.01

// maxDescriptionLen bounds expense descriptions.
const maxDescriptionLen = 200

var (
	// ErrDescriptionRequired is returned when an expense has no description.
	ErrDescriptionRequired = errors.New("description is required")

	// ErrDescriptionTooLong is returned when a description exceeds maxDescriptionLen runes.
	ErrDescriptionTooLong = errors.New("description is too long")

	// ErrNonPositiveAmount is returned when an amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// ErrInvalidDate is returned when a date is not in DateLayout format.
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

	// ErrPayerRequired is returned when an expense has no payer.
	ErrPayerRequired = errors.New("payer is required")

	// ErrNoSplits is returned when an expense has no split entries.
	ErrNoSplits = errors.New("expense must be split among at least one person")

	// ErrDuplicateSplit is returned when a person appears twice in the splits.
	ErrDuplicateSplit = errors.New("person listed more than once in splits")

	// ErrNegativeShare is returned when a split share is negative.
	ErrNegativeShare = errors.New("split share cannot be negative")

	// ErrSplitMismatch is returned when the split shares do not sum to the
	// expense amount within MoneyEpsilon.
	ErrSplitMismatch = errors.New("split shares do not sum to the expense amount")
)

// Expense represents a shared cost paid by one person on behalf of several.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a short human-readable label (e.g., "Groceries").
	Description string

	// Amount is the total amount paid, in the ledger currency.
	Amount float64

	// SpentOn is the calendar date of the expense in DateLayout format.
	// A plain date avoids timezone surprises for day-granularity records.
	SpentOn string

	// PayerID is the ID of the person who paid the full amount.
	PayerID string

	// Splits lists each participant's share of the amount.
	// The payer may or may not appear; shares must sum to Amount
	// within MoneyEpsilon.
	Splits []Split

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one person's share of an expense.
type Split struct {
	// PersonID is the ID of the person who owes this share.
	PersonID string

	// Amount is the share owed, in the ledger currency.
	Amount float64
}

// Validate checks that the expense is internally consistent.
// It does not check that the referenced people exist; that is the
// caller's job.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrDescriptionRequired
	}
	if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if e.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if !validDate(e.SpentOn) {
		return ErrInvalidDate
	}
	if e.PayerID == "" {
		return ErrPayerRequired
	}
	if len(e.Splits) == 0 {
		return ErrNoSplits
	}

	seen := make(map[string]bool, len(e.Splits))
	total := 0.0
	for _, s := range e.Splits {
		if s.PersonID == "" {
			return errors.New("split entry missing person")
		}
		if seen[s.PersonID] {
			return fmt.Errorf("%w: %s", ErrDuplicateSplit, s.PersonID)
		}
		seen[s.PersonID] = true
		if s.Amount < 0 {
			return ErrNegativeShare
		}
		total += s.Amount
	}
	if math.Abs(total-e.Amount) > MoneyEpsilon {
		return fmt.Errorf("%w: shares total %.2f, expense is %.2f", ErrSplitMismatch, total, e.Amount)
	}
	return nil
}

// validDate reports whether s is a real calendar date in DateLayout format.
func validDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
