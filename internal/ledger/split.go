package ledger

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/splitpot/splitpot/internal/models"
)

var (
	// ErrNoParticipants is returned when a split helper gets an empty person list.
	ErrNoParticipants = errors.New("at least one participant is required")

	// ErrNegativePercent is returned when a percentage share is negative.
	ErrNegativePercent = errors.New("percentages cannot be negative")

	// ErrPercentTotal is returned when percentage shares do not sum to 100.
	ErrPercentTotal = errors.New("percentages must sum to 100")
)

// PercentShare assigns a percentage of an expense to one person.
type PercentShare struct {
	PersonID string
	Percent  float64
}

// EqualSplits divides amount evenly among the given people.
//
// The division happens in whole cents so shares always sum back to the
// exact amount: everyone gets the same base share and the leftover
// cents go to the people at the front of the list, one cent each.
func EqualSplits(amount float64, personIDs []string) ([]models.Split, error) {
	n := int64(len(personIDs))
	if n == 0 {
		return nil, ErrNoParticipants
	}
	if amount <= 0 {
		return nil, models.ErrNonPositiveAmount
	}

	totalCents := toCents(amount)
	base := totalCents / n
	extra := totalCents % n

	splits := make([]models.Split, len(personIDs))
	for i, id := range personIDs {
		cents := base
		if int64(i) < extra {
			cents++
		}
		splits[i] = models.Split{PersonID: id, Amount: fromCents(cents)}
	}
	return splits, nil
}

// PercentageSplits divides amount according to per-person percentages.
//
// The percentages must sum to 100 within a 0.1 tolerance; within that
// tolerance shares are proportional to the given values. Shares are
// computed in cents with largest-remainder rounding: each person gets
// the floor of their exact share and the leftover cents go to the
// shares that were rounded down the most. The result always sums back
// to the exact amount and no share is ever negative.
func PercentageSplits(amount float64, shares []PercentShare) ([]models.Split, error) {
	if len(shares) == 0 {
		return nil, ErrNoParticipants
	}
	if amount <= 0 {
		return nil, models.ErrNonPositiveAmount
	}

	totalPercent := 0.0
	for _, s := range shares {
		if s.Percent < 0 {
			return nil, ErrNegativePercent
		}
		totalPercent += s.Percent
	}
	if math.Abs(totalPercent-100) > 0.1 {
		return nil, fmt.Errorf("%w: got %.2f", ErrPercentTotal, totalPercent)
	}

	totalCents := toCents(amount)
	cents := make([]int64, len(shares))
	assigned := int64(0)
	type remainder struct {
		index int
		frac  float64
	}
	remainders := make([]remainder, len(shares))
	for i, s := range shares {
		exact := float64(totalCents) * s.Percent / totalPercent
		cents[i] = int64(math.Floor(exact))
		assigned += cents[i]
		remainders[i] = remainder{index: i, frac: exact - float64(cents[i])}
	}

	// Hand the leftover cents to the shares that lost the most to
	// flooring; stable so equal remainders keep input order.
	sort.SliceStable(remainders, func(i, j int) bool { return remainders[i].frac > remainders[j].frac })
	for k := int64(0); k < totalCents-assigned && k < int64(len(remainders)); k++ {
		cents[remainders[k].index]++
	}

	splits := make([]models.Split, len(shares))
	for i, s := range shares {
		splits[i] = models.Split{PersonID: s.PersonID, Amount: fromCents(cents[i])}
	}
	return splits, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
