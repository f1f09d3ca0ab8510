package models

import "errors"

var (
	// ErrSettlementParties is returned when a settlement is missing either party.
	ErrSettlementParties = errors.New("settlement requires both a payer and a recipient")

	// ErrSelfSettlement is returned when someone tries to settle with themselves.
	ErrSelfSettlement = errors.New("settlement payer and recipient must differ")
)

// Settlement represents a repayment between two people to clear debt.
//
// Recorded settlements feed back into the balance calculation: the payer
// is credited as if they had paid an expense consumed entirely by the
// recipient.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// FromPersonID is the person who paid (debtor settling up).
	FromPersonID string

	// ToPersonID is the person who received the money.
	ToPersonID string

	// Amount is the payment amount, in the ledger currency.
	Amount float64

	// Note is an optional free-form description (e.g., "bank transfer").
	Note string

	// SettledOn is the calendar date of the payment in DateLayout format.
	SettledOn string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}

// Validate checks that the settlement is internally consistent.
func (s *Settlement) Validate() error {
	if s.FromPersonID == "" || s.ToPersonID == "" {
		return ErrSettlementParties
	}
	if s.FromPersonID == s.ToPersonID {
		return ErrSelfSettlement
	}
	if s.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if !validDate(s.SettledOn) {
		return ErrInvalidDate
	}
	return nil
}
