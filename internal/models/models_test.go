package models

import (
	"errors"
	"strings"
	"testing"
)

func TestPersonValidate(t *testing.T) {
	tests := []struct {
		name    string
		person  Person
		wantErr error
	}{
		{
			name:   "valid",
			person: Person{ID: "p1", Name: "Alice"},
		},
		{
			name:    "empty name",
			person:  Person{ID: "p1", Name: ""},
			wantErr: ErrNameRequired,
		},
		{
			name:    "whitespace only name",
			person:  Person{ID: "p1", Name: "   "},
			wantErr: ErrNameRequired,
		},
		{
			name:    "name too long",
			person:  Person{ID: "p1", Name: strings.Repeat("a", 101)},
			wantErr: ErrNameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.person.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := func() Expense {
		return Expense{
			Description: "Groceries",
			Amount:      60,
			SpentOn:     "2025-03-14",
			PayerID:     "alice",
			Splits: []Split{
				{PersonID: "alice", Amount: 20},
				{PersonID: "bob", Amount: 20},
				{PersonID: "carol", Amount: 20},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(e *Expense) {},
		},
		{
			name:    "empty description",
			mutate:  func(e *Expense) { e.Description = "  " },
			wantErr: ErrDescriptionRequired,
		},
		{
			name:    "description too long",
			mutate:  func(e *Expense) { e.Description = strings.Repeat("x", 201) },
			wantErr: ErrDescriptionTooLong,
		},
		{
			name:    "zero amount",
			mutate:  func(e *Expense) { e.Amount = 0 },
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(e *Expense) { e.Amount = -5 },
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "bad date",
			mutate:  func(e *Expense) { e.SpentOn = "14/03/2025" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "impossible date",
			mutate:  func(e *Expense) { e.SpentOn = "2025-02-30" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "missing payer",
			mutate:  func(e *Expense) { e.PayerID = "" },
			wantErr: ErrPayerRequired,
		},
		{
			name:    "no splits",
			mutate:  func(e *Expense) { e.Splits = nil },
			wantErr: ErrNoSplits,
		},
		{
			name: "duplicate split person",
			mutate: func(e *Expense) {
				e.Splits = []Split{
					{PersonID: "alice", Amount: 30},
					{PersonID: "alice", Amount: 30},
				}
			},
			wantErr: ErrDuplicateSplit,
		},
		{
			name: "negative share",
			mutate: func(e *Expense) {
				e.Splits = []Split{
					{PersonID: "alice", Amount: 70},
					{PersonID: "bob", Amount: -10},
				}
			},
			wantErr: ErrNegativeShare,
		},
		{
			name: "shares do not add up",
			mutate: func(e *Expense) {
				e.Splits = []Split{
					{PersonID: "alice", Amount: 20},
					{PersonID: "bob", Amount: 20},
				}
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name: "rounding drift within tolerance",
			mutate: func(e *Expense) {
				e.Amount = 100
				e.Splits = []Split{
					{PersonID: "alice", Amount: 33.33},
					{PersonID: "bob", Amount: 33.33},
					{PersonID: "carol", Amount: 33.33},
				}
			},
			// 99.99 vs 100.00 differs by exactly one cent, which is allowed.
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(&e)
			err := e.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettlementValidate(t *testing.T) {
	tests := []struct {
		name       string
		settlement Settlement
		wantErr    error
	}{
		{
			name:       "valid",
			settlement: Settlement{FromPersonID: "bob", ToPersonID: "alice", Amount: 25, SettledOn: "2025-03-15"},
		},
		{
			name:       "missing recipient",
			settlement: Settlement{FromPersonID: "bob", Amount: 25, SettledOn: "2025-03-15"},
			wantErr:    ErrSettlementParties,
		},
		{
			name:       "self settlement",
			settlement: Settlement{FromPersonID: "bob", ToPersonID: "bob", Amount: 25, SettledOn: "2025-03-15"},
			wantErr:    ErrSelfSettlement,
		},
		{
			name:       "zero amount",
			settlement: Settlement{FromPersonID: "bob", ToPersonID: "alice", Amount: 0, SettledOn: "2025-03-15"},
			wantErr:    ErrNonPositiveAmount,
		},
		{
			name:       "bad date",
			settlement: Settlement{FromPersonID: "bob", ToPersonID: "alice", Amount: 25, SettledOn: "March 15"},
			wantErr:    ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settlement.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewUserNormalizesEmail(t *testing.T) {
	user := NewUser("  Alice@Example.COM ", "  Alice  ", "hash")

	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "alice@example.com")
	}
	if user.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q, want %q", user.DisplayName, "Alice")
	}
	if user.ID == "" {
		t.Error("ID should be generated")
	}
	if user.CreatedAt == 0 || user.UpdatedAt != user.CreatedAt {
		t.Errorf("timestamps not initialized: created=%d updated=%d", user.CreatedAt, user.UpdatedAt)
	}
}
