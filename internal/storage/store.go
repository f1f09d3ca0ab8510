// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitpot/splitpot/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNameTaken is returned when a person name is already in use.
	ErrNameTaken = errors.New("name already in use")

	// ErrEmailTaken is returned when a user email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Store defines the interface for ledger persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreatePerson persists a new person. The ID field is populated by
	// the store if empty. Returns ErrNameTaken if the name exists.
	CreatePerson(ctx context.Context, person *models.Person) error

	// GetPerson retrieves a person by ID. Returns ErrNotFound if absent.
	GetPerson(ctx context.Context, id string) (*models.Person, error)

	// ListPeople retrieves everyone in the ledger, ordered by name.
	ListPeople(ctx context.Context) ([]models.Person, error)

	// UpdatePerson renames a person. Returns ErrNotFound if absent and
	// ErrNameTaken if the new name is in use.
	UpdatePerson(ctx context.Context, person *models.Person) error

	// DeletePerson removes a person. Expenses they paid, their split
	// rows and their settlements are removed by cascade.
	DeletePerson(ctx context.Context, id string) error

	// CreateExpense persists an expense and its splits atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpenses retrieves all expenses with splits, newest first.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// UpdateExpense replaces an expense and its splits atomically.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, id string) error

	// CreateSettlement persists a recorded repayment.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlements retrieves all recorded repayments, newest first.
	ListSettlements(ctx context.Context) ([]models.Settlement, error)

	// DeleteSettlement removes a recorded repayment.
	DeleteSettlement(ctx context.Context, id string) error

	// CreateUser persists a new login account.
	// Returns ErrEmailTaken if the email is registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
