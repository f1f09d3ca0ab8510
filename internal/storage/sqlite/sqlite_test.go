package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitpot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreatePerson(t *testing.T, store *SQLiteStore, name string) *models.Person {
	t.Helper()
	person := &models.Person{Name: name}
	if err := store.CreatePerson(context.Background(), person); err != nil {
		t.Fatalf("CreatePerson(%s) failed: %v", name, err)
	}
	return person
}

func TestPeople(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreatePerson generates ID and timestamp", func(t *testing.T) {
		person := &models.Person{Name: "Alice"}
		if err := store.CreatePerson(ctx, person); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}
		if person.ID == "" {
			t.Error("Expected person ID to be generated")
		}
		if person.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		retrieved, err := store.GetPerson(ctx, person.ID)
		if err != nil {
			t.Fatalf("GetPerson failed: %v", err)
		}
		if retrieved.Name != "Alice" {
			t.Errorf("Name = %s, want Alice", retrieved.Name)
		}
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := store.CreatePerson(ctx, &models.Person{Name: "Alice"})
		if !errors.Is(err, storage.ErrNameTaken) {
			t.Errorf("CreatePerson duplicate = %v, want ErrNameTaken", err)
		}
	})

	t.Run("ListPeople is ordered by name", func(t *testing.T) {
		mustCreatePerson(t, store, "Carol")
		mustCreatePerson(t, store, "Bob")

		people, err := store.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != 3 {
			t.Fatalf("got %d people, want 3", len(people))
		}
		want := []string{"Alice", "Bob", "Carol"}
		for i, p := range people {
			if p.Name != want[i] {
				t.Errorf("people[%d] = %s, want %s", i, p.Name, want[i])
			}
		}
	})

	t.Run("UpdatePerson renames", func(t *testing.T) {
		person := mustCreatePerson(t, store, "Temp")
		person.Name = "Dave"
		if err := store.UpdatePerson(ctx, person); err != nil {
			t.Fatalf("UpdatePerson failed: %v", err)
		}
		retrieved, err := store.GetPerson(ctx, person.ID)
		if err != nil {
			t.Fatalf("GetPerson failed: %v", err)
		}
		if retrieved.Name != "Dave" {
			t.Errorf("Name = %s, want Dave", retrieved.Name)
		}
	})

	t.Run("UpdatePerson onto a taken name is rejected", func(t *testing.T) {
		person := mustCreatePerson(t, store, "Erin")
		person.Name = "Alice"
		if err := store.UpdatePerson(ctx, person); !errors.Is(err, storage.ErrNameTaken) {
			t.Errorf("UpdatePerson = %v, want ErrNameTaken", err)
		}
	})

	t.Run("missing person yields ErrNotFound", func(t *testing.T) {
		if _, err := store.GetPerson(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetPerson = %v, want ErrNotFound", err)
		}
		if err := store.UpdatePerson(ctx, &models.Person{ID: "nope", Name: "X"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdatePerson = %v, want ErrNotFound", err)
		}
		if err := store.DeletePerson(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeletePerson = %v, want ErrNotFound", err)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreatePerson(t, store, "Alice")
	bob := mustCreatePerson(t, store, "Bob")

	t.Run("CreateExpense and GetExpense round trip", func(t *testing.T) {
		expense := &models.Expense{
			Description: "Groceries",
			Amount:      60,
			SpentOn:     "2025-03-14",
			PayerID:     alice.ID,
			Splits: []models.Split{
				{PersonID: alice.ID, Amount: 30},
				{PersonID: bob.ID, Amount: 30},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}

		retrieved, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if retrieved.Description != "Groceries" || retrieved.Amount != 60 {
			t.Errorf("retrieved = %s/%v, want Groceries/60", retrieved.Description, retrieved.Amount)
		}
		if retrieved.SpentOn != "2025-03-14" {
			t.Errorf("SpentOn = %s, want 2025-03-14", retrieved.SpentOn)
		}
		if retrieved.PayerID != alice.ID {
			t.Errorf("PayerID = %s, want %s", retrieved.PayerID, alice.ID)
		}
		if len(retrieved.Splits) != 2 {
			t.Fatalf("got %d splits, want 2", len(retrieved.Splits))
		}
	})

	t.Run("ListExpenses is newest first with splits attached", func(t *testing.T) {
		older := &models.Expense{
			Description: "Taxi",
			Amount:      20,
			SpentOn:     "2025-01-02",
			PayerID:     bob.ID,
			Splits:      []models.Split{{PersonID: alice.ID, Amount: 20}},
		}
		if err := store.CreateExpense(ctx, older); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpenses(ctx)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("got %d expenses, want 2", len(expenses))
		}
		if expenses[0].Description != "Groceries" || expenses[1].Description != "Taxi" {
			t.Errorf("order = %s, %s; want Groceries, Taxi", expenses[0].Description, expenses[1].Description)
		}
		for _, e := range expenses {
			if len(e.Splits) == 0 {
				t.Errorf("expense %s has no splits attached", e.Description)
			}
		}
	})

	t.Run("UpdateExpense replaces splits", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		expense := expenses[0]
		expense.Amount = 90
		expense.Splits = []models.Split{
			{PersonID: alice.ID, Amount: 45},
			{PersonID: bob.ID, Amount: 45},
		}
		if err := store.UpdateExpense(ctx, &expense); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		retrieved, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if retrieved.Amount != 90 {
			t.Errorf("Amount = %v, want 90", retrieved.Amount)
		}
		if len(retrieved.Splits) != 2 {
			t.Fatalf("got %d splits, want 2", len(retrieved.Splits))
		}
		for _, s := range retrieved.Splits {
			if s.Amount != 45 {
				t.Errorf("split = %v, want 45", s.Amount)
			}
		}
	})

	t.Run("DeleteExpense removes the expense", func(t *testing.T) {
		expense := &models.Expense{
			Description: "Doomed",
			Amount:      10,
			SpentOn:     "2025-02-01",
			PayerID:     alice.ID,
			Splits:      []models.Split{{PersonID: bob.ID, Amount: 10}},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense after delete = %v, want ErrNotFound", err)
		}
	})

	t.Run("deleting a person cascades to their expenses", func(t *testing.T) {
		carol := mustCreatePerson(t, store, "Carol")
		expense := &models.Expense{
			Description: "Carol's round",
			Amount:      15,
			SpentOn:     "2025-02-02",
			PayerID:     carol.ID,
			Splits: []models.Split{
				{PersonID: alice.ID, Amount: 7.5},
				{PersonID: bob.ID, Amount: 7.5},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeletePerson(ctx, carol.ID); err != nil {
			t.Fatalf("DeletePerson failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expense survived payer deletion: %v", err)
		}
	})

	t.Run("missing expense yields ErrNotFound", func(t *testing.T) {
		if _, err := store.GetExpense(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense = %v, want ErrNotFound", err)
		}
		if err := store.DeleteExpense(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteExpense = %v, want ErrNotFound", err)
		}
	})
}

func TestSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreatePerson(t, store, "Alice")
	bob := mustCreatePerson(t, store, "Bob")

	t.Run("CreateSettlement and ListSettlements", func(t *testing.T) {
		first := &models.Settlement{
			FromPersonID: bob.ID,
			ToPersonID:   alice.ID,
			Amount:       25,
			Note:         "bank transfer",
			SettledOn:    "2025-03-01",
		}
		if err := store.CreateSettlement(ctx, first); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		if first.ID == "" {
			t.Error("Expected settlement ID to be generated")
		}

		second := &models.Settlement{
			FromPersonID: bob.ID,
			ToPersonID:   alice.ID,
			Amount:       10,
			SettledOn:    "2025-03-10",
		}
		if err := store.CreateSettlement(ctx, second); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		settlements, err := store.ListSettlements(ctx)
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(settlements) != 2 {
			t.Fatalf("got %d settlements, want 2", len(settlements))
		}
		// Newest first
		if settlements[0].Amount != 10 || settlements[1].Amount != 25 {
			t.Errorf("order = %v, %v; want 10, 25", settlements[0].Amount, settlements[1].Amount)
		}
		if settlements[1].Note != "bank transfer" {
			t.Errorf("Note = %q, want %q", settlements[1].Note, "bank transfer")
		}
		if settlements[0].Note != "" {
			t.Errorf("empty note round-tripped as %q", settlements[0].Note)
		}
	})

	t.Run("DeleteSettlement", func(t *testing.T) {
		settlements, err := store.ListSettlements(ctx)
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if err := store.DeleteSettlement(ctx, settlements[0].ID); err != nil {
			t.Fatalf("DeleteSettlement failed: %v", err)
		}
		remaining, err := store.ListSettlements(ctx)
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(remaining) != 1 {
			t.Errorf("got %d settlements, want 1", len(remaining))
		}

		if err := store.DeleteSettlement(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteSettlement = %v, want ErrNotFound", err)
		}
	})
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and lookups", func(t *testing.T) {
		user := models.NewUser("alice@example.com", "Alice", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail.ID != user.ID {
			t.Errorf("ID = %s, want %s", byEmail.ID, user.ID)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Email != "alice@example.com" {
			t.Errorf("Email = %s, want alice@example.com", byID.Email)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Other Alice", "hash"))
		if !errors.Is(err, storage.ErrEmailTaken) {
			t.Errorf("CreateUser duplicate = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("missing user yields ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByEmail = %v, want ErrNotFound", err)
		}
		if _, err := store.GetUserByID(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByID = %v, want ErrNotFound", err)
		}
	})
}

// Reopening the same database must be a no-op for the schema and keep
// the data.
func TestReopenKeepsData(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "splitpot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)
	dbPath := filepath.Join(tempDir, "test.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	person := &models.Person{Name: "Alice"}
	if err := store.CreatePerson(ctx, person); err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	retrieved, err := reopened.GetPerson(ctx, person.ID)
	if err != nil {
		t.Fatalf("GetPerson after reopen failed: %v", err)
	}
	if retrieved.Name != "Alice" {
		t.Errorf("Name = %s, want Alice", retrieved.Name)
	}
}
