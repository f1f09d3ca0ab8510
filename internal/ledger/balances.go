// Package ledger computes net balances and settlement plans from
// recorded expenses and settlements.
//
// Both entry points are pure functions: they read their inputs,
// allocate fresh outputs, and hold no state, so they are safe to call
// concurrently.
package ledger

import "github.com/splitpot/splitpot/internal/models"

// Balance is one person's aggregate position across the whole ledger.
type Balance struct {
	// PersonID identifies the person.
	PersonID string

	// Name is the person's display name, carried along for rendering.
	Name string

	// TotalPaid is everything this person paid out: expense amounts
	// plus settlement payments they made.
	TotalPaid float64

	// TotalOwed is everything this person consumed: their split shares
	// plus settlement payments they received.
	TotalOwed float64

	// Net is TotalPaid minus TotalOwed.
	// Positive = is owed money, negative = owes money, zero = settled.
	Net float64
}

// ComputeBalances derives each person's net balance from the recorded
// expenses and settlements.
//
// Every listed person gets a balance entry, including people who appear
// in no expense at all (their balance is zero). The result preserves
// the order of the people slice. A recorded settlement counts as money
// paid by the sender and received by the recipient, so settling up
// moves both parties toward zero.
//
// Rows referencing a person missing from people are skipped; referential
// integrity is the storage layer's job.
func ComputeBalances(people []models.Person, expenses []models.Expense, settlements []models.Settlement) []Balance {
	balances := make([]Balance, len(people))
	byID := make(map[string]*Balance, len(people))
	for i, p := range people {
		balances[i] = Balance{PersonID: p.ID, Name: p.Name}
		byID[p.ID] = &balances[i]
	}

	for _, e := range expenses {
		if payer, ok := byID[e.PayerID]; ok {
			payer.TotalPaid += e.Amount
		}
		for _, s := range e.Splits {
			if bal, ok := byID[s.PersonID]; ok {
				bal.TotalOwed += s.Amount
			}
		}
	}

	for _, s := range settlements {
		if from, ok := byID[s.FromPersonID]; ok {
			from.TotalPaid += s.Amount
		}
		if to, ok := byID[s.ToPersonID]; ok {
			to.TotalOwed += s.Amount
		}
	}

	for i := range balances {
		balances[i].Net = balances[i].TotalPaid - balances[i].TotalOwed
	}
	return balances
}
