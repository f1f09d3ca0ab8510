package ledger

import (
	"math"
	"sort"

	"github.com/splitpot/splitpot/internal/models"
)

// Transfer is a single proposed payment from a debtor to a creditor.
type Transfer struct {
	// FromPersonID is the debtor making the payment.
	FromPersonID string

	// FromName is the debtor's display name.
	FromName string

	// ToPersonID is the creditor receiving the payment.
	ToPersonID string

	// ToName is the creditor's display name.
	ToName string

	// Amount is the payment amount, always positive.
	Amount float64
}

// party is one side of the settlement walk: a person and the magnitude
// still outstanding on their side.
type party struct {
	id     string
	name   string
	amount float64
}

// PlanSettlement turns a set of balances into an ordered list of
// payments that clears every debt.
//
// The plan is built greedily: debtors and creditors are each sorted by
// descending magnitude, then matched pairwise with two cursors. Each
// step emits a payment for the smaller of the two outstanding
// magnitudes and advances whichever side was exhausted; magnitudes
// within MoneyEpsilon of each other count as exhausted together.
// People whose net balance is within MoneyEpsilon of zero are left out
// entirely, so rounding residue never produces a one-cent payment.
//
// Greedy matching keeps the plan short but does not guarantee the
// theoretical minimum number of payments; finding that minimum is a
// subset-sum style search and not worth the complexity here. Ties in
// magnitude keep the input order, so the plan is deterministic for a
// given balance slice.
func PlanSettlement(balances []Balance) []Transfer {
	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Net < -models.MoneyEpsilon:
			debtors = append(debtors, party{id: b.PersonID, name: b.Name, amount: -b.Net})
		case b.Net > models.MoneyEpsilon:
			creditors = append(creditors, party{id: b.PersonID, name: b.Name, amount: b.Net})
		}
	}
	if len(debtors) == 0 || len(creditors) == 0 {
		return nil
	}

	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })

	var plan []Transfer
	i, j := 0, 0

	// Remaining magnitudes for the parties under each cursor. Tracking
	// them in locals keeps the sorted slices untouched.
	remDebt := debtors[i].amount
	remCredit := creditors[j].amount

	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i]
		creditor := creditors[j]

		switch {
		case math.Abs(remDebt-remCredit) < models.MoneyEpsilon:
			// Both sides clear with one payment.
			plan = append(plan, transfer(debtor, creditor, remDebt))
			i++
			j++
			if i < len(debtors) {
				remDebt = debtors[i].amount
			}
			if j < len(creditors) {
				remCredit = creditors[j].amount
			}
		case remDebt < remCredit:
			// Debtor clears; creditor still has credit outstanding.
			plan = append(plan, transfer(debtor, creditor, remDebt))
			remCredit -= remDebt
			i++
			if i < len(debtors) {
				remDebt = debtors[i].amount
			}
		default:
			// Creditor clears; debtor still owes the remainder.
			plan = append(plan, transfer(debtor, creditor, remCredit))
			remDebt -= remCredit
			j++
			if j < len(creditors) {
				remCredit = creditors[j].amount
			}
		}
	}
	return plan
}

func transfer(from, to party, amount float64) Transfer {
	return Transfer{
		FromPersonID: from.id,
		FromName:     from.name,
		ToPersonID:   to.id,
		ToName:       to.name,
		Amount:       amount,
	}
}
