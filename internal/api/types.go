package api

// Wire representations shared across services. Timestamps are Unix
// seconds; dates are "YYYY-MM-DD" strings.

// Person is a member of the expense pool.
type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Split is one person's share of an expense.
type Split struct {
	PersonID   string  `json:"person_id"`
	PersonName string  `json:"person_name,omitempty"`
	Amount     float64 `json:"amount"`
}

// Expense is a recorded cost paid by one person and split across many.
type Expense struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	SpentOn     string   `json:"spent_on"`
	PayerID     string   `json:"payer_id"`
	PayerName   string   `json:"payer_name,omitempty"`
	Splits      []*Split `json:"splits"`
	CreatedAt   int64    `json:"created_at"`
}

// Settlement is a recorded repayment between two people.
type Settlement struct {
	ID           string  `json:"id"`
	FromPersonID string  `json:"from_person_id"`
	FromName     string  `json:"from_name,omitempty"`
	ToPersonID   string  `json:"to_person_id"`
	ToName       string  `json:"to_name,omitempty"`
	Amount       float64 `json:"amount"`
	Note         string  `json:"note,omitempty"`
	SettledOn    string  `json:"settled_on"`
	CreatedAt    int64   `json:"created_at"`
}

// Balance is one person's aggregate position across all expenses and
// settlements. Net is positive when the pool owes them money.
type Balance struct {
	PersonID  string  `json:"person_id"`
	Name      string  `json:"name"`
	TotalPaid float64 `json:"total_paid"`
	TotalOwed float64 `json:"total_owed"`
	Net       float64 `json:"net"`
}

// Transfer is one payment suggested by the settlement planner.
type Transfer struct {
	FromPersonID string  `json:"from_person_id"`
	FromName     string  `json:"from_name"`
	ToPersonID   string  `json:"to_person_id"`
	ToName       string  `json:"to_name"`
	Amount       float64 `json:"amount"`
}

// User is a registered account. The password hash never crosses the wire.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}
