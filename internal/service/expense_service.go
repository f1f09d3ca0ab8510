package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/events"
	"github.com/splitpot/splitpot/internal/ledger"
	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

// ExpenseService manages the recorded expenses of the pool.
type ExpenseService struct {
	store  storage.Store
	events events.Publisher
}

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates an expense service. The publisher may be
// nil when event publishing is disabled.
func NewExpenseService(store storage.Store, publisher events.Publisher) *ExpenseService {
	return &ExpenseService{store: store, events: publisher}
}

// resolveSplits turns whichever split style the request used into
// explicit per-person amounts.
func resolveSplits(amount float64, splits []*api.SplitInput, splitAmong []string, percents []*api.PercentInput) ([]models.Split, error) {
	styles := 0
	if len(splits) > 0 {
		styles++
	}
	if len(splitAmong) > 0 {
		styles++
	}
	if len(percents) > 0 {
		styles++
	}
	if styles != 1 {
		return nil, fmt.Errorf("exactly one of splits, split_among or percents must be set")
	}

	switch {
	case len(splits) > 0:
		out := make([]models.Split, len(splits))
		for i, s := range splits {
			out[i] = models.Split{PersonID: s.PersonID, Amount: s.Amount}
		}
		return out, nil
	case len(splitAmong) > 0:
		return ledger.EqualSplits(amount, splitAmong)
	default:
		shares := make([]ledger.PercentShare, len(percents))
		for i, p := range percents {
			shares[i] = ledger.PercentShare{PersonID: p.PersonID, Percent: p.Percent}
		}
		return ledger.PercentageSplits(amount, shares)
	}
}

// checkReferences verifies that the payer and every split person exist
// in the pool.
func checkReferences(names map[string]string, payerID string, splits []models.Split) error {
	if _, ok := names[payerID]; !ok {
		return fmt.Errorf("payer '%s' is not in the pool", payerID)
	}
	for _, split := range splits {
		if _, ok := names[split.PersonID]; !ok {
			return fmt.Errorf("split references unknown person '%s'", split.PersonID)
		}
	}
	return nil
}

// buildExpense assembles and validates an expense from request fields,
// checking every person reference against the pool. The returned names
// map decorates the response.
func (s *ExpenseService) buildExpense(ctx context.Context, id, description string, amount float64, spentOn, payerID string, splits []*api.SplitInput, splitAmong []string, percents []*api.PercentInput) (*models.Expense, map[string]string, error) {
	resolved, err := resolveSplits(amount, splits, splitAmong, percents)
	if err != nil {
		return nil, nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expense := &models.Expense{
		ID:          id,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		SpentOn:     spentOn,
		PayerID:     payerID,
		Splits:      resolved,
	}
	if err := expense.Validate(); err != nil {
		return nil, nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, nil, storageError(err)
	}
	names := personNames(people)
	if err := checkReferences(names, expense.PayerID, expense.Splits); err != nil {
		return nil, nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	return expense, names, nil
}

// CreateExpense records a new expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	expense, names, err := s.buildExpense(ctx, "",
		req.Msg.Description, req.Msg.Amount, req.Msg.SpentOn, req.Msg.PayerID,
		req.Msg.Splits, req.Msg.SplitAmong, req.Msg.Percents)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "description", expense.Description, "error", err)
		return nil, storageError(err)
	}
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"payer_id", expense.PayerID,
		"splits", len(expense.Splits))

	publishEvent(ctx, s.events, events.ExpenseCreated, expense.ID)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense, names)}), nil
}

// GetExpense returns a single expense with its splits.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	if req.Msg.ExpenseID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense_id required"))
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storageError(err)
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense, personNames(people))}), nil
}

// ListExpenses returns every expense, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		slog.Error("ListExpenses failed", "error", err)
		return nil, storageError(err)
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	names := personNames(people)

	out := make([]*api.Expense, len(expenses))
	for i := range expenses {
		out[i] = toAPIExpense(&expenses[i], names)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// UpdateExpense replaces an expense wholesale.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	if req.Msg.ExpenseID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense_id required"))
	}

	expense, names, err := s.buildExpense(ctx, req.Msg.ExpenseID,
		req.Msg.Description, req.Msg.Amount, req.Msg.SpentOn, req.Msg.PayerID,
		req.Msg.Splits, req.Msg.SplitAmong, req.Msg.Percents)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storageError(err)
	}
	slog.Info("Expense updated", "expense_id", expense.ID, "amount", expense.Amount)

	publishEvent(ctx, s.events, events.ExpenseUpdated, expense.ID)

	// Re-read so the response carries the stored timestamps.
	stored, err := s.store.GetExpense(ctx, expense.ID)
	if err != nil {
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(stored, names)}), nil
}

// DeleteExpense removes an expense and its splits.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if req.Msg.ExpenseID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense_id required"))
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storageError(err)
	}
	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)

	publishEvent(ctx, s.events, events.ExpenseDeleted, req.Msg.ExpenseID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}
