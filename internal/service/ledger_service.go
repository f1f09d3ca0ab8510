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

// LedgerService answers the questions the whole system exists for: who
// is owed what, and how to settle up. It also records the settlements
// people actually make.
type LedgerService struct {
	store  storage.Store
	events events.Publisher
}

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a ledger service. The publisher may be nil
// when event publishing is disabled.
func NewLedgerService(store storage.Store, publisher events.Publisher) *LedgerService {
	return &LedgerService{store: store, events: publisher}
}

// loadLedger reads everything the balance computation needs.
func (s *LedgerService) loadLedger(ctx context.Context) ([]models.Person, []models.Expense, []models.Settlement, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, nil, nil, storageError(err)
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, nil, nil, storageError(err)
	}
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return nil, nil, nil, storageError(err)
	}
	return people, expenses, settlements, nil
}

// GetBalances returns the current net position of everyone in the pool.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	people, expenses, settlements, err := s.loadLedger(ctx)
	if err != nil {
		slog.Error("GetBalances failed", "error", err)
		return nil, err
	}

	balances := ledger.ComputeBalances(people, expenses, settlements)
	return connect.NewResponse(&api.GetBalancesResponse{Balances: toAPIBalances(balances)}), nil
}

// GetSettlementPlan returns a short list of transfers that would bring
// everyone's balance to zero.
func (s *LedgerService) GetSettlementPlan(ctx context.Context, req *connect.Request[api.GetSettlementPlanRequest]) (*connect.Response[api.GetSettlementPlanResponse], error) {
	people, expenses, settlements, err := s.loadLedger(ctx)
	if err != nil {
		slog.Error("GetSettlementPlan failed", "error", err)
		return nil, err
	}

	transfers := ledger.PlanSettlement(ledger.ComputeBalances(people, expenses, settlements))
	total := 0.0
	for _, t := range transfers {
		total += t.Amount
	}

	return connect.NewResponse(&api.GetSettlementPlanResponse{
		Transfers: toAPITransfers(transfers),
		Total:     total,
	}), nil
}

// RecordSettlement stores a repayment one person made to another.
func (s *LedgerService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	settlement := &models.Settlement{
		FromPersonID: req.Msg.FromPersonID,
		ToPersonID:   req.Msg.ToPersonID,
		Amount:       req.Msg.Amount,
		Note:         strings.TrimSpace(req.Msg.Note),
		SettledOn:    req.Msg.SettledOn,
	}
	if err := settlement.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	names := personNames(people)
	for _, id := range []string{settlement.FromPersonID, settlement.ToPersonID} {
		if _, ok := names[id]; !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("person '%s' is not in the pool", id))
		}
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "from", settlement.FromPersonID, "to", settlement.ToPersonID, "error", err)
		return nil, storageError(err)
	}
	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"from", settlement.FromPersonID,
		"to", settlement.ToPersonID,
		"amount", settlement.Amount)

	publishEvent(ctx, s.events, events.SettlementRecorded, settlement.ID)
	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement, names)}), nil
}

// ListSettlements returns every recorded settlement, newest first.
func (s *LedgerService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		slog.Error("ListSettlements failed", "error", err)
		return nil, storageError(err)
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	names := personNames(people)

	out := make([]*api.Settlement, len(settlements))
	for i := range settlements {
		out[i] = toAPISettlement(&settlements[i], names)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// DeleteSettlement removes a recorded settlement, putting the balance
// it cleared back on the books.
func (s *LedgerService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	if req.Msg.SettlementID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("settlement_id required"))
	}

	if err := s.store.DeleteSettlement(ctx, req.Msg.SettlementID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", req.Msg.SettlementID, "error", err)
		return nil, storageError(err)
	}
	slog.Info("Settlement deleted", "settlement_id", req.Msg.SettlementID)

	publishEvent(ctx, s.events, events.SettlementDeleted, req.Msg.SettlementID)
	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}
