package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the ledger service.
const LedgerServiceName = "splitpot.v1.LedgerService"

// Procedure paths of the ledger service.
const (
	LedgerServiceGetBalancesProcedure       = "/splitpot.v1.LedgerService/GetBalances"
	LedgerServiceGetSettlementPlanProcedure = "/splitpot.v1.LedgerService/GetSettlementPlan"
	LedgerServiceRecordSettlementProcedure  = "/splitpot.v1.LedgerService/RecordSettlement"
	LedgerServiceListSettlementsProcedure   = "/splitpot.v1.LedgerService/ListSettlements"
	LedgerServiceDeleteSettlementProcedure  = "/splitpot.v1.LedgerService/DeleteSettlement"
)

type GetBalancesRequest struct{}

type GetBalancesResponse struct {
	Balances []*Balance `json:"balances"`
}

type GetSettlementPlanRequest struct{}

// GetSettlementPlanResponse lists the suggested repayments and the
// total amount that would change hands.
type GetSettlementPlanResponse struct {
	Transfers []*Transfer `json:"transfers"`
	Total     float64     `json:"total"`
}

type RecordSettlementRequest struct {
	FromPersonID string  `json:"from_person_id"`
	ToPersonID   string  `json:"to_person_id"`
	Amount       float64 `json:"amount"`
	Note         string  `json:"note,omitempty"`
	SettledOn    string  `json:"settled_on"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct{}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}

// LedgerServiceHandler is the server-side API of the ledger service.
type LedgerServiceHandler interface {
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
	GetSettlementPlan(context.Context, *connect.Request[GetSettlementPlanRequest]) (*connect.Response[GetSettlementPlanResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error)
	DeleteSettlement(context.Context, *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and
// the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceGetBalancesProcedure, connect.NewUnaryHandler(
		LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(LedgerServiceGetSettlementPlanProcedure, connect.NewUnaryHandler(
		LedgerServiceGetSettlementPlanProcedure, svc.GetSettlementPlan, opts...))
	mux.Handle(LedgerServiceRecordSettlementProcedure, connect.NewUnaryHandler(
		LedgerServiceRecordSettlementProcedure, svc.RecordSettlement, opts...))
	mux.Handle(LedgerServiceListSettlementsProcedure, connect.NewUnaryHandler(
		LedgerServiceListSettlementsProcedure, svc.ListSettlements, opts...))
	mux.Handle(LedgerServiceDeleteSettlementProcedure, connect.NewUnaryHandler(
		LedgerServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient is a client for the ledger service.
type LedgerServiceClient struct {
	getBalances       *connect.Client[GetBalancesRequest, GetBalancesResponse]
	getSettlementPlan *connect.Client[GetSettlementPlanRequest, GetSettlementPlanResponse]
	recordSettlement  *connect.Client[RecordSettlementRequest, RecordSettlementResponse]
	listSettlements   *connect.Client[ListSettlementsRequest, ListSettlementsResponse]
	deleteSettlement  *connect.Client[DeleteSettlementRequest, DeleteSettlementResponse]
}

// NewLedgerServiceClient constructs a client for the ledger service.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	baseURL = strings.TrimRight(baseURL, "/")
	return &LedgerServiceClient{
		getBalances: connect.NewClient[GetBalancesRequest, GetBalancesResponse](
			httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		getSettlementPlan: connect.NewClient[GetSettlementPlanRequest, GetSettlementPlanResponse](
			httpClient, baseURL+LedgerServiceGetSettlementPlanProcedure, opts...),
		recordSettlement: connect.NewClient[RecordSettlementRequest, RecordSettlementResponse](
			httpClient, baseURL+LedgerServiceRecordSettlementProcedure, opts...),
		listSettlements: connect.NewClient[ListSettlementsRequest, ListSettlementsResponse](
			httpClient, baseURL+LedgerServiceListSettlementsProcedure, opts...),
		deleteSettlement: connect.NewClient[DeleteSettlementRequest, DeleteSettlementResponse](
			httpClient, baseURL+LedgerServiceDeleteSettlementProcedure, opts...),
	}
}

func (c *LedgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetSettlementPlan(ctx context.Context, req *connect.Request[GetSettlementPlanRequest]) (*connect.Response[GetSettlementPlanResponse], error) {
	return c.getSettlementPlan.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}
