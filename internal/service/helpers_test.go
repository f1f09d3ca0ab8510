package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/auth"
	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/storage"
	"github.com/splitpot/splitpot/internal/storage/sqlite"
)

const testJWTSecret = "service-test-secret"

// testEnv runs every service against a real SQLite store behind a real
// HTTP server, so tests exercise the full request path including the
// codec.
type testEnv struct {
	people   *api.PeopleServiceClient
	expenses *api.ExpenseServiceClient
	ledger   *api.LedgerServiceClient
	auth     *api.AuthServiceClient

	serverURL  string
	store      storage.Store
	jwtManager *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir, err := os.MkdirTemp("", "splitpot-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	store, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
		os.RemoveAll(dir)
	})

	jwtManager := auth.NewJWTManager(testJWTSecret, time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	// The ledger services run without RequireAuth here; the auth flow
	// has its own integration test.
	mux := http.NewServeMux()
	mux.Handle(api.NewPeopleServiceHandler(NewPeopleService(store, nil)))
	mux.Handle(api.NewExpenseServiceHandler(NewExpenseService(store, nil)))
	mux.Handle(api.NewLedgerServiceHandler(NewLedgerService(store, nil)))
	mux.Handle(api.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		people:     api.NewPeopleServiceClient(http.DefaultClient, server.URL),
		expenses:   api.NewExpenseServiceClient(http.DefaultClient, server.URL),
		ledger:     api.NewLedgerServiceClient(http.DefaultClient, server.URL),
		auth:       api.NewAuthServiceClient(http.DefaultClient, server.URL),
		serverURL:  server.URL,
		store:      store,
		jwtManager: jwtManager,
	}
}

// newTestHTTPServer serves a custom mux and returns its base URL.
func newTestHTTPServer(t *testing.T, handler http.Handler) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

// addPerson creates a person and returns their ID.
func (e *testEnv) addPerson(t *testing.T, name string) string {
	t.Helper()
	resp, err := e.people.CreatePerson(context.Background(), connect.NewRequest(&api.CreatePersonRequest{
		Name: name,
	}))
	if err != nil {
		t.Fatalf("CreatePerson(%q) failed: %v", name, err)
	}
	return resp.Msg.Person.ID
}

// addEqualExpense records an expense split equally among the given people.
func (e *testEnv) addEqualExpense(t *testing.T, description string, amount float64, payerID string, among []string) string {
	t.Helper()
	resp, err := e.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: description,
		Amount:      amount,
		SpentOn:     "2025-03-01",
		PayerID:     payerID,
		SplitAmong:  among,
	}))
	if err != nil {
		t.Fatalf("CreateExpense(%q) failed: %v", description, err)
	}
	return resp.Msg.Expense.ID
}

// assertCode fails the test unless err is a connect error with the
// given code.
func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}
