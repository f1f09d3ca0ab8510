package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/auth"
	"github.com/splitpot/splitpot/internal/models"
)

func okNext(t *testing.T) (connect.UnaryFunc, *context.Context) {
	t.Helper()
	var seen context.Context
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = ctx
		return connect.NewResponse(&api.ListPeopleResponse{}), nil
	})
	return next, &seen
}

func TestRequireAuth(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := manager.Generate(&models.User{ID: "u1", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	interceptor := RequireAuth(manager)

	t.Run("valid token reaches the handler with identity", func(t *testing.T) {
		next, seen := okNext(t)
		req := connect.NewRequest(&api.ListPeopleRequest{})
		req.Header().Set("Authorization", "Bearer "+token)

		if _, err := interceptor(next)(context.Background(), req); err != nil {
			t.Fatalf("expected call to succeed, got %v", err)
		}
		if got := GetUserID(*seen); got != "u1" {
			t.Errorf("expected user ID u1 in context, got %q", got)
		}
		if got := GetEmail(*seen); got != "ada@example.com" {
			t.Errorf("expected email in context, got %q", got)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		next, _ := okNext(t)
		req := connect.NewRequest(&api.ListPeopleRequest{})

		_, err := interceptor(next)(context.Background(), req)
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
		if !errors.Is(err, auth.ErrMissingToken) {
			t.Errorf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("wrong scheme is rejected", func(t *testing.T) {
		next, _ := okNext(t)
		req := connect.NewRequest(&api.ListPeopleRequest{})
		req.Header().Set("Authorization", "Basic dXNlcjpwYXNz")

		_, err := interceptor(next)(context.Background(), req)
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		next, _ := okNext(t)
		req := connect.NewRequest(&api.ListPeopleRequest{})
		req.Header().Set("Authorization", "Bearer not.a.jwt")

		_, err := interceptor(next)(context.Background(), req)
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := manager.Generate(&models.User{ID: "u1", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	interceptor := OptionalAuth(manager)

	t.Run("valid token attaches identity", func(t *testing.T) {
		next, seen := okNext(t)
		req := connect.NewRequest(&api.ListPeopleRequest{})
		req.Header().Set("Authorization", "Bearer "+token)

		if _, err := interceptor(next)(context.Background(), req); err != nil {
			t.Fatalf("expected call to succeed, got %v", err)
		}
		if got := GetUserID(*seen); got != "u1" {
			t.Errorf("expected user ID u1 in context, got %q", got)
		}
	})

	t.Run("missing token still goes through", func(t *testing.T) {
		next, seen := okNext(t)
		req := connect.NewRequest(&api.ListPeopleRequest{})

		if _, err := interceptor(next)(context.Background(), req); err != nil {
			t.Fatalf("expected call to succeed, got %v", err)
		}
		if got := GetUserID(*seen); got != "" {
			t.Errorf("expected no user ID in context, got %q", got)
		}
	})

	t.Run("invalid token still goes through anonymously", func(t *testing.T) {
		next, seen := okNext(t)
		req := connect.NewRequest(&api.ListPeopleRequest{})
		req.Header().Set("Authorization", "Bearer not.a.jwt")

		if _, err := interceptor(next)(context.Background(), req); err != nil {
			t.Fatalf("expected call to succeed, got %v", err)
		}
		if got := GetUserID(*seen); got != "" {
			t.Errorf("expected no user ID in context, got %q", got)
		}
	})
}

func TestMetricsInterceptorCountsCalls(t *testing.T) {
	metrics := NewMetrics()
	interceptor := metrics.Interceptor()

	next, _ := okNext(t)
	if _, err := interceptor(next)(context.Background(), connect.NewRequest(&api.ListPeopleRequest{})); err != nil {
		t.Fatalf("expected call to succeed, got %v", err)
	}

	failing := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})
	if _, err := interceptor(failing)(context.Background(), connect.NewRequest(&api.ListPeopleRequest{})); err == nil {
		t.Fatal("expected the failing call to return an error")
	}

	gathered, err := metrics.registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	counts := map[string]float64{}
	for _, family := range gathered {
		if family.GetName() != "splitpot_rpc_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "code" {
					counts[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	if counts["ok"] != 1 {
		t.Errorf("expected 1 ok request, got %v", counts["ok"])
	}
	if counts["not_found"] != 1 {
		t.Errorf("expected 1 not_found request, got %v", counts["not_found"])
	}
}
