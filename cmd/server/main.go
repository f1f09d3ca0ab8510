package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/auth"
	"github.com/splitpot/splitpot/internal/config"
	"github.com/splitpot/splitpot/internal/events"
	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/service"
	"github.com/splitpot/splitpot/internal/storage/sqlite"
	"github.com/splitpot/splitpot/pkg/logging"
)

func main() {
	// .env is for local development; containers set the environment.
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Event publishing is optional. Without a broker the services run
	// the same, they just have nobody to tell.
	var publisher events.Publisher
	if cfg.EventsEnabled() {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		slog.Info("Event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	metrics := middleware.NewMetrics()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	// Metrics count every call, auth runs before logging so the access
	// log carries the user.
	var ledgerOpts connect.Option
	if cfg.AuthDisabled {
		slog.Warn("Authentication is disabled")
		ledgerOpts = connect.WithInterceptors(
			metrics.Interceptor(),
			middleware.LoggingInterceptor(),
		)
	} else {
		ledgerOpts = connect.WithInterceptors(
			metrics.Interceptor(),
			middleware.RequireAuth(jwtManager),
			middleware.LoggingInterceptor(),
		)
	}

	mux := http.NewServeMux()

	peoplePath, peopleHandler := api.NewPeopleServiceHandler(service.NewPeopleService(store, publisher), ledgerOpts)
	mux.Handle(peoplePath, peopleHandler)

	expensePath, expenseHandler := api.NewExpenseServiceHandler(service.NewExpenseService(store, publisher), ledgerOpts)
	mux.Handle(expensePath, expenseHandler)

	ledgerPath, ledgerHandler := api.NewLedgerServiceHandler(service.NewLedgerService(store, publisher), ledgerOpts)
	mux.Handle(ledgerPath, ledgerHandler)

	// Register and Login must pass unauthenticated, so the auth service
	// attaches identity optimistically instead of requiring it. With
	// auth disabled there are no accounts to serve.
	if !cfg.AuthDisabled {
		authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store)
		authOpts := connect.WithInterceptors(
			metrics.Interceptor(),
			middleware.OptionalAuth(jwtManager),
			middleware.LoggingInterceptor(),
		)
		authPath, authHandler := api.NewAuthServiceHandler(authSvc, authOpts)
		mux.Handle(authPath, authHandler)
	}

	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr: ":" + cfg.Port,
		// h2c carries HTTP/2 without TLS, which Connect clients use.
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
