// Package service implements the Connect RPC handlers of the Splitpot
// server. Each service wraps the storage layer, translates between
// wire types and models, and reports failures as Connect error codes.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/splitpot/splitpot/internal/events"
	"github.com/splitpot/splitpot/internal/storage"
)

// storageError maps storage sentinel errors onto Connect error codes.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrNameTaken), errors.Is(err, storage.ErrEmailTaken):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// publishEvent sends a ledger event when a publisher is configured.
// Delivery is best effort; a publish failure never fails the request
// that triggered it.
func publishEvent(ctx context.Context, publisher events.Publisher, kind events.Kind, entityID string) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.NewLedgerEvent(kind, entityID)); err != nil {
		slog.Warn("Failed to publish ledger event",
			"kind", kind,
			"entity_id", entityID,
			"error", err)
	}
}
