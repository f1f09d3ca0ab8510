package export

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/splitpot/splitpot/internal/events"
	"github.com/splitpot/splitpot/internal/storage"
)

// Worker keeps the spreadsheet in step with the ledger. It resyncs
// whenever a ledger event arrives and on a fixed interval as a
// catch-all for missed messages.
type Worker struct {
	exporter *Exporter
	store    storage.Store
	consumer *events.Client
	interval time.Duration
}

// NewWorker wires an exporter to its inputs. The consumer may be nil,
// in which case the worker runs on the interval alone.
func NewWorker(exporter *Exporter, store storage.Store, consumer *events.Client, interval time.Duration) *Worker {
	return &Worker{
		exporter: exporter,
		store:    store,
		consumer: consumer,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled or a loop fails.
func (w *Worker) Run(ctx context.Context) error {
	// Bring the sheet up to date before waiting for traffic. A failure
	// here is not fatal; the next event or tick retries.
	if err := w.exporter.Resync(ctx, w.store); err != nil {
		slog.ErrorContext(ctx, "Startup resync failed", "error", err)
	}

	group, ctx := errgroup.WithContext(ctx)

	if w.consumer != nil {
		group.Go(func() error {
			return w.consumer.Consume(ctx, func(event *events.LedgerEvent) error {
				slog.InfoContext(ctx, "Ledger event received",
					"kind", event.Kind,
					"entity_id", event.EntityID)
				return w.exporter.Resync(ctx, w.store)
			})
		})
	}

	group.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.exporter.Resync(ctx, w.store); err != nil {
					slog.ErrorContext(ctx, "Periodic resync failed", "error", err)
				}
			}
		}
	})

	return group.Wait()
}
