// Package worker runs the background side of the ledger: it listens for
// change events and mirrors the persisted snapshot to an external table.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/amqp"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/storage"
)

// TablePusher replaces an external table with a transaction snapshot.
// *sheets.Mirror satisfies it.
type TablePusher interface {
	Push(ctx context.Context, transactions []core.Transaction) error
}

// MirrorWorker reloads the persisted ledger snapshot and pushes it to the
// external table, either when a change event arrives or on a fallback
// interval. The snapshot always comes from storage, never from message
// payloads, so a lost event only delays the mirror until the next tick.
type MirrorWorker struct {
	persister storage.Persister
	pusher    TablePusher
	interval  time.Duration

	trigger chan struct{}
}

func NewMirrorWorker(persister storage.Persister, pusher TablePusher, interval time.Duration) *MirrorWorker {
	return &MirrorWorker{
		persister: persister,
		pusher:    pusher,
		interval:  interval,
		trigger:   make(chan struct{}, 1),
	}
}

// HandleLedgerEvent is the AMQP consumer callback: it requests a mirror pass.
// Bursts of events coalesce into one pass.
func (w *MirrorWorker) HandleLedgerEvent(msg *amqp.LedgerEventMessage) error {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
	return nil
}

// Run mirrors until ctx is done. The first pass happens immediately.
func (w *MirrorWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if err := w.MirrorOnce(ctx); err != nil {
		slog.WarnContext(ctx, "Initial mirror pass failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.trigger:
			if err := w.MirrorOnce(ctx); err != nil {
				slog.WarnContext(ctx, "Mirror pass failed", "error", err)
			}
		case <-ticker.C:
			if err := w.MirrorOnce(ctx); err != nil {
				slog.WarnContext(ctx, "Periodic mirror pass failed", "error", err)
			}
		}
	}
}

// MirrorOnce loads the persisted snapshot and pushes it.
func (w *MirrorWorker) MirrorOnce(ctx context.Context) error {
	transactions, err := w.persister.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if err := w.pusher.Push(ctx, transactions); err != nil {
		return fmt.Errorf("push snapshot: %w", err)
	}
	slog.DebugContext(ctx, "Mirror pass complete", "rows", len(transactions))
	return nil
}
