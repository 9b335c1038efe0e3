// Package storage persists ledger snapshots. Persistence is deliberately
// dumb: after every mutating operation the whole snapshot is written in one
// synchronous call, so on-disk state always matches the last fully-applied
// mutation. In-memory state stays the source of truth; a failed write is a
// warning, never a crash.
package storage

import (
	"context"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

// Persister loads state at startup and stores whole snapshots after
// mutations. Implementations: JSON files (default) and SQLite.
type Persister interface {
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []core.Transaction) error
	LoadCategories(ctx context.Context) ([]string, error)
	SaveCategories(ctx context.Context, categories []string) error
	Close() error
}
