package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

const (
	transactionsFile = "transactions.json"
	categoriesFile   = "categories.json"
)

// JSONStore persists the ledger as two UTF-8 JSON documents in a directory:
// an array of transaction objects and an array of category labels.
//
// Reading a missing file yields an empty collection. Reading a corrupt file
// also yields an empty collection, with the decode error logged as a warning
// rather than surfaced: the ledger must keep working even when its state file
// was mangled by hand.
type JSONStore struct {
	dir string
}

func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &JSONStore{dir: dir}, nil
}

func (s *JSONStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	var transactions []core.Transaction
	s.loadArray(ctx, transactionsFile, &transactions)
	return transactions, nil
}

func (s *JSONStore) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	return s.saveArray(ctx, transactionsFile, transactions)
}

func (s *JSONStore) LoadCategories(ctx context.Context) ([]string, error) {
	var categories []string
	s.loadArray(ctx, categoriesFile, &categories)
	return categories, nil
}

func (s *JSONStore) SaveCategories(ctx context.Context, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	return s.saveArray(ctx, categoriesFile, categories)
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) loadArray(ctx context.Context, name string, out any) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to read state file, starting empty",
			"path", path, "error", err)
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.WarnContext(ctx, "State file is corrupt, starting empty",
			"path", path, "error", err)
	}
}

// saveArray writes the document to a temp file and renames it into place, so
// readers never observe a partial snapshot.
func (s *JSONStore) saveArray(_ context.Context, name string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
