package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	want := sampleTransactions()
	if err := repo.SaveTransactions(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || !got[i].Date.Equal(want[i].Date) ||
			got[i].Amount != want[i].Amount || got[i].Recurring != want[i].Recurring {
			t.Fatalf("transaction %d mismatch: %+v != %+v", i, got[i], want[i])
		}
	}

	// A second snapshot fully replaces the first.
	if err := repo.SaveTransactions(ctx, want[:1]); err != nil {
		t.Fatalf("save second snapshot: %v", err)
	}
	got, err = repo.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load second snapshot: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("snapshot save must replace, got %d records", len(got))
	}
}

func TestSQLiteRepositoryCategories(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	want := []string{core.CategoryFixed, core.CategoryVariable, core.CategoryCreditCard}
	if err := repo.SaveCategories(ctx, want); err != nil {
		t.Fatalf("save categories: %v", err)
	}
	got, err := repo.LoadCategories(ctx)
	if err != nil {
		t.Fatalf("load categories: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category order not preserved: %v", got)
		}
	}
}
