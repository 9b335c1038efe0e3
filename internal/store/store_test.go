package store

import (
	"errors"
	"testing"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

func expense(description, category string) core.Transaction {
	return core.Transaction{
		ID:          core.NewID(),
		Date:        core.NewDate(2024, 5, 10),
		Description: description,
		Amount:      core.Money{Cents: 5000},
		Kind:        core.Expense,
		Category:    category,
	}
}

func TestInsertAndGet(t *testing.T) {
	s := New()
	e := expense("Mercado", core.CategoryVariable)
	if err := s.Insert(e); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.Get(e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != "Mercado" {
		t.Fatalf("got %q", got.Description)
	}

	if err := s.Insert(core.Transaction{}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestUpdateKeepsIDAndKindImmutable(t *testing.T) {
	s := New()
	e := expense("Luz", core.CategoryFixed)
	if err := s.Insert(e); err != nil {
		t.Fatalf("insert: %v", err)
	}

	err := s.Update(e.ID, func(tr *core.Transaction) {
		tr.Description = "Conta de luz"
		tr.ID = "forged"
		tr.Kind = core.Income
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := s.Get(e.ID)
	if got.Description != "Conta de luz" {
		t.Fatalf("description not updated: %q", got.Description)
	}
	if got.ID != e.ID || got.Kind != core.Expense {
		t.Fatal("id/kind must be immutable")
	}
}

func TestUpdateUnknownIDFails(t *testing.T) {
	s := New()
	err := s.Update("missing", func(*core.Transaction) {})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRejectsInvalidMutation(t *testing.T) {
	s := New()
	e := expense("Luz", core.CategoryFixed)
	_ = s.Insert(e)

	err := s.Update(e.ID, func(tr *core.Transaction) { tr.Description = "" })
	if err == nil {
		t.Fatal("expected validation error")
	}
	got, _ := s.Get(e.ID)
	if got.Description != "Luz" {
		t.Fatal("failed update must not change the record")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New()
	e := expense("Cinema", core.CategoryVariable)
	_ = s.Insert(e)

	s.Delete(e.ID)
	if _, err := s.Get(e.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatal("record still present after delete")
	}
	s.Delete(e.ID) // no-op, must not panic or bump anything visible
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}

func TestDeleteByCategory(t *testing.T) {
	s := New()
	_ = s.Insert(expense("FATURA 1", core.CategoryCreditCard))
	_ = s.Insert(expense("FATURA 2", core.CategoryCreditCard))
	_ = s.Insert(expense("Aluguel", core.CategoryFixed))

	if removed := s.DeleteByCategory(core.CategoryCreditCard); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if s.List()[0].Category != core.CategoryFixed {
		t.Fatal("wrong record survived")
	}
}

func TestListSnapshotIsStable(t *testing.T) {
	s := New()
	a := expense("A", core.CategoryFixed)
	_ = s.Insert(a)

	snap := s.List()
	_ = s.Insert(expense("B", core.CategoryFixed))
	s.Delete(a.ID)

	if len(snap) != 1 || snap[0].ID != a.ID {
		t.Fatal("snapshot changed after store mutation")
	}
}

func TestVersionBumpsOnMutationOnly(t *testing.T) {
	s := New()
	v0 := s.Version()

	_ = s.List()
	_, _ = s.Get("missing")
	if s.Version() != v0 {
		t.Fatal("read operations must not bump the version")
	}

	e := expense("A", core.CategoryFixed)
	_ = s.Insert(e)
	v1 := s.Version()
	if v1 == v0 {
		t.Fatal("insert must bump the version")
	}

	s.Delete(e.ID)
	if s.Version() == v1 {
		t.Fatal("delete must bump the version")
	}
}

func TestNewFromSnapshotPreservesOrderAndSkipsDuplicates(t *testing.T) {
	a := expense("A", core.CategoryFixed)
	b := expense("B", core.CategoryVariable)
	s := NewFromSnapshot([]core.Transaction{a, b, a, {Description: "no id"}})

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatal("insertion order not preserved")
	}
}
