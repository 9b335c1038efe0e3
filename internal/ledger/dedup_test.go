package ledger

import (
	"testing"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

func record(date core.Date, description string) core.Transaction {
	return core.Transaction{
		ID:          core.NewID(),
		Date:        date,
		Description: description,
		Amount:      core.Money{Cents: 1000},
		Kind:        core.Expense,
		Category:    core.CategoryCreditCard,
	}
}

func TestMergeSuppressesBatchInternalDuplicates(t *testing.T) {
	batch := []core.Transaction{
		record(core.NewDate(2024, 5, 1), "UBER TRIP"),
		record(core.NewDate(2024, 5, 1), "UBER TRIP"), // same (date, description)
		record(core.NewDate(2024, 5, 2), "UBER TRIP"),
	}

	merged, accepted := Merge(nil, batch)
	if accepted != 2 {
		t.Fatalf("accepted = %d, want 2", accepted)
	}
	if len(merged) != 2 {
		t.Fatalf("merged set has %d records, want 2", len(merged))
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	batch := []core.Transaction{
		record(core.NewDate(2024, 5, 1), "IFOOD"),
		record(core.NewDate(2024, 5, 3), "POSTO SHELL"),
	}

	merged, accepted := Merge(nil, batch)
	if accepted != 2 {
		t.Fatalf("first merge accepted = %d, want 2", accepted)
	}

	again, accepted := Merge(merged, batch)
	if accepted != 0 {
		t.Fatalf("re-merge accepted = %d, want 0", accepted)
	}
	if len(again) != 2 {
		t.Fatalf("re-merged set has %d records, want 2", len(again))
	}
}

func TestMergeTrimsDescriptionForIdentity(t *testing.T) {
	existing := []core.Transaction{record(core.NewDate(2024, 5, 1), "IFOOD")}
	incoming := []core.Transaction{record(core.NewDate(2024, 5, 1), "  IFOOD  ")}

	_, accepted := Merge(existing, incoming)
	if accepted != 0 {
		t.Fatalf("accepted = %d, want 0 (trimmed descriptions match)", accepted)
	}
}

func TestMergeKeepsDistinctDates(t *testing.T) {
	existing := []core.Transaction{record(core.NewDate(2024, 5, 1), "IFOOD")}
	incoming := []core.Transaction{record(core.NewDate(2024, 6, 1), "IFOOD")}

	merged, accepted := Merge(existing, incoming)
	if accepted != 1 || len(merged) != 2 {
		t.Fatalf("accepted = %d, merged = %d; want 1 and 2", accepted, len(merged))
	}
}

func TestMergeReplacingCategory(t *testing.T) {
	existing := []core.Transaction{
		record(core.NewDate(2024, 4, 10), "OLD STATEMENT LINE"),
		{
			ID: core.NewID(), Date: core.NewDate(2024, 4, 1), Description: "Aluguel",
			Amount: core.Money{Cents: 150000}, Kind: core.Expense, Category: core.CategoryFixed,
		},
	}
	incoming := []core.Transaction{
		record(core.NewDate(2024, 5, 2), "NEW STATEMENT LINE"),
		record(core.NewDate(2024, 5, 2), "NEW STATEMENT LINE"), // batch duplicate
	}

	merged, accepted := MergeReplacingCategory(existing, incoming, core.CategoryCreditCard)
	if accepted != 1 {
		t.Fatalf("accepted = %d, want 1", accepted)
	}
	if len(merged) != 2 {
		t.Fatalf("merged set has %d records, want 2 (fixed expense + new line)", len(merged))
	}
	for _, tr := range merged {
		if tr.Description == "OLD STATEMENT LINE" {
			t.Fatal("superseded category record survived the re-import")
		}
	}
}

func TestMergeReplacingCategoryIgnoresOtherCategoriesForDedup(t *testing.T) {
	existing := []core.Transaction{
		{
			ID: core.NewID(), Date: core.NewDate(2024, 5, 2), Description: "NEW STATEMENT LINE",
			Amount: core.Money{Cents: 1000}, Kind: core.Expense, Category: core.CategoryVariable,
		},
	}
	incoming := []core.Transaction{record(core.NewDate(2024, 5, 2), "NEW STATEMENT LINE")}

	merged, accepted := MergeReplacingCategory(existing, incoming, core.CategoryCreditCard)
	if accepted != 1 {
		t.Fatalf("accepted = %d, want 1 (replace mode merges with empty exclusion set)", accepted)
	}
	if len(merged) != 2 {
		t.Fatalf("merged set has %d records, want 2", len(merged))
	}
}
