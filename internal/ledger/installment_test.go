package ledger

import (
	"fmt"
	"testing"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

func ccPurchase(date core.Date, description, marker string) core.Transaction {
	return core.Transaction{
		ID:          core.NewID(),
		Date:        date,
		Description: description,
		Amount:      core.Money{Cents: 90000},
		Kind:        core.Expense,
		Category:    core.CategoryCreditCard,
		Installment: marker,
	}
}

func TestParseInstallmentMarker(t *testing.T) {
	tests := []struct {
		in     string
		k, n   int
		wantOK bool
	}{
		{"1/3", 1, 3, true},
		{"12/12", 12, 12, true},
		{" 2/6 ", 2, 6, true},
		{"3/1", 3, 1, true}, // k > n is accepted, only n is used
		{"0/3", 0, 0, false},
		{"1/0", 0, 0, false},
		{"1-3", 0, 0, false},
		{"abc", 0, 0, false},
		{"", 0, 0, false},
		{"1/3 extra", 0, 0, false},
	}
	for _, tt := range tests {
		k, n, ok := ParseInstallmentMarker(tt.in)
		if ok != tt.wantOK || k != tt.k || n != tt.n {
			t.Errorf("ParseInstallmentMarker(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.in, k, n, ok, tt.k, tt.n, tt.wantOK)
		}
	}
}

func TestExpandInstallmentsThreeMonths(t *testing.T) {
	original := ccPurchase(core.NewDate(2024, 1, 15), "TV", "1/3")
	got := ExpandInstallments(original)

	if len(got) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(got))
	}

	wantDates := []core.Date{
		core.NewDate(2024, 1, 15),
		core.NewDate(2024, 2, 15),
		core.NewDate(2024, 3, 15),
	}
	seenIDs := map[string]bool{original.ID: true}
	for i, inst := range got {
		if !inst.Date.Equal(wantDates[i]) {
			t.Errorf("instance %d date = %v, want %v", i, inst.Date, wantDates[i])
		}
		wantDesc := fmt.Sprintf("TV (%d/3)", i+1)
		if inst.Description != wantDesc {
			t.Errorf("instance %d description = %q, want %q", i, inst.Description, wantDesc)
		}
		wantMarker := fmt.Sprintf("%d/3", i+1)
		if inst.Installment != wantMarker {
			t.Errorf("instance %d marker = %q, want %q", i, inst.Installment, wantMarker)
		}
		if seenIDs[inst.ID] {
			t.Errorf("instance %d reuses an ID", i)
		}
		seenIDs[inst.ID] = true
		if inst.Amount != original.Amount || inst.Category != original.Category {
			t.Errorf("instance %d lost carried fields", i)
		}
	}
}

func TestExpandInstallmentsNoMarker(t *testing.T) {
	original := ccPurchase(core.NewDate(2024, 1, 15), "Mercado", "")
	got := ExpandInstallments(original)

	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Installment != "" {
		t.Errorf("marker not cleared: %q", got[0].Installment)
	}
	if got[0].ID != original.ID || got[0].Description != original.Description {
		t.Error("record without marker should be returned unchanged apart from the marker")
	}
}

func TestExpandInstallmentsSingleInstallment(t *testing.T) {
	for _, marker := range []string{"1/1", "3/1", "garbage"} {
		got := ExpandInstallments(ccPurchase(core.NewDate(2024, 1, 15), "Padaria", marker))
		if len(got) != 1 {
			t.Fatalf("marker %q: expected 1 record, got %d", marker, len(got))
		}
		if got[0].Installment != "" {
			t.Errorf("marker %q not cleared: %q", marker, got[0].Installment)
		}
	}
}

func TestExpandInstallmentsStripsPreviousSuffix(t *testing.T) {
	got := ExpandInstallments(ccPurchase(core.NewDate(2024, 3, 5), "Notebook (1/10)", "1/2"))
	if len(got) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(got))
	}
	if got[0].Description != "Notebook (1/2)" || got[1].Description != "Notebook (2/2)" {
		t.Errorf("old suffix not stripped: %q, %q", got[0].Description, got[1].Description)
	}
}

func TestExpandInstallmentsClampsShortMonths(t *testing.T) {
	got := ExpandInstallments(ccPurchase(core.NewDate(2024, 1, 31), "Sofá", "1/3"))
	wantDates := []core.Date{
		core.NewDate(2024, 1, 31),
		core.NewDate(2024, 2, 29), // leap year clamp
		core.NewDate(2024, 3, 31),
	}
	for i, inst := range got {
		if !inst.Date.Equal(wantDates[i]) {
			t.Errorf("instance %d date = %v, want %v", i, inst.Date, wantDates[i])
		}
	}
}

func TestExpandInstallmentsCountMatchesMarker(t *testing.T) {
	for n := 2; n <= 24; n++ {
		marker := fmt.Sprintf("1/%d", n)
		got := ExpandInstallments(ccPurchase(core.NewDate(2024, 6, 10), "Geladeira", marker))
		if len(got) != n {
			t.Errorf("marker %q: expected %d instances, got %d", marker, n, len(got))
		}
	}
}
