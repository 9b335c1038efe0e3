package ledger

import (
	"testing"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

func TestAdjustToBilling(t *testing.T) {
	tests := []struct {
		name string
		in   core.Date
		want core.Date
	}{
		{
			name: "mid-month passes through",
			in:   core.NewDate(2024, 5, 15),
			want: core.NewDate(2024, 5, 15),
		},
		{
			name: "last day of 31-day month rolls forward",
			in:   core.NewDate(2024, 5, 31),
			want: core.NewDate(2024, 6, 1),
		},
		{
			name: "leap February 29 rolls forward",
			in:   core.NewDate(2024, 2, 29),
			want: core.NewDate(2024, 3, 1),
		},
		{
			name: "February 28 of a leap year stays",
			in:   core.NewDate(2024, 2, 28),
			want: core.NewDate(2024, 2, 28),
		},
		{
			name: "February 28 of a common year rolls forward",
			in:   core.NewDate(2023, 2, 28),
			want: core.NewDate(2023, 3, 1),
		},
		{
			name: "December 31 rolls into next year",
			in:   core.NewDate(2024, 12, 31),
			want: core.NewDate(2025, 1, 1),
		},
		{
			name: "first day of month stays",
			in:   core.NewDate(2024, 6, 1),
			want: core.NewDate(2024, 6, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustToBilling(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("AdjustToBilling(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
