// Package ledger implements the transaction normalization and
// temporal-expansion engine: billing-date adjustment, installment expansion,
// recurring-expense projection, merchant classification and import
// deduplication. Everything here is pure computation over core types; storage
// and transport live elsewhere.
package ledger

import "github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"

// AdjustToBilling normalizes a statement-line purchase date to the billing
// date used for monthly grouping. Card networks post a purchase made on the
// last calendar day of a month to the following month's bill, so the last day
// of any month rolls forward to day 1 of the next month; every other date
// passes through unchanged.
//
// Total over valid calendar dates: December 31st rolls into January of the
// next year and leap Februaries are handled by the calendar itself
// (2024-02-29 -> 2024-03-01, 2024-02-28 stays put).
func AdjustToBilling(d core.Date) core.Date {
	if !d.IsLastDayOfMonth() {
		return d
	}
	next := d.AddMonths(1)
	return core.NewDate(next.Year(), next.Month(), 1)
}
