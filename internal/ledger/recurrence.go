package ledger

import (
	"strconv"
	"time"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/cache"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

// ProjectYear materializes the view of a target year from the stored set.
//
// A recurring template contributes one ephemeral instance per month, from its
// own start month (when the template's year is the target year) or from
// January (when the template started in an earlier year) through December.
// Nothing is ever projected before the template's own start date. The
// instance's day of month is the template's, clamped to short months; its
// OriginID points back to the template and it carries no ID of its own.
//
// Non-recurring transactions are included as-is when their year matches.
// Output ordering is unspecified; callers sort for display.
func ProjectYear(transactions []core.Transaction, year int) []core.Transaction {
	var out []core.Transaction
	for _, t := range transactions {
		if !t.Recurring {
			if t.Date.Year() == year {
				out = append(out, t)
			}
			continue
		}
		if t.Date.Year() > year {
			continue
		}
		for m := 1; m <= 12; m++ {
			if t.Date.Year() == year && t.Date.Month() > m {
				continue
			}
			day := t.Date.Day()
			if last := core.DaysInMonth(year, m); day > last {
				day = last
			}
			inst := t
			inst.ID = ""
			inst.OriginID = t.ID
			inst.Date = core.NewDate(year, m, day)
			out = append(out, inst)
		}
	}
	return out
}

// Projector memoizes ProjectYear on (store version, year) so repeated views
// of the same year recompute nothing while the store is unchanged. Any
// mutation bumps the store version, which changes the key; stale entries age
// out of the LRU.
type Projector struct {
	memo *cache.LRUCache[[]core.Transaction]
}

func NewProjector() *Projector {
	return &Projector{
		memo: cache.NewLRUCache[[]core.Transaction](16, 10*time.Minute),
	}
}

// CleanExpired drops aged-out memo entries; the cache manager calls this on
// its sweep interval.
func (p *Projector) CleanExpired() int {
	return p.memo.CleanExpired()
}

// Project returns the projected view for the given year, computing it at most
// once per (version, year) pair.
func (p *Projector) Project(version uint64, transactions []core.Transaction, year int) []core.Transaction {
	key := strconv.FormatUint(version, 10) + ":" + strconv.Itoa(year)
	if cached, ok := p.memo.Get(key); ok {
		return cached
	}
	out := ProjectYear(transactions, year)
	p.memo.Set(key, out)
	return out
}
