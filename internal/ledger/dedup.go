package ledger

import (
	"strings"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

// DuplicateKey is the identity used for import deduplication: the calendar
// date plus the trimmed description.
func DuplicateKey(t core.Transaction) string {
	return t.Date.Key() + "|" + strings.TrimSpace(t.Description)
}

// Merge appends incoming records to existing, suppressing duplicates.
//
// Incoming records are processed in input order; a record is dropped when its
// (date, description) identity matches an existing record or an earlier
// accepted record from the same batch. Dropped duplicates are normal,
// expected behavior, not errors. Returns the merged set and the number of
// records actually appended.
func Merge(existing, incoming []core.Transaction) ([]core.Transaction, int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, t := range existing {
		seen[DuplicateKey(t)] = struct{}{}
	}

	merged := append([]core.Transaction(nil), existing...)
	accepted := 0
	for _, t := range incoming {
		key := DuplicateKey(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, t)
		accepted++
	}
	return merged, accepted
}

// MergeReplacingCategory is the category-superseding import mode: every
// existing record of the given category is removed first, then the incoming
// batch is merged with an empty duplicate-exclusion set, so only duplicates
// within the batch itself are suppressed. A re-imported statement fully
// replaces the previous one for that category regardless of what other
// categories hold.
func MergeReplacingCategory(existing, incoming []core.Transaction, category string) ([]core.Transaction, int) {
	kept := make([]core.Transaction, 0, len(existing))
	for _, t := range existing {
		if t.Category != category {
			kept = append(kept, t)
		}
	}
	deduped, accepted := Merge(nil, incoming)
	return append(kept, deduped...), accepted
}
