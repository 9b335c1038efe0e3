package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
)

var (
	installmentMarker = regexp.MustCompile(`^(\d+)/(\d+)$`)
	// Trailing "(k/n)" tag left over from a previous expansion.
	installmentSuffix = regexp.MustCompile(`\s*\(\d+/\d+\)$`)
)

// ParseInstallmentMarker parses a "k/n" installment marker. Both numbers must
// be positive integers. A marker with k > n (e.g. "3/1") is accepted input:
// only n drives expansion, k is not validated against it.
func ParseInstallmentMarker(marker string) (k, n int, ok bool) {
	m := installmentMarker.FindStringSubmatch(strings.TrimSpace(marker))
	if m == nil {
		return 0, 0, false
	}
	k, errK := strconv.Atoi(m[1])
	n, errN := strconv.Atoi(m[2])
	if errK != nil || errN != nil || k < 1 || n < 1 {
		return 0, 0, false
	}
	return k, n, true
}

// ExpandInstallments turns one purchase record carrying an installment marker
// into one dated transaction per installment month.
//
// A record without a valid "k/n" marker, or with n <= 1, comes back as a
// single-element slice with the marker cleared. Otherwise the i-th instance
// is dated i-1 whole months after the record's date (day clamped to short
// months), described as "<base> (i/n)" with any pre-existing "(x/y)" suffix
// stripped first so re-importing already-expanded data never double-tags, and
// given a fresh ID: expansion always produces new identities.
func ExpandInstallments(t core.Transaction) []core.Transaction {
	_, n, ok := ParseInstallmentMarker(t.Installment)
	if !ok || n <= 1 {
		t.Installment = ""
		return []core.Transaction{t}
	}

	base := strings.TrimSpace(installmentSuffix.ReplaceAllString(t.Description, ""))
	out := make([]core.Transaction, 0, n)
	for i := 1; i <= n; i++ {
		inst := t
		inst.ID = core.NewID()
		inst.Date = t.Date.AddMonths(i - 1)
		inst.Description = fmt.Sprintf("%s (%d/%d)", base, i, n)
		inst.Installment = fmt.Sprintf("%d/%d", i, n)
		out = append(out, inst)
	}
	return out
}
