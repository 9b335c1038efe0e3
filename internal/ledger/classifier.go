package ledger

import (
	"regexp"
	"strings"
)

// DefaultSubcategory is returned when no classification rule matches.
const DefaultSubcategory = "Diversos"

// Payment processors prepend a short routing tag to the merchant name,
// e.g. "AB*AMAZON MARKETPLACE" or "PAG*JOSESILVA".
var routingPrefix = regexp.MustCompile(`^[A-Z]{2,4}\*`)

var normalizeKeep = regexp.MustCompile(`[^A-Z0-9 ]+`)

// Rule maps a keyword to a subcategory label. Rules are ordered: when two
// matching keywords have the same length, the one that appears first wins.
type Rule struct {
	Keyword     string `json:"keyword"`
	Subcategory string `json:"subcategory"`
}

// NormalizeMerchant uppercases the raw statement description, strips a
// leading network-routing prefix, drops every character other than uppercase
// letters, digits and spaces, and trims the result.
func NormalizeMerchant(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = routingPrefix.ReplaceAllString(s, "")
	s = normalizeKeep.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Classify maps a free-text merchant description to a subcategory.
//
// Among all rule keywords that occur as a substring of the normalized text,
// the longest wins; length ties go to the earliest rule. With no rules or no
// match the default label is returned.
func Classify(merchant string, rules []Rule) string {
	text := NormalizeMerchant(merchant)
	best := ""
	bestLen := 0
	for _, r := range rules {
		kw := strings.ToUpper(strings.TrimSpace(r.Keyword))
		if kw == "" || !strings.Contains(text, kw) {
			continue
		}
		if len(kw) > bestLen {
			best = r.Subcategory
			bestLen = len(kw)
		}
	}
	if best == "" {
		return DefaultSubcategory
	}
	return best
}
