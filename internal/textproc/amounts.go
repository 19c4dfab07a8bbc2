package textproc

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern recognizes grouped-thousands decimal tokens: one to three
// leading digits, optional comma-separated groups of exactly three digits,
// optional two-digit fractional part.
var amountPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d{2})?`)

// ExtractAmounts scans normalized text for monetary-amount tokens and
// returns the deduplicated candidate values in ascending order. Tokens that
// fail numeric conversion are discarded silently, as are non-positive
// values. Set semantics: the same amount commonly appears several times on
// one receipt (subtotal, tax line, total), and matching only cares whether
// the charge amount appears at all.
func ExtractAmounts(text string) []decimal.Decimal {
	tokens := amountPattern.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(tokens))
	amounts := make([]decimal.Decimal, 0, len(tokens))

	for _, token := range tokens {
		value, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
		if err != nil {
			continue
		}
		if value.Sign() <= 0 {
			continue
		}

		key := value.Round(2).StringFixed(2)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		amounts = append(amounts, value)
	}

	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].LessThan(amounts[j])
	})

	return amounts
}
