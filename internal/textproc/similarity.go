package textproc

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Similarity computes a sequence-similarity ratio in [0,1] between a ledger
// vendor string and a receipt's normalized text blob. The comparison is
// case-insensitive and runs over the whole strings, not a substring search:
// a vendor name embedded anywhere in a longer receipt body still contributes
// matching character runs. Deterministic and symmetric.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	source := []rune(strings.ToLower(a))
	target := []rune(strings.ToLower(b))

	return levenshtein.RatioForStrings(source, target, levenshtein.DefaultOptions)
}
