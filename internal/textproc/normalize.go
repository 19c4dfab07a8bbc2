// Package textproc implements text processing for noisy OCR output:
// normalization, monetary amount extraction, and vendor similarity scoring.
package textproc

import (
	"regexp"
	"strings"
)

var (
	lineBreakPattern    = regexp.MustCompile(`[\r\n]+`)
	decimalSpacePattern = regexp.MustCompile(`(\d)\s*\.\s*(\d)`)
)

// Normalize cleans raw OCR text for matching: embedded line breaks collapse
// to single spaces, the text is uppercased, and decimal-spacing artifacts
// ("150 . 00") are repaired to plain decimals. Pure and idempotent; any
// input normalizes without error.
func Normalize(raw string) string {
	text := lineBreakPattern.ReplaceAllString(raw, " ")
	text = strings.ToUpper(text)
	text = decimalSpacePattern.ReplaceAllString(text, "$1.$2")
	return text
}
