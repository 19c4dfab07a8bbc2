package model

import (
	"github.com/shopspring/decimal"
)

// MatchStatus classifies how strongly a candidate links a receipt to a
// transaction.
type MatchStatus string

// Match status constants.
const (
	// StatusConfident means the vendor similarity cleared the confidence
	// threshold in addition to the amount hit.
	StatusConfident MatchStatus = "CONFIDENT"
	// StatusAmountOnly means only the amount matched; vendor text was too
	// dissimilar to vouch for the pairing.
	StatusAmountOnly MatchStatus = "AMOUNT_ONLY"
)

// MatchCandidate links one receipt to one transaction whose normalized
// amount appeared in the receipt's extracted amount set. Confidence is the
// vendor-text similarity in [0,1].
type MatchCandidate struct {
	ReceiptName      string
	Status           MatchStatus
	Amount           decimal.Decimal
	Confidence       float64
	TransactionIndex int
}

// ReceiptResult is the typed per-receipt outcome of a reconciliation batch:
// either a candidate list (possibly empty, meaning unmatched) or a skipped
// marker carrying the failure reason. Exactly one shape per receipt; a
// skipped receipt never carries candidates.
type ReceiptResult struct {
	ReceiptName string
	SkipReason  string
	Candidates  []MatchCandidate
	Skipped     bool
}

// Matched reports whether at least one ledger row hit this receipt's
// extracted amounts.
func (r ReceiptResult) Matched() bool {
	return !r.Skipped && len(r.Candidates) > 0
}

// Best returns the top-ranked candidate. Callers must check Matched first.
func (r ReceiptResult) Best() MatchCandidate {
	return r.Candidates[0]
}
