package engine

import (
	"sort"

	"github.com/eocodev/reviewstation/internal/model"
)

// BatchReport aggregates the per-receipt outcomes of one reconciliation
// run. Results are sorted by receipt name.
type BatchReport struct {
	Results []model.ReceiptResult
}

// Unmatched returns the advisory set of receipt names whose extracted
// amounts hit no transaction. Skipped receipts are reported separately.
func (b *BatchReport) Unmatched() []string {
	var names []string
	for _, r := range b.Results {
		if !r.Skipped && len(r.Candidates) == 0 {
			names = append(names, r.ReceiptName)
		}
	}
	return names
}

// Skipped returns the receipts that failed processing, with reasons.
func (b *BatchReport) Skipped() []model.ReceiptResult {
	var skipped []model.ReceiptResult
	for _, r := range b.Results {
		if r.Skipped {
			skipped = append(skipped, r)
		}
	}
	return skipped
}

// MatchedCount returns how many receipts produced at least one candidate.
func (b *BatchReport) MatchedCount() int {
	n := 0
	for _, r := range b.Results {
		if r.Matched() {
			n++
		}
	}
	return n
}

// Candidates flattens every candidate in the batch, receipts in name order,
// each receipt's candidates ranked.
func (b *BatchReport) Candidates() []model.MatchCandidate {
	var all []model.MatchCandidate
	for _, r := range b.Results {
		all = append(all, r.Candidates...)
	}
	return all
}

// CandidatesFor returns the ranked candidates naming a transaction.
func (b *BatchReport) CandidatesFor(transactionIndex int) []model.MatchCandidate {
	var hits []model.MatchCandidate
	for _, r := range b.Results {
		for _, c := range r.Candidates {
			if c.TransactionIndex == transactionIndex {
				hits = append(hits, c)
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Confidence != hits[j].Confidence {
			return hits[i].Confidence > hits[j].Confidence
		}
		return hits[i].ReceiptName < hits[j].ReceiptName
	})
	return hits
}

// Result returns the outcome for a receipt name.
func (b *BatchReport) Result(name string) (model.ReceiptResult, bool) {
	for _, r := range b.Results {
		if r.ReceiptName == name {
			return r, true
		}
	}
	return model.ReceiptResult{}, false
}

// AutoSelect picks assignments for fully automatic mode: each receipt's
// highest-confidence candidate, ties broken by transaction ordinal
// ascending. When two receipts contend for the same transaction the higher
// confidence wins and the loser falls back to its next candidate. The
// resulting selection maps each transaction to at most one receipt and each
// receipt to at most one transaction.
func (b *BatchReport) AutoSelect() *model.Selection {
	var pool []model.MatchCandidate
	for _, r := range b.Results {
		pool = append(pool, r.Candidates...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		ci, cj := pool[i], pool[j]
		if ci.Confidence != cj.Confidence {
			return ci.Confidence > cj.Confidence
		}
		if ci.TransactionIndex != cj.TransactionIndex {
			return ci.TransactionIndex < cj.TransactionIndex
		}
		return ci.ReceiptName < cj.ReceiptName
	})

	selection := model.NewSelection()
	takenReceipts := make(map[string]bool)

	for _, c := range pool {
		if takenReceipts[c.ReceiptName] {
			continue
		}
		if _, taken := selection.Receipt(c.TransactionIndex); taken {
			continue
		}
		selection.Select(c.TransactionIndex, c.ReceiptName)
		takenReceipts[c.ReceiptName] = true
	}

	return selection
}
