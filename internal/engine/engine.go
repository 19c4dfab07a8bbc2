// Package engine implements the reconciliation engine that matches receipt
// documents against ledger transactions.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/eocodev/reviewstation/internal/ledger"
	"github.com/eocodev/reviewstation/internal/model"
	"github.com/eocodev/reviewstation/internal/ocr"
	"github.com/eocodev/reviewstation/internal/textproc"
)

// Config holds configuration options for the reconciliation engine.
type Config struct {
	Workers             int
	ConfidenceThreshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:             4,
		ConfidenceThreshold: 0.4,
	}
}

// Engine orchestrates per-receipt text extraction, amount lookup, and
// vendor similarity scoring. Receipts are processed independently; the only
// shared state is the read-only ledger index.
type Engine struct {
	index  *ledger.Index
	texts  ocr.TextSource
	config Config

	textCacheMu sync.Mutex
	textCache   map[string]string
}

// New creates an engine with the default configuration.
func New(index *ledger.Index, texts ocr.TextSource) *Engine {
	return NewWithConfig(index, texts, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(index *ledger.Index, texts ocr.TextSource, config Config) *Engine {
	if config.Workers <= 0 {
		config.Workers = DefaultConfig().Workers
	}
	if config.ConfidenceThreshold <= 0 {
		config.ConfidenceThreshold = DefaultConfig().ConfidenceThreshold
	}
	return &Engine{
		index:     index,
		texts:     texts,
		config:    config,
		textCache: make(map[string]string),
	}
}

// Reconcile processes every receipt in the source and returns the batch
// report. Per-receipt failures become skipped outcomes; only context
// cancellation aborts the batch. Results are order-normalized by receipt
// name after the batch completes.
func (e *Engine) Reconcile(ctx context.Context, source ReceiptSource, progress ProgressFunc) (*BatchReport, error) {
	receipts := source.Receipts()
	total := len(receipts)

	slog.Info("Starting reconciliation",
		"receipts", total,
		"transactions", e.index.Len(),
		"workers", e.config.Workers)

	workers := e.config.Workers
	if workers > total {
		workers = total
	}

	jobs := make(chan model.Receipt)
	results := make(chan model.ReceiptResult, total)

	var completed int
	var progressMu sync.Mutex
	report := func() {
		if progress == nil {
			return
		}
		progressMu.Lock()
		completed++
		progress(completed, total)
		progressMu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for receipt := range jobs {
				results <- e.processReceipt(ctx, source, receipt)
				report()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, receipt := range receipts {
			select {
			case jobs <- receipt:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := &BatchReport{Results: make([]model.ReceiptResult, 0, total)}
	for result := range results {
		batch.Results = append(batch.Results, result)
	}
	sort.Slice(batch.Results, func(i, j int) bool {
		return batch.Results[i].ReceiptName < batch.Results[j].ReceiptName
	})

	slog.Info("Reconciliation complete",
		"matched", batch.MatchedCount(),
		"unmatched", len(batch.Unmatched()),
		"skipped", len(batch.Skipped()))

	return batch, nil
}

// processReceipt runs the full extraction and lookup pipeline for one
// receipt. Failures never escape: they are converted into a skipped outcome
// carrying the reason.
func (e *Engine) processReceipt(ctx context.Context, source ReceiptSource, receipt model.Receipt) (result model.ReceiptResult) {
	result = model.ReceiptResult{ReceiptName: receipt.Name}

	defer func() {
		if r := recover(); r != nil {
			result = model.ReceiptResult{
				ReceiptName: receipt.Name,
				Skipped:     true,
				SkipReason:  fmt.Sprintf("panic during processing: %v", r),
			}
		}
	}()

	text, err := e.receiptText(ctx, source, receipt.Name)
	if err != nil {
		slog.Warn("Skipping receipt", "receipt", receipt.Name, "error", err)
		result.Skipped = true
		result.SkipReason = err.Error()
		return result
	}

	amounts := textproc.ExtractAmounts(text)
	if len(amounts) == 0 {
		slog.Debug("No amounts extracted", "receipt", receipt.Name)
		return result
	}

	for _, amount := range amounts {
		for _, tx := range e.index.Lookup(amount) {
			confidence := textproc.Similarity(tx.Vendor, text)
			result.Candidates = append(result.Candidates, model.MatchCandidate{
				TransactionIndex: tx.Index,
				ReceiptName:      receipt.Name,
				Amount:           amount,
				Confidence:       confidence,
				Status:           e.classify(confidence),
			})
		}
	}

	sortCandidates(result.Candidates)
	return result
}

// receiptText returns the receipt's normalized text, computing it at most
// once per name.
func (e *Engine) receiptText(ctx context.Context, source ReceiptSource, name string) (string, error) {
	e.textCacheMu.Lock()
	cached, ok := e.textCache[name]
	e.textCacheMu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := source.Bytes(name)
	if err != nil {
		return "", fmt.Errorf("unreadable receipt: %w", err)
	}

	raw, err := e.texts.Text(ctx, data)
	if err != nil {
		return "", fmt.Errorf("ocr failed: %w", err)
	}

	text := textproc.Normalize(raw)

	e.textCacheMu.Lock()
	e.textCache[name] = text
	e.textCacheMu.Unlock()

	return text, nil
}

// classify gates a similarity score into the ordinal status set.
func (e *Engine) classify(confidence float64) model.MatchStatus {
	if confidence >= e.config.ConfidenceThreshold {
		return model.StatusConfident
	}
	return model.StatusAmountOnly
}

// sortCandidates orders by confidence descending, ties by transaction
// ordinal ascending.
func sortCandidates(candidates []model.MatchCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].TransactionIndex < candidates[j].TransactionIndex
	})
}
