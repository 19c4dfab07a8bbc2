package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eocodev/reviewstation/internal/ledger"
	"github.com/eocodev/reviewstation/internal/model"
)

// fakeBundle implements ReceiptSource over an in-memory map.
type fakeBundle struct {
	docs    map[string][]byte
	badByte map[string]error
}

func (f *fakeBundle) Receipts() []model.Receipt {
	names := make([]string, 0, len(f.docs))
	for name := range f.docs {
		names = append(names, name)
	}
	receipts := make([]model.Receipt, 0, len(names))
	for _, name := range names {
		receipts = append(receipts, model.Receipt{Name: name, Size: int64(len(f.docs[name]))})
	}
	return receipts
}

func (f *fakeBundle) Bytes(name string) ([]byte, error) {
	if err, ok := f.badByte[name]; ok {
		return nil, err
	}
	data, ok := f.docs[name]
	if !ok {
		return nil, fmt.Errorf("no such receipt %q", name)
	}
	return data, nil
}

func testIndex(t *testing.T, rows string) *ledger.Index {
	t.Helper()
	table, err := ledger.Load(strings.NewReader(rows))
	require.NoError(t, err)
	idx, err := ledger.NewIndex(table, "")
	require.NoError(t, err)
	return idx
}

func TestReconcileEndToEnd(t *testing.T) {
	idx := testIndex(t, strings.Join([]string{
		"vendor,amount",
		"ACME CORP,45.00",
		"BETA LLC,12.50",
	}, "\n"))

	bundle := &fakeBundle{docs: map[string][]byte{
		"r1.pdf": []byte("doc-r1"),
		"r2.pdf": []byte("doc-r2"),
	}}
	texts := &MockTextSource{Texts: map[string]string{
		"doc-r1": "ACME CORP INVOICE TOTAL 45.00",
		"doc-r2": "random unrelated text",
	}}

	batch, err := New(idx, texts).Reconcile(context.Background(), bundle, nil)
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)

	r1, ok := batch.Result("r1.pdf")
	require.True(t, ok)
	require.Len(t, r1.Candidates, 1)
	assert.Equal(t, 0, r1.Best().TransactionIndex)
	assert.Equal(t, model.StatusConfident, r1.Best().Status)
	assert.Greater(t, r1.Best().Confidence, 0.4)
	assert.Equal(t, "45.00", r1.Best().Amount.StringFixed(2))

	r2, ok := batch.Result("r2.pdf")
	require.True(t, ok)
	assert.False(t, r2.Matched())
	assert.False(t, r2.Skipped)

	assert.Equal(t, []string{"r2.pdf"}, batch.Unmatched())
	assert.Equal(t, 1, batch.MatchedCount())
}

func TestReconcileAmbiguousAmountSurfacesAllRows(t *testing.T) {
	idx := testIndex(t, strings.Join([]string{
		"vendor,amount",
		"ACME CORP,45.00",
		"ACME STORE 22,45.00",
		"BETA LLC,12.50",
	}, "\n"))

	bundle := &fakeBundle{docs: map[string][]byte{"r1.pdf": []byte("doc")}}
	texts := &MockTextSource{Texts: map[string]string{
		"doc": "ACME CORP RECEIPT TOTAL 45.00 TAX 12.50",
	}}

	batch, err := New(idx, texts).Reconcile(context.Background(), bundle, nil)
	require.NoError(t, err)

	r1, ok := batch.Result("r1.pdf")
	require.True(t, ok)
	// Two rows share 45.00 and 12.50 hits a third: all retained.
	require.Len(t, r1.Candidates, 3)

	// Ranked by confidence descending.
	for i := 1; i < len(r1.Candidates); i++ {
		assert.GreaterOrEqual(t, r1.Candidates[i-1].Confidence, r1.Candidates[i].Confidence)
	}
}

func TestReconcileSkipsFailedReceiptsAndContinues(t *testing.T) {
	idx := testIndex(t, "vendor,amount\nACME CORP,45.00\n")

	bundle := &fakeBundle{
		docs: map[string][]byte{
			"bad-bytes.pdf": []byte("unused"),
			"bad-ocr.pdf":   []byte("doc-bad-ocr"),
			"good.pdf":      []byte("doc-good"),
		},
		badByte: map[string]error{"bad-bytes.pdf": errors.New("corrupt entry")},
	}
	texts := &MockTextSource{
		Texts: map[string]string{"doc-good": "ACME CORP 45.00"},
		Errs:  map[string]error{"doc-bad-ocr": errors.New("ocr engine crashed")},
	}

	batch, err := New(idx, texts).Reconcile(context.Background(), bundle, nil)
	require.NoError(t, err)
	require.Len(t, batch.Results, 3)

	skipped := batch.Skipped()
	require.Len(t, skipped, 2)
	reasons := map[string]string{}
	for _, s := range skipped {
		reasons[s.ReceiptName] = s.SkipReason
	}
	assert.Contains(t, reasons["bad-bytes.pdf"], "corrupt entry")
	assert.Contains(t, reasons["bad-ocr.pdf"], "ocr engine crashed")

	good, ok := batch.Result("good.pdf")
	require.True(t, ok)
	assert.True(t, good.Matched())

	// Skipped receipts are not part of the advisory unmatched set.
	assert.Empty(t, batch.Unmatched())
}

func TestReconcileProgressIsMonotonic(t *testing.T) {
	idx := testIndex(t, "vendor,amount\nACME,1.00\n")

	docs := make(map[string][]byte)
	textsByDoc := make(map[string]string)
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("r%02d.pdf", i)
		content := fmt.Sprintf("doc-%02d", i)
		docs[name] = []byte(content)
		textsByDoc[content] = "NO AMOUNTS HERE"
	}

	bundle := &fakeBundle{docs: docs}
	texts := &MockTextSource{Texts: textsByDoc}

	var mu sync.Mutex
	var seen []int
	progress := func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 20, total)
		seen = append(seen, completed)
	}

	cfg := DefaultConfig()
	cfg.Workers = 5
	_, err := NewWithConfig(idx, texts, cfg).Reconcile(context.Background(), bundle, progress)
	require.NoError(t, err)

	require.Len(t, seen, 20)
	for i, v := range seen {
		assert.Equal(t, i+1, v)
	}
}

func TestReconcileDeterministicAcrossRuns(t *testing.T) {
	idx := testIndex(t, strings.Join([]string{
		"vendor,amount",
		"ACME CORP,45.00",
		"BETA LLC,12.50",
		"GAMMA INC,45.00",
	}, "\n"))

	docs := map[string][]byte{
		"a.pdf": []byte("doc-a"),
		"b.pdf": []byte("doc-b"),
		"c.pdf": []byte("doc-c"),
	}
	canned := map[string]string{
		"doc-a": "ACME CORP TOTAL 45.00",
		"doc-b": "BETA LLC 12.50",
		"doc-c": "nothing to see",
	}

	run := func() *BatchReport {
		batch, err := New(idx, &MockTextSource{Texts: canned}).
			Reconcile(context.Background(), &fakeBundle{docs: docs}, nil)
		require.NoError(t, err)
		return batch
	}

	first := run()
	second := run()
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.AutoSelect(), second.AutoSelect())
}

func TestReconcileContextCancellation(t *testing.T) {
	idx := testIndex(t, "vendor,amount\nACME,1.00\n")
	bundle := &fakeBundle{docs: map[string][]byte{"r1.pdf": []byte("doc")}}
	texts := &MockTextSource{Texts: map[string]string{"doc": "text"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(idx, texts).Reconcile(ctx, bundle, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAutoSelect(t *testing.T) {
	batch := &BatchReport{Results: []model.ReceiptResult{
		{
			ReceiptName: "a.pdf",
			Candidates: []model.MatchCandidate{
				{TransactionIndex: 0, ReceiptName: "a.pdf", Confidence: 0.9, Status: model.StatusConfident},
				{TransactionIndex: 2, ReceiptName: "a.pdf", Confidence: 0.5, Status: model.StatusConfident},
			},
		},
		{
			ReceiptName: "b.pdf",
			Candidates: []model.MatchCandidate{
				{TransactionIndex: 0, ReceiptName: "b.pdf", Confidence: 0.6, Status: model.StatusConfident},
			},
		},
		{ReceiptName: "c.pdf"},
	}}

	selection := batch.AutoSelect()

	// a.pdf wins transaction 0 on confidence; b.pdf's only candidate loses
	// the contest and b.pdf stays unassigned.
	require.Equal(t, 1, selection.Len())
	name, ok := selection.Receipt(0)
	require.True(t, ok)
	assert.Equal(t, "a.pdf", name)
}

func TestAutoSelectTieBreaksByTransactionOrdinal(t *testing.T) {
	batch := &BatchReport{Results: []model.ReceiptResult{
		{
			ReceiptName: "a.pdf",
			Candidates: []model.MatchCandidate{
				{TransactionIndex: 3, ReceiptName: "a.pdf", Confidence: 0.7},
				{TransactionIndex: 1, ReceiptName: "a.pdf", Confidence: 0.7},
			},
		},
	}}

	selection := batch.AutoSelect()
	name, ok := selection.Receipt(1)
	require.True(t, ok)
	assert.Equal(t, "a.pdf", name)
	_, ok = selection.Receipt(3)
	assert.False(t, ok)
}
