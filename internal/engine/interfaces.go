package engine

import (
	"github.com/eocodev/reviewstation/internal/model"
)

// ReceiptSource enumerates the receipts of a bundle and serves their raw
// bytes. Implemented by bundle.Bundle.
type ReceiptSource interface {
	Receipts() []model.Receipt
	Bytes(name string) ([]byte, error)
}

// ProgressFunc receives the monotonic count of completed receipts during a
// batch. Invocations are serialized by the engine.
type ProgressFunc func(completed, total int)
