package compile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/eocodev/reviewstation/internal/common"
)

// ByteSource serves raw receipt document bytes by name.
type ByteSource interface {
	Bytes(name string) ([]byte, error)
}

// Merge concatenates the named receipt documents, in the given order, into
// a single PDF written to w. The ordering comes from Order; this function
// only supplies bytes to the external merge collaborator.
func Merge(source ByteSource, orderedNames []string, w io.Writer) error {
	if len(orderedNames) == 0 {
		return common.ErrEmptySelection
	}

	readers := make([]io.ReadSeeker, 0, len(orderedNames))
	for _, name := range orderedNames {
		data, err := source.Bytes(name)
		if err != nil {
			return fmt.Errorf("failed to load receipt %q for merge: %w", name, err)
		}
		readers = append(readers, bytes.NewReader(data))
	}

	if err := api.MergeRaw(readers, w, false, nil); err != nil {
		return fmt.Errorf("pdf merge failed: %w", err)
	}
	return nil
}
