// Package bundle reads receipt archives. A bundle is a ZIP file whose
// page-document entries (.pdf) become receipts; every other entry is
// ignored.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/eocodev/reviewstation/internal/model"
)

// Bundle provides read-only access to the receipt documents of one archive.
type Bundle struct {
	byName   map[string]*zip.File
	receipts []model.Receipt
	closer   io.Closer
}

// Open opens a receipt archive from disk. Callers own the returned bundle
// and must Close it.
func Open(path string) (*Bundle, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open receipt bundle: %w", err)
	}

	b := fromReader(&zr.Reader)
	b.closer = zr
	return b, nil
}

// New builds a bundle from an in-memory archive.
func New(r io.ReaderAt, size int64) (*Bundle, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt bundle: %w", err)
	}
	return fromReader(zr), nil
}

func fromReader(zr *zip.Reader) *Bundle {
	b := &Bundle{byName: make(map[string]*zip.File)}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
			continue
		}
		b.byName[f.Name] = f
		b.receipts = append(b.receipts, model.Receipt{
			Name: f.Name,
			Size: f.FileInfo().Size(),
		})
	}

	sort.Slice(b.receipts, func(i, j int) bool {
		return b.receipts[i].Name < b.receipts[j].Name
	})

	return b
}

// Receipts lists the bundle's receipts sorted by name.
func (b *Bundle) Receipts() []model.Receipt {
	return b.receipts
}

// Len returns the number of receipt documents.
func (b *Bundle) Len() int {
	return len(b.receipts)
}

// Bytes returns the raw document bytes for a receipt name.
func (b *Bundle) Bytes(name string) ([]byte, error) {
	f, ok := b.byName[name]
	if !ok {
		return nil, fmt.Errorf("receipt %q not in bundle", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open receipt %q: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt %q: %w", name, err)
	}
	return data, nil
}

// Close releases the underlying archive handle if the bundle owns one.
func (b *Bundle) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
