package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// PopplerRasterizer renders PDF pages to PNG images by invoking pdftoppm.
type PopplerRasterizer struct {
	Binary string
	DPI    int
}

// NewPopplerRasterizer returns a rasterizer with the given binary path and
// render resolution. Zero values fall back to "pdftoppm" at 200 DPI.
func NewPopplerRasterizer(binary string, dpi int) *PopplerRasterizer {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 200
	}
	return &PopplerRasterizer{Binary: binary, DPI: dpi}
}

// Rasterize renders every page of the document and returns PNG bytes in
// page order.
func (r *PopplerRasterizer) Rasterize(ctx context.Context, document []byte) ([][]byte, error) {
	dir, err := os.MkdirTemp("", "eoco-raster-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "page.pdf")
	if err := os.WriteFile(input, document, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}

	prefix := filepath.Join(dir, "out")
	cmd := exec.CommandContext(ctx, r.Binary, "-png", "-r", fmt.Sprint(r.DPI), input, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", r.Binary, err, stderr.String())
	}

	// pdftoppm names outputs out-1.png, out-2.png, ... which sorts in page
	// order up to nine pages; pad-aware sorting keeps longer documents right.
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to list rendered pages: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s produced no pages", r.Binary)
	}
	sort.Slice(matches, func(i, j int) bool {
		if len(matches[i]) != len(matches[j]) {
			return len(matches[i]) < len(matches[j])
		}
		return matches[i] < matches[j]
	})

	pages := make([][]byte, 0, len(matches))
	for _, m := range matches {
		data, readErr := os.ReadFile(m)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read rendered page: %w", readErr)
		}
		pages = append(pages, data)
	}

	return pages, nil
}

// TesseractRecognizer extracts text from a page image by invoking the
// tesseract binary.
type TesseractRecognizer struct {
	Binary   string
	Language string
}

// NewTesseractRecognizer returns a recognizer with the given binary path
// and language. Zero values fall back to "tesseract" and "eng".
func NewTesseractRecognizer(binary, language string) *TesseractRecognizer {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &TesseractRecognizer{Binary: binary, Language: language}
}

// Recognize runs OCR over one page image and returns the plain text.
func (t *TesseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	dir, err := os.MkdirTemp("", "eoco-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "page.png")
	if err := os.WriteFile(input, image, 0o600); err != nil {
		return "", fmt.Errorf("failed to write page image: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.Binary, input, "stdout", "-l", t.Language)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w: %s", t.Binary, err, stderr.String())
	}

	return stdout.String(), nil
}
