// Package ocr defines the external text-recognition collaborators. The
// interfaces are transport-agnostic so engines can be backed by local
// binaries or remote services without leaking provider concerns into the
// matching code.
package ocr

import (
	"context"
	"fmt"
	"strings"
)

// Rasterizer converts raw page-document bytes into one image per page.
type Rasterizer interface {
	Rasterize(ctx context.Context, document []byte) ([][]byte, error)
}

// Recognizer extracts plain text from a single page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TextSource produces the full plain text of a page-document. This is the
// only surface the reconciliation engine depends on.
type TextSource interface {
	Text(ctx context.Context, document []byte) (string, error)
}

// Client chains a rasterizer and a recognizer into a TextSource,
// concatenating per-page text in page order.
type Client struct {
	rasterizer Rasterizer
	recognizer Recognizer
}

// NewClient creates a TextSource from the two collaborators.
func NewClient(rasterizer Rasterizer, recognizer Recognizer) *Client {
	return &Client{rasterizer: rasterizer, recognizer: recognizer}
}

// Text rasterizes the document and recognizes each page.
func (c *Client) Text(ctx context.Context, document []byte) (string, error) {
	pages, err := c.rasterizer.Rasterize(ctx, document)
	if err != nil {
		return "", fmt.Errorf("rasterization failed: %w", err)
	}

	var sb strings.Builder
	for i, page := range pages {
		text, err := c.recognizer.Recognize(ctx, page)
		if err != nil {
			return "", fmt.Errorf("text recognition failed on page %d: %w", i+1, err)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
