// Package session holds the review workflow state carried between
// commands: the cursor position, the accumulated match selection, and the
// advisory unmatched set. State is an explicit object passed into engine
// and prompter calls, persisted as JSON across the review/compile boundary.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eocodev/reviewstation/internal/model"
)

// Session is the mutable review state for one ledger/bundle pair. It has a
// single writer at a time; no locking discipline beyond ordinary mutation.
type Session struct {
	LedgerPath string           `json:"ledger_path,omitempty"`
	BundlePath string           `json:"bundle_path,omitempty"`
	Selection  *model.Selection `json:"selection"`
	Unmatched  []string         `json:"unmatched,omitempty"`
	Cursor     int              `json:"cursor"`
}

// New returns an empty session.
func New() *Session {
	return &Session{Selection: model.NewSelection()}
}

// Load reads a session file. A missing file yields a fresh session rather
// than an error.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if s.Selection == nil {
		s.Selection = model.NewSelection()
	}
	return &s, nil
}

// Save writes the session atomically (temp file plus rename) so an
// interrupted write never corrupts review progress.
func (s *Session) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create session temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close session temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Reset clears the selection and cursor. The advisory unmatched set and the
// input paths stay untouched; re-deriving matches from the same inputs
// reproduces identical results.
func (s *Session) Reset() {
	s.Selection.Reset()
	s.Cursor = 0
}

// Advance moves the cursor forward, clamped to the transaction count.
func (s *Session) Advance(total int) {
	if s.Cursor < total-1 {
		s.Cursor++
	}
}

// MatchesInputs reports whether the session was built from the same
// ledger/bundle pair. A new pair discards accumulated state.
func (s *Session) MatchesInputs(ledgerPath, bundlePath string) bool {
	return s.LedgerPath == ledgerPath && s.BundlePath == bundlePath
}
