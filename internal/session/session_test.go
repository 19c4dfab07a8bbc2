package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsFreshSession(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Zero(t, s.Cursor)
	assert.Zero(t, s.Selection.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := New()
	s.LedgerPath = "ledger.csv"
	s.BundlePath = "receipts.zip"
	s.Cursor = 3
	s.Selection.Select(0, "a.pdf")
	s.Selection.Select(2, "b.pdf")
	s.Unmatched = []string{"c.pdf"}
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Cursor, loaded.Cursor)
	assert.Equal(t, s.Selection.Entries, loaded.Selection.Entries)
	assert.Equal(t, s.Unmatched, loaded.Unmatched)
	assert.True(t, loaded.MatchesInputs("ledger.csv", "receipts.zip"))
	assert.False(t, loaded.MatchesInputs("ledger.csv", "other.zip"))
}

func TestResetClearsSelectionOnly(t *testing.T) {
	s := New()
	s.Cursor = 5
	s.Selection.Select(0, "a.pdf")
	s.Selection.Select(1, "b.pdf")
	s.Unmatched = []string{"c.pdf"}

	s.Reset()

	assert.Zero(t, s.Cursor)
	assert.Zero(t, s.Selection.Len())
	assert.Equal(t, []string{"c.pdf"}, s.Unmatched, "unmatched set is advisory and survives reset")
}

func TestAdvanceClampsAtLastTransaction(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.Advance(3)
	}
	assert.Equal(t, 2, s.Cursor)
}

func TestLoadCorruptSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
