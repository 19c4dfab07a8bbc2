package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	s := NewSelection()

	s.Select(2, "b.pdf")
	s.Select(0, "a.pdf")
	s.Select(2, "c.pdf") // re-selection replaces

	assert.Equal(t, 2, s.Len())
	name, ok := s.Receipt(2)
	assert.True(t, ok)
	assert.Equal(t, "c.pdf", name)
	assert.Equal(t, []int{0, 2}, s.Indices())

	s.Unselect(0)
	assert.Equal(t, 1, s.Len())
	_, ok = s.Receipt(0)
	assert.False(t, ok)

	s.Reset()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Indices())
}

func TestSelectionZeroValue(t *testing.T) {
	var s Selection
	s.Select(1, "a.pdf")

	name, ok := s.Receipt(1)
	assert.True(t, ok)
	assert.Equal(t, "a.pdf", name)
}
