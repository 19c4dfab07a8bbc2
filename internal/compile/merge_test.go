package compile

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eocodev/reviewstation/internal/common"
)

type mapSource map[string][]byte

func (m mapSource) Bytes(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("no such receipt %q", name)
	}
	return data, nil
}

func TestMergeEmptySelection(t *testing.T) {
	var out bytes.Buffer
	err := Merge(mapSource{}, nil, &out)
	assert.ErrorIs(t, err, common.ErrEmptySelection)
}

func TestMergeMissingReceipt(t *testing.T) {
	var out bytes.Buffer
	err := Merge(mapSource{"a.pdf": []byte("x")}, []string{"a.pdf", "missing.pdf"}, &out)
	assert.ErrorContains(t, err, "missing.pdf")
}
