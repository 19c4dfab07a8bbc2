package model

import "sort"

// Selection is the authoritative transaction-to-receipt assignment carried
// across the review/compile boundary. At most one receipt per transaction;
// the same receipt may be assigned to several transactions (one scanned page
// occasionally covers two line items). Mutation happens only through Select,
// Unselect, and Reset.
type Selection struct {
	Entries map[int]string `json:"entries"`
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{Entries: make(map[int]string)}
}

// Select assigns a receipt to a transaction, replacing any prior assignment.
func (s *Selection) Select(transactionIndex int, receiptName string) {
	if s.Entries == nil {
		s.Entries = make(map[int]string)
	}
	s.Entries[transactionIndex] = receiptName
}

// Unselect removes the assignment for a transaction if present.
func (s *Selection) Unselect(transactionIndex int) {
	delete(s.Entries, transactionIndex)
}

// Receipt returns the assigned receipt name for a transaction.
func (s *Selection) Receipt(transactionIndex int) (string, bool) {
	name, ok := s.Entries[transactionIndex]
	return name, ok
}

// Len returns the number of assignments.
func (s *Selection) Len() int {
	return len(s.Entries)
}

// Reset clears every assignment.
func (s *Selection) Reset() {
	s.Entries = make(map[int]string)
}

// Indices returns the assigned transaction indices in ascending order.
func (s *Selection) Indices() []int {
	indices := make([]int, 0, len(s.Entries))
	for idx := range s.Entries {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}
