// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Ledger errors.
	ErrEmptyLedger      = errors.New("ledger contains no rows")
	ErrNonNumericAmount = errors.New("amount column contains non-numeric values")

	// Bundle errors.
	ErrNoReceipts = errors.New("bundle contains no receipt documents")

	// Session errors.
	ErrEmptySelection = errors.New("no matches made yet")
)

// ColumnNotFoundError reports that none of an ordered list of candidate
// column names resolved against the ledger header.
type ColumnNotFoundError struct {
	Candidates []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("no ledger column found (tried: %s)", strings.Join(e.Candidates, ", "))
}

// NewColumnNotFoundError creates a typed column-resolution failure.
func NewColumnNotFoundError(candidates []string) error {
	return &ColumnNotFoundError{Candidates: candidates}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
