package incremental

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthOverflow is returned when a declared length cannot be addressed.
	ErrLengthOverflow = errors.New("incremental: length overflow")
	// ErrBudgetExceeded is returned when a declared length needs more memory than the
	// limit allows or more bytes than remain in the input.
	ErrBudgetExceeded = errors.New("incremental: budget exceeded")
	// ErrUnexpectedEnd is returned when the input ends in the middle of a value.
	ErrUnexpectedEnd = errors.New("incremental: unexpected end of input")
	// ErrFormat is returned for malformed payloads.
	ErrFormat = errors.New("incremental: invalid format")
)

// LengthOverflowError reports a length field that does not fit in an int.
type LengthOverflowError struct {
	Length uint64
}

func (e *LengthOverflowError) Error() string {
	return fmt.Sprintf("incremental: length %d exceeds addressable size", e.Length)
}

func (e *LengthOverflowError) Unwrap() error { return ErrLengthOverflow }

// BudgetKind names the budget that was exceeded.
type BudgetKind string

const (
	// BudgetLimit is the configured memory limit.
	BudgetLimit BudgetKind = "limit"
	// BudgetInput is the number of input bytes left to read.
	BudgetInput BudgetKind = "input"
)

// BudgetExceededError reports a claim that cannot be satisfied.
type BudgetExceededError struct {
	Kind      BudgetKind
	Requested uint64
	Available uint64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("incremental: %s budget exceeded: requested %d, available %d",
		e.Kind, e.Requested, e.Available)
}

func (e *BudgetExceededError) Unwrap() error { return ErrBudgetExceeded }

// UnexpectedEndError reports how many more bytes were needed.
type UnexpectedEndError struct {
	Additional int
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("incremental: unexpected end of input, need %d more bytes", e.Additional)
}

func (e *UnexpectedEndError) Unwrap() error { return ErrUnexpectedEnd }

// FormatError reports a malformed value.
type FormatError struct {
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("incremental: %s: %v", e.Msg, e.Err)
	}
	return "incremental: " + e.Msg
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

func formatErrorf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}
