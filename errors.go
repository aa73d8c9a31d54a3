package arenacodec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/arenacodec/blobstore"
)

var (
	// ErrNotFound is returned when a unit does not exist in the blob store.
	ErrNotFound = errors.New("arenacodec: unit not found")

	// ErrInvalidName is returned for an empty unit name.
	ErrInvalidName = errors.New("arenacodec: invalid unit name")
)

// TrailingDataError is returned when a framed unit holds bytes after the
// decoded value.
type TrailingDataError struct {
	Unit     string
	Consumed int
	Size     int
}

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("arenacodec: unit %q has %d trailing bytes after %d decoded", e.Unit, e.Size-e.Consumed, e.Consumed)
}

// UnitError annotates an error with the unit it occurred in.
//
// The original underlying error can be accessed via errors.Unwrap.
type UnitError struct {
	Op    string
	Unit  string
	cause error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("arenacodec: %s %q: %v", e.Op, e.Unit, e.cause)
}

func (e *UnitError) Unwrap() error { return e.cause }

func wrapError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &UnitError{Op: op, Unit: name, cause: err}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, blobstore.ErrNotFound) && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
