package persistence

import (
	"errors"
	"fmt"
	"hash"
	"io"

	ihash "github.com/hupe1980/arenacodec/internal/hash"
)

// CalculateChecksum returns the CRC32C of a unit payload. It detects torn
// writes and bit rot, not tampering.
func CalculateChecksum(data []byte) uint32 {
	return ihash.CRC32C(data)
}

// ChecksumReader hashes a payload while it streams out of a blob.
type ChecksumReader struct {
	src io.Reader
	crc hash.Hash32
}

// NewChecksumReader returns a ChecksumReader over src.
func NewChecksumReader(src io.Reader) *ChecksumReader {
	return &ChecksumReader{src: src, crc: ihash.NewCRC32C()}
}

func (cr *ChecksumReader) Read(p []byte) (int, error) {
	n, err := cr.src.Read(p)
	cr.crc.Write(p[:n]) //nolint:errcheck // hash writes cannot fail
	return n, err
}

// Sum is the CRC32C of the bytes read so far.
func (cr *ChecksumReader) Sum() uint32 { return cr.crc.Sum32() }

// Verify checks the running checksum against expected.
func (cr *ChecksumReader) Verify(expected uint32) error {
	return verifyChecksum(expected, cr.Sum())
}

func verifyChecksum(expected, actual uint32) error {
	if actual != expected {
		return &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// ChecksumMismatchError reports a payload whose CRC32C differs from the header.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("persistence: payload crc32c %08x, header says %08x", e.Actual, e.Expected)
}

// IsChecksumMismatch reports whether err wraps a *ChecksumMismatchError.
func IsChecksumMismatch(err error) bool {
	var target *ChecksumMismatchError
	return errors.As(err, &target)
}
