package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/arenacodec/compress"
)

const (
	// MagicNumber identifies arenacodec units (ASCII: "ARN0").
	MagicNumber = 0x41524E30
	// Version is the current unit format version (v1.0.0).
	Version = 0x00010000
	// HeaderSize is the encoded size of UnitHeader.
	HeaderSize = 32
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrFormatMismatch = errors.New("unit format mismatch")
	ErrTruncated      = errors.New("unit truncated")
)

// Format names the codec that produced a payload.
type Format uint8

const (
	// FormatAny matches every format when validating.
	FormatAny Format = 0
	// FormatIncremental marks payloads written by the incremental codec.
	FormatIncremental Format = 1
	// FormatArchive marks zero-copy archive payloads.
	FormatArchive Format = 2
)

func (f Format) String() string {
	switch f {
	case FormatAny:
		return "any"
	case FormatIncremental:
		return "incremental"
	case FormatArchive:
		return "archive"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// UnitHeader is the 32-byte header at the start of every unit.
type UnitHeader struct {
	Magic       uint32        // 0x41524E30 ("ARN0")
	Version     uint32        // Unit format version
	Format      Format        // 1=incremental, 2=archive
	Compression compress.Type // Compression actually applied to the payload
	Reserved    [2]byte
	RawSize     uint64 // Payload size before compression
	PayloadSize uint64 // Stored payload size
	Checksum    uint32 // CRC32 of the stored payload
}

func init() {
	if n := binary.Size(UnitHeader{}); n != HeaderSize {
		panic(fmt.Sprintf("persistence: UnitHeader is %d bytes, want %d", n, HeaderSize))
	}
}

// Validate checks the magic, version and compression of h, and that its format
// is want unless want is FormatAny.
func (h *UnitHeader) Validate(want Format) error {
	if h.Magic != MagicNumber {
		return fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, h.Version)
	}
	if want != FormatAny && h.Format != want {
		return fmt.Errorf("%w: want %s, got %s", ErrFormatMismatch, want, h.Format)
	}
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: %d", compress.ErrUnknownType, h.Compression)
	}
	return nil
}

// ZeroCopy reports whether the payload can be used in place.
func (h *UnitHeader) ZeroCopy() bool {
	return h.Compression == compress.None
}
