package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a compression algorithm. The value is stored in unit headers.
type Type uint8

const (
	// None stores payloads as is.
	None Type = 0
	// LZ4 is LZ4 block compression (fast, good for hot data).
	LZ4 Type = 1
	// ZSTD is Zstandard (better ratio, good for cold data).
	ZSTD Type = 2
	// Snappy is Snappy block compression.
	Snappy Type = 3
)

var (
	// ErrUnknownType is returned for an unrecognized compression type.
	ErrUnknownType = errors.New("compress: unknown type")
	// ErrSizeMismatch is returned when a payload does not decompress to the
	// recorded size.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")
)

// minRatio is the largest compressed/raw ratio worth keeping.
const minRatio = 0.9

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool { return t <= Snappy }

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// Compress compresses data with t and returns the payload together with the
// type actually used. Payloads that do not shrink below 90% are stored
// uncompressed and reported as None.
func Compress(t Type, data []byte) ([]byte, Type, error) {
	if t == None || len(data) == 0 {
		return data, None, nil
	}

	var out []byte
	switch t {
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, None, fmt.Errorf("compress: lz4: %w", err)
		}
		out = buf[:n]
	case ZSTD:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, None, fmt.Errorf("compress: zstd: %w", err)
		}
		out = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	case Snappy:
		out = snappy.Encode(nil, data)
	default:
		return nil, None, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}

	// LZ4 reports incompressible input as zero bytes.
	if len(out) == 0 || float64(len(out)) > float64(len(data))*minRatio {
		return data, None, nil
	}
	return out, t, nil
}

// Decompress reverses Compress. rawSize is the uncompressed length recorded by
// the writer.
func Decompress(t Type, data []byte, rawSize int) ([]byte, error) {
	if err := checkRawSize(t, data, rawSize); err != nil {
		return nil, err
	}

	var out []byte
	switch t {
	case None:
		out = data
	case LZ4:
		out = make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		out = out[:n]
	case ZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		out, err = dec.DecodeAll(data, make([]byte, 0, rawSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
	case Snappy:
		n, err := snappy.DecodedLen(data)
		if err != nil {
			return nil, fmt.Errorf("compress: snappy: %w", err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: want %d, got %d", ErrSizeMismatch, rawSize, n)
		}
		out, err = snappy.Decode(make([]byte, n), data)
		if err != nil {
			return nil, fmt.Errorf("compress: snappy: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}

	if len(out) != rawSize {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrSizeMismatch, rawSize, len(out))
	}
	return out, nil
}

// lz4MaxRatio bounds how far one LZ4 block byte can expand: a run of 0xFF
// length bytes adds 255 to a match length per input byte.
const lz4MaxRatio = 255

// zstdMaxRatio bounds zstd expansion: a 4-byte RLE block decodes to at most
// one 128 KiB block.
const zstdMaxRatio = 128 * 1024 / 4

// checkRawSize rejects a recorded size the payload cannot decompress to, so
// that a corrupt header never drives an allocation.
func checkRawSize(t Type, data []byte, rawSize int) error {
	if rawSize < 0 {
		return fmt.Errorf("%w: negative size %d", ErrSizeMismatch, rawSize)
	}

	limit := int64(rawSize)
	switch t {
	case None:
		limit = int64(len(data))
	case LZ4:
		limit = (int64(len(data)) + 1) * lz4MaxRatio
	case ZSTD:
		var h zstd.Header
		if err := h.Decode(data); err != nil {
			return fmt.Errorf("compress: zstd: %w", err)
		}
		if !h.HasFCS {
			// Small frames omit the content size.
			limit = (int64(len(data)) + 1) * zstdMaxRatio
			break
		}
		if h.FrameContentSize != uint64(rawSize) { //nolint:gosec // rawSize >= 0
			return fmt.Errorf("%w: want %d, frame says %d", ErrSizeMismatch, rawSize, h.FrameContentSize)
		}
	}

	if int64(rawSize) > limit {
		return fmt.Errorf("%w: %d bytes cannot come from a %d byte %s payload", ErrSizeMismatch, rawSize, len(data), t)
	}
	return nil
}
