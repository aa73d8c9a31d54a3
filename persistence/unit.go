package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/arenacodec/compress"
	"github.com/hupe1980/arenacodec/internal/conv"
)

// WriteUnit compresses raw with comp and writes it to w as a unit of the given
// format. The returned header records the compression actually applied.
func WriteUnit(w io.Writer, format Format, comp compress.Type, raw []byte) (UnitHeader, error) {
	payload, used, err := compress.Compress(comp, raw)
	if err != nil {
		return UnitHeader{}, err
	}

	header := UnitHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Format:      format,
		Compression: used,
		RawSize:     uint64(len(raw)),     //nolint:gosec // len is non-negative
		PayloadSize: uint64(len(payload)), //nolint:gosec // len is non-negative
		Checksum:    CalculateChecksum(payload),
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return UnitHeader{}, err
	}
	if _, err := w.Write(payload); err != nil {
		return UnitHeader{}, err
	}
	return header, nil
}

// EncodeUnit is WriteUnit into a fresh buffer.
func EncodeUnit(format Format, comp compress.Type, raw []byte) ([]byte, UnitHeader, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(raw))
	header, err := WriteUnit(&buf, format, comp, raw)
	if err != nil {
		return nil, UnitHeader{}, err
	}
	return buf.Bytes(), header, nil
}

// ReadHeader reads and validates a unit header.
func ReadHeader(r io.Reader, want Format) (UnitHeader, error) {
	var header UnitHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return UnitHeader{}, fmt.Errorf("%w: header: %w", ErrTruncated, err)
		}
		return UnitHeader{}, err
	}
	if err := header.Validate(want); err != nil {
		return UnitHeader{}, err
	}
	return header, nil
}

// ReadUnit reads a unit from r, verifies its checksum and returns the
// decompressed payload.
func ReadUnit(r io.Reader, want Format) (UnitHeader, []byte, error) {
	header, err := ReadHeader(r, want)
	if err != nil {
		return UnitHeader{}, nil, err
	}

	size, err := payloadLen(&header)
	if err != nil {
		return UnitHeader{}, nil, err
	}

	// The declared size is untrusted; read through a limit instead of
	// allocating it up front.
	cr := NewChecksumReader(io.LimitReader(r, int64(size)))
	payload, err := io.ReadAll(cr)
	if err != nil {
		return UnitHeader{}, nil, err
	}
	if len(payload) != size {
		return UnitHeader{}, nil, fmt.Errorf("%w: payload has %d of %d bytes", ErrTruncated, len(payload), size)
	}
	if err := cr.Verify(header.Checksum); err != nil {
		return UnitHeader{}, nil, err
	}

	raw, err := decompress(&header, payload)
	if err != nil {
		return UnitHeader{}, nil, err
	}
	return header, raw, nil
}

// ParseUnit validates the unit at the start of buf and returns its
// decompressed payload. Uncompressed payloads alias buf.
func ParseUnit(buf []byte, want Format) (UnitHeader, []byte, error) {
	if len(buf) < HeaderSize {
		return UnitHeader{}, nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(buf))
	}
	header, err := ReadHeader(bytes.NewReader(buf[:HeaderSize]), want)
	if err != nil {
		return UnitHeader{}, nil, err
	}

	size, err := payloadLen(&header)
	if err != nil {
		return UnitHeader{}, nil, err
	}
	if len(buf)-HeaderSize < size {
		return UnitHeader{}, nil, fmt.Errorf("%w: payload has %d of %d bytes", ErrTruncated, len(buf)-HeaderSize, size)
	}

	payload := buf[HeaderSize : HeaderSize+size]
	if err := verifyChecksum(header.Checksum, CalculateChecksum(payload)); err != nil {
		return UnitHeader{}, nil, err
	}

	raw, err := decompress(&header, payload)
	if err != nil {
		return UnitHeader{}, nil, err
	}
	return header, raw, nil
}

func payloadLen(h *UnitHeader) (int, error) {
	size, err := conv.Uint64ToInt(h.PayloadSize)
	if err != nil {
		return 0, fmt.Errorf("payload size: %w", err)
	}
	return size, nil
}

func decompress(h *UnitHeader, payload []byte) ([]byte, error) {
	rawSize, err := conv.Uint64ToInt(h.RawSize)
	if err != nil {
		return nil, fmt.Errorf("raw size: %w", err)
	}
	return compress.Decompress(h.Compression, payload, rawSize)
}
