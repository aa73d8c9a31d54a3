package incremental

import (
	"encoding/binary"
	"io"
	"math"
)

// Encoder writes values to an io.Writer. It never touches an arena.
type Encoder struct {
	w       io.Writer
	cfg     Config
	scratch [9]byte
	written int
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, cfg: NewConfig(opts...)}
}

// Config returns the encoder configuration.
func (e *Encoder) Config() Config { return e.cfg }

// Written returns the number of bytes written so far.
func (e *Encoder) Written() int { return e.written }

// WriteBytes writes p verbatim.
func (e *Encoder) WriteBytes(p []byte) error {
	n, err := e.w.Write(p)
	e.written += n
	return err
}

func (e *Encoder) writeScratch(n int) error {
	return e.WriteBytes(e.scratch[:n])
}

// WriteU8 writes a single raw byte.
func (e *Encoder) WriteU8(v uint8) error {
	e.scratch[0] = v
	return e.writeScratch(1)
}

// WriteU16 writes v using the configured integer encoding.
func (e *Encoder) WriteU16(v uint16) error {
	if e.cfg.IntEncoding == FixedIntEncoding {
		binary.LittleEndian.PutUint16(e.scratch[:], v)
		return e.writeScratch(2)
	}
	return e.writeScratch(putVarint(e.scratch[:], uint64(v)))
}

// WriteU32 writes v using the configured integer encoding.
func (e *Encoder) WriteU32(v uint32) error {
	if e.cfg.IntEncoding == FixedIntEncoding {
		binary.LittleEndian.PutUint32(e.scratch[:], v)
		return e.writeScratch(4)
	}
	return e.writeScratch(putVarint(e.scratch[:], uint64(v)))
}

// WriteU64 writes v using the configured integer encoding.
func (e *Encoder) WriteU64(v uint64) error {
	if e.cfg.IntEncoding == FixedIntEncoding {
		binary.LittleEndian.PutUint64(e.scratch[:], v)
		return e.writeScratch(8)
	}
	return e.writeScratch(putVarint(e.scratch[:], v))
}

// WriteI8 writes a single raw byte.
func (e *Encoder) WriteI8(v int8) error {
	return e.WriteU8(uint8(v)) //nolint:gosec // bit reinterpretation
}

// WriteI16 writes v, zig-zag encoded when varint encoding is active.
func (e *Encoder) WriteI16(v int16) error {
	if e.cfg.IntEncoding == FixedIntEncoding {
		return e.WriteU16(uint16(v)) //nolint:gosec // bit reinterpretation
	}
	return e.WriteU64(zigzag(int64(v)))
}

// WriteI32 writes v, zig-zag encoded when varint encoding is active.
func (e *Encoder) WriteI32(v int32) error {
	if e.cfg.IntEncoding == FixedIntEncoding {
		return e.WriteU32(uint32(v)) //nolint:gosec // bit reinterpretation
	}
	return e.WriteU64(zigzag(int64(v)))
}

// WriteI64 writes v, zig-zag encoded when varint encoding is active.
func (e *Encoder) WriteI64(v int64) error {
	if e.cfg.IntEncoding == FixedIntEncoding {
		return e.WriteU64(uint64(v)) //nolint:gosec // bit reinterpretation
	}
	return e.WriteU64(zigzag(v))
}

// WriteF32 writes v as four little-endian bytes.
func (e *Encoder) WriteF32(v float32) error {
	binary.LittleEndian.PutUint32(e.scratch[:], math.Float32bits(v))
	return e.writeScratch(4)
}

// WriteF64 writes v as eight little-endian bytes.
func (e *Encoder) WriteF64(v float64) error {
	binary.LittleEndian.PutUint64(e.scratch[:], math.Float64bits(v))
	return e.writeScratch(8)
}

// WriteBool writes 0 or 1.
func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.WriteU8(1)
	}
	return e.WriteU8(0)
}

// WriteLen writes a sequence length as a u64.
func (e *Encoder) WriteLen(n int) error {
	return e.WriteU64(uint64(n)) //nolint:gosec // lengths are non-negative
}

// WriteString writes the length followed by the UTF-8 bytes of s.
func (e *Encoder) WriteString(s string) error {
	if err := e.WriteLen(len(s)); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	if sw, ok := e.w.(io.StringWriter); ok {
		n, err := sw.WriteString(s)
		e.written += n
		return err
	}
	return e.WriteBytes([]byte(s))
}
