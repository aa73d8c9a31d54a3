package incremental

import "unsafe"

// Codec encodes and decodes values of type T.
type Codec[T any] interface {
	Encode(e *Encoder, v T) error
	Decode(d *Decoder) (T, error)
}

// MinEncodedSizer is implemented by codecs that know a lower bound on the number
// of wire bytes one value occupies. Sequence decoding uses it to reject lengths
// the remaining input cannot hold.
type MinEncodedSizer interface {
	MinEncodedSize(cfg Config) int
}

// minEncodedSize falls back to one byte per value, or zero for zero-sized types.
func minEncodedSize[T any](c Codec[T], cfg Config) int {
	if m, ok := c.(MinEncodedSizer); ok {
		return m.MinEncodedSize(cfg)
	}
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return 0
	}
	return 1
}

func intMinSize(cfg Config, width int) int {
	if cfg.IntEncoding == FixedIntEncoding {
		return width
	}
	return 1
}

// Built-in codecs.
var (
	U8     Codec[uint8]   = u8Codec{}
	U16    Codec[uint16]  = u16Codec{}
	U32    Codec[uint32]  = u32Codec{}
	U64    Codec[uint64]  = u64Codec{}
	I8     Codec[int8]    = i8Codec{}
	I16    Codec[int16]   = i16Codec{}
	I32    Codec[int32]   = i32Codec{}
	I64    Codec[int64]   = i64Codec{}
	F32    Codec[float32] = f32Codec{}
	F64    Codec[float64] = f64Codec{}
	Bool   Codec[bool]    = boolCodec{}
	String Codec[string]  = stringCodec{}
)

type u8Codec struct{}

func (u8Codec) Encode(e *Encoder, v uint8) error { return e.WriteU8(v) }
func (u8Codec) Decode(d *Decoder) (uint8, error) { return d.ReadU8() }
func (u8Codec) MinEncodedSize(Config) int        { return 1 }

type u16Codec struct{}

func (u16Codec) Encode(e *Encoder, v uint16) error { return e.WriteU16(v) }
func (u16Codec) Decode(d *Decoder) (uint16, error) { return d.ReadU16() }
func (u16Codec) MinEncodedSize(c Config) int       { return intMinSize(c, 2) }

type u32Codec struct{}

func (u32Codec) Encode(e *Encoder, v uint32) error { return e.WriteU32(v) }
func (u32Codec) Decode(d *Decoder) (uint32, error) { return d.ReadU32() }
func (u32Codec) MinEncodedSize(c Config) int       { return intMinSize(c, 4) }

type u64Codec struct{}

func (u64Codec) Encode(e *Encoder, v uint64) error { return e.WriteU64(v) }
func (u64Codec) Decode(d *Decoder) (uint64, error) { return d.ReadU64() }
func (u64Codec) MinEncodedSize(c Config) int       { return intMinSize(c, 8) }

type i8Codec struct{}

func (i8Codec) Encode(e *Encoder, v int8) error { return e.WriteI8(v) }
func (i8Codec) Decode(d *Decoder) (int8, error) { return d.ReadI8() }
func (i8Codec) MinEncodedSize(Config) int       { return 1 }

type i16Codec struct{}

func (i16Codec) Encode(e *Encoder, v int16) error { return e.WriteI16(v) }
func (i16Codec) Decode(d *Decoder) (int16, error) { return d.ReadI16() }
func (i16Codec) MinEncodedSize(c Config) int      { return intMinSize(c, 2) }

type i32Codec struct{}

func (i32Codec) Encode(e *Encoder, v int32) error { return e.WriteI32(v) }
func (i32Codec) Decode(d *Decoder) (int32, error) { return d.ReadI32() }
func (i32Codec) MinEncodedSize(c Config) int      { return intMinSize(c, 4) }

type i64Codec struct{}

func (i64Codec) Encode(e *Encoder, v int64) error { return e.WriteI64(v) }
func (i64Codec) Decode(d *Decoder) (int64, error) { return d.ReadI64() }
func (i64Codec) MinEncodedSize(c Config) int      { return intMinSize(c, 8) }

type f32Codec struct{}

func (f32Codec) Encode(e *Encoder, v float32) error { return e.WriteF32(v) }
func (f32Codec) Decode(d *Decoder) (float32, error) { return d.ReadF32() }
func (f32Codec) MinEncodedSize(Config) int          { return 4 }

type f64Codec struct{}

func (f64Codec) Encode(e *Encoder, v float64) error { return e.WriteF64(v) }
func (f64Codec) Decode(d *Decoder) (float64, error) { return d.ReadF64() }
func (f64Codec) MinEncodedSize(Config) int          { return 8 }

type boolCodec struct{}

func (boolCodec) Encode(e *Encoder, v bool) error { return e.WriteBool(v) }
func (boolCodec) Decode(d *Decoder) (bool, error) { return d.ReadBool() }
func (boolCodec) MinEncodedSize(Config) int       { return 1 }

type stringCodec struct{}

func (stringCodec) Encode(e *Encoder, v string) error { return e.WriteString(v) }
func (stringCodec) Decode(d *Decoder) (string, error) { return d.ReadString() }
func (stringCodec) MinEncodedSize(c Config) int       { return intMinSize(c, 8) }

// Func adapts a pair of functions to a Codec. Recursive type codecs use it to
// break initialization cycles.
type Func[T any] struct {
	EncodeFunc func(e *Encoder, v T) error
	DecodeFunc func(d *Decoder) (T, error)
	MinSize    int
}

func (f Func[T]) Encode(e *Encoder, v T) error { return f.EncodeFunc(e, v) }
func (f Func[T]) Decode(d *Decoder) (T, error) { return f.DecodeFunc(d) }
func (f Func[T]) MinEncodedSize(Config) int    { return f.MinSize }
