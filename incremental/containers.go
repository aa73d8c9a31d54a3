package incremental

import (
	"unsafe"

	"github.com/hupe1980/arenacodec/arena"
)

// ArrayOf returns a codec for arena arrays whose elements use elem.
//
// An array is its length as a u64 followed by each element in order. Byte arrays
// decoded with U8 take a fast path that reads all bytes in one call.
func ArrayOf[T any](elem Codec[T]) Codec[arena.Array[T]] {
	return arrayCodec[T]{elem: elem}
}

type arrayCodec[T any] struct {
	elem Codec[T]
}

func (c arrayCodec[T]) Encode(e *Encoder, v arena.Array[T]) error {
	return encodeSeq(e, c.elem, v.Slice())
}

func (c arrayCodec[T]) Decode(d *Decoder) (arena.Array[T], error) {
	return decodeSeq(d, c.elem)
}

func (c arrayCodec[T]) MinEncodedSize(cfg Config) int { return intMinSize(cfg, 8) }

func encodeSeq[T any](e *Encoder, elem Codec[T], vs []T) error {
	if err := e.WriteLen(len(vs)); err != nil {
		return err
	}
	if _, ok := any(elem).(u8Codec); ok {
		return e.WriteBytes(any(vs).([]uint8))
	}
	for _, v := range vs {
		if err := elem.Encode(e, v); err != nil {
			return err
		}
	}
	return nil
}

func decodeSeq[T any](d *Decoder, elem Codec[T]) (arena.Array[T], error) {
	n, err := d.ReadLen()
	if err != nil {
		return arena.Array[T]{}, err
	}

	var zero T
	size := int(unsafe.Sizeof(zero))
	minSize := minEncodedSize(elem, d.cfg)

	if err := d.ClaimContainerRead(n, size, minSize); err != nil {
		return arena.Array[T]{}, err
	}

	if _, ok := any(elem).(u8Codec); ok {
		buf, err := arena.NewArrayZeroed[uint8](d.arena, n)
		if err != nil {
			return arena.Array[T]{}, err
		}
		d.releaseInput(n * minSize)
		if err := d.ReadBytes(buf.Slice()); err != nil {
			return arena.Array[T]{}, err
		}
		return any(buf).(arena.Array[T]), nil
	}

	arr, err := arena.NewArrayWithCapacity[T](d.arena, n)
	if err != nil {
		return arena.Array[T]{}, err
	}
	for range n {
		d.UnclaimBytesRead(size)
		d.releaseInput(minSize)

		v, err := elem.Decode(d)
		if err != nil {
			return arr, err
		}
		if err := arr.Push(v); err != nil {
			return arr, err
		}
	}
	return arr, nil
}

// BoxOf returns a codec for boxes. The box adds nothing to the wire format.
func BoxOf[T any](inner Codec[T]) Codec[arena.Box[T]] {
	return boxCodec[T]{inner: inner}
}

type boxCodec[T any] struct {
	inner Codec[T]
}

func (c boxCodec[T]) Encode(e *Encoder, v arena.Box[T]) error {
	return c.inner.Encode(e, v.Value())
}

func (c boxCodec[T]) Decode(d *Decoder) (arena.Box[T], error) {
	v, err := c.inner.Decode(d)
	if err != nil {
		return arena.Box[T]{}, err
	}
	return arena.NewBox(d.arena, v)
}

func (c boxCodec[T]) MinEncodedSize(cfg Config) int { return minEncodedSize(c.inner, cfg) }

// BoxedSliceOf returns a codec for boxed slices, encoded like arrays.
func BoxedSliceOf[E any](elem Codec[E]) Codec[arena.BoxedSlice[E]] {
	return boxedSliceCodec[E]{elem: elem}
}

type boxedSliceCodec[E any] struct {
	elem Codec[E]
}

func (c boxedSliceCodec[E]) Encode(e *Encoder, v arena.BoxedSlice[E]) error {
	return encodeSeq(e, c.elem, v.Slice())
}

func (c boxedSliceCodec[E]) Decode(d *Decoder) (arena.BoxedSlice[E], error) {
	arr, err := decodeSeq(d, c.elem)
	if err != nil {
		return arena.BoxedSlice[E]{}, err
	}
	s := arr.Slice()
	return arena.BoxedSliceFromRawParts[E](unsafe.Pointer(unsafe.SliceData(s)), len(s)), nil
}

func (c boxedSliceCodec[E]) MinEncodedSize(cfg Config) int { return intMinSize(cfg, 8) }

// BoxedStr encodes boxed strings like String.
var BoxedStr Codec[arena.BoxedStr] = boxedStrCodec{}

type boxedStrCodec struct{}

func (boxedStrCodec) Encode(e *Encoder, v arena.BoxedStr) error {
	return e.WriteString(v.String())
}

func (boxedStrCodec) Decode(d *Decoder) (arena.BoxedStr, error) {
	s, err := d.ReadString()
	if err != nil {
		return arena.BoxedStr{}, err
	}
	return arena.BoxedStrFromRawParts(unsafe.Pointer(unsafe.StringData(s)), len(s)), nil
}

func (boxedStrCodec) MinEncodedSize(cfg Config) int { return intMinSize(cfg, 8) }

// CellOf returns a codec that writes the current value of a cell and decodes into
// a fresh cell. No cell framing appears on the wire.
func CellOf[T any](inner Codec[T]) Codec[arena.Cell[T]] {
	return cellCodec[T]{inner: inner}
}

type cellCodec[T any] struct {
	inner Codec[T]
}

func (c cellCodec[T]) Encode(e *Encoder, v arena.Cell[T]) error {
	return c.inner.Encode(e, v.Get())
}

func (c cellCodec[T]) Decode(d *Decoder) (arena.Cell[T], error) {
	v, err := c.inner.Decode(d)
	if err != nil {
		return arena.Cell[T]{}, err
	}
	return arena.NewCell(v), nil
}

func (c cellCodec[T]) MinEncodedSize(cfg Config) int { return minEncodedSize(c.inner, cfg) }
