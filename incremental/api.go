package incremental

import (
	"bufio"
	"bytes"
	"io"

	"github.com/hupe1980/arenacodec/arena"
)

// Encode writes v to w.
func Encode[T any](w io.Writer, c Codec[T], v T, opts ...Option) error {
	bw := bufio.NewWriter(w)
	if err := c.Encode(NewEncoder(bw, opts...), v); err != nil {
		return err
	}
	return bw.Flush()
}

// EncodeToBytes returns the encoding of v.
func EncodeToBytes[T any](c Codec[T], v T, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(NewEncoder(&buf, opts...), v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes one value from data into a and returns it with the number of
// bytes consumed.
//
// On failure the arena may hold partially decoded values. They stay valid but
// should be discarded together with the arena.
func Decode[T any](data []byte, a *arena.Arena, c Codec[T], opts ...Option) (T, int, error) {
	d := NewDecoder(data, a, opts...)
	v, err := c.Decode(d)
	return v, d.Consumed(), err
}

// DecodeBorrowed is Decode with strings aliasing data. data must outlive the
// returned value.
func DecodeBorrowed[T any](data []byte, a *arena.Arena, c Codec[T], opts ...Option) (T, int, error) {
	d := NewBorrowDecoder(data, a, opts...)
	v, err := c.Decode(d)
	return v, d.Consumed(), err
}

// DecodeReader decodes one value from r into a.
//
// The remaining input length is unknown for readers, so only the configured limit
// bounds declared lengths. Set WithLimit when r is untrusted. Without one, a
// declared length above arena.MaxAllocSize fails with arena.ErrInvalidLayout.
func DecodeReader[T any](r io.Reader, a *arena.Arena, c Codec[T], opts ...Option) (T, error) {
	return c.Decode(NewReaderDecoder(r, a, opts...))
}
