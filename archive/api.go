package archive

import (
	"errors"
	"fmt"

	"github.com/hupe1980/arenacodec/arena"
)

// ErrBufferTooSmall is returned when a buffer cannot hold the root value.
var ErrBufferTooSmall = errors.New("archive: buffer too small for root")

const defaultCapacity = 1024

// ToBytes archives v and returns the buffer. The root value is written last.
func ToBytes[T, A any](ar Archiver[T, A], v T) ([]byte, error) {
	s := NewSerializer(defaultCapacity)
	if err := Serialize(s, ar, v); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// Serialize archives v into s as a root value.
func Serialize[T, A any](s *Serializer, ar Archiver[T, A], v T) error {
	r, err := ar.Serialize(s, v)
	if err != nil {
		return err
	}
	pos := s.Reserve(ar.Layout())
	return ar.Resolve(s, v, pos, r)
}

// Root returns a view of the root value of buf.
func Root[T, A any](ar Archiver[T, A], buf []byte) (A, error) {
	size := ar.Layout().Size
	if len(buf) < size {
		var zero A
		return zero, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, size, len(buf))
	}
	return ar.View(buf, len(buf)-size), nil
}

// Dematerialize copies the root value of buf into a.
func Dematerialize[T, A any](a *arena.Arena, ar Archiver[T, A], buf []byte) (T, error) {
	view, err := Root(ar, buf)
	if err != nil {
		var zero T
		return zero, err
	}
	return ar.Deserialize(a, view)
}
