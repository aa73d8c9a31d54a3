package archive

import (
	"encoding/binary"
	"math"

	"github.com/hupe1980/arenacodec/arena"
)

// Resolver records where a value's out-of-line data was written.
// Composite archivers keep their fields' resolvers in Fields.
type Resolver struct {
	Pos    int
	Fields []Resolver
}

// Viewer reads archived values of view type A.
type Viewer[A any] interface {
	Layout() Layout
	View(buf []byte, pos int) A
}

// Archiver archives live values of type T and reads them back as views of type A.
type Archiver[T, A any] interface {
	Viewer[A]
	// Serialize writes the out-of-line data of v.
	Serialize(s *Serializer, v T) (Resolver, error)
	// Resolve writes the inline part of v at pos.
	Resolve(s *Serializer, v T, pos int, r Resolver) error
	// Deserialize copies an archived value into a.
	Deserialize(a *arena.Arena, view A) (T, error)
}

type scalar[T any] struct {
	layout Layout
	put    func(s *Serializer, pos int, v T)
	get    func(b []byte) T
}

func (c scalar[T]) Layout() Layout { return c.layout }

func (c scalar[T]) Serialize(*Serializer, T) (Resolver, error) { return Resolver{}, nil }

func (c scalar[T]) Resolve(s *Serializer, v T, pos int, _ Resolver) error {
	c.put(s, pos, v)
	return nil
}

func (c scalar[T]) View(buf []byte, pos int) T {
	return c.get(buf[pos : pos+c.layout.Size])
}

func (c scalar[T]) Deserialize(_ *arena.Arena, v T) (T, error) { return v, nil }

// u8Archiver is distinct so byte sequences can be copied in bulk.
type u8Archiver struct{}

func (u8Archiver) Layout() Layout { return Layout{Size: 1, Align: 1} }

func (u8Archiver) Serialize(*Serializer, uint8) (Resolver, error) { return Resolver{}, nil }

func (u8Archiver) Resolve(s *Serializer, v uint8, pos int, _ Resolver) error {
	s.PutUint8(pos, v)
	return nil
}

func (u8Archiver) View(buf []byte, pos int) uint8 { return buf[pos] }

func (u8Archiver) Deserialize(_ *arena.Arena, v uint8) (uint8, error) { return v, nil }

// Scalar archivers. Their view type is the value type.
var (
	U8 Archiver[uint8, uint8] = u8Archiver{}
	I8 Archiver[int8, int8]   = scalar[int8]{
		layout: Layout{Size: 1, Align: 1},
		put:    func(s *Serializer, pos int, v int8) { s.PutUint8(pos, uint8(v)) }, //nolint:gosec // bit reinterpretation
		get:    func(b []byte) int8 { return int8(b[0]) },                          //nolint:gosec // bit reinterpretation
	}
	U16 Archiver[uint16, uint16] = scalar[uint16]{
		layout: Layout{Size: 2, Align: 2},
		put:    func(s *Serializer, pos int, v uint16) { s.PutUint16(pos, v) },
		get:    binary.LittleEndian.Uint16,
	}
	I16 Archiver[int16, int16] = scalar[int16]{
		layout: Layout{Size: 2, Align: 2},
		put:    func(s *Serializer, pos int, v int16) { s.PutUint16(pos, uint16(v)) }, //nolint:gosec // bit reinterpretation
		get:    func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) },  //nolint:gosec // bit reinterpretation
	}
	U32 Archiver[uint32, uint32] = scalar[uint32]{
		layout: Layout{Size: 4, Align: 4},
		put:    func(s *Serializer, pos int, v uint32) { s.PutUint32(pos, v) },
		get:    binary.LittleEndian.Uint32,
	}
	I32 Archiver[int32, int32] = scalar[int32]{
		layout: Layout{Size: 4, Align: 4},
		put:    func(s *Serializer, pos int, v int32) { s.PutUint32(pos, uint32(v)) }, //nolint:gosec // bit reinterpretation
		get:    func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) },  //nolint:gosec // bit reinterpretation
	}
	U64 Archiver[uint64, uint64] = scalar[uint64]{
		layout: Layout{Size: 8, Align: 8},
		put:    func(s *Serializer, pos int, v uint64) { s.PutUint64(pos, v) },
		get:    binary.LittleEndian.Uint64,
	}
	I64 Archiver[int64, int64] = scalar[int64]{
		layout: Layout{Size: 8, Align: 8},
		put:    func(s *Serializer, pos int, v int64) { s.PutUint64(pos, uint64(v)) }, //nolint:gosec // bit reinterpretation
		get:    func(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) },  //nolint:gosec // bit reinterpretation
	}
	F32 Archiver[float32, float32] = scalar[float32]{
		layout: Layout{Size: 4, Align: 4},
		put:    func(s *Serializer, pos int, v float32) { s.PutUint32(pos, math.Float32bits(v)) },
		get:    func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) },
	}
	F64 Archiver[float64, float64] = scalar[float64]{
		layout: Layout{Size: 8, Align: 8},
		put:    func(s *Serializer, pos int, v float64) { s.PutUint64(pos, math.Float64bits(v)) },
		get:    func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) },
	}
	Bool Archiver[bool, bool] = scalar[bool]{
		layout: Layout{Size: 1, Align: 1},
		put: func(s *Serializer, pos int, v bool) {
			if v {
				s.PutUint8(pos, 1)
			}
		},
		get: func(b []byte) bool { return b[0] != 0 },
	}
)
