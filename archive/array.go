package archive

import (
	"iter"
	"unsafe"

	"github.com/hupe1980/arenacodec/arena"
)

// ArchivedArray is a view of a contiguous run of archived elements.
type ArchivedArray[A any] struct {
	buf  []byte
	pos  int
	n    int
	elem Viewer[A]
}

// Len returns the number of elements.
func (v ArchivedArray[A]) Len() int { return v.n }

// At returns a view of element i. It panics if i is out of range.
func (v ArchivedArray[A]) At(i int) A {
	if i < 0 || i >= v.n {
		panic("archive: index out of range")
	}
	return v.elem.View(v.buf, v.pos+i*v.elem.Layout().Size)
}

// All iterates over element views in order.
func (v ArchivedArray[A]) All() iter.Seq2[int, A] {
	return func(yield func(int, A) bool) {
		size := v.elem.Layout().Size
		for i := range v.n {
			if !yield(i, v.elem.View(v.buf, v.pos+i*size)) {
				return
			}
		}
	}
}

// Raw returns the archived element bytes.
func (v ArchivedArray[A]) Raw() []byte {
	return v.buf[v.pos : v.pos+v.n*v.elem.Layout().Size]
}

// ArrayOf returns an archiver for arena arrays of elements archived by elem.
func ArrayOf[T, A any](elem Archiver[T, A]) Archiver[arena.Array[T], ArchivedArray[A]] {
	return arrayArchiver[T, A]{elem: elem, viewer: elem}
}

type arrayArchiver[T, A any] struct {
	elem   Archiver[T, A]
	viewer Viewer[A]
}

func (arrayArchiver[T, A]) Layout() Layout { return Layout{Size: 8, Align: 4} }

func (c arrayArchiver[T, A]) Serialize(s *Serializer, v arena.Array[T]) (Resolver, error) {
	pos, err := serializeElems(s, c.elem, v.Slice())
	return Resolver{Pos: pos}, err
}

func (c arrayArchiver[T, A]) Resolve(s *Serializer, v arena.Array[T], pos int, r Resolver) error {
	return s.PutRelLen(pos, r.Pos, v.Len())
}

func (c arrayArchiver[T, A]) View(buf []byte, pos int) ArchivedArray[A] {
	return ArchivedArray[A]{
		buf:  buf,
		pos:  readRel(buf, pos),
		n:    int(readU32(buf, pos+4)),
		elem: c.viewer,
	}
}

func (c arrayArchiver[T, A]) Deserialize(a *arena.Arena, view ArchivedArray[A]) (arena.Array[T], error) {
	if _, ok := any(c.elem).(u8Archiver); ok {
		out, err := arena.ArrayFrom(a, view.Raw())
		if err != nil {
			return arena.Array[T]{}, err
		}
		return any(out).(arena.Array[T]), nil
	}

	out, err := arena.NewArrayWithCapacity[T](a, view.Len())
	if err != nil {
		return arena.Array[T]{}, err
	}
	for _, ev := range view.All() {
		item, err := c.elem.Deserialize(a, ev)
		if err != nil {
			return out, err
		}
		if err := out.Push(item); err != nil {
			return out, err
		}
	}
	return out, nil
}

// serializeElems writes the out-of-line data of every element, then the elements
// themselves contiguously, and returns the position of the first element.
func serializeElems[T, A any](s *Serializer, elem Archiver[T, A], vs []T) (int, error) {
	l := elem.Layout()

	if _, ok := any(elem).(u8Archiver); ok {
		s.Pad(l.Align)
		return s.WriteBytes(any(vs).([]uint8)), nil
	}

	var resolvers []Resolver
	if len(vs) > 0 {
		resolvers = make([]Resolver, len(vs))
	}
	for i, v := range vs {
		r, err := elem.Serialize(s, v)
		if err != nil {
			return 0, err
		}
		resolvers[i] = r
	}

	start := s.Reserve(Layout{Size: 0, Align: l.Align})
	for range vs {
		s.Reserve(l)
	}
	for i, v := range vs {
		if err := elem.Resolve(s, v, start+i*l.Size, resolvers[i]); err != nil {
			return 0, err
		}
	}
	return start, nil
}

// deserializeElems copies archived elements into memory obtained from alloc.
func deserializeElems[T, A any](a *arena.Arena, elem Archiver[T, A], view ArchivedArray[A], alloc AllocFunc) (unsafe.Pointer, error) {
	var zero T
	size, align := int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero))

	p, err := alloc(size*view.Len(), align)
	if err != nil {
		return nil, err
	}
	if view.Len() == 0 {
		return p, nil
	}

	if _, ok := any(elem).(u8Archiver); ok {
		copy(unsafe.Slice((*byte)(p), view.Len()), view.Raw())
		return p, nil
	}

	dst := unsafe.Slice((*T)(p), view.Len())
	for i, ev := range view.All() {
		item, err := elem.Deserialize(a, ev)
		if err != nil {
			return nil, err
		}
		dst[i] = item
	}
	return p, nil
}
