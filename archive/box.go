package archive

import (
	"unsafe"

	"github.com/hupe1980/arenacodec/arena"
)

// AllocFunc returns size bytes aligned to align from the destination arena.
type AllocFunc func(size, align int) (unsafe.Pointer, error)

// UnsizedViewer reads a boxed referent given its position and metadata.
type UnsizedViewer[A any] interface {
	ViewUnsized(buf []byte, pos int, meta uint32) A
}

// Unsized archives the referent of a box type B whose view type is A.
//
// Dematerializing a box first copies the referent's data into memory obtained
// from the AllocFunc, then reads the metadata, and finally rebuilds the box from
// the raw pointer and metadata with FromRawParts.
type Unsized[B, A any] interface {
	UnsizedViewer[A]
	// SerializeUnsized writes the referent out-of-line and returns its position.
	SerializeUnsized(s *Serializer, v B) (int, error)
	// Metadata returns the inline metadata of v.
	Metadata(v B) int
	// DeserializeUnsized copies the referent into memory obtained from alloc.
	DeserializeUnsized(a *arena.Arena, view A, alloc AllocFunc) (unsafe.Pointer, error)
	// DeserializeMetadata returns the metadata of the archived referent.
	DeserializeMetadata(view A) int
	// FromRawParts rebuilds the box. p must come from DeserializeUnsized.
	FromRawParts(p unsafe.Pointer, meta int) B
}

// ArchivedBox is a view of an archived box.
type ArchivedBox[A any] struct {
	buf     []byte
	pos     int
	meta    uint32
	pointee UnsizedViewer[A]
}

// Get returns a view of the referent.
func (v ArchivedBox[A]) Get() A {
	return v.pointee.ViewUnsized(v.buf, v.pos, v.meta)
}

// Metadata returns the stored metadata.
func (v ArchivedBox[A]) Metadata() uint32 { return v.meta }

// BoxOf returns an archiver for boxes whose referent is archived by u.
func BoxOf[B, A any](u Unsized[B, A]) Archiver[B, ArchivedBox[A]] {
	return boxArchiver[B, A]{u: u, viewer: u}
}

type boxArchiver[B, A any] struct {
	u      Unsized[B, A]
	viewer UnsizedViewer[A]
}

func (boxArchiver[B, A]) Layout() Layout { return Layout{Size: 8, Align: 4} }

func (c boxArchiver[B, A]) Serialize(s *Serializer, v B) (Resolver, error) {
	pos, err := c.u.SerializeUnsized(s, v)
	return Resolver{Pos: pos}, err
}

func (c boxArchiver[B, A]) Resolve(s *Serializer, v B, pos int, r Resolver) error {
	return s.PutRelLen(pos, r.Pos, c.u.Metadata(v))
}

func (c boxArchiver[B, A]) View(buf []byte, pos int) ArchivedBox[A] {
	return ArchivedBox[A]{
		buf:     buf,
		pos:     readRel(buf, pos),
		meta:    readU32(buf, pos+4),
		pointee: c.viewer,
	}
}

func (c boxArchiver[B, A]) Deserialize(a *arena.Arena, view ArchivedBox[A]) (B, error) {
	referent := view.Get()
	data, err := c.u.DeserializeUnsized(a, referent, a.AllocLayout)
	if err != nil {
		var zero B
		return zero, err
	}
	meta := c.u.DeserializeMetadata(referent)
	return c.u.FromRawParts(data, meta), nil
}

// Sized adapts a sized archiver to a box referent. Its metadata is always 0.
func Sized[T, A any](inner Archiver[T, A]) Unsized[arena.Box[T], A] {
	return sized[T, A]{inner: inner}
}

type sized[T, A any] struct {
	inner Archiver[T, A]
}

func (c sized[T, A]) SerializeUnsized(s *Serializer, v arena.Box[T]) (int, error) {
	r, err := c.inner.Serialize(s, v.Value())
	if err != nil {
		return 0, err
	}
	pos := s.Reserve(c.inner.Layout())
	return pos, c.inner.Resolve(s, v.Value(), pos, r)
}

func (sized[T, A]) Metadata(arena.Box[T]) int { return 0 }

func (c sized[T, A]) ViewUnsized(buf []byte, pos int, _ uint32) A {
	return c.inner.View(buf, pos)
}

func (c sized[T, A]) DeserializeUnsized(a *arena.Arena, view A, alloc AllocFunc) (unsafe.Pointer, error) {
	v, err := c.inner.Deserialize(a, view)
	if err != nil {
		return nil, err
	}
	p, err := alloc(int(unsafe.Sizeof(v)), int(unsafe.Alignof(v)))
	if err != nil {
		return nil, err
	}
	*(*T)(p) = v
	return p, nil
}

func (sized[T, A]) DeserializeMetadata(A) int { return 0 }

func (sized[T, A]) FromRawParts(p unsafe.Pointer, _ int) arena.Box[T] {
	return arena.BoxFromRaw[T](p)
}

// SizedBox is shorthand for BoxOf(Sized(inner)).
func SizedBox[T, A any](inner Archiver[T, A]) Archiver[arena.Box[T], ArchivedBox[A]] {
	return BoxOf(Sized(inner))
}

// SliceOf archives boxed slices. The metadata is the element count.
func SliceOf[E, A any](elem Archiver[E, A]) Unsized[arena.BoxedSlice[E], ArchivedArray[A]] {
	return slice[E, A]{elem: elem, viewer: elem}
}

type slice[E, A any] struct {
	elem   Archiver[E, A]
	viewer Viewer[A]
}

func (c slice[E, A]) SerializeUnsized(s *Serializer, v arena.BoxedSlice[E]) (int, error) {
	return serializeElems(s, c.elem, v.Slice())
}

func (slice[E, A]) Metadata(v arena.BoxedSlice[E]) int { return v.Len() }

func (c slice[E, A]) ViewUnsized(buf []byte, pos int, meta uint32) ArchivedArray[A] {
	return ArchivedArray[A]{buf: buf, pos: pos, n: int(meta), elem: c.viewer}
}

func (c slice[E, A]) DeserializeUnsized(a *arena.Arena, view ArchivedArray[A], alloc AllocFunc) (unsafe.Pointer, error) {
	return deserializeElems(a, c.elem, view, alloc)
}

func (slice[E, A]) DeserializeMetadata(view ArchivedArray[A]) int { return view.Len() }

func (slice[E, A]) FromRawParts(p unsafe.Pointer, n int) arena.BoxedSlice[E] {
	return arena.BoxedSliceFromRawParts[E](p, n)
}

// Str archives boxed strings. The metadata is the byte length.
var Str Unsized[arena.BoxedStr, string] = str{}

type str struct{}

func (str) SerializeUnsized(s *Serializer, v arena.BoxedStr) (int, error) {
	return s.WriteString(v.String()), nil
}

func (str) Metadata(v arena.BoxedStr) int { return v.Len() }

func (str) ViewUnsized(buf []byte, pos int, meta uint32) string {
	return viewString(buf, pos, meta)
}

func (str) DeserializeUnsized(_ *arena.Arena, view string, alloc AllocFunc) (unsafe.Pointer, error) {
	p, err := alloc(len(view), 1)
	if err != nil {
		return nil, err
	}
	copy(unsafe.Slice((*byte)(p), len(view)), view)
	return p, nil
}

func (str) DeserializeMetadata(view string) int { return len(view) }

func (str) FromRawParts(p unsafe.Pointer, n int) arena.BoxedStr {
	return arena.BoxedStrFromRawParts(p, n)
}

// BoxedStr archives arena.BoxedStr values.
var BoxedStr = BoxOf(Str)
