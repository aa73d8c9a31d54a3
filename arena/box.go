package arena

import "unsafe"

// Box owns a single value allocated in an Arena. It is exactly one pointer wide.
type Box[T any] struct {
	p *T
}

// NewBox allocates v in a and boxes it.
func NewBox[T any](a *Arena, v T) (Box[T], error) {
	p, err := Alloc(a, v)
	if err != nil {
		return Box[T]{}, err
	}
	return Box[T]{p: p}, nil
}

// BoxFromRaw wraps p without copying.
//
// The caller guarantees p is non-nil, points to a valid T and lives in the arena
// that owns the resulting box.
func BoxFromRaw[T any](p unsafe.Pointer) Box[T] {
	return Box[T]{p: (*T)(p)}
}

// Get returns the boxed pointer.
func (b Box[T]) Get() *T { return b.p }

// Value returns a copy of the boxed value.
func (b Box[T]) Value() T { return *b.p }

// IsZero reports whether the box is empty.
func (b Box[T]) IsZero() bool { return b.p == nil }

// BoxedSlice owns a fixed-length run of elements in an Arena.
type BoxedSlice[E any] struct {
	p *E
	n int
}

// NewBoxedSlice copies src into a.
func NewBoxedSlice[E any](a *Arena, src []E) (BoxedSlice[E], error) {
	if len(src) == 0 {
		return BoxedSlice[E]{}, nil
	}
	p, err := allocN[E](a, len(src))
	if err != nil {
		return BoxedSlice[E]{}, err
	}
	copy(unsafe.Slice(p, len(src)), src)
	return BoxedSlice[E]{p: p, n: len(src)}, nil
}

// BoxedSliceFromRawParts rebuilds a boxed slice from its data pointer and length.
// The caller guarantees the pointer covers n valid elements in the owning arena.
func BoxedSliceFromRawParts[E any](p unsafe.Pointer, n int) BoxedSlice[E] {
	if n == 0 {
		return BoxedSlice[E]{}
	}
	return BoxedSlice[E]{p: (*E)(p), n: n}
}

// Slice returns the elements.
func (b BoxedSlice[E]) Slice() []E {
	if b.p == nil {
		return nil
	}
	return unsafe.Slice(b.p, b.n)
}

// Len returns the number of elements.
func (b BoxedSlice[E]) Len() int { return b.n }

// BoxedStr owns UTF-8 bytes in an Arena.
type BoxedStr struct {
	s string
}

// NewBoxedStr copies s into a.
func NewBoxedStr(a *Arena, s string) (BoxedStr, error) {
	as, err := a.AllocString(s)
	if err != nil {
		return BoxedStr{}, err
	}
	return BoxedStr{s: as}, nil
}

// BoxedStrFromRawParts rebuilds a boxed string from its data pointer and byte length.
// The bytes must be valid UTF-8 owned by the arena.
func BoxedStrFromRawParts(p unsafe.Pointer, n int) BoxedStr {
	if n == 0 {
		return BoxedStr{}
	}
	return BoxedStr{s: unsafe.String((*byte)(p), n)}
}

func (b BoxedStr) String() string { return b.s }

// Len returns the length in bytes.
func (b BoxedStr) Len() int { return len(b.s) }
