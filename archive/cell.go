package archive

import "github.com/hupe1980/arenacodec/arena"

// CellContent archives the current value of a cell with inner. No cell wrapper
// appears in the archive; dematerializing yields a fresh cell.
//
// Nothing may write to the cell between Serialize and Resolve.
func CellContent[T, A any](inner Archiver[T, A]) Archiver[arena.Cell[T], A] {
	return cellArchiver[T, A]{inner: inner}
}

type cellArchiver[T, A any] struct {
	inner Archiver[T, A]
}

func (c cellArchiver[T, A]) Layout() Layout { return c.inner.Layout() }

func (c cellArchiver[T, A]) Serialize(s *Serializer, v arena.Cell[T]) (Resolver, error) {
	return c.inner.Serialize(s, v.Get())
}

func (c cellArchiver[T, A]) Resolve(s *Serializer, v arena.Cell[T], pos int, r Resolver) error {
	return c.inner.Resolve(s, v.Get(), pos, r)
}

func (c cellArchiver[T, A]) View(buf []byte, pos int) A {
	return c.inner.View(buf, pos)
}

func (c cellArchiver[T, A]) Deserialize(a *arena.Arena, view A) (arena.Cell[T], error) {
	v, err := c.inner.Deserialize(a, view)
	if err != nil {
		return arena.Cell[T]{}, err
	}
	return arena.NewCell(v), nil
}
