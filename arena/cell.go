package arena

// Cell holds a value that can be replaced through a shared reference.
//
// Cells are not synchronized. Nothing may write to a cell while a codec reads it.
type Cell[T any] struct {
	v T
}

// NewCell returns a cell holding v.
func NewCell[T any](v T) Cell[T] {
	return Cell[T]{v: v}
}

// Get returns a copy of the current value.
func (c *Cell[T]) Get() T { return c.v }

// Set stores v.
func (c *Cell[T]) Set(v T) { c.v = v }

// Replace stores v and returns the previous value.
func (c *Cell[T]) Replace(v T) T {
	old := c.v
	c.v = v
	return old
}
