package archive

// Layout is the size and alignment of an inline archived value.
type Layout struct {
	Size  int
	Align int
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// StructLayout lays out fields in order with natural padding and returns the
// struct layout together with each field's offset.
func StructLayout(fields ...Layout) (Layout, []int) {
	offsets := make([]int, len(fields))
	size, align := 0, 1
	for i, f := range fields {
		size = alignUp(size, f.Align)
		offsets[i] = size
		size += f.Size
		align = max(align, f.Align)
	}
	return Layout{Size: alignUp(size, align), Align: align}, offsets
}
