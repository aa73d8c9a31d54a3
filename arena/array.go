package arena

import (
	"fmt"
	"iter"
	"unsafe"
)

const minArrayCap = 4

// Array is a growable sequence whose storage lives in an Arena.
//
// The buffer address is stable until the next growth. Growth reallocates inside
// the same arena and leaves the old storage orphaned.
type Array[T any] struct {
	arena *Arena
	data  *T
	len   int
	cap   int
}

// NewArray returns an empty array bound to a.
func NewArray[T any](a *Arena) Array[T] {
	return Array[T]{arena: a}
}

// NewArrayWithCapacity returns an empty array with room for n elements.
func NewArrayWithCapacity[T any](a *Arena, n int) (Array[T], error) {
	arr := Array[T]{arena: a}
	if n <= 0 {
		return arr, nil
	}
	p, err := allocN[T](a, n)
	if err != nil {
		return Array[T]{}, err
	}
	arr.data = p
	arr.cap = n
	return arr, nil
}

// NewArrayZeroed returns an array of n zero values with len == n.
func NewArrayZeroed[T any](a *Arena, n int) (Array[T], error) {
	arr, err := NewArrayWithCapacity[T](a, n)
	if err != nil {
		return Array[T]{}, err
	}
	arr.len = arr.cap
	return arr, nil
}

// ArrayFrom copies src into a new array.
func ArrayFrom[T any](a *Arena, src []T) (Array[T], error) {
	arr, err := NewArrayWithCapacity[T](a, len(src))
	if err != nil {
		return Array[T]{}, err
	}
	arr.len = copy(arr.buf(), src)
	return arr, nil
}

func (arr *Array[T]) buf() []T {
	if arr.data == nil {
		return nil
	}
	return unsafe.Slice(arr.data, arr.cap)
}

// Push appends v, growing the storage inside the arena when full.
func (arr *Array[T]) Push(v T) error {
	if arr.len == arr.cap {
		if err := arr.grow(); err != nil {
			return err
		}
	}
	arr.buf()[arr.len] = v
	arr.len++
	return nil
}

func (arr *Array[T]) grow() error {
	if arr.arena == nil {
		return fmt.Errorf("arena: push to array without arena")
	}
	newCap := max(minArrayCap, arr.cap*2)
	p, err := allocN[T](arr.arena, newCap)
	if err != nil {
		return err
	}
	copy(unsafe.Slice(p, newCap), arr.Slice())
	arr.data = p
	arr.cap = newCap
	return nil
}

// At returns the element at i. It panics if i is out of range.
func (arr Array[T]) At(i int) T {
	return arr.Slice()[i]
}

// Set overwrites the element at i. It panics if i is out of range.
func (arr Array[T]) Set(i int, v T) {
	arr.Slice()[i] = v
}

// Len returns the number of elements.
func (arr Array[T]) Len() int { return arr.len }

// Cap returns the number of elements the current storage can hold.
func (arr Array[T]) Cap() int { return arr.cap }

// Arena returns the arena the array allocates from.
func (arr Array[T]) Arena() *Arena { return arr.arena }

// Slice returns a view of the elements. The view aliases arena memory and must
// not be appended to.
func (arr Array[T]) Slice() []T {
	if arr.data == nil {
		return nil
	}
	return unsafe.Slice(arr.data, arr.cap)[:arr.len:arr.len]
}

// All iterates over index/value pairs in order.
func (arr Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range arr.Slice() {
			if !yield(i, v) {
				return
			}
		}
	}
}
