package archive

import (
	"cmp"
	"strings"

	"github.com/hupe1980/arenacodec/arena"
)

// None of these comparisons allocate.

// EqualBox reports whether the archived referent equals the live one.
func EqualBox[T comparable](view ArchivedBox[T], live arena.Box[T]) bool {
	return view.Get() == *live.Get()
}

// CompareBox orders the archived referent against the live one.
func CompareBox[T cmp.Ordered](view ArchivedBox[T], live arena.Box[T]) int {
	return cmp.Compare(view.Get(), *live.Get())
}

// EqualValue compares an archived referent with a live one using eq.
func EqualValue[A, T any](view ArchivedBox[A], live arena.Box[T], eq func(A, *T) bool) bool {
	return eq(view.Get(), live.Get())
}

// CompareValue orders an archived referent against a live one using compare.
func CompareValue[A, T any](view ArchivedBox[A], live arena.Box[T], compare func(A, *T) int) int {
	return compare(view.Get(), live.Get())
}

// EqualBoxedStr reports whether an archived boxed string equals a live one.
func EqualBoxedStr(view ArchivedBox[string], live arena.BoxedStr) bool {
	return view.Get() == live.String()
}

// CompareBoxedStr orders an archived boxed string against a live one.
func CompareBoxedStr(view ArchivedBox[string], live arena.BoxedStr) int {
	return strings.Compare(view.Get(), live.String())
}

// EqualArray reports whether an archived array holds the same elements as a
// live array.
func EqualArray[T comparable](view ArchivedArray[T], live arena.Array[T]) bool {
	if view.Len() != live.Len() {
		return false
	}
	for i, v := range live.Slice() {
		if view.At(i) != v {
			return false
		}
	}
	return true
}

// EqualBoxedSlice reports whether an archived boxed slice holds the same
// elements as a live one.
func EqualBoxedSlice[T comparable](view ArchivedBox[ArchivedArray[T]], live arena.BoxedSlice[T]) bool {
	arr := view.Get()
	if arr.Len() != live.Len() {
		return false
	}
	for i, v := range live.Slice() {
		if arr.At(i) != v {
			return false
		}
	}
	return true
}
