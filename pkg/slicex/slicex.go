// Package slicex provides length-tolerant bulk copies between slices.
//
// Every function copies the overlapping prefix of the two slices, leaves
// any destination tail untouched, ignores any source tail and reports the
// number of elements transferred. A length mismatch is defined behavior,
// never an error.
package slicex

// Copy copies min(len(dst), len(src)) elements from src into dst as a
// single block move. Appropriate for trivially duplicable elements; for
// elements that own resources use CloneInto or CloneIntoFunc.
func Copy[T any](dst, src []T) int {
	return copy(dst, src)
}

// Cloner is implemented by element types with custom duplication logic.
type Cloner[T any] interface {
	Clone() T
}

// CloneInto duplicates the overlapping elements of src into dst slot by
// slot using the element's Clone method.
func CloneInto[T Cloner[T]](dst, src []T) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = src[i].Clone()
	}
	return n
}

// CloneIntoFunc is CloneInto for element types without a Clone method; the
// duplication logic is supplied by the caller.
func CloneIntoFunc[T any](dst, src []T, clone func(T) T) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = clone(src[i])
	}
	return n
}
