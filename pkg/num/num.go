// Package num provides small numeric helpers: clamping, range tests,
// alignment rounding and proximity tests. The helpers are self-contained
// leaf utilities with no relation to the capability packages.
package num

import (
	"cmp"
	"math"
)

// Integer is the constraint for the alignment and proximity helpers.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InRange reports whether v lies in the inclusive range [lo, hi].
func InRange[T cmp.Ordered](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// AlignDown rounds v down to a multiple of align.
//
//	AlignDown(63, 64) == 0
//	AlignDown(65, 64) == 64
func AlignDown[T Integer](v, align T) T {
	return v - v%align
}

// AlignUp rounds v up to a multiple of align.
//
//	AlignUp(63, 64) == 64
//	AlignUp(65, 64) == 128
func AlignUp[T Integer](v, align T) T {
	if v%align != 0 {
		return v + align - v%align
	}
	return v
}

// Near reports whether v lies strictly within target ± ceil(target*factor).
// The comparison is carried out in float64, so values above 2^53 lose
// precision in the bound.
func Near[T Integer](v, target T, factor float32) bool {
	diff := math.Ceil(float64(target) * float64(factor))
	fv := float64(v)
	ft := float64(target)
	return fv < ft+diff && fv > ft-diff
}
