package pavo

import "unsafe"

// IntoInner is the terminal conversion: it consumes the wrapper and yields
// the inner representation. For field wrappers this moves the field out;
// for tag wrappers it is a numeric conversion. Paired with the generated
// <Wrapper>FromInner constructor it round-trips losslessly.
type IntoInner[Inner any] interface {
	IntoInner() Inner
}

// Reinterpret returns v's bit pattern read as Dst.
//
// This is the single unchecked conversion boundary of the package. It is
// only correct when Dst and Src have identical size, alignment and field
// layout, which the caller asserts by calling it. Release builds perform no
// validation; the pavocheck build tag compiles in a size and alignment
// assertion that panics on mismatch.
//
// Tag (enum) wrappers do not come through here: for integer-based defined
// types a plain Go conversion already preserves the bit pattern, so the
// generated conversions use that instead.
func Reinterpret[Dst, Src any](v Src) Dst {
	assertSameLayout[Dst, Src]()
	return *(*Dst)(unsafe.Pointer(&v))
}
