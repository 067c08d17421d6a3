// Package pavo provides the capability contracts used to bridge Go wrapper
// types with the fixed-layout inner representations consumed by a foreign
// counterpart, typically a C-ABI struct or enum.
//
// A wrapper owns exactly one inner value, either as a named field or by being
// bit-identical to it. Capabilities are small, composable method contracts a
// wrapper attaches to itself:
//
//   - Ref:        borrow-access, a *T view of the inner value
//   - PtrView:    raw read-only address of the inner value
//   - PtrViewMut: raw writable address obtained from a shared view
//   - InnerCopy / InnerRef: inner access by value or by pointer
//   - IntoInner:  terminal conversion that consumes the wrapper
//
// Application code never hand-writes the attachments; the pavogen tool
// derives them from //pavo:derive directives so the address returned by
// AsPtr can never diverge from the reference returned by Ref.
//
// # Safety
//
// This package trades the pointer discipline Go normally provides for raw
// addresses the caller manages. Three obligations transfer to the caller:
//
//   - An address from AsPtr or AsPtrMut is valid only as long as the value
//     it was taken from. It does not keep the value alive on its own terms
//     beyond what the garbage collector tracks through unsafe.Pointer.
//
//   - Writing through AsPtrMut requires externally proven exclusivity. No
//     other reader or writer may alias the memory while the write happens.
//     Violations are not detected.
//
//   - Reinterpret assumes the two types share size, alignment and field
//     layout. Nothing validates this in release builds; build with the
//     pavocheck tag to get a size and alignment assertion during tests.
//
// No function in this package allocates, blocks or spawns goroutines.
package pavo
