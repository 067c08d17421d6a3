package pavo

import "unsafe"

// Ref is the borrow-access capability: a view of a Target value reachable
// from the receiver. For a struct wrapper this is the address of the inner
// field; for an own-identity attachment it is the receiver itself.
type Ref[Target any] interface {
	Ref() *Target
}

// PtrView yields the raw read-only address of the viewed Target.
//
// The address equals the address of the value Ref returns and stays valid
// exactly as long as that value does. Obtaining it is a pure address
// computation with no side effects.
type PtrView[Target any] interface {
	Ref[Target]
	AsPtr() unsafe.Pointer
}

// PtrViewMut escalates a shared view to a writable raw address.
//
// The caller must guarantee that no other reader or writer aliases the
// memory while the address is used for writes. The package does not and
// cannot check this; it exists for call sites that take a shared value but
// can prove single-writer exclusivity through external discipline.
type PtrViewMut[Target any] interface {
	PtrView[Target]
	AsPtrMut() unsafe.Pointer
}

// Addr derives the raw address purely from the borrow-access capability.
//
// Generated AsPtr methods delegate here, so the address a type reports can
// never drift from the reference its Ref method returns.
func Addr[Target any](v Ref[Target]) unsafe.Pointer {
	return unsafe.Pointer(v.Ref())
}

// AddrMut derives the writable raw address from the borrow-access
// capability. It is the same address Addr reports; only the caller's
// obligations differ. See PtrViewMut.
func AddrMut[Target any](v Ref[Target]) unsafe.Pointer {
	return unsafe.Pointer(v.Ref())
}

// Own attaches the full pointer capability set to a plain *T. It is the
// base case of capability lookup: any value addressable as *T can be
// passed where a PtrViewMut[T] is expected.
type Own[T any] struct {
	V *T
}

func (o Own[T]) Ref() *T               { return o.V }
func (o Own[T]) AsPtr() unsafe.Pointer { return Addr[T](o) }

// AsPtrMut returns the writable address of the owned value. Exclusivity is
// the caller's obligation, as with any PtrViewMut.
func (o Own[T]) AsPtrMut() unsafe.Pointer { return AddrMut[T](o) }

// Borrowed forwards the pointer-view capability through one layer of
// borrowing: a value that only holds a view onto V reports the exact
// address V itself would.
type Borrowed[Target any, V PtrView[Target]] struct {
	V V
}

func (b Borrowed[Target, V]) Ref() *Target          { return b.V.Ref() }
func (b Borrowed[Target, V]) AsPtr() unsafe.Pointer { return b.V.AsPtr() }

// BorrowedMut is Borrowed for the writable pointer view.
type BorrowedMut[Target any, V PtrViewMut[Target]] struct {
	V V
}

func (b BorrowedMut[Target, V]) Ref() *Target             { return b.V.Ref() }
func (b BorrowedMut[Target, V]) AsPtr() unsafe.Pointer    { return b.V.AsPtr() }
func (b BorrowedMut[Target, V]) AsPtrMut() unsafe.Pointer { return b.V.AsPtrMut() }
