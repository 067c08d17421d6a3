package pavo

// InnerCopy exposes the inner representation by value. Appropriate when the
// inner type is trivially duplicable; never an aliasing hazard.
type InnerCopy[Inner any] interface {
	Inner() Inner
}

// InnerRef exposes the inner representation by pointer. Reads and writes
// through the pointer follow ordinary Go aliasing discipline; mutating
// through it requires the caller hold the wrapper exclusively.
//
// A wrapper attaches either InnerCopy or InnerRef for a given inner type,
// never both: the method name is shared and only the signature differs.
type InnerRef[Inner any] interface {
	Inner() *Inner
}
