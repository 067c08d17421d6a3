// Package bad is a scan fixture in which every declaration is misuse.
package bad

type INNER_S struct {
	A uint64
}

type OTHER_S struct {
	B uint64
}

type MODE64 uint64

type MODE32 uint32

// NoField names a field the wrapper does not have.
//
//pavo:derive wrapper inner=INNER_S field=missing
type NoField struct {
	inner INNER_S
}

// WrongType holds a different type than the directive claims.
//
//pavo:derive wrapper inner=OTHER_S
type WrongType struct {
	inner INNER_S
}

// BadEnum names a struct as the inner side of a tag conversion.
//
//pavo:derive enum inner=INNER_S
type BadEnum uint32

// Mismatch differs from its inner type in underlying width.
//
//pavo:derive enum inner=MODE64
type Mismatch uint32

// Lonely declares no constants to validate against.
//
//pavo:derive enum inner=MODE32
type Lonely uint32

// Conflict attaches both inner-access variants.
//
//pavo:derive copy inner=INNER_S
//pavo:derive innerref inner=INNER_S
type Conflict struct {
	inner INNER_S
}

// Dangling derives a pointer view without borrow-access.
//
//pavo:derive ptr
type Dangling struct {
	inner INNER_S
}

// The directive below is attached to a var, not a type.
//
//pavo:derive bundle
var NotAType int
