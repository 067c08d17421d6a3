// Package good is a scan fixture with one valid declaration of every
// derivation kind.
package good

// DATA_S stands in for a fixed-layout foreign struct.
type DATA_S struct {
	A uint64
	B uint64
}

// MODE_E stands in for a foreign enum.
type MODE_E uint32

// Data is the conventional struct wrapper.
//
//pavo:derive wrapper inner=DATA_S
type Data struct {
	inner DATA_S
}

// Mode is a tag wrapper over MODE_E.
//
//pavo:derive enum inner=MODE_E
type Mode uint32

const (
	ModeA Mode = iota
	ModeB
	ModeC
)

// Token carries the own-identity bundle.
//
//pavo:derive bundle
type Token struct {
	ID uint32
}

// Raw assembles the same capabilities from single derivations.
//
//pavo:derive ref inner=DATA_S field=raw
//pavo:derive ptr inner=DATA_S
//pavo:derive ptrmut inner=DATA_S
//pavo:derive copy inner=DATA_S field=raw
type Raw struct {
	raw DATA_S
}
