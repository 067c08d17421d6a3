// Package directive defines the grammar of //pavo:derive declarations and
// parses them into their declaration model. It knows nothing about Go
// types; semantic validation lives in internal/scan.
package directive

import (
	"fmt"
	"go/token"
	"strings"
)

// Prefix introduces a derivation directive. The directive must start the
// comment line with no space after the slashes:
//
//	//pavo:derive wrapper inner=ffi.DATA_S
const Prefix = "//pavo:derive"

// Kind selects which capability set a directive derives.
type Kind string

const (
	// Single capabilities.
	KindRef      Kind = "ref"      // borrow-access
	KindPtr      Kind = "ptr"      // pointer view
	KindPtrMut   Kind = "ptrmut"   // mutable pointer view
	KindCopy     Kind = "copy"     // inner access by copy
	KindInnerRef Kind = "innerref" // inner access by reference
	KindConvert  Kind = "convert"  // field-extraction conversion

	// Bundles.
	KindBundle  Kind = "bundle"  // ref + ptr + ptrmut for one target
	KindWrapper Kind = "wrapper" // the conventional struct-wrapper shape
	KindEnum    Kind = "enum"    // tag wrapper: conversions + inner by copy
)

var kinds = map[Kind]bool{
	KindRef:      true,
	KindPtr:      true,
	KindPtrMut:   true,
	KindCopy:     true,
	KindInnerRef: true,
	KindConvert:  true,
	KindBundle:   true,
	KindWrapper:  true,
	KindEnum:     true,
}

// requiresInner lists the kinds that must name an inner type. The pointer
// kinds and bundle default to the wrapper's own identity when inner is
// omitted.
var requiresInner = map[Kind]bool{
	KindCopy:     true,
	KindInnerRef: true,
	KindConvert:  true,
	KindWrapper:  true,
	KindEnum:     true,
}

// usesField lists the kinds whose derivation reads or writes a named
// wrapper field. Field defaults to "inner" when the directive names an
// inner type; own-identity derivations take no field.
var usesField = map[Kind]bool{
	KindRef:      true,
	KindBundle:   true,
	KindCopy:     true,
	KindInnerRef: true,
	KindConvert:  true,
	KindWrapper:  true,
}

// DefaultField is the conventional name of the wrapped field.
const DefaultField = "inner"

// Decl is one parsed directive. Wrapper is filled in by the scanner from
// the type declaration the directive is attached to.
type Decl struct {
	Kind    Kind
	Inner   string // type expression, possibly package-qualified; empty means own identity
	Field   string
	Wrapper string
	Pos     token.Position
}

// String renders the declaration the way it appears in source, used in
// diagnostics.
func (d Decl) String() string {
	var b strings.Builder
	b.WriteString("pavo:derive ")
	b.WriteString(string(d.Kind))
	if d.Inner != "" {
		fmt.Fprintf(&b, " inner=%s", d.Inner)
	}
	if d.Field != "" && d.Field != DefaultField {
		fmt.Fprintf(&b, " field=%s", d.Field)
	}
	return b.String()
}

// UsesField reports whether the derivation reads or writes a wrapper field.
func (d Decl) UsesField() bool { return usesField[d.Kind] }

// Is reports whether text is a directive line. Parse errors on lines that
// pass this check are misuse, not ordinary comments.
func Is(text string) bool {
	return text == Prefix || strings.HasPrefix(text, Prefix+" ")
}

// Parse parses one directive comment line. pos is the source position of
// the comment, carried into the declaration for diagnostics.
func Parse(text string, pos token.Position) (Decl, error) {
	if !Is(text) {
		return Decl{}, fmt.Errorf("%s: not a pavo:derive directive: %q", pos, text)
	}

	fields := strings.Fields(strings.TrimPrefix(text, Prefix))
	if len(fields) == 0 {
		return Decl{}, fmt.Errorf("%s: pavo:derive: missing kind", pos)
	}

	d := Decl{Kind: Kind(fields[0]), Pos: pos}
	if !kinds[d.Kind] {
		return Decl{}, fmt.Errorf("%s: pavo:derive: unknown kind %q", pos, fields[0])
	}

	seen := map[string]bool{}
	for _, f := range fields[1:] {
		key, value, ok := strings.Cut(f, "=")
		if !ok || value == "" {
			return Decl{}, fmt.Errorf("%s: %s: malformed argument %q, want key=value", pos, d, f)
		}
		if seen[key] {
			return Decl{}, fmt.Errorf("%s: %s: duplicate argument %q", pos, d, key)
		}
		seen[key] = true

		switch key {
		case "inner":
			d.Inner = value
		case "field":
			d.Field = value
		default:
			return Decl{}, fmt.Errorf("%s: %s: unknown argument %q", pos, d, key)
		}
	}

	if requiresInner[d.Kind] && d.Inner == "" {
		return Decl{}, fmt.Errorf("%s: %s: kind %q requires inner=<type>", pos, d, d.Kind)
	}
	if d.Field != "" && !usesField[d.Kind] {
		return Decl{}, fmt.Errorf("%s: %s: kind %q does not take field=", pos, d, d.Kind)
	}
	if d.Field != "" && d.Inner == "" {
		return Decl{}, fmt.Errorf("%s: %s: field= requires inner=<type>", pos, d)
	}
	if usesField[d.Kind] && d.Inner != "" && d.Field == "" {
		d.Field = DefaultField
	}

	return d, nil
}
