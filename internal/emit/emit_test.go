package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varphone/pavo-traits/internal/directive"
	"github.com/varphone/pavo-traits/internal/scan"
)

const demoPkg = "example.com/demo"

func render(t *testing.T, decls ...scan.Decl) string {
	t.Helper()
	src, err := File(&scan.Package{PkgPath: demoPkg, Name: "demo", Decls: decls})
	require.NoError(t, err)
	return string(src)
}

func TestFileEmpty(t *testing.T) {
	src, err := File(&scan.Package{PkgPath: demoPkg, Name: "demo"})
	require.NoError(t, err)
	assert.Nil(t, src)
}

func TestEmitWrapper(t *testing.T) {
	src := render(t, scan.Decl{
		Directive: directive.Decl{Kind: directive.KindWrapper},
		Wrapper:   "Data",
		Inner:     scan.TypeRef{PkgPath: "example.com/demo/ffi", Name: "DATA_S"},
		Field:     "inner",
	})

	assert.Contains(t, src, Header)
	assert.Contains(t, src, `ffi "example.com/demo/ffi"`)
	assert.Contains(t, src, "func (w *Data) Ref() *ffi.DATA_S {")
	assert.Contains(t, src, "return &w.inner")
	assert.Contains(t, src, "func (w *Data) AsPtr() unsafe.Pointer {")
	assert.Contains(t, src, "return pavo.Addr[ffi.DATA_S](w)")
	assert.Contains(t, src, "func (w *Data) AsPtrMut() unsafe.Pointer {")
	assert.Contains(t, src, "return pavo.AddrMut[ffi.DATA_S](w)")
	assert.Contains(t, src, "func DataFromInner(v ffi.DATA_S) Data {")
	assert.Contains(t, src, "Data{inner: v}")
	assert.Contains(t, src, "func (w Data) IntoInner() ffi.DATA_S {")
	assert.Contains(t, src, "func (w *Data) Inner() *ffi.DATA_S {")
}

func TestEmitEnum(t *testing.T) {
	src := render(t, scan.Decl{
		Directive:  directive.Decl{Kind: directive.KindEnum},
		Wrapper:    "Mode",
		Inner:      scan.TypeRef{PkgPath: "example.com/demo/ffi", Name: "MODE_E"},
		EnumConsts: []string{"ModeA", "ModeB", "ModeC"},
	})

	assert.Contains(t, src, "func ModeFromInner(v ffi.MODE_E) Mode {")
	assert.Contains(t, src, "return Mode(v)")
	assert.Contains(t, src, "func ModeFromInnerChecked(v ffi.MODE_E) (Mode, error) {")
	assert.Contains(t, src, "case ModeA, ModeB, ModeC:")
	assert.Contains(t, src, `fmt.Errorf("invalid Mode value %d", v)`)
	assert.Contains(t, src, "func (w Mode) IntoInner() ffi.MODE_E {")
	assert.Contains(t, src, "return ffi.MODE_E(w)")
	assert.Contains(t, src, "func (w Mode) Inner() ffi.MODE_E {")
}

func TestEmitOwnIdentityBundle(t *testing.T) {
	src := render(t, scan.Decl{
		Directive:   directive.Decl{Kind: directive.KindBundle},
		Wrapper:     "Token",
		Inner:       scan.TypeRef{PkgPath: demoPkg, Name: "Token"},
		OwnIdentity: true,
	})

	assert.Contains(t, src, "func (w *Token) Ref() *Token {")
	assert.Contains(t, src, "return w\n")
	assert.Contains(t, src, "return pavo.Addr[Token](w)")
	assert.Contains(t, src, "return pavo.AddrMut[Token](w)")
	assert.NotContains(t, src, "IntoInner", "bundle must not derive conversions")
}

func TestEmitSingleCapabilities(t *testing.T) {
	ref := scan.Decl{
		Directive: directive.Decl{Kind: directive.KindRef},
		Wrapper:   "Box",
		Inner:     scan.TypeRef{PkgPath: demoPkg, Name: "Payload"},
		Field:     "payload",
	}
	ptr := ref
	ptr.Directive.Kind = directive.KindPtr
	ptr.Field = ""
	cp := ref
	cp.Directive.Kind = directive.KindCopy

	src := render(t, ref, ptr, cp)

	assert.Contains(t, src, "func (w *Box) Ref() *Payload {")
	assert.Contains(t, src, "return &w.payload")
	assert.Contains(t, src, "return pavo.Addr[Payload](w)")
	assert.Contains(t, src, "func (w *Box) Inner() Payload {")
	assert.Contains(t, src, "return w.payload")
	assert.NotContains(t, src, "AsPtrMut")

	// Same-package target must not be import-qualified.
	assert.NotContains(t, src, "demo.Payload")
}
