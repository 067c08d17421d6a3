// Package scan loads Go packages, finds //pavo:derive directives on their
// type declarations and validates them against the type information.
// Misuse is rejected here, at generation time, with a diagnostic naming
// the offending declaration; nothing is left for runtime.
package scan

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/varphone/pavo-traits/internal/directive"
)

// LoadMode is the package information the scanner asks the go tool for.
const LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedImports | packages.NeedDeps | packages.NeedTypes |
	packages.NeedSyntax | packages.NeedTypesInfo

// TypeRef identifies a named type for emission.
type TypeRef struct {
	PkgPath string
	Name    string
}

func (r TypeRef) String() string {
	if r.PkgPath == "" {
		return r.Name
	}
	return r.PkgPath + "." + r.Name
}

// Decl is one fully resolved derivation declaration.
type Decl struct {
	Directive   directive.Decl
	Wrapper     string  // wrapper type name, declared in the scanned package
	Inner       TypeRef // target type; equals the wrapper for own identity
	Field       string  // wrapper field holding the inner value, if any
	OwnIdentity bool
	EnumConsts  []string // declared constants of an enum wrapper, declaration order
}

// Package is one scanned package together with its resolved declarations,
// in source order. Packages without directives are returned with an empty
// declaration list so callers can skip them.
type Package struct {
	PkgPath string
	Name    string
	Dir     string
	Decls   []Decl
}

// Diagnostic reports one generation-time misuse: the source position, the
// offending declaration and what is wrong with it.
type Diagnostic struct {
	Pos  token.Position
	Decl string
	Msg  string
}

func (d Diagnostic) String() string {
	if d.Decl == "" {
		return fmt.Sprintf("%s: %s", d.Pos, d.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Decl, d.Msg)
}

// Diagnostics collects every misuse found in a run. All of them are
// reported together rather than stopping at the first.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Load loads the packages matching patterns relative to dir and scans them.
// The returned error is a Diagnostics value when directive misuse was
// found, a plain error when loading itself failed.
func Load(dir string, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{Mode: LoadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var loadErrs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	}
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("load packages:\n%s", strings.Join(loadErrs, "\n"))
	}

	var (
		out   []*Package
		diags Diagnostics
	)
	for _, pkg := range pkgs {
		sp, ds := scanPackage(pkg)
		diags = append(diags, ds...)
		out = append(out, sp)
	}
	if len(diags) > 0 {
		return out, diags
	}
	return out, nil
}

type scanner struct {
	pkg   *packages.Package
	diags Diagnostics
}

func (s *scanner) errorf(pos token.Position, decl, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{Pos: pos, Decl: decl, Msg: fmt.Sprintf(format, args...)})
}

func scanPackage(pkg *packages.Package) (*Package, Diagnostics) {
	s := &scanner{pkg: pkg}
	sp := &Package{PkgPath: pkg.PkgPath, Name: pkg.Name}
	if len(pkg.GoFiles) > 0 {
		sp.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	handled := map[token.Pos]bool{}
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				if doc == nil {
					continue
				}
				for _, c := range doc.List {
					if !directive.Is(c.Text) {
						continue
					}
					handled[c.Slash] = true
					pos := pkg.Fset.Position(c.Slash)
					d, err := directive.Parse(c.Text, pos)
					if err != nil {
						s.errorf(pos, "", "%v", stripPos(err, pos))
						continue
					}
					d.Wrapper = ts.Name.Name
					if rd, ok := s.resolve(d, file); ok {
						sp.Decls = append(sp.Decls, rd)
					}
				}
			}
		}

		// Directives that did not attach to a type declaration are misuse,
		// not comments to skip silently.
		for _, cg := range file.Comments {
			for _, c := range cg.List {
				if directive.Is(c.Text) && !handled[c.Slash] {
					pos := pkg.Fset.Position(c.Slash)
					s.errorf(pos, strings.TrimPrefix(c.Text, "//"),
						"directive is not attached to a type declaration")
				}
			}
		}
	}

	s.checkMethodSets(sp.Decls)
	return sp, s.diags
}

// stripPos drops the leading position the parser already embeds so the
// diagnostic does not repeat it.
func stripPos(err error, pos token.Position) string {
	return strings.TrimPrefix(strings.TrimPrefix(err.Error(), pos.String()), ": ")
}

// resolve turns a parsed directive into a resolved declaration, reporting
// every violated constraint as a diagnostic.
func (s *scanner) resolve(d directive.Decl, file *ast.File) (Decl, bool) {
	obj := s.pkg.Types.Scope().Lookup(d.Wrapper)
	if obj == nil {
		s.errorf(d.Pos, d.String(), "type %s is not declared at package scope", d.Wrapper)
		return Decl{}, false
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		s.errorf(d.Pos, d.String(), "%s is not a type", d.Wrapper)
		return Decl{}, false
	}
	wrapperType := tn.Type()

	rd := Decl{Directive: d, Wrapper: d.Wrapper, Field: d.Field}

	var innerType types.Type
	if d.Inner == "" {
		rd.OwnIdentity = true
		rd.Inner = TypeRef{PkgPath: s.pkg.PkgPath, Name: d.Wrapper}
		innerType = wrapperType
	} else {
		t, ref, ok := s.lookupType(file, d)
		if !ok {
			return Decl{}, false
		}
		innerType = t
		rd.Inner = ref
	}

	switch {
	case d.Field != "":
		if !s.checkField(d, wrapperType, innerType) {
			return Decl{}, false
		}
	case d.Kind == directive.KindEnum:
		if !s.checkEnum(d, wrapperType, innerType) {
			return Decl{}, false
		}
		rd.EnumConsts = s.enumConsts(wrapperType)
		if len(rd.EnumConsts) == 0 {
			s.errorf(d.Pos, d.String(), "enum wrapper %s declares no constants of its own type", d.Wrapper)
			return Decl{}, false
		}
	}

	return rd, true
}

// lookupType resolves the directive's inner type expression through the
// file's imports (for package-qualified names) or the package scope.
func (s *scanner) lookupType(file *ast.File, d directive.Decl) (types.Type, TypeRef, bool) {
	expr := d.Inner
	if pkgName, typeName, qualified := strings.Cut(expr, "."); qualified {
		for _, imp := range file.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			dep := s.pkg.Imports[path]
			if dep == nil {
				continue
			}
			local := dep.Name
			if imp.Name != nil {
				local = imp.Name.Name
			}
			if local != pkgName {
				continue
			}
			obj := dep.Types.Scope().Lookup(typeName)
			if obj == nil {
				s.errorf(d.Pos, d.String(), "type %s not found in package %s", typeName, path)
				return nil, TypeRef{}, false
			}
			tn, ok := obj.(*types.TypeName)
			if !ok {
				s.errorf(d.Pos, d.String(), "%s.%s is not a type", pkgName, typeName)
				return nil, TypeRef{}, false
			}
			return tn.Type(), TypeRef{PkgPath: path, Name: typeName}, true
		}
		s.errorf(d.Pos, d.String(), "package %s is not imported by %s", pkgName, filepath.Base(s.pkg.Fset.Position(file.Pos()).Filename))
		return nil, TypeRef{}, false
	}

	obj := s.pkg.Types.Scope().Lookup(expr)
	if obj == nil {
		s.errorf(d.Pos, d.String(), "type %s is not declared at package scope", expr)
		return nil, TypeRef{}, false
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		s.errorf(d.Pos, d.String(), "%s is not a type", expr)
		return nil, TypeRef{}, false
	}
	return tn.Type(), TypeRef{PkgPath: s.pkg.PkgPath, Name: expr}, true
}

// checkField verifies the wrapper is a struct holding the inner type in
// the named field.
func (s *scanner) checkField(d directive.Decl, wrapper, inner types.Type) bool {
	st, ok := wrapper.Underlying().(*types.Struct)
	if !ok {
		s.errorf(d.Pos, d.String(), "wrapper %s is not a struct", d.Wrapper)
		return false
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Name() != d.Field {
			continue
		}
		if !types.Identical(f.Type(), inner) {
			s.errorf(d.Pos, d.String(), "field %s has type %s, want %s", d.Field, f.Type(), inner)
			return false
		}
		return true
	}
	s.errorf(d.Pos, d.String(), "wrapper %s has no field %s", d.Wrapper, d.Field)
	return false
}

// checkEnum verifies both sides are integer-based defined types with the
// same underlying kind, the precondition for a bit-identical conversion.
func (s *scanner) checkEnum(d directive.Decl, wrapper, inner types.Type) bool {
	wb, ok := wrapper.Underlying().(*types.Basic)
	if !ok || wb.Info()&types.IsInteger == 0 {
		s.errorf(d.Pos, d.String(), "enum wrapper %s must have an integer underlying type, has %s", d.Wrapper, wrapper.Underlying())
		return false
	}
	ib, ok := inner.Underlying().(*types.Basic)
	if !ok || ib.Info()&types.IsInteger == 0 {
		s.errorf(d.Pos, d.String(), "enum inner %s must have an integer underlying type, has %s", d.Inner, inner.Underlying())
		return false
	}
	if wb.Kind() != ib.Kind() {
		s.errorf(d.Pos, d.String(), "underlying types differ: %s is %s, %s is %s", d.Wrapper, wb, d.Inner, ib)
		return false
	}
	return true
}

// enumConsts collects the package-scope constants declared with the
// wrapper's type, in declaration order.
func (s *scanner) enumConsts(wrapper types.Type) []string {
	scope := s.pkg.Types.Scope()
	var consts []*types.Const
	for _, name := range scope.Names() {
		if c, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(c.Type(), wrapper) {
			consts = append(consts, c)
		}
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })

	names := make([]string, len(consts))
	for i, c := range consts {
		names[i] = c.Name()
	}
	return names
}

// Method-set groups a derivation contributes to. Go permits one method of
// a given name per type, so two declarations in the same group on the same
// wrapper cannot both be honored.
var methodGroups = map[directive.Kind][]string{
	directive.KindRef:      {"Ref"},
	directive.KindPtr:      {"AsPtr"},
	directive.KindPtrMut:   {"AsPtrMut"},
	directive.KindCopy:     {"Inner"},
	directive.KindInnerRef: {"Inner"},
	directive.KindConvert:  {"FromInner"},
	directive.KindBundle:   {"Ref", "AsPtr", "AsPtrMut"},
	directive.KindWrapper:  {"Ref", "AsPtr", "AsPtrMut", "Inner", "FromInner"},
	directive.KindEnum:     {"Inner", "FromInner"},
}

// providers of the capability a pointer derivation depends on.
func providesMethod(k directive.Kind, method string) bool {
	for _, m := range methodGroups[k] {
		if m == method {
			return true
		}
	}
	return false
}

// checkMethodSets rejects conflicting attachments on one wrapper and
// enforces the dependency chain: a ptr derivation needs borrow-access for
// the same target, a ptrmut derivation needs a pointer view.
func (s *scanner) checkMethodSets(decls []Decl) {
	type key struct {
		wrapper string
		method  string
	}
	first := map[key]Decl{}
	for _, rd := range decls {
		for _, m := range methodGroups[rd.Directive.Kind] {
			k := key{rd.Wrapper, m}
			if prev, ok := first[k]; ok {
				s.errorf(rd.Directive.Pos, rd.Directive.String(),
					"conflicts with %s at %s: both derive method %s for %s",
					prev.Directive, prev.Directive.Pos, m, rd.Wrapper)
				continue
			}
			first[k] = rd
		}
	}

	depends := func(rd Decl, method, want string) {
		for _, other := range decls {
			if other.Wrapper == rd.Wrapper && other.Inner == rd.Inner &&
				providesMethod(other.Directive.Kind, method) {
				return
			}
		}
		s.errorf(rd.Directive.Pos, rd.Directive.String(),
			"requires a %s derivation for %s over %s", want, rd.Wrapper, rd.Inner)
	}
	for _, rd := range decls {
		switch rd.Directive.Kind {
		case directive.KindPtr:
			depends(rd, "Ref", "ref")
		case directive.KindPtrMut:
			depends(rd, "AsPtr", "ptr")
		}
	}
}
