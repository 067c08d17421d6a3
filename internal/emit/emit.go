// Package emit renders the capability attachments a scanned package
// declared into Go source. Every derived method delegates address
// computation to pkg/pavo helpers, so the file is boilerplate only and
// cannot diverge from the declaration it came from.
package emit

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/varphone/pavo-traits/internal/directive"
	"github.com/varphone/pavo-traits/internal/scan"
)

// Header marks generated files. Tools (and the unsafe confinement check)
// recognize generated output by it.
const Header = "Code generated by pavogen. DO NOT EDIT."

const pavoPkg = "github.com/varphone/pavo-traits/pkg/pavo"

// File renders the generated source for one package. Packages without
// declarations yield no file.
func File(pkg *scan.Package) ([]byte, error) {
	if len(pkg.Decls) == 0 {
		return nil, nil
	}

	f := jen.NewFilePathName(pkg.PkgPath, pkg.Name)
	f.HeaderComment(Header)

	for _, rd := range pkg.Decls {
		emitDecl(f, pkg.PkgPath, rd)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", pkg.PkgPath, err)
	}
	return buf.Bytes(), nil
}

func emitDecl(f *jen.File, pkgPath string, rd scan.Decl) {
	switch rd.Directive.Kind {
	case directive.KindRef:
		emitRef(f, pkgPath, rd)
	case directive.KindPtr:
		emitPtr(f, pkgPath, rd)
	case directive.KindPtrMut:
		emitPtrMut(f, pkgPath, rd)
	case directive.KindCopy:
		emitInnerCopy(f, pkgPath, rd)
	case directive.KindInnerRef:
		emitInnerRef(f, pkgPath, rd)
	case directive.KindConvert:
		emitConvert(f, pkgPath, rd)
	case directive.KindBundle:
		emitRef(f, pkgPath, rd)
		emitPtr(f, pkgPath, rd)
		emitPtrMut(f, pkgPath, rd)
	case directive.KindWrapper:
		emitRef(f, pkgPath, rd)
		emitPtr(f, pkgPath, rd)
		emitPtrMut(f, pkgPath, rd)
		emitConvert(f, pkgPath, rd)
		emitInnerRef(f, pkgPath, rd)
	case directive.KindEnum:
		emitEnum(f, pkgPath, rd)
	}
}

// inner renders a reference to the declaration's target type, qualified
// when it lives in another package.
func inner(pkgPath string, rd scan.Decl) *jen.Statement {
	if rd.Inner.PkgPath == pkgPath {
		return jen.Id(rd.Inner.Name)
	}
	return jen.Qual(rd.Inner.PkgPath, rd.Inner.Name)
}

func recv(rd scan.Decl) *jen.Statement {
	return jen.Id("w").Op("*").Id(rd.Wrapper)
}

func emitRef(f *jen.File, pkgPath string, rd scan.Decl) {
	if rd.OwnIdentity {
		f.Comment("Ref returns w itself as the viewed value.")
		f.Func().Params(recv(rd)).Id("Ref").Params().Op("*").Id(rd.Wrapper).Block(
			jen.Return(jen.Id("w")),
		)
		return
	}
	f.Comment(fmt.Sprintf("Ref returns the %s view held in w.%s.", rd.Inner.Name, rd.Field))
	f.Func().Params(recv(rd)).Id("Ref").Params().Op("*").Add(inner(pkgPath, rd)).Block(
		jen.Return(jen.Op("&").Id("w").Dot(rd.Field)),
	)
}

func emitPtr(f *jen.File, pkgPath string, rd scan.Decl) {
	f.Comment(fmt.Sprintf("AsPtr returns the raw read-only address of the viewed %s.", rd.Inner.Name))
	f.Func().Params(recv(rd)).Id("AsPtr").Params().Qual("unsafe", "Pointer").Block(
		jen.Return(jen.Qual(pavoPkg, "Addr").Index(inner(pkgPath, rd)).Call(jen.Id("w"))),
	)
}

func emitPtrMut(f *jen.File, pkgPath string, rd scan.Decl) {
	f.Comment(fmt.Sprintf("AsPtrMut returns the writable address of the viewed %s. The caller", rd.Inner.Name))
	f.Comment("must hold the memory exclusively while writing through it.")
	f.Func().Params(recv(rd)).Id("AsPtrMut").Params().Qual("unsafe", "Pointer").Block(
		jen.Return(jen.Qual(pavoPkg, "AddrMut").Index(inner(pkgPath, rd)).Call(jen.Id("w"))),
	)
}

func emitInnerCopy(f *jen.File, pkgPath string, rd scan.Decl) {
	f.Comment(fmt.Sprintf("Inner returns a copy of the wrapped %s.", rd.Inner.Name))
	f.Func().Params(recv(rd)).Id("Inner").Params().Add(inner(pkgPath, rd)).Block(
		jen.Return(jen.Id("w").Dot(rd.Field)),
	)
}

func emitInnerRef(f *jen.File, pkgPath string, rd scan.Decl) {
	f.Comment(fmt.Sprintf("Inner returns the wrapped %s.", rd.Inner.Name))
	f.Func().Params(recv(rd)).Id("Inner").Params().Op("*").Add(inner(pkgPath, rd)).Block(
		jen.Return(jen.Op("&").Id("w").Dot(rd.Field)),
	)
}

func emitConvert(f *jen.File, pkgPath string, rd scan.Decl) {
	f.Comment(fmt.Sprintf("%sFromInner constructs a %s owning v.", rd.Wrapper, rd.Wrapper))
	f.Func().Id(rd.Wrapper+"FromInner").Params(jen.Id("v").Add(inner(pkgPath, rd))).Id(rd.Wrapper).Block(
		jen.Return(jen.Id(rd.Wrapper).Values(jen.Id(rd.Field).Op(":").Id("v"))),
	)

	f.Comment(fmt.Sprintf("IntoInner consumes w and yields the wrapped %s.", rd.Inner.Name))
	f.Func().Params(jen.Id("w").Id(rd.Wrapper)).Id("IntoInner").Params().Add(inner(pkgPath, rd)).Block(
		jen.Return(jen.Id("w").Dot(rd.Field)),
	)
}

func emitEnum(f *jen.File, pkgPath string, rd scan.Decl) {
	in := inner(pkgPath, rd)

	f.Comment(fmt.Sprintf("%sFromInner converts the %s ordinal without validation.", rd.Wrapper, rd.Inner.Name))
	f.Func().Id(rd.Wrapper+"FromInner").Params(jen.Id("v").Add(in.Clone())).Id(rd.Wrapper).Block(
		jen.Return(jen.Id(rd.Wrapper).Call(jen.Id("v"))),
	)

	cases := make([]jen.Code, len(rd.EnumConsts))
	for i, name := range rd.EnumConsts {
		cases[i] = jen.Id(name)
	}
	f.Comment(fmt.Sprintf("%sFromInnerChecked converts the %s ordinal, rejecting values outside", rd.Wrapper, rd.Inner.Name))
	f.Comment(fmt.Sprintf("the declared %s constants.", rd.Wrapper))
	f.Func().Id(rd.Wrapper+"FromInnerChecked").Params(jen.Id("v").Add(in.Clone())).Params(jen.Id(rd.Wrapper), jen.Error()).Block(
		jen.Switch(jen.Id(rd.Wrapper).Call(jen.Id("v"))).Block(
			jen.Case(cases...).Block(
				jen.Return(jen.Id(rd.Wrapper).Call(jen.Id("v")), jen.Nil()),
			),
		),
		jen.Return(jen.Lit(0), jen.Qual("fmt", "Errorf").Call(
			jen.Lit(fmt.Sprintf("invalid %s value %%d", rd.Wrapper)), jen.Id("v"),
		)),
	)

	f.Comment(fmt.Sprintf("IntoInner converts w back to its %s ordinal.", rd.Inner.Name))
	f.Func().Params(jen.Id("w").Id(rd.Wrapper)).Id("IntoInner").Params().Add(in.Clone()).Block(
		jen.Return(in.Clone().Call(jen.Id("w"))),
	)

	f.Comment(fmt.Sprintf("Inner returns the %s ordinal of w.", rd.Inner.Name))
	f.Func().Params(jen.Id("w").Id(rd.Wrapper)).Id("Inner").Params().Add(in.Clone()).Block(
		jen.Return(in.Clone().Call(jen.Id("w"))),
	)
}
