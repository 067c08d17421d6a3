package internalcheck

import (
	"fmt"
	"go/ast"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const module = "github.com/varphone/pavo-traits"

// allowedUnsafe lists the packages permitted to import unsafe directly:
// the capability package and the example's declared FFI boundary.
var allowedUnsafe = map[string]bool{
	module + "/pkg/pavo":             true,
	module + "/examples/ffidemo/ffi": true,
}

func TestUnsafeConfinement(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}

	pkgs, err := packages.Load(cfg, module+"/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var findings []string
	for _, pkg := range pkgs {
		if allowedUnsafe[pkg.PkgPath] {
			continue
		}
		for _, file := range pkg.Syntax {
			for _, imp := range file.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				if err != nil || path != "unsafe" {
					continue
				}
				if isGenerated(file) {
					continue
				}
				pos := pkg.Fset.Position(imp.Pos())
				findings = append(findings,
					fmt.Sprintf("%s: %s imports unsafe; use the pkg/pavo capabilities instead", pos, pkg.PkgPath))
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("unsafe confinement policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

// isGenerated reports whether the file carries the pavogen header. The
// derived AsPtr methods mention unsafe.Pointer in their signatures, so
// generated files are exempt.
func isGenerated(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.End() >= file.Package {
			break
		}
		if strings.Contains(cg.Text(), "Code generated by pavogen") {
			return true
		}
	}
	return false
}
