package internalcheck

import (
	"fmt"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestNoUnsafeInPublicAPI verifies that no exported identifier of the public
// package exposes an unsafe.Pointer or uintptr in its signature or struct
// fields. Raw handles stay behind the boundary.
func TestNoUnsafeInPublicAPI(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, "github.com/Shuriken-Group/shuriken-go/pkg/shuriken")
	if err != nil {
		t.Fatalf("load package: %v", err)
	}

	var findings []string

	for _, pkg := range pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}
			if mentionsUnsafe(obj.Type(), make(map[types.Type]bool)) {
				findings = append(findings, fmt.Sprintf("%s exposes a raw pointer type", obj.Id()))
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("raw pointer leak:\n%s", strings.Join(findings, "\n"))
	}
}

func mentionsUnsafe(typ types.Type, seen map[types.Type]bool) bool {
	if typ == nil || seen[typ] {
		return false
	}
	seen[typ] = true

	switch tt := typ.(type) {
	case *types.Basic:
		return tt.Kind() == types.UnsafePointer || tt.Kind() == types.Uintptr
	case *types.Pointer:
		return mentionsUnsafe(tt.Elem(), seen)
	case *types.Slice:
		return mentionsUnsafe(tt.Elem(), seen)
	case *types.Array:
		return mentionsUnsafe(tt.Elem(), seen)
	case *types.Map:
		return mentionsUnsafe(tt.Key(), seen) || mentionsUnsafe(tt.Elem(), seen)
	case *types.Named:
		for i := 0; i < tt.NumMethods(); i++ {
			m := tt.Method(i)
			if m.Exported() && mentionsUnsafe(m.Type(), seen) {
				return true
			}
		}
		return mentionsUnsafe(tt.Underlying(), seen)
	case *types.Struct:
		for i := 0; i < tt.NumFields(); i++ {
			f := tt.Field(i)
			if f.Exported() && mentionsUnsafe(f.Type(), seen) {
				return true
			}
		}
		return false
	case *types.Signature:
		if tt.Recv() != nil && mentionsUnsafe(tt.Recv().Type(), seen) {
			return true
		}
		for i := 0; i < tt.Params().Len(); i++ {
			if mentionsUnsafe(tt.Params().At(i).Type(), seen) {
				return true
			}
		}
		for i := 0; i < tt.Results().Len(); i++ {
			if mentionsUnsafe(tt.Results().At(i).Type(), seen) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
