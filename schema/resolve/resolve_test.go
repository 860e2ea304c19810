// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package resolve_test

import (
	"errors"
	"testing"

	"github.com/sszlab/ssz/schema/ast"
	"github.com/sszlab/ssz/schema/lexer"
	"github.com/sszlab/ssz/schema/resolve"
)

// stubLoader treats every import path as external, never actually parsing
// anything; sufficient for tests that don't exercise cross-module schema
// resolution.
type stubLoader struct{}

func (stubLoader) Load(path []string) (*ast.Module, error) { return nil, errors.New("not found") }
func (stubLoader) IsExternal(path []string) bool            { return true }

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	nodes, err := lexer.Tree(toks)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	mod, err := ast.Parse(nodes)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return mod
}

// resolveOne parses and resolves a single-module source, returning the
// module's resolved classes by name.
func resolveOne(t *testing.T, src string) (map[string]*resolve.ResolvedClass, error) {
	t.Helper()
	mod := parseModule(t, src)
	scope := resolve.NewScope(resolve.NewModuleManager(stubLoader{}))

	for _, c := range mod.Consts {
		value, isConst, ty, err := scope.ResolveDecl(c.Expr)
		if err != nil {
			return nil, err
		}
		if isConst {
			if err := scope.DeclConst(c.Name, value); err != nil {
				return nil, err
			}
		} else {
			if err := scope.DeclTypeAlias(c.Name, ty); err != nil {
				return nil, err
			}
		}
	}
	for _, cls := range mod.Classes {
		if err := scope.DeclUserType(cls.Name); err != nil {
			return nil, err
		}
	}

	out := make(map[string]*resolve.ResolvedClass, len(mod.Classes))
	for _, cls := range mod.Classes {
		rc, err := resolve.ResolveClass(scope, cls)
		if err != nil {
			return nil, err
		}
		out[cls.Name] = rc
	}
	for _, cls := range mod.Classes {
		rc := out[cls.Name]
		if rc.Kind != resolve.KindProfile {
			continue
		}
		baseName, ok := rc.Parent.(resolve.SimpleTy)
		if !ok {
			return nil, resolve.ErrProfileBaseNotStableContainer
		}
		base, ok := out[baseName.Name]
		if !ok || base.Kind != resolve.KindStableContainer {
			return nil, resolve.ErrProfileBaseNotStableContainer
		}
		if err := resolve.ValidateProfileAgainstBase(rc, base); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func TestResolveContainerWithListField(t *testing.T) {
	classes, err := resolveOne(t, "class Foo(Container):\n  a: uint32\n  b: List[uint8, 8]\n")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	foo := classes["Foo"]
	if foo.Kind != resolve.KindContainer {
		t.Fatalf("expected Container kind")
	}
	if len(foo.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(foo.Fields))
	}
	listTy, ok := foo.Fields[1].Type.(resolve.ComplexTy)
	if !ok || listTy.Name != "List" || len(listTy.Args) != 2 {
		t.Fatalf("field b type mismatch: got %#v", foo.Fields[1].Type)
	}
	if n, ok := listTy.Args[1].(resolve.ArgInt); !ok || n.Value != 8 {
		t.Fatalf("List N mismatch: got %#v", listTy.Args[1])
	}
}

func TestResolveConstUsedAsListLength(t *testing.T) {
	classes, err := resolveOne(t, "MAX = 1 << 10\nclass Foo(Container):\n  a: List[uint8, MAX]\n")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	listTy := classes["Foo"].Fields[0].Type.(resolve.ComplexTy)
	ref, ok := listTy.Args[1].(resolve.ArgConstRef)
	if !ok || ref.Name != "MAX" || ref.Value != 1024 {
		t.Fatalf("const ref mismatch: got %#v", listTy.Args[1])
	}
}

func TestStableContainerRejectsNonOptionalField(t *testing.T) {
	_, err := resolveOne(t, "class SC(StableContainer[4]):\n  a: uint32\n")
	if !errors.Is(err, resolve.ErrNonOptionalInStableContainer) {
		t.Fatalf("expected ErrNonOptionalInStableContainer, got %v", err)
	}
}

func TestStableContainerAcceptsOptionalFields(t *testing.T) {
	classes, err := resolveOne(t, "class SC(StableContainer[4]):\n  a: Optional[uint32]\n  b: Optional[uint8]\n")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	sc := classes["SC"]
	if sc.Kind != resolve.KindStableContainer || sc.MaxN != 4 {
		t.Fatalf("unexpected stable container shape: %#v", sc)
	}
	if !sc.Fields[0].Optional || !sc.Fields[1].Optional {
		t.Fatalf("expected both fields Optional")
	}
}

func TestContainerRejectsOptionalField(t *testing.T) {
	_, err := resolveOne(t, "class Foo(Container):\n  a: Optional[uint32]\n")
	if !errors.Is(err, resolve.ErrOptionalInContainer) {
		t.Fatalf("expected ErrOptionalInContainer, got %v", err)
	}
}

func TestProfileInheritsAndChecksOrder(t *testing.T) {
	src := "class SC(StableContainer[4]):\n  a: Optional[uint32]\n  b: Optional[uint8]\n\nclass P(Profile[SC]):\n  a: uint32\n"
	classes, err := resolveOne(t, src)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	p := classes["P"]
	if p.Kind != resolve.KindProfile || p.MaxN != 4 {
		t.Fatalf("unexpected profile shape: %#v", p)
	}
}

func TestProfileRejectsFieldNotInBase(t *testing.T) {
	src := "class SC(StableContainer[4]):\n  a: Optional[uint32]\n\nclass P(Profile[SC]):\n  c: uint32\n"
	_, err := resolveOne(t, src)
	if !errors.Is(err, resolve.ErrProfileFieldNotInBase) {
		t.Fatalf("expected ErrProfileFieldNotInBase, got %v", err)
	}
}

func TestProfileRejectsOutOfOrderFields(t *testing.T) {
	src := "class SC(StableContainer[4]):\n  a: Optional[uint32]\n  b: Optional[uint8]\n\nclass P(Profile[SC]):\n  b: uint8\n  a: uint32\n"
	_, err := resolveOne(t, src)
	if !errors.Is(err, resolve.ErrProfileFieldOrderMismatch) {
		t.Fatalf("expected ErrProfileFieldOrderMismatch, got %v", err)
	}
}

func TestUnionClassAcceptsNoneFirst(t *testing.T) {
	classes, err := resolveOne(t, "class Sum(Union):\n  none\n  value: uint16\n")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if classes["Sum"].Kind != resolve.KindUnion {
		t.Fatalf("expected Union kind")
	}
}

func TestUnionClassRejectsNoneNotFirst(t *testing.T) {
	_, err := resolveOne(t, "class Sum(Union):\n  value: uint16\n  none\n")
	if !errors.Is(err, resolve.ErrNoneNotFirstVariant) {
		t.Fatalf("expected ErrNoneNotFirstVariant, got %v", err)
	}
}

func TestInlineUnionAsOptionalSugarAccepted(t *testing.T) {
	_, err := resolveOne(t, "class Foo(Container):\n  a: Union[null, uint16]\n")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
}

func TestInlineUnionRejectsAnonymousMultiVariant(t *testing.T) {
	_, err := resolveOne(t, "class Foo(Container):\n  a: Union[uint8, uint16, uint32]\n")
	if !errors.Is(err, resolve.ErrAnonymousUnion) {
		t.Fatalf("expected ErrAnonymousUnion, got %v", err)
	}
}

func TestRedeclaredIdentifierRejected(t *testing.T) {
	_, err := resolveOne(t, "MAX = 10\nMAX = 20\n")
	if !errors.Is(err, resolve.ErrRedeclareIdentifier) {
		t.Fatalf("expected ErrRedeclareIdentifier, got %v", err)
	}
}

func TestUnknownIdentifierRejected(t *testing.T) {
	_, err := resolveOne(t, "class Foo(Container):\n  a: Nope\n")
	if !errors.Is(err, resolve.ErrUnknownIdent) {
		t.Fatalf("expected ErrUnknownIdent, got %v", err)
	}
}

// mapLoader resolves imports against an in-memory table of module path (the
// dotted/slash form schema imports use, joined with "/") to source text,
// parsing on demand; any path absent from the table is treated as external.
type mapLoader struct {
	sources map[string]string
}

func (l mapLoader) key(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}

func (l mapLoader) IsExternal(path []string) bool {
	_, ok := l.sources[l.key(path)]
	return !ok
}

func (l mapLoader) Load(path []string) (*ast.Module, error) {
	src, ok := l.sources[l.key(path)]
	if !ok {
		return nil, errors.New("not found")
	}
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	nodes, err := lexer.Tree(toks)
	if err != nil {
		return nil, err
	}
	return ast.Parse(nodes)
}

func TestQualifiedImportReference(t *testing.T) {
	loader := mapLoader{sources: map[string]string{
		"entry": "import other as ot\nclass Foo(Container):\n  a: ot.Thing\n",
		"other": "class Thing(Container):\n  x: uint8\n",
	}}
	mgr := resolve.NewModuleManager(loader)

	entryInfo, err := mgr.Resolve([]string{"entry"})
	if err != nil {
		t.Fatalf("resolve entry: %v", err)
	}

	foo, ok := entryInfo.Classes["Foo"]
	if !ok {
		t.Fatalf("expected entry module to resolve class %q", "Foo")
	}
	fieldTy, ok := foo.Fields[0].Type.(resolve.ImportedTy)
	if !ok || fieldTy.Name != "Thing" || fieldTy.ModulePath != "other" {
		t.Fatalf("field a type mismatch: got %#v", foo.Fields[0].Type)
	}

	otherInfo, ok := mgr.Get("other")
	if !ok {
		t.Fatalf("expected module %q to be resolved", "other")
	}
	if otherInfo.External {
		t.Fatalf("expected %q to resolve as a schema module, not external", "other")
	}
	if _, ok := otherInfo.Classes["Thing"]; !ok {
		t.Fatalf("expected %q to export resolved class %q", "other", "Thing")
	}
}
