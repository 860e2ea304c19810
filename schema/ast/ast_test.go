// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ast_test

import (
	"testing"

	"github.com/sszlab/ssz/schema/ast"
	"github.com/sszlab/ssz/schema/lexer"
)

func parseSrc(t *testing.T, src string) *ast.Module {
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

func TestParseImport(t *testing.T) {
	mod := parseSrc(t, "import foo.bar as fb\n")

	if len(mod.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(mod.Imports))
	}
	imp := mod.Imports[0]
	wantPath := []string{"foo", "bar"}
	if len(imp.Path) != len(wantPath) {
		t.Fatalf("path mismatch: got %v, want %v", imp.Path, wantPath)
	}
	for i := range wantPath {
		if imp.Path[i] != wantPath[i] {
			t.Fatalf("path[%d] mismatch: got %q, want %q", i, imp.Path[i], wantPath[i])
		}
	}
	if imp.Alias != "fb" {
		t.Fatalf("alias mismatch: got %q, want %q", imp.Alias, "fb")
	}
}

func TestParseImportDefaultAlias(t *testing.T) {
	mod := parseSrc(t, "import foo.bar\n")

	if len(mod.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(mod.Imports))
	}
	if mod.Imports[0].Alias != "bar" {
		t.Fatalf("default alias mismatch: got %q, want %q", mod.Imports[0].Alias, "bar")
	}
}

func TestParseConstIntLiteral(t *testing.T) {
	mod := parseSrc(t, "MAX = 1024\n")

	if len(mod.Consts) != 1 {
		t.Fatalf("expected 1 const, got %d", len(mod.Consts))
	}
	cst := mod.Consts[0]
	if cst.Name != "MAX" {
		t.Fatalf("name mismatch: got %q", cst.Name)
	}
	lit, ok := cst.Expr.(ast.IntLit)
	if !ok {
		t.Fatalf("expected IntLit, got %T", cst.Expr)
	}
	if lit.Value != 1024 {
		t.Fatalf("value mismatch: got %d, want 1024", lit.Value)
	}
}

func TestParseConstShiftExpr(t *testing.T) {
	mod := parseSrc(t, "MAX = 1 << 10\n")

	cst := mod.Consts[0]
	op, ok := cst.Expr.(ast.BinOp)
	if !ok {
		t.Fatalf("expected BinOp, got %T", cst.Expr)
	}
	if op.Op != "<<" {
		t.Fatalf("op mismatch: got %q", op.Op)
	}
	a, ok := op.A.(ast.IntLit)
	if !ok || a.Value != 1 {
		t.Fatalf("left operand mismatch: got %#v", op.A)
	}
	b, ok := op.B.(ast.IntLit)
	if !ok || b.Value != 10 {
		t.Fatalf("right operand mismatch: got %#v", op.B)
	}
}

func TestParseConstSymbolicBinOp(t *testing.T) {
	mod := parseSrc(t, "MAX = OTHER + 1\n")

	cst := mod.Consts[0]
	op, ok := cst.Expr.(ast.SymBinOp)
	if !ok {
		t.Fatalf("expected SymBinOp, got %T", cst.Expr)
	}
	if op.Name != "OTHER" || op.Op != "+" || op.Delta != 1 {
		t.Fatalf("sym binop mismatch: got %#v", op)
	}
}

// L = List[uint8, MAX] is a type alias, not a constant: the RHS is an
// Ident (List) immediately followed by a bracket group, not a Plus/Minus,
// so parseDeclExpr must route it through parseTypeExpr.
func TestParseConstTypeAliasAmbiguity(t *testing.T) {
	mod := parseSrc(t, "L = List[uint8, MAX]\n")

	if len(mod.Consts) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(mod.Consts))
	}
	cst := mod.Consts[0]
	app, ok := cst.Expr.(ast.ApplyExpr)
	if !ok {
		t.Fatalf("expected ApplyExpr, got %T", cst.Expr)
	}
	base, ok := app.Base.(ast.NameExpr)
	if !ok || base.Name != "List" {
		t.Fatalf("base mismatch: got %#v", app.Base)
	}
	if len(app.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(app.Args))
	}
	elemTy, ok := app.Args[0].Type.(ast.NameExpr)
	if !ok || elemTy.Name != "uint8" {
		t.Fatalf("first arg mismatch: got %#v", app.Args[0])
	}
	if app.Args[1].Type == nil {
		t.Fatalf("expected second arg to be a type-shaped ConstRef, got %#v", app.Args[1])
	}
	maxTy, ok := app.Args[1].Type.(ast.NameExpr)
	if !ok || maxTy.Name != "MAX" {
		t.Fatalf("second arg mismatch: got %#v", app.Args[1])
	}
}

func TestParseClassWithFields(t *testing.T) {
	src := "class Foo(Container):\n  a: uint32\n  b: List[uint8, 8]\n"
	mod := parseSrc(t, src)

	if len(mod.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(mod.Classes))
	}
	cls := mod.Classes[0]
	if cls.Name != "Foo" {
		t.Fatalf("class name mismatch: got %q", cls.Name)
	}
	parent, ok := cls.Parent.(ast.NameExpr)
	if !ok || parent.Name != "Container" {
		t.Fatalf("parent mismatch: got %#v", cls.Parent)
	}
	if len(cls.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(cls.Fields))
	}

	fa := cls.Fields[0]
	if fa.Name != "a" || fa.UnitOnly {
		t.Fatalf("field a mismatch: got %#v", fa)
	}
	aTy, ok := fa.Type.(ast.NameExpr)
	if !ok || aTy.Name != "uint32" {
		t.Fatalf("field a type mismatch: got %#v", fa.Type)
	}

	fb := cls.Fields[1]
	bTy, ok := fb.Type.(ast.ApplyExpr)
	if !ok {
		t.Fatalf("field b type mismatch: got %#v", fb.Type)
	}
	bBase, ok := bTy.Base.(ast.NameExpr)
	if !ok || bBase.Name != "List" {
		t.Fatalf("field b base mismatch: got %#v", bTy.Base)
	}
	if len(bTy.Args) != 2 {
		t.Fatalf("expected 2 args for List, got %d", len(bTy.Args))
	}
	nArg, ok := bTy.Args[1].Const.(ast.IntLit)
	if !ok || nArg.Value != 8 {
		t.Fatalf("List N arg mismatch: got %#v", bTy.Args[1])
	}
}

// A union-shaped class has bare unit-variant field lines (no ": TYPE").
func TestParseClassUnitVariants(t *testing.T) {
	src := "class Sum(Union):\n  none\n  value: uint16\n"
	mod := parseSrc(t, src)

	cls := mod.Classes[0]
	if len(cls.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(cls.Fields))
	}
	if !cls.Fields[0].UnitOnly || cls.Fields[0].Type != nil {
		t.Fatalf("expected first field to be unit-only, got %#v", cls.Fields[0])
	}
	if cls.Fields[0].Name != "none" {
		t.Fatalf("first field name mismatch: got %q", cls.Fields[0].Name)
	}
	if cls.Fields[1].UnitOnly {
		t.Fatalf("expected second field to carry a type")
	}
}

func TestParseClassDocCommentAndPragma(t *testing.T) {
	src := "### a root container\n#~# derives=Eq\nclass Foo(Container):\n  a: uint32\n"
	mod := parseSrc(t, src)

	cls := mod.Classes[0]
	if cls.Doc != "a root container" {
		t.Fatalf("doc mismatch: got %q", cls.Doc)
	}
	if len(cls.Pragmas) != 1 || cls.Pragmas[0] != " derives=Eq" {
		t.Fatalf("pragma mismatch: got %#v", cls.Pragmas)
	}
}

func TestParseQualifiedTypeExpr(t *testing.T) {
	src := "class Foo(Container):\n  a: other.Thing\n"
	mod := parseSrc(t, src)

	fa := mod.Classes[0].Fields[0]
	q, ok := fa.Type.(ast.QualifiedExpr)
	if !ok || q.Module != "other" || q.Name != "Thing" {
		t.Fatalf("qualified type mismatch: got %#v", fa.Type)
	}
}
