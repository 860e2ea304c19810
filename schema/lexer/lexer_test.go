// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package lexer_test

import (
	"testing"

	"github.com/sszlab/ssz/schema/lexer"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []lexer.Kind, want []lexer.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d mismatch: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeClassBody(t *testing.T) {
	src := "class Foo(Container):\n  a: uint32\n  b: List[uint8, 8]\n"

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []lexer.Kind{
		lexer.Class, lexer.Ident, lexer.LParen, lexer.Ident, lexer.RParen, lexer.Colon, lexer.Newline,
		lexer.Indent,
		lexer.Ident, lexer.Colon, lexer.Ident, lexer.Newline,
		lexer.Ident, lexer.Colon, lexer.Ident, lexer.LBracket, lexer.Ident, lexer.Comma, lexer.Int, lexer.RBracket, lexer.Newline,
		lexer.Dedent,
		lexer.EOF,
	}
	assertKinds(t, kinds(toks), want)
}

func TestTokenizeImportAndConst(t *testing.T) {
	src := "import foo.bar as fb\nMAX = 1 << 10\n"

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []lexer.Kind{
		lexer.Import, lexer.Ident, lexer.Dot, lexer.Ident, lexer.As, lexer.Ident, lexer.Newline,
		lexer.Ident, lexer.Equals, lexer.Int, lexer.Shl, lexer.Int, lexer.Newline,
		lexer.EOF,
	}
	assertKinds(t, kinds(toks), want)

	maxTok := toks[len(want)-3] // the "10" literal in "1 << 10"
	if maxTok.Int != 10 {
		t.Fatalf("int literal mismatch: got %d, want 10", maxTok.Int)
	}
}

func TestDocCommentMerging(t *testing.T) {
	src := "### first line\n### second line\nclass Foo(Container):\n  a: uint32\n"

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Kind != lexer.DocComment {
		t.Fatalf("expected leading DocComment, got %s", toks[0].Kind)
	}
	want := "first line\nsecond line"
	if toks[0].Text != want {
		t.Fatalf("doc comment mismatch: got %q, want %q", toks[0].Text, want)
	}
}

func TestPragmaPreservedVerbatimPerLine(t *testing.T) {
	src := "#~# external_kind=primitive\n#~# derives=Eq\nclass Foo(Container):\n  a: uint32\n"

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Kind != lexer.Pragma || toks[2].Kind != lexer.Pragma {
		t.Fatalf("expected two Pragma tokens, got %s and %s", toks[0].Kind, toks[2].Kind)
	}
	if toks[0].Text != " external_kind=primitive" {
		t.Fatalf("pragma text mismatch: got %q", toks[0].Text)
	}
}

func TestUnterminatedDocstringIsError(t *testing.T) {
	src := "class Foo(Container):\n  \"\"\"unterminated\n  a: uint32\n"

	if _, err := lexer.Tokenize(src); err == nil {
		t.Fatalf("expected error for unterminated docstring")
	}
}

func TestInconsistentIndentIsError(t *testing.T) {
	src := "class Foo(Container):\n  a: uint32\n   b: uint32\n"

	if _, err := lexer.Tokenize(src); err == nil {
		t.Fatalf("expected error for inconsistent indentation")
	}
}

func TestTreeGroupsBracketsAndBlocks(t *testing.T) {
	src := "class Foo(Container):\n  a: List[uint8, 8]\n"

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	nodes, err := lexer.Tree(toks)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}

	// class Foo ( Container ) : NEWLINE BLOCK(a : List [...] NEWLINE) EOF-implicit
	var sawBlock, sawBracket bool
	var walk func(ns []lexer.Node)
	walk = func(ns []lexer.Node) {
		for _, n := range ns {
			switch n.Kind {
			case lexer.NodeBlock:
				sawBlock = true
				walk(n.Children)
			case lexer.NodeBracket:
				sawBracket = true
				walk(n.Children)
			}
		}
	}
	walk(nodes)
	if !sawBlock {
		t.Fatalf("expected an indent block in the tree")
	}
	if !sawBracket {
		t.Fatalf("expected a bracket group in the tree")
	}
}
