// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ast

import (
	"fmt"

	"github.com/sszlab/ssz/schema/lexer"
)

// Parse consumes a token tree (lexer.Tree's output) and produces a Module.
func Parse(nodes []lexer.Node) (*Module, error) {
	p := &parser{nodes: nodes}
	return p.parseModule()
}

type parser struct {
	nodes []lexer.Node
	pos   int

	pendingDoc     string
	havePendingDoc bool
	pendingPragmas []string
}

func (p *parser) done() bool { return p.pos >= len(p.nodes) }

func (p *parser) peek() lexer.Node {
	if p.done() {
		return lexer.Node{Kind: lexer.NodeLeaf, Leaf: lexer.Token{Kind: lexer.EOF}}
	}
	return p.nodes[p.pos]
}

func (p *parser) takeLeaf() (lexer.Token, bool) {
	n := p.peek()
	if n.Kind != lexer.NodeLeaf {
		return lexer.Token{}, false
	}
	p.pos++
	return n.Leaf, true
}

func (p *parser) expectLeafKind(k lexer.Kind) (lexer.Token, error) {
	n := p.peek()
	if n.Kind != lexer.NodeLeaf || n.Leaf.Kind != k {
		return lexer.Token{}, fmt.Errorf("%w: expected %s, got %v", ErrUnexpectedToken, k, n)
	}
	p.pos++
	return n.Leaf, nil
}

func (p *parser) skipNewlines() {
	for {
		n := p.peek()
		if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Newline {
			p.pos++
			continue
		}
		break
	}
}

func (p *parser) flushDanglingDoc() error {
	if p.havePendingDoc {
		return ErrStandaloneDocComment
	}
	return nil
}

func (p *parser) parseModule() (*Module, error) {
	mod := &Module{}
	for !p.done() {
		n := p.peek()
		if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Newline {
			p.pos++
			continue
		}
		if n.Kind != lexer.NodeLeaf {
			return nil, fmt.Errorf("%w: unexpected block at module level", ErrUnexpectedToken)
		}
		switch n.Leaf.Kind {
		case lexer.Comment:
			p.pos++
		case lexer.DocComment:
			if p.havePendingDoc {
				return nil, ErrStandaloneDocComment
			}
			p.pendingDoc = n.Leaf.Text
			p.havePendingDoc = true
			p.pos++
		case lexer.Pragma:
			p.pendingPragmas = append(p.pendingPragmas, n.Leaf.Text)
			p.pos++
		case lexer.Import:
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			mod.Imports = append(mod.Imports, imp)
		case lexer.Class:
			cls, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			mod.Classes = append(mod.Classes, cls)
		case lexer.Ident:
			cst, err := p.parseConstDecl()
			if err != nil {
				return nil, err
			}
			mod.Consts = append(mod.Consts, cst)
		case lexer.Docstring:
			return nil, ErrStandaloneDocstring
		default:
			return nil, fmt.Errorf("%w: %v at module level", ErrUnexpectedToken, n.Leaf)
		}
	}
	if err := p.flushDanglingDoc(); err != nil {
		return nil, err
	}
	return mod, nil
}

func (p *parser) takePragmas() []string {
	pragmas := p.pendingPragmas
	p.pendingPragmas = nil
	return pragmas
}

func (p *parser) takeDoc() string {
	doc := p.pendingDoc
	p.pendingDoc = ""
	p.havePendingDoc = false
	return doc
}

func (p *parser) parseImport() (*Import, error) {
	p.takePragmas()
	if _, err := p.expectLeafKind(lexer.Import); err != nil {
		return nil, err
	}
	imp := &Import{}
	for {
		tok, ok := p.takeLeaf()
		if !ok || (tok.Kind != lexer.Ident && tok.Kind != lexer.DotDot) {
			return nil, fmt.Errorf("%w: expected import path segment, got %v", ErrUnexpectedToken, tok)
		}
		if tok.Kind == lexer.DotDot {
			imp.Path = append(imp.Path, "..")
		} else {
			imp.Path = append(imp.Path, tok.Text)
		}
		if n := p.peek(); n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Dot {
			p.pos++
			continue
		}
		break
	}
	if len(imp.Path) == 0 {
		return nil, ErrEmptyImportPath
	}
	if n := p.peek(); n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.As {
		p.pos++
		alias, err := p.expectLeafKind(lexer.Ident)
		if err != nil {
			return nil, err
		}
		imp.Alias = alias.Text
	} else {
		imp.Alias = imp.Path[len(imp.Path)-1]
	}
	p.skipNewlines()
	return imp, nil
}

func (p *parser) parseConstDecl() (*ConstDecl, error) {
	pragmas := p.takePragmas()
	doc := p.takeDoc()

	name, err := p.expectLeafKind(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectLeafKind(lexer.Equals); err != nil {
		return nil, err
	}
	expr, err := p.parseDeclExpr()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	_ = pragmas // constants don't carry pragmas in the emitted model
	return &ConstDecl{Name: name.Text, Doc: doc, Expr: expr}, nil
}

// parseDeclExpr parses the right-hand side of a `NAME = EXPR` declaration,
// which is ambiguous at parse time between a ConstExpr and a TypeExpr; it
// returns whichever the token shape unambiguously matches, deferring finer
// classification (e.g. a bare identifier denoting a constant vs. a type
// alias) to the resolver.
func (p *parser) parseDeclExpr() (any, error) {
	n := p.peek()
	if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Int {
		return p.parseConstExpr()
	}
	if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Ident && p.identStartsSymOp() {
		return p.parseConstExpr()
	}
	return p.parseTypeExpr()
}

func (p *parser) parseConstExpr() (ConstExpr, error) {
	tok, ok := p.takeLeaf()
	if !ok {
		return nil, fmt.Errorf("%w: expected a constant expression", ErrUnexpectedToken)
	}
	switch tok.Kind {
	case lexer.Int:
		left := ConstExpr(IntLit{Value: tok.Int})
		if op, ok := p.peekBinOp(); ok {
			p.pos++
			right, err := p.expectLeafKind(lexer.Int)
			if err != nil {
				return nil, err
			}
			return BinOp{Op: op, A: left, B: IntLit{Value: right.Int}}, nil
		}
		return left, nil
	case lexer.Ident:
		if op, ok := p.peekSymOp(); ok {
			p.pos++
			right, err := p.expectLeafKind(lexer.Int)
			if err != nil {
				return nil, err
			}
			return SymBinOp{Name: tok.Text, Op: op, Delta: right.Int}, nil
		}
		return ConstRef{Name: tok.Text}, nil
	default:
		return nil, fmt.Errorf("%w: %v is not a valid constant expression start", ErrUnexpectedToken, tok)
	}
}

func (p *parser) peekBinOp() (string, bool) {
	n := p.peek()
	if n.Kind != lexer.NodeLeaf {
		return "", false
	}
	switch n.Leaf.Kind {
	case lexer.Shl:
		return "<<", true
	case lexer.Star:
		return "*", true
	case lexer.Plus:
		return "+", true
	case lexer.Minus:
		return "-", true
	}
	return "", false
}

func (p *parser) peekSymOp() (string, bool) {
	n := p.peek()
	if n.Kind != lexer.NodeLeaf {
		return "", false
	}
	switch n.Leaf.Kind {
	case lexer.Plus:
		return "+", true
	case lexer.Minus:
		return "-", true
	}
	return "", false
}

func (p *parser) parseTypeExpr() (TypeExpr, error) {
	tok, err := p.expectLeafKind(lexer.Ident)
	if err != nil {
		if t2, err2 := p.expectLeafKind(lexer.Null); err2 == nil {
			tok = t2
		} else {
			return nil, err
		}
	}
	var base TypeExpr = NameExpr{Name: tok.Text}
	if n := p.peek(); n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Dot {
		p.pos++
		name, err := p.expectLeafKind(lexer.Ident)
		if err != nil {
			return nil, err
		}
		base = QualifiedExpr{Module: tok.Text, Name: name.Text}
	}
	if n := p.peek(); n.Kind == lexer.NodeBracket && n.Open.Kind == lexer.LBracket {
		p.pos++
		args, err := parseArgs(n.Children)
		if err != nil {
			return nil, err
		}
		return ApplyExpr{Base: base, Args: args}, nil
	}
	return base, nil
}

// parseArgs parses the comma-separated argument list inside a `[...]` group,
// deciding per argument whether it is a type or a constant expression.
func parseArgs(nodes []lexer.Node) ([]ApplyArg, error) {
	sub := &parser{nodes: nodes}
	var args []ApplyArg
	for !sub.done() {
		expr, err := sub.parseDeclExpr()
		if err != nil {
			return nil, err
		}
		var arg ApplyArg
		switch v := expr.(type) {
		case ConstExpr:
			arg = ApplyArg{Const: v}
		case TypeExpr:
			arg = ApplyArg{Type: v}
		default:
			return nil, fmt.Errorf("%w: unexpected argument form", ErrUnexpectedToken)
		}
		args = append(args, arg)
		if n2 := sub.peek(); n2.Kind == lexer.NodeLeaf && n2.Leaf.Kind == lexer.Comma {
			sub.pos++
			continue
		}
		break
	}
	return args, nil
}

// identStartsSymOp reports whether the identifier at the parser's current
// position is immediately followed by a `+`/`-` symbolic constant operator,
// so the caller should parse it as a constant rather than a type name.
func (p *parser) identStartsSymOp() bool {
	if p.pos+1 >= len(p.nodes) {
		return false
	}
	n := p.nodes[p.pos+1]
	return n.Kind == lexer.NodeLeaf && (n.Leaf.Kind == lexer.Plus || n.Leaf.Kind == lexer.Minus)
}

func (p *parser) parseClass() (*ClassDecl, error) {
	pragmas := p.takePragmas()
	doc := p.takeDoc()

	if _, err := p.expectLeafKind(lexer.Class); err != nil {
		return nil, err
	}
	name, err := p.expectLeafKind(lexer.Ident)
	if err != nil {
		return nil, err
	}
	cls := &ClassDecl{Name: name.Text, Doc: doc, Pragmas: pragmas}

	if n := p.peek(); n.Kind == lexer.NodeBracket && n.Open.Kind == lexer.LParen {
		p.pos++
		sub := &parser{nodes: n.Children}
		parent, err := sub.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		cls.Parent = parent
	}
	if _, err := p.expectLeafKind(lexer.Colon); err != nil {
		return nil, err
	}
	p.skipNewlines()

	n := p.peek()
	if n.Kind != lexer.NodeBlock {
		return nil, fmt.Errorf("%w: expected indented class body", ErrUnexpectedToken)
	}
	p.pos++
	if err := parseClassBody(n.Children, cls); err != nil {
		return nil, err
	}
	return cls, nil
}

func parseClassBody(nodes []lexer.Node, cls *ClassDecl) error {
	sub := &parser{nodes: nodes}
	first := true
	for !sub.done() {
		n := sub.peek()
		if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Newline {
			sub.pos++
			continue
		}
		if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Docstring {
			if !first {
				return ErrStandaloneDocstring
			}
			cls.Doc2 = n.Leaf.Text
			sub.pos++
			sub.skipNewlines()
			first = false
			continue
		}
		first = false

		if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.DocComment {
			if sub.havePendingDoc {
				return ErrStandaloneDocComment
			}
			sub.pendingDoc = n.Leaf.Text
			sub.havePendingDoc = true
			sub.pos++
			continue
		}
		if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Pragma {
			sub.pendingPragmas = append(sub.pendingPragmas, n.Leaf.Text)
			sub.pos++
			continue
		}
		if n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Comment {
			sub.pos++
			continue
		}
		field, err := sub.parseField()
		if err != nil {
			return err
		}
		cls.Fields = append(cls.Fields, field)
	}
	if sub.havePendingDoc {
		return ErrStandaloneDocComment
	}
	return nil
}

func (p *parser) parseField() (*Field, error) {
	pragmas := p.takePragmas()
	doc := p.takeDoc()

	name, err := p.expectLeafKind(lexer.Ident)
	if err != nil {
		return nil, err
	}
	field := &Field{Name: name.Text, Pragmas: pragmas, DocComment: doc}

	if n := p.peek(); n.Kind == lexer.NodeLeaf && n.Leaf.Kind == lexer.Colon {
		p.pos++
		typ, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		field.Type = typ
	} else {
		field.UnitOnly = true
	}
	p.skipNewlines()
	return field, nil
}
