// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package lexer tokenizes the schema DSL source text described by the
// grammar's lexical layer: an indentation-significant stream of keywords,
// punctuation, identifiers, integer literals and three comment flavors.
package lexer

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Newline
	Indent
	Dedent

	Ident
	Int

	// Keywords.
	Import
	As
	Class
	Null

	// Punctuation.
	Colon
	Equals
	Comma
	Dot
	DotDot
	LParen
	RParen
	LBracket
	RBracket
	Shl
	Star
	Plus
	Minus

	Comment
	DocComment
	Pragma
	Docstring
)

var keywords = map[string]Kind{
	"import": Import,
	"as":     As,
	"class":  Class,
	"null":   Null,
}

// Token is a single lexical unit with its source position.
type Token struct {
	Kind Kind
	Text string // raw text for Ident/Comment/DocComment/Pragma/Docstring
	Int  uint64 // parsed value, valid when Kind == Int
	Line int
	Col  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Col)
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Newline:
		return "Newline"
	case Indent:
		return "Indent"
	case Dedent:
		return "Dedent"
	case Ident:
		return "Ident"
	case Int:
		return "Int"
	case Import:
		return "import"
	case As:
		return "as"
	case Class:
		return "class"
	case Null:
		return "null"
	case Colon:
		return "Colon"
	case Equals:
		return "Equals"
	case Comma:
		return "Comma"
	case Dot:
		return "Dot"
	case DotDot:
		return "DotDot"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case Shl:
		return "Shl"
	case Star:
		return "Star"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Comment:
		return "Comment"
	case DocComment:
		return "DocComment"
	case Pragma:
		return "Pragma"
	case Docstring:
		return "Docstring"
	default:
		return "Unknown"
	}
}
