// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ast defines the schema DSL's abstract syntax tree and the parser
// that builds it from a lexer.Tree token tree.
package ast

// Module is the top-level parse result of one schema source file.
type Module struct {
	Imports []*Import
	Consts  []*ConstDecl
	Classes []*ClassDecl
}

// Import is an `import PATH [as ALIAS]` item. Path is the `.`-separated
// segments, including any leading `..` parent-walk segments recorded
// verbatim as "..".
type Import struct {
	Path  []string
	Alias string
}

// ConstDecl is a `NAME = EXPR` item. EXPR is ambiguous at parse time between
// a constant value and a type alias (e.g. `L = List[uint8, MAX]`); Expr holds
// either a ConstExpr or a TypeExpr, and the resolver (package resolve)
// classifies it once imports and prior declarations are in scope.
type ConstDecl struct {
	Name string
	Doc  string
	Expr any
}

// ClassDecl is a `class NAME(PARENT): ...` item.
type ClassDecl struct {
	Name    string
	Parent  TypeExpr
	Doc     string
	Pragmas []string
	Doc2    string // docstring inside the class body, distinct from the leading doc-comment
	Fields  []*Field
}

// Field is one `fname: TYPE_EXPR` (or bare `fname` for a union unit variant)
// line inside a class body.
type Field struct {
	Name       string
	Type       TypeExpr // nil for a union unit variant
	UnitOnly   bool
	Pragmas    []string
	DocComment string
}

// TypeExpr is any of the type-expression forms EXPR can take on the
// right-hand side of a field or a type-level constant.
type TypeExpr interface{ typeExprNode() }

// NameExpr is a bare identifier reference, e.g. `uint32` or an imported
// alias.
type NameExpr struct{ Name string }

// QualifiedExpr is a `MODULE.NAME` reference.
type QualifiedExpr struct{ Module, Name string }

// ApplyArg is one argument to a type constructor application: either a
// nested type expression or a constant expression (for `Int` slots like
// `List[T, N]`'s N).
type ApplyArg struct {
	Type  TypeExpr  // non-nil when this argument is a type
	Const ConstExpr // non-nil when this argument is a constant
}

// ApplyExpr is a `NAME[ARGS]` or `MODULE.NAME[ARGS]` type constructor
// application.
type ApplyExpr struct {
	Base TypeExpr
	Args []ApplyArg
}

func (NameExpr) typeExprNode()      {}
func (QualifiedExpr) typeExprNode() {}
func (ApplyExpr) typeExprNode()     {}

// ConstExpr is any of the constant-value expression forms: a literal, a
// binary operation on two literals, or a symbolic binop of one named
// constant and one literal.
type ConstExpr interface{ constExprNode() }

// IntLit is an unsigned integer literal.
type IntLit struct{ Value uint64 }

// BinOp is `INT <op> INT` for op in {Shl, Mul, Add, Sub}.
type BinOp struct {
	Op   string // "<<", "*", "+", "-"
	A, B ConstExpr
}

// SymBinOp is `NAME + INT` or `NAME - INT`, where Name resolves to a
// previously declared constant.
type SymBinOp struct {
	Name  string
	Op    string // "+" or "-"
	Delta uint64
}

// ConstRef is a bare identifier used directly as a constant value. The
// parser does not build one for a bare identifier argument such as `MAX` in
// `List[uint8, MAX]`: that parses as a NameExpr in ApplyArg.Type, and the
// resolver decides whether it names a constant.
type ConstRef struct{ Name string }

func (IntLit) constExprNode()   {}
func (BinOp) constExprNode()    {}
func (SymBinOp) constExprNode() {}
func (ConstRef) constExprNode() {}
