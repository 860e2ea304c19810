// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package resolve classifies the identifiers of a parsed schema module
// (constant, concrete type, type constructor or alias), resolves type and
// constant expressions against that classification, and validates the
// Container/StableContainer/Profile/Union shape rules.
package resolve

// Ty is a resolved, fully-qualified type reference: a built-in or
// user-declared type name, possibly applied to arguments, possibly imported
// from another module.
type Ty interface{ tyNode() }

// SimpleTy is a bare type name with no arguments, e.g. `uint32` or a
// user-declared Container class used without instantiation.
type SimpleTy struct{ Name string }

// ComplexTy is a type constructor applied to arguments, e.g. `List[uint8, 8]`.
type ComplexTy struct {
	Name string
	Args []ResolvedArg
}

// ImportedTy is a bare name resolved through an import alias.
type ImportedTy struct {
	ModulePath string
	Name       string
}

// ImportedComplexTy is a type constructor application resolved through an
// import alias.
type ImportedComplexTy struct {
	ModulePath string
	Name       string
	Args       []ResolvedArg
}

func (SimpleTy) tyNode()           {}
func (ComplexTy) tyNode()          {}
func (ImportedTy) tyNode()         {}
func (ImportedComplexTy) tyNode()  {}

// ResolvedArg is one resolved argument to a type constructor application:
// a type, an integer, a named constant reference, or the `None` unit used by
// `Union`'s first variant slot.
type ResolvedArg interface{ resolvedArgNode() }

// ArgTy is a type-valued argument, e.g. the `T` in `List[T, N]`.
type ArgTy struct{ Ty Ty }

// ArgInt is a literal integer argument.
type ArgInt struct{ Value uint64 }

// ArgConstRef is a named-constant argument; Value is the constant's
// evaluated value, Name is preserved for codegen (so the emitter can refer
// to the constant by name rather than inlining its value).
type ArgConstRef struct {
	Name  string
	Value uint64
}

// ArgNone is the `None` unit, valid only as a Union variant slot.
type ArgNone struct{}

func (ArgTy) resolvedArgNode()       {}
func (ArgInt) resolvedArgNode()      {}
func (ArgConstRef) resolvedArgNode() {}
func (ArgNone) resolvedArgNode()     {}

// CtorArg describes what kind of argument a type constructor slot accepts.
type CtorArg int

const (
	// ArgKindTy accepts types and aliases thereof.
	ArgKindTy CtorArg = iota
	// ArgKindInt accepts integer literals and integer constants.
	ArgKindInt
)

func (k CtorArg) String() string {
	if k == ArgKindInt {
		return "Int"
	}
	return "Ty"
}

// CtorSig is the signature of a type constructor.
type CtorSig interface{ ctorSigNode() }

// FixedSig is a constructor with a fixed, ordered argument list, e.g.
// `List[T, N]` (Ty, Int) or `StableContainer[N]` (Int).
type FixedSig struct{ Args []CtorArg }

// VariableTySig is a constructor accepting a variable number of type
// arguments, e.g. `Union[T1, ..., Tn]`.
type VariableTySig struct{}

func (FixedSig) ctorSigNode()      {}
func (VariableTySig) ctorSigNode() {}

// IdentTarget is what a module-scope identifier denotes.
type IdentTarget interface{ identTargetNode() }

// ConstTarget is a declared constant, already evaluated to its integer value.
type ConstTarget struct{ Value uint64 }

// TypeTarget is a declared concrete type usable with no arguments: a
// built-in primitive, a user class (Container/StableContainer/Profile/
// Union), or `null`.
type TypeTarget struct{}

// CtorTarget is a type constructor, built-in or (not currently supported by
// the schema DSL) user-declared.
type CtorTarget struct{ Sig CtorSig }

func (ConstTarget) identTargetNode() {}
func (TypeTarget) identTargetNode()  {}
func (CtorTarget) identTargetNode()  {}

// AliasRef is what a type-alias identifier points to.
type AliasRef struct{ Target Ty }
