// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package resolve

import "errors"

var (
	// ErrUnknownImport is returned when an import alias has no registered module.
	ErrUnknownImport = errors.New("resolve: unknown import")
	// ErrUnknownImportItem is returned when a qualified name has no matching
	// export in its module.
	ErrUnknownImportItem = errors.New("resolve: unknown import item")
	// ErrUnknownIdent is returned when an identifier has no declaration in scope.
	ErrUnknownIdent = errors.New("resolve: unknown identifier")
	// ErrMismatchedArg is returned when a constructor argument's kind (Ty vs
	// Int) does not match its slot's signature.
	ErrMismatchedArg = errors.New("resolve: mismatched constructor argument")
	// ErrMismatchTypeArity is returned when a constructor application
	// supplies the wrong number of arguments, or none are supplied to a
	// constructor that requires them (or vice versa).
	ErrMismatchTypeArity = errors.New("resolve: mismatched type arity")
	// ErrArgsOnConst is returned when a constant identifier is applied to
	// arguments as if it were a type constructor.
	ErrArgsOnConst = errors.New("resolve: arguments applied to a constant")
	// ErrRedeclareIdentifier is returned when a name is declared twice in the
	// same module scope.
	ErrRedeclareIdentifier = errors.New("resolve: identifier redeclared")
	// ErrCyclicTypedefs is returned when the import/alias dependency graph
	// contains a cycle.
	ErrCyclicTypedefs = errors.New("resolve: cyclic type definitions")

	// ErrOptionalInContainer is returned when a plain Container declares an
	// Optional[T] field.
	ErrOptionalInContainer = errors.New("resolve: Optional field in Container")
	// ErrNonOptionalInStableContainer is returned when a StableContainer
	// declares a field that isn't Optional[T].
	ErrNonOptionalInStableContainer = errors.New("resolve: non-Optional field in StableContainer")
	// ErrProfileBaseNotStableContainer is returned when a Profile's base type
	// does not resolve to a stable container (directly or via alias).
	ErrProfileBaseNotStableContainer = errors.New("resolve: Profile base is not a StableContainer")
	// ErrProfileFieldNotInBase is returned when a Profile declares a field
	// absent from its base stable container.
	ErrProfileFieldNotInBase = errors.New("resolve: Profile field not present in base")
	// ErrProfileFieldOrderMismatch is returned when a Profile's shared fields
	// are not in the same relative order as the base stable container's.
	ErrProfileFieldOrderMismatch = errors.New("resolve: Profile field order mismatch with base")
	// ErrAnonymousUnion is returned when `Union[...]` is used inline as a type
	// expression in any shape other than the two-variant `Union[null, T]`
	// optional sugar. A bare `Union` as a class's base is not affected.
	ErrAnonymousUnion = errors.New("resolve: anonymous Union usage")
	// ErrNoneNotFirstVariant is returned when a Union's `None` variant is
	// declared anywhere but first.
	ErrNoneNotFirstVariant = errors.New("resolve: None variant is not first in Union")
)
