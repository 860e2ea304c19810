// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package resolve

import "fmt"

// validateClassShape enforces the four class-kind shape rules: a Container
// rejects Optional fields, a StableContainer requires every field to be
// Optional, a Profile's fields must all exist (in the same relative order)
// in its base stable container, and a Union's variant list must place a
// `None` unit variant (if any) first.
func validateClassShape(cls *ResolvedClass) error {
	switch cls.Kind {
	case KindContainer:
		for _, f := range cls.Fields {
			if f.Optional {
				return fmt.Errorf("%w: %q.%s", ErrOptionalInContainer, cls.Name, f.Name)
			}
		}

	case KindStableContainer:
		for _, f := range cls.Fields {
			if !f.Optional {
				return fmt.Errorf("%w: %q.%s", ErrNonOptionalInStableContainer, cls.Name, f.Name)
			}
		}
		if uint64(len(cls.Fields)) > cls.MaxN {
			return fmt.Errorf("%w: %q declares more fields than its N", ErrMismatchTypeArity, cls.Name)
		}

	case KindProfile:
		// Whether the base actually is a StableContainer, and whether this
		// Profile's fields are a same-order subset of it, can only be
		// checked once every class in the module has resolved (classes may
		// reference each other in either declaration order) — see
		// declareModuleBody's second pass and ValidateProfileAgainstBase.

	case KindUnion:
		for i, f := range cls.Fields {
			if f.UnitOnly && f.Name == "none" && i != 0 {
				return fmt.Errorf("%w: %q", ErrNoneNotFirstVariant, cls.Name)
			}
		}
	}
	return nil
}

// validateUnionUsage walks a resolved type (and its constructor arguments)
// looking for an inline `Union[...]` application. `Union` may only be used
// anonymously (i.e. as a type expression rather than a named class's parent)
// in the two-variant `Union[null, T]` optional-sugar shape; any other arity,
// or a `Union` used bare with no args outside a class parent position
// (callers never pass that form here), is rejected.
func validateUnionUsage(ty Ty) error {
	switch t := ty.(type) {
	case ComplexTy:
		if t.Name == "Union" {
			if len(t.Args) != 2 {
				return fmt.Errorf("%w: %q", ErrAnonymousUnion, t.Name)
			}
			if _, ok := t.Args[0].(ArgNone); !ok {
				return fmt.Errorf("%w: %q", ErrAnonymousUnion, t.Name)
			}
		}
		for _, a := range t.Args {
			if aty, ok := a.(ArgTy); ok {
				if err := validateUnionUsage(aty.Ty); err != nil {
					return err
				}
			}
		}
	case ImportedComplexTy:
		for _, a := range t.Args {
			if aty, ok := a.(ArgTy); ok {
				if err := validateUnionUsage(aty.Ty); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ValidateProfileAgainstBase checks a Profile's fields are a subset of its
// base stable container's fields, sharing relative order, once the base's
// own ResolvedClass is available (classes can be declared in either order,
// so this second pass runs after every class in the module has resolved).
// On success it also sets profile.MaxN to the base's MaxN.
func ValidateProfileAgainstBase(profile, base *ResolvedClass) error {
	baseIndex := make(map[string]int, len(base.Fields))
	for i, f := range base.Fields {
		baseIndex[f.Name] = i
	}

	lastSeen := -1
	for _, f := range profile.Fields {
		idx, ok := baseIndex[f.Name]
		if !ok {
			return fmt.Errorf("%w: %q.%s not in %q", ErrProfileFieldNotInBase, profile.Name, f.Name, base.Name)
		}
		if idx < lastSeen {
			return fmt.Errorf("%w: %q.%s out of order relative to %q", ErrProfileFieldOrderMismatch, profile.Name, f.Name, base.Name)
		}
		lastSeen = idx
	}
	profile.MaxN = base.MaxN
	return nil
}
