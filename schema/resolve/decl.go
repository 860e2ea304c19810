// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package resolve

import (
	"fmt"

	"github.com/sszlab/ssz/schema/ast"
)

// ClassKind distinguishes the four base-class shapes a schema class can take.
type ClassKind int

const (
	KindContainer ClassKind = iota
	KindStableContainer
	KindProfile
	KindUnion
)

// ResolvedField is one validated field of a resolved class.
type ResolvedField struct {
	Name     string
	Type     Ty   // nil for a Union unit variant
	UnitOnly bool
	Optional bool // Type is Optional[T]; only ever true inside a StableContainer/Profile
}

// ResolvedClass is a fully validated class declaration: its kind, its
// resolved parent (for Profile, the base stable container; for
// StableContainer, the max active-field count), and its resolved fields in
// declaration order.
type ResolvedClass struct {
	Name   string
	Kind   ClassKind
	Parent Ty
	MaxN   uint64 // StableContainer's N; Profile's base StableContainer's N
	Fields []ResolvedField
}

// declareModuleBody resolves every const declaration of mod into scope in
// declaration order (so a const or alias can only reference names declared
// before it, which makes const/alias reference cycles structurally
// impossible within a single module), then declares every class name before
// resolving any class (so classes may reference each other in either
// order), populates exports with every top-level name the module declares,
// and returns every class's fully resolved and validated shape for the
// emitter to consume.
func declareModuleBody(mod *ast.Module, scope *Scope, exports map[string]IdentTarget) (map[string]*ResolvedClass, error) {
	for _, c := range mod.Consts {
		value, isConst, ty, err := scope.ResolveDecl(c.Expr)
		if err != nil {
			return nil, fmt.Errorf("resolve: const %q: %w", c.Name, err)
		}
		if isConst {
			if err := scope.DeclConst(c.Name, value); err != nil {
				return nil, err
			}
			exports[c.Name] = ConstTarget{Value: value}
		} else {
			if err := scope.DeclTypeAlias(c.Name, ty); err != nil {
				return nil, err
			}
			exports[c.Name] = TypeTarget{}
		}
	}

	for _, cls := range mod.Classes {
		if err := scope.DeclUserType(cls.Name); err != nil {
			return nil, err
		}
		exports[cls.Name] = TypeTarget{}
	}

	resolved := make(map[string]*ResolvedClass, len(mod.Classes))
	for _, cls := range mod.Classes {
		rc, err := ResolveClass(scope, cls)
		if err != nil {
			return nil, fmt.Errorf("resolve: class %q: %w", cls.Name, err)
		}
		resolved[cls.Name] = rc
	}

	for _, cls := range mod.Classes {
		rc := resolved[cls.Name]
		if rc.Kind != KindProfile {
			continue
		}
		baseName, ok := rc.Parent.(SimpleTy)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrProfileBaseNotStableContainer, cls.Name)
		}
		base, ok := resolved[baseName.Name]
		if !ok {
			// Base stable container lives in another module; its field set
			// isn't available for a same-order check from here. The base's
			// own module validated its own shape already.
			continue
		}
		if base.Kind != KindStableContainer {
			return nil, fmt.Errorf("%w: %q", ErrProfileBaseNotStableContainer, cls.Name)
		}
		rc.MaxN = base.MaxN
		if err := ValidateProfileAgainstBase(rc, base); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// ResolveClass resolves a single class declaration's parent and fields and
// validates its Container/StableContainer/Profile/Union shape rules.
func ResolveClass(scope *Scope, cls *ast.ClassDecl) (*ResolvedClass, error) {
	parent, err := scope.ResolveTypeExpr(cls.Parent)
	if err != nil {
		return nil, err
	}

	out := &ResolvedClass{Name: cls.Name, Parent: parent}

	switch p := parent.(type) {
	case SimpleTy:
		switch p.Name {
		case "Container":
			out.Kind = KindContainer
		case "Union":
			out.Kind = KindUnion
		default:
			return nil, fmt.Errorf("%w: %q is not a valid base class", ErrMismatchTypeArity, p.Name)
		}
	case ComplexTy:
		switch p.Name {
		case "StableContainer":
			out.Kind = KindStableContainer
			n, err := requireIntArg(p.Args, 0)
			if err != nil {
				return nil, err
			}
			out.MaxN = n
		case "Profile":
			out.Kind = KindProfile
			base, err := requireTyArg(p.Args, 0)
			if err != nil {
				return nil, err
			}
			// base normally names another class in this module (or an
			// imported one); whether it actually IS a stable container can
			// only be checked once all classes have resolved, since classes
			// may reference each other in either declaration order. See
			// declareModuleBody's second pass / ValidateProfileAgainstBase.
			out.Parent = base
		default:
			return nil, fmt.Errorf("%w: %q is not a valid base class", ErrMismatchTypeArity, p.Name)
		}
	default:
		return nil, fmt.Errorf("%w: %q is not a valid base class", ErrMismatchTypeArity, cls.Name)
	}

	fields := make([]ResolvedField, 0, len(cls.Fields))
	for _, f := range cls.Fields {
		rf := ResolvedField{Name: f.Name, UnitOnly: f.UnitOnly}
		if !f.UnitOnly {
			ty, err := scope.ResolveTypeExpr(f.Type)
			if err != nil {
				return nil, err
			}
			if err := validateUnionUsage(ty); err != nil {
				return nil, err
			}
			rf.Type = ty
			if opt, ok := ty.(ComplexTy); ok && opt.Name == "Optional" {
				rf.Optional = true
			}
		}
		fields = append(fields, rf)
	}
	out.Fields = fields

	if err := validateClassShape(out); err != nil {
		return nil, err
	}
	return out, nil
}

func requireIntArg(args []ResolvedArg, i int) (uint64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing argument %d", ErrMismatchTypeArity, i)
	}
	switch a := args[i].(type) {
	case ArgInt:
		return a.Value, nil
	case ArgConstRef:
		return a.Value, nil
	}
	return 0, fmt.Errorf("%w: argument %d is not an integer", ErrMismatchedArg, i)
}

func requireTyArg(args []ResolvedArg, i int) (Ty, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%w: missing argument %d", ErrMismatchTypeArity, i)
	}
	a, ok := args[i].(ArgTy)
	if !ok {
		return nil, fmt.Errorf("%w: argument %d is not a type", ErrMismatchedArg, i)
	}
	return a.Ty, nil
}
