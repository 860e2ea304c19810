// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package resolve

import (
	"fmt"

	"github.com/sszlab/ssz/schema/ast"
)

// Scope is one module's identifier table: declared constants, concrete
// types, type constructors and aliases, plus a handle to the cross-module
// catalog used to resolve qualified (`module.Name`) references.
type Scope struct {
	modules *ModuleManager

	idents  map[string]IdentTarget
	aliases map[string]AliasRef
}

// NewScope builds a module scope seeded with the built-in catalog.
func NewScope(modules *ModuleManager) *Scope {
	s := &Scope{
		modules: modules,
		idents:  make(map[string]IdentTarget),
		aliases: make(map[string]AliasRef),
	}
	populateBuiltins(s)
	return s
}

func (s *Scope) checkNameUnused(name string) error {
	if _, ok := s.idents[name]; ok {
		return fmt.Errorf("%w: %q", ErrRedeclareIdentifier, name)
	}
	if _, ok := s.aliases[name]; ok {
		return fmt.Errorf("%w: %q", ErrRedeclareIdentifier, name)
	}
	return nil
}

// DeclConst declares a constant with an already-evaluated value.
func (s *Scope) DeclConst(name string, value uint64) error {
	if err := s.checkNameUnused(name); err != nil {
		return err
	}
	s.idents[name] = ConstTarget{Value: value}
	return nil
}

// DeclUserType declares a nullary user type: a Container, StableContainer,
// Profile or Union class.
func (s *Scope) DeclUserType(name string) error {
	if err := s.checkNameUnused(name); err != nil {
		return err
	}
	s.idents[name] = TypeTarget{}
	return nil
}

// DeclTypeAlias declares `name` as a direct alias of an already-resolved type.
func (s *Scope) DeclTypeAlias(name string, target Ty) error {
	if err := s.checkNameUnused(name); err != nil {
		return err
	}
	s.aliases[name] = AliasRef{Target: target}
	return nil
}

// ResolveConstExpr evaluates a parsed constant expression against this
// scope's declared constants.
func (s *Scope) ResolveConstExpr(expr ast.ConstExpr) (uint64, error) {
	switch e := expr.(type) {
	case ast.IntLit:
		return e.Value, nil
	case ast.BinOp:
		a, err := s.ResolveConstExpr(e.A)
		if err != nil {
			return 0, err
		}
		b, err := s.ResolveConstExpr(e.B)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case "<<":
			return a << b, nil
		case "*":
			return a * b, nil
		case "+":
			return a + b, nil
		case "-":
			return a - b, nil
		}
		return 0, fmt.Errorf("%w: unknown binary operator %q", ErrUnknownIdent, e.Op)
	case ast.SymBinOp:
		base, err := s.lookupConst(e.Name)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case "+":
			return base + e.Delta, nil
		case "-":
			return base - e.Delta, nil
		}
		return 0, fmt.Errorf("%w: unknown symbolic operator %q", ErrUnknownIdent, e.Op)
	case ast.ConstRef:
		return s.lookupConst(e.Name)
	}
	return 0, fmt.Errorf("%w: unrecognized constant expression %T", ErrUnknownIdent, expr)
}

func (s *Scope) lookupConst(name string) (uint64, error) {
	target, ok := s.idents[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownIdent, name)
	}
	c, ok := target.(ConstTarget)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a constant", ErrMismatchedArg, name)
	}
	return c.Value, nil
}

// ResolveTypeExpr resolves a parsed type expression (the ambiguous
// `ConstDecl.Expr`/field-type form) into a concrete Ty.
func (s *Scope) ResolveTypeExpr(expr ast.TypeExpr) (Ty, error) {
	switch e := expr.(type) {
	case ast.NameExpr:
		return s.resolveIdentWithArgs(e.Name, nil)
	case ast.QualifiedExpr:
		return s.resolveQualified(e.Module, e.Name, nil)
	case ast.ApplyExpr:
		switch base := e.Base.(type) {
		case ast.NameExpr:
			return s.resolveIdentWithArgs(base.Name, e.Args)
		case ast.QualifiedExpr:
			return s.resolveQualified(base.Module, base.Name, e.Args)
		default:
			return nil, fmt.Errorf("%w: constructor base must be a name", ErrUnknownIdent)
		}
	}
	return nil, fmt.Errorf("%w: unrecognized type expression %T", ErrUnknownIdent, expr)
}

// ResolveDecl resolves a `ConstDecl`'s ambiguous RHS: a ConstExpr value, or a
// TypeExpr naming a type or alias target. Exactly one of the two return
// values is non-nil (the unused one reported as a zero value).
func (s *Scope) ResolveDecl(expr any) (value uint64, isConst bool, ty Ty, err error) {
	switch e := expr.(type) {
	case ast.ConstExpr:
		v, err := s.ResolveConstExpr(e)
		return v, true, nil, err
	case ast.TypeExpr:
		t, err := s.ResolveTypeExpr(e)
		return 0, false, t, err
	}
	return 0, false, nil, fmt.Errorf("%w: unrecognized declaration form %T", ErrUnknownIdent, expr)
}

// resolveIdentWithArgs resolves a bare (non-qualified) identifier, optionally
// applied to args, following alias indirection first.
func (s *Scope) resolveIdentWithArgs(name string, args []ast.ApplyArg) (Ty, error) {
	if alias, ok := s.aliases[name]; ok {
		if args != nil {
			return nil, fmt.Errorf("%w: alias %q used with arguments", ErrMismatchTypeArity, name)
		}
		return alias.Target, nil
	}

	target, ok := s.idents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIdent, name)
	}
	return s.resolveTarget(name, args, target)
}

func (s *Scope) resolveTarget(name string, args []ast.ApplyArg, target IdentTarget) (Ty, error) {
	switch t := target.(type) {
	case ConstTarget:
		return nil, fmt.Errorf("%w: %q", ErrArgsOnConst, name)

	case TypeTarget:
		if args != nil {
			return nil, fmt.Errorf("%w: %q takes no arguments", ErrMismatchTypeArity, name)
		}
		return SimpleTy{Name: name}, nil

	case CtorTarget:
		switch sig := t.Sig.(type) {
		case VariableTySig:
			if args == nil {
				if name != "Union" {
					return nil, fmt.Errorf("%w: %q requires arguments", ErrMismatchTypeArity, name)
				}
				// Bare `Union` is the one way to declare a tagged union's
				// variants as a class body rather than an inline type.
				return SimpleTy{Name: name}, nil
			}
			resolved := make([]ResolvedArg, 0, len(args))
			for _, a := range args {
				r, err := s.resolveApplyArg(name, ArgKindTy, a)
				if err != nil {
					return nil, err
				}
				resolved = append(resolved, r)
			}
			return ComplexTy{Name: name, Args: resolved}, nil

		case FixedSig:
			if args == nil {
				return nil, fmt.Errorf("%w: %q requires arguments", ErrMismatchTypeArity, name)
			}
			if len(args) != len(sig.Args) {
				return nil, fmt.Errorf("%w: %q", ErrMismatchTypeArity, name)
			}
			resolved := make([]ResolvedArg, 0, len(args))
			for i, a := range args {
				r, err := s.resolveApplyArg(name, sig.Args[i], a)
				if err != nil {
					return nil, err
				}
				resolved = append(resolved, r)
			}
			return ComplexTy{Name: name, Args: resolved}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIdent, name)
}

// resolveApplyArg resolves a single constructor argument against the slot
// kind its signature declares.
func (s *Scope) resolveApplyArg(ctorName string, kind CtorArg, arg ast.ApplyArg) (ResolvedArg, error) {
	switch kind {
	case ArgKindTy:
		if arg.Type == nil {
			return nil, fmt.Errorf("%w: %q wants a type argument", ErrMismatchedArg, ctorName)
		}
		// `None`, only meaningful inside a Union argument list, resolves to
		// the ArgNone unit rather than a concrete type.
		if n, ok := arg.Type.(ast.NameExpr); ok && n.Name == "null" {
			return ArgNone{}, nil
		}
		ty, err := s.ResolveTypeExpr(arg.Type)
		if err != nil {
			return nil, err
		}
		return ArgTy{Ty: ty}, nil

	case ArgKindInt:
		if arg.Const != nil {
			switch c := arg.Const.(type) {
			case ast.IntLit:
				return ArgInt{Value: c.Value}, nil
			case ast.SymBinOp, ast.BinOp:
				v, err := s.ResolveConstExpr(c)
				if err != nil {
					return nil, err
				}
				return ArgInt{Value: v}, nil
			case ast.ConstRef:
				v, err := s.lookupConst(c.Name)
				if err != nil {
					return nil, err
				}
				return ArgConstRef{Name: c.Name, Value: v}, nil
			}
		}
		// A bare identifier parses as a NameExpr even in an Int slot (the
		// parser can't disambiguate it from a future type reference), so a
		// named-constant argument arrives here as arg.Type instead.
		if n, ok := arg.Type.(ast.NameExpr); ok {
			v, err := s.lookupConst(n.Name)
			if err != nil {
				return nil, err
			}
			return ArgConstRef{Name: n.Name, Value: v}, nil
		}
		return nil, fmt.Errorf("%w: %q wants an integer argument", ErrMismatchedArg, ctorName)
	}
	return nil, fmt.Errorf("%w: unknown argument kind", ErrMismatchedArg)
}

// resolveQualified resolves a `module.Name[args]` reference against the
// named import's exported scope.
func (s *Scope) resolveQualified(moduleAlias, name string, args []ast.ApplyArg) (Ty, error) {
	mod, ok := s.modules.ResolveAlias(moduleAlias)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownImport, moduleAlias)
	}
	if mod.External || mod.Empty() {
		resolved := make([]ResolvedArg, 0, len(args))
		for _, a := range args {
			r, err := s.resolveApplyArg(name, ArgKindTy, a)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, r)
		}
		if len(resolved) == 0 {
			return ImportedTy{ModulePath: mod.Path, Name: name}, nil
		}
		return ImportedComplexTy{ModulePath: mod.Path, Name: name, Args: resolved}, nil
	}

	if _, ok := mod.Exports[name]; !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrUnknownImportItem, name, moduleAlias)
	}
	if len(args) == 0 {
		return ImportedTy{ModulePath: mod.Path, Name: name}, nil
	}
	resolved := make([]ResolvedArg, 0, len(args))
	for _, a := range args {
		r, err := s.resolveApplyArg(name, ArgKindTy, a)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
	}
	return ImportedComplexTy{ModulePath: mod.Path, Name: name, Args: resolved}, nil
}
