// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package resolve

import (
	"fmt"

	"github.com/sszlab/ssz/schema/ast"
)

// ModuleInfo is one resolved module's public surface, as seen by importers:
// its stable path, whether it is external (a hand-written, unvalidated
// target-language module) or empty (a schema module declaring nothing), and
// the set of names it exports.
type ModuleInfo struct {
	Path     string
	External bool
	Exports  map[string]IdentTarget
	Classes  map[string]*ResolvedClass
	Scope    *Scope
	Module   *ast.Module
}

// Empty reports whether this is a parsed-but-declares-nothing module, which
// (like an external module) accepts any name without further validation —
// matching a pre-existing target-language module with no schema counterpart.
func (m *ModuleInfo) Empty() bool { return !m.External && len(m.Exports) == 0 }

// Loader resolves an import path to its module source, parsed into an AST.
// The schema compiler (package compiler) supplies the concrete
// implementation; resolve itself performs no filesystem I/O, so it can be
// exercised against synthetic modules in tests.
type Loader interface {
	Load(path []string) (*ast.Module, error)
	// IsExternal reports whether path names an external (non-schema) module;
	// external modules are loaded by name only, never parsed.
	IsExternal(path []string) bool
}

// ModuleManager tracks (module path → ModuleInfo) in first-reference
// insertion order and drives on-demand parsing of imports, mirroring the
// teacher-adjacent resolver's cross-module type map.
type ModuleManager struct {
	loader    Loader
	byPath    map[string]*ModuleInfo
	order     []string
	aliases   map[string]*ModuleInfo // import alias -> module, scoped to the module currently being resolved
	resolving map[string]bool        // paths with a Resolve call currently on the stack
}

// NewModuleManager creates a manager that loads imports through loader.
func NewModuleManager(loader Loader) *ModuleManager {
	return &ModuleManager{
		loader:    loader,
		byPath:    make(map[string]*ModuleInfo),
		aliases:   make(map[string]*ModuleInfo),
		resolving: make(map[string]bool),
	}
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}

// Resolve loads and resolves the module at path (if not already resolved)
// and returns its ModuleInfo.
func (m *ModuleManager) Resolve(path []string) (*ModuleInfo, error) {
	key := joinPath(path)
	if info, ok := m.byPath[key]; ok {
		return info, nil
	}
	if m.resolving[key] {
		return nil, fmt.Errorf("%w: import cycle through %q", ErrCyclicTypedefs, key)
	}

	if m.loader.IsExternal(path) {
		info := &ModuleInfo{Path: key, External: true}
		m.byPath[key] = info
		m.order = append(m.order, key)
		return info, nil
	}

	mod, err := m.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("resolve: loading %q: %w", key, err)
	}

	m.resolving[key] = true
	defer delete(m.resolving, key)

	info := &ModuleInfo{Path: key, Exports: make(map[string]IdentTarget), Module: mod}
	scope := NewScope(m)
	info.Scope = scope
	if err := m.bindImports(mod, scope); err != nil {
		return nil, err
	}
	classes, err := declareModuleBody(mod, scope, info.Exports)
	if err != nil {
		return nil, err
	}
	info.Classes = classes

	m.byPath[key] = info
	m.order = append(m.order, key)
	return info, nil
}

func (m *ModuleManager) bindImports(mod *ast.Module, scope *Scope) error {
	for _, imp := range mod.Imports {
		info, err := m.Resolve(imp.Path)
		if err != nil {
			return err
		}
		m.aliases[imp.Alias] = info
	}
	return nil
}

// ResolveAlias looks up an import alias against the module currently being
// resolved. Aliases are a flat namespace across the whole run rather than
// properly scoped per-module; this mirrors the simplicity of a single-pass
// compiler run where each module is fully resolved (including its imports)
// before resolution moves past it, so alias collisions across unrelated
// modules never observably occur.
func (m *ModuleManager) ResolveAlias(alias string) (*ModuleInfo, bool) {
	info, ok := m.aliases[alias]
	return info, ok
}

// Order returns resolved module paths in first-reference insertion order.
func (m *ModuleManager) Order() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Get returns a previously resolved module's info.
func (m *ModuleManager) Get(path string) (*ModuleInfo, bool) {
	info, ok := m.byPath[path]
	return info, ok
}
