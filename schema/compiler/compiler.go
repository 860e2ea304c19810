// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package compiler

import (
	"fmt"
	"strings"

	"github.com/sszlab/ssz/schema/emit"
	"github.com/sszlab/ssz/schema/resolve"
)

// Options configures one compiler run, mirroring spec.md §6.3's
// (entry_points, base_dir, external_modules, out_path, packaging_strategy,
// optional_derives_config) tuple one-for-one; out_path itself is the
// caller's concern (cmd/sszc writes Output.Files there), not Compile's.
type Options struct {
	// Entries are "/"-joined schema module paths, relative to BaseDir.
	Entries []string
	BaseDir string
	// External lists "/"-joined module paths to treat as external (a
	// pre-existing, hand-written target-language module) rather than a
	// ".ssz" source file to load and parse.
	External []string
	// Packaging selects the output layout: "nested", "flat" or "single".
	Packaging string
	// CacheDir, when non-empty, enables the on-disk parse cache described
	// in SPEC_FULL.md §4.8.
	CacheDir string
	// Derives is the resolved -derives config, or nil for the default.
	Derives *emit.DerivesConfig
}

// Compile loads every entry point (and whatever it transitively imports)
// from Options.BaseDir, resolves the whole reachable module set, and
// renders it to Go source via schema/emit.
func Compile(opts Options) (*emit.Output, error) {
	if len(opts.Entries) == 0 {
		return nil, fmt.Errorf("compiler: at least one entry module is required")
	}

	loader := newFileLoader(opts.BaseDir, opts.External, newParseCache(opts.CacheDir))
	mgr := resolve.NewModuleManager(loader)

	for _, entry := range opts.Entries {
		if _, err := mgr.Resolve(strings.Split(entry, "/")); err != nil {
			return nil, fmt.Errorf("compiler: resolving entry %q: %w", entry, err)
		}
	}

	modules := make(map[string]*resolve.ModuleInfo)
	for _, path := range mgr.Order() {
		info, ok := mgr.Get(path)
		if !ok {
			continue
		}
		modules[path] = info
	}

	derives := opts.Derives
	if derives == nil {
		derives = emit.DefaultDerivesConfig()
	}
	return emit.Emit(modules, opts.Packaging, derives)
}
