// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sszlab/ssz/schema/resolve"
)

// Output is the result of Emit: Go source keyed by the output-relative file
// path it should be written to (e.g. "types.go" for single/flat packaging,
// "other/types.go" for nested packaging).
type Output struct {
	Files map[string][]byte
}

// pkgImports is the fixed import set every generated file in this emitter's
// output can need; generateClass never emits a call outside this set, so a
// single shared header suffices for every file rather than tracking
// per-class usage the way cmd/sszgen/gen.go's genContext does for its much
// broader opset surface.
var pkgImports = []string{
	"bytes",
	"encoding/binary",
	"github.com/holiman/uint256",
	"github.com/sszlab/ssz",
	"github.com/sszlab/ssz/bitfield",
	"github.com/sszlab/ssz/view",
}

// header renders the package clause and import block the teacher's
// cmd/sszgen/gen.go genContext.header renders, fixed rather than computed
// per file since every generated file draws from the same small dependency
// set.
func header(pkgName string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "package %s\n\nimport (\n", pkgName)
	paths := append([]string(nil), pkgImports...)
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	fmt.Fprint(&b, ")\n\n")
	return b.Bytes()
}

// Emit renders every resolved, non-external, non-empty module reachable
// from entry (entry itself plus whatever it transitively imports, as
// already walked and recorded in modules by the compiler driver) into Go
// source, laid out according to packaging. derives may be nil, in which
// case DefaultDerivesConfig() is used.
func Emit(modules map[string]*resolve.ModuleInfo, packaging string, derives *DerivesConfig) (*Output, error) {
	if derives == nil {
		derives = DefaultDerivesConfig()
	}

	kinds := newClassKinds()
	var order []string
	for path := range modules {
		order = append(order, path)
	}
	sort.Strings(order)
	for _, path := range order {
		mod := modules[path]
		if mod.External || mod.Empty() {
			continue
		}
		for name, rc := range mod.Classes {
			kinds.add(name, rc)
		}
	}

	switch packaging {
	case "single":
		return emitSingle(modules, order, kinds, derives)
	case "flat":
		return emitFlat(modules, order, kinds, derives)
	case "nested":
		return emitNested(modules, order, kinds, derives)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPackaging, packaging)
}

// classSource renders one class; cp.Name collisions across modules (the
// same bare name declared in two different schema modules) are a
// cross-module naming conflict the resolver's import-qualification already
// prevents from being ambiguous inside any one module, but "single" and
// "flat" packaging still place every class in one Go package/namespace, so
// Emit reports it rather than silently letting the second definition win.
func classSource(rc *resolve.ResolvedClass, kinds *classKinds, derives *DerivesConfig) ([]byte, error) {
	cp, err := planClass(rc, kinds)
	if err != nil {
		return nil, err
	}
	return generateClass(cp, derives)
}

func emitSingle(modules map[string]*resolve.ModuleInfo, order []string, kinds *classKinds, derives *DerivesConfig) (*Output, error) {
	var body bytes.Buffer
	seen := make(map[string]bool)
	for _, path := range order {
		mod := modules[path]
		if mod.External || mod.Empty() {
			continue
		}
		for _, name := range sortedClassNames(mod.Classes) {
			if seen[name] {
				return nil, fmt.Errorf("emit: class %q declared in more than one module, cannot merge under single packaging", name)
			}
			seen[name] = true
			src, err := classSource(mod.Classes[name], kinds, derives)
			if err != nil {
				return nil, err
			}
			body.Write(src)
		}
	}
	var out bytes.Buffer
	out.Write(header("sszgen"))
	out.Write([]byte(runtimeSource))
	out.Write(body.Bytes())
	return &Output{Files: map[string][]byte{"types.go": out.Bytes()}}, nil
}

func emitFlat(modules map[string]*resolve.ModuleInfo, order []string, kinds *classKinds, derives *DerivesConfig) (*Output, error) {
	files := make(map[string][]byte)
	seen := make(map[string]bool)
	for _, path := range order {
		mod := modules[path]
		if mod.External || mod.Empty() {
			continue
		}
		var body bytes.Buffer
		for _, name := range sortedClassNames(mod.Classes) {
			if seen[name] {
				return nil, fmt.Errorf("emit: class %q declared in more than one module, cannot merge under flat packaging", name)
			}
			seen[name] = true
			src, err := classSource(mod.Classes[name], kinds, derives)
			if err != nil {
				return nil, err
			}
			body.Write(src)
		}
		if body.Len() == 0 {
			continue
		}
		var out bytes.Buffer
		out.Write(header("sszgen"))
		out.Write(body.Bytes())
		files[flatFileName(path)+".go"] = out.Bytes()
	}
	if len(files) > 0 {
		files["runtime.go"] = append(header("sszgen"), []byte(runtimeSource)...)
	}
	return &Output{Files: files}, nil
}

func emitNested(modules map[string]*resolve.ModuleInfo, order []string, kinds *classKinds, derives *DerivesConfig) (*Output, error) {
	files := make(map[string][]byte)
	for _, path := range order {
		mod := modules[path]
		if mod.External || mod.Empty() {
			continue
		}
		var body bytes.Buffer
		for _, name := range sortedClassNames(mod.Classes) {
			src, err := classSource(mod.Classes[name], kinds, derives)
			if err != nil {
				return nil, err
			}
			body.Write(src)
		}
		if body.Len() == 0 {
			continue
		}
		pkgName := nestedPackageName(path)
		var out bytes.Buffer
		out.Write(header(pkgName))
		out.Write([]byte(runtimeSource))
		out.Write(body.Bytes())
		files[nestedFilePath(path)] = out.Bytes()
	}
	return &Output{Files: files}, nil
}

func sortedClassNames(classes map[string]*resolve.ResolvedClass) []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// flatFileName turns a module path ("a/b/other") into a single identifier
// ("a_b_other") safe to use as a flat-packaging file stem.
func flatFileName(modPath string) string {
	return strings.ReplaceAll(modPath, "/", "_")
}

// nestedPackageName is the last path segment of the module path, the Go
// convention the teacher's own cmd/sszgen output (one package per generated
// directory) already follows.
func nestedPackageName(modPath string) string {
	parts := strings.Split(modPath, "/")
	return parts[len(parts)-1]
}

func nestedFilePath(modPath string) string {
	return modPath + "/types.go"
}
