// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command sszc compiles a schema DSL module tree into Go source implementing
// the SSZ codec, tree-hash and view layers for every declared class.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sszlab/ssz/schema/compiler"
	"github.com/sszlab/ssz/schema/emit"
	"golang.org/x/tools/imports"
)

// stringListFlag accepts "-flag a -flag b" and "-flag a,b" interchangeably,
// matching spec.md §6.3's "path[,path...]" entry-point shape.
type stringListFlag struct{ values []string }

func (f *stringListFlag) String() string { return strings.Join(f.values, ",") }

func (f *stringListFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			f.values = append(f.values, part)
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sszc:", err)
		os.Exit(1)
	}
}

func run() error {
	var entry, external stringListFlag
	flag.Var(&entry, "entry", "entry module path(s), repeatable or comma-separated")
	flag.Var(&external, "external", "module path(s) to treat as external, repeatable or comma-separated")
	baseDir := flag.String("base-dir", ".", "root directory schema import paths are resolved against")
	out := flag.String("out", "", "output path: a file under single packaging, a directory otherwise")
	packaging := flag.String("packaging", "single", "output layout: nested, flat or single")
	derivesPath := flag.String("derives", "", "optional derives YAML config path")
	flag.Parse()

	if len(entry.values) == 0 {
		return fmt.Errorf("-entry is required")
	}
	if *out == "" {
		return fmt.Errorf("-out is required")
	}

	var derives *emit.DerivesConfig
	if *derivesPath != "" {
		data, err := os.ReadFile(*derivesPath)
		if err != nil {
			return fmt.Errorf("reading -derives: %w", err)
		}
		derives, err = emit.LoadDerivesConfig(data)
		if err != nil {
			return err
		}
	}

	output, err := compiler.Compile(compiler.Options{
		Entries:   entry.values,
		BaseDir:   *baseDir,
		External:  external.values,
		Packaging: *packaging,
		CacheDir:  filepath.Join(*baseDir, ".sszc-cache"),
		Derives:   derives,
	})
	if err != nil {
		return err
	}
	return writeOutput(output, *packaging, *out)
}

// writeOutput lays Output.Files out under out: directly as a single file
// under "single" packaging (Output.Files holds exactly one entry then), or
// as a directory tree of relative paths otherwise. Each file is run through
// goimports first, since the emitter's templated string concatenation never
// bothers with gofmt-clean spacing or import pruning itself.
func writeOutput(output *emit.Output, packaging, out string) error {
	if packaging == "single" {
		if len(output.Files) != 1 {
			return fmt.Errorf("expected exactly one output file for single packaging, got %d", len(output.Files))
		}
		for name, src := range output.Files {
			formatted, err := formatSource(name, src)
			if err != nil {
				return err
			}
			return os.WriteFile(out, formatted, 0o644)
		}
	}
	for rel, src := range output.Files {
		formatted, err := formatSource(rel, src)
		if err != nil {
			return err
		}
		dst := filepath.Join(out, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, formatted, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func formatSource(name string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(name, src, nil)
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", name, err)
	}
	return formatted, nil
}
