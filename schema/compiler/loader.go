// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compiler drives the schema pipeline end to end: it resolves an
// entry point's import graph from files under a base directory, resolves
// every module through schema/resolve, and renders the result through
// schema/emit. It is the only package on the schema side that touches the
// filesystem.
package compiler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sszlab/ssz/schema/ast"
	"github.com/sszlab/ssz/schema/lexer"
)

// sourceExt is the schema DSL's file extension: a module path ["a", "b"]
// resolves to "a/b.ssz" under base_dir.
const sourceExt = ".ssz"

// fileLoader implements resolve.Loader against real files rooted at
// baseDir. Any path whose "/"-joined form appears in external (the -external
// flag) is reported external without ever touching the filesystem, modeling
// a pre-existing target-language module this run never parses.
type fileLoader struct {
	baseDir  string
	external map[string]bool
	cache    *parseCache
}

func newFileLoader(baseDir string, external []string, cache *parseCache) *fileLoader {
	ext := make(map[string]bool, len(external))
	for _, e := range external {
		ext[e] = true
	}
	return &fileLoader{baseDir: baseDir, external: ext, cache: cache}
}

func (l *fileLoader) IsExternal(path []string) bool {
	return l.external[strings.Join(path, "/")]
}

func (l *fileLoader) Load(path []string) (*ast.Module, error) {
	abs := filepath.Join(append([]string{l.baseDir}, path...)...) + sourceExt

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	if mod, ok := l.cache.load(abs, content); ok {
		return mod, nil
	}

	toks, err := lexer.Tokenize(string(content))
	if err != nil {
		return nil, err
	}
	nodes, err := lexer.Tree(toks)
	if err != nil {
		return nil, err
	}
	mod, err := ast.Parse(nodes)
	if err != nil {
		return nil, err
	}
	l.cache.store(abs, content, mod)
	return mod, nil
}
