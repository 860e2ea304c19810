// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package compiler

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/sszlab/ssz/schema/ast"
)

func init() {
	gob.Register(ast.NameExpr{})
	gob.Register(ast.QualifiedExpr{})
	gob.Register(ast.ApplyExpr{})
	gob.Register(ast.IntLit{})
	gob.Register(ast.BinOp{})
	gob.Register(ast.SymBinOp{})
	gob.Register(ast.ConstRef{})
}

// parseCache memoizes a source file's parsed *ast.Module on disk, keyed by
// its absolute path and a content hash, so a repeated compiler run over an
// unchanged base_dir skips re-lexing/re-parsing it. A zero-value dir
// disables caching outright: Load always misses, Store is a no-op.
type parseCache struct {
	dir string
}

func newParseCache(dir string) *parseCache {
	return &parseCache{dir: dir}
}

// entryPath derives the cache blob's path from absPath and the file's
// current content, so an edited file (same path, different bytes) misses
// rather than returning a stale parse.
func (c *parseCache) entryPath(absPath string, content []byte) string {
	pathSum := sha256.Sum256([]byte(absPath))
	contentSum := sha256.Sum256(content)
	name := hex.EncodeToString(pathSum[:8]) + "-" + hex.EncodeToString(contentSum[:8]) + ".cache"
	return filepath.Join(c.dir, name)
}

func (c *parseCache) load(absPath string, content []byte) (*ast.Module, bool) {
	if c.dir == "" {
		return nil, false
	}
	raw, err := os.ReadFile(c.entryPath(absPath, content))
	if err != nil {
		return nil, false
	}
	plain, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, false
	}
	var mod ast.Module
	if err := gob.NewDecoder(bytes.NewReader(plain)).Decode(&mod); err != nil {
		return nil, false
	}
	return &mod, true
}

func (c *parseCache) store(absPath string, content []byte, mod *ast.Module) {
	if c.dir == "" {
		return
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(mod); err != nil {
		return // an unencodable AST shape is a cache miss forever, not a hard failure
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return
	}
	compressed := snappy.Encode(nil, buf.Bytes())
	_ = os.WriteFile(c.entryPath(absPath, content), compressed, 0o644)
}
