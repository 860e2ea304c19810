// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package compiler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sszlab/ssz/schema/compiler"
)

func writeSchema(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".ssz"), []byte(src), 0o644); err != nil {
		t.Fatalf("writing %s.ssz: %v", name, err)
	}
}

func TestCompileSingleModule(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "schema", "class Point(Container):\n  x: uint32\n  y: uint32\n")

	out, err := compiler.Compile(compiler.Options{
		Entries:   []string{"schema"},
		BaseDir:   dir,
		Packaging: "single",
		CacheDir:  filepath.Join(dir, ".cache"),
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	src, ok := out.Files["types.go"]
	if !ok {
		t.Fatalf("expected types.go in output, got %v", out.Files)
	}
	if !strings.Contains(string(src), "type Point struct {") {
		t.Errorf("generated source missing Point: %s", src)
	}
}

func TestCompileWithImport(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "common", "class Blob(Container):\n  id: uint64\n")
	writeSchema(t, dir, "schema", "import common\nclass Point(Container):\n  x: uint32\n  b: common.Blob\n")

	out, err := compiler.Compile(compiler.Options{
		Entries:   []string{"schema"},
		BaseDir:   dir,
		Packaging: "flat",
		CacheDir:  filepath.Join(dir, ".cache"),
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, ok := out.Files["schema.go"]; !ok {
		t.Fatalf("expected schema.go, got %v", out.Files)
	}
	if _, ok := out.Files["common.go"]; !ok {
		t.Fatalf("expected common.go, got %v", out.Files)
	}
}

func TestCompileReusesParseCacheAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "schema", "class Point(Container):\n  x: uint32\n")
	cacheDir := filepath.Join(dir, ".cache")

	opts := compiler.Options{
		Entries:   []string{"schema"},
		BaseDir:   dir,
		Packaging: "single",
		CacheDir:  cacheDir,
	}
	first, err := compiler.Compile(opts)
	if err != nil {
		t.Fatalf("first Compile: %v", err)
	}
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected a parse cache entry to be written")
	}

	second, err := compiler.Compile(opts)
	if err != nil {
		t.Fatalf("second Compile: %v", err)
	}
	if string(first.Files["types.go"]) != string(second.Files["types.go"]) {
		t.Errorf("cached compile produced different output than the fresh one")
	}
}

func TestCompileRequiresAtLeastOneEntry(t *testing.T) {
	if _, err := compiler.Compile(compiler.Options{BaseDir: t.TempDir()}); err == nil {
		t.Fatalf("expected an error when no entries are given")
	}
}

func TestCompileMissingEntryFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := compiler.Compile(compiler.Options{
		Entries: []string{"doesnotexist"},
		BaseDir: dir,
	}); err == nil {
		t.Fatalf("expected an error for a missing entry module")
	}
}
