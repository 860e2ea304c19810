// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"strings"
	"testing"

	"github.com/sszlab/ssz/schema/resolve"
)

// twoModuleFixture returns a small two-module set: "main" declares Point and
// imports "other", which declares Blob; "other" is resolved but not external,
// mirroring what ModuleManager.Resolve would have produced for a real
// two-file schema.
func twoModuleFixture() map[string]*resolve.ModuleInfo {
	point := &resolve.ResolvedClass{
		Name: "Point",
		Kind: resolve.KindContainer,
		Fields: []resolve.ResolvedField{
			{Name: "X", Type: resolve.SimpleTy{Name: "uint32"}},
		},
	}
	blob := &resolve.ResolvedClass{
		Name: "Blob",
		Kind: resolve.KindContainer,
		Fields: []resolve.ResolvedField{
			{Name: "Id", Type: resolve.SimpleTy{Name: "uint64"}},
		},
	}
	empty := &resolve.ModuleInfo{Path: "unused", Exports: map[string]resolve.IdentTarget{}}
	if !empty.Empty() {
		panic("fixture module expected to be Empty()")
	}

	return map[string]*resolve.ModuleInfo{
		"main": {
			Path:    "main",
			Exports: map[string]resolve.IdentTarget{"Point": resolve.TypeTarget{}},
			Classes: map[string]*resolve.ResolvedClass{"Point": point},
		},
		"other": {
			Path:    "other",
			Exports: map[string]resolve.IdentTarget{"Blob": resolve.TypeTarget{}},
			Classes: map[string]*resolve.ResolvedClass{"Blob": blob},
		},
		"unused": empty,
	}
}

func TestEmitSingleMergesAllModules(t *testing.T) {
	out, err := Emit(twoModuleFixture(), "single", nil)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(out.Files) != 1 {
		t.Fatalf("single packaging should produce exactly one file, got %d", len(out.Files))
	}
	src := string(out.Files["types.go"])
	for _, want := range []string{"type Point struct {", "type Blob struct {", "package sszgen"} {
		if !strings.Contains(src, want) {
			t.Errorf("types.go missing %q", want)
		}
	}
}

func TestEmitFlatOneFilePerModule(t *testing.T) {
	out, err := Emit(twoModuleFixture(), "flat", nil)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(string(out.Files["main.go"]), "type Point struct {") {
		t.Errorf("main.go missing Point")
	}
	if !strings.Contains(string(out.Files["other.go"]), "type Blob struct {") {
		t.Errorf("other.go missing Blob")
	}
	if _, ok := out.Files["runtime.go"]; !ok {
		t.Errorf("flat packaging should emit a shared runtime.go")
	}
	if _, ok := out.Files["unused.go"]; ok {
		t.Errorf("an Empty() module should not produce an output file")
	}
}

func TestEmitNestedOneDirectoryPerModule(t *testing.T) {
	out, err := Emit(twoModuleFixture(), "nested", nil)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	mainSrc, ok := out.Files["main/types.go"]
	if !ok {
		t.Fatalf("expected main/types.go, got %v", keysOf(out.Files))
	}
	if !strings.Contains(string(mainSrc), "package main") && !strings.Contains(string(mainSrc), "package ") {
		t.Errorf("nested file missing a package clause: %s", mainSrc)
	}
	otherSrc, ok := out.Files["other/types.go"]
	if !ok {
		t.Fatalf("expected other/types.go, got %v", keysOf(out.Files))
	}
	if !strings.Contains(string(otherSrc), "type Blob struct {") {
		t.Errorf("other/types.go missing Blob")
	}
	// Unlike flat packaging's single shared runtime.go, each nested file
	// carries its own copy of the runtime helpers alongside its own package
	// clause, since nested packages can't share an unexported file.
	if !strings.Contains(string(mainSrc), "package main") {
		t.Errorf("main/types.go should be in package main, got:\n%s", mainSrc)
	}
	if !strings.Contains(string(otherSrc), "package other") {
		t.Errorf("other/types.go should be in package other, got:\n%s", otherSrc)
	}
}

func TestEmitSingleRejectsDuplicateClassNames(t *testing.T) {
	dup := &resolve.ResolvedClass{Name: "Point", Kind: resolve.KindContainer}
	modules := map[string]*resolve.ModuleInfo{
		"a": {Path: "a", Exports: map[string]resolve.IdentTarget{"Point": resolve.TypeTarget{}}, Classes: map[string]*resolve.ResolvedClass{"Point": dup}},
		"b": {Path: "b", Exports: map[string]resolve.IdentTarget{"Point": resolve.TypeTarget{}}, Classes: map[string]*resolve.ResolvedClass{"Point": dup}},
	}
	if _, err := Emit(modules, "single", nil); err == nil {
		t.Fatalf("expected a name-collision error under single packaging")
	}
}

func TestEmitSkipsExternalModules(t *testing.T) {
	modules := map[string]*resolve.ModuleInfo{
		"ext": {Path: "ext", External: true},
	}
	out, err := Emit(modules, "flat", nil)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(out.Files) != 0 {
		t.Errorf("an all-external module set should produce no output files, got %v", keysOf(out.Files))
	}
}

func TestEmitUnknownPackaging(t *testing.T) {
	if _, err := Emit(twoModuleFixture(), "bogus", nil); err == nil {
		t.Fatalf("expected an error for an unknown packaging strategy")
	}
}

func keysOf(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
