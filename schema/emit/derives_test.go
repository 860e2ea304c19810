// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"testing"

	"github.com/sszlab/ssz/schema/resolve"
)

func TestDefaultDerivesConfig(t *testing.T) {
	cfg := DefaultDerivesConfig()
	owned := cfg.ownedCapabilities("Anything", resolve.KindContainer)
	for _, cap := range []Capability{CapCodec, CapTreeHash, CapEqual, CapClone} {
		if !owned.has(cap) {
			t.Errorf("default owned capabilities missing %q", cap)
		}
	}
	view := cfg.viewCapabilities("Anything", resolve.KindContainer)
	if view.has(CapClone) {
		t.Errorf("default view capabilities should not include clone")
	}
	if !view.has(CapCodec) || !view.has(CapTreeHash) {
		t.Errorf("default view capabilities missing codec/tree-hash")
	}
}

func TestLoadDerivesConfigResolutionOrder(t *testing.T) {
	yaml := `
defaults:
  owned: [codec, tree-hash, equal, clone]
kinds:
  stable-container:
    owned: [codec, tree-hash]
classes:
  Special:
    owned: [codec, tree-hash, clone]
`
	cfg, err := LoadDerivesConfig([]byte(yaml))
	if err != nil {
		t.Fatalf("LoadDerivesConfig: %v", err)
	}

	// Class override wins even for a class of the overridden kind.
	special := cfg.ownedCapabilities("Special", resolve.KindStableContainer)
	if !special.has(CapClone) || special.has(CapEqual) {
		t.Errorf("class-level override not applied: %+v", special)
	}

	// Kind override applies to any other class of that kind.
	other := cfg.ownedCapabilities("OtherStable", resolve.KindStableContainer)
	if other.has(CapEqual) || other.has(CapClone) {
		t.Errorf("kind-level override not applied: %+v", other)
	}

	// Falls back to the global default for an unrelated kind.
	plain := cfg.ownedCapabilities("Plain", resolve.KindContainer)
	if !plain.has(CapEqual) || !plain.has(CapClone) {
		t.Errorf("global default not applied: %+v", plain)
	}
}

func TestLoadDerivesConfigUnknownKind(t *testing.T) {
	_, err := LoadDerivesConfig([]byte("kinds:\n  bogus:\n    owned: [codec]\n"))
	if err == nil {
		t.Fatalf("expected an error for an unknown class kind")
	}
}
