// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"fmt"

	"github.com/sszlab/ssz/schema/resolve"
	"gopkg.in/yaml.v3"
)

// Capability is one thing a generated item can attach beyond its bare
// SizeSSZ/DefineSSZ pair.
type Capability string

const (
	CapCodec     Capability = "codec"
	CapTreeHash  Capability = "tree-hash"
	CapEqual     Capability = "equal"
	CapClone     Capability = "clone"
)

// item distinguishes the owned representation from the borrowed view, since
// a derives config can set a different capability set for each.
type item string

const (
	itemOwned item = "owned"
	itemView  item = "view"
)

// capSet is an ordered-independent set of capability names, as they appear
// in a derives YAML file's capability lists.
type capSet struct {
	set map[Capability]bool
}

func newCapSet(names []string) capSet {
	cs := capSet{set: make(map[Capability]bool, len(names))}
	for _, n := range names {
		cs.set[Capability(n)] = true
	}
	return cs
}

func (c capSet) has(cap Capability) bool { return c.set[cap] }

// derivesYAML is the on-disk shape read by gopkg.in/yaml.v3: a global
// default per item kind, an optional per-class-kind override of that
// default, and a per-named-class override that replaces the default
// outright. Matches spec.md §6.2's "per emitted item (owned or view) and
// per class kind... defaults... overrides replace the default set for
// named items."
type derivesYAML struct {
	Defaults map[string][]string            `yaml:"defaults"`
	Kinds    map[string]map[string][]string `yaml:"kinds"`
	Classes  map[string]map[string][]string `yaml:"classes"`
}

// DerivesConfig is the resolved, query-ready form of a derives YAML file.
type DerivesConfig struct {
	defaults map[item]capSet
	kinds    map[resolve.ClassKind]map[item]capSet
	classes  map[string]map[item]capSet
}

// DefaultDerivesConfig is what an emitted item gets absent any -derives
// flag: codec and tree-hash plus equality and clone for the owned
// representation; codec and tree-hash only for the view, since cloning a
// borrowed, zero-copy buffer contradicts the view layer's own contract
// (spec.md §4.3) — an Open Question decision, see DESIGN.md.
func DefaultDerivesConfig() *DerivesConfig {
	return &DerivesConfig{
		defaults: map[item]capSet{
			itemOwned: newCapSet([]string{"codec", "tree-hash", "equal", "clone"}),
			itemView:  newCapSet([]string{"codec", "tree-hash"}),
		},
	}
}

// LoadDerivesConfig parses a derives YAML document (the -derives FILE.yaml
// compiler flag's contents) against DefaultDerivesConfig's fallback.
func LoadDerivesConfig(data []byte) (*DerivesConfig, error) {
	var raw derivesYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("emit: parse derives config: %w", err)
	}
	cfg := DefaultDerivesConfig()
	for itemName, names := range raw.Defaults {
		cfg.defaults[item(itemName)] = newCapSet(names)
	}
	if len(raw.Kinds) > 0 {
		cfg.kinds = make(map[resolve.ClassKind]map[item]capSet, len(raw.Kinds))
		for kindName, perItem := range raw.Kinds {
			kind, ok := parseKindName(kindName)
			if !ok {
				return nil, fmt.Errorf("emit: unknown class kind %q in derives config", kindName)
			}
			m := make(map[item]capSet, len(perItem))
			for itemName, names := range perItem {
				m[item(itemName)] = newCapSet(names)
			}
			cfg.kinds[kind] = m
		}
	}
	if len(raw.Classes) > 0 {
		cfg.classes = make(map[string]map[item]capSet, len(raw.Classes))
		for className, perItem := range raw.Classes {
			m := make(map[item]capSet, len(perItem))
			for itemName, names := range perItem {
				m[item(itemName)] = newCapSet(names)
			}
			cfg.classes[className] = m
		}
	}
	return cfg, nil
}

func parseKindName(name string) (resolve.ClassKind, bool) {
	switch name {
	case "container":
		return resolve.KindContainer, true
	case "stable-container":
		return resolve.KindStableContainer, true
	case "profile":
		return resolve.KindProfile, true
	case "union":
		return resolve.KindUnion, true
	}
	return 0, false
}

// ownedCapabilities resolves the owned representation's capability set for
// className, applying class-level override > kind-level override > global
// default, in that order.
func (c *DerivesConfig) ownedCapabilities(className string, kind resolve.ClassKind) capSet {
	return c.resolve(className, kind, itemOwned)
}

func (c *DerivesConfig) viewCapabilities(className string, kind resolve.ClassKind) capSet {
	return c.resolve(className, kind, itemView)
}

func (c *DerivesConfig) resolve(className string, kind resolve.ClassKind, it item) capSet {
	if perItem, ok := c.classes[className]; ok {
		if cs, ok := perItem[it]; ok {
			return cs
		}
	}
	if perItem, ok := c.kinds[kind]; ok {
		if cs, ok := perItem[it]; ok {
			return cs
		}
	}
	return c.defaults[it]
}
