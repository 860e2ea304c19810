// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"strings"
	"testing"

	"github.com/sszlab/ssz/schema/resolve"
)

func TestPlanFieldPrimitives(t *testing.T) {
	kinds := newClassKinds()

	tests := []struct {
		name     string
		ty       resolve.Ty
		wantOwn  string
		wantView string
		static   bool
		fixedLen int
	}{
		{"boolean", resolve.SimpleTy{Name: "boolean"}, "bool", "bool", true, 1},
		{"uint8", resolve.SimpleTy{Name: "uint8"}, "uint8", "uint8", true, 1},
		{"uint64", resolve.SimpleTy{Name: "uint64"}, "uint64", "uint64", true, 8},
		{"uint256", resolve.SimpleTy{Name: "uint256"}, "*uint256.Int", "*uint256.Int", true, 32},
		{"Bytes32", resolve.SimpleTy{Name: "Bytes32"}, "[]byte", "view.FixedBytesRef", true, 32},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := planField(resolve.ResolvedField{Name: "F", Type: tc.ty}, kinds)
			if err != nil {
				t.Fatalf("planField: %v", err)
			}
			if plan.Owned != tc.wantOwn {
				t.Errorf("Owned = %q, want %q", plan.Owned, tc.wantOwn)
			}
			if plan.View != tc.wantView {
				t.Errorf("View = %q, want %q", plan.View, tc.wantView)
			}
			if plan.Static != tc.static {
				t.Errorf("Static = %v, want %v", plan.Static, tc.static)
			}
			if plan.FixedLen != tc.fixedLen {
				t.Errorf("FixedLen = %d, want %d", plan.FixedLen, tc.fixedLen)
			}
		})
	}
}

func TestPlanFieldOptionalScalarBridges(t *testing.T) {
	kinds := newClassKinds()
	opt := resolve.ComplexTy{Name: "Optional", Args: []resolve.ResolvedArg{
		resolve.ArgTy{Ty: resolve.SimpleTy{Name: "uint32"}},
	}}
	plan, err := planField(resolve.ResolvedField{Name: "F", Type: opt, Optional: true}, kinds)
	if err != nil {
		t.Fatalf("planField: %v", err)
	}
	if plan.Owned != "*uint32" {
		t.Fatalf("Owned = %q, want *uint32", plan.Owned)
	}
	if !plan.OptionalBridge {
		t.Fatalf("expected OptionalBridge for a scalar Optional field")
	}
}

func TestPlanFieldOptionalObjectRefNoBridge(t *testing.T) {
	kinds := newClassKinds()
	kinds.add("Inner", &resolve.ResolvedClass{Name: "Inner", Kind: resolve.KindContainer})
	opt := resolve.ComplexTy{Name: "Optional", Args: []resolve.ResolvedArg{
		resolve.ArgTy{Ty: resolve.SimpleTy{Name: "Inner"}},
	}}
	plan, err := planField(resolve.ResolvedField{Name: "F", Type: opt, Optional: true}, kinds)
	if err != nil {
		t.Fatalf("planField: %v", err)
	}
	if plan.Owned != "*Inner" {
		t.Fatalf("Owned = %q, want *Inner (no double pointer)", plan.Owned)
	}
	if plan.OptionalBridge {
		t.Fatalf("object reference fields already carry a nil sentinel, should not bridge")
	}
}

func TestPlanFieldOptionalUint256NoBridge(t *testing.T) {
	kinds := newClassKinds()
	opt := resolve.ComplexTy{Name: "Optional", Args: []resolve.ResolvedArg{
		resolve.ArgTy{Ty: resolve.SimpleTy{Name: "uint256"}},
	}}
	plan, err := planField(resolve.ResolvedField{Name: "F", Type: opt, Optional: true}, kinds)
	if err != nil {
		t.Fatalf("planField: %v", err)
	}
	if plan.Owned != "*uint256.Int" {
		t.Fatalf("Owned = %q, want *uint256.Int", plan.Owned)
	}
	if plan.OptionalBridge {
		t.Fatalf("uint256 already carries a nil sentinel, should not bridge")
	}
}

func TestPlanFieldBitvectorAndBitlist(t *testing.T) {
	kinds := newClassKinds()

	vec, err := planField(resolve.ResolvedField{Name: "V", Type: resolve.ComplexTy{
		Name: "Bitvector", Args: []resolve.ResolvedArg{resolve.ArgInt{Value: 16}},
	}}, kinds)
	if err != nil {
		t.Fatalf("planField vector: %v", err)
	}
	if vec.Bitfield != "vector" || !vec.Static {
		t.Fatalf("Bitvector plan = %+v", vec)
	}

	list, err := planField(resolve.ResolvedField{Name: "L", Type: resolve.ComplexTy{
		Name: "Bitlist", Args: []resolve.ResolvedArg{resolve.ArgInt{Value: 16}},
	}}, kinds)
	if err != nil {
		t.Fatalf("planField list: %v", err)
	}
	if list.Bitfield != "list" || list.Static {
		t.Fatalf("Bitlist plan = %+v", list)
	}
}

func TestUnitOnlyPlan(t *testing.T) {
	kinds := newClassKinds()
	plan, err := planField(resolve.ResolvedField{Name: "None", UnitOnly: true}, kinds)
	if err != nil {
		t.Fatalf("planField: %v", err)
	}
	if !plan.UnitOnlyPlan() {
		t.Fatalf("expected a unit-only plan")
	}
}

func TestNestedStaticObjectDefineCall(t *testing.T) {
	kinds := newClassKinds()
	kinds.add("Inner", &resolve.ResolvedClass{Name: "Inner", Kind: resolve.KindContainer})
	plan, err := planField(resolve.ResolvedField{Name: "F", Type: resolve.SimpleTy{Name: "Inner"}}, kinds)
	if err != nil {
		t.Fatalf("planField: %v", err)
	}
	if !plan.Static {
		t.Fatalf("a Container with no fields is static, expected Static=true")
	}
	if !strings.Contains(plan.DefineStatic, "DefineStaticObject") {
		t.Fatalf("DefineStatic = %q, want a DefineStaticObject call", plan.DefineStatic)
	}
}
