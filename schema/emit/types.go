// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"fmt"
	"strings"

	"github.com/sszlab/ssz/schema/resolve"
)

// classKinds is the per-run lookup the field planner needs to tell a static
// object from a dynamic one, across every module collected for this run.
type classKinds struct {
	classes map[string]*resolve.ResolvedClass // keyed by bare class name, collisions resolved by caller ordering
}

func newClassKinds() *classKinds { return &classKinds{classes: make(map[string]*resolve.ResolvedClass)} }

func (k *classKinds) add(name string, rc *resolve.ResolvedClass) { k.classes[name] = rc }

// isStaticClass reports whether every field of the named class resolves to
// a fixed wire size. Nothing is cached between calls; seen only records the
// classes already entered during this one walk through nested containers.
func (k *classKinds) isStaticClass(name string, seen map[string]bool) bool {
	rc, ok := k.classes[name]
	if !ok {
		return false // unknown (imported, or a Union) — default to dynamic, the conservative choice
	}
	if rc.Kind == resolve.KindUnion {
		return false // a union's size varies by selector
	}
	if rc.Kind == resolve.KindStableContainer || rc.Kind == resolve.KindProfile {
		return false // presence-driven, always variable-composite on the wire
	}
	if seen[name] {
		return true // a cycle only occurs through pointers, which are themselves dynamic slots; break conservatively
	}
	seen[name] = true
	for _, f := range rc.Fields {
		if f.UnitOnly {
			continue
		}
		if !k.isStaticFieldType(f.Type, seen) {
			return false
		}
	}
	return true
}

func (k *classKinds) isStaticFieldType(ty resolve.Ty, seen map[string]bool) bool {
	switch t := ty.(type) {
	case resolve.SimpleTy:
		switch t.Name {
		case "boolean", "null", "byte", "uint8", "uint16", "uint32", "uint64", "uint128", "uint256":
			return true
		}
		if strings.HasPrefix(t.Name, "Bytes") {
			return true
		}
		return k.isStaticClass(t.Name, seen)
	case resolve.ComplexTy:
		switch t.Name {
		case "Vector", "Bitvector":
			return true
		case "List", "Bitlist", "Optional", "Union":
			return false
		}
	case resolve.ImportedTy, resolve.ImportedComplexTy:
		return false
	}
	return false
}

// fieldPlan is the fully resolved rendering of one struct field: its owned
// and view Go types, and the Codec call(s) its DefineSSZ/getter use.
type fieldPlan struct {
	Name     string
	Owned    string // Go type of the owned struct field
	View     string // Go type the view getter returns ("" for a Union unit variant)
	Static   bool   // true: fixed-size, occupies only the static section
	FixedLen int    // byte length when Static and known at emit time; 0 when runtime-determined (nested static object)
	Optional bool

	// DefineStatic is the codec call used for a static field, or the offset
	// call's template for a dynamic field's static slot.
	DefineStatic string
	// DefineDynamic is the codec call template used for a dynamic field's
	// content section; empty for a static field.
	DefineDynamic string
	MaxItems      uint64
	MaxSize       uint64

	// OptionalBridge is true when planField had to synthesize the pointer
	// wrapping itself (scalar/BytesN/Vector fields, whose Define* calls
	// otherwise address &obj.Name as the bare value type) — class.go routes
	// these through a local bridge variable instead of calling DefineStatic
	// directly against the pointer field. Object references and uint128/256
	// already carry a natural pointer/nil sentinel (Owned already starts with
	// "*" before Optional wrapping), so their Define* calls work unmodified
	// against the Optional pointer field and OptionalBridge stays false.
	OptionalBridge bool

	// Bitfield is "vector" or "list" for a field backed by our own bitfield
	// package rather than a plain Go type; class.go emits a byte-slice
	// bridge through DefineEncoder/DefineDecoder/DefineHasher for these
	// instead of the single-line DefineStatic/DefineDynamic call, since the
	// owned type (*bitfield.BitVector / *bitfield.BitList) has no direct
	// Codec opset of its own — it needs to match the view layer's
	// BitVectorRef.ToOwned/BitListRef.ToOwned result types exactly.
	Bitfield string
}

// planField resolves one ResolvedField into its Go code-generation plan.
func planField(f resolve.ResolvedField, kinds *classKinds) (*fieldPlan, error) {
	if f.UnitOnly {
		return &fieldPlan{Name: f.Name, Static: true}, nil
	}
	ty := f.Type
	if f.Optional {
		ty = underlyingOptional(ty)
	}
	plan, err := planType(f.Name, ty, kinds)
	if err != nil {
		return nil, err
	}
	plan.Optional = f.Optional
	if f.Optional && plan.Bitfield == "" {
		if strings.HasPrefix(plan.Owned, "*") {
			// Already pointer-shaped (object reference, uint128/256): nil
			// itself is the absence sentinel, Define* calls need no bridge.
		} else {
			plan.Owned = "*" + plan.Owned
			plan.OptionalBridge = true
		}
	}
	return plan, nil
}

// underlyingOptional unwraps Optional[T] to T; callers already know the
// field is optional from ResolvedField.Optional.
func underlyingOptional(ty resolve.Ty) resolve.Ty {
	if c, ok := ty.(resolve.ComplexTy); ok && c.Name == "Optional" {
		if len(c.Args) == 1 {
			if a, ok := c.Args[0].(resolve.ArgTy); ok {
				return a.Ty
			}
		}
	}
	return ty
}

func planType(name string, ty resolve.Ty, kinds *classKinds) (*fieldPlan, error) {
	switch t := ty.(type) {
	case resolve.SimpleTy:
		return planSimple(name, t.Name, kinds)
	case resolve.ComplexTy:
		return planComplex(name, t, kinds)
	case resolve.ImportedTy:
		return planImported(name, t.Name, nil)
	case resolve.ImportedComplexTy:
		return planImported(name, t.Name, t.Args)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, ty)
}

func planSimple(name, typeName string, kinds *classKinds) (*fieldPlan, error) {
	switch typeName {
	case "boolean":
		return &fieldPlan{Name: name, Owned: "bool", View: "bool", Static: true, FixedLen: 1,
			DefineStatic: "ssz.DefineBool(codec, &obj." + name + ")"}, nil
	case "byte", "uint8":
		return &fieldPlan{Name: name, Owned: "uint8", View: "uint8", Static: true, FixedLen: 1,
			DefineStatic: "ssz.DefineUint8(codec, &obj." + name + ")"}, nil
	case "uint16":
		return &fieldPlan{Name: name, Owned: "uint16", View: "uint16", Static: true, FixedLen: 2,
			DefineStatic: "ssz.DefineUint16(codec, &obj." + name + ")"}, nil
	case "uint32":
		return &fieldPlan{Name: name, Owned: "uint32", View: "uint32", Static: true, FixedLen: 4,
			DefineStatic: "ssz.DefineUint32(codec, &obj." + name + ")"}, nil
	case "uint64":
		return &fieldPlan{Name: name, Owned: "uint64", View: "uint64", Static: true, FixedLen: 8,
			DefineStatic: "ssz.DefineUint64(codec, &obj." + name + ")"}, nil
	case "uint128":
		return &fieldPlan{Name: name, Owned: "*uint256.Int", View: "*uint256.Int", Static: true, FixedLen: 16,
			DefineStatic: "ssz.DefineUint128(codec, &obj." + name + ")"}, nil
	case "uint256":
		return &fieldPlan{Name: name, Owned: "*uint256.Int", View: "*uint256.Int", Static: true, FixedLen: 32,
			DefineStatic: "ssz.DefineUint256(codec, &obj." + name + ")"}, nil
	}
	if n, ok := bytesNSize(typeName); ok {
		return &fieldPlan{Name: name, Owned: "[]byte", View: "view.FixedBytesRef", Static: true, FixedLen: n,
			DefineStatic: fmt.Sprintf("ssz.DefineCheckedStaticBytes(codec, &obj.%s, %d)", name, n)}, nil
	}
	// A bare user class name: Container, StableContainer, Profile or Union.
	static := kinds.isStaticClass(typeName, map[string]bool{})
	owned := "*" + typeName
	view := typeName + "Ref"
	if static {
		return &fieldPlan{Name: name, Owned: owned, View: view, Static: true,
			DefineStatic: fmt.Sprintf("ssz.DefineStaticObject(codec, &obj.%s)", name)}, nil
	}
	return &fieldPlan{Name: name, Owned: owned, View: view, Static: false,
		DefineStatic:  fmt.Sprintf("ssz.DefineDynamicObjectOffset(codec, &obj.%s)", name),
		DefineDynamic: fmt.Sprintf("ssz.DefineDynamicObjectContent(codec, &obj.%s)", name)}, nil
}

func bytesNSize(name string) (int, bool) {
	if !strings.HasPrefix(name, "Bytes") {
		return 0, false
	}
	digits := name[len("Bytes"):]
	if digits == "" {
		return 0, false
	}
	n := 0
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, false
		}
		n = n*10 + int(d-'0')
	}
	if n < 1 || n > 64 {
		return 0, false
	}
	return n, true
}

func argInt(a resolve.ResolvedArg) (uint64, bool) {
	switch v := a.(type) {
	case resolve.ArgInt:
		return v.Value, true
	case resolve.ArgConstRef:
		return v.Value, true
	}
	return 0, false
}

func planComplex(name string, t resolve.ComplexTy, kinds *classKinds) (*fieldPlan, error) {
	switch t.Name {
	case "Vector":
		elemTy := t.Args[0].(resolve.ArgTy).Ty
		n, _ := argInt(t.Args[1])
		return planVector(name, elemTy, n, kinds)
	case "List":
		elemTy := t.Args[0].(resolve.ArgTy).Ty
		maxItems, _ := argInt(t.Args[1])
		return planList(name, elemTy, maxItems, kinds)
	case "Bitvector":
		n, _ := argInt(t.Args[0])
		size := int((n + 7) / 8)
		if size < 1 {
			size = 1
		}
		return &fieldPlan{Name: name, Owned: "*bitfield.BitVector", View: "view.BitVectorRef", Static: true, FixedLen: size,
			Bitfield: "vector", MaxSize: uint64(size)}, nil
	case "Bitlist":
		maxBits, _ := argInt(t.Args[0])
		return &fieldPlan{Name: name, Owned: "*bitfield.BitList", View: "view.BitListRef", Static: false,
			Bitfield: "list", MaxSize: maxBits}, nil
	case "Union":
		// The only legal anonymous Union is the two-variant `Union[null, T]`
		// optional-sugar form, already unwrapped by underlyingOptional before
		// reaching here; a field whose resolved type is still ComplexTy
		// "Union" at this point is the class-level case, handled in class.go.
		return nil, fmt.Errorf("%w: anonymous non-optional Union field %q", ErrUnsupportedType, name)
	}
	return nil, fmt.Errorf("%w: constructor %q", ErrUnsupportedType, t.Name)
}

func planVector(name string, elem resolve.Ty, n uint64, kinds *classKinds) (*fieldPlan, error) {
	if isByteTy(elem) {
		return &fieldPlan{Name: name, Owned: "[]byte", View: "view.FixedBytesRef", Static: true, FixedLen: int(n),
			DefineStatic: fmt.Sprintf("ssz.DefineCheckedStaticBytes(codec, &obj.%s, %d)", name, n)}, nil
	}
	if s, ok := elem.(resolve.SimpleTy); ok && s.Name == "uint64" {
		return &fieldPlan{Name: name, Owned: fmt.Sprintf("[%d]uint64", n), View: "view.FixedVectorRef", Static: true, FixedLen: int(n) * 8,
			DefineStatic: fmt.Sprintf("ssz.DefineArrayOfUint64s(codec, &obj.%s)", name)}, nil
	}
	return nil, fmt.Errorf("%w: Vector of %v (only byte and uint64 element vectors are supported)", ErrUnsupportedType, elem)
}

func planList(name string, elem resolve.Ty, maxItems uint64, kinds *classKinds) (*fieldPlan, error) {
	if isByteTy(elem) {
		return &fieldPlan{Name: name, Owned: "[]byte", View: "view.ListRef", Static: false,
			DefineStatic:  fmt.Sprintf("ssz.DefineDynamicBytesOffset(codec, &obj.%s)", name),
			DefineDynamic: fmt.Sprintf("ssz.DefineDynamicBytesContent(codec, &obj.%s, %d)", name, maxItems),
			MaxItems:      maxItems}, nil
	}
	if s, ok := elem.(resolve.SimpleTy); ok && s.Name == "uint64" {
		return &fieldPlan{Name: name, Owned: "[]uint64", View: "view.ListRef", Static: false,
			DefineStatic:  fmt.Sprintf("ssz.DefineSliceOfUint64sOffset(codec, &obj.%s)", name),
			DefineDynamic: fmt.Sprintf("ssz.DefineSliceOfUint64sContent(codec, &obj.%s, %d)", name, maxItems),
			MaxItems:      maxItems}, nil
	}
	if s, ok := elem.(resolve.SimpleTy); ok {
		static := kinds.isStaticClass(s.Name, map[string]bool{})
		elemOwned := "*" + s.Name
		if static {
			return &fieldPlan{Name: name, Owned: "[]" + elemOwned, View: "view.ListRef", Static: false,
				DefineStatic:  fmt.Sprintf("ssz.DefineSliceOfStaticObjectsOffset(codec, &obj.%s)", name),
				DefineDynamic: fmt.Sprintf("ssz.DefineSliceOfStaticObjectsContent(codec, &obj.%s, %d)", name, maxItems),
				MaxItems:      maxItems}, nil
		}
		return &fieldPlan{Name: name, Owned: "[]" + elemOwned, View: "view.ListRef", Static: false,
			DefineStatic:  fmt.Sprintf("ssz.DefineSliceOfDynamicObjectsOffset(codec, &obj.%s)", name),
			DefineDynamic: fmt.Sprintf("ssz.DefineSliceOfDynamicObjectsContent(codec, &obj.%s, %d)", name, maxItems),
			MaxItems:      maxItems}, nil
	}
	return nil, fmt.Errorf("%w: List of %v", ErrUnsupportedType, elem)
}

func isByteTy(ty resolve.Ty) bool {
	s, ok := ty.(resolve.SimpleTy)
	return ok && (s.Name == "byte" || s.Name == "uint8")
}

// planImported renders a cross-module reference. Every imported reference
// is planned as container-like: a DynamicObject with an XxxRef view type.
// No field pragma changes this, so an imported static or primitive-like
// type is planned the same way.
func planImported(name, typeName string, args []resolve.ResolvedArg) (*fieldPlan, error) {
	owned := "*" + typeName
	view := typeName + "Ref"
	return &fieldPlan{Name: name, Owned: owned, View: view, Static: false,
		DefineStatic:  fmt.Sprintf("ssz.DefineDynamicObjectOffset(codec, &obj.%s)", name),
		DefineDynamic: fmt.Sprintf("ssz.DefineDynamicObjectContent(codec, &obj.%s)", name)}, nil
}
