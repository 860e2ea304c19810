// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sszlab/ssz/schema/resolve"
)

// classPlan is one class's complete code-generation plan: its field plans
// plus the bookkeeping generateClass needs to pick a SizeSSZ/DefineSSZ shape.
type classPlan struct {
	Name   string
	Kind   resolve.ClassKind
	MaxN   uint64
	Fields []*fieldPlan
	Static bool
}

func planClass(rc *resolve.ResolvedClass, kinds *classKinds) (*classPlan, error) {
	cp := &classPlan{Name: rc.Name, Kind: rc.Kind, MaxN: rc.MaxN}
	if rc.Kind == resolve.KindUnion {
		for _, f := range rc.Fields {
			fp, err := planUnionVariant(f, kinds)
			if err != nil {
				return nil, fmt.Errorf("class %q variant %q: %w", rc.Name, f.Name, err)
			}
			cp.Fields = append(cp.Fields, fp)
		}
		return cp, nil
	}
	for _, f := range rc.Fields {
		fp, err := planField(f, kinds)
		if err != nil {
			return nil, fmt.Errorf("class %q field %q: %w", rc.Name, f.Name, err)
		}
		cp.Fields = append(cp.Fields, fp)
	}
	switch rc.Kind {
	case resolve.KindContainer:
		cp.Static = kinds.isStaticClass(rc.Name, map[string]bool{})
	default:
		cp.Static = false // StableContainer/Profile are always presence-driven variable composites
	}
	return cp, nil
}

// planUnionVariant resolves one Union class's variant: a bare `none` unit, or
// a named typed payload.
func planUnionVariant(f resolve.ResolvedField, kinds *classKinds) (*fieldPlan, error) {
	if f.UnitOnly {
		return &fieldPlan{Name: f.Name, Static: true}, nil
	}
	return planType(f.Name, f.Type, kinds)
}

// generateClass renders one class's owned type, SizeSSZ/DefineSSZ and view
// type + getters into Go source, grounded on cmd/sszgen/gen.go's
// bytes.Buffer-and-Fprintf code-generation idiom (teacher never reaches for
// go/format or a templating engine for the bulk of the emitted methods; we
// don't either).
func generateClass(cp *classPlan, derives *DerivesConfig) ([]byte, error) {
	var b bytes.Buffer

	switch cp.Kind {
	case resolve.KindUnion:
		generateUnion(&b, cp)
	case resolve.KindStableContainer, resolve.KindProfile:
		generateStruct(&b, cp)
		generateStableSizeSSZ(&b, cp)
		generateStableDefineSSZ(&b, cp)
		generateView(&b, cp, derives)
	default:
		generateStruct(&b, cp)
		if cp.Static {
			generateStaticSizeSSZ(&b, cp)
		} else {
			generateDynamicSizeSSZ(&b, cp)
		}
		generateDefineSSZ(&b, cp)
		generateView(&b, cp, derives)
	}
	generateDerivedMethods(&b, cp, derives)
	return b.Bytes(), nil
}

// generateDerivedMethods emits Equal/Clone on the owned type per the
// resolved derives config (spec.md §6.2's "per emitted item... set of
// capabilities"); codec (SizeSSZ/DefineSSZ) and tree-hash are always
// present regardless of the config, since they're what makes the type a
// StaticObject/DynamicObject in the first place — the config only ever
// adds or withholds Equal/Clone on top of that baseline.
func generateDerivedMethods(b *bytes.Buffer, cp *classPlan, derives *DerivesConfig) {
	if cp.Kind == resolve.KindUnion {
		return // a union's Equal/Clone would need per-selector dispatch; not yet supported
	}
	caps := derives.ownedCapabilities(cp.Name, cp.Kind)
	if caps.has(CapEqual) {
		generateEqual(b, cp)
	}
	if caps.has(CapClone) {
		generateCloneMethod(b, cp)
	}
}

// objIsDynamic reports whether cp's owned type implements DynamicObject
// (SizeSSZ(bool)) rather than StaticObject (SizeSSZ()) — Equal/Clone need to
// call the matching encode/decode pair.
func objIsDynamic(cp *classPlan) bool {
	return cp.Kind == resolve.KindStableContainer || cp.Kind == resolve.KindProfile || !cp.Static
}

func generateEqual(b *bytes.Buffer, cp *classPlan) {
	fmt.Fprint(b, "// Equal reports whether obj and other encode to the same wire representation.\n")
	fmt.Fprintf(b, "func (obj *%s) Equal(other *%s) bool {\n", cp.Name, cp.Name)
	fmt.Fprint(b, "\tif obj == nil || other == nil {\n\t\treturn obj == other\n\t}\n")
	if objIsDynamic(cp) {
		fmt.Fprint(b, "\tselfBuf := make([]byte, obj.SizeSSZ(false))\n")
		fmt.Fprint(b, "\tif err := ssz.EncodeDynamicToBytes(selfBuf, obj); err != nil {\n\t\treturn false\n\t}\n")
		fmt.Fprint(b, "\totherBuf := make([]byte, other.SizeSSZ(false))\n")
		fmt.Fprint(b, "\tif err := ssz.EncodeDynamicToBytes(otherBuf, other); err != nil {\n\t\treturn false\n\t}\n")
	} else {
		fmt.Fprint(b, "\tselfBuf := make([]byte, obj.SizeSSZ())\n")
		fmt.Fprint(b, "\tif err := ssz.EncodeToBytes(selfBuf, obj); err != nil {\n\t\treturn false\n\t}\n")
		fmt.Fprint(b, "\totherBuf := make([]byte, other.SizeSSZ())\n")
		fmt.Fprint(b, "\tif err := ssz.EncodeToBytes(otherBuf, other); err != nil {\n\t\treturn false\n\t}\n")
	}
	fmt.Fprint(b, "\treturn bytes.Equal(selfBuf, otherBuf)\n}\n\n")
}

func generateCloneMethod(b *bytes.Buffer, cp *classPlan) {
	fmt.Fprint(b, "// Clone returns a deep copy of obj.\n")
	fmt.Fprintf(b, "func (obj *%s) Clone() *%s {\n", cp.Name, cp.Name)
	fmt.Fprint(b, "\tif obj == nil {\n\t\treturn nil\n\t}\n")
	fmt.Fprintf(b, "\tclone := new(%s)\n", cp.Name)
	if objIsDynamic(cp) {
		fmt.Fprint(b, "\tbuf := make([]byte, obj.SizeSSZ(false))\n")
		fmt.Fprint(b, "\tif err := ssz.EncodeDynamicToBytes(buf, obj); err != nil {\n\t\treturn nil\n\t}\n")
		fmt.Fprint(b, "\tif err := ssz.DecodeDynamicFromBytes(buf, clone); err != nil {\n\t\treturn nil\n\t}\n")
	} else {
		fmt.Fprint(b, "\tbuf := make([]byte, obj.SizeSSZ())\n")
		fmt.Fprint(b, "\tif err := ssz.EncodeToBytes(buf, obj); err != nil {\n\t\treturn nil\n\t}\n")
		fmt.Fprint(b, "\tif err := ssz.DecodeFromBytes(buf, clone); err != nil {\n\t\treturn nil\n\t}\n")
	}
	fmt.Fprint(b, "\treturn clone\n}\n\n")
}

func generateStruct(b *bytes.Buffer, cp *classPlan) {
	fmt.Fprintf(b, "// %s is a generated SSZ container.\n", cp.Name)
	fmt.Fprintf(b, "type %s struct {\n", cp.Name)
	for _, f := range cp.Fields {
		fmt.Fprintf(b, "\t%s %s\n", f.Name, f.Owned)
	}
	fmt.Fprint(b, "}\n\n")
}

func generateStaticSizeSSZ(b *bytes.Buffer, cp *classPlan) {
	var size int
	for _, f := range cp.Fields {
		size += f.FixedLen
	}
	fmt.Fprint(b, "// SizeSSZ returns the total size of the static ssz object.\n")
	fmt.Fprintf(b, "func (obj *%s) SizeSSZ() uint32 {\n", cp.Name)
	fmt.Fprintf(b, "\treturn %d\n", size)
	fmt.Fprint(b, "}\n\n")
}

func generateDynamicSizeSSZ(b *bytes.Buffer, cp *classPlan) {
	var fixed int
	for _, f := range cp.Fields {
		if f.Static {
			fixed += f.FixedLen
		} else {
			fixed += 4
		}
	}
	fmt.Fprint(b, "// SizeSSZ returns either the static size of the object if fixed == true, or\n// the total size otherwise.\n")
	fmt.Fprintf(b, "func (obj *%s) SizeSSZ(fixed bool) uint32 {\n", cp.Name)
	fmt.Fprintf(b, "\tsize := uint32(%d)\n", fixed)
	fmt.Fprint(b, "\tif fixed {\n\t\treturn size\n\t}\n")
	for _, f := range cp.Fields {
		if f.Static || f.UnitOnlyPlan() {
			continue
		}
		fmt.Fprintf(b, "\tsize += %s\n", dynamicSizeExpr(f))
	}
	fmt.Fprint(b, "\treturn size\n}\n\n")
}

// dynamicSizeExpr returns the Go expression computing a dynamic field's
// content-section size. ref is how the field's bare (unwrapped) value is
// reached: "obj.Name" normally, or "(*obj.Name)" for an Optional field
// planField had to pointer-wrap itself (OptionalBridge), since the codec
// calls above already dereference through a local bridge variable rather
// than the struct field directly, but size computation runs outside that
// closure and must deref explicitly.
func dynamicSizeExpr(f *fieldPlan) string {
	ref := "obj." + f.Name
	owned := f.Owned
	if f.OptionalBridge {
		ref = "(*obj." + f.Name + ")"
		owned = trimOwnedPointer(owned)
	}
	switch {
	case f.Bitfield == "list":
		return fmt.Sprintf("uint32(len(obj.%s.Encode()))", f.Name)
	case f.View == "view.ListRef" && owned == "[]byte":
		return fmt.Sprintf("ssz.SizeDynamicBlob(%s)", ref)
	case f.View == "view.ListRef":
		return dynamicSliceSizeExpr(f, ref, owned)
	default:
		// A single dynamic (variable-size) nested object.
		return fmt.Sprintf("obj.%s.SizeSSZ(false)", f.Name)
	}
}

func dynamicSliceSizeExpr(f *fieldPlan, ref, owned string) string {
	switch {
	case owned == "[]uint64":
		return fmt.Sprintf("uint32(len(%s)) * 8", ref)
	case strings.Contains(f.DefineDynamic, "StaticObjectsContent"):
		return fmt.Sprintf("ssz.SizeDynamicStatics(%s)", ref)
	default:
		return fmt.Sprintf("sizeDynamicObjects(%s)", ref)
	}
}

// UnitOnlyPlan reports whether this plan is a Union unit variant placeholder,
// which never contributes a struct field to a Container/StableContainer.
func (f *fieldPlan) UnitOnlyPlan() bool { return f.Owned == "" && f.View == "" && f.DefineStatic == "" }

func generateDefineSSZ(b *bytes.Buffer, cp *classPlan) {
	fmt.Fprint(b, "// DefineSSZ defines how an object is encoded/decoded.\n")
	fmt.Fprintf(b, "func (obj *%s) DefineSSZ(codec *ssz.Codec) {\n", cp.Name)
	for _, f := range cp.Fields {
		writeFieldStatic(b, f)
	}
	var dyn []*fieldPlan
	for _, f := range cp.Fields {
		if !f.Static {
			dyn = append(dyn, f)
		}
	}
	if len(dyn) > 0 {
		fmt.Fprint(b, "\n")
		for _, f := range dyn {
			writeFieldDynamic(b, f)
		}
	}
	fmt.Fprint(b, "}\n\n")
}

func writeFieldStatic(b *bytes.Buffer, f *fieldPlan) {
	switch f.Bitfield {
	case "vector":
		fmt.Fprintf(b, "\tvar %sBuf []byte\n", f.Name)
		fmt.Fprintf(b, "\tcodec.DefineEncoder(func(enc *ssz.Encoder) { %sBuf = obj.%s.AsSlice() })\n", f.Name, f.Name)
		fmt.Fprintf(b, "\tcodec.DefineHasher(func(har *ssz.Hasher) { %sBuf = obj.%s.AsSlice() })\n", f.Name, f.Name)
		fmt.Fprintf(b, "\tssz.DefineCheckedStaticBytes(codec, &%sBuf, %d)\n", f.Name, int(f.MaxSize))
		writeBitfieldDecodeCall(b, "\t", "obj."+f.Name, fmt.Sprintf("bitfield.DecodeBitVector(%sBuf, %d)", f.Name, int(f.MaxSize)*8))
		return
	case "list":
		return // a Bitlist is always a dynamic field; handled in writeFieldDynamic's offset slot
	}
	if f.DefineStatic == "" {
		return
	}
	fmt.Fprintf(b, "\t%s\n", f.DefineStatic)
}

func writeFieldDynamic(b *bytes.Buffer, f *fieldPlan) {
	if f.Bitfield == "list" {
		fmt.Fprintf(b, "\tvar %sBuf []byte\n", f.Name)
		fmt.Fprintf(b, "\tcodec.DefineEncoder(func(enc *ssz.Encoder) { %sBuf = obj.%s.Encode() })\n", f.Name, f.Name)
		fmt.Fprintf(b, "\tcodec.DefineHasher(func(har *ssz.Hasher) { %sBuf = obj.%s.Encode() })\n", f.Name, f.Name)
		fmt.Fprintf(b, "\tssz.DefineDynamicBytesOffset(codec, &%sBuf)\n", f.Name)
		fmt.Fprintf(b, "\tssz.DefineDynamicBytesContent(codec, &%sBuf, %d)\n", f.Name, f.MaxSize)
		writeBitfieldDecodeCall(b, "\t", "obj."+f.Name, fmt.Sprintf("bitfield.DecodeBitList(%sBuf, %d)", f.Name, f.MaxSize))
		return
	}
	fmt.Fprintf(b, "\t%s\n", f.DefineDynamic)
}

// writeBitfieldDecodeCall emits a DefineDecoder closure that decodes a
// bitfield.BitVector/BitList out of its already-collected byte buffer into
// target, propagating a malformed encoding (excess high bits, a short or
// long byte count) through dec.SetError rather than discarding it — the
// owned decode path needs the same rejection view/union.go's UnionRef
// constructor already applies to a selector byte, since these are the only
// points in the generated code that can observe DecodeBitVector/
// DecodeBitList's returned error at all.
func writeBitfieldDecodeCall(b *bytes.Buffer, indent, target, decodeCall string) {
	fmt.Fprintf(b, "%scodec.DefineDecoder(func(dec *ssz.Decoder) {\n", indent)
	fmt.Fprintf(b, "%s\tvar err error\n", indent)
	fmt.Fprintf(b, "%s\tif %s, err = %s; err != nil {\n", indent, target, decodeCall)
	fmt.Fprintf(b, "%s\t\tdec.SetError(err)\n", indent)
	fmt.Fprintf(b, "%s\t}\n", indent)
	fmt.Fprintf(b, "%s})\n", indent)
}

// generateStableSizeSSZ emits SizeSSZ for a StableContainer/Profile: always
// the presence-driven variable form, since which fields are even present
// varies per instance.
func generateStableSizeSSZ(b *bytes.Buffer, cp *classPlan) {
	fmt.Fprint(b, "// SizeSSZ returns either the static size of the object if fixed == true, or\n// the total size otherwise.\n")
	fmt.Fprintf(b, "func (obj *%s) SizeSSZ(fixed bool) uint32 {\n", cp.Name)
	fmt.Fprintf(b, "\tsize := uint32(%d) // active-fields bitvector prefix\n", activeFieldsBytes(cp.MaxN))
	for _, f := range cp.Fields {
		guardActiveSize(b, f, "4")
	}
	fmt.Fprint(b, "\tif fixed {\n\t\treturn size\n\t}\n")
	for _, f := range cp.Fields {
		guardActiveSize(b, f, stableContentSizeExpr(f))
	}
	fmt.Fprint(b, "\treturn size\n}\n\n")
}

// guardActiveSize emits `size += expr`, wrapped in a presence check for a
// field the base StableContainer marks Optional; a Profile field the schema
// has promoted to mandatory is always present, so it contributes
// unconditionally.
func guardActiveSize(b *bytes.Buffer, f *fieldPlan, expr string) {
	if !f.Optional {
		fmt.Fprintf(b, "\tsize += %s\n", expr)
		return
	}
	fmt.Fprintf(b, "\tif obj.%s != nil {\n", f.Name)
	fmt.Fprintf(b, "\t\tsize += %s\n", expr)
	fmt.Fprint(b, "\t}\n")
}

func stableContentSizeExpr(f *fieldPlan) string {
	if f.Static {
		return fmt.Sprintf("uint32(%d)", f.FixedLen)
	}
	return dynamicSizeExpr(f)
}

func activeFieldsBytes(maxN uint64) uint64 {
	n := (maxN + 7) / 8
	if n < 1 {
		n = 1
	}
	return n
}

// generateStableDefineSSZ emits DefineSSZ for a StableContainer/Profile,
// bridging presence through an active-fields bitvector per
// ssz.DefineStableContainerActiveFields/HashStableContainer's documented
// contract: the bitmap is computed from non-nil Optional pointers before
// encoding/hashing, and used to gate each field's own Define call (including
// on decode, where the bitmap has just been read back from the wire and the
// pointee is allocated on demand).
func generateStableDefineSSZ(b *bytes.Buffer, cp *classPlan) {
	nBytes := activeFieldsBytes(cp.MaxN)
	fmt.Fprint(b, "// DefineSSZ defines how an object is encoded/decoded.\n")
	fmt.Fprintf(b, "func (obj *%s) DefineSSZ(codec *ssz.Codec) {\n", cp.Name)
	fmt.Fprintf(b, "\tvar activeFields [%d]byte\n", nBytes)
	fmt.Fprint(b, "\tsetActive := func() {\n")
	for i, f := range cp.Fields {
		if !f.Optional {
			fmt.Fprintf(b, "\t\tactiveFields[%d] |= 1 << %d\n", i/8, i%8)
			continue
		}
		fmt.Fprintf(b, "\t\tif obj.%s != nil {\n", f.Name)
		fmt.Fprintf(b, "\t\t\tactiveFields[%d] |= 1 << %d\n", i/8, i%8)
		fmt.Fprint(b, "\t\t}\n")
	}
	fmt.Fprint(b, "\t}\n")
	fmt.Fprint(b, "\tcodec.DefineEncoder(func(enc *ssz.Encoder) { setActive() })\n")
	fmt.Fprint(b, "\tcodec.DefineHasher(func(har *ssz.Hasher) { setActive() })\n")
	fmt.Fprint(b, "\tssz.DefineStableContainerActiveFields(codec, &activeFields)\n\n")
	for i, f := range cp.Fields {
		fmt.Fprintf(b, "\tif activeFields[%d]&(1<<%d) != 0 {\n", i/8, i%8)
		writeStableField(b, f)
		fmt.Fprint(b, "\t}\n")
	}
	fmt.Fprint(b, "}\n\n")
}

// writeStableField emits one StableContainer/Profile field's Define calls,
// already known to be active (by fixed presence or by the just-read active
// fields bitmap). Three shapes: a mandatory Profile field (plain value,
// nothing to allocate), an Optional object reference/uint128/256 (its own
// pointer is the absence sentinel, Define* auto-allocates on decode), and an
// Optional scalar/BytesN/Vector/Bitfield field (bridged through a local
// variable since its Define* call addresses the bare value type).
func writeStableField(b *bytes.Buffer, f *fieldPlan) {
	if !f.Optional {
		writeBridgedOrPlain(b, f, "obj."+f.Name, false)
		return
	}
	if f.Bitfield != "" || f.OptionalBridge {
		writeBridgedOrPlain(b, f, bridgeVarName(f), true)
		return
	}
	fmt.Fprintf(b, "\t\tif obj.%s == nil {\n", f.Name)
	fmt.Fprintf(b, "\t\t\tobj.%s = new(%s)\n", f.Name, trimOwnedPointer(f.Owned))
	fmt.Fprint(b, "\t\t}\n")
	writeBridgedOrPlain(b, f, "obj."+f.Name, false)
}

func bridgeVarName(f *fieldPlan) string { return f.Name + "Val" }

// writeBridgedOrPlain emits the field's Define calls against ref (either
// "obj.Name" directly, or a local bridge variable). When bridged, it also
// declares the variable and wires the copy-in/copy-out closures that keep it
// in sync with the Optional pointer field across encode, decode and hash.
func writeBridgedOrPlain(b *bytes.Buffer, f *fieldPlan, ref string, bridged bool) {
	if f.Bitfield == "vector" {
		fmt.Fprintf(b, "\t\tvar %sBuf []byte\n", f.Name)
		fmt.Fprintf(b, "\t\tcodec.DefineEncoder(func(enc *ssz.Encoder) { %sBuf = obj.%s.AsSlice() })\n", f.Name, f.Name)
		fmt.Fprintf(b, "\t\tcodec.DefineHasher(func(har *ssz.Hasher) { %sBuf = obj.%s.AsSlice() })\n", f.Name, f.Name)
		fmt.Fprintf(b, "\t\tssz.DefineCheckedStaticBytes(codec, &%sBuf, %d)\n", f.Name, int(f.MaxSize))
		writeBitfieldDecodeCall(b, "\t\t", "obj."+f.Name, fmt.Sprintf("bitfield.DecodeBitVector(%sBuf, %d)", f.Name, int(f.MaxSize)*8))
		return
	}
	if f.Bitfield == "list" {
		fmt.Fprintf(b, "\t\tvar %sBuf []byte\n", f.Name)
		fmt.Fprintf(b, "\t\tcodec.DefineEncoder(func(enc *ssz.Encoder) { %sBuf = obj.%s.Encode() })\n", f.Name, f.Name)
		fmt.Fprintf(b, "\t\tcodec.DefineHasher(func(har *ssz.Hasher) { %sBuf = obj.%s.Encode() })\n", f.Name, f.Name)
		fmt.Fprintf(b, "\t\tssz.DefineDynamicBytesOffset(codec, &%sBuf)\n", f.Name)
		fmt.Fprintf(b, "\t\tssz.DefineDynamicBytesContent(codec, &%sBuf, %d)\n", f.Name, f.MaxSize)
		writeBitfieldDecodeCall(b, "\t\t", "obj."+f.Name, fmt.Sprintf("bitfield.DecodeBitList(%sBuf, %d)", f.Name, f.MaxSize))
		return
	}
	if !bridged {
		fmt.Fprintf(b, "\t\t%s\n", f.DefineStatic)
		if !f.Static {
			fmt.Fprintf(b, "\t\t%s\n", f.DefineDynamic)
		}
		return
	}
	unwrapped := trimOwnedPointer(f.Owned)
	fmt.Fprintf(b, "\t\tvar %s %s\n", ref, unwrapped)
	fmt.Fprintf(b, "\t\tcodec.DefineEncoder(func(enc *ssz.Encoder) { if obj.%s != nil { %s = *obj.%s } })\n", f.Name, ref, f.Name)
	fmt.Fprintf(b, "\t\tcodec.DefineHasher(func(har *ssz.Hasher) { if obj.%s != nil { %s = *obj.%s } })\n", f.Name, ref, f.Name)
	fmt.Fprintf(b, "\t\t%s\n", rewriteObjRef(f.DefineStatic, f, ref))
	if !f.Static {
		fmt.Fprintf(b, "\t\t%s\n", rewriteObjRef(f.DefineDynamic, f, ref))
	}
	fmt.Fprintf(b, "\t\tcodec.DefineDecoder(func(dec *ssz.Decoder) { obj.%s = &%s })\n", f.Name, ref)
}

func rewriteObjRef(call string, f *fieldPlan, ref string) string {
	return strings.ReplaceAll(call, "obj."+f.Name, ref)
}

func trimOwnedPointer(owned string) string {
	if len(owned) > 0 && owned[0] == '*' {
		return owned[1:]
	}
	return owned
}

// generateUnion emits a tagged-union owned type: a selector byte plus one
// payload field per non-None variant (nil when not selected), matching
// DefineUnionSelector/DefineUnionContent's documented calling convention.
func generateUnion(b *bytes.Buffer, cp *classPlan) {
	fmt.Fprintf(b, "// %s is a generated SSZ tagged union.\n", cp.Name)
	fmt.Fprintf(b, "type %s struct {\n", cp.Name)
	fmt.Fprint(b, "\tSelector uint8\n")
	for i, f := range cp.Fields {
		if f.Owned == "" {
			continue // the None variant carries no payload
		}
		fmt.Fprintf(b, "\t%s %s // selector %d\n", f.Name, f.Owned, i)
	}
	fmt.Fprint(b, "}\n\n")

	fmt.Fprint(b, "// SizeSSZ returns either the static size of the object if fixed == true, or\n// the total size otherwise.\n")
	fmt.Fprintf(b, "func (obj *%s) SizeSSZ(fixed bool) uint32 {\n", cp.Name)
	fmt.Fprint(b, "\tif fixed {\n\t\treturn 1\n\t}\n")
	fmt.Fprint(b, "\tswitch obj.Selector {\n")
	for i, f := range cp.Fields {
		if f.Owned == "" {
			fmt.Fprintf(b, "\tcase %d:\n\t\treturn 1\n", i)
			continue
		}
		fmt.Fprintf(b, "\tcase %d:\n\t\treturn 1 + %s\n", i, unionVariantSizeExpr(f))
	}
	fmt.Fprint(b, "\t}\n\treturn 1\n}\n\n")

	fmt.Fprint(b, "// DefineSSZ defines how an object is encoded/decoded.\n")
	fmt.Fprintf(b, "func (obj *%s) DefineSSZ(codec *ssz.Codec) {\n", cp.Name)
	fmt.Fprint(b, "\tssz.DefineUnionSelector(codec, &obj.Selector)\n")
	fmt.Fprint(b, "\tssz.DefineUnionContent(codec, obj.Selector, func(codec *ssz.Codec) {\n")
	fmt.Fprint(b, "\t\tswitch obj.Selector {\n")
	for i, f := range cp.Fields {
		if f.Owned == "" {
			// The None variant carries no payload, but still needs its own
			// empty arm: without one, an incoming None selector would fall
			// through to default and get rejected as if it were undeclared.
			fmt.Fprintf(b, "\t\tcase %d:\n", i)
			continue
		}
		fmt.Fprintf(b, "\t\tcase %d:\n", i)
		if strings.HasPrefix(f.Owned, "*") {
			// An object reference (or uint128/256) variant: its own pointer
			// is the active/inactive sentinel for a union selector that
			// didn't pick it, so it needs pre-allocating before Define runs.
			// A scalar/bytes/vector variant's Owned is never pointer-shaped
			// and needs no such guard — its zero value is already valid.
			fmt.Fprintf(b, "\t\t\tif obj.%s == nil {\n\t\t\t\tobj.%s = new(%s)\n\t\t\t}\n", f.Name, f.Name, trimOwnedPointer(f.Owned))
		}
		fmt.Fprintf(b, "\t\t\t%s\n", unionVariantDefine(f))
	}
	// A selector outside the declared variants must be rejected on decode
	// (spec'd reject case), matching the validation view/union.go's NewUnionRef
	// already performs on the wire selector byte; encode/hash never reach this
	// arm since obj.Selector only ever holds a value this switch itself set.
	fmt.Fprint(b, "\t\tdefault:\n")
	fmt.Fprint(b, "\t\t\tcodec.DefineDecoder(func(dec *ssz.Decoder) { dec.SetError(ssz.ErrUnionSelectorInvalid) })\n")
	fmt.Fprint(b, "\t\t}\n\t})\n}\n\n")
}

func unionVariantSizeExpr(f *fieldPlan) string {
	if f.Static {
		return fmt.Sprintf("uint32(%d)", f.FixedLen)
	}
	return fmt.Sprintf("obj.%s.SizeSSZ(false)", f.Name)
}

func unionVariantDefine(f *fieldPlan) string {
	if f.Static {
		return f.DefineStatic
	}
	return fmt.Sprintf("ssz.DefineDynamicObjectContent(codec, &obj.%s)", f.Name)
}

// generateView emits a read-only borrowed-buffer view of a class: a
// FooRef{buf []byte} wrapper plus one getter per field, reading straight out
// of the wire representation rather than decoding a whole owned copy — the
// same shape as view/view.go's FixedBytesRef/ListRef/VectorRef family, which
// every getter here constructs and returns. A fixed field slices buf at its
// known offset; a dynamic field reads its 4-byte little-endian offset slot
// and the offset slot of the next dynamic field (or len(buf), when no
// dynamic field follows) to find its bounds.
func generateView(b *bytes.Buffer, cp *classPlan, derives *DerivesConfig) {
	if cp.Kind == resolve.KindUnion {
		return // Union already has no plain container view; UnionRef covers it directly
	}

	refName := cp.Name + "Ref"
	fmt.Fprintf(b, "// %s is a read-only view over a %s's wire encoding.\n", refName, cp.Name)
	fmt.Fprintf(b, "type %s struct {\n\tbuf []byte\n}\n\n", refName)
	fmt.Fprintf(b, "// New%s wraps buf as a %s without copying it.\n", refName, refName)
	fmt.Fprintf(b, "func New%s(buf []byte) (%s, error) {\n\treturn %s{buf: buf}, nil\n}\n\n", refName, refName, refName)
	fmt.Fprintf(b, "func must%s(buf []byte) %s {\n\tref, err := New%s(buf)\n\tif err != nil {\n\t\tpanic(err)\n\t}\n\treturn ref\n}\n\n", refName, refName, refName)

	switch cp.Kind {
	case resolve.KindStableContainer, resolve.KindProfile:
		generateStableViewGetters(b, cp, refName)
	default:
		generateViewGetters(b, cp, refName)
	}

	if derives.viewCapabilities(cp.Name, cp.Kind).has(CapEqual) {
		fmt.Fprint(b, "// Equal reports whether v and other wrap byte-identical wire encodings.\n")
		fmt.Fprintf(b, "func (v %s) Equal(other %s) bool {\n\treturn bytes.Equal(v.buf, other.buf)\n}\n\n", refName, refName)
	}
}

// fixedSlot is the layout of one field's static-section presence: either a
// fixed byte range (Static) or a 4-byte offset slot (dynamic).
type fixedSlot struct {
	field  *fieldPlan
	offset int
	length int // byte length for a Static field; 4 for an offset slot
}

func layoutFixedSlots(fields []*fieldPlan) []fixedSlot {
	var slots []fixedSlot
	pos := 0
	for _, f := range fields {
		if f.UnitOnlyPlan() {
			continue
		}
		n := 4
		if f.Static {
			n = f.FixedLen
		}
		slots = append(slots, fixedSlot{field: f, offset: pos, length: n})
		pos += n
	}
	return slots
}

func generateViewGetters(b *bytes.Buffer, cp *classPlan, refName string) {
	slots := layoutFixedSlots(cp.Fields)
	for i, s := range slots {
		f := s.field
		fmt.Fprintf(b, "func (v %s) %s() %s {\n", refName, f.Name, f.View)
		if f.Static {
			writeStaticGetterBody(b, f, fmt.Sprintf("v.buf[%d:%d]", s.offset, s.offset+s.length))
		} else {
			writeDynamicGetterBody(b, f, s.offset, nextOffsetExpr(slots, i))
		}
		fmt.Fprint(b, "}\n\n")
	}
}

// generateStableViewGetters emits getters for a StableContainer/Profile
// view. Every field's presence is gated on the leading active-fields
// bitvector, and only active fields occupy a slot in the fixed section, so
// a field's offset depends on which of its predecessors are active in this
// particular instance — fieldPos walks the bitvector once per call to
// compute it, rather than assuming every field is always present the way a
// plain Container's static layout can. A dynamic field's content runs up to
// the next *active dynamic* field's offset value (static fields carry their
// value inline and never anchor the variable section), or len(v.buf) if none
// follows.
func generateStableViewGetters(b *bytes.Buffer, cp *classPlan, refName string) {
	prefix := activeFieldsBytes(cp.MaxN)
	n := len(cp.Fields)
	fmt.Fprintf(b, "func (v %s) isActive(bit int) bool {\n\treturn v.buf[bit/8]&(1<<uint(bit%%8)) != 0\n}\n\n", refName)

	fmt.Fprintf(b, "var %sFieldWidths = [%d]uint32{", refName, n)
	for i, f := range cp.Fields {
		w := 4
		if f.Static {
			w = f.FixedLen
		}
		if i > 0 {
			fmt.Fprint(b, ", ")
		}
		fmt.Fprintf(b, "%d", w)
	}
	fmt.Fprint(b, "}\n\n")

	fmt.Fprintf(b, "var %sFieldDynamic = [%d]bool{", refName, n)
	for i, f := range cp.Fields {
		if i > 0 {
			fmt.Fprint(b, ", ")
		}
		fmt.Fprintf(b, "%t", !f.Static)
	}
	fmt.Fprint(b, "}\n\n")

	fmt.Fprintf(b, "// fieldPos computes each active field's fixed-section byte offset;\n// inactive fields are left zero and must never be read.\n")
	fmt.Fprintf(b, "func (v %s) fieldPos() [%d]uint32 {\n", refName, n)
	fmt.Fprintf(b, "\tvar pos [%d]uint32\n", n)
	fmt.Fprintf(b, "\tcur := uint32(%d)\n", prefix)
	fmt.Fprintf(b, "\tfor i := 0; i < %d; i++ {\n", n)
	fmt.Fprint(b, "\t\tif !v.isActive(i) {\n\t\t\tcontinue\n\t\t}\n")
	fmt.Fprintf(b, "\t\tpos[i] = cur\n\t\tcur += %sFieldWidths[i]\n", refName)
	fmt.Fprint(b, "\t}\n\treturn pos\n}\n\n")

	for i, f := range cp.Fields {
		fmt.Fprintf(b, "func (v %s) %s() (%s, bool) {\n", refName, f.Name, f.View)
		fmt.Fprintf(b, "\tif !v.isActive(%d) {\n\t\tvar zero %s\n\t\treturn zero, false\n\t}\n", i, f.View)
		fmt.Fprint(b, "\tpos := v.fieldPos()\n")
		if f.Static {
			fmt.Fprintf(b, "\tresult := ")
			writeStaticGetterExpr(b, f, fmt.Sprintf("v.buf[pos[%d]:pos[%d]+%d]", i, i, f.FixedLen))
			fmt.Fprint(b, "\n\treturn result, true\n}\n\n")
		} else {
			fmt.Fprintf(b, "\toff := binary.LittleEndian.Uint32(v.buf[pos[%d]:pos[%d]+4])\n", i, i)
			fmt.Fprint(b, "\tend := uint32(len(v.buf))\n")
			fmt.Fprintf(b, "\tfor j := %d; j < %d; j++ {\n", i+1, n)
			fmt.Fprint(b, "\t\tif !v.isActive(j) {\n\t\t\tcontinue\n\t\t}\n")
			fmt.Fprintf(b, "\t\tif %sFieldDynamic[j] {\n\t\t\tend = binary.LittleEndian.Uint32(v.buf[pos[j]:pos[j]+4])\n\t\t\tbreak\n\t\t}\n", refName)
			fmt.Fprint(b, "\t}\n")
			fmt.Fprintf(b, "\tresult := ")
			writeDynamicGetterExprFromVars(b, f, "off", "end")
			fmt.Fprint(b, "\n\treturn result, true\n}\n\n")
		}
	}
}

func nextOffsetExpr(slots []fixedSlot, i int) string {
	for _, next := range slots[i+1:] {
		if next.field.Static {
			continue
		}
		return fmt.Sprintf("binary.LittleEndian.Uint32(v.buf[%d:%d])", next.offset, next.offset+4)
	}
	return "uint32(len(v.buf))"
}

func writeStaticGetterBody(b *bytes.Buffer, f *fieldPlan, slice string) {
	fmt.Fprint(b, "\treturn ")
	writeStaticGetterExpr(b, f, slice)
	fmt.Fprint(b, "\n")
}

func writeStaticGetterExpr(b *bytes.Buffer, f *fieldPlan, slice string) {
	switch {
	case f.Bitfield == "vector":
		fmt.Fprintf(b, "mustBitVectorRef(%s, %d)", slice, f.MaxSize*8)
	case f.View == "bool":
		fmt.Fprintf(b, "%s[0] != 0", slice)
	case f.View == "uint8":
		fmt.Fprintf(b, "%s[0]", slice)
	case f.View == "uint16":
		fmt.Fprintf(b, "binary.LittleEndian.Uint16(%s)", slice)
	case f.View == "uint32":
		fmt.Fprintf(b, "binary.LittleEndian.Uint32(%s)", slice)
	case f.View == "uint64":
		fmt.Fprintf(b, "binary.LittleEndian.Uint64(%s)", slice)
	case f.View == "*uint256.Int":
		fmt.Fprintf(b, "new(uint256.Int).SetBytes(reverseBytes(%s))", slice)
	case f.View == "view.FixedBytesRef":
		fmt.Fprintf(b, "mustFixedBytesRef(%s, %d)", slice, f.FixedLen)
	case f.View == "view.FixedVectorRef":
		fmt.Fprintf(b, "mustFixedVectorRef(%s, 8, %d)", slice, f.FixedLen/8)
	default:
		// A nested static object reference.
		fmt.Fprintf(b, "must%s(%s)", f.View, slice)
	}
}

func writeDynamicGetterBody(b *bytes.Buffer, f *fieldPlan, offPos int, endExpr string) {
	fmt.Fprintf(b, "\toff := binary.LittleEndian.Uint32(v.buf[%d:%d])\n", offPos, offPos+4)
	fmt.Fprintf(b, "\tend := %s\n", endExpr)
	fmt.Fprint(b, "\treturn ")
	writeDynamicGetterExprFromVars(b, f, "off", "end")
	fmt.Fprint(b, "\n")
}

func writeDynamicGetterExprFromVars(b *bytes.Buffer, f *fieldPlan, offVar, endVar string) {
	slice := fmt.Sprintf("v.buf[%s:%s]", offVar, endVar)
	switch {
	case f.Bitfield == "list":
		fmt.Fprintf(b, "mustBitListRef(%s, %d)", slice, f.MaxSize)
	case f.View == "view.ListRef" && f.Owned == "[]byte":
		fmt.Fprintf(b, "mustListRef(%s, 1)", slice)
	case f.View == "view.ListRef" && f.Owned == "[]uint64":
		fmt.Fprintf(b, "mustListRef(%s, 8)", slice)
	case f.View == "view.ListRef":
		fmt.Fprintf(b, "mustVariableListRef(%s, %d)", slice, f.MaxItems)
	default:
		// A single dynamic nested object reference.
		fmt.Fprintf(b, "must%s(%s)", f.View, slice)
	}
}
