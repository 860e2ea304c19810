// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz_test

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/sszlab/ssz"
)

// fixedRecord is a plain static object: every field has a fixed encoded size,
// so the whole struct does too.
type fixedRecord struct {
	A uint32
	B [20]byte
}

func (r *fixedRecord) SizeSSZ() uint32 { return 4 + 20 }

func (r *fixedRecord) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineUint32(codec, &r.A)
	ssz.DefineStaticBytes(codec, &r.B)
}

func TestStaticObjectRoundTrip(t *testing.T) {
	want := &fixedRecord{A: 0x04030201, B: [20]byte{1, 2, 3}}

	blob := make([]byte, want.SizeSSZ())
	if err := ssz.EncodeToBytes(blob, want); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got := new(fixedRecord)
	if err := ssz.DecodeFromBytes(blob, got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}

	h1 := ssz.HashSequential(want)
	h2 := ssz.HashSequential(got)
	if h1 != h2 {
		t.Fatalf("hash mismatch between original and round-tripped value: %#x != %#x", h1, h2)
	}
}

// blobRecord mirrors a container with a fixed uint32 field followed by a
// variable-length byte list: Container{ a: uint32, b: List[uint8, 8] }.
type blobRecord struct {
	A uint32
	B []byte
}

func (r *blobRecord) SizeSSZ(fixed bool) uint32 {
	size := uint32(4 + 4)
	if fixed {
		return size
	}
	return size + uint32(len(r.B))
}

func (r *blobRecord) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineUint32(codec, &r.A)
	ssz.DefineDynamicBytesOffset(codec, &r.B)

	ssz.DefineDynamicBytesContent(codec, &r.B, 8)
}

func TestDynamicObjectLiteralEncoding(t *testing.T) {
	rec := &blobRecord{A: 0x04030201, B: []byte{0xAA, 0xBB}}

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x08, 0x00, 0x00, 0x00, 0xAA, 0xBB}
	blob := make([]byte, rec.SizeSSZ(false))
	if err := ssz.EncodeDynamicToBytes(blob, rec); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(blob, want) {
		t.Fatalf("encoding mismatch: got %#x, want %#x", blob, want)
	}

	got := new(blobRecord)
	if err := ssz.DecodeDynamicFromBytes(blob, got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.A != rec.A || !bytes.Equal(got.B, rec.B) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, rec)
	}
}

// sumValue is a tagged union over [None, uint16].
type sumValue struct {
	Selector uint8
	Value    uint16
}

func (s *sumValue) SizeSSZ(fixed bool) uint32 {
	if fixed {
		return 1
	}
	if s.Selector == 0 {
		return 1
	}
	return 1 + 2
}

func (s *sumValue) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineUnionSelector(codec, &s.Selector)

	switch s.Selector {
	case 0:
		ssz.DefineUnionContent(codec, s.Selector, nil)
	case 1:
		ssz.DefineUnionContent(codec, s.Selector, func(c *ssz.Codec) {
			ssz.DefineUint16(c, &s.Value)
		})
	}
}

func TestUnionLiteralEncoding(t *testing.T) {
	none := &sumValue{Selector: 0}
	blob := make([]byte, none.SizeSSZ(false))
	if err := ssz.EncodeDynamicToBytes(blob, none); err != nil {
		t.Fatalf("encode none: %v", err)
	}
	if !bytes.Equal(blob, []byte{0x00}) {
		t.Fatalf("none encoding mismatch: got %#x, want %#x", blob, []byte{0x00})
	}

	val := &sumValue{Selector: 1, Value: 0x0102}
	blob = make([]byte, val.SizeSSZ(false))
	if err := ssz.EncodeDynamicToBytes(blob, val); err != nil {
		t.Fatalf("encode value: %v", err)
	}
	want := []byte{0x01, 0x02, 0x01}
	if !bytes.Equal(blob, want) {
		t.Fatalf("value encoding mismatch: got %#x, want %#x", blob, want)
	}

	got := new(sumValue)
	if err := ssz.DecodeDynamicFromBytes(blob, got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *got != *val {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, val)
	}
}

// bitVectorRecord wraps a BitVector<8>.
type bitVectorRecord struct {
	Flags [1]byte
}

func (r *bitVectorRecord) SizeSSZ() uint32 { return 1 }

func (r *bitVectorRecord) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineBitVector(codec, &r.Flags)
}

func TestBitVectorLiteralEncoding(t *testing.T) {
	rec := &bitVectorRecord{Flags: [1]byte{0xFF}}

	blob := make([]byte, rec.SizeSSZ())
	if err := ssz.EncodeToBytes(blob, rec); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(blob, []byte{0xFF}) {
		t.Fatalf("encoding mismatch: got %#x, want %#x", blob, []byte{0xFF})
	}
}

// bitListRecord wraps a BitList<8>.
type bitListRecord struct {
	Bits bitfield.Bitlist
}

func (r *bitListRecord) SizeSSZ(fixed bool) uint32 {
	if fixed {
		return 4
	}
	return 4 + uint32(len(r.Bits))
}

func (r *bitListRecord) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineBitListOffset(codec, &r.Bits)
	ssz.DefineBitList(codec, &r.Bits, 8)
}

func TestBitListLiteralEncoding(t *testing.T) {
	rec := &bitListRecord{Bits: bitfield.NewBitlist(4)}

	blob := make([]byte, rec.SizeSSZ(false))
	if err := ssz.EncodeDynamicToBytes(blob, rec); err != nil {
		t.Fatalf("encode empty: %v", err)
	}
	if !bytes.Equal(blob[4:], []byte{0b0001_0000}) {
		t.Fatalf("content mismatch: got %#x, want %#x", blob[4:], []byte{0b0001_0000})
	}

	full := bitfield.NewBitlist(8)
	for i := uint64(0); i < 8; i++ {
		full.SetBitAt(i, true)
	}
	rec = &bitListRecord{Bits: full}

	blob = make([]byte, rec.SizeSSZ(false))
	if err := ssz.EncodeDynamicToBytes(blob, rec); err != nil {
		t.Fatalf("encode full: %v", err)
	}
	if !bytes.Equal(blob[4:], []byte{0xFF, 0x01}) {
		t.Fatalf("content mismatch: got %#x, want %#x", blob[4:], []byte{0xFF, 0x01})
	}

	got := new(bitListRecord)
	if err := ssz.DecodeDynamicFromBytes(blob, got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got.Bits, rec.Bits) {
		t.Fatalf("round trip mismatch: got %#x, want %#x", got.Bits, rec.Bits)
	}
}

// uint128Record exercises the 128-bit integer width.
type uint128Record struct {
	A *uint256.Int
}

func (r *uint128Record) SizeSSZ() uint32 { return 16 }

func (r *uint128Record) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineUint128(codec, &r.A)
}

func TestUint128RoundTrip(t *testing.T) {
	want := &uint128Record{A: uint256.NewInt(0x0102030405060708)}

	blob := make([]byte, want.SizeSSZ())
	if err := ssz.EncodeToBytes(blob, want); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got := new(uint128Record)
	if err := ssz.DecodeFromBytes(blob, got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.A.Cmp(want.A) != 0 {
		t.Fatalf("round trip mismatch: got %v, want %v", got.A, want.A)
	}

	h1 := ssz.HashSequential(want)
	h2 := ssz.HashSequential(got)
	if h1 != h2 {
		t.Fatalf("hash mismatch between original and round-tripped value: %#x != %#x", h1, h2)
	}
}
