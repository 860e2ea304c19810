// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitfield

import (
	"bytes"
	"testing"
)

func TestBitVectorEncodeAllSet(t *testing.T) {
	v := NewBitVector(8)
	for i := uint64(0); i < 8; i++ {
		if err := v.Set(i, true); err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
	}
	if got := v.Encode(); !bytes.Equal(got, []byte{0xFF}) {
		t.Errorf("encode mismatch: have %x, want ff", got)
	}

	v4 := NewBitVector(4)
	for i := uint64(0); i < 4; i++ {
		v4.Set(i, true)
	}
	if got := v4.Encode(); !bytes.Equal(got, []byte{0x0F}) {
		t.Errorf("encode mismatch: have %x, want 0f", got)
	}
}

func TestBitVectorDecodeExcessBits(t *testing.T) {
	if _, err := DecodeBitVector([]byte{0b0001_1111}, 4); err != ErrExcessBits {
		t.Errorf("expected ErrExcessBits, got %v", err)
	}
}

func TestBitVectorDecodeBadLength(t *testing.T) {
	if _, err := DecodeBitVector([]byte{0x00, 0x00}, 4); err == nil {
		t.Errorf("expected length mismatch error")
	}
}

func TestBitVectorSetAlgebra(t *testing.T) {
	a := NewBitVector(8)
	b := NewBitVector(8)
	a.Set(0, true)
	a.Set(1, true)
	b.Set(1, true)
	b.Set(2, true)

	inter, err := a.Intersection(b)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := inter.Get(1); !got {
		t.Errorf("intersection missing bit 1")
	}
	if got, _ := inter.Get(0); got {
		t.Errorf("intersection should not have bit 0")
	}

	union, _ := a.Union(b)
	for _, i := range []uint64{0, 1, 2} {
		av, _ := a.Get(i)
		bv, _ := b.Get(i)
		uv, _ := union.Get(i)
		if uv != (av || bv) {
			t.Errorf("union bit %d: have %v want %v", i, uv, av || bv)
		}
	}

	sub, err := a.IsSubset(union)
	if err != nil || !sub {
		t.Errorf("a should be a subset of the union: sub=%v err=%v", sub, err)
	}

	diff, _ := a.Difference(a)
	if !diff.IsZero() {
		t.Errorf("a.difference(a) should be zero")
	}
}

func TestBitVectorShiftUp(t *testing.T) {
	a := NewBitVector(8)
	a.Set(0, true)
	a.Set(3, true)

	shifted, err := a.ShiftUp(2)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint64(0); i < 8; i++ {
		got, _ := shifted.Get(i)
		want := i >= 2 && func() bool {
			v, _ := a.Get(i - 2)
			return v
		}()
		if got != want {
			t.Errorf("bit %d: have %v want %v", i, got, want)
		}
	}

	if _, err := a.ShiftUp(9); err == nil {
		t.Errorf("shift beyond length should fail")
	}
}
