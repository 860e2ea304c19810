// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package view_test

import (
	"bytes"
	"testing"

	"github.com/sszlab/ssz/view"
)

// TestBitVectorRefLiteralEncoding exercises spec scenario 1.
func TestBitVectorRefLiteralEncoding(t *testing.T) {
	r, err := view.NewBitVectorRef([]byte{0xFF}, 8)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	for i := uint64(0); i < 8; i++ {
		set, err := r.Get(i)
		if err != nil || !set {
			t.Fatalf("bit %d: got (%v, %v), want (true, nil)", i, set, err)
		}
	}

	r4, err := view.NewBitVectorRef([]byte{0x0F}, 4)
	if err != nil {
		t.Fatalf("wrap 4-bit: %v", err)
	}
	if r4.Len() != 4 {
		t.Fatalf("len mismatch: got %d, want 4", r4.Len())
	}

	if _, err := view.NewBitVectorRef([]byte{0b0001_1111}, 4); err == nil {
		t.Fatalf("expected error for excess high bits")
	}
}

// TestBitListRefLiteralEncoding exercises spec scenarios 2 and 3.
func TestBitListRefLiteralEncoding(t *testing.T) {
	empty, err := view.NewBitListRef([]byte{0b0001_0000}, 8)
	if err != nil {
		t.Fatalf("wrap empty: %v", err)
	}
	if empty.Len() != 4 {
		t.Fatalf("len mismatch: got %d, want 4", empty.Len())
	}

	full, err := view.NewBitListRef([]byte{0xFF, 0x01}, 8)
	if err != nil {
		t.Fatalf("wrap full: %v", err)
	}
	if full.Len() != 8 {
		t.Fatalf("len mismatch: got %d, want 8", full.Len())
	}
	for i := uint64(0); i < 8; i++ {
		set, err := full.Get(i)
		if err != nil || !set {
			t.Fatalf("bit %d: got (%v, %v), want (true, nil)", i, set, err)
		}
	}

	owned, err := full.ToOwned()
	if err != nil {
		t.Fatalf("to owned: %v", err)
	}
	if !bytes.Equal(owned.Encode(), []byte{0xFF, 0x01}) {
		t.Fatalf("owned encoding mismatch: got %#x, want %#x", owned.Encode(), []byte{0xFF, 0x01})
	}
}

func TestBitListRefRejectsMissingLengthBit(t *testing.T) {
	if _, err := view.NewBitListRef([]byte{0b0000_0000}, 8); err == nil {
		t.Fatalf("expected error for missing length bit")
	}
}

func TestBitListRefRejectsExtraBytes(t *testing.T) {
	if _, err := view.NewBitListRef([]byte{0b0000_0001, 0b0000_0000}, 1); err == nil {
		t.Fatalf("expected error for extra trailing byte")
	}
}
