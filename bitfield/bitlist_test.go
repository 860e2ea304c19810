// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitfield

import (
	"bytes"
	"errors"
	"testing"
)

func TestBitListEncodeScenarios(t *testing.T) {
	// BitList<8> with capacity 4, no bits set -> length bit at position 4.
	l, err := WithCapacity(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Encode(); !bytes.Equal(got, []byte{0b0001_0000}) {
		t.Errorf("encode mismatch: have %08b", got)
	}

	// BitList<8> with capacity 8, all bits set -> [0xFF, 0x01].
	l2, err := WithCapacity(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint64(0); i < 8; i++ {
		l2.Set(i, true)
	}
	if got := l2.Encode(); !bytes.Equal(got, []byte{0xFF, 0x01}) {
		t.Errorf("encode mismatch: have %x", got)
	}
}

func TestBitListDecodeRoundTrip(t *testing.T) {
	l, err := WithCapacity(16, 10)
	if err != nil {
		t.Fatal(err)
	}
	l.Set(0, true)
	l.Set(9, true)

	enc := l.Encode()
	back, err := DecodeBitList(enc, 16)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Len() != 10 {
		t.Fatalf("length mismatch: have %d want 10", back.Len())
	}
	for i := uint64(0); i < 10; i++ {
		want, _ := l.Get(i)
		have, _ := back.Get(i)
		if want != have {
			t.Errorf("bit %d: have %v want %v", i, have, want)
		}
	}
}

func TestBitListDecodeMissingLengthBit(t *testing.T) {
	if _, err := DecodeBitList([]byte{0b0000_0000}, 0); err != ErrMissingLengthInformation {
		t.Errorf("expected ErrMissingLengthInformation, got %v", err)
	}
}

func TestBitListDecodeExtraBytes(t *testing.T) {
	if _, err := DecodeBitList([]byte{0b0000_0001, 0b0000_0000}, 1); err != ErrExtraBytes {
		t.Errorf("expected ErrExtraBytes, got %v", err)
	}
}

func TestBitListResize(t *testing.T) {
	l, _ := WithCapacity(4, 4)
	resized, err := l.Resize(8)
	if err != nil {
		t.Fatal(err)
	}
	if resized.MaxLen() != 8 {
		t.Errorf("max len mismatch: have %d want 8", resized.MaxLen())
	}
	if _, err := resized.Resize(2); !errors.Is(err, ErrShrink) {
		t.Errorf("expected ErrShrink, got %v", err)
	}
}
