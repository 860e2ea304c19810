// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package view_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/sszlab/ssz/view"
)

func TestFixedBytesRefRoundTrip(t *testing.T) {
	buf := []byte{1, 2, 3, 4}

	r, err := view.NewFixedBytesRef(buf, 4)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if !bytes.Equal(r.Bytes(), buf) {
		t.Fatalf("bytes mismatch: got %#x, want %#x", r.Bytes(), buf)
	}

	owned, err := r.ToOwned()
	if err != nil {
		t.Fatalf("to owned: %v", err)
	}
	if !bytes.Equal(owned, buf) {
		t.Fatalf("owned mismatch: got %#x, want %#x", owned, buf)
	}

	if _, err := view.NewFixedBytesRef(buf, 5); err == nil {
		t.Fatalf("expected error for wrong length")
	}
}

// TestListRefLiteralEncoding exercises spec scenario 4's heap region directly:
// a List[uint8, 8] field whose content is [0xAA, 0xBB].
func TestListRefLiteralEncoding(t *testing.T) {
	heap := []byte{0xAA, 0xBB}

	l, err := view.NewListRef(heap, 1)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	n, err := l.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 2 {
		t.Fatalf("len mismatch: got %d, want 2", n)
	}
	for i, want := range heap {
		item, err := l.Item(i)
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if len(item) != 1 || item[0] != want {
			t.Fatalf("item %d mismatch: got %#x, want %#x", i, item, want)
		}
	}
}

// TestListRefOfDynamicItems exercises the offset-addressed branch with two
// variable-length items.
func TestListRefOfDynamicItems(t *testing.T) {
	// Two items: offsets table (2*4=8 bytes), then "ab", then "cde".
	buf := make([]byte, 8+2+3)
	binary.LittleEndian.PutUint32(buf[0:4], 8)
	binary.LittleEndian.PutUint32(buf[4:8], 10)
	copy(buf[8:10], "ab")
	copy(buf[10:13], "cde")

	l, err := view.NewListRef(buf, 0)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	n, err := l.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 2 {
		t.Fatalf("len mismatch: got %d, want 2", n)
	}
	item0, err := l.Item(0)
	if err != nil {
		t.Fatalf("item 0: %v", err)
	}
	if string(item0) != "ab" {
		t.Fatalf("item 0 mismatch: got %q, want %q", item0, "ab")
	}
	item1, err := l.Item(1)
	if err != nil {
		t.Fatalf("item 1: %v", err)
	}
	if string(item1) != "cde" {
		t.Fatalf("item 1 mismatch: got %q, want %q", item1, "cde")
	}
}

func TestVectorRefFixedItems(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6}

	v, err := view.NewVectorRef(buf, 2, 3)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if v.Len() != 3 {
		t.Fatalf("len mismatch: got %d, want 3", v.Len())
	}
	item, err := v.Item(1)
	if err != nil {
		t.Fatalf("item 1: %v", err)
	}
	if !bytes.Equal(item, []byte{3, 4}) {
		t.Fatalf("item 1 mismatch: got %#x, want %#x", item, []byte{3, 4})
	}
}

func TestVariableListRefMaxEnforced(t *testing.T) {
	heap := []byte{1, 2, 3}

	if _, err := view.NewVariableListRef(heap, 1, 2); err == nil {
		t.Fatalf("expected error when item count exceeds declared max")
	}
	l, err := view.NewVariableListRef(heap, 1, 3)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if l.MaxLen() != 3 {
		t.Fatalf("max mismatch: got %d, want 3", l.MaxLen())
	}
}
