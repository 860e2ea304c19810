// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package view_test

import (
	"testing"

	"github.com/sszlab/ssz/view"
)

// TestUnionRefLiteralEncoding exercises spec scenario 5.
func TestUnionRefLiteralEncoding(t *testing.T) {
	none, err := view.NewUnionRef([]byte{0x00}, 1)
	if err != nil {
		t.Fatalf("wrap none: %v", err)
	}
	if none.Selector() != 0 {
		t.Fatalf("selector mismatch: got %d, want 0", none.Selector())
	}
	if len(none.Body()) != 0 {
		t.Fatalf("expected empty body for none variant, got %#x", none.Body())
	}

	val, err := view.NewUnionRef([]byte{0x01, 0x02, 0x01}, 1)
	if err != nil {
		t.Fatalf("wrap value: %v", err)
	}
	if val.Selector() != 1 {
		t.Fatalf("selector mismatch: got %d, want 1", val.Selector())
	}
	if len(val.Body()) != 2 || val.Body()[0] != 0x02 || val.Body()[1] != 0x01 {
		t.Fatalf("body mismatch: got %#x, want %#x", val.Body(), []byte{0x02, 0x01})
	}
}

func TestUnionRefRejectsInvalidSelector(t *testing.T) {
	if _, err := view.NewUnionRef([]byte{0x05}, 1); err == nil {
		t.Fatalf("expected error for selector beyond declared variants")
	}
}

func TestUnionRefRejectsNoneWithBody(t *testing.T) {
	if _, err := view.NewUnionRef([]byte{0x00, 0x01}, 1); err == nil {
		t.Fatalf("expected error for none variant carrying a body")
	}
}
