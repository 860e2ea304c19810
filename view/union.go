// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"fmt"

	"github.com/sszlab/ssz"
)

// UnionRef views a tagged union's one-byte selector and variant body
// separately, without copying either.
type UnionRef struct {
	buf []byte
}

// NewUnionRef wraps buf as a union with selectors in [0, maxSelector],
// rejecting a non-empty body on the None variant (selector 0).
func NewUnionRef(buf []byte, maxSelector uint8) (UnionRef, error) {
	if len(buf) == 0 {
		return UnionRef{}, ssz.ErrInvalidByteLength
	}
	if sel := buf[0]; sel > maxSelector {
		return UnionRef{}, fmt.Errorf("%w: %d", ssz.ErrUnionSelectorInvalid, sel)
	} else if sel == 0 && len(buf) != 1 {
		return UnionRef{}, ssz.ErrUnionNoneHasBody
	}
	return UnionRef{buf: buf}, nil
}

// Selector returns the union's variant selector.
func (u UnionRef) Selector() uint8 { return u.buf[0] }

// Body returns the borrowed bytes of the active variant, excluding the
// selector byte. The caller decodes it as the view type named by Selector.
func (u UnionRef) Body() []byte { return u.buf[1:] }
