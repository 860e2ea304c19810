// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package view provides zero-copy reference types over already-validated SSZ
// byte slices. Unlike the root ssz package, which always decodes into owned
// Go values, a view only validates the structure it needs to locate and
// bounds-check its fields; materializing owned data is an explicit opt-in via
// ToOwned.
//
// Views are immutable handles over borrowed bytes: construction and every
// getter are pure and safe to call concurrently across independent views of
// the same input slice.
package view

import (
	"encoding/binary"
	"fmt"

	"github.com/sszlab/ssz"
)

// readOffset parses the 4-byte little-endian offset at pos.
func readOffset(buf []byte, pos int) (uint32, error) {
	if pos+4 > len(buf) {
		return 0, ssz.ErrOutOfBoundsByte
	}
	return binary.LittleEndian.Uint32(buf[pos : pos+4]), nil
}

// ToOwnedSsz materializes a view into its owned counterpart. Generated view
// types implement this so downstream code can substitute a hand-written
// owned type for the generated default at conversion time.
type ToOwnedSsz[Owned any] interface {
	ToOwned() (Owned, error)
}

// FixedBytesRef is a zero-copy view over a fixed-length byte sequence.
type FixedBytesRef struct {
	buf []byte
}

// NewFixedBytesRef wraps buf, requiring it to be exactly n bytes long.
func NewFixedBytesRef(buf []byte, n int) (FixedBytesRef, error) {
	if len(buf) != n {
		return FixedBytesRef{}, fmt.Errorf("%w: got %d bytes, want %d", ssz.ErrInvalidByteLength, len(buf), n)
	}
	return FixedBytesRef{buf: buf}, nil
}

// Bytes returns the borrowed backing slice.
func (r FixedBytesRef) Bytes() []byte { return r.buf }

// ToOwned copies the borrowed bytes into a freshly allocated slice.
func (r FixedBytesRef) ToOwned() ([]byte, error) {
	out := make([]byte, len(r.buf))
	copy(out, r.buf)
	return out, nil
}

// ListRef views a variable-length homogeneous sequence. itemSize is the
// item's fixed encoded size, or 0 if items are themselves variable-length
// (in which case the fixed portion is a table of 4-byte offsets).
type ListRef struct {
	buf      []byte
	itemSize int
}

// NewListRef wraps buf as a list of items of the given size (0 for
// variable-length items).
func NewListRef(buf []byte, itemSize int) (ListRef, error) {
	if itemSize > 0 && len(buf)%itemSize != 0 {
		return ListRef{}, fmt.Errorf("%w: %d bytes not divisible by item size %d", ssz.ErrInvalidByteLength, len(buf), itemSize)
	}
	return ListRef{buf: buf, itemSize: itemSize}, nil
}

// Len reports the item count: bytes/itemSize for fixed-length items, or
// first-offset/4 for variable-length items.
func (l ListRef) Len() (int, error) {
	if l.itemSize > 0 {
		return len(l.buf) / l.itemSize, nil
	}
	if len(l.buf) == 0 {
		return 0, nil
	}
	first, err := readOffset(l.buf, 0)
	if err != nil {
		return 0, err
	}
	if first%4 != 0 {
		return 0, ssz.ErrOffsetIntoFixedPortion
	}
	return int(first / 4), nil
}

// Item returns the raw bytes backing item i, validating offset bounds and
// monotonicity for variable-length items along the way.
func (l ListRef) Item(i int) ([]byte, error) {
	n, err := l.Len()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: index %d, len %d", ssz.ErrOutOfBoundsByte, i, n)
	}
	if l.itemSize > 0 {
		return l.buf[i*l.itemSize : (i+1)*l.itemSize], nil
	}
	return l.dynamicItem(i, n)
}

func (l ListRef) dynamicItem(i, n int) ([]byte, error) {
	cur, err := readOffset(l.buf, i*4)
	if err != nil {
		return nil, err
	}
	if cur < uint32(n*4) {
		return nil, ssz.ErrOffsetIntoFixedPortion
	}
	if int(cur) > len(l.buf) {
		return nil, ssz.ErrOutOfBoundsByte
	}
	next := uint32(len(l.buf))
	if i+1 < n {
		next, err = readOffset(l.buf, (i+1)*4)
		if err != nil {
			return nil, err
		}
		if next < cur {
			return nil, ssz.ErrBadOffsetProgression
		}
		if int(next) > len(l.buf) {
			return nil, ssz.ErrOutOfBoundsByte
		}
	}
	return l.buf[cur:next], nil
}

// VectorRef views a fixed-count homogeneous sequence, analogous to ListRef
// but with the item count known upfront rather than derived from the data.
type VectorRef struct {
	buf      []byte
	itemSize int
	n        int
}

// NewVectorRef wraps buf as a vector of exactly n items of the given size (0
// for variable-length items).
func NewVectorRef(buf []byte, itemSize, n int) (VectorRef, error) {
	if itemSize > 0 {
		want := itemSize * n
		if len(buf) != want {
			return VectorRef{}, fmt.Errorf("%w: got %d bytes, want %d", ssz.ErrInvalidByteLength, len(buf), want)
		}
		return VectorRef{buf: buf, itemSize: itemSize, n: n}, nil
	}
	if len(buf) < n*4 {
		return VectorRef{}, fmt.Errorf("%w: got %d bytes, want at least %d", ssz.ErrInvalidByteLength, len(buf), n*4)
	}
	if n > 0 {
		first, err := readOffset(buf, 0)
		if err != nil {
			return VectorRef{}, err
		}
		if first != uint32(n*4) {
			return VectorRef{}, ssz.ErrFirstOffsetMismatch
		}
	}
	return VectorRef{buf: buf, n: n}, nil
}

// Len returns the fixed item count N.
func (v VectorRef) Len() int { return v.n }

// Item returns the raw bytes backing item i, validating offset bounds and
// monotonicity for variable-length items along the way.
func (v VectorRef) Item(i int) ([]byte, error) {
	if i < 0 || i >= v.n {
		return nil, fmt.Errorf("%w: index %d, len %d", ssz.ErrOutOfBoundsByte, i, v.n)
	}
	if v.itemSize > 0 {
		return v.buf[i*v.itemSize : (i+1)*v.itemSize], nil
	}
	cur, err := readOffset(v.buf, i*4)
	if err != nil {
		return nil, err
	}
	next := uint32(len(v.buf))
	if i+1 < v.n {
		next, err = readOffset(v.buf, (i+1)*4)
		if err != nil {
			return nil, err
		}
		if next < cur {
			return nil, ssz.ErrBadOffsetProgression
		}
	}
	if int(cur) > len(v.buf) || int(next) > len(v.buf) {
		return nil, ssz.ErrOutOfBoundsByte
	}
	return v.buf[cur:next], nil
}

// VariableListRef wraps a ListRef with a declared upper bound on item count,
// enforced once at construction.
type VariableListRef struct {
	ListRef
	max uint64
}

// NewVariableListRef wraps buf as a list of items of the given size, bounded
// by a declared maximum item count.
func NewVariableListRef(buf []byte, itemSize int, max uint64) (VariableListRef, error) {
	l, err := NewListRef(buf, itemSize)
	if err != nil {
		return VariableListRef{}, err
	}
	n, err := l.Len()
	if err != nil {
		return VariableListRef{}, err
	}
	if uint64(n) > max {
		return VariableListRef{}, fmt.Errorf("%w: %d items, max %d", ssz.ErrMaxItemsExceeded, n, max)
	}
	return VariableListRef{ListRef: l, max: max}, nil
}

// MaxLen returns the declared maximum item count.
func (l VariableListRef) MaxLen() uint64 { return l.max }

// FixedVectorRef is a VectorRef whose item count is validated against a
// caller-declared constant N at construction.
type FixedVectorRef struct {
	VectorRef
}

// NewFixedVectorRef wraps buf as a vector of exactly n items of the given
// size (0 for variable-length items).
func NewFixedVectorRef(buf []byte, itemSize, n int) (FixedVectorRef, error) {
	v, err := NewVectorRef(buf, itemSize, n)
	if err != nil {
		return FixedVectorRef{}, err
	}
	return FixedVectorRef{VectorRef: v}, nil
}
