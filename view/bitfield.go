// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"fmt"
	"math/bits"

	"github.com/sszlab/ssz"
	"github.com/sszlab/ssz/bitfield"
)

// BitVectorRef views a fixed-length, bit-packed boolean collection without
// copying its backing bytes.
type BitVectorRef struct {
	buf []byte
	n   uint64
}

// NewBitVectorRef wraps buf as a BitVector of exactly n bits, rejecting
// excess high bits set in the final byte.
func NewBitVectorRef(buf []byte, n uint64) (BitVectorRef, error) {
	want := int((n + 7) / 8)
	if want == 0 {
		want = 1
	}
	if len(buf) != want {
		return BitVectorRef{}, fmt.Errorf("%w: got %d bytes, want %d", ssz.ErrInvalidByteLength, len(buf), want)
	}
	if rem := n % 8; rem != 0 {
		if mask := byte(0xFF << rem); buf[want-1]&mask != 0 {
			return BitVectorRef{}, ssz.ErrJunkInBitvector
		}
	}
	return BitVectorRef{buf: buf, n: n}, nil
}

// Len returns the fixed bit count N.
func (r BitVectorRef) Len() uint64 { return r.n }

// Get returns the value of bit i.
func (r BitVectorRef) Get(i uint64) (bool, error) {
	if i >= r.n {
		return false, fmt.Errorf("%w: index %d, len %d", ssz.ErrOutOfBoundsByte, i, r.n)
	}
	return r.buf[i/8]&(1<<(i%8)) != 0, nil
}

// ToOwned materializes the view into an owned bitfield.BitVector.
func (r BitVectorRef) ToOwned() (*bitfield.BitVector, error) {
	return bitfield.DecodeBitVector(r.buf, r.n)
}

// BitListRef views a variable-length, bit-packed boolean collection encoded
// with the trailing length-bit convention, without copying its backing bytes.
type BitListRef struct {
	buf []byte
	max uint64
}

// NewBitListRef wraps buf as a BitList bounded by max bits, locating the
// length bit as the highest set bit of the final byte.
func NewBitListRef(buf []byte, max uint64) (BitListRef, error) {
	if len(buf) == 0 || buf[len(buf)-1] == 0 {
		return BitListRef{}, ssz.ErrJunkInBitlist
	}
	msb := bits.Len8(buf[len(buf)-1]) - 1
	size := uint64(8*(len(buf)-1) + msb)

	if want := int(size/8) + 1; len(buf) != want {
		return BitListRef{}, ssz.ErrJunkInBitlist
	}
	if size > max {
		return BitListRef{}, fmt.Errorf("%w: %d bits, max %d bits", ssz.ErrMaxItemsExceeded, size, max)
	}
	return BitListRef{buf: buf, max: max}, nil
}

// Len returns the current runtime bit count, read from the trailing length
// bit.
func (r BitListRef) Len() uint64 {
	msb := bits.Len8(r.buf[len(r.buf)-1]) - 1
	return uint64(8*(len(r.buf)-1) + msb)
}

// Get returns the value of data bit i.
func (r BitListRef) Get(i uint64) (bool, error) {
	n := r.Len()
	if i >= n {
		return false, fmt.Errorf("%w: index %d, len %d", ssz.ErrOutOfBoundsByte, i, n)
	}
	return r.buf[i/8]&(1<<(i%8)) != 0, nil
}

// ToOwned materializes the view into an owned bitfield.BitList.
func (r BitListRef) ToOwned() (*bitfield.BitList, error) {
	return bitfield.DecodeBitList(r.buf, r.max)
}
