// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitfield

import (
	"fmt"
	"math/bits"

	gobitfield "github.com/prysmaticlabs/go-bitfield"
)

// BitList is a variable-length, bit-packed boolean collection with a runtime
// bit count in [0, N]. Its wire encoding carries the length inline as a
// trailing "length bit" (see Encode), the same convention implemented by
// github.com/prysmaticlabs/go-bitfield, which this type uses for the actual
// byte-level packing of the length-delimited form.
type BitList struct {
	data []byte // data bits only, length-bit stripped
	len  uint64 // current bit count
	max  uint64 // N, declared maximum bit count
}

// WithCapacity allocates an all-zero BitList with numBits data bits, bounded
// by a declared maximum of maxLen bits.
func WithCapacity(maxLen, numBits uint64) (*BitList, error) {
	if numBits > maxLen {
		return nil, fmt.Errorf("%w: %d bits requested, max %d", ErrCapacityExceeded, numBits, maxLen)
	}
	return &BitList{data: make([]byte, byteCount(numBits)), len: numBits, max: maxLen}, nil
}

// MaxLen returns the declared maximum bit count N.
func (b *BitList) MaxLen() uint64 { return b.max }

// Len returns the current runtime bit count.
func (b *BitList) Len() uint64 { return b.len }

// IsEmpty reports whether the list currently holds zero bits.
func (b *BitList) IsEmpty() bool { return b.len == 0 }

// Get returns the value of bit i.
func (b *BitList) Get(i uint64) (bool, error) {
	if i >= b.len {
		return false, fmt.Errorf("%w: index %d, len %d", ErrOutOfBounds, i, b.len)
	}
	return getBit(b.data, i), nil
}

// Set assigns the value of bit i.
func (b *BitList) Set(i uint64, v bool) error {
	if i >= b.len {
		return fmt.Errorf("%w: index %d, len %d", ErrOutOfBounds, i, b.len)
	}
	setBit(b.data, i, v)
	return nil
}

// HighestSetBit returns the index of the highest set data bit, or -1 if empty
// or all zero.
func (b *BitList) HighestSetBit() int64 { return highestSetBit(b.data, b.len) }

// NumSetBits returns the population count across the current data bits.
func (b *BitList) NumSetBits() uint64 { return numSetBits(b.data, b.len) }

// IsZero reports whether every current data bit is unset.
func (b *BitList) IsZero() bool { return isZero(b.data, b.len) }

// Iter returns the value of every current bit in ascending index order.
func (b *BitList) Iter() []bool {
	out := make([]bool, b.len)
	for i := uint64(0); i < b.len; i++ {
		out[i] = getBit(b.data, i)
	}
	return out
}

// AsSlice returns the raw data bytes, without the trailing length bit.
func (b *BitList) AsSlice() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

func (b *BitList) requireSameShape(o *BitList) error {
	if b.len != o.len {
		return fmt.Errorf("%w: %d vs %d", ErrIncompatibleShape, b.len, o.len)
	}
	return nil
}

// Intersection returns a new BitList with bit i set iff both b and o have bit
// i set. Both operands must currently hold the same bit count.
func (b *BitList) Intersection(o *BitList) (*BitList, error) {
	if err := b.requireSameShape(o); err != nil {
		return nil, err
	}
	return &BitList{data: combine(b.data, o.data, b.len, func(x, y byte) byte { return x & y }), len: b.len, max: b.max}, nil
}

// Union returns a new BitList with bit i set iff either b or o has bit i set.
func (b *BitList) Union(o *BitList) (*BitList, error) {
	if err := b.requireSameShape(o); err != nil {
		return nil, err
	}
	return &BitList{data: combine(b.data, o.data, b.len, func(x, y byte) byte { return x | y }), len: b.len, max: b.max}, nil
}

// Difference returns a new BitList with bit i set iff b has bit i set and o
// does not.
func (b *BitList) Difference(o *BitList) (*BitList, error) {
	if err := b.requireSameShape(o); err != nil {
		return nil, err
	}
	return &BitList{data: combine(b.data, o.data, b.len, func(x, y byte) byte { return x &^ y }), len: b.len, max: b.max}, nil
}

// IsSubset reports whether every bit set in b is also set in o.
func (b *BitList) IsSubset(o *BitList) (bool, error) {
	if err := b.requireSameShape(o); err != nil {
		return false, err
	}
	return isSubset(b.data, o.data, b.len), nil
}

// ShiftUp returns a new BitList of the same current length where bit i of
// the result equals bit i-n of b for i >= n, and false below that. It fails
// if n exceeds the list's current length.
func (b *BitList) ShiftUp(n uint64) (*BitList, error) {
	if n > b.len {
		return nil, fmt.Errorf("%w: shift %d exceeds len %d", ErrOutOfBounds, n, b.len)
	}
	return &BitList{data: shiftUp(b.data, b.len, n), len: b.len, max: b.max}, nil
}

// Resize reinterprets b under a larger declared maximum M >= N, preserving
// its current bits and length.
func (b *BitList) Resize(newMax uint64) (*BitList, error) {
	if newMax < b.max {
		return nil, fmt.Errorf("%w: %d < %d", ErrShrink, newMax, b.max)
	}
	return &BitList{data: b.AsSlice(), len: b.len, max: newMax}, nil
}

// Encode returns the SSZ wire encoding: the data bytes with an extra trailing
// length bit set at position b.len, producing ⌊len/8⌋+1 bytes. This matches
// the length-delimited convention of github.com/prysmaticlabs/go-bitfield's
// Bitlist type, which is used here to assemble the final byte buffer.
func (b *BitList) Encode() []byte {
	raw := gobitfield.NewBitlist(b.len)
	for i := uint64(0); i < b.len; i++ {
		if getBit(b.data, i) {
			raw.SetBitAt(i, true)
		}
	}
	return raw
}

// DecodeBitList parses a BitList from its SSZ encoding, locating the length
// bit as the highest set bit in the whole input, rejecting inputs whose
// length bit implies a count above maxLen, and rejecting trailing bytes past
// the one containing the length bit.
func DecodeBitList(data []byte, maxLen uint64) (*BitList, error) {
	if len(data) == 0 {
		return nil, ErrMissingLengthInformation
	}
	last := len(data) - 1
	for last >= 0 && data[last] == 0 {
		last--
	}
	if last < 0 {
		return nil, ErrMissingLengthInformation
	}
	msb := bits.Len8(data[last]) - 1
	size := uint64(8*last + msb)

	// The total encoding is always floor(size/8)+1 bytes: either the length
	// bit shares the last partial data byte, or (when size is a multiple of
	// 8) it occupies a whole extra byte of its own.
	if want := int(size/8) + 1; len(data) != want {
		return nil, ErrExtraBytes
	}
	if size > maxLen {
		return nil, fmt.Errorf("%w: decoded %d bits, max %d bits", ErrCapacityExceeded, size, maxLen)
	}

	out := make([]byte, byteCount(size))
	copy(out, data)
	if int(size/8) < len(out) {
		out[size/8] &^= 1 << uint(msb)
	}
	return &BitList{data: out, len: size, max: maxLen}, nil
}
