// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bitfield implements the SSZ BitVector and BitList packed boolean
// collections, their wire codec and the set operations the spec requires
// (intersection, union, difference, shift, subset tests).
package bitfield

import "errors"

// ErrOutOfBounds is returned when a bit index is accessed past the field's
// declared length.
var ErrOutOfBounds = errors.New("bitfield: index out of bounds")

// ErrExcessBits is returned when a BitVector's encoding carries set bits past
// its declared size, inside the padding of the final byte.
var ErrExcessBits = errors.New("bitfield: excess bits set beyond declared size")

// ErrInvalidByteCount is returned when a BitVector is decoded from a byte
// slice whose length doesn't exactly match the expected encoding size.
var ErrInvalidByteCount = errors.New("bitfield: invalid byte count")

// ErrMissingLengthInformation is returned when a BitList's encoding has no
// set bit at all, so the length delimiter cannot be located.
var ErrMissingLengthInformation = errors.New("bitfield: missing length information")

// ErrExtraBytes is returned when a BitList's encoding carries bytes past the
// one containing the length bit.
var ErrExtraBytes = errors.New("bitfield: extra bytes past length bit")

// ErrCapacityExceeded is returned when a BitList is asked to hold more bits
// than its declared maximum length allows.
var ErrCapacityExceeded = errors.New("bitfield: capacity exceeded")

// ErrShrink is returned when resizing a BitList to a smaller maximum length
// than it currently has.
var ErrShrink = errors.New("bitfield: cannot resize to a smaller capacity")

// ErrIncompatibleShape is returned when a binary set operation (intersection,
// union, difference, subset test) is attempted between fields of different
// bit lengths.
var ErrIncompatibleShape = errors.New("bitfield: incompatible shapes")
