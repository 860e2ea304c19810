// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import "errors"

// ErrFirstOffsetMismatch is returned when parsing dynamic types and the first
// offset (which is supposed to signal the start of the dynamic area) does not
// match with the computed fixed area size.
var ErrFirstOffsetMismatch = errors.New("ssz: first offset mismatch")

// ErrBadOffsetProgression is returned when an offset is parsed, and is smaller
// than a previously seen offset (meaning negative dynamic data size).
var ErrBadOffsetProgression = errors.New("ssz: offset smaller than previous")

// ErrOffsetBeyondCapacity is returned when an offset is parsed, and is larger
// than the total capacity allowed by the decoder (i.e. message size)
var ErrOffsetBeyondCapacity = errors.New("ssz: offset beyond capacity")

// ErrMaxLengthExceeded is returned when the size calculated for a dynamic type
// is larger than permitted.
var ErrMaxLengthExceeded = errors.New("ssz: maximum item size exceeded")

// ErrMaxItemsExceeded is returned when the number of items in a dynamic list
// type is later than permitted.
var ErrMaxItemsExceeded = errors.New("ssz: maximum item count exceeded")

// ErrShortCounterOffset is returned if a counter offset it attempted to be read
// but there are fewer bytes available on the stream.
var ErrShortCounterOffset = errors.New("ssz: insufficient data for 4-byte counter offset")

// ErrBadCounterOffset is returned when a list of offsets are consumed and the
// first offset is not a multiple of 4-bytes.
var ErrBadCounterOffset = errors.New("ssz: counter offset not multiple of 4-bytes")

// ErrDynamicStaticsIndivisible is returned when a list of static objects is to
// be decoded, but the list's total length is not divisible by the item size.
var ErrDynamicStaticsIndivisible = errors.New("ssz: list of fixed objects not divisible")

// ErrInvalidBoolean is returned when a decoded boolean byte is neither 0 nor 1.
var ErrInvalidBoolean = errors.New("ssz: invalid boolean")

// ErrJunkInBitvector is returned when a BitVector's final byte has excess
// bits set beyond its declared size.
var ErrJunkInBitvector = errors.New("ssz: excess bits in bitvector")

// ErrJunkInBitlist is returned when a BitList's encoding carries no length
// bit, or more bytes than the length bit implies.
var ErrJunkInBitlist = errors.New("ssz: junk in bitlist encoding")

// ErrObjectSlotSizeMismatch is returned when an object consumes a different
// number of bytes than the size it was asked to decode from.
var ErrObjectSlotSizeMismatch = errors.New("ssz: object consumed a different size than expected")

// The remaining sentinels complete the codec error taxonomy of the wire
// format: invalid byte lengths, offset table violations, and the union and
// stable-container specific failures the teacher's retrieved subset never
// needed (it has no union/stable-container support of its own).

// ErrInvalidByteLength is returned when a composite's input slice does not
// carry at least its fixed-portion length (or, for fixed-length types,
// doesn't match it exactly).
var ErrInvalidByteLength = errors.New("ssz: invalid byte length")

// ErrOffsetIntoFixedPortion is returned when the first variable-length
// field's offset points inside the fixed portion of its container.
var ErrOffsetIntoFixedPortion = errors.New("ssz: offset points into fixed portion")

// ErrOutOfBoundsByte is returned when a composite read runs past the end of
// its input slice.
var ErrOutOfBoundsByte = errors.New("ssz: byte index out of bounds")

// ErrZeroLengthItem is returned when a variable-length field decodes to an
// empty slice in a context where that is forbidden (e.g. a None union body
// that isn't actually the None variant).
var ErrZeroLengthItem = errors.New("ssz: unexpected zero-length item")

// ErrUnionSelectorInvalid is returned when a union's selector byte names a
// variant index beyond those declared for the union, or the reserved [128,
// 255] range.
var ErrUnionSelectorInvalid = errors.New("ssz: invalid union selector")

// ErrUnionNoneHasBody is returned when a union's None variant (selector 0) is
// decoded with a non-empty body.
var ErrUnionNoneHasBody = errors.New("ssz: union none variant carries a body")

// ErrActiveFieldsMismatch is returned when a stable container's active-fields
// BitVector prefix names a position beyond MaxFields, or names a field the
// target Profile requires to always be present as absent.
var ErrActiveFieldsMismatch = errors.New("ssz: active-fields bitvector mismatch")
