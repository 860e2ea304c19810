// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

// newableStaticObject is a generic type whose purpose is to enforce that
// ssz.StaticObject is specifically implemented on a struct pointer. That's
// needed to allow us to instantiate new structs via `new` when parsing.
type newableStaticObject[U any] interface {
	StaticObject
	*U
}

// newableDynamicObject is the newableStaticObject analog for dynamic-length
// objects.
type newableDynamicObject[U any] interface {
	DynamicObject
	*U
}

// commonBytesLengths is a generic type whose purpose is to permit that lists
// of different fixed-sized binary blobs can be passed to methods.
//
// You can add any size to this list really, it's just a limitation of the Go
// generics compiler that it cannot represent arrays of arbitrary sizes with
// one shorthand notation.
type commonBytesLengths interface {
	// footgun | address | hash | pubkey
	~[]byte | ~[20]byte | ~[32]byte | ~[48]byte
}

// commonBytesArrayLengths is a generic type permitting slices of the above
// fixed-sized binary blobs to be passed to a method as a single shorthand.
type commonBytesArrayLengths[U commonBytesLengths] interface {
	~[]U
}

// commonBitsLengths is a generic type permitting the backing byte arrays of
// BitVectors of varying widths to be passed to a method as a single
// shorthand.
type commonBitsLengths interface {
	~[]byte | ~[1]byte | ~[4]byte | ~[8]byte | ~[16]byte | ~[32]byte | ~[64]byte | ~[256]byte
}

// commonUint64sLengths is a generic type permitting fixed arrays of uint64s
// of varying lengths to be passed to a method as a single shorthand.
type commonUint64sLengths interface {
	~[4]uint64 | ~[8]uint64
}
