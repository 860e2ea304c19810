// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

// runtimeSource is the small set of helpers every generated package needs
// alongside its classes: thin must-wrappers around view/view.go's
// NewFixedBytesRef/NewListRef/NewVectorRef/NewVariableListRef/
// NewFixedVectorRef and view/bitfield.go's NewBitVectorRef/NewBitListRef,
// plus a uint256 byte-order flip and an uint64-slice dynamic-size helper
// sizer.go has no counterpart for. A view getter only fails on a
// malformed/truncated buffer — something that should never happen against a
// buffer this package's own encoder produced, or a decoder already walked
// once to get this far — so these collapse the constructor's error into a
// panic rather than pushing a return error into every single-value getter.
// Emitted once per output package by the packaging step, never per class.
const runtimeSource = `
func mustFixedBytesRef(buf []byte, n int) view.FixedBytesRef {
	ref, err := view.NewFixedBytesRef(buf, n)
	if err != nil {
		panic(err)
	}
	return ref
}

func mustListRef(buf []byte, itemSize int) view.ListRef {
	ref, err := view.NewListRef(buf, itemSize)
	if err != nil {
		panic(err)
	}
	return ref
}

func mustVariableListRef(buf []byte, maxItems uint64) view.ListRef {
	ref, err := view.NewVariableListRef(buf, 0, maxItems)
	if err != nil {
		panic(err)
	}
	return ref.ListRef
}

func mustFixedVectorRef(buf []byte, itemSize, n int) view.FixedVectorRef {
	ref, err := view.NewFixedVectorRef(buf, itemSize, n)
	if err != nil {
		panic(err)
	}
	return ref
}

func mustBitVectorRef(buf []byte, n uint64) view.BitVectorRef {
	ref, err := view.NewBitVectorRef(buf, n)
	if err != nil {
		panic(err)
	}
	return ref
}

func mustBitListRef(buf []byte, maxBits uint64) view.BitListRef {
	ref, err := view.NewBitListRef(buf, maxBits)
	if err != nil {
		panic(err)
	}
	return ref
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func sizeDynamicObjects[T interface{ SizeSSZ(bool) uint32 }](items []T) uint32 {
	size := uint32(0)
	for _, item := range items {
		size += 4 + item.SizeSSZ(false)
	}
	return size
}
`
