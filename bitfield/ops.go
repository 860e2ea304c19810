// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitfield

import "math/bits"

// byteCount returns the number of bytes needed to hold n packed bits, with
// the SSZ convention that zero bits still occupy one byte.
func byteCount(n uint64) int {
	if n == 0 {
		return 1
	}
	return int((n + 7) / 8)
}

func getBit(buf []byte, i uint64) bool {
	return buf[i/8]&(1<<(i%8)) != 0
}

func setBit(buf []byte, i uint64, v bool) {
	if v {
		buf[i/8] |= 1 << (i % 8)
	} else {
		buf[i/8] &^= 1 << (i % 8)
	}
}

// highestSetBit returns the index of the highest set bit across the first n
// declared bits of buf, or -1 if none are set.
func highestSetBit(buf []byte, n uint64) int64 {
	for i := int64(n) - 1; i >= 0; i-- {
		if getBit(buf, uint64(i)) {
			return i
		}
	}
	return -1
}

func numSetBits(buf []byte, n uint64) uint64 {
	var count uint64
	full := n / 8
	for i := uint64(0); i < full; i++ {
		count += uint64(bits.OnesCount8(buf[i]))
	}
	for i := full * 8; i < n; i++ {
		if getBit(buf, i) {
			count++
		}
	}
	return count
}

func isZero(buf []byte, n uint64) bool {
	return numSetBits(buf, n) == 0
}

// combine applies op bitwise across a and b (which must share the same
// declared length n) and returns a freshly allocated result buffer.
func combine(a, b []byte, n uint64, op func(x, y byte) byte) []byte {
	out := make([]byte, byteCount(n))
	for i := range out {
		var av, bv byte
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = op(av, bv)
	}
	return out
}

func isSubset(a, b []byte, n uint64) bool {
	full := n / 8
	for i := uint64(0); i < full; i++ {
		if a[i]&^b[i] != 0 {
			return false
		}
	}
	for i := full * 8; i < n; i++ {
		if getBit(a, i) && !getBit(b, i) {
			return false
		}
	}
	return true
}

// shiftUp returns a new buffer of the same declared length n where bit i of
// the result equals bit i-shift of buf for i >= shift, and false otherwise.
func shiftUp(buf []byte, n, shift uint64) []byte {
	out := make([]byte, byteCount(n))
	for i := shift; i < n; i++ {
		if getBit(buf, i-shift) {
			setBit(out, i, true)
		}
	}
	return out
}
