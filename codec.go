// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"github.com/holiman/uint256"
	"github.com/prysmaticlabs/go-bitfield"
)

// Codec is a unified SSZ encoder, decoder and Merkle hasher that allows
// simple structs to define their schemas once and have that work for all
// three operations at once (with the same speed as explicitly typing them
// out would, of course).
type Codec struct {
	enc *Encoder
	dec *Decoder
	har *Hasher
}

// DefineEncoder uses a dedicated encoder in case the types SSZ conversion is for
// some reason asymmetric (e.g. encoding depends on fields, decoding depends on
// outer context).
//
// In reality, it will be the live code run when the object is being serialized.
func (c *Codec) DefineEncoder(impl func(enc *Encoder)) {
	if c.enc != nil {
		impl(c.enc)
	}
}

// DefineDecoder uses a dedicated decoder in case the types SSZ conversion is for
// some reason asymmetric (e.g. encoding depends on fields, decoding depends on
// outer context).
//
// In reality, it will be the live code run when the object is being parsed.
func (c *Codec) DefineDecoder(impl func(dec *Decoder)) {
	if c.dec != nil {
		impl(c.dec)
	}
}

// DefineHasher uses a dedicated hasher in case the types SSZ conversion is for
// some reason asymmetric (e.g. hashing depends on fields not exposed through
// the encoder/decoder path).
//
// In reality, it will be the live code run when the object's Merkle root is
// being computed.
func (c *Codec) DefineHasher(impl func(har *Hasher)) {
	if c.har != nil {
		impl(c.har)
	}
}

// DefineBool defines the next field as a 1 byte boolean.
func DefineBool[T ~bool](c *Codec, v *T) {
	if c.enc != nil {
		EncodeBool(c.enc, *v)
		return
	}
	if c.dec != nil {
		DecodeBool(c.dec, v)
		return
	}
	HashBool(c.har, *v)
}

// DefineUint8 defines the next field as a uint8.
func DefineUint8[T ~uint8](c *Codec, n *T) {
	if c.enc != nil {
		EncodeUint8(c.enc, *n)
		return
	}
	if c.dec != nil {
		DecodeUint8(c.dec, n)
		return
	}
	HashUint8(c.har, *n)
}

// DefineUint16 defines the next field as a uint16.
func DefineUint16[T ~uint16](c *Codec, n *T) {
	if c.enc != nil {
		EncodeUint16(c.enc, *n)
		return
	}
	if c.dec != nil {
		DecodeUint16(c.dec, n)
		return
	}
	HashUint16(c.har, *n)
}

// DefineUint32 defines the next field as a uint32.
func DefineUint32[T ~uint32](c *Codec, n *T) {
	if c.enc != nil {
		EncodeUint32(c.enc, *n)
		return
	}
	if c.dec != nil {
		DecodeUint32(c.dec, n)
		return
	}
	HashUint32(c.har, *n)
}

// DefineUint64 defines the next field as a uint64.
func DefineUint64[T ~uint64](c *Codec, n *T) {
	if c.enc != nil {
		EncodeUint64(c.enc, *n)
		return
	}
	if c.dec != nil {
		DecodeUint64(c.dec, n)
		return
	}
	HashUint64(c.har, *n)
}

// DefineUint256 defines the next field as a uint256.
func DefineUint256(c *Codec, n **uint256.Int) {
	if c.enc != nil {
		EncodeUint256(c.enc, *n)
		return
	}
	if c.dec != nil {
		DecodeUint256(c.dec, n)
		return
	}
	HashUint256(c.har, *n)
}

// DefineUint128 defines the next field as a 128-bit unsigned integer, backed
// by a uint256 whose upper 16 bytes must be zero.
func DefineUint128(c *Codec, n **uint256.Int) {
	if c.enc != nil {
		EncodeUint128(c.enc, *n)
		return
	}
	if c.dec != nil {
		DecodeUint128(c.dec, n)
		return
	}
	HashUint128(c.har, *n)
}

// DefineStaticBytes defines the next field as static binary blob. This method
// can be used for byte arrays.
func DefineStaticBytes[T commonBytesLengths](c *Codec, blob *T) {
	if c.enc != nil {
		EncodeStaticBytes(c.enc, blob)
		return
	}
	if c.dec != nil {
		DecodeStaticBytes(c.dec, blob)
		return
	}
	HashStaticBytes(c.har, blob)
}

// DefineCheckedStaticBytes defines the next field as static binary blob. This
// method can be used for plain byte slices, which is more expensive , since it
// needs runtime size validation.
func DefineCheckedStaticBytes(c *Codec, blob *[]byte, size uint64) {
	if c.enc != nil {
		EncodeCheckedStaticBytes(c.enc, *blob, size)
		return
	}
	if c.dec != nil {
		DecodeCheckedStaticBytes(c.dec, blob, size)
		return
	}
	HashCheckedStaticBytes(c.har, *blob)
}

// DefineDynamicBytesOffset defines the next field as dynamic binary blob.
func DefineDynamicBytesOffset(c *Codec, blob *[]byte) {
	if c.enc != nil {
		EncodeDynamicBytesOffset(c.enc, *blob)
		return
	}
	if c.dec != nil {
		DecodeDynamicBytesOffset(c.dec, blob)
		return
	}
	// Hashing has no concept of offsets, only the content call matters.
}

// DefineDynamicBytesContent defines the next field as dynamic binary blob.
func DefineDynamicBytesContent(c *Codec, blob *[]byte, maxSize uint64) {
	if c.enc != nil {
		EncodeDynamicBytesContent(c.enc, *blob)
		return
	}
	if c.dec != nil {
		DecodeDynamicBytesContent(c.dec, blob, maxSize)
		return
	}
	HashDynamicBytes(c.har, *blob, maxSize)
}

// DefineStaticObject defines the next field as a static ssz object.
func DefineStaticObject[T newableStaticObject[U], U any](c *Codec, obj *T) {
	if c.enc != nil {
		EncodeStaticObject(c.enc, *obj)
		return
	}
	if c.dec != nil {
		DecodeStaticObject(c.dec, obj)
		return
	}
	if *obj == nil {
		*obj = zeroValueStatic[T, U]()
	}
	HashStaticObject(c.har, *obj)
}

// DefineDynamicObjectOffset defines the next field as a dynamic ssz object.
func DefineDynamicObjectOffset[T newableDynamicObject[U], U any](c *Codec, obj *T) {
	if c.enc != nil {
		EncodeDynamicObjectOffset(c.enc, *obj)
		return
	}
	if c.dec != nil {
		DecodeDynamicObjectOffset(c.dec, obj)
		return
	}
	// Hashing has no concept of offsets, only the content call matters.
}

// DefineDynamicObjectContent defines the next field as a dynamic ssz object.
func DefineDynamicObjectContent[T newableDynamicObject[U], U any](c *Codec, obj *T) {
	if c.enc != nil {
		EncodeDynamicObjectContent(c.enc, *obj)
		return
	}
	if c.dec != nil {
		DecodeDynamicObjectContent(c.dec, obj)
		return
	}
	if *obj == nil {
		*obj = zeroValueDynamic[T, U]()
	}
	HashDynamicObject(c.har, *obj)
}

// DefineArrayOfBits defines the next field as a static array of (packed) bits.
func DefineArrayOfBits[T commonBitsLengths](c *Codec, bits *T) {
	if c.enc != nil {
		EncodeArrayOfBits(c.enc, bits)
		return
	}
	if c.dec != nil {
		DecodeArrayOfBits(c.dec, bits, uint64(len(*bits))*8)
		return
	}
	HashArrayOfBits(c.har, bits)
}

// DefineArrayOfUint64s defines the next field as a static array of uint64s.
func DefineArrayOfUint64s[T commonUint64sLengths](c *Codec, ns *T) {
	if c.enc != nil {
		EncodeArrayOfUint64s(c.enc, ns)
		return
	}
	if c.dec != nil {
		DecodeArrayOfUint64s(c.dec, ns)
		return
	}
	HashArrayOfUint64s(c.har, ns)
}

// DefineSliceOfUint64sOffset defines the next field as a dynamic slice of uint64s.
func DefineSliceOfUint64sOffset[T ~uint64](c *Codec, ns *[]T) {
	if c.enc != nil {
		EncodeSliceOfUint64sOffset(c.enc, *ns)
		return
	}
	if c.dec != nil {
		DecodeSliceOfUint64sOffset(c.dec, ns)
		return
	}
	// Hashing has no concept of offsets, only the content call matters.
}

// DefineSliceOfUint64sContent defines the next field as a dynamic slice of uint64s.
func DefineSliceOfUint64sContent[T ~uint64](c *Codec, ns *[]T, maxItems uint64) {
	if c.enc != nil {
		EncodeSliceOfUint64sContent(c.enc, *ns)
		return
	}
	if c.dec != nil {
		DecodeSliceOfUint64sContent(c.dec, ns, maxItems)
		return
	}
	HashSliceOfUint64s(c.har, *ns, maxItems)
}

// DefineArrayOfStaticBytes defines the next field as a static array of static
// binary blobs.
func DefineArrayOfStaticBytes[T commonBytesArrayLengths[U], U commonBytesLengths](c *Codec, blobs *T) {
	if c.enc != nil {
		EncodeArrayOfStaticBytes(c.enc, blobs)
		return
	}
	if c.dec != nil {
		DecodeArrayOfStaticBytes(c.dec, blobs)
		return
	}
	HashArrayOfStaticBytes(c.har, blobs)
}

// DefineCheckedArrayOfStaticBytes defines the next field as a static array of
// static binary blobs. This method can be used for plain slices of byte arrays,
// which is more expensive  since it needs runtime size validation.
func DefineCheckedArrayOfStaticBytes[T commonBytesLengths](c *Codec, blobs *[]T, size uint64) {
	if c.enc != nil {
		EncodeCheckedArrayOfStaticBytes(c.enc, *blobs, size)
		return
	}
	if c.dec != nil {
		DecodeCheckedArrayOfStaticBytes(c.dec, blobs, size)
		return
	}
	HashCheckedArrayOfStaticBytes(c.har, *blobs)
}

// DefineSliceOfStaticBytesOffset defines the next field as a dynamic slice of static
// binary blobs.
func DefineSliceOfStaticBytesOffset[T commonBytesLengths](c *Codec, bytes *[]T) {
	if c.enc != nil {
		EncodeSliceOfStaticBytesOffset(c.enc, *bytes)
		return
	}
	if c.dec != nil {
		DecodeSliceOfStaticBytesOffset(c.dec, bytes)
		return
	}
	// Hashing has no concept of offsets, only the content call matters.
}

// DefineSliceOfStaticBytesContent defines the next field as a dynamic slice of static
// binary blobs.
func DefineSliceOfStaticBytesContent[T commonBytesLengths](c *Codec, blobs *[]T, maxItems uint64) {
	if c.enc != nil {
		EncodeSliceOfStaticBytesContent(c.enc, *blobs)
		return
	}
	if c.dec != nil {
		DecodeSliceOfStaticBytesContent(c.dec, blobs, maxItems)
		return
	}
	HashSliceOfStaticBytes(c.har, *blobs, maxItems)
}

// DefineSliceOfDynamicBytesOffset defines the next field as a dynamic slice of dynamic
// binary blobs.
func DefineSliceOfDynamicBytesOffset(c *Codec, blobs *[][]byte) {
	if c.enc != nil {
		EncodeSliceOfDynamicBytesOffset(c.enc, *blobs)
		return
	}
	if c.dec != nil {
		DecodeSliceOfDynamicBytesOffset(c.dec, blobs)
		return
	}
	// Hashing has no concept of offsets, only the content call matters.
}

// DefineSliceOfDynamicBytesContent defines the next field as a dynamic slice of dynamic
// binary blobs.
func DefineSliceOfDynamicBytesContent(c *Codec, blobs *[][]byte, maxItems uint64, maxSize uint64) {
	if c.enc != nil {
		EncodeSliceOfDynamicBytesContent(c.enc, *blobs)
		return
	}
	if c.dec != nil {
		DecodeSliceOfDynamicBytesContent(c.dec, blobs, maxItems, maxSize)
		return
	}
	HashSliceOfDynamicBytes(c.har, *blobs, maxItems, maxSize)
}

// DefineSliceOfStaticObjectsOffset defines the next field as a dynamic slice of static
// ssz objects.
func DefineSliceOfStaticObjectsOffset[T newableStaticObject[U], U any](c *Codec, objects *[]T) {
	if c.enc != nil {
		EncodeSliceOfStaticObjectsOffset(c.enc, *objects)
		return
	}
	if c.dec != nil {
		DecodeSliceOfStaticObjectsOffset(c.dec, objects)
		return
	}
	// Hashing has no concept of offsets, only the content call matters.
}

// DefineSliceOfStaticObjectsContent defines the next field as a dynamic slice of static
// ssz objects.
func DefineSliceOfStaticObjectsContent[T newableStaticObject[U], U any](c *Codec, objects *[]T, maxItems uint64) {
	if c.enc != nil {
		EncodeSliceOfStaticObjectsContent(c.enc, *objects)
		return
	}
	if c.dec != nil {
		DecodeSliceOfStaticObjectsContent(c.dec, objects, maxItems)
		return
	}
	HashSliceOfStaticObjects(c.har, *objects, maxItems)
}

// DefineSliceOfDynamicObjectsOffset defines the next field as a dynamic slice of dynamic
// ssz objects.
func DefineSliceOfDynamicObjectsOffset[T newableDynamicObject[U], U any](c *Codec, objects *[]T) {
	if c.enc != nil {
		EncodeSliceOfDynamicObjectsOffset(c.enc, *objects)
		return
	}
	if c.dec != nil {
		DecodeSliceOfDynamicObjectsOffset(c.dec, objects)
		return
	}
	// Hashing has no concept of offsets, only the content call matters.
}

// DefineSliceOfDynamicObjectsContent defines the next field as a dynamic slice of dynamic
// ssz objects.
func DefineSliceOfDynamicObjectsContent[T newableDynamicObject[U], U any](c *Codec, objects *[]T, maxItems uint64) {
	if c.enc != nil {
		EncodeSliceOfDynamicObjectsContent(c.enc, *objects)
		return
	}
	if c.dec != nil {
		DecodeSliceOfDynamicObjectsContent(c.dec, objects, maxItems)
		return
	}
	HashSliceOfDynamicObjects(c.har, *objects, maxItems)
}

// DefineBitVector defines the next field as a fixed-length BitVector. The
// backing array size T determines the declared bit length N = 8*len(T).
func DefineBitVector[T commonBitsLengths](c *Codec, bits *T) {
	DefineArrayOfBits(c, bits)
}

// DefineBitList defines the next field as a variable-length BitList with
// declared maximum bit count maxBits.
func DefineBitList(c *Codec, bits *bitfield.Bitlist, maxBits uint64) {
	if c.enc != nil {
		EncodeSliceOfBitsContent(c.enc, *bits)
		return
	}
	if c.dec != nil {
		DecodeSliceOfBitsContent(c.dec, bits, maxBits)
		return
	}
	HashSliceOfBits(c.har, *bits, maxBits)
}

// DefineBitListOffset defines the offset slot of a variable-length BitList.
func DefineBitListOffset(c *Codec, bits *bitfield.Bitlist) {
	if c.enc != nil {
		EncodeSliceOfBitsOffset(c.enc, *bits)
		return
	}
	if c.dec != nil {
		DecodeSliceOfBitsOffset(c.dec, bits)
		return
	}
	// Hashing has no concept of offsets, only the content call matters.
}

// DefineUnionSelector defines the wire-level one-byte selector prefix of a
// union, updating *selector in place. This must run (and its result be
// switched on) before DefineUnionContent, since on decode *selector is not
// known until this call returns. Hashing mixes the selector in separately via
// DefineUnionContent, so this call is a no-op while hashing.
func DefineUnionSelector[T ~uint8](c *Codec, selector *T) {
	if c.enc != nil {
		EncodeUint8(c.enc, *selector)
		return
	}
	if c.dec != nil {
		DecodeUint8(c.dec, selector)
		return
	}
	// Hashing mixes the selector in separately, see DefineUnionContent.
}

// DefineUnionContent defines the currently active variant's content, given
// the already-decoded selector. body is invoked with the same codec to
// encode, decode or hash whichever variant selector identifies; for the
// `None` variant (selector 0) body should be nil. Hashing mixes the selector
// into the variant's Merkle root, following the union tree-hashing rule - a
// union behaves as a DynamicObject, so DefineUnionSelector followed by a
// switch dispatching to DefineUnionContent is typically the entirety of its
// DefineSSZ implementation.
func DefineUnionContent[T ~uint8](c *Codec, selector T, body func(c *Codec)) {
	if c.enc != nil {
		if body != nil {
			body(c)
		}
		return
	}
	if c.dec != nil {
		if body != nil {
			body(c)
		}
		return
	}
	HashUnion(c.har, selector, func(h *Hasher) {
		if body != nil {
			body(c)
		}
	})
}

// DefineStableContainerActiveFields defines the wire-level active-fields
// BitVector<maxFields> prefix of a stable container. Hashing mixes the
// active-fields bitmap in separately (see HashStableContainer), so this call
// is a no-op while hashing.
func DefineStableContainerActiveFields[T commonBitsLengths](c *Codec, activeFields *T) {
	if c.enc != nil {
		EncodeArrayOfBits(c.enc, activeFields)
		return
	}
	if c.dec != nil {
		DecodeArrayOfBits(c.dec, activeFields, uint64(len(*activeFields))*8)
		return
	}
	// Hashing mixes the active-fields bitmap in separately, see HashStableContainer.
}
