// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ssz contains the codec and Merkle-hashing helpers needed to
// implement the SSZ wire format: fixed and variable length composites,
// bit-packed vectors and lists, stable containers and tagged unions.
package ssz

import (
	"io"
	"sync"
	"unsafe"
)

// StaticObject defines the methods a type needs to implement to be used as an
// SSZ encodable and decodable object with a fixed (always identical) encoded
// size.
type StaticObject interface {
	// SizeSSZ returns the total size of an SSZ object.
	SizeSSZ() uint32

	// DefineSSZ runs the object's schema definition against an SSZ codec.
	DefineSSZ(codec *Codec)
}

// DynamicObject defines the methods a type needs to implement to be used as an
// SSZ encodable and decodable object with a variable encoded size.
type DynamicObject interface {
	// SizeSSZ returns the total size of an SSZ object. When fixed is true, only
	// the fixed-size fields are to be counted, i.e. offsets instead of dynamic
	// data for variable-length fields.
	SizeSSZ(fixed bool) uint32

	// DefineSSZ runs the object's schema definition against an SSZ codec.
	DefineSSZ(codec *Codec)
}

// encoderPool is a pool of SSZ encoders to reuse some tiny internal helpers
// without hitting Go's GC constantly.
var encoderPool = sync.Pool{
	New: func() any {
		return &Codec{enc: new(Encoder)}
	},
}

// decoderPool is a pool of SSZ decoders to reuse some tiny internal helpers
// without hitting Go's GC constantly.
var decoderPool = sync.Pool{
	New: func() any {
		return &Codec{dec: new(Decoder)}
	},
}

// hasherPool is a pool of SSZ hashers to reuse the scratch Merkle space
// without hitting Go's GC constantly.
var hasherPool = sync.Pool{
	New: func() any {
		h := new(Hasher)
		h.codec = &Codec{har: h}
		return h
	},
}

// EncodeToStream serializes a static object into an SSZ stream.
func EncodeToStream(w io.Writer, obj StaticObject) error {
	codec := encoderPool.Get().(*Codec)
	defer encoderPool.Put(codec)

	codec.enc.outWriter, codec.enc.outBuffer, codec.enc.err, codec.enc.offset = w, nil, nil, 0
	obj.DefineSSZ(codec)
	return codec.enc.err
}

// EncodeToBytes serializes a static object into a pre-allocated buffer, which
// must be exactly obj.SizeSSZ() bytes.
func EncodeToBytes(buf []byte, obj StaticObject) error {
	codec := encoderPool.Get().(*Codec)
	defer encoderPool.Put(codec)

	codec.enc.outWriter, codec.enc.outBuffer, codec.enc.err, codec.enc.offset = nil, buf, nil, 0
	obj.DefineSSZ(codec)
	return codec.enc.err
}

// EncodeDynamicToStream serializes a dynamic object into an SSZ stream.
func EncodeDynamicToStream(w io.Writer, obj DynamicObject) error {
	codec := encoderPool.Get().(*Codec)
	defer encoderPool.Put(codec)

	codec.enc.outWriter, codec.enc.outBuffer, codec.enc.err = w, nil, nil
	codec.enc.offsetDynamics(obj.SizeSSZ(true))
	obj.DefineSSZ(codec)
	return codec.enc.err
}

// EncodeDynamicToBytes serializes a dynamic object into a pre-allocated
// buffer, which must be exactly obj.SizeSSZ(false) bytes.
func EncodeDynamicToBytes(buf []byte, obj DynamicObject) error {
	codec := encoderPool.Get().(*Codec)
	defer encoderPool.Put(codec)

	codec.enc.outWriter, codec.enc.outBuffer, codec.enc.err = nil, buf, nil
	codec.enc.offsetDynamics(obj.SizeSSZ(true))
	obj.DefineSSZ(codec)
	return codec.enc.err
}

// DecodeFromStream parses a static object with the given encoded size out of
// an SSZ stream.
func DecodeFromStream(r io.Reader, obj StaticObject, size uint32) error {
	codec := decoderPool.Get().(*Codec)
	defer decoderPool.Put(codec)

	dec := codec.dec
	dec.inReader, dec.inBuffer, dec.err = r, nil, nil
	dec.inRead, dec.length = 0, 0

	dec.descendIntoSlot(size)
	obj.DefineSSZ(codec)
	dec.ascendFromSlot()

	return dec.err
}

// DecodeFromBytes parses a static object out of an in-memory buffer, which
// must be exactly obj.SizeSSZ() bytes.
func DecodeFromBytes(blob []byte, obj StaticObject) error {
	codec := decoderPool.Get().(*Codec)
	defer decoderPool.Put(codec)

	dec := codec.dec
	dec.inReader, dec.inBuffer, dec.err = nil, blob, nil
	dec.length = 0
	if len(blob) > 0 {
		dec.inBufEnd = uintptr(unsafe.Pointer(&blob[0])) + uintptr(len(blob))
	} else {
		dec.inBufEnd = 0
	}

	dec.descendIntoSlot(uint32(len(blob)))
	obj.DefineSSZ(codec)
	dec.ascendFromSlot()

	return dec.err
}

// DecodeDynamicFromStream parses a dynamic object with the given encoded size
// out of an SSZ stream.
func DecodeDynamicFromStream(r io.Reader, obj DynamicObject, size uint32) error {
	codec := decoderPool.Get().(*Codec)
	defer decoderPool.Put(codec)

	dec := codec.dec
	dec.inReader, dec.inBuffer, dec.err = r, nil, nil
	dec.inRead, dec.length = 0, 0

	dec.descendIntoSlot(size)
	dec.startDynamics(obj.SizeSSZ(true))
	obj.DefineSSZ(codec)
	dec.ascendFromSlot()

	return dec.err
}

// DecodeDynamicFromBytes parses a dynamic object out of an in-memory buffer.
func DecodeDynamicFromBytes(blob []byte, obj DynamicObject) error {
	codec := decoderPool.Get().(*Codec)
	defer decoderPool.Put(codec)

	dec := codec.dec
	dec.inReader, dec.inBuffer, dec.err = nil, blob, nil
	dec.length = 0
	if len(blob) > 0 {
		dec.inBufEnd = uintptr(unsafe.Pointer(&blob[0])) + uintptr(len(blob))
	} else {
		dec.inBufEnd = 0
	}

	dec.descendIntoSlot(uint32(len(blob)))
	dec.startDynamics(obj.SizeSSZ(true))
	obj.DefineSSZ(codec)
	dec.ascendFromSlot()

	return dec.err
}

// HashSequential computes the Merkle root of a static or dynamic object's
// schema, using a single Hasher with no parallel work. It is the right choice
// for small objects, or objects that are hashed individually outside of a hot
// loop.
func HashSequential(obj interface{ DefineSSZ(codec *Codec) }) [32]byte {
	h := hasherPool.Get().(*Hasher)
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	obj.DefineSSZ(h.codec)
	h.FillUpTo32()
	return h.hash()
}
