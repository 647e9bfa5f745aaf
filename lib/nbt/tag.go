// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"errors"
	"fmt"
)

// TagID identifies a tag variant on the wire. The values are format
// constants shared with every other NBT producer.
type TagID uint8

const (
	TagEnd       TagID = 0
	TagByte      TagID = 1
	TagShort     TagID = 2
	TagInt       TagID = 3
	TagLong      TagID = 4
	TagFloat     TagID = 5
	TagDouble    TagID = 6
	TagByteArray TagID = 7
	TagString    TagID = 8
	TagList      TagID = 9
	TagCompound  TagID = 10
	TagIntArray  TagID = 11
	TagLongArray TagID = 12
)

// String returns the conventional TAG_* name of the identifier.
func (id TagID) String() string {
	switch id {
	case TagEnd:
		return "TAG_End"
	case TagByte:
		return "TAG_Byte"
	case TagShort:
		return "TAG_Short"
	case TagInt:
		return "TAG_Int"
	case TagLong:
		return "TAG_Long"
	case TagFloat:
		return "TAG_Float"
	case TagDouble:
		return "TAG_Double"
	case TagByteArray:
		return "TAG_Byte_Array"
	case TagString:
		return "TAG_String"
	case TagList:
		return "TAG_List"
	case TagCompound:
		return "TAG_Compound"
	case TagIntArray:
		return "TAG_Int_Array"
	case TagLongArray:
		return "TAG_Long_Array"
	default:
		return fmt.Sprintf("TAG_Unknown(%d)", uint8(id))
	}
}

// valid reports whether id names a variant this package can decode.
func (id TagID) valid() bool {
	return id <= TagLongArray
}

var (
	// ErrMalformedTag is returned when an encoded tree is truncated or
	// structurally inconsistent: an unknown type id, a negative or
	// impossible length, a missing end marker, or excessive nesting.
	ErrMalformedTag = errors.New("malformed tag")

	// ErrInvalidEncoding is returned when a string payload is not
	// valid modified UTF-8.
	ErrInvalidEncoding = errors.New("invalid string encoding")

	// ErrStringTooLong is returned by the encoder when a string's
	// modified UTF-8 form does not fit the 16-bit length prefix.
	ErrStringTooLong = errors.New("string exceeds 65535 encoded bytes")

	// ErrElementType is returned when a tag is added to a list whose
	// declared element type differs.
	ErrElementType = errors.New("list element type mismatch")
)

// Tag is one node of the tree. The interface is closed: the unexported
// method restricts implementations to the variants in this package.
type Tag interface {
	// ID returns the wire type identifier of the variant.
	ID() TagID
	tag()
}

// Byte is a signed 8-bit integer.
type Byte int8

// Short is a signed 16-bit integer.
type Short int16

// Int is a signed 32-bit integer.
type Int int32

// Long is a signed 64-bit integer.
type Long int64

// Float is an IEEE 754 single-precision value.
type Float float32

// Double is an IEEE 754 double-precision value.
type Double float64

// ByteArray is a length-prefixed run of raw bytes.
type ByteArray []byte

// String is a text payload. It holds ordinary UTF-8; conversion to
// and from modified UTF-8 happens only at the codec boundary.
type String string

// IntArray is a length-prefixed run of signed 32-bit integers.
type IntArray []int32

// LongArray is a length-prefixed run of signed 64-bit integers. Block
// state data is stored this way.
type LongArray []int64

func (Byte) ID() TagID      { return TagByte }
func (Short) ID() TagID     { return TagShort }
func (Int) ID() TagID       { return TagInt }
func (Long) ID() TagID      { return TagLong }
func (Float) ID() TagID     { return TagFloat }
func (Double) ID() TagID    { return TagDouble }
func (ByteArray) ID() TagID { return TagByteArray }
func (String) ID() TagID    { return TagString }
func (IntArray) ID() TagID  { return TagIntArray }
func (LongArray) ID() TagID { return TagLongArray }
func (*List) ID() TagID     { return TagList }
func (*Compound) ID() TagID { return TagCompound }

func (Byte) tag()      {}
func (Short) tag()     {}
func (Int) tag()       {}
func (Long) tag()      {}
func (Float) tag()     {}
func (Double) tag()    {}
func (ByteArray) tag() {}
func (String) tag()    {}
func (IntArray) tag()  {}
func (LongArray) tag() {}
func (*List) tag()     {}
func (*Compound) tag() {}

// Root is the named compound at the top of an encoded tree. Chunk
// records conventionally use an empty name.
type Root struct {
	Name string
	Tag  *Compound
}
