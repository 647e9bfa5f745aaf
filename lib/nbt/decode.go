// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxDepth is the deepest nesting of lists and compounds the decoder
// accepts. The game applies the same limit when reading chunk data.
const MaxDepth = 512

// Decode parses an encoded tree whose root is a named compound.
// Bytes following the root's end marker are ignored.
func Decode(data []byte) (Root, error) {
	d := decoder{data: data}

	id, err := d.readByte()
	if err != nil {
		return Root{}, err
	}
	if TagID(id) != TagCompound {
		return Root{}, fmt.Errorf("%w: root is %s, want %s", ErrMalformedTag, TagID(id), TagCompound)
	}
	name, err := d.readString()
	if err != nil {
		return Root{}, fmt.Errorf("root name: %w", err)
	}
	compound, err := d.readCompound(1)
	if err != nil {
		return Root{}, err
	}
	return Root{Name: name, Tag: compound}, nil
}

// DecodeTag parses a single named tag of any type other than TagEnd.
func DecodeTag(data []byte) (string, Tag, error) {
	d := decoder{data: data}

	id, err := d.readByte()
	if err != nil {
		return "", nil, err
	}
	if TagID(id) == TagEnd || !TagID(id).valid() {
		return "", nil, fmt.Errorf("%w: named tag has type %s", ErrMalformedTag, TagID(id))
	}
	name, err := d.readString()
	if err != nil {
		return "", nil, fmt.Errorf("tag name: %w", err)
	}
	value, err := d.readPayload(TagID(id), 1)
	if err != nil {
		return "", nil, err
	}
	return name, value, nil
}

// decoder reads big-endian fields from an in-memory buffer. Every
// failure includes the offset at which the problem was found.
type decoder struct {
	data   []byte
	offset int
}

func (d *decoder) remaining() int {
	return len(d.data) - d.offset
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || d.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrMalformedTag, n, d.offset, d.remaining())
	}
	chunk := d.data[d.offset : d.offset+n]
	d.offset += n
	return chunk, nil
}

func (d *decoder) readByte() (byte, error) {
	raw, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

func (d *decoder) readUint16() (uint16, error) {
	raw, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(raw), nil
}

func (d *decoder) readUint32() (uint32, error) {
	raw, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(raw), nil
}

func (d *decoder) readUint64() (uint64, error) {
	raw, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw), nil
}

// readLength reads a signed 32-bit element count and checks that the
// buffer can hold count elements of at least elementSize bytes each.
func (d *decoder) readLength(elementSize int) (int, error) {
	at := d.offset
	raw, err := d.readUint32()
	if err != nil {
		return 0, err
	}
	count := int(int32(raw))
	if count < 0 {
		return 0, fmt.Errorf("%w: negative length %d at offset %d", ErrMalformedTag, count, at)
	}
	if count > d.remaining()/elementSize {
		return 0, fmt.Errorf("%w: length %d at offset %d exceeds the %d remaining bytes", ErrMalformedTag, count, at, d.remaining())
	}
	return count, nil
}

func (d *decoder) readString() (string, error) {
	length, err := d.readUint16()
	if err != nil {
		return "", err
	}
	at := d.offset
	raw, err := d.take(int(length))
	if err != nil {
		return "", err
	}
	text, err := decodeModifiedUTF8(raw)
	if err != nil {
		return "", fmt.Errorf("string at offset %d: %w", at, err)
	}
	return text, nil
}

func (d *decoder) readPayload(id TagID, depth int) (Tag, error) {
	switch id {
	case TagByte:
		value, err := d.readByte()
		return Byte(int8(value)), err

	case TagShort:
		value, err := d.readUint16()
		return Short(int16(value)), err

	case TagInt:
		value, err := d.readUint32()
		return Int(int32(value)), err

	case TagLong:
		value, err := d.readUint64()
		return Long(int64(value)), err

	case TagFloat:
		value, err := d.readUint32()
		return Float(math.Float32frombits(value)), err

	case TagDouble:
		value, err := d.readUint64()
		return Double(math.Float64frombits(value)), err

	case TagByteArray:
		count, err := d.readLength(1)
		if err != nil {
			return nil, err
		}
		raw, err := d.take(count)
		if err != nil {
			return nil, err
		}
		return ByteArray(append([]byte(nil), raw...)), nil

	case TagString:
		text, err := d.readString()
		return String(text), err

	case TagIntArray:
		count, err := d.readLength(4)
		if err != nil {
			return nil, err
		}
		raw, err := d.take(count * 4)
		if err != nil {
			return nil, err
		}
		values := make(IntArray, count)
		for i := range values {
			values[i] = int32(binary.BigEndian.Uint32(raw[i*4:]))
		}
		return values, nil

	case TagLongArray:
		count, err := d.readLength(8)
		if err != nil {
			return nil, err
		}
		raw, err := d.take(count * 8)
		if err != nil {
			return nil, err
		}
		values := make(LongArray, count)
		for i := range values {
			values[i] = int64(binary.BigEndian.Uint64(raw[i*8:]))
		}
		return values, nil

	case TagList:
		return d.readList(depth + 1)

	case TagCompound:
		return d.readCompound(depth + 1)

	default:
		return nil, fmt.Errorf("%w: unknown type id %d at offset %d", ErrMalformedTag, uint8(id), d.offset)
	}
}

func (d *decoder) readList(depth int) (*List, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d at offset %d", ErrMalformedTag, MaxDepth, d.offset)
	}
	at := d.offset
	rawElement, err := d.readByte()
	if err != nil {
		return nil, err
	}
	element := TagID(rawElement)
	if !element.valid() {
		return nil, fmt.Errorf("%w: list at offset %d has unknown element type %d", ErrMalformedTag, at, rawElement)
	}
	count, err := d.readLength(minimumPayloadSize(element))
	if err != nil {
		return nil, err
	}
	if element == TagEnd && count > 0 {
		return nil, fmt.Errorf("%w: list at offset %d declares %d elements of %s", ErrMalformedTag, at, count, TagEnd)
	}

	list := &List{Element: element, Items: make([]Tag, 0, count)}
	for range count {
		item, err := d.readPayload(element, depth)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	return list, nil
}

func (d *decoder) readCompound(depth int) (*Compound, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d at offset %d", ErrMalformedTag, MaxDepth, d.offset)
	}
	compound := &Compound{}
	for {
		at := d.offset
		if d.remaining() == 0 {
			return nil, fmt.Errorf("%w: compound not terminated before end of data at offset %d", ErrMalformedTag, at)
		}
		rawID, err := d.readByte()
		if err != nil {
			return nil, err
		}
		id := TagID(rawID)
		if id == TagEnd {
			return compound, nil
		}
		if !id.valid() {
			return nil, fmt.Errorf("%w: unknown type id %d at offset %d", ErrMalformedTag, rawID, at)
		}
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		if _, exists := compound.Get(name); exists {
			return nil, fmt.Errorf("%w: duplicate name %q at offset %d", ErrMalformedTag, name, at)
		}
		value, err := d.readPayload(id, depth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		compound.Set(name, value)
	}
}

// minimumPayloadSize is the fewest bytes one unnamed payload of the
// given type can occupy. It bounds list counts against the input.
func minimumPayloadSize(id TagID) int {
	switch id {
	case TagByte, TagCompound, TagEnd:
		return 1
	case TagShort, TagString:
		return 2
	case TagInt, TagFloat, TagByteArray, TagIntArray, TagLongArray:
		return 4
	case TagList:
		return 5
	default:
		return 8
	}
}
