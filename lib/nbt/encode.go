// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Encode serializes root as a named compound.
func Encode(root Root) ([]byte, error) {
	if root.Tag == nil {
		return nil, errors.New("encoding root: nil compound")
	}
	return EncodeTag(root.Name, root.Tag)
}

// EncodeTag serializes a single named tag.
func EncodeTag(name string, value Tag) ([]byte, error) {
	if value == nil {
		return nil, fmt.Errorf("encoding %q: nil tag", name)
	}
	e := encoder{buffer: make([]byte, 0, 4096)}
	e.buffer = append(e.buffer, byte(value.ID()))
	if err := e.writeString(name); err != nil {
		return nil, fmt.Errorf("encoding name %q: %w", name, err)
	}
	if err := e.writePayload(value); err != nil {
		return nil, err
	}
	return e.buffer, nil
}

type encoder struct {
	buffer []byte
}

func (e *encoder) writeString(text string) error {
	length := modifiedUTF8Length(text)
	if length > math.MaxUint16 {
		return fmt.Errorf("%w (%d bytes)", ErrStringTooLong, length)
	}
	e.buffer = binary.BigEndian.AppendUint16(e.buffer, uint16(length))
	encoded, err := appendModifiedUTF8(e.buffer, text)
	if err != nil {
		return err
	}
	e.buffer = encoded
	return nil
}

func (e *encoder) writeLength(length int) error {
	if length > math.MaxInt32 {
		return fmt.Errorf("length %d does not fit a 32-bit prefix", length)
	}
	e.buffer = binary.BigEndian.AppendUint32(e.buffer, uint32(length))
	return nil
}

func (e *encoder) writePayload(value Tag) error {
	switch value := value.(type) {
	case Byte:
		e.buffer = append(e.buffer, byte(value))
	case Short:
		e.buffer = binary.BigEndian.AppendUint16(e.buffer, uint16(value))
	case Int:
		e.buffer = binary.BigEndian.AppendUint32(e.buffer, uint32(value))
	case Long:
		e.buffer = binary.BigEndian.AppendUint64(e.buffer, uint64(value))
	case Float:
		e.buffer = binary.BigEndian.AppendUint32(e.buffer, math.Float32bits(float32(value)))
	case Double:
		e.buffer = binary.BigEndian.AppendUint64(e.buffer, math.Float64bits(float64(value)))

	case ByteArray:
		if err := e.writeLength(len(value)); err != nil {
			return err
		}
		e.buffer = append(e.buffer, value...)

	case String:
		return e.writeString(string(value))

	case IntArray:
		if err := e.writeLength(len(value)); err != nil {
			return err
		}
		for _, item := range value {
			e.buffer = binary.BigEndian.AppendUint32(e.buffer, uint32(item))
		}

	case LongArray:
		if err := e.writeLength(len(value)); err != nil {
			return err
		}
		for _, item := range value {
			e.buffer = binary.BigEndian.AppendUint64(e.buffer, uint64(item))
		}

	case *List:
		return e.writeList(value)

	case *Compound:
		return e.writeCompound(value)

	default:
		return fmt.Errorf("encoding unsupported tag %T", value)
	}
	return nil
}

func (e *encoder) writeList(list *List) error {
	if list.Element == TagEnd && len(list.Items) > 0 {
		return fmt.Errorf("%w: list typed %s holds %d items", ErrElementType, TagEnd, len(list.Items))
	}
	e.buffer = append(e.buffer, byte(list.Element))
	if err := e.writeLength(len(list.Items)); err != nil {
		return err
	}
	for i, item := range list.Items {
		if item == nil {
			return fmt.Errorf("list item %d: nil tag", i)
		}
		if item.ID() != list.Element {
			return fmt.Errorf("%w: item %d is %s in list of %s", ErrElementType, i, item.ID(), list.Element)
		}
		if err := e.writePayload(item); err != nil {
			return fmt.Errorf("list item %d: %w", i, err)
		}
	}
	return nil
}

func (e *encoder) writeCompound(compound *Compound) error {
	for _, entry := range compound.entries {
		if entry.Tag == nil {
			return fmt.Errorf("%s: nil tag", entry.Name)
		}
		e.buffer = append(e.buffer, byte(entry.Tag.ID()))
		if err := e.writeString(entry.Name); err != nil {
			return fmt.Errorf("name %q: %w", entry.Name, err)
		}
		if err := e.writePayload(entry.Tag); err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}
	}
	e.buffer = append(e.buffer, byte(TagEnd))
	return nil
}
