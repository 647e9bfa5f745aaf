// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Modified UTF-8 differs from standard UTF-8 in two ways: U+0000 is
// written as the two-byte sequence C0 80, and characters outside the
// Basic Multilingual Plane are written as a UTF-16 surrogate pair with
// each half encoded as its own three-byte sequence.

// decodeModifiedUTF8 converts a modified UTF-8 payload into a Go
// string. Any ill-formed sequence fails with ErrInvalidEncoding.
func decodeModifiedUTF8(data []byte) (string, error) {
	if isPlainASCII(data) {
		return string(data), nil
	}

	units := make([]uint16, 0, len(data))
	for i := 0; i < len(data); {
		lead := data[i]
		switch {
		case lead < 0x80:
			units = append(units, uint16(lead))
			i++

		case lead&0xE0 == 0xC0:
			if i+1 >= len(data) || data[i+1]&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: truncated two-byte sequence at byte %d", ErrInvalidEncoding, i)
			}
			unit := uint16(lead&0x1F)<<6 | uint16(data[i+1]&0x3F)
			// C0 80 is the only permitted overlong form.
			if unit < 0x80 && unit != 0 {
				return "", fmt.Errorf("%w: overlong two-byte sequence at byte %d", ErrInvalidEncoding, i)
			}
			units = append(units, unit)
			i += 2

		case lead&0xF0 == 0xE0:
			if i+2 >= len(data) || data[i+1]&0xC0 != 0x80 || data[i+2]&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: truncated three-byte sequence at byte %d", ErrInvalidEncoding, i)
			}
			unit := uint16(lead&0x0F)<<12 | uint16(data[i+1]&0x3F)<<6 | uint16(data[i+2]&0x3F)
			if unit < 0x800 {
				return "", fmt.Errorf("%w: overlong three-byte sequence at byte %d", ErrInvalidEncoding, i)
			}
			units = append(units, unit)
			i += 3

		default:
			return "", fmt.Errorf("%w: invalid lead byte 0x%02x at byte %d", ErrInvalidEncoding, lead, i)
		}
	}

	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		unit := rune(units[i])
		switch {
		case utf16.IsSurrogate(unit):
			if unit >= 0xDC00 || i+1 >= len(units) {
				return "", fmt.Errorf("%w: unpaired surrogate U+%04X", ErrInvalidEncoding, unit)
			}
			combined := utf16.DecodeRune(unit, rune(units[i+1]))
			if combined == utf8.RuneError {
				return "", fmt.Errorf("%w: unpaired surrogate U+%04X", ErrInvalidEncoding, unit)
			}
			runes = append(runes, combined)
			i++
		default:
			runes = append(runes, unit)
		}
	}
	return string(runes), nil
}

// appendModifiedUTF8 appends the modified UTF-8 form of text to dst.
func appendModifiedUTF8(dst []byte, text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: string is not valid UTF-8", ErrInvalidEncoding)
	}
	for _, r := range text {
		switch {
		case r == 0:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r < 0x800:
			dst = append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			dst = appendThreeByte(dst, uint16(r))
		default:
			high, low := utf16.EncodeRune(r)
			dst = appendThreeByte(dst, uint16(high))
			dst = appendThreeByte(dst, uint16(low))
		}
	}
	return dst, nil
}

func appendThreeByte(dst []byte, unit uint16) []byte {
	return append(dst, 0xE0|byte(unit>>12), 0x80|byte((unit>>6)&0x3F), 0x80|byte(unit&0x3F))
}

// modifiedUTF8Length returns the encoded length of a valid UTF-8 string.
func modifiedUTF8Length(text string) int {
	length := 0
	for _, r := range text {
		switch {
		case r == 0:
			length += 2
		case r < 0x80:
			length++
		case r < 0x800:
			length += 2
		case r < 0x10000:
			length += 3
		default:
			length += 6
		}
	}
	return length
}

func isPlainASCII(data []byte) bool {
	for _, b := range data {
		if b == 0 || b >= 0x80 {
			return false
		}
	}
	return true
}
