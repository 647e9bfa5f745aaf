// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"strconv"
	"strings"
)

// SNBT renders a tag in the game's stringified NBT notation, for
// example {Name:"minecraft:stone",Properties:{axis:"y"}}. The output
// is intended for humans and diffing, not for re-parsing.
func SNBT(value Tag) string {
	var builder strings.Builder
	writeSNBT(&builder, value)
	return builder.String()
}

func writeSNBT(builder *strings.Builder, value Tag) {
	switch value := value.(type) {
	case Byte:
		builder.WriteString(strconv.FormatInt(int64(value), 10))
		builder.WriteByte('b')
	case Short:
		builder.WriteString(strconv.FormatInt(int64(value), 10))
		builder.WriteByte('s')
	case Int:
		builder.WriteString(strconv.FormatInt(int64(value), 10))
	case Long:
		builder.WriteString(strconv.FormatInt(int64(value), 10))
		builder.WriteByte('L')
	case Float:
		builder.WriteString(strconv.FormatFloat(float64(value), 'g', -1, 32))
		builder.WriteByte('f')
	case Double:
		builder.WriteString(strconv.FormatFloat(float64(value), 'g', -1, 64))
		builder.WriteByte('d')
	case String:
		writeQuoted(builder, string(value))

	case ByteArray:
		builder.WriteString("[B;")
		for i, item := range value {
			if i > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.FormatInt(int64(int8(item)), 10))
			builder.WriteByte('B')
		}
		builder.WriteByte(']')
	case IntArray:
		builder.WriteString("[I;")
		for i, item := range value {
			if i > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.FormatInt(int64(item), 10))
		}
		builder.WriteByte(']')
	case LongArray:
		builder.WriteString("[L;")
		for i, item := range value {
			if i > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.FormatInt(item, 10))
			builder.WriteByte('L')
		}
		builder.WriteByte(']')

	case *List:
		builder.WriteByte('[')
		for i, item := range value.Items {
			if i > 0 {
				builder.WriteByte(',')
			}
			writeSNBT(builder, item)
		}
		builder.WriteByte(']')
	case *Compound:
		builder.WriteByte('{')
		for i, entry := range value.entries {
			if i > 0 {
				builder.WriteByte(',')
			}
			if isBareName(entry.Name) {
				builder.WriteString(entry.Name)
			} else {
				writeQuoted(builder, entry.Name)
			}
			builder.WriteByte(':')
			writeSNBT(builder, entry.Tag)
		}
		builder.WriteByte('}')
	}
}

func writeQuoted(builder *strings.Builder, text string) {
	builder.WriteByte('"')
	for _, r := range text {
		if r == '"' || r == '\\' {
			builder.WriteByte('\\')
		}
		builder.WriteRune(r)
	}
	builder.WriteByte('"')
}

// isBareName reports whether a compound key can appear unquoted.
func isBareName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.', r == '+':
		default:
			return false
		}
	}
	return true
}
