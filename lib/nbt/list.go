// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"iter"
)

// List is a homogeneous sequence of unnamed tags. Element declares the
// type of every member; an empty list still carries a declared type,
// which is TagEnd when the producer never assigned one.
type List struct {
	Element TagID
	Items   []Tag
}

// NewList returns a list of the given element type holding items. It
// fails with [ErrElementType] if any item has a different type.
func NewList(element TagID, items ...Tag) (*List, error) {
	list := &List{Element: element}
	for _, item := range items {
		if err := list.Append(item); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Len returns the number of members.
func (l *List) Len() int {
	return len(l.Items)
}

// Append adds item to the end of the list. Appending to an empty list
// typed TagEnd adopts the item's type.
func (l *List) Append(item Tag) error {
	if l.Element == TagEnd && len(l.Items) == 0 {
		l.Element = item.ID()
	}
	if item.ID() != l.Element {
		return fmt.Errorf("%w: appending %s to list of %s", ErrElementType, item.ID(), l.Element)
	}
	l.Items = append(l.Items, item)
	return nil
}

// Compounds yields the compound members of the list with their
// positions. It yields nothing for a nil list or for lists of any
// other element type.
func (l *List) Compounds() iter.Seq2[int, *Compound] {
	return func(yield func(int, *Compound) bool) {
		if l == nil || l.Element != TagCompound {
			return
		}
		for i, item := range l.Items {
			compound, ok := item.(*Compound)
			if !ok {
				continue
			}
			if !yield(i, compound) {
				return
			}
		}
	}
}
