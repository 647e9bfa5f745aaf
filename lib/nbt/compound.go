// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import "iter"

// Entry is one named member of a compound.
type Entry struct {
	Name string
	Tag  Tag
}

// Compound is an ordered mapping from unique names to tags. Iteration
// order is insertion order, which is also the encoding order, so a
// decoded compound re-encodes with its members in their original
// positions.
//
// The zero value is an empty compound ready for use.
type Compound struct {
	entries []Entry
	index   map[string]int
}

// NewCompound returns a compound holding entries in the given order.
// A later entry with a duplicate name replaces the earlier value
// without moving it.
func NewCompound(entries ...Entry) *Compound {
	compound := &Compound{}
	for _, entry := range entries {
		compound.Set(entry.Name, entry.Tag)
	}
	return compound
}

// Len returns the number of members. A nil compound is empty.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Get returns the member with the given name. A nil compound has no
// members, so lookups can be chained through optional compounds.
func (c *Compound) Get(name string) (Tag, bool) {
	if c == nil {
		return nil, false
	}
	position, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[position].Tag, true
}

// Set stores value under name. An existing member keeps its position;
// a new member is appended.
func (c *Compound) Set(name string, value Tag) {
	if position, ok := c.index[name]; ok {
		c.entries[position].Tag = value
		return
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Entry{Name: name, Tag: value})
}

// Delete removes the member with the given name, reporting whether it
// was present. The relative order of the remaining members is kept.
func (c *Compound) Delete(name string) bool {
	if c == nil {
		return false
	}
	position, ok := c.index[name]
	if !ok {
		return false
	}
	c.entries = append(c.entries[:position], c.entries[position+1:]...)
	delete(c.index, name)
	for i := position; i < len(c.entries); i++ {
		c.index[c.entries[i].Name] = i
	}
	return true
}

// Names returns member names in order, or nil for a nil compound.
func (c *Compound) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.entries))
	for i, entry := range c.entries {
		names[i] = entry.Name
	}
	return names
}

// All yields members in order. A nil compound yields nothing.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		if c == nil {
			return
		}
		for _, entry := range c.entries {
			if !yield(entry.Name, entry.Tag) {
				return
			}
		}
	}
}

// Compound returns the named member if it is present and a compound.
func (c *Compound) Compound(name string) (*Compound, bool) {
	value, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	compound, ok := value.(*Compound)
	return compound, ok
}

// List returns the named member if it is present and a list.
func (c *Compound) List(name string) (*List, bool) {
	value, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	list, ok := value.(*List)
	return list, ok
}

// String returns the named member if it is present and a string.
func (c *Compound) String(name string) (string, bool) {
	value, ok := c.Get(name)
	if !ok {
		return "", false
	}
	text, ok := value.(String)
	return string(text), ok
}
