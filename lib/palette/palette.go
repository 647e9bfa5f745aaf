// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package palette

import "github.com/bureau-foundation/massreplace/lib/nbt"

// Keys walked from the chunk root to a palette entry's block name.
const (
	SectionsKey    = "sections"
	BlockStatesKey = "block_states"
	PaletteKey     = "palette"
	NameKey        = "Name"
)

// Rule renames one block type.
type Rule struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Applicable reports whether both names are set. Inapplicable rules
// are skipped silently.
func (r Rule) Applicable() bool {
	return r.From != "" && r.To != ""
}

// Result counts the rewrites made by one or more applications.
type Result struct {
	// Matches is the total number of rewrites.
	Matches int

	// PerRule counts rewrites by position in the rule list passed to
	// Apply or NewEngine. Inapplicable rules always count zero.
	PerRule []int
}

// Add accumulates other into r. Both must come from the same rule list.
func (r *Result) Add(other Result) {
	r.Matches += other.Matches
	if r.PerRule == nil {
		r.PerRule = make([]int, len(other.PerRule))
	}
	for i, count := range other.PerRule {
		r.PerRule[i] += count
	}
}

// Apply rewrites the palettes under root in place using rules.
func Apply(root *nbt.Compound, rules []Rule) Result {
	return NewEngine(rules).Apply(root)
}

// Engine applies a fixed rule list to many trees. It is safe for
// concurrent use as long as each tree is touched by one goroutine.
type Engine struct {
	rules     []Rule
	positions []int
	size      int
}

// NewEngine filters out inapplicable rules once, remembering each
// remaining rule's original position for [Result.PerRule].
func NewEngine(rules []Rule) *Engine {
	engine := &Engine{size: len(rules)}
	for position, rule := range rules {
		if !rule.Applicable() {
			continue
		}
		engine.rules = append(engine.rules, rule)
		engine.positions = append(engine.positions, position)
	}
	return engine
}

// Len returns the number of applicable rules.
func (e *Engine) Len() int {
	return len(e.rules)
}

// Skipped returns the number of inapplicable rules.
func (e *Engine) Skipped() int {
	return e.size - len(e.rules)
}

// Apply rewrites the palettes under root in place.
func (e *Engine) Apply(root *nbt.Compound) Result {
	result := Result{PerRule: make([]int, e.size)}
	if len(e.rules) == 0 {
		return result
	}

	sections, _ := root.List(SectionsKey)
	for _, section := range sections.Compounds() {
		states, _ := section.Compound(BlockStatesKey)
		palette, _ := states.List(PaletteKey)
		for _, entry := range palette.Compounds() {
			name, ok := entry.String(NameKey)
			if !ok {
				continue
			}
			for i, rule := range e.rules {
				if name != rule.From {
					continue
				}
				entry.Set(NameKey, nbt.String(rule.To))
				name = rule.To
				result.Matches++
				result.PerRule[e.positions[i]]++
			}
		}
	}
	return result
}

// Names returns the block names of every palette entry under root, in
// section order. Entries without a string Name are left out.
func Names(root *nbt.Compound) []string {
	var names []string
	sections, _ := root.List(SectionsKey)
	for _, section := range sections.Compounds() {
		states, _ := section.Compound(BlockStatesKey)
		palette, _ := states.List(PaletteKey)
		for _, entry := range palette.Compounds() {
			if name, ok := entry.String(NameKey); ok {
				names = append(names, name)
			}
		}
	}
	return names
}
