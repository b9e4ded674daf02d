// Package css compiles nested, in-memory trees of style rules into CSS text.
//
// Rules are structured data: selector fragments, property declarations,
// nested child rules and optional media query annotations. The compiler
// expands nesting (including "&" parent references), flattens nested
// property maps into dashed property names and collects media-annotated
// rules into @media blocks emitted after all plain rules.
//
// No CSS text is ever parsed and no validation of property names or values
// is performed - whatever the caller puts into the tree ends up in the
// output.
package css

import (
	"fmt"
	"strconv"
	"strings"
)

// Decl is a single property declaration. Value may be a leaf value, a
// sequence of values (rendered space separated, comma separated when the
// sequence is itself made of sequences) or a nested Declarations map whose
// keys get prefixed with the outer property name.
type Decl struct {
	Property string
	Value    any
}

// Declarations is an ordered property map. Go maps do not preserve
// insertion order, so ordering is explicit: output follows first-assignment
// order with last-write-wins on duplicate flattened keys.
type Declarations []Decl

// Group is a splice-able sequence of rule items. When a Group appears among
// a rule's items its elements are classified in place, as if they were
// written directly at that position. This allows programmatic generation of
// sibling declarations and child rules without an extra nesting level.
type Group []any

// Feature is a single media feature condition.
//
// Translation of Value to text:
//
//	true        -> name
//	false       -> not name
//	"only"      -> only name
//	nil or ""   -> (name)
//	anything else -> (name:value)
type Feature struct {
	Name  string
	Value any
}

// MediaQuery is one media expression: an ordered set of features joined
// with " and ".
type MediaQuery []Feature

// Rule is a style rule node. Items holds the raw form: leading
// non-collection items are the selector fragments, the remainder are
// declarations, child rules and splice groups in any order.
//
// Media, when non-empty, marks the whole rule as belonging to an @media
// block instead of the normal cascade. Multiple queries have OR semantics
// (comma separated in the output).
type Rule struct {
	Items []any
	Media []MediaQuery
}

// NewRule builds a plain rule from raw items.
func NewRule(items ...any) *Rule {
	return &Rule{Items: items}
}

// AtMedia builds a rule carrying a media annotation. Items may be child
// rules, or a bare declaration set that attaches to the selector context
// the rule is nested under.
func AtMedia(query MediaQuery, items ...any) *Rule {
	return &Rule{Items: items, Media: []MediaQuery{query}}
}

// AtMediaAny is AtMedia with OR semantics across several queries.
func AtMediaAny(queries []MediaQuery, items ...any) *Rule {
	return &Rule{Items: items, Media: queries}
}

// Unit is a numeric value tagged with a CSS unit, e.g. 16px or 1.5em.
type Unit struct {
	Value float64
	Unit  string
}

func (u Unit) String() string {
	return formatFloat(u.Value) + u.Unit
}

// Ratio is an exact quotient. It renders in decimal form, e.g. 16/9 as
// "1.7777777777777777".
type Ratio struct {
	Num, Den int64
}

func (r Ratio) String() string {
	if r.Den == 0 {
		// garbage in, garbage out - but keep the output deterministic
		return fmt.Sprintf("%d/0", r.Num)
	}
	return formatFloat(float64(r.Num) / float64(r.Den))
}

// Func is a CSS function-call expression, e.g. url("bg.png") or
// calc(100% - 16px). Arguments are rendered comma separated; a sequence
// argument renders space separated.
type Func struct {
	Name string
	Args []any
}

func (f Func) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = renderValue(a)
	}
	return f.Name + "(" + strings.Join(args, ",") + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
