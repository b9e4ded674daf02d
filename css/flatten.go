package css

import (
	"sort"

	orderedmap "github.com/elliotchance/orderedmap/v3"
)

// flattenDeclarations expands nested declaration maps into a flat ordered
// mapping of dashed property names, e.g. {font {weight bold}} becomes
// {font-weight bold}. Keys keep the insertion order of their first
// assignment; assigning an existing key again replaces the value in place
// (last-write-wins). Flattening an already flat declaration is a no-op.
func flattenDeclarations(decls Declarations) Declarations {
	acc := orderedmap.NewOrderedMap[string, any]()
	flattenInto(acc, "", decls)
	out := make(Declarations, 0, acc.Len())
	for key, value := range acc.AllFromFront() {
		out = append(out, Decl{Property: key, Value: value})
	}
	return out
}

func flattenInto(acc *orderedmap.OrderedMap[string, any], prefix string, decls Declarations) {
	for _, d := range decls {
		key := d.Property
		if prefix != "" {
			key = prefix + "-" + key
		}
		if nested, ok := asDeclarations(d.Value); ok {
			flattenInto(acc, key, nested)
			continue
		}
		acc.Set(key, d.Value)
	}
}

// asDeclarations reports whether a declaration value is itself a nested
// declaration map. Plain Go maps are accepted for convenience; since their
// iteration order is undefined the keys are sorted to keep output
// deterministic.
func asDeclarations(v any) (Declarations, bool) {
	switch t := v.(type) {
	case Declarations:
		return t, true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		decls := make(Declarations, 0, len(t))
		for _, k := range keys {
			decls = append(decls, Decl{Property: k, Value: t[k]})
		}
		return decls, true
	default:
		return nil, false
	}
}
