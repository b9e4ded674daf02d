package css

import (
	"fmt"
	"strconv"
	"strings"
)

// renderValue converts a leaf value to its textual CSS form. Dispatch is
// total: every value has exactly one rendering path, with generic string
// conversion as the catch-all so no well-typed construction can fail.
func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case Unit:
		return t.String()
	case Ratio:
		return t.String()
	case Func:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatFloat(t)
	case []any:
		return renderSequence(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// renderSequence renders a sequence value. Elements are space separated;
// when the sequence contains sub-sequences each one becomes a space
// separated group and the groups are comma separated, e.g.
//
//	[]any{"1px", "solid", "black"}                   -> "1px solid black"
//	[]any{[]any{"a", "b"}, []any{"c", "d"}}          -> "a b, c d"
func renderSequence(items []any) string {
	nested := false
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if inner, ok := it.([]any); ok {
			nested = true
			parts = append(parts, spaceJoin(inner))
			continue
		}
		parts = append(parts, renderValue(it))
	}
	if nested {
		return strings.Join(parts, ", ")
	}
	return strings.Join(parts, " ")
}

func spaceJoin(items []any) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = renderValue(it)
	}
	return strings.Join(parts, " ")
}
