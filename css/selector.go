package css

import "strings"

// parentRef marks a selector fragment that concatenates onto the enclosing
// selector instead of combining as a descendant.
const parentRef = "&"

// selectorContext is the ordered list of ancestor expanded selector
// fragment lists, empty at the root.
type selectorContext [][]string

// expandSelector computes the full set of expanded selectors for a rule's
// selector head under the given ancestor context. With a non-empty context
// the result is the cartesian product of context entries and head
// fragments (context-major order); at the root each head fragment stands
// alone. A resulting sequence whose last fragment starts with "&" has the
// marker stripped and its suffix concatenated onto the preceding fragment.
func expandSelector(head []string, ctx selectorContext) [][]string {
	var out [][]string
	if len(ctx) == 0 {
		out = make([][]string, 0, len(head))
		for _, f := range head {
			out = append(out, []string{f})
		}
	} else {
		out = make([][]string, 0, len(ctx)*len(head))
		for _, c := range ctx {
			for _, f := range head {
				seq := make([]string, 0, len(c)+1)
				seq = append(seq, c...)
				seq = append(seq, f)
				out = append(out, seq)
			}
		}
	}
	for i, seq := range out {
		out[i] = resolveParentRef(seq)
	}
	return out
}

func resolveParentRef(seq []string) []string {
	if len(seq) == 0 {
		return seq
	}
	last := seq[len(seq)-1]
	if !strings.HasPrefix(last, parentRef) {
		return seq
	}
	suffix := strings.TrimPrefix(last, parentRef)
	if len(seq) == 1 {
		// parent reference without a parent degrades to its suffix
		return []string{suffix}
	}
	merged := make([]string, len(seq)-1)
	copy(merged, seq[:len(seq)-1])
	merged[len(merged)-1] += suffix
	return merged
}

// renderSelectorList joins each fragment sequence with spaces and the
// alternatives with the configured comma separator. Sequences that join to
// an empty string are dropped.
func renderSelectorList(selectors [][]string, comma string) string {
	parts := make([]string, 0, len(selectors))
	for _, seq := range selectors {
		s := strings.TrimSpace(strings.Join(seq, " "))
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, comma)
}
