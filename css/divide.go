package css

// dividedRule is a rule's raw form split into its three parts.
type dividedRule struct {
	selector []string       // rendered selector head fragments
	decls    []Declarations // declaration maps, in encounter order
	children []*Rule        // child rules, in encounter order
}

// divideRule splits a rule's items into (selector head, declarations,
// children). Leading non-collection items form the selector head. The
// remaining items are classified: a declaration map is a declaration, a
// Rule is a child, a Group is spliced in place so that its elements
// re-enter classification immediately. Anything unclassifiable is skipped
// without error.
func divideRule(r *Rule) dividedRule {
	var out dividedRule
	head := true
	for _, it := range spliceGroups(r.Items) {
		switch t := it.(type) {
		case Declarations:
			head = false
			out.decls = append(out.decls, t)
		case map[string]any:
			head = false
			if decls, ok := asDeclarations(t); ok {
				out.decls = append(out.decls, decls)
			}
		case *Rule:
			head = false
			if t != nil {
				out.children = append(out.children, t)
			}
		case Rule:
			head = false
			rc := t
			out.children = append(out.children, &rc)
		case []any:
			// a raw sequence in rule position is an anonymous child rule
			head = false
			out.children = append(out.children, &Rule{Items: t})
		default:
			if head {
				out.selector = append(out.selector, renderValue(it))
			}
		}
	}
	return out
}

// spliceGroups flattens Group values so their elements take part in
// classification at the position of the group itself. Groups may nest.
func spliceGroups(items []any) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		if g, ok := it.(Group); ok {
			out = append(out, spliceGroups(g)...)
			continue
		}
		out = append(out, it)
	}
	return out
}
