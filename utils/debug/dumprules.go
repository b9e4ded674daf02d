package debug

import (
	"fmt"

	"github.com/ghostandthemachine/garden/css"
)

// DumpRules renders rule trees as indented text for troubleshooting
// stylesheet sources without compiling them.
func DumpRules(rules []*css.Rule) string {
	tw := NewTreeWriter()
	for i, r := range rules {
		tw.Line(0, "rule %d", i)
		dumpRule(tw, 1, r)
	}
	return tw.String()
}

func dumpRule(tw *TreeWriter, depth int, r *css.Rule) {
	if r == nil {
		tw.Line(depth, "<nil>")
		return
	}
	for _, q := range r.Media {
		tw.Line(depth, "media")
		for _, f := range q {
			tw.TextBlock(depth+1, f.Name, fmt.Sprintf("%v", f.Value))
		}
	}
	for _, item := range r.Items {
		switch v := item.(type) {
		case string:
			tw.TextBlock(depth, "selector", v)
		case css.Declarations:
			tw.Line(depth, "declarations")
			dumpDeclarations(tw, depth+1, v)
		case *css.Rule:
			tw.Line(depth, "child")
			dumpRule(tw, depth+1, v)
		case css.Rule:
			tw.Line(depth, "child")
			dumpRule(tw, depth+1, &v)
		case css.Group:
			tw.Line(depth, "group")
			dumpRule(tw, depth+1, &css.Rule{Items: v})
		default:
			tw.Line(depth, "value: %v", v)
		}
	}
}

func dumpDeclarations(tw *TreeWriter, depth int, decls css.Declarations) {
	for _, d := range decls {
		if nested, ok := d.Value.(css.Declarations); ok {
			tw.Line(depth, "%s", d.Property)
			dumpDeclarations(tw, depth+1, nested)
			continue
		}
		tw.TextBlock(depth, d.Property, fmt.Sprintf("%v", d.Value))
	}
}
