package css

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Options controls the textual form of the output, never its content.
type Options struct {
	Style       OutputStyle
	IndentWidth int // spaces per nesting level, used by expanded output only
}

// DefaultOptions returns expanded output with two-space indentation.
func DefaultOptions() Options {
	return Options{Style: OutputStyleExpanded, IndentWidth: 2}
}

// Compiler compiles rule trees to CSS text.
//
// A Compiler holds no state between calls: every Compile call uses a fresh
// media query register, so deferred entries can never leak from one call
// into another. A single Compiler must not be used from multiple
// goroutines concurrently.
type Compiler struct {
	opts Options
	log  *zap.Logger
}

// NewCompiler creates a new compiler with the given output options.
func NewCompiler(opts Options, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{opts: opts, log: log.Named("css-compiler")}
}

// Compile renders rules with default options.
func Compile(rules ...any) (string, error) {
	return NewCompiler(DefaultOptions(), nil).Compile(rules...)
}

// mediaEntry is one deferred @media block: the query expression, the rule
// with its annotation stripped, and the selector context captured at the
// moment the rule was encountered.
type mediaEntry struct {
	queries []MediaQuery
	rule    *Rule
	ctx     selectorContext
}

// compilation is the per-call state: the media query register.
type compilation struct {
	*Compiler
	entries []mediaEntry
}

// Compile renders all top-level rules first, then drains the media query
// register and renders an @media block for every collected entry, in the
// order the annotated rules were encountered during traversal.
func (c *Compiler) Compile(rules ...any) (string, error) {
	run := &compilation{Compiler: c}
	c.log.Debug("Compiling rule tree", zap.Int("rules", len(rules)), zap.Stringer("style", c.opts.Style))

	top, err := run.renderItems(rules, nil, 0)
	if err != nil {
		return "", err
	}
	c.log.Debug("Rendering deferred media queries", zap.Int("entries", len(run.entries)))
	media, err := run.renderMedia()
	if err != nil {
		return "", err
	}

	switch {
	case top == "":
		return media, nil
	case media == "":
		return top, nil
	default:
		return top + c.ruleSeparator() + media, nil
	}
}

// renderItems renders a sequence of rule-position items, joining the
// non-empty results with the rule separator.
func (run *compilation) renderItems(items []any, ctx selectorContext, depth int) (string, error) {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		txt, err := run.renderItem(it, ctx, depth)
		if err != nil {
			return "", err
		}
		if txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, run.ruleSeparator()), nil
}

func (run *compilation) renderItem(it any, ctx selectorContext, depth int) (string, error) {
	switch t := it.(type) {
	case *Rule:
		return run.renderRule(t, ctx, depth)
	case Rule:
		return run.renderRule(&t, ctx, depth)
	case Group:
		return run.renderItems(t, ctx, depth)
	case []any:
		return run.renderItems(t, ctx, depth)
	case nil:
		return "", errors.New("css: nil rule")
	default:
		// garbage in, garbage out
		return renderValue(t), nil
	}
}

// renderRule emits CSS text for one rule and its descendants, or defers the
// whole rule to the media query register when it carries an annotation.
func (run *compilation) renderRule(r *Rule, ctx selectorContext, depth int) (string, error) {
	if r == nil {
		return "", errors.New("css: nil rule")
	}
	if len(r.Items) == 0 {
		return "", errors.New("css: rule has no selector head and no content")
	}

	if len(r.Media) > 0 {
		// annotated rules never render in place; the annotation is
		// stripped before storage
		run.entries = append(run.entries, mediaEntry{
			queries: r.Media,
			rule:    &Rule{Items: r.Items},
			ctx:     ctx,
		})
		return "", nil
	}

	div := divideRule(r)
	expanded := expandSelector(div.selector, ctx)

	// a rule without its own selector head attaches its declarations to
	// the enclosing context and passes that context through to children
	selectors := expanded
	childCtx := expanded
	if len(div.selector) == 0 {
		selectors = [][]string(ctx)
		childCtx = ctx
	}
	selText := renderSelectorList(selectors, run.commaSeparator())

	var parts []string
	if selText != "" && len(div.decls) > 0 {
		merged := make(Declarations, 0, len(div.decls))
		for _, d := range div.decls {
			merged = append(merged, d...)
		}
		if flat := flattenDeclarations(merged); len(flat) > 0 {
			parts = append(parts, run.renderBlock(selText, flat, depth))
		}
	}
	for _, ch := range div.children {
		txt, err := run.renderRule(ch, childCtx, depth)
		if err != nil {
			return "", err
		}
		if txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, run.ruleSeparator()), nil
}

// renderMedia drains the register and renders one @media block per entry.
// Rendering an entry may defer further nested media rules; those are
// collected into a fresh register and drained in a later pass, after the
// current batch.
func (run *compilation) renderMedia() (string, error) {
	var blocks []string
	for len(run.entries) > 0 {
		batch := run.entries
		run.entries = nil
		for _, e := range batch {
			body, err := run.renderRule(e.rule, e.ctx, run.mediaBodyDepth())
			if err != nil {
				return "", err
			}
			if body == "" {
				continue
			}
			blocks = append(blocks, run.renderMediaBlock(e.queries, body))
		}
	}
	return strings.Join(blocks, run.ruleSeparator()), nil
}

func (run *compilation) renderMediaBlock(queries []MediaQuery, body string) string {
	expr := run.mediaExpression(queries)
	if run.opts.Style == OutputStyleCompressed {
		return "@media " + expr + "{" + body + "}"
	}
	return "@media " + expr + " {\n" + body + "\n}"
}

// mediaExpression builds the textual media expression. Features within one
// query are joined with " and "; several queries are comma separated (OR).
func (run *compilation) mediaExpression(queries []MediaQuery) string {
	exprs := make([]string, 0, len(queries))
	for _, q := range queries {
		feats := make([]string, 0, len(q))
		for _, f := range q {
			feats = append(feats, renderFeature(f))
		}
		exprs = append(exprs, strings.Join(feats, " and "))
	}
	return strings.Join(exprs, run.commaSeparator())
}

func renderFeature(f Feature) string {
	switch v := f.Value.(type) {
	case bool:
		if v {
			return f.Name
		}
		return "not " + f.Name
	case nil:
		return "(" + f.Name + ")"
	case string:
		switch v {
		case "only":
			return "only " + f.Name
		case "":
			return "(" + f.Name + ")"
		default:
			return "(" + f.Name + ":" + v + ")"
		}
	default:
		txt := renderValue(v)
		if txt == "" {
			return "(" + f.Name + ")"
		}
		return "(" + f.Name + ":" + txt + ")"
	}
}

// renderBlock emits "selector { declarations }" in the configured style.
func (run *compilation) renderBlock(selector string, decls Declarations, depth int) string {
	var b strings.Builder
	if run.opts.Style == OutputStyleCompressed {
		b.WriteString(selector)
		b.WriteByte('{')
		for i, d := range decls {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(d.Property)
			b.WriteByte(':')
			b.WriteString(renderValue(d.Value))
		}
		b.WriteByte('}')
		return b.String()
	}

	ind := strings.Repeat(" ", run.indentWidth())
	pad := strings.Repeat(ind, depth)
	b.WriteString(pad)
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range decls {
		b.WriteString(pad)
		b.WriteString(ind)
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(renderValue(d.Value))
		b.WriteString(";\n")
	}
	b.WriteString(pad)
	b.WriteByte('}')
	return b.String()
}

func (c *Compiler) ruleSeparator() string {
	if c.opts.Style == OutputStyleCompressed {
		return ""
	}
	return "\n"
}

func (c *Compiler) commaSeparator() string {
	if c.opts.Style == OutputStyleCompressed {
		return ","
	}
	return ", "
}

func (c *Compiler) indentWidth() int {
	if c.opts.IndentWidth <= 0 {
		return 2
	}
	return c.opts.IndentWidth
}

func (c *Compiler) mediaBodyDepth() int {
	if c.opts.Style == OutputStyleCompressed {
		return 0
	}
	return 1
}
