// Package stylesheet loads rule trees from YAML documents.
//
// The document format mirrors the rule model one to one:
//
//	version: 1
//	rules:
//	  - selector: [".btn", "a"]
//	    declarations:
//	      color: red
//	      font:
//	        weight: bold
//	    children:
//	      - selector: "&:hover"
//	        declarations: {color: blue}
//	    media:
//	      screen: true
//	      min-width: 768px
//
// Declaration and media feature order is taken from the document, which is
// why decoding walks yaml.Node values instead of plain maps.
package stylesheet

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/ghostandthemachine/garden/css"
)

// Loader decodes YAML stylesheet documents into rule trees.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a new stylesheet loader.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log.Named("stylesheet")}
}

// Load decodes a stylesheet document. Errors from individual rules are
// aggregated so a single pass reports everything that is wrong.
func (l *Loader) Load(data []byte) ([]*css.Rule, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("stylesheet: failed to decode document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("stylesheet: empty document")
	}

	doc := resolveAlias(root.Content[0])
	if doc.Kind != yaml.MappingNode {
		return nil, errors.New("stylesheet: document must be a mapping")
	}

	var (
		rules    []*css.Rule
		errs     error
		sawRules bool
	)
	for i := 0; i < len(doc.Content)-1; i += 2 {
		key, value := doc.Content[i], resolveAlias(doc.Content[i+1])
		switch key.Value {
		case "version":
			var version int
			if err := value.Decode(&version); err != nil {
				return nil, fmt.Errorf("stylesheet: invalid version: %w", err)
			}
			if version != 1 {
				return nil, fmt.Errorf("stylesheet: unsupported version %d", version)
			}
		case "rules":
			sawRules = true
			if value.Kind != yaml.SequenceNode {
				return nil, errors.New("stylesheet: rules must be a sequence")
			}
			for j, rn := range value.Content {
				rule, err := decodeRule(resolveAlias(rn))
				if err != nil {
					errs = multierr.Append(errs, fmt.Errorf("rules[%d]: %w", j, err))
					continue
				}
				rules = append(rules, rule)
			}
		default:
			// same strictness as decoding with KnownFields
			return nil, fmt.Errorf("stylesheet: unknown key %q at line %d", key.Value, key.Line)
		}
	}
	if !sawRules {
		return nil, errors.New("stylesheet: document has no rules")
	}
	if errs != nil {
		return nil, errs
	}

	l.log.Debug("Stylesheet loaded", zap.Int("rules", len(rules)), zap.Int("bytes", len(data)))
	return rules, nil
}

func decodeRule(node *yaml.Node) (*css.Rule, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("rule must be a mapping (line %d)", node.Line)
	}

	rule := &css.Rule{}
	var decls css.Declarations
	var children []*css.Rule

	for i := 0; i < len(node.Content)-1; i += 2 {
		key, value := node.Content[i], resolveAlias(node.Content[i+1])
		switch key.Value {
		case "selector":
			fragments, err := decodeSelector(value)
			if err != nil {
				return nil, err
			}
			for _, f := range fragments {
				rule.Items = append(rule.Items, f)
			}
		case "declarations":
			d, err := decodeDeclarations(value)
			if err != nil {
				return nil, err
			}
			decls = d
		case "children":
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("children must be a sequence (line %d)", value.Line)
			}
			for _, cn := range value.Content {
				child, err := decodeRule(resolveAlias(cn))
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
		case "media":
			queries, err := decodeMedia(value)
			if err != nil {
				return nil, err
			}
			rule.Media = queries
		default:
			return nil, fmt.Errorf("unknown rule key %q at line %d", key.Value, key.Line)
		}
	}

	if decls != nil {
		rule.Items = append(rule.Items, decls)
	}
	for _, c := range children {
		rule.Items = append(rule.Items, c)
	}
	if len(rule.Items) == 0 {
		return nil, fmt.Errorf("rule is empty (line %d)", node.Line)
	}
	return rule, nil
}

func decodeSelector(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		fragments := make([]string, 0, len(node.Content))
		for _, fn := range node.Content {
			fn = resolveAlias(fn)
			if fn.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("selector fragment must be a scalar (line %d)", fn.Line)
			}
			fragments = append(fragments, fn.Value)
		}
		return fragments, nil
	default:
		return nil, fmt.Errorf("selector must be a scalar or a sequence (line %d)", node.Line)
	}
}

func decodeDeclarations(node *yaml.Node) (css.Declarations, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("declarations must be a mapping (line %d)", node.Line)
	}
	decls := make(css.Declarations, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content)-1; i += 2 {
		key, value := node.Content[i], resolveAlias(node.Content[i+1])
		v, err := decodeValue(value)
		if err != nil {
			return nil, err
		}
		decls = append(decls, css.Decl{Property: key.Value, Value: v})
	}
	return decls, nil
}

// decodeValue converts a YAML value node to a declaration value: scalars
// keep their resolved Go type, sequences become []any and mappings become
// nested Declarations.
func decodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("invalid value at line %d: %w", node.Line, err)
		}
		return v, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, cn := range node.Content {
			v, err := decodeValue(resolveAlias(cn))
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		return decodeDeclarations(node)
	default:
		return nil, fmt.Errorf("unsupported value at line %d", node.Line)
	}
}

// decodeMedia accepts a single feature mapping, or a sequence of mappings
// with OR semantics.
func decodeMedia(node *yaml.Node) ([]css.MediaQuery, error) {
	switch node.Kind {
	case yaml.MappingNode:
		q, err := decodeMediaQuery(node)
		if err != nil {
			return nil, err
		}
		return []css.MediaQuery{q}, nil
	case yaml.SequenceNode:
		queries := make([]css.MediaQuery, 0, len(node.Content))
		for _, qn := range node.Content {
			q, err := decodeMediaQuery(resolveAlias(qn))
			if err != nil {
				return nil, err
			}
			queries = append(queries, q)
		}
		return queries, nil
	default:
		return nil, fmt.Errorf("media must be a mapping or a sequence of mappings (line %d)", node.Line)
	}
}

func decodeMediaQuery(node *yaml.Node) (css.MediaQuery, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("media query must be a mapping (line %d)", node.Line)
	}
	query := make(css.MediaQuery, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content)-1; i += 2 {
		key, value := node.Content[i], resolveAlias(node.Content[i+1])
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("media feature %q must be a scalar (line %d)", key.Value, value.Line)
		}
		var v any
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("invalid media feature %q at line %d: %w", key.Value, value.Line, err)
		}
		query = append(query, css.Feature{Name: key.Value, Value: v})
	}
	return query, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
