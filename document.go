package chatmsg

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document maps every dotted key path of a language file to its node.
// Intermediate mappings are present too, as OptionBlocks.
type Document map[string]Node

// Lookup implements Lookuper.
func (d Document) Lookup(key string) (Node, bool) {
	n, ok := d[key]
	return n, ok
}

// Keys returns every key path in lexical order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Literals returns every key whose node is a Literal, together with the
// literals nested below it in lists and blocks. Used by the linter.
func (d Document) Literals() map[string][]string {
	out := make(map[string][]string)
	for key, node := range d {
		if _, isBlock := node.(OptionBlock); isBlock {
			// block fields are indexed under their own paths
			continue
		}
		var texts []string
		collectLiterals(node, &texts)
		if len(texts) > 0 {
			out[key] = texts
		}
	}
	return out
}

func collectLiterals(n Node, acc *[]string) {
	switch v := n.(type) {
	case Literal:
		*acc = append(*acc, v.Text)
	case LineList:
		for _, l := range v.Lines {
			collectLiterals(l, acc)
		}
	case OptionBlock:
		for _, f := range v.Fields {
			collectLiterals(f, acc)
		}
	}
}

// ParseDocument parses a YAML language file. The root must be a mapping;
// an empty input yields an empty document.
func ParseDocument(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "yaml unmarshal")
	}

	doc := make(Document)
	top := &root
	if top.Kind == 0 {
		return doc, nil
	}
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return doc, nil
		}
		top = top.Content[0]
	}
	top = resolveAlias(top)
	if top.Kind != yaml.MappingNode {
		return nil, errors.Errorf("document root must be a mapping, got %s", top.ShortTag())
	}

	buildBlock(doc, "", top)
	return doc, nil
}

// DecodeDocument reads r fully and parses it with ParseDocument.
func DecodeDocument(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	return ParseDocument(data)
}

// buildBlock converts a mapping into an OptionBlock. When doc is non-nil
// every field is also registered under its dotted path.
func buildBlock(doc Document, prefix string, m *yaml.Node) OptionBlock {
	block := OptionBlock{Fields: make(map[string]Node, len(m.Content)/2)}
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i].Value
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		val := resolveAlias(m.Content[i+1])
		var n Node
		if val.Kind == yaml.MappingNode {
			n = buildBlock(doc, path, val)
		} else {
			n = convertNode(val)
		}

		block.Fields[key] = n
		if doc != nil {
			doc[path] = n
		}
	}
	return block
}

func convertNode(n *yaml.Node) Node {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!str" {
			return Literal{Text: n.Value}
		}
		return Scalar{Value: n.Value}
	case yaml.SequenceNode:
		lines := make([]Node, 0, len(n.Content))
		for _, c := range n.Content {
			lines = append(lines, convertNode(c))
		}
		return LineList{Lines: lines}
	case yaml.MappingNode:
		// mappings inside lists are not addressable by key path
		return buildBlock(nil, "", n)
	default:
		return Scalar{}
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for depth := 0; n.Kind == yaml.AliasNode && n.Alias != nil && depth < 32; depth++ {
		n = n.Alias
	}
	return n
}
