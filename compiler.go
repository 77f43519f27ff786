package chatmsg

import (
	"log/slog"

	"github.com/samber/lo"
)

// Lookuper resolves a dotted key path to a template node.
type Lookuper interface {
	Lookup(key string) (Node, bool)
}

// Compiler turns template nodes into messages.
//
// Expansion rules:
//   - Literal: formatted with the params, prefixed by "\n" unless it is the
//     first line.
//   - LineList: every element expanded in order, only the first one as a
//     first line.
//   - OptionBlock with "text" and no lineN fields: one segment, "hover" and
//     "click" become its attributes.
//   - OptionBlock with lineN fields: the lines in numeric order, like a
//     LineList. The block's own "hover"/"click" apply to every segment
//     produced from its lines unless an inner block sets its own.
//   - Anything else, and non-string option values, produce nothing.
type Compiler struct {
	catalog Lookuper
	logger  *slog.Logger
}

// NewCompiler returns a compiler resolving keys through catalog. A nil
// logger means slog.Default().
func NewCompiler(catalog Lookuper, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{catalog: catalog, logger: logger}
}

// FromKey compiles the node stored under key. The second result is false
// when the key does not exist, which callers treat as "nothing to send".
func (c *Compiler) FromKey(key string, params ...any) (*Message, bool) {
	if c.catalog == nil {
		return nil, false
	}
	node, ok := c.catalog.Lookup(key)
	if !ok {
		return nil, false
	}
	return &Message{segments: c.expand(key, node, params, true, attrs{})}, true
}

// FromLiteral compiles a literal pattern without going through the catalog.
// A malformed pattern is logged and emitted unformatted.
func (c *Compiler) FromLiteral(text string, params ...any) *Message {
	return &Message{segments: c.expand("", Literal{Text: text}, params, true, attrs{})}
}

// Expand expands node into its segments. first reports whether the node
// starts the enclosing sequence, i.e. gets no leading line break.
func (c *Compiler) Expand(node Node, params []any, first bool) []Segment {
	return c.expand("", node, params, first, attrs{})
}

// attrs are the hover/click values a block hands down to its lines.
type attrs struct {
	hover *string
	click *string
}

func (c *Compiler) expand(key string, node Node, params []any, first bool, inherited attrs) []Segment {
	switch n := node.(type) {
	case Literal:
		return []Segment{c.line(key, n.Text, params, first, inherited)}
	case LineList:
		return c.expandLines(key, n.Lines, params, first, inherited)
	case OptionBlock:
		return c.expandBlock(key, n, params, first, inherited)
	default:
		return nil
	}
}

func (c *Compiler) expandLines(key string, lines []Node, params []any, first bool, inherited attrs) []Segment {
	var out []Segment
	for i, l := range lines {
		out = append(out, c.expand(key, l, params, first && i == 0, inherited)...)
	}
	return out
}

func (c *Compiler) expandBlock(key string, b OptionBlock, params []any, first bool, inherited attrs) []Segment {
	lines := b.numberedLines()
	_, hasText := b.Fields["text"]

	switch {
	case hasText && len(lines) == 0:
		// a non-string "text" still yields its (empty) line
		text, _ := b.stringField("text")
		return []Segment{c.line(key, text, params, first, c.blockAttrs(key, b, params, inherited))}
	case len(lines) > 0:
		return c.expandLines(key, lines, params, first, c.blockAttrs(key, b, params, inherited))
	default:
		return nil
	}
}

// blockAttrs overlays the block's own hover/click on the inherited ones.
func (c *Compiler) blockAttrs(key string, b OptionBlock, params []any, inherited attrs) attrs {
	out := inherited
	if hover, ok := b.stringField("hover"); ok {
		out.hover = lo.ToPtr(c.format(key, hover, params))
	}
	if click, ok := b.stringField("click"); ok {
		out.click = lo.ToPtr(c.format(key, click, params))
	}
	return out
}

func (c *Compiler) line(key, pattern string, params []any, first bool, a attrs) Segment {
	text := c.format(key, pattern, params)
	if !first {
		text = "\n" + text
	}
	return Segment{Text: text, Hover: a.hover, Click: a.click}
}

func (c *Compiler) format(key, pattern string, params []any) string {
	s, err := Format(pattern, params...)
	if err != nil {
		c.logger.Warn("format message", "key", key, "pattern", pattern, "error", err)
		return pattern
	}
	return s
}
