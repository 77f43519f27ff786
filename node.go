package chatmsg

import (
	"sort"
	"strconv"
	"strings"
)

// Node is one entry of a language document. The set of implementations is
// closed: Literal, LineList, OptionBlock and Scalar.
type Node interface {
	isNode()
}

// Literal is a single format pattern with {0}, {1}, ... placeholders.
type Literal struct {
	Text string
}

// LineList is an ordered list of lines, every line after the first starts
// on a new line.
type LineList struct {
	Lines []Node
}

// OptionBlock is a keyed block. Recognised fields are "text", "hover",
// "click" and "line0", "line1", ...
type OptionBlock struct {
	Fields map[string]Node
}

// Scalar is a non-string leaf (number, bool, null). It is kept so that the
// key resolves, but it never produces output.
type Scalar struct {
	Value string
}

func (Literal) isNode()     {}
func (LineList) isNode()    {}
func (OptionBlock) isNode() {}
func (Scalar) isNode()      {}

// stringField 返回字段的字符串值，非 Literal 的字段视为不存在
func (b OptionBlock) stringField(name string) (string, bool) {
	n, ok := b.Fields[name]
	if !ok {
		return "", false
	}
	lit, ok := n.(Literal)
	if !ok {
		return "", false
	}
	return lit.Text, true
}

// numberedLines returns the lineN fields ordered by their numeric suffix.
func (b OptionBlock) numberedLines() []Node {
	type numbered struct {
		n    int
		name string
		node Node
	}
	var lines []numbered
	for name, node := range b.Fields {
		idx, ok := lineIndex(name)
		if !ok {
			continue
		}
		lines = append(lines, numbered{n: idx, name: name, node: node})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].n != lines[j].n {
			return lines[i].n < lines[j].n
		}
		return lines[i].name < lines[j].name
	})

	out := make([]Node, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.node)
	}
	return out
}

// lineIndex parses "line<N>" field names.
func lineIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "line")
	if !ok || rest == "" || rest[0] < '0' || rest[0] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
