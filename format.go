package chatmsg

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// PATTERN DEFINITIONS
///////////////////////////////////////////////////////////////////////////////

// patternNode is one piece of a parsed pattern.
type patternNode interface {
	eval(params []any) (string, error)
}

// textNode represents a static text run.
type textNode struct {
	text string
}

func (t *textNode) eval(_ []any) (string, error) {
	return t.text, nil
}

// Formatter represents a single formatter in the chain.
type Formatter struct {
	Name string
	Arg  string
}

// argNode represents: {index | formatter:arg | ...}
type argNode struct {
	index      int
	raw        string // text between the braces, re-emitted when index is out of range
	formatters []Formatter
}

func (a *argNode) eval(params []any) (string, error) {
	if a.index >= len(params) {
		return "{" + a.raw + "}", nil
	}

	value := params[a.index]
	var err error
	for _, f := range a.formatters {
		value, err = applyRegisteredFormatter(value, f.Name, f.Arg)
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprint(value), nil
}

// Pattern is a parsed format pattern.
type Pattern []patternNode

// Format substitutes params into the pattern.
func (p Pattern) Format(params []any) (string, error) {
	var buf bytes.Buffer
	for _, node := range p {
		s, err := node.eval(params)
		if err != nil {
			return "", err
		}
		buf.WriteString(s)
	}
	return buf.String(), nil
}

///////////////////////////////////////////////////////////////////////////////
// PATTERN CACHE
///////////////////////////////////////////////////////////////////////////////

// maxCachedPatterns bounds the cache; literal patterns built from dynamic
// text would otherwise grow it until the next catalog load.
const maxCachedPatterns = 1024

var (
	patternCache = map[string]Pattern{}
	cacheMutex   sync.RWMutex
)

// Format replaces {0}, {1}, ... in pattern with the textual form of the
// matching param. Placeholders past the end of params are left as written.
//
// Parsed patterns are cached by their source text. A full cache is
// emptied before the next insert.
func Format(pattern string, params ...any) (string, error) {
	cacheMutex.RLock()
	p, ok := patternCache[pattern]
	cacheMutex.RUnlock()

	if !ok {
		var err error
		p, err = ParsePattern(pattern)
		if err != nil {
			return pattern, err
		}
		cacheMutex.Lock()
		if len(patternCache) >= maxCachedPatterns {
			patternCache = make(map[string]Pattern, maxCachedPatterns)
		}
		patternCache[pattern] = p
		cacheMutex.Unlock()
	}

	s, err := p.Format(params)
	if err != nil {
		return pattern, &FormatError{Pattern: pattern, Pos: -1, Reason: err.Error()}
	}
	return s, nil
}

// resetPatternCache drops every cached pattern. Called on catalog reload so
// patterns of the previous document do not pile up.
func resetPatternCache() {
	cacheMutex.Lock()
	patternCache = map[string]Pattern{}
	cacheMutex.Unlock()
}

///////////////////////////////////////////////////////////////////////////////
// PATTERN PARSER
///////////////////////////////////////////////////////////////////////////////

// ParsePattern parses a pattern string. An unmatched '{' is an error, a
// stray '}' is plain text.
func ParsePattern(pattern string) (Pattern, error) {
	runes := []rune(pattern)
	n := len(runes)

	var nodes Pattern
	var buf bytes.Buffer

	i := 0
	for i < n {
		if runes[i] != '{' {
			buf.WriteRune(runes[i])
			i++
			continue
		}

		if buf.Len() > 0 {
			nodes = append(nodes, &textNode{text: buf.String()})
			buf.Reset()
		}

		// placeholders may nest braces inside formatter args
		start := i
		depth := 1
		j := i + 1
		for j < n && depth > 0 {
			switch runes[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		if depth != 0 {
			return nil, &FormatError{Pattern: pattern, Pos: start, Reason: "unmatched '{'"}
		}

		raw := string(runes[start+1 : j-1])
		arg, err := parseArgument(raw)
		if err != nil {
			return nil, &FormatError{Pattern: pattern, Pos: start, Reason: err.Error()}
		}
		nodes = append(nodes, arg)
		i = j
	}

	if buf.Len() > 0 {
		nodes = append(nodes, &textNode{text: buf.String()})
	}

	return nodes, nil
}

///////////////////////////////////////////////////////////////////////////////
// ARGUMENT PARSER
///////////////////////////////////////////////////////////////////////////////

// parseArgument parses the expression inside `{ ... }`.
func parseArgument(expr string) (*argNode, error) {
	parts := strings.Split(expr, "|")

	head := strings.TrimSpace(parts[0])
	if head == "" {
		return nil, fmt.Errorf("empty placeholder")
	}
	idx, err := strconv.Atoi(head)
	if err != nil || idx < 0 || head[0] == '+' {
		return nil, fmt.Errorf("can't parse argument number: %s", head)
	}

	arg := &argNode{index: idx, raw: expr}
	for _, p := range parts[1:] {
		seg := strings.TrimSpace(p)
		if seg == "" {
			return nil, fmt.Errorf("empty formatter segment")
		}
		name, fa := parseFormatterSegment(seg)
		if name == "" {
			return nil, fmt.Errorf("empty formatter name in segment %q", seg)
		}
		if !hasFormatter(name) {
			return nil, fmt.Errorf("unknown formatter: %s", name)
		}
		arg.formatters = append(arg.formatters, Formatter{Name: name, Arg: fa})
	}
	return arg, nil
}

// parseFormatterSegment parses "number:2" etc.
func parseFormatterSegment(seg string) (name, arg string) {
	ff := strings.SplitN(seg, ":", 2)
	name = strings.TrimSpace(ff[0])
	if len(ff) > 1 {
		arg = strings.TrimSpace(ff[1])
	}
	return
}

// ValidateFormat does a strict validation for linting purpose: the pattern
// must parse and formatter arguments must be well formed.
func ValidateFormat(pattern string) error {
	p, err := ParsePattern(pattern)
	if err != nil {
		return err
	}

	for _, node := range p {
		arg, ok := node.(*argNode)
		if !ok {
			continue
		}
		for _, f := range arg.formatters {
			switch f.Name {
			case "number":
				if f.Arg != "" {
					if _, err := strconv.Atoi(f.Arg); err != nil {
						return &FormatError{Pattern: pattern, Pos: -1, Reason: fmt.Sprintf("invalid precision for number formatter: %q", f.Arg)}
					}
				}
			}
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// VALUE FORMATTING
///////////////////////////////////////////////////////////////////////////////

func formatDate(v any, layout string) (string, error) {
	if layout == "" {
		layout = "2006-01-02"
	}
	switch t := v.(type) {
	case time.Time:
		return t.Format(layout), nil
	case *time.Time:
		return t.Format(layout), nil
	case string:
		tt, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return "", err
		}
		return tt.Format(layout), nil
	default:
		return "", fmt.Errorf("not a time: %v", v)
	}
}

func toFloat(v any, name string) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s formatter: cannot parse %q", name, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s formatter requires numeric or numeric-string type, got %T", name, v)
	}
}

func formatNumber(v any, precision string) (string, error) {
	f, err := toFloat(v, "number")
	if err != nil {
		return "", err
	}

	p := 0
	if precision != "" {
		pi, err := strconv.Atoi(precision)
		if err != nil {
			return "", fmt.Errorf("number formatter: invalid precision %q", precision)
		}
		p = pi
	}

	return addThousandsSep(strconv.FormatFloat(f, 'f', p, 64)), nil
}

func addThousandsSep(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")

	var buf bytes.Buffer
	for i, c := range intPart {
		if i != 0 && (len(intPart)-i)%3 == 0 {
			buf.WriteRune(',')
		}
		buf.WriteRune(c)
	}
	if hasFrac {
		buf.WriteRune('.')
		buf.WriteString(frac)
	}

	if neg {
		return "-" + buf.String()
	}
	return buf.String()
}

func formatCurrency(v any, symbol string) (string, error) {
	if symbol == "" {
		symbol = "$"
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		for _, sym := range []string{"$", "¥", "€", "£", symbol} {
			s = strings.TrimPrefix(s, sym)
		}
		v = s
	}

	f, err := toFloat(v, "currency")
	if err != nil {
		return "", err
	}
	return symbol + addThousandsSep(strconv.FormatFloat(f, 'f', 2, 64)), nil
}
