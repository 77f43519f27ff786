package chatmsg

import (
	"strings"
)

// Segment is one formatted run of text. Text already carries the leading
// "\n" when it starts a new line. Hover and Click are nil when absent.
type Segment struct {
	Text  string
	Hover *string
	Click *string
}

// Message is a compiled message. It is immutable once built.
type Message struct {
	segments []Segment
}

// NewMessage builds a message from already formatted segments.
func NewMessage(segments []Segment) *Message {
	return &Message{segments: append([]Segment(nil), segments...)}
}

// Segments returns a copy of the segment sequence.
func (m *Message) Segments() []Segment {
	return append([]Segment(nil), m.segments...)
}

// Len is the number of segments.
func (m *Message) Len() int {
	return len(m.segments)
}

// PlainText concatenates the segment texts. Hover and click are dropped.
func (m *Message) PlainText() string {
	var sb strings.Builder
	for _, s := range m.segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// RichText returns the chat component tree, one child per segment.
func (m *Message) RichText() RichText {
	extra := make([]Component, 0, len(m.segments))
	for _, s := range m.segments {
		c := Component{Text: s.Text}
		if s.Hover != nil {
			c.HoverEvent = &Event{Action: ActionShowText, Value: *s.Hover}
		}
		if s.Click != nil {
			c.ClickEvent = &Event{Action: ActionRunCommand, Value: *s.Click}
		}
		extra = append(extra, c)
	}
	return RichText{Text: "", Extra: extra}
}

// Lines splits the message where a segment starts a new line. The leading
// "\n" of each split segment is removed, so every returned message renders
// as one chat line. An empty message yields no lines.
func (m *Message) Lines() []*Message {
	var (
		out     []*Message
		current []Segment
	)
	for i, s := range m.segments {
		if i > 0 && strings.HasPrefix(s.Text, "\n") {
			out = append(out, &Message{segments: current})
			current = nil
		}
		if strings.HasPrefix(s.Text, "\n") {
			s.Text = s.Text[1:]
		}
		current = append(current, s)
	}
	if len(current) > 0 {
		out = append(out, &Message{segments: current})
	}
	return out
}
