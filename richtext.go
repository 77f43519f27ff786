package chatmsg

import (
	"github.com/go-faster/jx"
)

// Event actions understood by the chat renderer.
const (
	ActionShowText   = "show_text"
	ActionRunCommand = "run_command"
)

// Event is a hover or click annotation of a chat component.
type Event struct {
	Action string
	Value  string
}

// Component is one child of the rich-text root.
type Component struct {
	Text       string
	HoverEvent *Event
	ClickEvent *Event
}

// RichText is the chat component tree:
//
//	{"text":"","extra":[{"text":"...","hoverEvent":{...},"clickEvent":{...}}]}
type RichText struct {
	Text  string
	Extra []Component
}

// Encode writes the tree with the field order the chat renderer expects.
// "extra" is always present, even when empty.
func (r RichText) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("text")
	e.Str(r.Text)
	e.FieldStart("extra")
	e.ArrStart()
	for _, c := range r.Extra {
		c.Encode(e)
	}
	e.ArrEnd()
	e.ObjEnd()
}

// Encode writes a single component.
func (c Component) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("text")
	e.Str(c.Text)
	if c.HoverEvent != nil {
		e.FieldStart("hoverEvent")
		c.HoverEvent.Encode(e)
	}
	if c.ClickEvent != nil {
		e.FieldStart("clickEvent")
		c.ClickEvent.Encode(e)
	}
	e.ObjEnd()
}

func (ev Event) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("action")
	e.Str(ev.Action)
	e.FieldStart("value")
	e.Str(ev.Value)
	e.ObjEnd()
}

// MarshalJSON implements json.Marshaler.
func (r RichText) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	r.Encode(&e)
	return e.Bytes(), nil
}

// String returns the JSON form, as passed to tellraw.
func (r RichText) String() string {
	b, _ := r.MarshalJSON()
	return string(b)
}
