package chatmsg

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_RichText(t *testing.T) {
	t.Run("RichText_Empty", func(t *testing.T) {
		msg := NewMessage(nil)
		assert.Equal(t, "", msg.PlainText())
		assert.Equal(t, `{"text":"","extra":[]}`, msg.RichText().String())
	})

	t.Run("RichText_FieldOrder", func(t *testing.T) {
		msg := NewMessage([]Segment{
			{Text: "plain"},
			{Text: "\nhover only", Hover: lo.ToPtr("tip")},
			{Text: "\nboth", Hover: lo.ToPtr("h"), Click: lo.ToPtr("/c")},
			{Text: "\nclick only", Click: lo.ToPtr("/spawn")},
		})

		expected := `{"text":"","extra":[` +
			`{"text":"plain"},` +
			`{"text":"\nhover only","hoverEvent":{"action":"show_text","value":"tip"}},` +
			`{"text":"\nboth","hoverEvent":{"action":"show_text","value":"h"},"clickEvent":{"action":"run_command","value":"/c"}},` +
			`{"text":"\nclick only","clickEvent":{"action":"run_command","value":"/spawn"}}` +
			`]}`
		assert.Equal(t, expected, msg.RichText().String())
	})

	t.Run("RichText_ExtraMatchesSegments", func(t *testing.T) {
		segs := []Segment{{Text: "a"}, {Text: "\nb"}, {Text: "\nc"}}
		rt := NewMessage(segs).RichText()
		require.Len(t, rt.Extra, len(segs))
		for i, s := range segs {
			assert.Equal(t, s.Text, rt.Extra[i].Text)
		}
	})

	t.Run("RichText_ValidJSON", func(t *testing.T) {
		msg := NewMessage([]Segment{{Text: `quote " and \ backslash`, Hover: lo.ToPtr("<b>&</b>")}})
		b, err := json.Marshal(msg.RichText())
		require.NoError(t, err)

		var decoded struct {
			Text  string `json:"text"`
			Extra []struct {
				Text       string `json:"text"`
				HoverEvent *struct {
					Action string `json:"action"`
					Value  string `json:"value"`
				} `json:"hoverEvent"`
			} `json:"extra"`
		}
		require.NoError(t, json.Unmarshal(b, &decoded))
		require.Len(t, decoded.Extra, 1)
		assert.Equal(t, `quote " and \ backslash`, decoded.Extra[0].Text)
		require.NotNil(t, decoded.Extra[0].HoverEvent)
		assert.Equal(t, "<b>&</b>", decoded.Extra[0].HoverEvent.Value)
	})

	t.Run("PlainText_DropsAttributes", func(t *testing.T) {
		msg := NewMessage([]Segment{{Text: "Hello World", Hover: lo.ToPtr("tip")}})
		assert.Equal(t, "Hello World", msg.PlainText())
	})
}

func TestMessage_Lines(t *testing.T) {
	msg := NewMessage([]Segment{
		{Text: "Hi "},
		{Text: "Ann", Click: lo.ToPtr("/msg Ann")},
		{Text: "\nBye"},
		{Text: "\n"},
	})

	lines := msg.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "Hi Ann", lines[0].PlainText())
	assert.Equal(t, 2, lines[0].Len())
	assert.Equal(t, "Bye", lines[1].PlainText())
	assert.Equal(t, "", lines[2].PlainText())

	assert.Empty(t, NewMessage(nil).Lines())
}

func TestMessage_Immutable(t *testing.T) {
	segs := []Segment{{Text: "a"}}
	msg := NewMessage(segs)
	segs[0].Text = "changed"
	assert.Equal(t, "a", msg.PlainText())

	out := msg.Segments()
	out[0].Text = "changed"
	assert.Equal(t, "a", msg.PlainText())
}
