package chatmsg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	t.Run("ParseDocument_Flattens", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`
command:
  error:
    no-permission: "nope"
  help:
    - "one"
    - text: "two"
      hover: "tip"
count: 5
empty:
`))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"command",
			"command.error",
			"command.error.no-permission",
			"command.help",
			"count",
			"empty",
		}, doc.Keys())

		assert.Equal(t, Literal{Text: "nope"}, doc["command.error.no-permission"])
		assert.IsType(t, OptionBlock{}, doc["command"])
		assert.IsType(t, OptionBlock{}, doc["command.error"])
		assert.Equal(t, Scalar{Value: "5"}, doc["count"])
		assert.IsType(t, Scalar{}, doc["empty"])

		help, ok := doc["command.help"].(LineList)
		require.True(t, ok)
		require.Len(t, help.Lines, 2)
		assert.Equal(t, Literal{Text: "one"}, help.Lines[0])
		block, ok := help.Lines[1].(OptionBlock)
		require.True(t, ok)
		assert.Equal(t, Literal{Text: "tip"}, block.Fields["hover"])

		// blocks inside lists are not addressable
		_, found := doc["command.help.text"]
		assert.False(t, found)
	})

	t.Run("ParseDocument_QuotedNumberIsLiteral", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`version: "5"`))
		require.NoError(t, err)
		assert.Equal(t, Literal{Text: "5"}, doc["version"])
	})

	t.Run("ParseDocument_Alias", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`
base: &tip "shared tip"
item:
  text: "Item"
  hover: *tip
`))
		require.NoError(t, err)
		assert.Equal(t, Literal{Text: "shared tip"}, doc["item.hover"])
	})

	t.Run("ParseDocument_Empty", func(t *testing.T) {
		doc, err := ParseDocument(nil)
		require.NoError(t, err)
		assert.Empty(t, doc)
	})

	t.Run("ParseDocument_RootNotMapping", func(t *testing.T) {
		_, err := ParseDocument([]byte("- a\n- b\n"))
		assert.Error(t, err)
	})

	t.Run("ParseDocument_Invalid", func(t *testing.T) {
		_, err := DecodeDocument(strings.NewReader("a: [unclosed"))
		assert.Error(t, err)
	})
}

func TestDocument_Literals(t *testing.T) {
	doc, err := ParseDocument([]byte(`
a: "x {0}"
b:
  - "y"
  - text: "z"
c:
  text: "w"
`))
	require.NoError(t, err)

	lits := doc.Literals()
	assert.Equal(t, []string{"x {0}"}, lits["a"])
	assert.ElementsMatch(t, []string{"y", "z"}, lits["b"])
	assert.Equal(t, []string{"w"}, lits["c.text"])
	_, ok := lits["c"]
	assert.False(t, ok)
}

func TestOptionBlock_NumberedLines(t *testing.T) {
	b := OptionBlock{Fields: map[string]Node{
		"line10": Literal{Text: "ten"},
		"line2":  Literal{Text: "two"},
		"line0":  Literal{Text: "zero"},
		"lines":  Literal{Text: "ignored"},
		"line-1": Literal{Text: "ignored"},
		"text":   Literal{Text: "ignored"},
	}}

	assert.Equal(t, []Node{
		Literal{Text: "zero"},
		Literal{Text: "two"},
		Literal{Text: "ten"},
	}, b.numberedLines())
}
