package chatmsg

import (
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		params   []any
		expected string
	}{
		{name: "no placeholders", pattern: "plain text", expected: "plain text"},
		{name: "single", pattern: "Hello {0}", params: []any{"World"}, expected: "Hello World"},
		{name: "reordered", pattern: "{1} before {0}", params: []any{"a", "b"}, expected: "b before a"},
		{name: "repeated", pattern: "{0}{0}", params: []any{"x"}, expected: "xx"},
		{name: "non string param", pattern: "{0} players, {1}", params: []any{3, true}, expected: "3 players, true"},
		{name: "out of range kept", pattern: "Hi {0}, see {3}", params: []any{"Ann"}, expected: "Hi Ann, see {3}"},
		{name: "stray closing brace", pattern: "smile :} {0}", params: []any{"ok"}, expected: "smile :} ok"},
		{name: "color codes untouched", pattern: "&aHello §l{0}", params: []any{"Bob"}, expected: "&aHello §lBob"},
		{name: "spaces around index", pattern: "{ 0 }", params: []any{"v"}, expected: "v"},
		{name: "upper", pattern: "{0|upper}", params: []any{"loud"}, expected: "LOUD"},
		{name: "lower", pattern: "{0 | lower}", params: []any{"QUIET"}, expected: "quiet"},
		{name: "title", pattern: "{0|title}", params: []any{"hello world"}, expected: "Hello World"},
		{name: "number", pattern: "{0|number:2}", params: []any{1234567.891}, expected: "1,234,567.89"},
		{name: "negative number", pattern: "{0|number}", params: []any{-1234}, expected: "-1,234"},
		{name: "currency", pattern: "{0|currency:¥}", params: []any{12345.678}, expected: "¥12,345.68"},
		{name: "chained", pattern: "{0|number|upper}", params: []any{1000}, expected: "1,000"},
		{
			name:     "date",
			pattern:  "{0|date:2006/01/02}",
			params:   []any{time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
			expected: "2024/03/09",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.pattern, tt.params...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormat_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		params  []any
	}{
		{name: "unclosed brace", pattern: "Oops {name", params: nil},
		{name: "named placeholder", pattern: "Hi {name}", params: []any{"x"}},
		{name: "negative index", pattern: "{-1}", params: []any{"x"}},
		{name: "empty placeholder", pattern: "{}", params: []any{"x"}},
		{name: "unknown formatter", pattern: "{0|sparkle}", params: []any{"x"}},
		{name: "formatter failure", pattern: "{0|number}", params: []any{"not a number"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.pattern, tt.params...)
			require.Error(t, err)
			assert.Equal(t, tt.pattern, got, "the pattern is returned unformatted")

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.pattern, fe.Pattern)
		})
	}
}

func TestParsePattern_Position(t *testing.T) {
	_, err := ParsePattern("ab {x}")
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 3, fe.Pos)
}

func TestFormat_CacheBounded(t *testing.T) {
	resetPatternCache()
	for i := 0; i < maxCachedPatterns*2+10; i++ {
		s, err := Format("player "+strconv.Itoa(i)+" joined as {0}", "Ann")
		require.NoError(t, err)
		require.Equal(t, "player "+strconv.Itoa(i)+" joined as Ann", s)
	}

	cacheMutex.RLock()
	size := len(patternCache)
	cacheMutex.RUnlock()
	assert.LessOrEqual(t, size, maxCachedPatterns)
	assert.Positive(t, size)
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat("Arena {0} starts in {1|number:0}"))
	assert.Error(t, ValidateFormat("{0|number:x}"))
	assert.Error(t, ValidateFormat("{0"))
	assert.Error(t, ValidateFormat("{zero}"))
}

func TestRegisterFormatter(t *testing.T) {
	RegisterFormatter("stars", func(v any, arg string) (any, error) {
		return "*" + arg + "*", nil
	})
	got, err := Format("{0|stars:gold}", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "*gold*", got)
}
