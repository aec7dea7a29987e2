package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
		err      error
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "spaces only", input: "   \t ", expected: []string{}},
		{name: "words", input: "Alpha ann bob", expected: []string{"Alpha", "ann", "bob"}},
		{name: "repeated whitespace", input: "  Alpha \t ann\nbob ", expected: []string{"Alpha", "ann", "bob"}},
		{name: "quoted team name", input: `"Team Rocket" jessie james`, expected: []string{"Team Rocket", "jessie", "james"}},
		{name: "escaped quote", input: `"The \"Best\" Team" ann`, expected: []string{`The "Best" Team`, "ann"}},
		{name: "apostrophe is literal", input: `O'Neil D'Arcy`, expected: []string{"O'Neil", "D'Arcy"}},
		{name: "quote inside word is literal", input: `ab"cd ef`, expected: []string{`ab"cd`, "ef"}},
		{name: "empty quoted token", input: `"" ann`, expected: []string{"", "ann"}},
		{name: "unicode", input: "Équipe 🦊 zoë", expected: []string{"Équipe", "🦊", "zoë"}},
		{name: "unclosed quote", input: `"Team Rocket jessie`, err: ErrUnclosedQuote},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Tokenize(tc.input)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		ok      bool
		cmd     string
		args    []string
	}{
		{name: "no prefix", content: "hello there", ok: false},
		{name: "prefix only", content: "!", ok: false},
		{name: "space after prefix", content: "! help", ok: false},
		{name: "bare command", content: "!slots", ok: true, cmd: "slots", args: []string{}},
		{name: "command with args", content: "!register Alpha ann bob", ok: true, cmd: "register", args: []string{"Alpha", "ann", "bob"}},
		{name: "quoted args", content: `!register "Team Rocket" jessie`, ok: true, cmd: "register", args: []string{"Team Rocket", "jessie"}},
		{name: "newline separated", content: "!setslots\n8", ok: true, cmd: "setslots", args: []string{"8"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inv, ok := Parse("!", tc.content)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			require.NoError(t, inv.ParseErr)
			assert.Equal(t, tc.cmd, inv.Name)
			assert.Equal(t, tc.args, inv.Args)
		})
	}
}

func TestParseKeepsNameOnBadQuoting(t *testing.T) {
	inv, ok := Parse("!", `!register "Team Rocket`)
	require.True(t, ok)
	assert.Equal(t, "register", inv.Name)
	assert.ErrorIs(t, inv.ParseErr, ErrUnclosedQuote)
}

func TestParseCustomPrefix(t *testing.T) {
	inv, ok := Parse("t!", "t!confirm")
	require.True(t, ok)
	assert.Equal(t, "confirm", inv.Name)

	_, ok = Parse("t!", "!confirm")
	assert.False(t, ok)

	_, ok = Parse("", "confirm")
	assert.False(t, ok)
}
