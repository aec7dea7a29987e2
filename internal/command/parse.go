package command

import (
	"strings"
	"unicode"

	users "github.com/AdamBeresnev/tourney-bot/internal/user"
)

// Invocation is one command as delivered by the gateway.
type Invocation struct {
	Name      string
	Args      []string
	Caller    users.User
	ChannelID string

	// ParseErr is set when the arguments could not be tokenized.
	ParseErr error
}

// Parse splits a prefixed chat message into a command name and its arguments.
// It returns false when the message is not addressed to the bot.
func Parse(prefix, content string) (Invocation, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return Invocation{}, false
	}

	rest := content[len(prefix):]
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	name := rest[:end]
	if name == "" {
		return Invocation{}, false
	}

	args, err := Tokenize(rest[end:])
	return Invocation{Name: name, Args: args, ParseErr: err}, true
}

// Tokenize splits s on whitespace. A token that starts with a double quote
// runs to the next unescaped double quote and may contain whitespace.
func Tokenize(s string) ([]string, error) {
	tokens := []string{}
	rs := []rune(s)

	for i := 0; i < len(rs); {
		if unicode.IsSpace(rs[i]) {
			i++
			continue
		}

		if rs[i] == '"' {
			var b strings.Builder
			closed := false
			for i++; i < len(rs); i++ {
				if rs[i] == '\\' && i+1 < len(rs) && rs[i+1] == '"' {
					b.WriteRune('"')
					i++
					continue
				}
				if rs[i] == '"' {
					closed = true
					i++
					break
				}
				b.WriteRune(rs[i])
			}
			if !closed {
				return nil, ErrUnclosedQuote
			}
			tokens = append(tokens, b.String())
			continue
		}

		start := i
		for i < len(rs) && !unicode.IsSpace(rs[i]) {
			i++
		}
		tokens = append(tokens, string(rs[start:i]))
	}

	return tokens, nil
}
