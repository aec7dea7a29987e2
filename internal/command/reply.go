package command

import (
	"context"
	"strings"
)

const colorBlue = 0x3498db

// Reply is the single response rendered for an invocation.
type Reply struct {
	Content string
	Embed   *Embed
}

type Embed struct {
	Title  string
	Color  int
	Fields []EmbedField
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Sender delivers a reply to the channel the command came from.
type Sender interface {
	Send(ctx context.Context, channelID string, reply Reply) error
}

// Text flattens the reply for transports without rich embeds.
func (r Reply) Text() string {
	if r.Embed == nil {
		return r.Content
	}

	var b strings.Builder
	if r.Content != "" {
		b.WriteString(r.Content)
		b.WriteString("\n\n")
	}
	b.WriteString("**" + r.Embed.Title + "**\n")
	for _, f := range r.Embed.Fields {
		b.WriteString("\n__" + f.Name + "__\n")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
