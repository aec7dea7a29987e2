package gateway

import "strings"

// Discord rejects messages longer than this many characters.
const maxMessageLength = 2000

// splitMessage breaks content into chunks of at most limit runes, preferring
// line boundaries.
func splitMessage(content string, limit int) []string {
	if content == "" {
		return nil
	}

	var (
		chunks []string
		b      strings.Builder
		size   int
	)
	flush := func() {
		if size > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
			size = 0
		}
	}

	for _, line := range strings.SplitAfter(content, "\n") {
		runes := []rune(line)
		if size+len(runes) > limit {
			flush()
		}
		for len(runes) > limit {
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		b.WriteString(string(runes))
		size += len(runes)
	}
	flush()

	return chunks
}
