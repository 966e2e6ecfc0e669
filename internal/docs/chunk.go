package docs

import "strings"

const (
	// chunkWords is the target chunk size in words.
	chunkWords = 200
	// overlapWords is how many trailing words carry into the next chunk
	// so sentences split across a boundary stay findable.
	overlapWords = 40
)

// splitChunks breaks document text into overlapping word-window chunks.
func splitChunks(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= chunkWords {
		return []string{strings.Join(words, " ")}
	}

	var chunks []string
	step := chunkWords - overlapWords
	for start := 0; start < len(words); start += step {
		end := start + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

// snippet returns the leading portion of a chunk for display.
func snippet(content string, max int) string {
	content = strings.TrimSpace(content)
	if len(content) <= max {
		return content
	}
	cut := content[:max]
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}
