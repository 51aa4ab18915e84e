package ingest

import "strings"

// ChunkText splits text into chunks of at most maxWords words. Whitespace
// runs collapse to single spaces; empty input yields no chunks.
func ChunkText(text string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = defaultChunkWords
	}

	words := strings.Fields(text)
	var chunks []string
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
