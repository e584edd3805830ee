package videoquiz

import (
	"strings"
	"unicode"
)

// SplitSentences splits text on sentence-terminal punctuation (. ! ?),
// keeping the punctuation attached to its sentence. A terminator only closes
// a sentence when followed by whitespace or end of input, so abbreviations
// like "3.5" stay intact.
func SplitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		cur.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(cur.String()); s != "" {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ChunkSentences accumulates sentences into segments of at most maxTokens
// words. Sentences are never split: a single sentence longer than the budget
// is emitted as its own segment. Empty input yields no segments.
func ChunkSentences(text string, maxTokens int) []string {
	var chunks []string
	cur := ""
	for _, sent := range SplitSentences(text) {
		if cur != "" && wordCount(cur)+wordCount(sent) > maxTokens {
			chunks = append(chunks, cur)
			cur = sent
			continue
		}
		if cur == "" {
			cur = sent
		} else {
			cur = cur + " " + sent
		}
	}
	if cur != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
