package videoquiz

import (
	"math/rand"
	"strings"
)

const fallbackMinSentenceLen = 20

// FallbackMCQ builds a quiz item locally when the remote service is
// unusable. Candidate options are context sentences longer than 20
// characters; if fewer than four exist, fixed 5-word windows of the context;
// if still fewer than four, a degenerate all-"N/A" item. The result always
// satisfies the quiz item invariants and construction never fails.
func FallbackMCQ(question, contextText string) (options map[string]string, correct string, explanations map[string]string) {
	candidates := fallbackCandidates(contextText)

	options = make(map[string]string, len(OptionLabels))
	if len(candidates) < len(OptionLabels) {
		for _, label := range OptionLabels {
			options[label] = "N/A"
		}
	} else {
		picks := rand.Perm(len(candidates))[:len(OptionLabels)]
		for i, label := range OptionLabels {
			options[label] = candidates[picks[i]]
		}
	}

	correct = OptionLabels[rand.Intn(len(OptionLabels))]

	explanations = make(map[string]string, len(OptionLabels))
	for _, label := range OptionLabels {
		if label == correct {
			explanations[label] = "Correct: matches \"" + question + "\"."
		} else {
			explanations[label] = "Incorrect: does not answer \"" + question + "\"."
		}
	}
	return options, correct, explanations
}

func fallbackCandidates(contextText string) []string {
	var candidates []string
	for _, sent := range SplitSentences(contextText) {
		if len(sent) > fallbackMinSentenceLen {
			candidates = append(candidates, sent)
		}
	}
	if len(candidates) >= len(OptionLabels) {
		return candidates
	}

	// Too few usable sentences: re-segment into fixed 5-word windows.
	words := strings.Fields(contextText)
	candidates = candidates[:0]
	for i := 0; i < len(words); i += 5 {
		end := i + 5
		if end > len(words) {
			end = len(words)
		}
		candidates = append(candidates, strings.Join(words[i:end], " "))
	}
	return candidates
}
