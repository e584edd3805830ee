package videoquiz

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer reduces a transcript to a bounded-length summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLength int) (string, error)
}

// LLMSummarizer delegates summarization to the chat service.
type LLMSummarizer struct {
	client *openai.Client
	model  string
}

func NewLLMSummarizer(client *openai.Client, model string) *LLMSummarizer {
	return &LLMSummarizer{client: client, model: model}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Summarize the following transcript in plain prose.\n")
	prompt.WriteString(fmt.Sprintf("Use at most %d words. Keep complete sentences and the original order of ideas.\n", maxLength))
	prompt.WriteString("Return only the summary, no preamble.\n\n")
	prompt.WriteString("Transcript:\n")
	prompt.WriteString(text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt.String(),
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from chat service")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("chat service returned an empty summary")
	}

	Log.WithField("summary_words", wordCount(summary)).Debug("Summary produced")
	return summary, nil
}
