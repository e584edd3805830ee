package videoquiz

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// QuestionModel is the external question-generation capability. It returns
// raw text outputs; each output may contain several questions joined by
// QuestionSeparator.
type QuestionModel interface {
	GenerateRaw(ctx context.Context, text string, count int) ([]string, error)
}

// QuestionMaker turns raw model output into a deduplicated, ordered list of
// question strings.
type QuestionMaker struct {
	model QuestionModel
}

func NewQuestionMaker(model QuestionModel) *QuestionMaker {
	return &QuestionMaker{model: model}
}

// GenerateQuestions calls the capability once and normalizes its output:
// split on the separator, trim, drop empties, dedupe preserving first-seen
// order, and truncate to count. A capability failure is propagated.
func (qm *QuestionMaker) GenerateQuestions(ctx context.Context, text string, count int) ([]string, error) {
	raw, err := qm.model.GenerateRaw(ctx, text, count)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	seen := make(map[string]bool)
	var questions []string
	for _, output := range raw {
		for _, piece := range strings.Split(output, QuestionSeparator) {
			q := strings.TrimSpace(piece)
			if q == "" || seen[q] {
				continue
			}
			seen[q] = true
			questions = append(questions, q)
		}
	}

	if len(questions) > count {
		questions = questions[:count]
	}

	Log.WithFields(map[string]interface{}{
		"raw_outputs": len(raw),
		"questions":   len(questions),
	}).Debug("Questions generated")

	return questions, nil
}

// LLMQuestionModel backs the question capability with the chat service.
type LLMQuestionModel struct {
	client *openai.Client
	model  string
}

func NewLLMQuestionModel(client *openai.Client, model string) *LLMQuestionModel {
	return &LLMQuestionModel{client: client, model: model}
}

func (m *LLMQuestionModel) GenerateRaw(ctx context.Context, text string, count int) ([]string, error) {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("Generate %d short quiz questions about the following text.\n", count))
	prompt.WriteString(fmt.Sprintf("Join the questions with the token %s on a single line.\n", QuestionSeparator))
	prompt.WriteString("Return only the questions, nothing else.\n\n")
	prompt.WriteString("Text:\n")
	prompt.WriteString(text)

	resp, err := m.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: m.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt.String(),
				},
			},
			Temperature: 0.7,
		},
	)
	if err != nil {
		return nil, err
	}

	outputs := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		outputs = append(outputs, choice.Message.Content)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("no response from chat service")
	}
	return outputs, nil
}
