package videoquiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	openai "github.com/sashabaranov/go-openai"
)

// mcqAttempts bounds the remote tries before the local fallback takes over.
const mcqAttempts = 3

// MCQSynthesizer produces a complete quiz item for a question and a shared
// context. Implementations never fail: degraded output is still well-formed.
type MCQSynthesizer interface {
	Synthesize(ctx context.Context, question, contextText string, logger *LLMLogger) QuizItem
}

// MCQMaker asks the chat service for options, answer, and explanations, and
// falls back to local construction when the service cannot produce a valid
// payload within the attempt bound.
type MCQMaker struct {
	client   *openai.Client
	model    string
	validate *validator.Validate
}

func NewMCQMaker(client *openai.Client, model string) *MCQMaker {
	return &MCQMaker{
		client:   client,
		model:    model,
		validate: validator.New(),
	}
}

// mcqPayload is the strict JSON shape requested from the chat service.
// len=4 plus the A-D key constraint forces the full label set, so an answer
// passing oneof is guaranteed to be a key of options.
type mcqPayload struct {
	Question     string            `json:"question"`
	Options      map[string]string `json:"options" validate:"len=4,dive,keys,oneof=A B C D,endkeys,required"`
	Answer       string            `json:"answer" validate:"required,oneof=A B C D"`
	Explanations map[string]string `json:"explanations" validate:"len=4,dive,keys,oneof=A B C D,endkeys,required"`
}

// Synthesize returns a quiz item for the question. Each failed remote
// attempt is discarded entirely; after mcqAttempts failures the local
// fallback supplies the item.
func (m *MCQMaker) Synthesize(ctx context.Context, question, contextText string, logger *LLMLogger) QuizItem {
	prompt := m.buildPrompt(question, contextText)

	for attempt := 1; attempt <= mcqAttempts; attempt++ {
		if logger != nil {
			logger.LogLLMRequest("MCQMaker", prompt)
		}

		payload, err := m.tryRemote(ctx, prompt, logger)
		if err != nil {
			Log.WithFields(map[string]interface{}{
				"attempt":  attempt,
				"question": question,
			}).WithError(err).Debug("MCQ attempt failed")
			if logger != nil {
				logger.LogAttemptFailure("MCQMaker", attempt, err)
			}
			continue
		}

		return QuizItem{
			Text:          question,
			Options:       payload.Options,
			CorrectAnswer: payload.Answer,
			Explanations:  payload.Explanations,
		}
	}

	Log.WithField("question", question).Info("All MCQ attempts failed, using fallback")
	if logger != nil {
		logger.LogFallback("MCQMaker", question)
	}

	options, correct, explanations := FallbackMCQ(question, contextText)
	return QuizItem{
		Text:          question,
		Options:       options,
		CorrectAnswer: correct,
		Explanations:  explanations,
	}
}

func (m *MCQMaker) tryRemote(ctx context.Context, prompt string, logger *LLMLogger) (*mcqPayload, error) {
	resp, err := m.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: m.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
			MaxTokens:   512,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from chat service")
	}

	content := resp.Choices[0].Message.Content
	if logger != nil {
		logger.LogLLMResponse("MCQMaker", content)
	}

	var payload mcqPayload
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		return nil, fmt.Errorf("malformed JSON in response: %w", err)
	}
	if err := m.validate.Struct(&payload); err != nil {
		return nil, fmt.Errorf("response failed validation: %w", err)
	}
	return &payload, nil
}

func (m *MCQMaker) buildPrompt(question, contextText string) string {
	var sb strings.Builder
	sb.WriteString("Given the transcript:\n")
	sb.WriteString("\"\"\"" + contextText + "\"\"\"\n\n")
	sb.WriteString("Generate one multiple-choice question:\n\n")
	sb.WriteString("Question: " + question + "\n\n")
	sb.WriteString("Return VALID JSON with:\n")
	sb.WriteString("- \"question\": string\n")
	sb.WriteString("- \"options\": {\"A\":...,\"B\":...,\"C\":...,\"D\":...}\n")
	sb.WriteString("- \"answer\": correct letter\n")
	sb.WriteString("- \"explanations\": {\"A\":...,\"B\":...,\"C\":...,\"D\":...}\n")
	return sb.String()
}
