package videoquiz

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const lessonAttempts = 3

// FallbackLesson is returned when every remote lesson attempt fails.
const FallbackLesson = "- Always speak up if harmed.\n- Kindness helps everyone.\n- Asking for help is brave."

// LessonSource produces short bullet-point lesson text from a context.
// Implementations never fail; degraded output is a fixed constant.
type LessonSource interface {
	GenerateLesson(ctx context.Context, contextText string, logger *LLMLogger) string
}

// LessonMaker asks the chat service for three child-appropriate bullet
// lessons, retrying up to lessonAttempts before returning FallbackLesson.
type LessonMaker struct {
	client *openai.Client
	model  string
}

func NewLessonMaker(client *openai.Client, model string) *LessonMaker {
	return &LessonMaker{client: client, model: model}
}

func (lm *LessonMaker) GenerateLesson(ctx context.Context, contextText string, logger *LLMLogger) string {
	var sb strings.Builder
	sb.WriteString("Given the story transcript:\n")
	sb.WriteString("\"\"\"" + contextText + "\"\"\"\n\n")
	sb.WriteString("Write 3 simple bullet-point lessons for kids aged 9-12.\n")
	sb.WriteString("Return only bullets, each on its own line.\n")
	prompt := sb.String()

	for attempt := 1; attempt <= lessonAttempts; attempt++ {
		if logger != nil {
			logger.LogLLMRequest("LessonMaker", prompt)
		}

		resp, err := lm.client.CreateChatCompletion(
			ctx,
			openai.ChatCompletionRequest{
				Model: lm.model,
				Messages: []openai.ChatCompletionMessage{
					{
						Role:    openai.ChatMessageRoleUser,
						Content: prompt,
					},
				},
				Temperature: 0.7,
				MaxTokens:   200,
			},
		)
		if err != nil {
			Log.WithField("attempt", attempt).WithError(err).Debug("Lesson attempt failed")
			if logger != nil {
				logger.LogAttemptFailure("LessonMaker", attempt, err)
			}
			continue
		}
		if len(resp.Choices) == 0 {
			continue
		}

		text := strings.TrimSpace(resp.Choices[0].Message.Content)
		if logger != nil {
			logger.LogLLMResponse("LessonMaker", text)
		}
		if text != "" {
			return text
		}
	}

	Log.Info("All lesson attempts failed, using fallback")
	if logger != nil {
		logger.LogFallback("LessonMaker", "")
	}
	return FallbackLesson
}
