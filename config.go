package videoquiz

import (
	"fmt"
	"os"
	"strconv"
)

// LLMConfig holds the connection settings for the remote chat-completion
// service. Any OpenAI-compatible endpoint works; the defaults target Groq.
type LLMConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

// GetLLMConfig reads the chat service configuration from the environment.
// The API key is required; URL and model fall back to defaults.
func GetLLMConfig() (*LLMConfig, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY must be set")
	}
	apiUrl := os.Getenv("GROQ_URL")
	if apiUrl == "" {
		apiUrl = "https://api.groq.com/openai/v1"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &LLMConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}

// WhisperConfig holds the base URL of the whisper ASR webservice.
type WhisperConfig struct {
	ApiUrl string
}

func GetWhisperConfig() (*WhisperConfig, error) {
	apiUrl := os.Getenv("WHISPER_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("WHISPER_API_URL must be set")
	}
	return &WhisperConfig{ApiUrl: apiUrl}, nil
}

// PipelineConfig carries the tunable bounds of the quiz pipeline.
type PipelineConfig struct {
	SummaryMaxLength  int // word bound passed to the summarizer
	ChunkTokenBudget  int // max words per chunk
	QuestionsPerChunk int // questions requested per chunk
	MaxQuestions      int // cap on the final quiz
}

// DefaultPipelineConfig returns the standard pipeline bounds, each
// overridable through the environment.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		SummaryMaxLength:  envInt("SUMMARY_MAX_LENGTH", 300),
		ChunkTokenBudget:  envInt("CHUNK_TOKEN_BUDGET", 150),
		QuestionsPerChunk: envInt("QUESTIONS_PER_CHUNK", 2),
		MaxQuestions:      envInt("MAX_QUESTIONS", 5),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		Log.WithField("var", key).Warnf("Ignoring non-integer value %q", raw)
		return fallback
	}
	return val
}
