package videoquiz

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// NewChatClient builds a chat-completion client for the configured endpoint.
// Any OpenAI-compatible service works; the base URL comes from config.
func NewChatClient(cfg *LLMConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.ApiKey)
	if cfg.ApiUrl != "" {
		clientCfg.BaseURL = cfg.ApiUrl
	}
	return openai.NewClientWithConfig(clientCfg)
}

// extractJSON strips markdown code fences some models wrap around JSON output.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx != -1 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}
