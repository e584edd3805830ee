package videoquiz

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LLMLogger records every LLM interaction of one pipeline run to a file.
// A nil *LLMLogger is valid everywhere and disables interaction logging.
type LLMLogger struct {
	file  *os.File
	mu    sync.Mutex
	runID string
}

// NewLLMLogger creates a new interaction logger for a specific run.
func NewLLMLogger(runID, mediaFile string) (*LLMLogger, error) {
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join("log", fmt.Sprintf("%s.log", runID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &LLMLogger{
		file:  file,
		runID: runID,
	}

	logger.Logf("=== Quiz Pipeline Log ===\n")
	logger.Logf("Run ID: %s\n", runID)
	logger.Logf("Media File: %s\n", mediaFile)
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("=========================\n\n")

	return logger, nil
}

// Logf writes a formatted log entry with timestamp.
func (ll *LLMLogger) Logf(format string, args ...interface{}) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.logLocked(format, args...)
}

func (ll *LLMLogger) logLocked(format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(ll.file, "[%s] %s", timestamp, message)
	ll.file.Sync()
}

// LogLLMRequest logs an LLM request.
func (ll *LLMLogger) LogLLMRequest(module, prompt string) {
	ll.Logf("=== LLM REQUEST (%s) ===\n", module)
	ll.Logf("Prompt:\n%s\n", prompt)
	ll.Logf("=====================\n\n")
}

// LogLLMResponse logs an LLM response.
func (ll *LLMLogger) LogLLMResponse(module, response string) {
	ll.Logf("=== LLM RESPONSE (%s) ===\n", module)
	ll.Logf("Response:\n%s\n", response)
	ll.Logf("======================\n\n")
}

// LogAttemptFailure logs one discarded remote attempt.
func (ll *LLMLogger) LogAttemptFailure(module string, attempt int, err error) {
	ll.Logf("%s attempt %d discarded: %v\n", module, attempt, err)
}

// LogFallback logs that a module replaced remote output with local fallback content.
func (ll *LLMLogger) LogFallback(module, detail string) {
	if detail != "" {
		ll.Logf("%s: FALLBACK used for %q\n", module, detail)
	} else {
		ll.Logf("%s: FALLBACK used\n", module)
	}
}

// LogStage logs the completion of a pipeline stage.
func (ll *LLMLogger) LogStage(stage, detail string) {
	ll.Logf("Stage %s: %s\n", stage, detail)
}

// Close closes the log file.
func (ll *LLMLogger) Close() error {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file != nil {
		ll.logLocked("=== Pipeline Run Complete ===\n")
		ll.logLocked("Completed: %s\n", time.Now().Format(time.RFC3339))
		ll.logLocked("=============================\n")
		return ll.file.Close()
	}
	return nil
}
