package videoquiz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// TranscriptSource turns a local audio file into plain text.
type TranscriptSource interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperTranscriber calls a whisper ASR webservice over HTTP.
type WhisperTranscriber struct {
	apiUrl string
	client *http.Client
}

func NewWhisperTranscriber(cfg *WhisperConfig) *WhisperTranscriber {
	return &WhisperTranscriber{
		apiUrl: strings.TrimSuffix(cfg.ApiUrl, "/"),
		client: &http.Client{},
	}
}

// whisperResponse is the subset of the ASR response the pipeline uses.
type whisperResponse struct {
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio_file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		w.apiUrl+"/asr?output=json", strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("failed to create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcription service returned %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", fmt.Errorf("transcription service returned empty text")
	}

	Log.WithFields(map[string]interface{}{
		"language": parsed.Language,
		"duration": parsed.Duration,
		"chars":    len(text),
	}).Debug("Transcription complete")

	return text, nil
}
