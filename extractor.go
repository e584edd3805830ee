package videoquiz

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// AudioExtractor produces a mono 16kHz wav file from a media file. The
// returned path is a temporary artifact owned by the caller.
type AudioExtractor interface {
	Extract(ctx context.Context, mediaPath string) (string, error)
}

// FFmpegExtractor shells out to ffmpeg for the conversion.
type FFmpegExtractor struct {
	// Binary overrides the ffmpeg executable name, mainly for tests.
	Binary string
}

func NewFFmpegExtractor() *FFmpegExtractor {
	return &FFmpegExtractor{Binary: "ffmpeg"}
}

func (e *FFmpegExtractor) Extract(ctx context.Context, mediaPath string) (string, error) {
	audioPath := filepath.Join(os.TempDir(), uuid.NewString()+".wav")

	// ffmpeg -y -i <media> -vn -acodec pcm_s16le -ac 1 -ar 16000 <out>.wav
	cmd := exec.CommandContext(ctx, e.Binary,
		"-y",
		"-i", mediaPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		audioPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// ffmpeg may leave a partial output file behind on failure.
		os.Remove(audioPath)
		return "", fmt.Errorf("ffmpeg failed: %v\nStderr: %s", err, stderr.String())
	}

	Log.WithField("audio_path", audioPath).Debug("Extracted audio track")
	return audioPath, nil
}
