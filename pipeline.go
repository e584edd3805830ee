package videoquiz

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuizPipeline sequences one request from uploaded media file to QuizResult.
// It owns the request's temporary artifacts: the media file passed to
// GenerateQuiz and any extracted audio are removed on every exit path.
type QuizPipeline struct {
	extractor   AudioExtractor
	transcriber TranscriptSource
	summarizer  Summarizer
	questions   *QuestionMaker
	mcq         MCQSynthesizer
	lessons     LessonSource
	cfg         PipelineConfig

	runs       *RunLog
	llmLogging bool
}

func NewQuizPipeline(
	extractor AudioExtractor,
	transcriber TranscriptSource,
	summarizer Summarizer,
	questions *QuestionMaker,
	mcq MCQSynthesizer,
	lessons LessonSource,
	cfg PipelineConfig,
) *QuizPipeline {
	return &QuizPipeline{
		extractor:   extractor,
		transcriber: transcriber,
		summarizer:  summarizer,
		questions:   questions,
		mcq:         mcq,
		lessons:     lessons,
		cfg:         cfg,
	}
}

// NewDefaultPipeline assembles the production pipeline from environment
// configuration: ffmpeg extraction, whisper transcription, and the chat
// service for summaries, questions, MCQs, and lessons.
func NewDefaultPipeline() (*QuizPipeline, error) {
	llmCfg, err := GetLLMConfig()
	if err != nil {
		return nil, err
	}
	whisperCfg, err := GetWhisperConfig()
	if err != nil {
		return nil, err
	}

	client := NewChatClient(llmCfg)
	return NewQuizPipeline(
		NewFFmpegExtractor(),
		NewWhisperTranscriber(whisperCfg),
		NewLLMSummarizer(client, llmCfg.Model),
		NewQuestionMaker(NewLLMQuestionModel(client, llmCfg.Model)),
		NewMCQMaker(client, llmCfg.Model),
		NewLessonMaker(client, llmCfg.Model),
		DefaultPipelineConfig(),
	), nil
}

// SetRunLog attaches a telemetry store. A nil store disables telemetry.
func (p *QuizPipeline) SetRunLog(runs *RunLog) {
	p.runs = runs
}

// SetLLMLogging toggles the per-run LLM interaction file log.
func (p *QuizPipeline) SetLLMLogging(enabled bool) {
	p.llmLogging = enabled
}

// GenerateQuiz runs the full pipeline over one media file. Transcription and
// summarization failures are fatal and returned as *StageError; MCQ and
// lesson degradation is absorbed by fallbacks and never surfaces.
func (p *QuizPipeline) GenerateQuiz(ctx context.Context, mediaPath string) (*QuizResult, error) {
	runID := uuid.NewString()
	runLog := Log.WithField("run_id", runID)
	runLog.WithField("media_file", mediaPath).Info("Starting quiz pipeline")

	var llmLog *LLMLogger
	if p.llmLogging {
		var err error
		llmLog, err = NewLLMLogger(runID, mediaPath)
		if err != nil {
			runLog.WithError(err).Warn("Continuing without LLM interaction log")
			llmLog = nil
		} else {
			defer llmLog.Close()
		}
	}

	if p.runs != nil {
		if err := p.runs.StartRun(runID, mediaPath); err != nil {
			runLog.WithError(err).Warn("Failed to record run start")
		}
	}

	// The uploaded file is always removed; the audio artifact only if it was
	// actually created. This covers success, stage failures, and panics.
	audioPath := ""
	defer func() {
		if err := os.Remove(mediaPath); err != nil && !os.IsNotExist(err) {
			runLog.WithError(err).Warn("Failed to remove uploaded file")
		}
		if audioPath != "" {
			if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
				runLog.WithError(err).Warn("Failed to remove extracted audio")
			}
		}
	}()

	record := func(stage, status, detail string, start time.Time) {
		if p.runs == nil {
			return
		}
		if err := p.runs.RecordStage(runID, stage, status, detail, time.Since(start)); err != nil {
			runLog.WithError(err).Warn("Failed to record stage")
		}
	}
	fail := func(stage string, start time.Time, err error) error {
		record(stage, "failed", err.Error(), start)
		if p.runs != nil {
			if ferr := p.runs.FinishRun(runID, "failed", stage); ferr != nil {
				runLog.WithError(ferr).Warn("Failed to record run finish")
			}
		}
		runLog.WithField("stage", stage).WithError(err).Error("Pipeline failed")
		return &StageError{Stage: stage, Err: err}
	}

	// Extract the audio track.
	start := time.Now()
	extracted, err := p.extractor.Extract(ctx, mediaPath)
	if err != nil {
		return nil, fail(StageExtraction, start, err)
	}
	audioPath = extracted
	record(StageExtraction, "ok", audioPath, start)

	// Transcribe.
	start = time.Now()
	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fail(StageTranscription, start, err)
	}
	record(StageTranscription, "ok", fmt.Sprintf("%d chars", len(transcript)), start)

	// Summarize.
	start = time.Now()
	summary, err := p.summarizer.Summarize(ctx, transcript, p.cfg.SummaryMaxLength)
	if err != nil {
		return nil, fail(StageSummarization, start, err)
	}
	record(StageSummarization, "ok", fmt.Sprintf("%d words", wordCount(summary)), start)

	// Chunk the summary.
	start = time.Now()
	chunks := ChunkSentences(summary, p.cfg.ChunkTokenBudget)
	record(StageChunking, "ok", fmt.Sprintf("%d chunks", len(chunks)), start)

	// Collect questions per chunk, deduplicating across the whole run and
	// capping the total. Iteration stops early once the cap is reached.
	start = time.Now()
	seen := make(map[string]bool)
	var questions []string
	for _, chunk := range chunks {
		if len(questions) >= p.cfg.MaxQuestions {
			break
		}
		chunkQuestions, err := p.questions.GenerateQuestions(ctx, chunk, p.cfg.QuestionsPerChunk)
		if err != nil {
			return nil, fail(StageQuestions, start, err)
		}
		for _, q := range chunkQuestions {
			trimmed := strings.TrimSpace(q)
			if trimmed == "" || seen[trimmed] {
				continue
			}
			seen[trimmed] = true
			questions = append(questions, trimmed)
			if len(questions) >= p.cfg.MaxQuestions {
				break
			}
		}
	}
	record(StageQuestions, "ok", fmt.Sprintf("%d questions", len(questions)), start)
	if len(questions) < p.cfg.MaxQuestions {
		runLog.WithFields(map[string]interface{}{
			"questions": len(questions),
			"cap":       p.cfg.MaxQuestions,
		}).Debug("Quiz under-filled after dedup")
	}

	// Build the quiz items. The synthesizer never fails, so no error
	// handling is needed here.
	start = time.Now()
	items := make([]QuizItem, 0, len(questions))
	for _, question := range questions {
		items = append(items, p.mcq.Synthesize(ctx, question, summary, llmLog))
	}
	record(StageQuizBuild, "ok", fmt.Sprintf("%d items", len(items)), start)

	// Lesson from the summary, independent of the quiz items.
	start = time.Now()
	lesson := p.lessons.GenerateLesson(ctx, summary, llmLog)
	record(StageLesson, "ok", fmt.Sprintf("%d chars", len(lesson)), start)

	if p.runs != nil {
		if err := p.runs.FinishRun(runID, "done", ""); err != nil {
			runLog.WithError(err).Warn("Failed to record run finish")
		}
	}
	runLog.WithField("questions", len(items)).Info("Quiz pipeline complete")

	return &QuizResult{Questions: items, Lesson: lesson}, nil
}
