package videoquiz

// OptionLabels are the four answer labels every quiz item carries, in order.
var OptionLabels = []string{"A", "B", "C", "D"}

// QuizItem represents a single multiple-choice question with exactly four
// labeled options, the correct label, and one explanation per label.
type QuizItem struct {
	Text          string            `json:"text"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanations  map[string]string `json:"explanations"`
}

// QuizResult is the complete output for one request: at most five quiz items
// plus a short bullet-point lesson.
type QuizResult struct {
	Questions []QuizItem `json:"questions"`
	Lesson    string     `json:"lesson"`
}

// Pipeline stage names, used in errors, logs, and run telemetry.
const (
	StageExtraction    = "audio_extraction"
	StageTranscription = "transcription"
	StageSummarization = "summarization"
	StageChunking      = "chunking"
	StageQuestions     = "question_generation"
	StageQuizBuild     = "quiz_build"
	StageLesson        = "lesson"
)

// StageError marks a failure in a pipeline stage that is fatal to the whole
// request. The HTTP layer surfaces the failing stage to the caller.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + " failed: " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// QuestionSeparator is the token the question model uses to join multiple
// questions inside a single raw output.
const QuestionSeparator = "<sep>"
