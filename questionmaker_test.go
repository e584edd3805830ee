package videoquiz

import (
	"context"
	"errors"
	"testing"
)

// stubQuestionModel returns canned raw outputs or an error.
type stubQuestionModel struct {
	outputs []string
	err     error
	calls   int
}

func (s *stubQuestionModel) GenerateRaw(ctx context.Context, text string, count int) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.outputs, nil
}

func TestGenerateQuestionsSplitsAndDedupes(t *testing.T) {
	model := &stubQuestionModel{outputs: []string{
		"What are cats? <sep> What are dogs?",
		"What are cats? <sep>  <sep> What are dogs?",
	}}
	maker := NewQuestionMaker(model)

	questions, err := maker.GenerateQuestions(context.Background(), "some chunk", 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{"What are cats?", "What are dogs?"}
	if len(questions) != len(want) {
		t.Fatalf("Expected %d questions, got %d: %v", len(want), len(questions), questions)
	}
	for i, q := range questions {
		if q != want[i] {
			t.Errorf("Question %d: expected %q, got %q", i, want[i], q)
		}
	}
	if model.calls != 1 {
		t.Errorf("Capability should be called exactly once, got %d calls", model.calls)
	}
}

func TestGenerateQuestionsPreservesFirstSeenOrder(t *testing.T) {
	model := &stubQuestionModel{outputs: []string{
		"Q3?<sep>Q1?<sep>Q2?",
		"Q1?<sep>Q3?",
	}}
	maker := NewQuestionMaker(model)

	questions, err := maker.GenerateQuestions(context.Background(), "chunk", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{"Q3?", "Q1?", "Q2?"}
	for i, q := range questions {
		if q != want[i] {
			t.Errorf("Position %d: expected %q, got %q", i, want[i], q)
		}
	}
}

func TestGenerateQuestionsTruncatesToCount(t *testing.T) {
	model := &stubQuestionModel{outputs: []string{"A?<sep>B?<sep>C?<sep>D?"}}
	maker := NewQuestionMaker(model)

	questions, err := maker.GenerateQuestions(context.Background(), "chunk", 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions after truncation, got %d", len(questions))
	}
	if questions[0] != "A?" || questions[1] != "B?" {
		t.Errorf("Truncation changed order: %v", questions)
	}
}

func TestGenerateQuestionsPropagatesFailure(t *testing.T) {
	model := &stubQuestionModel{err: errors.New("model unavailable")}
	maker := NewQuestionMaker(model)

	_, err := maker.GenerateQuestions(context.Background(), "chunk", 2)
	if err == nil {
		t.Fatal("Expected capability failure to propagate")
	}
}
