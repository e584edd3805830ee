package videoquiz

import (
	"context"
	"net/http"
	"testing"
)

const mcqTestContext = "The solar system contains eight planets. " +
	"Jupiter is by far the largest of them all. " +
	"Mercury orbits closest to the burning sun. " +
	"Neptune is the most distant known planet. " +
	"Earth is the only planet known to host life."

func checkQuizItem(t *testing.T, item QuizItem) {
	t.Helper()
	checkItemShape(t, item.Options, item.CorrectAnswer, item.Explanations)
}

func TestSynthesizeValidRemoteResponse(t *testing.T) {
	payload := `{
		"question": "How many planets are there?",
		"options": {"A": "Six", "B": "Seven", "C": "Eight", "D": "Nine"},
		"answer": "C",
		"explanations": {"A": "Too few.", "B": "Too few.", "C": "Correct count.", "D": "Too many."}
	}`
	calls := 0
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatResponse(t, payload))
	})

	maker := NewMCQMaker(client, "test-model")
	item := maker.Synthesize(context.Background(), "How many planets are there?", mcqTestContext, nil)

	checkQuizItem(t, item)
	if calls != 1 {
		t.Errorf("Expected a single remote call, got %d", calls)
	}
	if item.Text != "How many planets are there?" {
		t.Errorf("Question text mangled: %q", item.Text)
	}
	if item.CorrectAnswer != "C" {
		t.Errorf("Expected answer C, got %q", item.CorrectAnswer)
	}
	if item.Options["C"] != "Eight" {
		t.Errorf("Option C mangled: %q", item.Options["C"])
	}
}

func TestSynthesizeAcceptsFencedJSON(t *testing.T) {
	payload := "```json\n{\"question\": \"Q?\", " +
		"\"options\": {\"A\": \"1\", \"B\": \"2\", \"C\": \"3\", \"D\": \"4\"}, " +
		"\"answer\": \"A\", " +
		"\"explanations\": {\"A\": \"a\", \"B\": \"b\", \"C\": \"c\", \"D\": \"d\"}}\n```"
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatResponse(t, payload))
	})

	item := NewMCQMaker(client, "test-model").Synthesize(context.Background(), "Q?", mcqTestContext, nil)
	checkQuizItem(t, item)
	if item.CorrectAnswer != "A" {
		t.Errorf("Expected answer A, got %q", item.CorrectAnswer)
	}
}

func TestSynthesizeMalformedJSONFallsBack(t *testing.T) {
	calls := 0
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatResponse(t, "this is not JSON at all"))
	})

	maker := NewMCQMaker(client, "test-model")
	item := maker.Synthesize(context.Background(), "Why?", mcqTestContext, nil)

	if calls != mcqAttempts {
		t.Errorf("Expected %d attempts before fallback, got %d", mcqAttempts, calls)
	}
	checkQuizItem(t, item)
	if item.Text != "Why?" {
		t.Errorf("Question text mangled: %q", item.Text)
	}
}

func TestSynthesizeInvalidShapeFallsBack(t *testing.T) {
	// Valid JSON, but only three options: must be discarded and retried.
	payload := `{
		"question": "Q?",
		"options": {"A": "1", "B": "2", "C": "3"},
		"answer": "A",
		"explanations": {"A": "a", "B": "b", "C": "c", "D": "d"}
	}`
	calls := 0
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatResponse(t, payload))
	})

	item := NewMCQMaker(client, "test-model").Synthesize(context.Background(), "Q?", mcqTestContext, nil)
	if calls != mcqAttempts {
		t.Errorf("Expected %d attempts, got %d", mcqAttempts, calls)
	}
	checkQuizItem(t, item)
}

func TestSynthesizeAnswerOutsideOptionsFallsBack(t *testing.T) {
	payload := `{
		"question": "Q?",
		"options": {"A": "1", "B": "2", "C": "3", "D": "4"},
		"answer": "E",
		"explanations": {"A": "a", "B": "b", "C": "c", "D": "d"}
	}`
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatResponse(t, payload))
	})

	item := NewMCQMaker(client, "test-model").Synthesize(context.Background(), "Q?", mcqTestContext, nil)
	checkQuizItem(t, item)
}

func TestSynthesizeServerErrorEmptyContext(t *testing.T) {
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	item := NewMCQMaker(client, "test-model").Synthesize(context.Background(), "Q?", "", nil)
	checkQuizItem(t, item)
	for _, label := range OptionLabels {
		if item.Options[label] != "N/A" {
			t.Errorf("Empty context must yield placeholder option for %s, got %q", label, item.Options[label])
		}
	}
}
