package videoquiz

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestGenerateLessonSuccess(t *testing.T) {
	lesson := "- Be kind.\n- Share your toys.\n- Tell the truth."
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatResponse(t, lesson))
	})

	got := NewLessonMaker(client, "test-model").GenerateLesson(context.Background(), "A story.", nil)
	if got != lesson {
		t.Errorf("Expected lesson %q, got %q", lesson, got)
	}
}

func TestGenerateLessonAllAttemptsFail(t *testing.T) {
	calls := 0
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	got := NewLessonMaker(client, "test-model").GenerateLesson(context.Background(), "A story.", nil)
	if calls != lessonAttempts {
		t.Errorf("Expected %d attempts, got %d", lessonAttempts, calls)
	}
	if got != FallbackLesson {
		t.Errorf("Expected fixed fallback lesson, got %q", got)
	}
	if lines := strings.Split(got, "\n"); len(lines) != 3 {
		t.Errorf("Fallback lesson should have 3 bullet lines, got %d", len(lines))
	}
}

func TestGenerateLessonEmptyResponsesRetried(t *testing.T) {
	calls := 0
	client := newTestChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		content := "   "
		if calls == 3 {
			content = "- Only the third try worked."
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatResponse(t, content))
	})

	got := NewLessonMaker(client, "test-model").GenerateLesson(context.Background(), "A story.", nil)
	if calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
	if got != "- Only the third try worked." {
		t.Errorf("Expected third attempt's lesson, got %q", got)
	}
}
