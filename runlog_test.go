package videoquiz

import (
	"testing"
	"time"
)

func TestRunLogRoundTrip(t *testing.T) {
	runs, err := OpenRunLog(":memory:")
	if err != nil {
		t.Fatalf("Failed to open run log: %v", err)
	}
	defer runs.Close()

	if err := runs.StartRun("run-1", "video.mp4"); err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	if err := runs.RecordStage("run-1", StageTranscription, "ok", "1234 chars", 250*time.Millisecond); err != nil {
		t.Fatalf("RecordStage failed: %v", err)
	}
	if err := runs.RecordStage("run-1", StageQuizBuild, "fallback", "2 items", 10*time.Millisecond); err != nil {
		t.Fatalf("RecordStage failed: %v", err)
	}
	if err := runs.FinishRun("run-1", "done", ""); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	list, err := runs.GetRuns(10)
	if err != nil {
		t.Fatalf("GetRuns failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(list))
	}
	if list[0].ID != "run-1" || list[0].Status != "done" {
		t.Errorf("Run record mangled: %+v", list[0])
	}

	stages, err := runs.GetRunStages("run-1")
	if err != nil {
		t.Fatalf("GetRunStages failed: %v", err)
	}
	if len(stages) != 2 {
		t.Fatalf("Expected 2 stages, got %d", len(stages))
	}
	if stages[0].Stage != StageTranscription || stages[0].DurationMs != 250 {
		t.Errorf("Stage record mangled: %+v", stages[0])
	}
	if stages[1].Status != "fallback" {
		t.Errorf("Expected fallback status, got %q", stages[1].Status)
	}
}

func TestRunLogFailedRun(t *testing.T) {
	runs, err := OpenRunLog(":memory:")
	if err != nil {
		t.Fatalf("Failed to open run log: %v", err)
	}
	defer runs.Close()

	if err := runs.StartRun("run-2", "broken.mp4"); err != nil {
		t.Fatalf("StartRun failed: %v", err)
	}
	if err := runs.FinishRun("run-2", "failed", StageTranscription); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	list, err := runs.GetRuns(0)
	if err != nil {
		t.Fatalf("GetRuns failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(list))
	}
	if list[0].Status != "failed" || list[0].Error != StageTranscription {
		t.Errorf("Failed run record mangled: %+v", list[0])
	}
}
