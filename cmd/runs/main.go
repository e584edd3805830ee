package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"videoquiz"
)

func main() {
	var (
		dbPath = flag.String("db", "./runlog.db", "Path to the run telemetry database")
		limit  = flag.Int("limit", 20, "Maximum number of runs to list")
		runID  = flag.String("run", "", "Show the recorded stages of a single run")
	)

	flag.Parse()

	runs, err := videoquiz.OpenRunLog(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open run log: %v", err)
	}
	defer runs.Close()

	if *runID != "" {
		showRun(runs, *runID)
		return
	}

	list, err := runs.GetRuns(*limit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	if len(list) == 0 {
		fmt.Println("No recorded runs.")
		return
	}

	for _, run := range list {
		line := fmt.Sprintf("%s  %-7s  %s  %s",
			run.StartedAt.Format(time.RFC3339), run.Status, run.ID, run.MediaFile)
		if run.Error != "" {
			line += "  (" + run.Error + ")"
		}
		fmt.Println(line)
	}
}

func showRun(runs *videoquiz.RunLog, runID string) {
	stages, err := runs.GetRunStages(runID)
	if err != nil {
		log.Fatalf("Failed to load stages: %v", err)
	}
	if len(stages) == 0 {
		fmt.Printf("No stages recorded for run %s.\n", runID)
		return
	}

	for _, stage := range stages {
		fmt.Printf("%-20s  %-8s  %6dms  %s\n", stage.Stage, stage.Status, stage.DurationMs, stage.Detail)
	}
}
