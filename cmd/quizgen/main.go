package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"videoquiz"
)

func main() {
	var (
		mediaFile  = flag.String("file", "", "Path to the media file (required)")
		outputFile = flag.String("output", "", "Output file for quiz JSON (default: stdout)")
		runLogPath = flag.String("runlog", "", "Path to the run telemetry database (default: disabled)")
		timeout    = flag.Duration("timeout", 10*time.Minute, "Overall pipeline timeout")
		verbose    = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	videoquiz.SetVerbose(*verbose)

	if *mediaFile == "" {
		log.Fatal("Media file is required. Use -file flag.")
	}
	if _, err := os.Stat(*mediaFile); err != nil {
		log.Fatalf("Cannot read media file: %v", err)
	}

	pipeline, err := videoquiz.NewDefaultPipeline()
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}
	pipeline.SetLLMLogging(*verbose)

	if *runLogPath != "" {
		runs, err := videoquiz.OpenRunLog(*runLogPath)
		if err != nil {
			log.Fatalf("Failed to open run log: %v", err)
		}
		defer runs.Close()
		pipeline.SetRunLog(runs)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := pipeline.GenerateQuiz(ctx, *mediaFile)
	if err != nil {
		log.Fatalf("Failed to generate quiz: %v", err)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal quiz: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}
