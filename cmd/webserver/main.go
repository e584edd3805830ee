package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"videoquiz"
)

const requestTimeout = 10 * time.Minute

func main() {
	videoquiz.SetVerbose(os.Getenv("VERBOSE") == "1")

	pipeline, err := videoquiz.NewDefaultPipeline()
	if err != nil {
		videoquiz.Log.WithError(err).Fatal("Failed to build pipeline")
	}
	pipeline.SetLLMLogging(true)

	runLogPath := os.Getenv("RUNLOG_DB")
	if runLogPath == "" {
		runLogPath = "./runlog.db"
	}
	runs, err := videoquiz.OpenRunLog(runLogPath)
	if err != nil {
		videoquiz.Log.WithError(err).Warn("Continuing without run telemetry")
	} else {
		defer runs.Close()
		pipeline.SetRunLog(runs)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 512 * 1024 * 1024, // uploaded videos can be large
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "quiz service is healthy",
		})
	})

	app.Post("/api/quiz", func(c *fiber.Ctx) error {
		file, err := c.FormFile("file")
		if err != nil {
			videoquiz.Log.WithError(err).Error("Missing upload file")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": fmt.Sprintf("Error getting file: %v", err),
			})
		}

		// The pipeline owns this temp file from here on and removes it on
		// every exit path.
		mediaPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
		if err := c.SaveFile(file, mediaPath); err != nil {
			videoquiz.Log.WithError(err).Error("Failed to save upload")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": fmt.Sprintf("Error saving file: %v", err),
			})
		}

		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()

		result, err := pipeline.GenerateQuiz(ctx, mediaPath)
		if err != nil {
			var stageErr *videoquiz.StageError
			if errors.As(err, &stageErr) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"status":  "error",
					"message": fmt.Sprintf("%s error: %v", stageErr.Stage, stageErr.Err),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
			})
		}

		return c.Status(fiber.StatusOK).JSON(result)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	host := os.Getenv("HOST")

	videoquiz.Log.Infof("Starting quiz service on %s:%s", host, port)
	if err := app.Listen(host + ":" + port); err != nil {
		videoquiz.Log.WithError(err).Fatal("Server stopped")
	}
}
