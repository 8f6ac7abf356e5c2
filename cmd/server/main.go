// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/services"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/telemetry"
)

func main() {
	// Pick up GEMINI_API_KEY and friends from a .env file when present.
	_ = godotenv.Load()

	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()

	// Add OpenTelemetry middleware
	r.Use(otelgin.Middleware(config.Application.Name))

	// Allow all origins for local development; the studio front end runs on
	// a different port than the API.
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		OptionsRouter(apiV1)
		GenerationRouter(apiV1, ctx)
	}

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready on port 8080")

	// Wait for an interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed:", "error", err)
	}
	state.cloud.Close()

	log.Println("Server exiting")
}

// OptionsRouter serves the tier-gated option catalogs the front end renders
// its selectors from.
func OptionsRouter(r *gin.RouterGroup) {
	options := r.Group("/options")
	{
		options.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"durations":    model.DurationOptions,
				"voices":       model.VoiceOptions,
				"visualStyles": model.VisualStyleOptions,
			})
		})
	}
}

// GenerationRouter sets up the routes for starting a run, observing its
// state, and fetching the binary artifacts once their stages complete. The
// session holds one run at a time, so the observation routes address it as
// "current" rather than by identifier.
func GenerationRouter(r *gin.RouterGroup, runCtx context.Context) {
	generations := r.Group("/generations")
	{
		generations.POST("", func(c *gin.Context) {
			req, err := parseGenerationRequest(c)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			// The run outlives this HTTP request, so it executes under the
			// server's long-lived context rather than the request context.
			runID, err := state.generationService.Start(runCtx, req)
			if err != nil {
				status := statusForError(err)
				c.JSON(status, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusAccepted, gin.H{"runId": runID})
		})

		generations.GET("/current", func(c *gin.Context) {
			c.JSON(http.StatusOK, state.generationService.Tracker().Snapshot())
		})

		generations.GET("/current/assets/:kind", func(c *gin.Context) {
			mimeType, data := assetBytes(c.Param("kind"))
			if data == nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.Data(http.StatusOK, mimeType, data)
		})
	}
}

// assetBytes resolves an asset kind against the current run's snapshot.
// Unknown kinds and stages that haven't produced their artifact yet both
// come back empty, which the handler serves as not found.
func assetBytes(kind string) (string, []byte) {
	s := state.generationService.Tracker().Snapshot()
	switch kind {
	case "audio":
		if s.Audio != nil {
			return s.Audio.MIMEType, s.Audio.Data
		}
	case "thumbnail":
		if s.Thumbnail != nil {
			return s.Thumbnail.MIMEType, s.Thumbnail.Data
		}
	case "video":
		if s.Video != nil {
			return s.Video.MIMEType, s.Video.Data
		}
	}
	return "", nil
}

// statusForError maps the service error taxonomy onto HTTP statuses: bad
// request for validation failures, payment required as the upgrade signal,
// conflict when a run is already in flight.
func statusForError(err error) int {
	var validationErr *model.ValidationError
	var upgradeErr *model.UpgradeRequiredError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &upgradeErr):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrRunInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseGenerationRequest builds a GenerationRequest from either a JSON body
// or a multipart form. Multipart is what the studio front end sends when the
// audio source is an uploaded file or a recorded clip; the binary part
// arrives alongside the scalar fields.
func parseGenerationRequest(c *gin.Context) (*model.GenerationRequest, error) {
	contentType := c.ContentType()
	if contentType != "multipart/form-data" {
		req := &model.GenerationRequest{}
		if err := c.ShouldBindJSON(req); err != nil {
			return nil, err
		}
		return req, nil
	}

	req := &model.GenerationRequest{
		Mode:             model.ScriptMode(c.PostForm("mode")),
		Topic:            c.PostForm("topic"),
		CustomScript:     c.PostForm("customScript"),
		Duration:         c.PostForm("duration"),
		VisualStyle:      c.PostForm("visualStyle"),
		AspectRatio:      model.AspectRatio(c.PostForm("aspectRatio")),
		IncludeCaptions:  c.PostForm("includeCaptions") == "true",
		IncludeThumbnail: c.PostForm("includeThumbnail") == "true",
		AudioSource:      model.AudioSource(c.PostForm("audioSource")),
		VoiceName:        c.PostForm("voiceName"),
		Tier:             model.UserTier(c.PostForm("tier")),
	}

	if data, err := formFileBytes(c, "audioUpload"); err == nil {
		req.AudioUpload = data
	}
	if data, err := formFileBytes(c, "recording"); err == nil {
		req.Recording = data
	}
	return req, nil
}

// formFileBytes reads one named multipart file fully into memory.
func formFileBytes(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close uploaded file: %v\n", err)
		}
	}()
	return io.ReadAll(f)
}
