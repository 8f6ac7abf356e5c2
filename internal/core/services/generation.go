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

// Package services contains the business logic of the generation pipeline.
// This file, `generation.go`, defines the GenerationService: the orchestrator
// that validates incoming requests, enforces single-flight per session, and
// drives the workflow chain in a background goroutine while the tracker
// exposes progress to concurrent readers.
//
// Validation is strictly pre-flight. Every check here runs before any
// network call, so a refused request costs nothing: no model invocation, no
// quota, no partial state.
package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/commands"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/workflow"
)

// ErrRunInFlight is returned by Start when the session already has a
// non-terminal run. The HTTP layer maps it to a conflict response.
var ErrRunInFlight = errors.New("a generation run is already in progress")

// GenerationService orchestrates generation runs for one session: it
// validates requests, guards against concurrent runs, and executes the
// workflow asynchronously against the session's tracker.
type GenerationService struct {
	mu      sync.Mutex // Serializes the in-flight check against Begin.
	gateway commands.Gateway
	tracker *StateTracker
}

// NewGenerationService creates the orchestrator for a session.
//
// Inputs:
//   - gateway: The remote-model boundary the workflow stages call.
//   - tracker: The session's state tracker.
//
// Outputs:
//   - *GenerationService: A pointer to the newly instantiated service.
func NewGenerationService(gateway commands.Gateway, tracker *StateTracker) *GenerationService {
	return &GenerationService{gateway: gateway, tracker: tracker}
}

// Tracker exposes the session's state tracker for read access.
func (s *GenerationService) Tracker() *StateTracker {
	return s.tracker
}

// Validate runs every pre-flight check against the request. It returns nil
// when the run may start, a *model.ValidationError when the request is
// incoherent, or a *model.UpgradeRequiredError when a free-tier request
// selects a tier-gated option.
func (s *GenerationService) Validate(req *model.GenerationRequest) error {
	// The content field for the selected script mode must be present.
	switch req.Mode {
	case model.ScriptModeAuto:
		if len(req.Topic) == 0 {
			return &model.ValidationError{Field: "topic", Message: "a topic is required to generate a script"}
		}
	case model.ScriptModeCustom:
		if len(req.CustomScript) == 0 {
			return &model.ValidationError{Field: "customScript", Message: "a script is required in custom mode"}
		}
	default:
		return &model.ValidationError{Field: "mode", Message: "unknown script mode"}
	}

	// The selected audio source's required input must be present.
	switch req.AudioSource {
	case model.AudioSourceAI:
		if len(req.VoiceName) == 0 {
			return &model.ValidationError{Field: "voiceName", Message: "a voice is required for AI narration"}
		}
		// The catalog's custom-voice marker is a selection, not a voice:
		// the request must carry the actual voice name in its place.
		if req.VoiceName == model.VoiceCustom {
			return &model.ValidationError{Field: "voiceName", Message: "a custom voice name is required"}
		}
	case model.AudioSourceFile:
		if len(req.AudioUpload) == 0 {
			return &model.ValidationError{Field: "audioUpload", Message: "an audio file is required for the file source"}
		}
	case model.AudioSourceRecord:
		if len(req.Recording) == 0 {
			return &model.ValidationError{Field: "recording", Message: "a recorded clip is required for the record source"}
		}
	default:
		return &model.ValidationError{Field: "audioSource", Message: "unknown audio source"}
	}

	// Tier gating: restricted catalog selections refuse the run with an
	// upgrade signal rather than a validation failure.
	if req.Tier != model.TierPro {
		if model.IsRestricted(model.DurationOptions, req.Duration) {
			return &model.UpgradeRequiredError{Option: req.Duration}
		}
		if model.IsRestricted(model.VisualStyleOptions, req.VisualStyle) {
			return &model.UpgradeRequiredError{Option: req.VisualStyle}
		}
		if req.AudioSource == model.AudioSourceAI && voiceRestricted(req.VoiceName) {
			return &model.UpgradeRequiredError{Option: req.VoiceName}
		}
	}

	return nil
}

// voiceRestricted reports whether a voice selection is tier-gated. A voice
// name absent from the catalog is a custom voice, and custom voices are
// gated by the catalog's custom-voice entry.
func voiceRestricted(name string) bool {
	if _, ok := model.FindOption(model.VoiceOptions, name); !ok {
		return model.IsRestricted(model.VoiceOptions, model.VoiceCustom)
	}
	return model.IsRestricted(model.VoiceOptions, name)
}

// Start validates the request and, if the session has no run in flight,
// launches the workflow in a background goroutine. It returns the new run's
// identifier immediately; progress is observed through the tracker.
//
// Inputs:
//   - ctx: The long-lived context the run executes under. Canceling it
//     aborts the run at the next remote call or poll.
//   - req: The generation request.
//
// Outputs:
//   - string: The run identifier, empty on refusal.
//   - error: A validation, upgrade or in-flight error; nil when started.
func (s *GenerationService) Start(ctx context.Context, req *model.GenerationRequest) (string, error) {
	if err := s.Validate(req); err != nil {
		return "", err
	}

	s.mu.Lock()
	if status := s.tracker.Snapshot().Status; status != model.StatusIdle && !status.Terminal() {
		s.mu.Unlock()
		return "", ErrRunInFlight
	}
	runID := uuid.New().String()
	s.tracker.Begin(runID)
	s.mu.Unlock()

	pipeline := workflow.NewShortsGenerationPipeline(s.gateway, s.tracker, req)

	go func() {
		chainCtx := cor.NewBaseContext()
		chainCtx.SetContext(ctx)

		pipeline.Execute(chainCtx)

		if chainCtx.HasErrors() {
			for name, err := range chainCtx.GetErrors() {
				slog.Error("generation run failed",
					slog.String("run_id", runID),
					slog.String("command", name),
					slog.String("error", err.Error()))
				s.tracker.Fail(err.Error())
				break
			}
			return
		}

		s.tracker.Complete()
		slog.Info("generation run complete", slog.String("run_id", runID))
	}()

	return runID, nil
}
