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

// Package model defines the core data structures for the application.
// This file contains the run-scoped pipeline state: the status enum that
// drives the orchestrator's state machine and the PipelineState aggregate
// that accumulates stage outputs as the run progresses.
package model

// GenerationStatus is the orchestrator's state machine position for one run.
//
//	IDLE → GENERATING_SCRIPT → GENERATING_ASSETS → COMPLETE
//
// ERROR is reachable from either generating state. COMPLETE and ERROR are
// terminal; a new run replaces the state wholesale.
type GenerationStatus string

const (
	StatusIdle             GenerationStatus = "idle"
	StatusGeneratingScript GenerationStatus = "generating_script"
	StatusGeneratingAssets GenerationStatus = "generating_assets"
	StatusComplete         GenerationStatus = "complete"
	StatusError            GenerationStatus = "error"
)

// Terminal reports whether the status ends the run.
func (s GenerationStatus) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// PipelineState is the mutable aggregate for one pipeline run. The state
// tracker (services.StateTracker) owns it exclusively for the duration of the
// run; everything else sees value-copy snapshots. Artifact pointers are
// nil until their stage succeeds, and artifacts already merged stay visible
// after a later stage fails. There is no rollback.
type PipelineState struct {
	RunID     string             `json:"runId"`
	Status    GenerationStatus   `json:"status"`
	Message   string             `json:"message,omitempty"` // Human-readable progress text.
	Script    *ScriptArtifact    `json:"script,omitempty"`
	Audio     *AudioArtifact     `json:"audio,omitempty"`
	Thumbnail *ThumbnailArtifact `json:"thumbnail,omitempty"`
	Video     *VideoArtifact     `json:"video,omitempty"`
	Error     string             `json:"error,omitempty"` // The triggering error's message, verbatim.
}
