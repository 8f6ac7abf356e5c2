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
// This file, `tracker.go`, defines the StateTracker: the single owner of a
// session's PipelineState. The workflow goroutine mutates the state through
// the tracker's merge methods while HTTP handlers read consistent snapshots
// concurrently, so every access goes through one mutex.
//
// The tracker also encodes the run's state machine:
//
//	IDLE → GENERATING_SCRIPT → GENERATING_ASSETS → COMPLETE
//
// with ERROR reachable from either generating state. The script merge is the
// transition into GENERATING_ASSETS; the video merge is deliberately NOT the
// transition to COMPLETE, because completion belongs to the run as a whole
// and is declared by the orchestrator once the chain finishes clean.
package services

import (
	"sync"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// StateTracker owns the pipeline state for one session. The zero value is
// not usable; create trackers with NewStateTracker.
type StateTracker struct {
	mu    sync.RWMutex
	state model.PipelineState
}

// NewStateTracker creates a tracker in the IDLE state.
func NewStateTracker() *StateTracker {
	return &StateTracker{state: model.PipelineState{Status: model.StatusIdle}}
}

// Begin resets the tracker for a fresh run and moves it into the
// GENERATING_SCRIPT state. Any previous run's artifacts are discarded
// wholesale; a new run never inherits old state.
func (t *StateTracker) Begin(runID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = model.PipelineState{
		RunID:  runID,
		Status: model.StatusGeneratingScript,
	}
}

// MergeScript records the script artifact and advances the run into asset
// generation. Ignored once the run has reached a terminal state.
func (t *StateTracker) MergeScript(artifact *model.ScriptArtifact) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Status.Terminal() {
		return
	}
	t.state.Script = artifact
	t.state.Status = model.StatusGeneratingAssets
}

// MergeAudio records the audio artifact. Ignored once terminal.
func (t *StateTracker) MergeAudio(artifact *model.AudioArtifact) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Status.Terminal() {
		return
	}
	t.state.Audio = artifact
}

// MergeThumbnail records the thumbnail artifact. Ignored once terminal.
func (t *StateTracker) MergeThumbnail(artifact *model.ThumbnailArtifact) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Status.Terminal() {
		return
	}
	t.state.Thumbnail = artifact
}

// MergeVideo records the video artifact. Ignored once terminal.
func (t *StateTracker) MergeVideo(artifact *model.VideoArtifact) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Status.Terminal() {
		return
	}
	t.state.Video = artifact
}

// SetMessage updates the human-readable progress text. Ignored once
// terminal, so a late-arriving poll message can't dirty a finished run.
func (t *StateTracker) SetMessage(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Status.Terminal() {
		return
	}
	t.state.Message = message
}

// Complete declares the run finished. Artifacts merged so far stay in place.
func (t *StateTracker) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Status.Terminal() {
		return
	}
	t.state.Status = model.StatusComplete
	t.state.Message = ""
}

// Fail moves the run into the terminal ERROR state, keeping every artifact
// merged before the failure. There is no rollback: a run that died during
// the video render still shows its script and audio.
func (t *StateTracker) Fail(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Status.Terminal() {
		return
	}
	t.state.Status = model.StatusError
	t.state.Error = message
	t.state.Message = ""
}

// Snapshot returns a value copy of the current state, safe to read while the
// run keeps mutating the original. Artifact pointers are shared, which is
// fine: artifacts are immutable once merged.
func (t *StateTracker) Snapshot() model.PipelineState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}
