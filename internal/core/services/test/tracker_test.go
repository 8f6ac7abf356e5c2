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

// Package services_test contains the test suite for the services package.
// This file covers the state tracker's state machine and terminal-state
// behavior.
package services_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTrackerStateMachine walks the happy path: idle, begin, script merge
// into asset generation, complete.
func TestTrackerStateMachine(t *testing.T) {
	tracker := services.NewStateTracker()
	assert.Equal(t, model.StatusIdle, tracker.Snapshot().Status)

	tracker.Begin("run-1")
	s := tracker.Snapshot()
	assert.Equal(t, model.StatusGeneratingScript, s.Status)
	assert.Equal(t, "run-1", s.RunID)

	tracker.MergeScript(&model.ScriptArtifact{Title: "T", Script: "s", VisualPrompt: "v", Tags: []string{"a"}})
	assert.Equal(t, model.StatusGeneratingAssets, tracker.Snapshot().Status)

	tracker.Complete()
	s = tracker.Snapshot()
	assert.Equal(t, model.StatusComplete, s.Status)
	assert.Empty(t, s.Message)
}

// TestTrackerTerminalStateIsFinal verifies nothing mutates a run after it
// terminates: late merges, messages and a second Fail are all dropped.
func TestTrackerTerminalStateIsFinal(t *testing.T) {
	tracker := services.NewStateTracker()
	tracker.Begin("run-1")
	tracker.Fail("script stage failed")

	tracker.MergeScript(&model.ScriptArtifact{Title: "late"})
	tracker.MergeVideo(&model.VideoArtifact{Data: []byte("late")})
	tracker.SetMessage("still rendering...")
	tracker.Complete()

	s := tracker.Snapshot()
	assert.Equal(t, model.StatusError, s.Status)
	assert.Equal(t, "script stage failed", s.Error)
	assert.Nil(t, s.Script)
	assert.Nil(t, s.Video)
	assert.Empty(t, s.Message)
}

// TestTrackerBeginResetsState verifies a new run never inherits artifacts or
// errors from the previous one.
func TestTrackerBeginResetsState(t *testing.T) {
	tracker := services.NewStateTracker()
	tracker.Begin("run-1")
	tracker.MergeScript(&model.ScriptArtifact{Title: "old"})
	tracker.Fail("old failure")

	tracker.Begin("run-2")
	s := tracker.Snapshot()
	require.Equal(t, "run-2", s.RunID)
	assert.Equal(t, model.StatusGeneratingScript, s.Status)
	assert.Nil(t, s.Script)
	assert.Empty(t, s.Error)
}

// TestTrackerSnapshotIsolation verifies a snapshot is a value copy: later
// tracker mutations don't show through an already-taken snapshot.
func TestTrackerSnapshotIsolation(t *testing.T) {
	tracker := services.NewStateTracker()
	tracker.Begin("run-1")

	before := tracker.Snapshot()
	tracker.MergeScript(&model.ScriptArtifact{Title: "T"})

	assert.Nil(t, before.Script)
	assert.NotNil(t, tracker.Snapshot().Script)
}
