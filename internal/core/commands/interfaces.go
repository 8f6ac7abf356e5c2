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

// Package commands provides the concrete pipeline stages as Chain of
// Responsibility commands. This file defines the two collaborator
// interfaces the commands depend on, so workflows can be exercised in tests
// with fakes instead of live clients.
package commands

import (
	"context"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// Gateway is the remote-model boundary the stage commands call. The
// production implementation is cloud.GenerationGateway.
type Gateway interface {
	// GenerateScript returns the raw JSON of the script-planning response.
	GenerateScript(ctx context.Context, req *model.GenerationRequest) (string, error)

	// SynthesizeVoice returns a playable voiceover for the given text.
	SynthesizeVoice(ctx context.Context, text string, voiceName string) (*model.AudioArtifact, error)

	// GenerateThumbnail returns one inline image for the given prompt.
	GenerateThumbnail(ctx context.Context, prompt string) (*model.ThumbnailArtifact, error)

	// GenerateVideo renders a video via a long-running remote operation,
	// reporting progress text through onProgress.
	GenerateVideo(ctx context.Context, prompt string, aspectRatio model.AspectRatio, onProgress cloud.ProgressFunc) (*model.VideoArtifact, error)
}

// StateSink receives stage outputs as they resolve. Merging through the
// sink after every stage is what makes progressive rendering possible: the
// script is observable before the video finishes. The production
// implementation is services.StateTracker.
type StateSink interface {
	MergeScript(artifact *model.ScriptArtifact)
	MergeAudio(artifact *model.AudioArtifact)
	MergeThumbnail(artifact *model.ThumbnailArtifact)
	MergeVideo(artifact *model.VideoArtifact)
	SetMessage(message string)
}
