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
// This file contains the input side of the generation pipeline: the enums
// that classify a request (script mode, audio source, aspect ratio, account
// tier) and the GenerationRequest bundle itself.
//
// A GenerationRequest is constructed once per user-initiated run and is never
// mutated afterwards. Every pipeline stage reads from the same request value,
// so the request doubles as the run's audit record.
package model

// ScriptMode selects how the spoken script is obtained: generated from a
// topic, or supplied verbatim by the user.
type ScriptMode string

const (
	// ScriptModeAuto generates the script from a free-text topic.
	ScriptModeAuto ScriptMode = "auto"
	// ScriptModeCustom uses the user's own script text unchanged.
	ScriptModeCustom ScriptMode = "custom"
)

// AudioSource selects which of the three disjoint audio paths a run takes.
// Exactly one path executes per run.
type AudioSource string

const (
	// AudioSourceAI synthesizes the voiceover with a text-to-speech model.
	AudioSourceAI AudioSource = "ai"
	// AudioSourceFile passes an uploaded audio file through unchanged.
	AudioSourceFile AudioSource = "file"
	// AudioSourceRecord passes a browser-recorded clip through unchanged.
	AudioSourceRecord AudioSource = "record"
)

// AspectRatio is the target frame shape for the rendered video.
type AspectRatio string

const (
	AspectRatioShorts     AspectRatio = "9:16"
	AspectRatioWidescreen AspectRatio = "16:9"
	AspectRatioSquare     AspectRatio = "1:1"
)

// UserTier identifies the effective account tier for a run. Restricted
// catalog options are only available to the pro tier.
type UserTier string

const (
	TierFree UserTier = "free"
	TierPro  UserTier = "pro"
)

// GenerationRequest is the immutable input bundle for one pipeline run.
// Validation happens before the run starts (see services.GenerationService);
// once a run is in flight the request is treated as read-only.
type GenerationRequest struct {
	Mode             ScriptMode  `json:"mode"`
	Topic            string      `json:"topic,omitempty"`        // Auto mode: the video topic.
	CustomScript     string      `json:"customScript,omitempty"` // Custom mode: the verbatim script.
	Duration         string      `json:"duration"`               // Target duration label, e.g. "30 seconds".
	VisualStyle      string      `json:"visualStyle"`            // Visual style descriptor fed to the prompts.
	AspectRatio      AspectRatio `json:"aspectRatio"`
	IncludeCaptions  bool        `json:"includeCaptions"`
	IncludeThumbnail bool        `json:"includeThumbnail"`
	AudioSource      AudioSource `json:"audioSource"`
	VoiceName        string      `json:"voiceName,omitempty"` // AI source: branded or native voice identifier.
	AudioUpload      []byte      `json:"-"`                   // File source: the uploaded audio bytes.
	Recording        []byte      `json:"-"`                   // Record source: the captured clip bytes.
	Tier             UserTier    `json:"tier"`
}

// HasCustomScript reports whether the run carries a user-supplied script.
// When true, the remote model is never trusted to reproduce the text: the
// script field of the resulting artifact is overwritten with this input.
func (r *GenerationRequest) HasCustomScript() bool {
	return r.Mode == ScriptModeCustom && len(r.CustomScript) > 0
}
