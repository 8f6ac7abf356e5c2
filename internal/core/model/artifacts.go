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
// This file contains the artifact types, one per pipeline stage. Artifacts
// are produced exactly once by their stage, merged into the PipelineState,
// and treated as immutable from then on.
package model

// ScriptArtifact is the output of the script stage. The JSON tags mirror the
// structured-output schema sent to the model, so the raw model response
// unmarshals directly into this type.
//
// Tag order is relevance order as returned by the model. When the request
// carried a custom script, Script holds the user's text verbatim regardless
// of anything the model returned.
type ScriptArtifact struct {
	Title           string   `json:"title"`
	Script          string   `json:"script"`
	VisualPrompt    string   `json:"visualPrompt"`
	Tags            []string `json:"tags"`
	Captions        string   `json:"captions,omitempty"`
	ThumbnailPrompt string   `json:"thumbnailPrompt,omitempty"`
}

// AudioArtifact is the output of the audio stage: a playable audio container
// plus the voice that produced it. Voice is empty for the two pass-through
// paths (uploaded file, recorded clip).
type AudioArtifact struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mimeType"`
	Voice    string `json:"voice,omitempty"`
}

// ThumbnailArtifact is the optional output of the thumbnail stage.
type ThumbnailArtifact struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mimeType"`
}

// VideoArtifact is the output of the final and longest-running stage: the
// downloaded bytes of the rendered video.
type VideoArtifact struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mimeType"`
}
