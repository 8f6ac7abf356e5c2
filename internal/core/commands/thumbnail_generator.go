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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// optional thumbnail stage.
//
// The stage runs only when the request asked for a thumbnail AND the script
// stage produced a thumbnail prompt. When either is missing the command
// skips silently: a thumbnail is decorative, and its absence must never
// abort a run that is otherwise on its way to a finished video.
package commands

import (
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// ThumbnailGenerator is a command that renders a cover image for the video
// when the run requested one.
type ThumbnailGenerator struct {
	cor.BaseCommand
	gateway Gateway
	sink    StateSink
}

// NewThumbnailGenerator is the constructor for the ThumbnailGenerator command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - inputParamName: The context key holding the parsed ScriptArtifact.
//   - gateway: The remote-model gateway.
//   - sink: The state sink that receives the merged artifact.
//
// Outputs:
//   - *ThumbnailGenerator: A pointer to the newly instantiated command.
func NewThumbnailGenerator(name string, inputParamName string, gateway Gateway, sink StateSink) *ThumbnailGenerator {
	out := ThumbnailGenerator{BaseCommand: *cor.NewBaseCommand(name), gateway: gateway, sink: sink}
	out.InputParamName = inputParamName
	return &out
}

// Execute contains the core logic for the optional thumbnail render.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (t *ThumbnailGenerator) Execute(context cor.Context) {
	script := context.Get(t.GetInputParam()).(*model.ScriptArtifact)
	req := context.Get(GetRequestParamName()).(*model.GenerationRequest)

	if !req.IncludeThumbnail || len(script.ThumbnailPrompt) == 0 {
		// Not requested, or the model produced no prompt. Skip without error.
		context.Add(t.GetOutputParam(), script)
		return
	}

	t.sink.SetMessage("Creating thumbnail...")

	artifact, err := t.gateway.GenerateThumbnail(context.GetContext(), script.ThumbnailPrompt)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	t.sink.MergeThumbnail(artifact)

	context.Add(t.GetOutputParam(), script)
}
