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
// final and longest-running stage: submitting the visual prompt to the video
// model and waiting out the render.
//
// The render is a remote long-running operation, so this command is the one
// place where progress messages matter most: the gateway invokes the
// callback around every poll, and the callback forwards each message to the
// state sink so the UI has something to show during the minutes-long wait.
package commands

import (
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// VideoGenerator is a command that renders the final video from the script's
// visual prompt.
type VideoGenerator struct {
	cor.BaseCommand
	gateway Gateway
	sink    StateSink
}

// NewVideoGenerator is the constructor for the VideoGenerator command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - inputParamName: The context key holding the parsed ScriptArtifact.
//   - gateway: The remote-model gateway.
//   - sink: The state sink that receives progress and the final artifact.
//
// Outputs:
//   - *VideoGenerator: A pointer to the newly instantiated command.
func NewVideoGenerator(name string, inputParamName string, gateway Gateway, sink StateSink) *VideoGenerator {
	out := VideoGenerator{BaseCommand: *cor.NewBaseCommand(name), gateway: gateway, sink: sink}
	out.InputParamName = inputParamName
	return &out
}

// Execute contains the core logic for the video render.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (t *VideoGenerator) Execute(context cor.Context) {
	script := context.Get(t.GetInputParam()).(*model.ScriptArtifact)
	req := context.Get(GetRequestParamName()).(*model.GenerationRequest)

	artifact, err := t.gateway.GenerateVideo(
		context.GetContext(), script.VisualPrompt, req.AspectRatio, t.sink.SetMessage)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	t.sink.MergeVideo(artifact)

	context.Add(t.GetOutputParam(), artifact)
}
