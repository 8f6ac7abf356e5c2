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

// Package workflow defines the high-level business logic orchestrations,
// combining various commands into coherent pipelines. This file implements
// the short-video generation workflow: script plan, voiceover, optional
// thumbnail, then the long-running video render, executed strictly in order
// with abort-on-first-error semantics.
package workflow

import (
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/commands"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// ShortsGenerationWorkflow orchestrates one full generation run. It's
// structured as a Chain of Responsibility (cor.Chain) whose commands share a
// Gateway for remote model calls and a StateSink that receives each artifact
// as it resolves, so the run's state is observable stage by stage.
type ShortsGenerationWorkflow struct {
	cor.BaseCommand
	gateway commands.Gateway
	sink    commands.StateSink
	request *model.GenerationRequest
	chain   cor.Chain // The underlying chain of commands to be executed.
}

// Execute runs the generation workflow by invoking the underlying chain.
// The validated request is seeded into the context twice: once under the
// chain's default input key so the first command receives it through normal
// piping, and once under a named key so later stages can re-read it after
// the piped value has moved on.
//
// Inputs:
//   - context: The chain of responsibility context for this execution.
func (w *ShortsGenerationWorkflow) Execute(context cor.Context) {
	context.Add(cor.CtxIn, w.request)
	context.Add(commands.GetRequestParamName(), w.request)
	w.chain.Execute(context)
}

// initializeChain builds the sequence of commands that make up this
// workflow. Each command is an atomic unit of work; the output of one feeds
// the next, and artifacts are merged into the state sink as they appear.
// This method is called by the constructor.
func (w *ShortsGenerationWorkflow) initializeChain() {
	scriptParam := commands.GetScriptParamName()

	out := cor.NewBaseChain(w.GetName())

	// Step 1: Ask the generative model for the structured script plan. The
	// raw JSON response lands in the default output slot.
	out.AddCommand(commands.NewScriptGenerator("generate-script", w.gateway, w.sink))

	// Step 2: Parse the JSON into a ScriptArtifact, overwrite the script
	// with the user's custom text when one was supplied, and merge it into
	// the run state. The artifact is also stored under `scriptParam` so the
	// three asset stages below can each read it directly.
	out.AddCommand(commands.NewScriptJsonToStruct("parse-script", scriptParam, w.sink))

	// Step 3: Resolve the voiceover from whichever of the three audio
	// sources the request selected.
	out.AddCommand(commands.NewAudioResolver("resolve-audio", scriptParam, w.gateway, w.sink))

	// Step 4: Render the optional thumbnail. Skips silently when the run
	// didn't ask for one or the script stage produced no prompt.
	out.AddCommand(commands.NewThumbnailGenerator("generate-thumbnail", scriptParam, w.gateway, w.sink))

	// Step 5: Submit the video render and poll it to completion. This is
	// the stage that dominates wall-clock time.
	out.AddCommand(commands.NewVideoGenerator("generate-video", scriptParam, w.gateway, w.sink))

	w.chain = out
}

// NewShortsGenerationPipeline is the constructor for the generation
// workflow. The request must already be validated; the workflow assumes
// every field it reads is coherent.
//
// Inputs:
//   - gateway: The remote-model boundary shared by all stages.
//   - sink: The state sink artifacts and progress flow into.
//   - request: The validated, immutable request for this run.
//
// Returns:
//   - A pointer to a newly created and fully initialized workflow.
func NewShortsGenerationPipeline(
	gateway commands.Gateway,
	sink commands.StateSink,
	request *model.GenerationRequest) *ShortsGenerationWorkflow {

	pipeline := &ShortsGenerationWorkflow{
		BaseCommand: *cor.NewBaseCommand("shorts-generation-pipeline"),
		gateway:     gateway,
		sink:        sink,
		request:     request,
	}
	pipeline.initializeChain()
	return pipeline
}
