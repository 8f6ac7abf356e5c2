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
// Responsibility (COR) pattern's Command interface. This file defines a
// command that acts as a data transformation step in the workflow.
//
// Logic Flow:
// This command follows the `ScriptGenerator` in the chain. It takes the raw
// JSON string output from the generative model and transforms it into a
// strongly-typed `model.ScriptArtifact`, then applies two corrections the
// model cannot be trusted with:
//
//  1. When the request carried a custom script, the artifact's script field
//     is overwritten with the user's text verbatim. Structured output
//     schemas constrain shape, not fidelity, and the user's words must
//     survive untouched.
//  2. The fields every run needs (title, script, visual prompt, tags) are
//     checked for presence after parsing. A syntactically valid response
//     missing any of them fails the stage.
//
// On success the artifact is merged into the pipeline state, which is what
// moves the run from script generation into asset generation, and the
// artifact is placed under a named context key so the downstream asset
// commands can each read it regardless of chain position.
package commands

import (
	"encoding/json"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// ScriptJsonToStruct is a command that parses the model's JSON response into
// a ScriptArtifact and merges it into the pipeline state.
type ScriptJsonToStruct struct {
	cor.BaseCommand
	sink StateSink // Receives the finished script artifact.
}

// NewScriptJsonToStruct is the constructor for the ScriptJsonToStruct command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputParamName: The context key where the resulting artifact is stored.
//   - sink: The state sink that receives the merged artifact.
//
// Outputs:
//   - *ScriptJsonToStruct: A pointer to the newly instantiated command.
func NewScriptJsonToStruct(name string, outputParamName string, sink StateSink) *ScriptJsonToStruct {
	out := ScriptJsonToStruct{BaseCommand: *cor.NewBaseCommand(name), sink: sink}
	out.OutputParamName = outputParamName
	return &out
}

// Execute contains the core logic for parsing and correcting the script.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (s *ScriptJsonToStruct) Execute(context cor.Context) {
	in := context.Get(s.GetInputParam()).(string)

	// The request is needed again here for the custom-script overwrite; it
	// stays available under its named key for the whole run.
	req := context.Get(GetRequestParamName()).(*model.GenerationRequest)

	artifact := &model.ScriptArtifact{}
	if err := json.Unmarshal([]byte(in), artifact); err != nil {
		s.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(s.GetName(), model.NewGenerationError(cloud.StageScript,
			"failed to parse script response: %v", err))
		return
	}

	// The user's own words always win over whatever the model echoed back.
	if req.HasCustomScript() {
		artifact.Script = req.CustomScript
	}

	if err := validateScriptArtifact(artifact); err != nil {
		s.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(s.GetName(), err)
		return
	}

	s.GetSuccessCounter().Add(context.GetContext(), 1)
	s.sink.MergeScript(artifact)

	context.Add(s.GetOutputParam(), artifact)
	context.Add(cor.CtxOut, artifact)
}

// validateScriptArtifact checks the fields every run requires. Captions and
// thumbnail prompt are request-dependent and not checked here.
func validateScriptArtifact(artifact *model.ScriptArtifact) error {
	switch {
	case len(artifact.Title) == 0:
		return model.NewGenerationError(cloud.StageScript, "model response missing title")
	case len(artifact.Script) == 0:
		return model.NewGenerationError(cloud.StageScript, "model response missing script")
	case len(artifact.VisualPrompt) == 0:
		return model.NewGenerationError(cloud.StageScript, "model response missing visual prompt")
	case len(artifact.Tags) == 0:
		return model.NewGenerationError(cloud.StageScript, "model response missing tags")
	}
	return nil
}
