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
// first stage of the generation pipeline: asking the generative model for a
// structured script plan.
//
// Logic Flow:
//  1. It receives the validated GenerationRequest from the context.
//  2. It announces the stage through the StateSink so observers see the run
//     move into script generation.
//  3. It delegates to the Gateway, which builds the structured-output schema
//     from the request and calls the model.
//  4. It places the raw JSON string response into the context for the next
//     command (`ScriptJsonToStruct`) to parse.
package commands

import (
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// ScriptGenerator is a command that produces the raw structured script
// response for a generation request.
type ScriptGenerator struct {
	cor.BaseCommand
	gateway Gateway   // The remote-model boundary.
	sink    StateSink // Receives the stage progress message.
}

// NewScriptGenerator is the constructor for the ScriptGenerator command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - gateway: The remote-model gateway to call.
//   - sink: The state sink that receives progress messages.
//
// Outputs:
//   - *ScriptGenerator: A pointer to the newly instantiated command.
func NewScriptGenerator(name string, gateway Gateway, sink StateSink) *ScriptGenerator {
	return &ScriptGenerator{
		BaseCommand: *cor.NewBaseCommand(name),
		gateway:     gateway,
		sink:        sink,
	}
}

// Execute contains the core logic for requesting the script plan.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (t *ScriptGenerator) Execute(context cor.Context) {
	req := context.Get(t.GetInputParam()).(*model.GenerationRequest)

	if req.HasCustomScript() {
		t.sink.SetMessage("Planning visuals for your script...")
	} else {
		t.sink.SetMessage("Writing your script...")
	}

	raw, err := t.gateway.GenerateScript(context.GetContext(), req)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), raw)
}
