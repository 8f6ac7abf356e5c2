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

// Package commands provides the concrete pipeline stages. This file holds
// the well-known context parameter names shared by the stage commands, so a
// workflow can seed a value once and every stage that needs it can find it
// without caring about chain position.
package commands

const (
	// requestParamName is where the workflow seeds the immutable
	// GenerationRequest for the run.
	requestParamName = "GENERATION_REQUEST"

	// scriptParamName is where ScriptJsonToStruct publishes the parsed
	// ScriptArtifact for the asset stages.
	scriptParamName = "SCRIPT_ARTIFACT"
)

// GetRequestParamName returns the context key holding the run's request.
func GetRequestParamName() string {
	return requestParamName
}

// GetScriptParamName returns the context key holding the parsed script.
func GetScriptParamName() string {
	return scriptParamName
}
