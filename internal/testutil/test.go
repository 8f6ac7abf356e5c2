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

// Package test provides utility functions and mock data to support the
// application's test suite. It helps in setting up a consistent test
// environment, loading test-specific configurations, and providing sample
// requests for workflows and services.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs, so the TOML files load only once per
// suite.
type StateManager struct {
	config *cloud.Config
}

// state holds the singleton StateManager for the test run.
var state = &StateManager{}

// HandleErr fails the test when err is non-nil. A convenience to reduce
// boilerplate error checking in tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// SetupOS configures the environment variables the configuration loader
// depends on, directing it at the test configuration files
// (configs/.env.test.toml) instead of production ones.
//
// Returns:
//   - An error if setting any environment variable fails.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration. The TOML
// files load on first call and are cached for the rest of the run.
//
// Returns:
//   - A pointer to the loaded and cached cloud.Config struct.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// NewAutoRequest returns a baseline valid request: auto script mode with an
// AI voice and no restricted options. Tests mutate the fields they care
// about.
func NewAutoRequest() *model.GenerationRequest {
	return &model.GenerationRequest{
		Mode:        model.ScriptModeAuto,
		Topic:       "the history of coffee",
		Duration:    "30 seconds",
		VisualStyle: "Realistic, documentary style, natural lighting, handheld camera feel",
		AspectRatio: model.AspectRatioShorts,
		AudioSource: model.AudioSourceAI,
		VoiceName:   "Kore",
		Tier:        model.TierFree,
	}
}

// NewCustomScriptRequest returns a valid custom-mode request carrying the
// given script text verbatim.
func NewCustomScriptRequest(script string) *model.GenerationRequest {
	out := NewAutoRequest()
	out.Mode = model.ScriptModeCustom
	out.Topic = ""
	out.CustomScript = script
	return out
}

// ScriptResponseJSON returns a well-formed model response for the script
// stage, the shape the structured-output schema produces.
func ScriptResponseJSON() string {
	return `{
  "title": "The Bean That Woke The World",
  "script": "Coffee was discovered by goats. Really. An Ethiopian herder noticed his flock dancing after eating red berries.",
  "visualPrompt": "A misty Ethiopian hillside at dawn, goats leaping between coffee shrubs, warm golden light",
  "tags": ["coffee", "history", "shorts"]
}`
}
