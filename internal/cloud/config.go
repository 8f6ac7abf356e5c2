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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, and the wrappers around the Generative AI client.
//
// This file centralizes the configuration structs. The generation service is
// deliberately config-driven: model identifiers, the video poll interval,
// the resolution tier, rate limits, and the prompt templates all live in
// configs/.env.toml so they can differ per runtime environment without a
// rebuild.
//
// Structs:
//   - GeneratorConfig: model names and tuning for the four pipeline stages.
//   - PromptTemplates: Go text/template sources for the script prompts.
//   - Config: the top-level aggregate loaded by LoadConfig.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings defines the default content safety thresholds for
// GenAI models. All categories pass through unblocked; the input here is the
// user's own topic or script.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// GeneratorConfig holds the model identifiers and fixed parameters for the
// four generation stages.
type GeneratorConfig struct {
	ScriptModel         string  `toml:"script_model"`          // Structured-output text model for stage 1.
	SpeechModel         string  `toml:"speech_model"`          // Text-to-speech model for stage 2.
	ImageModel          string  `toml:"image_model"`           // Inline-image model for the thumbnail stage.
	VideoModel          string  `toml:"video_model"`           // Long-running video model for stage 4.
	Resolution          string  `toml:"resolution"`            // Fixed resolution tier, e.g. "720p".
	SampleRate          int     `toml:"sample_rate"`           // PCM sample rate the speech model returns, 24000.
	PollIntervalSeconds int     `toml:"poll_interval_seconds"` // Sleep between video operation polls.
	Temperature         float32 `toml:"temperature"`           // Temperature for the script model.
	RateLimit           int     `toml:"rate_limit"`            // Generate-content requests per second.
}

// PromptTemplates holds the Go text/template sources for the script stage.
// AutoPrompt plans a video from a topic; CustomPrompt analyzes a
// user-supplied script without rewriting it.
type PromptTemplates struct {
	AutoPrompt   string `toml:"auto"`
	CustomPrompt string `toml:"custom"`
}

// Config represents the overall application configuration, loaded from TOML
// files by LoadConfig.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // Service name for telemetry.
		GoogleProjectId string `toml:"google_project_id"` // Project for the telemetry exporters.
		APIKeyVar       string `toml:"api_key_var"`       // Env var holding the Gemini API key.
	} `toml:"application"`
	Generator       GeneratorConfig `toml:"generator"`
	PromptTemplates PromptTemplates `toml:"prompt_templates"`
}

// NewConfig creates an initialized Config instance.
func NewConfig() *Config {
	return &Config{}
}
