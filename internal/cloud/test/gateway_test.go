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

// Package cloud_test contains unit tests for the cloud package. This file
// covers the pure parts of the gateway: the dynamic structured-output schema
// computation, voice name mapping, and response text cleanup. The remote
// calls themselves are exercised through the workflow tests with a fake
// gateway.
package cloud_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildScriptSchemaBaseline verifies the default required set: a plain
// auto-mode request needs title, visualPrompt, tags, and a script.
func TestBuildScriptSchemaBaseline(t *testing.T) {
	req := &model.GenerationRequest{
		Mode:        model.ScriptModeAuto,
		Topic:       "cats",
		Duration:    "30 seconds",
		VisualStyle: "documentary",
	}
	schema := cloud.BuildScriptSchema(req)

	assert.ElementsMatch(t, []string{"title", "visualPrompt", "tags", "script"}, schema.Required)
	assert.Contains(t, schema.Properties, "script")
	assert.NotContains(t, schema.Properties, "captions")
	assert.NotContains(t, schema.Properties, "thumbnailPrompt")
}

// TestBuildScriptSchemaCustomScript verifies a custom script removes the
// script field entirely: the model must not be asked to produce one it would
// only mangle.
func TestBuildScriptSchemaCustomScript(t *testing.T) {
	req := &model.GenerationRequest{
		Mode:         model.ScriptModeCustom,
		CustomScript: "my own words",
		VisualStyle:  "cinematic",
	}
	schema := cloud.BuildScriptSchema(req)

	assert.ElementsMatch(t, []string{"title", "visualPrompt", "tags"}, schema.Required)
	assert.NotContains(t, schema.Properties, "script")
}

// TestBuildScriptSchemaOptionalFields verifies captions and thumbnailPrompt
// join the required set only when the request asks for them.
func TestBuildScriptSchemaOptionalFields(t *testing.T) {
	req := &model.GenerationRequest{
		Mode:             model.ScriptModeAuto,
		Topic:            "volcanoes",
		VisualStyle:      "animated",
		IncludeCaptions:  true,
		IncludeThumbnail: true,
	}
	schema := cloud.BuildScriptSchema(req)

	assert.ElementsMatch(t,
		[]string{"title", "visualPrompt", "tags", "script", "captions", "thumbnailPrompt"},
		schema.Required)
	assert.Contains(t, schema.Properties, "captions")
	assert.Contains(t, schema.Properties, "thumbnailPrompt")
}

// TestMapVoiceName verifies branded identifiers translate to native voices
// and the mapping is idempotent for names already native.
func TestMapVoiceName(t *testing.T) {
	assert.Equal(t, "Charon", cloud.MapVoiceName("eleven_adam"))
	assert.Equal(t, "Kore", cloud.MapVoiceName("eleven_rachel"))
	assert.Equal(t, "Fenrir", cloud.MapVoiceName("eleven_antoni"))
	assert.Equal(t, "Zephyr", cloud.MapVoiceName("eleven_bella"))
	assert.Equal(t, "Fenrir", cloud.MapVoiceName("eleven_josh"))

	// Native and custom names pass through unchanged.
	assert.Equal(t, "Puck", cloud.MapVoiceName("Puck"))
	assert.Equal(t, "MyStudioVoice", cloud.MapVoiceName("MyStudioVoice"))
}

// TestStripCodeFence verifies fence removal tolerates fenced, bare-fenced
// and unfenced payloads.
func TestStripCodeFence(t *testing.T) {
	fenced := "```json\n{\"title\": \"x\"}\n```"
	assert.Equal(t, `{"title": "x"}`, cloud.StripCodeFence(fenced))

	bare := "```\n{\"title\": \"x\"}\n```"
	assert.Equal(t, `{"title": "x"}`, cloud.StripCodeFence(bare))

	plain := `{"title": "x"}`
	assert.Equal(t, plain, cloud.StripCodeFence(plain))
}

// TestResolveAPIKeyMissing verifies a missing credential surfaces as a
// ConfigurationError before any client is built.
func TestResolveAPIKeyMissing(t *testing.T) {
	t.Setenv("SHORTS_TEST_ABSENT_KEY", "")

	_, err := cloud.ResolveAPIKey("SHORTS_TEST_ABSENT_KEY")
	require.Error(t, err)

	var confErr *model.ConfigurationError
	assert.ErrorAs(t, err, &confErr)
}

// TestResolveAPIKeyPresent verifies the happy path reads the configured
// variable.
func TestResolveAPIKeyPresent(t *testing.T) {
	t.Setenv("SHORTS_TEST_PRESENT_KEY", "fake-key-for-test")

	key, err := cloud.ResolveAPIKey("SHORTS_TEST_PRESENT_KEY")
	require.NoError(t, err)
	assert.Equal(t, "fake-key-for-test", key)
}
