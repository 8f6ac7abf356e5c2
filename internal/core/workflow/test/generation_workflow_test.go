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

// Package workflow_test contains tests for the generation workflow. The
// remote model boundary is replaced with a fake gateway so the chain's
// sequencing, piping, skip logic and abort-on-error behavior can be
// exercised without network access. The state sink is the real tracker.
package workflow_test

import (
	"context"
	"testing"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/services"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-shorts-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway implements commands.Gateway in memory. Each operation records
// its inputs and returns canned artifacts or an injected error.
type fakeGateway struct {
	scriptJSON string
	scriptErr  error
	audioErr   error
	thumbErr   error
	videoErr   error

	voiceRequested  string
	synthesizeCalls int
	thumbnailPrompt string
	thumbnailCalls  int
	videoPrompt     string
	videoRatio      model.AspectRatio
	progress        []string
}

func (f *fakeGateway) GenerateScript(_ context.Context, _ *model.GenerationRequest) (string, error) {
	if f.scriptErr != nil {
		return "", f.scriptErr
	}
	return f.scriptJSON, nil
}

func (f *fakeGateway) SynthesizeVoice(_ context.Context, _ string, voiceName string) (*model.AudioArtifact, error) {
	f.synthesizeCalls++
	f.voiceRequested = voiceName
	if f.audioErr != nil {
		return nil, f.audioErr
	}
	return &model.AudioArtifact{Data: []byte("wav-bytes"), MIMEType: "audio/wav", Voice: voiceName}, nil
}

func (f *fakeGateway) GenerateThumbnail(_ context.Context, prompt string) (*model.ThumbnailArtifact, error) {
	f.thumbnailCalls++
	f.thumbnailPrompt = prompt
	if f.thumbErr != nil {
		return nil, f.thumbErr
	}
	return &model.ThumbnailArtifact{Data: []byte("png-bytes"), MIMEType: "image/png"}, nil
}

func (f *fakeGateway) GenerateVideo(_ context.Context, prompt string, ratio model.AspectRatio, onProgress cloud.ProgressFunc) (*model.VideoArtifact, error) {
	f.videoPrompt = prompt
	f.videoRatio = ratio
	onProgress(cloud.MsgVideoSubmitting)
	onProgress(cloud.MsgVideoRendering)
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	return &model.VideoArtifact{Data: []byte("mp4-bytes"), MIMEType: "video/mp4"}, nil
}

// trackingSink wraps the real tracker and also records progress messages,
// which the tracker clears when the run terminates.
type trackingSink struct {
	*services.StateTracker
	messages []string
}

func (s *trackingSink) SetMessage(message string) {
	s.messages = append(s.messages, message)
	s.StateTracker.SetMessage(message)
}

func runPipeline(t *testing.T, gateway *fakeGateway, req *model.GenerationRequest) (*trackingSink, cor.Context) {
	t.Helper()
	sink := &trackingSink{StateTracker: services.NewStateTracker()}
	sink.Begin("test-run")

	pipeline := workflow.NewShortsGenerationPipeline(gateway, sink, req)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	pipeline.Execute(chainCtx)
	return sink, chainCtx
}

// TestWorkflowAutoModeCompletes runs the baseline scenario: auto script, AI
// voice, no thumbnail. Every stage but the thumbnail executes and the state
// accumulates script, audio and video.
func TestWorkflowAutoModeCompletes(t *testing.T) {
	gateway := &fakeGateway{scriptJSON: test.ScriptResponseJSON()}
	req := test.NewAutoRequest()

	sink, chainCtx := runPipeline(t, gateway, req)
	require.False(t, chainCtx.HasErrors())

	state := sink.Snapshot()
	require.NotNil(t, state.Script)
	assert.Equal(t, "The Bean That Woke The World", state.Script.Title)
	require.NotNil(t, state.Audio)
	assert.Equal(t, "audio/wav", state.Audio.MIMEType)
	require.NotNil(t, state.Video)
	assert.Nil(t, state.Thumbnail)
	assert.Zero(t, gateway.thumbnailCalls)

	// The visual prompt flows into the video stage along with the ratio.
	assert.Equal(t, state.Script.VisualPrompt, gateway.videoPrompt)
	assert.Equal(t, model.AspectRatioShorts, gateway.videoRatio)

	// The script merge moved the run into asset generation.
	assert.Equal(t, model.StatusGeneratingAssets, state.Status)
}

// TestWorkflowCustomScriptOverwrite verifies the user's script survives
// verbatim even when the model response carries its own script text.
func TestWorkflowCustomScriptOverwrite(t *testing.T) {
	gateway := &fakeGateway{
		scriptJSON: `{
			"title": "T",
			"script": "a rewritten script the model invented",
			"visualPrompt": "vp",
			"tags": ["a"]
		}`,
	}
	userScript := "These exact words. Nothing else."
	req := test.NewCustomScriptRequest(userScript)

	sink, chainCtx := runPipeline(t, gateway, req)
	require.False(t, chainCtx.HasErrors())

	state := sink.Snapshot()
	require.NotNil(t, state.Script)
	assert.Equal(t, userScript, state.Script.Script)

	// The user's words are also what gets narrated.
	assert.Equal(t, 1, gateway.synthesizeCalls)
}

// TestWorkflowThumbnailRequested verifies the thumbnail stage runs when both
// the request flag and the model-produced prompt are present.
func TestWorkflowThumbnailRequested(t *testing.T) {
	gateway := &fakeGateway{
		scriptJSON: `{
			"title": "T",
			"script": "s",
			"visualPrompt": "vp",
			"tags": ["a"],
			"thumbnailPrompt": "a dramatic close-up"
		}`,
	}
	req := test.NewAutoRequest()
	req.IncludeThumbnail = true

	sink, chainCtx := runPipeline(t, gateway, req)
	require.False(t, chainCtx.HasErrors())

	state := sink.Snapshot()
	require.NotNil(t, state.Thumbnail)
	assert.Equal(t, 1, gateway.thumbnailCalls)
	assert.Equal(t, "a dramatic close-up", gateway.thumbnailPrompt)
}

// TestWorkflowThumbnailSkippedWithoutPrompt verifies a requested thumbnail
// skips silently when the script stage produced no prompt: no error, no
// artifact, and the video stage still runs.
func TestWorkflowThumbnailSkippedWithoutPrompt(t *testing.T) {
	gateway := &fakeGateway{scriptJSON: test.ScriptResponseJSON()}
	req := test.NewAutoRequest()
	req.IncludeThumbnail = true

	sink, chainCtx := runPipeline(t, gateway, req)
	require.False(t, chainCtx.HasErrors())

	state := sink.Snapshot()
	assert.Nil(t, state.Thumbnail)
	assert.Zero(t, gateway.thumbnailCalls)
	assert.NotNil(t, state.Video)
}

// TestWorkflowFileAudioPassThrough verifies the file source path: the upload
// reaches the state byte-for-byte and the speech model is never called.
func TestWorkflowFileAudioPassThrough(t *testing.T) {
	gateway := &fakeGateway{scriptJSON: test.ScriptResponseJSON()}
	req := test.NewAutoRequest()
	req.AudioSource = model.AudioSourceFile
	req.VoiceName = ""
	upload := append([]byte("RIFF\x24\x00\x00\x00WAVE"), make([]byte, 32)...)
	req.AudioUpload = upload

	sink, chainCtx := runPipeline(t, gateway, req)
	require.False(t, chainCtx.HasErrors())

	state := sink.Snapshot()
	require.NotNil(t, state.Audio)
	assert.Equal(t, upload, state.Audio.Data)
	assert.Equal(t, "audio/wav", state.Audio.MIMEType)
	assert.Empty(t, state.Audio.Voice)
	assert.Zero(t, gateway.synthesizeCalls)
}

// TestWorkflowAbortsOnScriptError verifies a failed script stage stops the
// chain before any asset stage runs and leaves no artifacts behind.
func TestWorkflowAbortsOnScriptError(t *testing.T) {
	gateway := &fakeGateway{
		scriptErr: model.NewGenerationError(cloud.StageScript, "no script generated"),
	}
	req := test.NewAutoRequest()

	sink, chainCtx := runPipeline(t, gateway, req)
	require.True(t, chainCtx.HasErrors())

	state := sink.Snapshot()
	assert.Nil(t, state.Script)
	assert.Nil(t, state.Audio)
	assert.Nil(t, state.Video)
	assert.Zero(t, gateway.synthesizeCalls)
}

// TestWorkflowAbortsOnUnparsableScript verifies a syntactically broken model
// response fails the parse stage and stops the chain.
func TestWorkflowAbortsOnUnparsableScript(t *testing.T) {
	gateway := &fakeGateway{scriptJSON: "this is not json"}
	req := test.NewAutoRequest()

	sink, chainCtx := runPipeline(t, gateway, req)
	require.True(t, chainCtx.HasErrors())
	assert.Nil(t, sink.Snapshot().Script)
}

// TestWorkflowAbortsOnMissingRequiredField verifies post-validation: a
// parsable response missing a field every run needs fails the stage.
func TestWorkflowAbortsOnMissingRequiredField(t *testing.T) {
	gateway := &fakeGateway{
		scriptJSON: `{"title": "T", "script": "s", "tags": ["a"]}`, // no visualPrompt
	}
	req := test.NewAutoRequest()

	_, chainCtx := runPipeline(t, gateway, req)
	require.True(t, chainCtx.HasErrors())
}

// TestWorkflowKeepsEarlyArtifactsOnVideoError verifies there is no rollback:
// a failed video render leaves the script and audio visible.
func TestWorkflowKeepsEarlyArtifactsOnVideoError(t *testing.T) {
	gateway := &fakeGateway{
		scriptJSON: test.ScriptResponseJSON(),
		videoErr:   model.NewGenerationError(cloud.StageVideo, "render failed"),
	}
	req := test.NewAutoRequest()

	sink, chainCtx := runPipeline(t, gateway, req)
	require.True(t, chainCtx.HasErrors())

	state := sink.Snapshot()
	assert.NotNil(t, state.Script)
	assert.NotNil(t, state.Audio)
	assert.Nil(t, state.Video)
}

// TestWorkflowProgressMessages verifies the video stage's progress callback
// lands in the sink, giving pollers something to display during the render.
func TestWorkflowProgressMessages(t *testing.T) {
	gateway := &fakeGateway{scriptJSON: test.ScriptResponseJSON()}
	req := test.NewAutoRequest()

	sink, chainCtx := runPipeline(t, gateway, req)
	require.False(t, chainCtx.HasErrors())

	assert.Contains(t, sink.messages, cloud.MsgVideoSubmitting)
	assert.Contains(t, sink.messages, cloud.MsgVideoRendering)
}
