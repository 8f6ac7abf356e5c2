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

// Tests for the HTTP route layout and the asset handlers. The service layer
// is constructed with a gateway that never runs, so these cover routing,
// status mapping and snapshot serving without touching the pipeline.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/services"
)

// idleGateway satisfies the workflow's gateway seam without doing anything.
// The route tests never let a run progress far enough to call it.
type idleGateway struct{}

func (idleGateway) GenerateScript(ctx context.Context, req *model.GenerationRequest) (string, error) {
	return "", nil
}

func (idleGateway) SynthesizeVoice(ctx context.Context, text string, voiceName string) (*model.AudioArtifact, error) {
	return nil, nil
}

func (idleGateway) GenerateThumbnail(ctx context.Context, prompt string) (*model.ThumbnailArtifact, error) {
	return nil, nil
}

func (idleGateway) GenerateVideo(ctx context.Context, prompt string, aspectRatio model.AspectRatio, onProgress cloud.ProgressFunc) (*model.VideoArtifact, error) {
	return nil, nil
}

// newTestRouter resets the shared state with a fresh tracker and builds the
// same route tree main assembles, minus the middleware.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	state.generationService = services.NewGenerationService(idleGateway{}, services.NewStateTracker())

	r := gin.New()
	apiV1 := r.Group("/api/v1")
	OptionsRouter(apiV1)
	GenerationRouter(apiV1, context.Background())
	return r
}

func doRequest(r *gin.Engine, method string, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestOptionsRoute verifies the catalog endpoint serves all three catalogs.
func TestOptionsRoute(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, http.MethodGet, "/api/v1/options", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "durations")
	assert.Contains(t, body, "voices")
	assert.Contains(t, body, "visualStyles")
}

// TestCurrentGenerationRoute verifies the snapshot endpoint lives at
// /generations/current and serves the idle state before any run starts.
func TestCurrentGenerationRoute(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, http.MethodGet, "/api/v1/generations/current", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot model.PipelineState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, model.StatusIdle, snapshot.Status)
}

// TestStartGenerationRejectsInvalidRequest verifies POST /generations maps a
// validation failure onto a bad request before any run starts.
func TestStartGenerationRejectsInvalidRequest(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, http.MethodPost, "/api/v1/generations", `{"mode":"auto"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/generations/current", "")
	var snapshot model.PipelineState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, model.StatusIdle, snapshot.Status)
}

// TestAssetRoutes verifies the per-kind asset endpoints: not found until the
// stage has merged its artifact, the bytes with their content type after,
// and not found for kinds that don't exist.
func TestAssetRoutes(t *testing.T) {
	r := newTestRouter()

	for _, kind := range []string{"audio", "thumbnail", "video", "screenplay"} {
		w := doRequest(r, http.MethodGet, "/api/v1/generations/current/assets/"+kind, "")
		assert.Equal(t, http.StatusNotFound, w.Code, kind)
	}

	tracker := state.generationService.Tracker()
	tracker.Begin("run-under-test")
	tracker.MergeAudio(&model.AudioArtifact{Data: []byte("wav-bytes"), MIMEType: "audio/wav", Voice: "Kore"})
	tracker.MergeVideo(&model.VideoArtifact{Data: []byte("mp4-bytes"), MIMEType: "video/mp4"})

	w := doRequest(r, http.MethodGet, "/api/v1/generations/current/assets/audio", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
	assert.Equal(t, "wav-bytes", w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/v1/generations/current/assets/video", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Equal(t, "mp4-bytes", w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/v1/generations/current/assets/thumbnail", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
