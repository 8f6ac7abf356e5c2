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

// Package cloud provides components for interacting with the Generative AI
// service. This file implements the GenerationGateway, the single boundary
// between the pipeline and the remote model API. It exposes the four
// operations the pipeline stages need:
//
//   - GenerateScript: structured-output script planning. The required field
//     set of the response schema is computed per request (script only when
//     the user didn't supply one, captions and thumbnailPrompt only when
//     asked for) and returned as raw JSON for the parsing command.
//   - SynthesizeVoice: text-to-speech returning raw PCM, wrapped in a WAV
//     container so the result is directly playable.
//   - GenerateThumbnail: one inline image; the first inline-image part wins,
//     text parts in the same response are ignored.
//   - GenerateVideo: submit-then-poll against a long-running operation,
//     reporting progress text before every poll, then downloading the
//     result bytes. The result URI is not independently authenticated, so
//     the API key is appended as a query parameter.
//
// Failures map onto the taxonomy in internal/core/model: unusable or empty
// payloads become GenerationError, download failures become TransportError.
// The gateway never retries; aborting the run is the caller's policy.
package cloud

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/media"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// Progress messages surfaced to the caller during video rendering.
const (
	MsgVideoSubmitting  = "Initializing generation request..."
	MsgVideoRendering   = "Rendering video (this may take 1-2 minutes)..."
	MsgVideoStillGoing  = "Still rendering... the model is painting pixels..."
	MsgVideoDownloading = "Downloading final video..."
)

// Pipeline stage names used in generation errors.
const (
	StageScript    = "script"
	StageAudio     = "audio"
	StageThumbnail = "thumbnail"
	StageVideo     = "video"
)

// ProgressFunc receives human-readable status text during a long-running
// gateway operation.
type ProgressFunc func(message string)

// promptParams is the data bound into the script prompt templates.
type promptParams struct {
	Topic            string
	Duration         string
	VisualStyle      string
	CustomScript     string
	IncludeCaptions  bool
	IncludeThumbnail bool
}

// GenerationGateway translates domain requests into calls against the
// Generative AI service and translates responses back into artifacts.
type GenerationGateway struct {
	config         *Config
	client         *genai.Client
	models         *QuotaAwareModels
	httpClient     *http.Client
	apiKey         string
	autoTemplate   *template.Template
	customTemplate *template.Template
	pollInterval   time.Duration

	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
	videoPollCounter   metric.Int64Counter
}

// NewGenerationGateway builds the gateway from the loaded configuration and
// the shared service clients. The prompt templates are compiled here so a
// malformed template fails at startup instead of mid-run.
func NewGenerationGateway(config *Config, clients *ServiceClients) (*GenerationGateway, error) {
	autoTemplate, err := template.New("auto-script-prompt").Parse(config.PromptTemplates.AutoPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse auto prompt template: %w", err)
	}
	customTemplate, err := template.New("custom-script-prompt").Parse(config.PromptTemplates.CustomPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse custom prompt template: %w", err)
	}

	pollInterval := time.Duration(config.Generator.PollIntervalSeconds) * time.Second
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	g := &GenerationGateway{
		config:         config,
		client:         clients.GenAIClient,
		models:         NewQuotaAwareModels(clients.GenAIClient.Models, config.Generator.RateLimit),
		httpClient:     clients.HTTPClient,
		apiKey:         clients.APIKey,
		autoTemplate:   autoTemplate,
		customTemplate: customTemplate,
		pollInterval:   pollInterval,
	}

	meter := otel.Meter("github.com/jaycherian/gcp-go-shorts-studio")
	g.inputTokenCounter, _ = meter.Int64Counter("gateway.gemini.token.input")
	g.outputTokenCounter, _ = meter.Int64Counter("gateway.gemini.token.output")
	g.videoPollCounter, _ = meter.Int64Counter("gateway.video.poll.count")

	return g, nil
}

// BuildScriptSchema computes the structured-output schema for the script
// stage. The base fields are always required; script is required only when
// the request carries no custom script, captions only when captions were
// requested, thumbnailPrompt only when a thumbnail was requested.
func BuildScriptSchema(req *model.GenerationRequest) *genai.Schema {
	properties := map[string]*genai.Schema{
		"title": {
			Type:        genai.TypeString,
			Description: "A clickbait/viral title for the video",
		},
		"visualPrompt": {
			Type: genai.TypeString,
			Description: fmt.Sprintf(
				"A detailed visual description for the video generation AI. Style: %s. Focus on movement, lighting, and subject.",
				req.VisualStyle),
		},
		"tags": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "5 viral tags for YouTube/TikTok",
		},
	}
	required := []string{"title", "visualPrompt", "tags"}

	if !req.HasCustomScript() {
		properties["script"] = &genai.Schema{
			Type:        genai.TypeString,
			Description: fmt.Sprintf("The spoken script for the video. Target duration: %s.", req.Duration),
		}
		required = append(required, "script")
	}
	if req.IncludeCaptions {
		properties["captions"] = &genai.Schema{
			Type:        genai.TypeString,
			Description: "SRT style or list of captions/subtitles for the video overlay.",
		}
		required = append(required, "captions")
	}
	if req.IncludeThumbnail {
		properties["thumbnailPrompt"] = &genai.Schema{
			Type: genai.TypeString,
			Description: fmt.Sprintf(
				"A high-quality, descriptive prompt for generating a viral thumbnail image. Style: %s.", req.VisualStyle),
		}
		required = append(required, "thumbnailPrompt")
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}

// GenerateScript runs the script-planning stage and returns the model's raw
// JSON response. Parsing into a ScriptArtifact (and the verbatim custom
// script overwrite) happens in the pipeline's parsing command.
func (g *GenerationGateway) GenerateScript(ctx context.Context, req *model.GenerationRequest) (string, error) {
	tmpl := g.autoTemplate
	if req.HasCustomScript() {
		tmpl = g.customTemplate
	}

	var prompt bytes.Buffer
	err := tmpl.Execute(&prompt, promptParams{
		Topic:            req.Topic,
		Duration:         req.Duration,
		VisualStyle:      req.VisualStyle,
		CustomScript:     req.CustomScript,
		IncludeCaptions:  req.IncludeCaptions,
		IncludeThumbnail: req.IncludeThumbnail,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](g.config.Generator.Temperature),
		SafetySettings:   DefaultSafetySettings,
		ResponseMIMEType: "application/json",
		ResponseSchema:   BuildScriptSchema(req),
	}

	resp, err := g.models.GenerateContent(ctx, g.config.Generator.ScriptModel, genai.Text(prompt.String()), cfg)
	if err != nil {
		return "", model.NewGenerationError(StageScript, "script generation failed: %v", err)
	}
	g.countTokens(ctx, resp)

	out := StripCodeFence(ResponseText(resp))
	if out == "" {
		return "", model.NewGenerationError(StageScript, "no script generated")
	}
	return out, nil
}

// SynthesizeVoice runs text-to-speech for the given script text and wraps
// the returned PCM samples in a WAV container at the configured sample
// rate. Branded voice identifiers are mapped to native ones; names not in
// the mapping table pass through unchanged.
func (g *GenerationGateway) SynthesizeVoice(ctx context.Context, text string, voiceName string) (*model.AudioArtifact, error) {
	effectiveVoice := MapVoiceName(voiceName)

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: effectiveVoice},
			},
		},
	}

	resp, err := g.models.GenerateContent(ctx, g.config.Generator.SpeechModel, genai.Text(text), cfg)
	if err != nil {
		return nil, model.NewGenerationError(StageAudio, "voice synthesis failed: %v", err)
	}

	pcm := firstInlineData(resp)
	if pcm == nil {
		return nil, model.NewGenerationError(StageAudio, "no audio generated")
	}

	return &model.AudioArtifact{
		Data:     media.EncodeWAV(pcm.Data, g.config.Generator.SampleRate),
		MIMEType: "audio/wav",
		Voice:    effectiveVoice,
	}, nil
}

// GenerateThumbnail requests one inline image for the given prompt. The
// response's parts are scanned in order and the first inline-image payload
// wins; interleaved text parts are ignored.
func (g *GenerationGateway) GenerateThumbnail(ctx context.Context, prompt string) (*model.ThumbnailArtifact, error) {
	resp, err := g.models.GenerateContent(ctx, g.config.Generator.ImageModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, model.NewGenerationError(StageThumbnail, "thumbnail generation failed: %v", err)
	}

	blob := firstInlineData(resp)
	if blob == nil {
		return nil, model.NewGenerationError(StageThumbnail, "no thumbnail generated")
	}

	mimeType := blob.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &model.ThumbnailArtifact{Data: blob.Data, MIMEType: mimeType}, nil
}

// GenerateVideo submits a video render and polls the resulting long-running
// operation at the configured interval until it completes, invoking
// onProgress before the first and every subsequent poll. On completion the
// result URI is fetched with the API key appended and the downloaded bytes
// are returned.
func (g *GenerationGateway) GenerateVideo(
	ctx context.Context,
	prompt string,
	aspectRatio model.AspectRatio,
	onProgress ProgressFunc) (*model.VideoArtifact, error) {

	onProgress(MsgVideoSubmitting)

	operation, err := g.client.Models.GenerateVideos(ctx, g.config.Generator.VideoModel, prompt, nil,
		&genai.GenerateVideosConfig{
			NumberOfVideos: 1,
			Resolution:     g.config.Generator.Resolution,
			AspectRatio:    string(aspectRatio),
		})
	if err != nil {
		return nil, model.NewGenerationError(StageVideo, "video generation failed: %v", err)
	}

	onProgress(MsgVideoRendering)

	for !operation.Done {
		select {
		case <-ctx.Done():
			return nil, model.NewGenerationError(StageVideo, "video generation canceled: %v", ctx.Err())
		case <-time.After(g.pollInterval):
		}
		onProgress(MsgVideoStillGoing)
		g.videoPollCounter.Add(ctx, 1)
		operation, err = g.client.Operations.GetVideosOperation(ctx, operation, nil)
		if err != nil {
			return nil, model.NewGenerationError(StageVideo, "video generation polling failed: %v", err)
		}
	}

	return g.finishVideo(ctx, operation, onProgress)
}

// finishVideo turns a completed render operation into the video artifact:
// an error payload on the operation fails the run, a completed operation
// without a result URI fails the run, and otherwise the result bytes are
// downloaded.
func (g *GenerationGateway) finishVideo(
	ctx context.Context,
	operation *genai.GenerateVideosOperation,
	onProgress ProgressFunc) (*model.VideoArtifact, error) {

	if len(operation.Error) > 0 {
		return nil, model.NewGenerationError(StageVideo, "video generation failed: %s", operationErrorMessage(operation.Error))
	}

	uri := ""
	if operation.Response != nil && len(operation.Response.GeneratedVideos) > 0 {
		if v := operation.Response.GeneratedVideos[0].Video; v != nil {
			uri = v.URI
		}
	}
	if uri == "" {
		return nil, model.NewGenerationError(StageVideo, "no video URI in response")
	}

	onProgress(MsgVideoDownloading)
	data, err := g.downloadResult(ctx, uri)
	if err != nil {
		return nil, err
	}

	return &model.VideoArtifact{Data: data, MIMEType: "video/mp4"}, nil
}

// downloadResult fetches the rendered video bytes. The result URI is not
// independently authenticated, so the API key is appended as a query
// parameter.
func (g *GenerationGateway) downloadResult(ctx context.Context, uri string) ([]byte, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+g.apiKey, nil)
	if err != nil {
		return nil, &model.TransportError{Op: "build video download request", Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &model.TransportError{Op: "download video bytes", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.TransportError{
			Op:  "download video bytes",
			Err: fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Op: "read video bytes", Err: err}
	}
	return data, nil
}

// firstInlineData returns the first inline-data blob across the response's
// parts, preserving part order.
func firstInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}

// operationErrorMessage extracts a readable message from a long-running
// operation's error payload.
func operationErrorMessage(opErr map[string]any) string {
	if msg, ok := opErr["message"].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprint(opErr)
}

// countTokens records usage metrics when the response carries them.
func (g *GenerationGateway) countTokens(ctx context.Context, resp *genai.GenerateContentResponse) {
	if resp == nil || resp.UsageMetadata == nil {
		return
	}
	g.inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
	g.outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
}
