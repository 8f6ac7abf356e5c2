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
// audio stage, which resolves the run's voiceover from exactly one of three
// disjoint sources:
//
//   - "ai": the script text is synthesized with a text-to-speech model and
//     the raw PCM response is wrapped into a playable WAV container.
//   - "file": the user's uploaded audio bytes pass through unchanged. The
//     content type is sniffed from the bytes, never taken from the upload's
//     declared type.
//   - "record": the browser-recorded clip passes through unchanged.
//
// The pass-through paths never touch the network: user-provided audio is
// already final.
package commands

import (
	"github.com/h2non/filetype"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/media"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// AudioResolver is a command that produces the run's AudioArtifact from the
// source the request selected.
type AudioResolver struct {
	cor.BaseCommand
	gateway Gateway   // Used only by the "ai" path.
	sink    StateSink // Receives the finished audio artifact.
}

// NewAudioResolver is the constructor for the AudioResolver command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - inputParamName: The context key holding the parsed ScriptArtifact.
//   - gateway: The remote-model gateway, for AI voice synthesis.
//   - sink: The state sink that receives the merged artifact.
//
// Outputs:
//   - *AudioResolver: A pointer to the newly instantiated command.
func NewAudioResolver(name string, inputParamName string, gateway Gateway, sink StateSink) *AudioResolver {
	out := AudioResolver{BaseCommand: *cor.NewBaseCommand(name), gateway: gateway, sink: sink}
	out.InputParamName = inputParamName
	return &out
}

// Execute contains the core logic for resolving the voiceover.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (t *AudioResolver) Execute(context cor.Context) {
	script := context.Get(t.GetInputParam()).(*model.ScriptArtifact)
	req := context.Get(GetRequestParamName()).(*model.GenerationRequest)

	var artifact *model.AudioArtifact
	var err error

	switch req.AudioSource {
	case model.AudioSourceFile:
		artifact = passThroughAudio(req.AudioUpload)
	case model.AudioSourceRecord:
		artifact = passThroughAudio(req.Recording)
	default:
		t.sink.SetMessage("Generating voiceover...")
		artifact, err = t.gateway.SynthesizeVoice(context.GetContext(), script.Script, req.VoiceName)
	}

	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	t.sink.MergeAudio(artifact)

	context.Add(t.GetOutputParam(), artifact)
}

// passThroughAudio wraps user-provided bytes in an artifact, sniffing the
// content type from the data itself.
func passThroughAudio(data []byte) *model.AudioArtifact {
	return &model.AudioArtifact{Data: data, MIMEType: sniffAudioMIME(data)}
}

// sniffAudioMIME detects the audio container from the byte signature. The
// WAV check runs first because the detection library reports WAV under the
// broader "audio/x-wav" name while the pipeline standardizes on "audio/wav".
func sniffAudioMIME(data []byte) string {
	if media.IsWAV(data) {
		return "audio/wav"
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return "application/octet-stream"
}
