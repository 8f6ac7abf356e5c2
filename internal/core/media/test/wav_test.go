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

// Package media_test contains unit tests for the media formatting helpers.
// This file verifies the WAV container encoding used to make the speech
// model's raw PCM output playable.
package media_test

import (
	"bytes"
	"testing"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeWAVHeaderLayout verifies the exact byte layout of the generated
// header: chunk markers at their canonical offsets and every derived field
// computed from the fixed mono 16-bit format.
func TestEncodeWAVHeaderLayout(t *testing.T) {
	pcm := make([]byte, 4800) // 100ms of samples at 24kHz mono 16-bit.
	out := media.EncodeWAV(pcm, 24000)

	require.Len(t, out, media.HeaderSize+len(pcm))
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "fmt ", string(out[12:16]))
	assert.Equal(t, "data", string(out[36:40]))

	h, err := media.ParseWAVHeader(out)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), h.NumChannels)
	assert.Equal(t, uint32(24000), h.SampleRate)
	assert.Equal(t, uint32(48000), h.ByteRate) // 24000 * 1 channel * 2 bytes.
	assert.Equal(t, uint16(2), h.BlockAlign)
	assert.Equal(t, uint16(16), h.BitsPerSample)
	assert.Equal(t, uint32(len(pcm)), h.DataSize)
}

// TestEncodeWAVPreservesSamples verifies the sample bytes pass through the
// container untouched, at more than one sample rate.
func TestEncodeWAVPreservesSamples(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFE}

	for _, rate := range []int{16000, 24000, 44100} {
		out := media.EncodeWAV(pcm, rate)
		assert.True(t, bytes.Equal(pcm, out[media.HeaderSize:]))

		h, err := media.ParseWAVHeader(out)
		require.NoError(t, err)
		assert.Equal(t, uint32(rate), h.SampleRate)
	}
}

// TestEncodeWAVEmptyPayload verifies a zero-sample encode still yields a
// valid 44-byte container. The speech model should never return an empty
// payload, but the encoder must not be the thing that breaks if it does.
func TestEncodeWAVEmptyPayload(t *testing.T) {
	out := media.EncodeWAV(nil, 24000)
	require.Len(t, out, media.HeaderSize)

	h, err := media.ParseWAVHeader(out)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), h.DataSize)
}

// TestParseWAVHeaderRejectsGarbage verifies the parser refuses short buffers
// and buffers with the wrong chunk markers.
func TestParseWAVHeaderRejectsGarbage(t *testing.T) {
	_, err := media.ParseWAVHeader([]byte("too short"))
	assert.Error(t, err)

	bogus := make([]byte, media.HeaderSize)
	copy(bogus, "JUNK")
	_, err = media.ParseWAVHeader(bogus)
	assert.Error(t, err)
}

// TestIsWAV verifies the signature sniff used by the audio pass-through
// paths.
func TestIsWAV(t *testing.T) {
	assert.True(t, media.IsWAV(media.EncodeWAV([]byte{0x00, 0x00}, 24000)))
	assert.False(t, media.IsWAV([]byte("ID3\x03rest of an mp3")))
	assert.False(t, media.IsWAV(nil))
}
