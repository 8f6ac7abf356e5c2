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

// Package media provides pure, deterministic formatting of raw media bytes.
// This file implements the WAV container: the speech model returns raw
// single-channel 16-bit little-endian PCM samples, and wrapping them in a
// standard 44-byte RIFF/WAVE header makes them playable by any media player.
//
// Functions:
//   - EncodeWAV: prefixes raw PCM bytes with a WAV header.
//   - ParseWAVHeader: decodes a WAV header back into its fields.
//   - IsWAV: cheap marker check used by the audio pass-through path.
package media

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the byte length of the canonical PCM WAV header.
const HeaderSize = 44

// Fixed format parameters for synthesized voiceovers: mono, 16-bit samples.
const (
	numChannels   = 1
	bitsPerSample = 16
)

// Header holds the decoded fields of a PCM WAV header.
type Header struct {
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// EncodeWAV wraps raw single-channel 16-bit little-endian PCM samples in a
// standard WAV container at the given sample rate. The returned buffer is the
// 44-byte header followed by the sample bytes verbatim.
//
// Inputs:
//   - pcm: the raw sample bytes.
//   - sampleRate: samples per second, 24000 for the speech model's output.
//
// Outputs:
//   - []byte: a complete, playable WAV file.
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	dataSize := uint32(len(pcm))
	byteRate := uint32(sampleRate * numChannels * bitsPerSample / 8)
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	out := make([]byte, HeaderSize+len(pcm))

	// RIFF chunk descriptor.
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], 36+dataSize)
	copy(out[8:12], "WAVE")

	// fmt sub-chunk: PCM format code 1, fixed mono 16-bit layout.
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1)
	binary.LittleEndian.PutUint16(out[22:24], numChannels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)

	// data sub-chunk followed by the samples.
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], dataSize)
	copy(out[HeaderSize:], pcm)

	return out
}

// ParseWAVHeader decodes the header of a WAV buffer produced by EncodeWAV
// (or any canonical PCM WAV file).
//
// Inputs:
//   - b: at least the first 44 bytes of a WAV file.
//
// Outputs:
//   - Header: the decoded format fields.
//   - error: if the buffer is too short or the chunk markers do not match.
func ParseWAVHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, fmt.Errorf("wav header requires %d bytes, got %d", HeaderSize, len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return h, fmt.Errorf("missing RIFF/WAVE markers")
	}
	if string(b[12:16]) != "fmt " {
		return h, fmt.Errorf("missing fmt sub-chunk")
	}
	if string(b[36:40]) != "data" {
		return h, fmt.Errorf("missing data sub-chunk")
	}
	h.NumChannels = binary.LittleEndian.Uint16(b[22:24])
	h.SampleRate = binary.LittleEndian.Uint32(b[24:28])
	h.ByteRate = binary.LittleEndian.Uint32(b[28:32])
	h.BlockAlign = binary.LittleEndian.Uint16(b[32:34])
	h.BitsPerSample = binary.LittleEndian.Uint16(b[34:36])
	h.DataSize = binary.LittleEndian.Uint32(b[40:44])
	return h, nil
}

// IsWAV reports whether the buffer starts with the RIFF/WAVE markers.
func IsWAV(b []byte) bool {
	return len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WAVE"
}
