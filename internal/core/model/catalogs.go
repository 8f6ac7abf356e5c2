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

// Package model defines the core data structures for the application.
// This file contains the tier-gated option catalogs consumed by request
// validation and served to the presentation layer. Each option carries a
// Restricted flag; selecting a restricted option on a free-tier account
// refuses the run with an UpgradeRequiredError.
package model

// OptionItem is one entry of a selectable catalog. Value is what a request
// carries; Label is display text for the presentation layer.
type OptionItem struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	Restricted bool   `json:"restricted,omitempty"`
}

// VoiceCustom is the catalog value representing a user-named voice. The
// actual voice identifier then arrives in the request's VoiceName field.
const VoiceCustom = "custom_voice"

// DurationOptions enumerates the selectable target durations. Values are the
// labels fed verbatim into the script prompt.
var DurationOptions = []OptionItem{
	{Label: "30 Seconds", Value: "30 seconds"},
	{Label: "1 Minute", Value: "1 minute"},
	{Label: "2 Minutes", Value: "2 minutes"},
	{Label: "4 Minutes", Value: "4 minutes", Restricted: true},
	{Label: "10 Minutes", Value: "10 minutes", Restricted: true},
	{Label: "30 Minutes", Value: "30 minutes", Restricted: true},
}

// VoiceOptions enumerates the selectable voices. Native voice identifiers
// pass straight to the speech model; the branded identifiers are translated
// by the gateway's voice mapping table.
var VoiceOptions = []OptionItem{
	{Label: "Fenrir (Deep Male)", Value: "Fenrir"},
	{Label: "Puck (Energetic Male)", Value: "Puck"},
	{Label: "Kore (Calm Female)", Value: "Kore"},
	{Label: "Charon (Authoritative Male)", Value: "Charon"},
	{Label: "Zephyr (Friendly Female)", Value: "Zephyr"},
	{Label: "Adam (Deep Narrative)", Value: "eleven_adam", Restricted: true},
	{Label: "Rachel (Clear & Calm)", Value: "eleven_rachel", Restricted: true},
	{Label: "Antoni (Well Rounded)", Value: "eleven_antoni", Restricted: true},
	{Label: "Bella (Soft & Friendly)", Value: "eleven_bella", Restricted: true},
	{Label: "Josh (Deep & Resonant)", Value: "eleven_josh", Restricted: true},
	{Label: "Custom Voice Name", Value: VoiceCustom, Restricted: true},
}

// VisualStyleOptions enumerates the selectable visual styles. Values are the
// full style descriptors injected into the visual-prompt instructions.
var VisualStyleOptions = []OptionItem{
	{Label: "Cinematic (High Quality)", Value: "Cinematic, dramatic lighting, high production value, 4k, movie feel", Restricted: true},
	{Label: "Documentary (Realistic)", Value: "Realistic, documentary style, natural lighting, handheld camera feel"},
	{Label: "Animated (3D/2D)", Value: "3D animation style, vibrant colors, smooth rendering, Pixar-like"},
	{Label: "Fast-Paced (Social)", Value: "High energy, bright lighting, trendy social media aesthetic, dynamic movement"},
	{Label: "Cyberpunk (Futuristic)", Value: "Cyberpunk, neon lights, futuristic, dark atmosphere, high tech", Restricted: true},
	{Label: "Minimalist (Clean)", Value: "Minimalist, clean lines, soft lighting, uncluttered composition"},
}

// FindOption looks up a catalog entry by value.
func FindOption(options []OptionItem, value string) (OptionItem, bool) {
	for _, o := range options {
		if o.Value == value {
			return o, true
		}
	}
	return OptionItem{}, false
}

// IsRestricted reports whether value names a restricted catalog entry.
// Values absent from the catalog are not restricted: a custom voice
// identifier, for example, is gated by the VoiceCustom entry itself, not by
// the free-form name the user typed.
func IsRestricted(options []OptionItem, value string) bool {
	o, ok := FindOption(options, value)
	return ok && o.Restricted
}
