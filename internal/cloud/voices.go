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
// service. This file translates the externally branded voice identifiers
// from the voice catalog to the speech model's native prebuilt voices.
package cloud

// voiceMapping maps branded catalog identifiers to native prebuilt voice
// names. Identifiers absent from the table are assumed native already and
// pass through unchanged.
var voiceMapping = map[string]string{
	"eleven_adam":   "Charon",
	"eleven_rachel": "Kore",
	"eleven_antoni": "Fenrir",
	"eleven_bella":  "Zephyr",
	"eleven_josh":   "Fenrir",
}

// MapVoiceName resolves a catalog voice identifier to the speech model's
// native voice name. Mapping is idempotent: a native name maps to itself.
func MapVoiceName(name string) string {
	if native, ok := voiceMapping[name]; ok {
		return native
	}
	return name
}
