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
// service. This file resolves the one shared credential every gateway
// operation depends on. Resolution happens exactly once, before any client
// is constructed; a missing key aborts the run before a network call is
// ever attempted.
package cloud

import (
	"fmt"
	"os"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/model"
)

// DefaultAPIKeyVar is the environment variable consulted for the Gemini API
// key when the configuration does not name another one.
const DefaultAPIKeyVar = "GEMINI_API_KEY"

// ResolveAPIKey reads the API key from the named environment variable
// (DefaultAPIKeyVar when varName is empty). A process-level .env file is
// honored because main loads it with godotenv before this runs.
//
// Outputs:
//   - string: the resolved key.
//   - error: a *model.ConfigurationError with remediation steps if the
//     variable is unset or empty.
func ResolveAPIKey(varName string) (string, error) {
	if varName == "" {
		varName = DefaultAPIKeyVar
	}
	key := os.Getenv(varName)
	if key == "" {
		return "", &model.ConfigurationError{
			Message: fmt.Sprintf(
				"API key missing. Set the %s environment variable (or add it to a .env file next to the binary) "+
					"and restart the service. Keys are created at https://aistudio.google.com/apikey.", varName),
		}
	}
	return key, nil
}
