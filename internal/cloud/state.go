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
// service. This file initializes and holds the client objects the gateway
// needs: the genai client authenticated with the resolved API key, and an
// HTTP client for fetching rendered video bytes from result URIs. It acts
// as a small dependency injection container created once at startup (or
// once per test suite) and shared from there.
//
// Functions:
//   - NewCloudServiceClients: resolves the credential and constructs all
//     clients; a missing credential fails here, before any network call.
package cloud

import (
	"context"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// downloadTimeout bounds the final video byte fetch. Renders run minutes
// remotely but the download itself is a single HTTP GET.
const downloadTimeout = 5 * time.Minute

// ServiceClients is the container for all clients that talk to external
// services, shared across the application.
type ServiceClients struct {
	GenAIClient *genai.Client // Client for the Generative AI API.
	HTTPClient  *http.Client  // Client for downloading rendered video bytes.
	APIKey      string        // The resolved credential; result URIs need it appended to download.
}

// NewCloudServiceClients resolves the shared API key and initializes the
// clients the gateway depends on.
//
// Inputs:
//   - ctx: the root context for client construction.
//   - config: the loaded application configuration.
//
// Outputs:
//   - *ServiceClients: the initialized container.
//   - error: a *model.ConfigurationError when the credential is missing, or
//     a client construction error.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	apiKey, err := ResolveAPIKey(config.Application.APIKeyVar)
	if err != nil {
		return nil, err
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &ServiceClients{
		GenAIClient: gc,
		HTTPClient:  &http.Client{Timeout: downloadTimeout},
		APIKey:      apiKey,
	}, nil
}

// Close releases client resources. The genai client holds no closable
// connection; idle HTTP connections are shut down explicitly.
func (c *ServiceClients) Close() {
	c.HTTPClient.CloseIdleConnections()
}
