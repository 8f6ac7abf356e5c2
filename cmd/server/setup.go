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

package main

import (
	"context"
	"log"
	"os"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-shorts-studio/internal/core/services"
)

// StateManager holds the shared components for the application. The service
// layer is session-scoped in principle; this server hosts one session, which
// matches a studio instance serving one creator at a time.
type StateManager struct {
	config            *cloud.Config
	cloud             *cloud.ServiceClients
	gateway           *cloud.GenerationGateway
	generationService *services.GenerationService
}

var state = &StateManager{}

// SetupOS points the configuration loader at the local runtime files.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

// GetConfig loads the application configuration once and caches it.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup os: %v\n", err)
		}
		// Create a default cloud config
		config := cloud.NewConfig()
		// Load it from the TOML files
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState initializes the application state and dependencies: the service
// clients (failing fast on a missing credential), the generation gateway,
// and the orchestrator with a fresh state tracker.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	gateway, err := cloud.NewGenerationGateway(config, cloudClients)
	if err != nil {
		panic(err)
	}
	state.gateway = gateway

	state.generationService = services.NewGenerationService(gateway, services.NewStateTracker())
}
