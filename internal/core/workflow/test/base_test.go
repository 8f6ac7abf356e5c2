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

// Package workflow_test contains tests for the core generation workflow.
// This file provides the shared setup via TestMain: structured logging and
// an OTel-bridged logger for the suite. The workflow tests run entirely
// against a fake gateway, so no service clients are constructed here.
package workflow_test

import (
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-shorts-studio/internal/telemetry"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const tName = "github.com/jaycherian/gcp-go-shorts-studio/tests/workflow"

var logger = otelslog.NewLogger(tName)

// TestMain initializes logging once for the whole suite.
func TestMain(m *testing.M) {
	telemetry.SetupLogging()
	logger.Info("completed test setup")

	os.Exit(m.Run())
}
