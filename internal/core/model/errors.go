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
// This file contains the error taxonomy shared by the gateway, the
// orchestrator and the HTTP boundary:
//
//   - ConfigurationError: credential missing or malformed; fatal to the run.
//   - ValidationError: the request fails pre-flight checks; the run never
//     starts and no network call is made.
//   - UpgradeRequiredError: a tier-gated option was selected on a restricted
//     account; raised instead of starting the run.
//   - GenerationError: a remote stage returned an unusable, empty or error
//     payload; aborts the run at the point of failure.
//   - TransportError: a network or download failure; propagates exactly like
//     a GenerationError.
//
// None of these trigger automatic retries. The user-visible remedy is always
// to re-submit the request, which starts a fresh run.
package model

import "fmt"

// ConfigurationError indicates the shared credential could not be resolved.
// Message carries actionable remediation text for the operator.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ValidationError indicates a request failed a pre-flight check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
}

// UpgradeRequiredError is the upgrade signal raised when a free-tier request
// selects a restricted option. Option holds the offending catalog value.
type UpgradeRequiredError struct {
	Option string
}

func (e *UpgradeRequiredError) Error() string {
	return fmt.Sprintf("option %q requires a pro account", e.Option)
}

// GenerationError indicates a remote stage produced no usable payload or
// reported an error of its own. Stage names the pipeline stage that failed.
type GenerationError struct {
	Stage   string
	Message string
}

func (e *GenerationError) Error() string { return e.Message }

// NewGenerationError builds a GenerationError with a formatted message.
func NewGenerationError(stage string, format string, args ...any) *GenerationError {
	return &GenerationError{Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// TransportError indicates a network-level failure, such as the final video
// byte download not succeeding. It propagates identically to GenerationError.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
