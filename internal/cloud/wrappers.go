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
// service. This file wraps the raw genai.Models handle with a rate limiter
// (Decorator pattern) so the service stays inside its per-minute quota even
// when several generate calls land close together.
//
// The wrapper paces requests only. It does not retry: a stage failure must
// surface immediately so the pipeline can abort the run.
package cloud

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// QuotaAwareModels decorates a genai.Models handle with a token-bucket rate
// limiter shared by every generate-content call the gateway makes.
type QuotaAwareModels struct {
	Models  *genai.Models
	limiter *rate.Limiter
}

// NewQuotaAwareModels wraps the given models handle with a limiter allowing
// requestsPerSecond calls, with an equal burst.
func NewQuotaAwareModels(models *genai.Models, requestsPerSecond int) *QuotaAwareModels {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &QuotaAwareModels{
		Models:  models,
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(requestsPerSecond)), requestsPerSecond),
	}
}

// GenerateContent waits for a limiter token, then forwards the call to the
// underlying models handle.
func (q *QuotaAwareModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if err := q.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return q.Models.GenerateContent(ctx, model, contents, config)
}
