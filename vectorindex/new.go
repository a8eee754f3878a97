// Copyright 2025 Sellsense Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vectorindex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sellsense/knowbase/ai"
)

// FallbackPolicy controls what New does when the remote backend is
// unreachable.
type FallbackPolicy int

const (
	// FallbackPermanent switches to the in-process index for the lifetime of
	// the returned Index. The remote backend is not retried.
	FallbackPermanent FallbackPolicy = iota

	// FallbackDisabled returns the connection error instead of degrading.
	FallbackDisabled
)

type newOptions struct {
	policy FallbackPolicy
	logger *slog.Logger
}

// Option configures New.
type Option func(*newOptions)

// WithFallbackPolicy overrides the default FallbackPermanent policy.
func WithFallbackPolicy(policy FallbackPolicy) Option {
	return func(o *newOptions) { o.policy = policy }
}

// WithLogger overrides the logger used during backend selection.
func WithLogger(logger *slog.Logger) Option {
	return func(o *newOptions) { o.logger = logger }
}

// New selects a backend: the remote index when config.URL is set and the
// instance answers a ping, otherwise the in-process index. The choice is
// made once; a remote outage after startup does not switch backends.
func New(ctx context.Context, config QdrantConfig, embedder ai.Embedder, opts ...Option) (Index, error) {
	options := newOptions{
		policy: FallbackPermanent,
		logger: slog.Default().With("component", "vectorindex"),
	}
	for _, opt := range opts {
		opt(&options)
	}

	if config.URL == "" {
		options.logger.Info("no vector backend configured, using in-process index")
		return NewMemory(embedder)
	}

	remote, err := NewQdrant(config, embedder)
	if err != nil {
		return nil, err
	}
	if err := remote.Ping(ctx); err != nil {
		if options.policy == FallbackDisabled {
			return nil, fmt.Errorf("vector backend unreachable: %w", err)
		}
		options.logger.Warn("vector backend unreachable, using in-process index",
			"url", config.URL, "error", err)
		return NewMemory(embedder)
	}

	options.logger.Info("using remote vector backend", "url", config.URL, "collection", remote.config.Collection)
	return remote, nil
}
