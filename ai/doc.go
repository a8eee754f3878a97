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


// Package ai provides abstractions for the external AI services used by knowbase.
//
// This package defines interfaces for text embeddings, chat completion,
// image understanding, and speech-to-text. The core pipeline depends on these
// abstractions rather than on concrete implementations, so every service call
// can be replaced by a test double and every degraded path can be exercised
// deterministically.
//
// # Interfaces
//
//   - Embedder: generates vector embeddings from text
//   - Completer: returns chat completions, JSON mode for structured output
//   - VisionService: describes images and reads text out of them
//   - Transcriber: converts speech in audio/video to text
//   - Provider: aggregates the services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors in implementation packages return interface types to
// enforce abstraction; mock constructors return concrete types so tests can
// inject behavior and assert call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Model X has 300 horsepower.")
package ai
