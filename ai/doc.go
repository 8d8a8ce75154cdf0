// Copyright 2025 Poiesic Systems
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


// Package ai provides abstractions for the inference services used by the
// concept map pipeline.
//
// This package defines interfaces for the four capabilities the pipeline
// consumes: text embedding, zero-shot classification, summarization and
// named-entity extraction. It follows the dependency inversion principle,
// allowing the pipeline to depend on abstractions rather than concrete
// transports.
//
// # Design Principles
//
// The package is designed around five interfaces:
//
//   - Embedder: generates vector embeddings from text
//   - Classifier: scores text against candidate labels
//   - Summarizer: produces short-form text
//   - EntityExtractor: identifies named entities
//   - Provider: aggregates the services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider) return interface types to enforce
// abstraction. Test utility constructors (mock.NewEmbedder and friends)
// return concrete types to enable behavior injection and call-count
// assertions.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, []string{"Hello world"})
package ai
