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


// Package ai defines the interfaces for language-model services used by
// lexcheck: text embedding and text generation.
//
// The package contains only the contracts and their shared configuration.
// Concrete providers live in subpackages: ai/llm implements the
// interfaces against real APIs (an OpenAI-compatible embedding endpoint,
// Gemini and OpenAI for generation, with optional fallback between
// them), and ai/mock provides deterministic in-memory implementations
// for tests.
package ai
