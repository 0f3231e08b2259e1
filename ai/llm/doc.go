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


// Package llm implements the ai interfaces against real model APIs.
//
// Embeddings go through any OpenAI-compatible endpoint (Ollama, LocalAI,
// the OpenAI API itself). Generation uses Gemini as the primary provider
// with an optional OpenAI fallback; NewGenerator assembles the chain from
// an ai.Config.
package llm
