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

package workflow

import "errors"

var (
	// ErrPlannerRequired indicates a pipeline was constructed without a planner.
	ErrPlannerRequired = errors.New("planner is required")

	// ErrRetrieverRequired indicates a pipeline was constructed without a retriever.
	ErrRetrieverRequired = errors.New("retriever is required")

	// ErrGeneratorRequired indicates a pipeline was constructed without a generator.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrEmptyInput indicates Run was called with blank input text.
	ErrEmptyInput = errors.New("input text is empty")
)
