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


package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - Category, LawGroup and SourceType must hold defined values
//
// NOT validated:
//   - Vector (can be empty until the rebuild pipeline embeds it)
//   - Section (guideline and page chunks may carry a synthetic label)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if err := ValidateCategory(chunk.Meta.Category); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	if err := ValidateLawGroup(chunk.Meta.LawGroup); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	if err := ValidateSourceType(chunk.Meta.SourceType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	return nil
}

// ValidateCategory validates that a Category has a defined value.
func ValidateCategory(c Category) error {
	switch c {
	case CategoryUnknown, CategoryStatute, CategoryOKExample, CategoryNGExample, CategoryStandard:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidCategory, c)
	}
}

// ValidateLawGroup validates that a LawGroup has a defined value.
func ValidateLawGroup(g LawGroup) error {
	switch g {
	case LawGroupOther, LawGroupPharma, LawGroupPremiums:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidLawGroup, g)
	}
}

// ValidateSourceType validates that a SourceType has a defined value.
func ValidateSourceType(s SourceType) error {
	switch s {
	case SourceTypeUnknown, SourceTypeStructuredLaw, SourceTypeMarkdown, SourceTypePageText:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidSourceType, s)
	}
}
