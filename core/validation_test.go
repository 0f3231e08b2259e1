package core

import (
	"errors"
	"testing"
)

func validChunk() *Chunk {
	return &Chunk{
		ID:      IDFromContent("a.xml", "第五条"),
		Content: "内閣総理大臣は、不当な顧客の誘引を防止するため必要があると認めるときは、告示により制限を定めることができる。",
		Meta: Metadata{
			Title:         "不当景品類及び不当表示防止法",
			Category:      CategoryStatute,
			LawGroup:      LawGroupPremiums,
			Section:       "第五条",
			MainProvision: true,
			SourceType:    SourceTypeStructuredLaw,
			Path:          "a.xml",
		},
	}
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid chunk", func(t *testing.T) {
		if err := ValidateChunk(validChunk()); err != nil {
			t.Errorf("ValidateChunk() unexpected error: %v", err)
		}
	})

	t.Run("nil chunk", func(t *testing.T) {
		if err := ValidateChunk(nil); !errors.Is(err, ErrInvalidChunk) {
			t.Errorf("ValidateChunk(nil) = %v, want ErrInvalidChunk", err)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		c := validChunk()
		c.Content = ""
		err := ValidateChunk(c)
		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("ValidateChunk() = %v, want ErrEmptyContent", err)
		}
	})

	t.Run("undefined category", func(t *testing.T) {
		c := validChunk()
		c.Meta.Category = Category(99)
		if err := ValidateChunk(c); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("ValidateChunk() = %v, want ErrInvalidCategory", err)
		}
	})

	t.Run("undefined law group", func(t *testing.T) {
		c := validChunk()
		c.Meta.LawGroup = LawGroup(-1)
		if err := ValidateChunk(c); !errors.Is(err, ErrInvalidLawGroup) {
			t.Errorf("ValidateChunk() = %v, want ErrInvalidLawGroup", err)
		}
	})

	t.Run("undefined source type", func(t *testing.T) {
		c := validChunk()
		c.Meta.SourceType = SourceType(42)
		if err := ValidateChunk(c); !errors.Is(err, ErrInvalidSourceType) {
			t.Errorf("ValidateChunk() = %v, want ErrInvalidSourceType", err)
		}
	})
}
