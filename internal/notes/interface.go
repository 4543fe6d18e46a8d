package notes

import (
	"context"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// Generator produces accessible speaker notes for each slide, keyed by
// slide number. Per-slide failures fall back to plain notes built from
// the slide content; they never abort the deck.
type Generator interface {
	GenerateAll(ctx context.Context, pres *model.Presentation) (map[int]string, error)
	Generate(ctx context.Context, slide *model.Slide) string
}
