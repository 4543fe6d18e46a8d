package describe

import (
	"context"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// Generator produces candidate image descriptions grounded in retrieved
// slide context and OCR text.
type Generator interface {
	// DescribeAll fills in a candidate description for every image in
	// the deck, with bounded concurrency. Single-image failures fall
	// back to a positional description and never abort the deck.
	DescribeAll(ctx context.Context, collectionID string, pres *model.Presentation) error
	// Describe generates one candidate description, used by the review
	// loop for regeneration.
	Describe(ctx context.Context, collectionID string, item *model.Item) (string, error)
}
