package report

import (
	"context"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// Writer produces a companion accessibility report document for a
// processed deck: per-slide notes plus the final image descriptions.
type Writer interface {
	Write(ctx context.Context, pres *model.Presentation, notes map[int]string, outputPath string) error
}
