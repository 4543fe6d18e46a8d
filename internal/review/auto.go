package review

import (
	"context"

	"github.com/manhnguyen1206/deckflow/internal/logger"
)

type implAutoReviewer struct {
	logger logger.Logger
}

// NewAutoReviewer creates a reviewer that approves every candidate.
// Used for unattended runs and the watch loop.
func NewAutoReviewer(log logger.Logger) Reviewer {
	return &implAutoReviewer{logger: log}
}

func (r *implAutoReviewer) Review(ctx context.Context, batch []Candidate) ([]Decision, error) {
	decisions := make([]Decision, len(batch))
	for i, c := range batch {
		r.logger.Debug(ctx, "Auto-approving image %d on slide %d: %s", c.ImageNumber, c.Item.SlideNumber, c.Item.Content)
		decisions[i] = Decision{Action: ActionApprove}
	}
	return decisions, nil
}
