package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// Run batches every image description through the reviewer. Regenerated
// candidates get a fresh description and go back into the queue, so the
// loop only ends once each image is approved, edited or deleted.
func (w *implWorkflow) Run(ctx context.Context, collectionID string, pres *model.Presentation) error {
	var pending []Candidate
	for num, item := range pres.Images() {
		if item.Deleted() {
			continue
		}
		pending = append(pending, Candidate{Item: item, ImageNumber: num + 1})
	}
	if len(pending) == 0 {
		w.logger.Info(ctx, "No image descriptions to review")
		return nil
	}

	w.logger.Info(ctx, "Reviewing %d image descriptions in batches of %d", len(pending), w.batchSize)

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := w.batchSize
		if n > len(pending) {
			n = len(pending)
		}
		batch := pending[:n]
		pending = pending[n:]

		decisions, err := w.reviewer.Review(ctx, batch)
		if err != nil {
			return fmt.Errorf("review batch: %w", err)
		}
		if len(decisions) != len(batch) {
			return fmt.Errorf("review batch: got %d decisions for %d candidates", len(decisions), len(batch))
		}

		for i, d := range decisions {
			c := batch[i]
			switch d.Action {
			case ActionApprove:
				w.logger.Debug(ctx, "Image %d approved", c.ImageNumber)

			case ActionEdit:
				text := strings.TrimSpace(d.Text)
				if text == "" {
					w.logger.Warn(ctx, "Empty edit for image %d, keeping original description", c.ImageNumber)
					continue
				}
				c.Item.Content = text
				w.logger.Debug(ctx, "Image %d edited", c.ImageNumber)

			case ActionDelete:
				c.Item.Content = model.DeletedContent
				w.logger.Info(ctx, "Image %d on slide %d marked deleted", c.ImageNumber, c.Item.SlideNumber)

			case ActionRegenerate:
				desc, err := w.describer.Describe(ctx, collectionID, c.Item)
				if err != nil {
					w.logger.Warn(ctx, "Could not regenerate description for image %d: %v", c.ImageNumber, err)
				} else {
					c.Item.Content = desc
				}
				pending = append(pending, c)

			default:
				return fmt.Errorf("review batch: unknown action %q for image %d", d.Action, c.ImageNumber)
			}
		}
	}

	return nil
}
