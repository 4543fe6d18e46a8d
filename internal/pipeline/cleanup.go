package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToArchived moves the original deck out of the input folder so it
// won't be picked up again.
func (p *implPipeline) moveToArchived(ctx context.Context, deckPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(deckPath))
	p.logger.Info(ctx, "Archiving original: %s -> %s", deckPath, destPath)

	if err := os.Rename(deckPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
