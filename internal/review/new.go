package review

import (
	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/describe"
	"github.com/manhnguyen1206/deckflow/internal/logger"
)

type implWorkflow struct {
	reviewer  Reviewer
	describer describe.Generator
	logger    logger.Logger
	batchSize int
}

// New creates a Workflow around the given reviewer.
func New(reviewer Reviewer, describer describe.Generator, cfg *config.Config, log logger.Logger) Workflow {
	return &implWorkflow{
		reviewer:  reviewer,
		describer: describer,
		logger:    log,
		batchSize: cfg.Review.BatchSize,
	}
}

// NewReviewer picks the reviewer implementation for the configured mode.
func NewReviewer(cfg *config.Config, log logger.Logger) Reviewer {
	if cfg.Review.Mode == config.ReviewModeInteractive {
		return NewInteractiveReviewer(log)
	}
	return NewAutoReviewer(log)
}
