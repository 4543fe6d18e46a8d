package pipeline

import (
	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/describe"
	"github.com/manhnguyen1206/deckflow/internal/imaging"
	"github.com/manhnguyen1206/deckflow/internal/index"
	"github.com/manhnguyen1206/deckflow/internal/logger"
	"github.com/manhnguyen1206/deckflow/internal/notes"
	"github.com/manhnguyen1206/deckflow/internal/report"
	"github.com/manhnguyen1206/deckflow/internal/review"
)

type implPipeline struct {
	cfg       *config.Config
	converter imaging.Converter
	index     index.Index
	describer describe.Generator
	reviewer  review.Workflow
	notes     notes.Generator
	report    report.Writer
	logger    logger.Logger
}

// New creates a Pipeline instance.
func New(
	cfg *config.Config,
	converter imaging.Converter,
	idx index.Index,
	describer describe.Generator,
	reviewer review.Workflow,
	notesGen notes.Generator,
	reportWriter report.Writer,
	log logger.Logger,
) Pipeline {
	return &implPipeline{
		cfg:       cfg,
		converter: converter,
		index:     idx,
		describer: describer,
		reviewer:  reviewer,
		notes:     notesGen,
		report:    reportWriter,
		logger:    log,
	}
}
