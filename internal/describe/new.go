package describe

import (
	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/gemini"
	"github.com/manhnguyen1206/deckflow/internal/index"
	"github.com/manhnguyen1206/deckflow/internal/logger"
	"github.com/manhnguyen1206/deckflow/internal/ocr"
)

type implGenerator struct {
	index         index.Index
	llm           gemini.Client
	ocr           ocr.Extractor
	logger        logger.Logger
	maxTokens     int
	maxConcurrent int
}

// New creates a Generator.
func New(idx index.Index, llm gemini.Client, extractor ocr.Extractor, cfg *config.Config, log logger.Logger) Generator {
	return &implGenerator{
		index:         idx,
		llm:           llm,
		ocr:           extractor,
		logger:        log,
		maxTokens:     cfg.Gemini.MaxOutputTokens,
		maxConcurrent: cfg.Performance.MaxConcurrent,
	}
}
