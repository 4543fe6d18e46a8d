package ocr

import (
	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/logger"
	"github.com/manhnguyen1206/deckflow/pkg/executor"
)

type implExtractor struct {
	cfg      config.OCRConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Extractor backed by the tesseract binary.
func New(cfg config.OCRConfig, exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
