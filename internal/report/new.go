package report

import (
	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/logger"
)

type implWriter struct {
	logger   logger.Logger
	fontName string
	fontSize uint64
}

// New creates a report Writer with the configured document font.
func New(cfg *config.Config, log logger.Logger) Writer {
	return &implWriter{
		logger:   log,
		fontName: cfg.Report.Font,
		fontSize: uint64(cfg.Report.FontSize),
	}
}
