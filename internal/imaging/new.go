package imaging

import (
	"github.com/manhnguyen1206/deckflow/internal/logger"
	"github.com/manhnguyen1206/deckflow/pkg/executor"
)

type implConverter struct {
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Converter backed by the ImageMagick binary.
func New(exec executor.Executor, log logger.Logger) Converter {
	return &implConverter{
		executor: exec,
		logger:   log,
	}
}
