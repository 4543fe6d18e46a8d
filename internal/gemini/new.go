package gemini

import (
	"sync"

	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/logger"
)

type implClient struct {
	cfg    config.GeminiConfig
	logger logger.Logger

	// mu guards currentKey; GenerateText/GenerateVision run from
	// concurrent describe workers.
	mu         sync.Mutex
	currentKey int
}

// New creates a Client that rotates through the configured API keys.
func New(cfg config.GeminiConfig, log logger.Logger) Client {
	return &implClient{
		cfg:    cfg,
		logger: log,
	}
}
