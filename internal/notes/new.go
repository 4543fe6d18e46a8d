package notes

import (
	"github.com/manhnguyen1206/deckflow/internal/gemini"
	"github.com/manhnguyen1206/deckflow/internal/logger"
)

// Speaker notes carry more prose than alt text, so they get their own
// token ceiling.
const maxOutputTokens = 400

type implGenerator struct {
	llm    gemini.Client
	logger logger.Logger
}

// New creates a notes Generator.
func New(llm gemini.Client, log logger.Logger) Generator {
	return &implGenerator{llm: llm, logger: log}
}
