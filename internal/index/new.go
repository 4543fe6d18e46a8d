package index

import (
	"math/rand"

	"github.com/manhnguyen1206/deckflow/internal/chroma"
	"github.com/manhnguyen1206/deckflow/internal/logger"
)

type implIndex struct {
	chroma chroma.Client
	logger logger.Logger
	randFn func(n int) int
}

// New creates an Index over the Chroma client.
func New(client chroma.Client, log logger.Logger) Index {
	return &implIndex{
		chroma: client,
		logger: log,
		randFn: rand.Intn,
	}
}
