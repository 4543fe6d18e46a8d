package index

import (
	"context"
	"errors"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// ErrNoContent is returned when a deck yields no indexable text.
var ErrNoContent = errors.New("no text content available to build the knowledge base")

// ErrNotFound is returned when a slide context lookup misses.
var ErrNotFound = errors.New("slide context not found")

// SlideContext is one retrieved slide chunk.
type SlideContext struct {
	ID       string
	Document string
	Metadata map[string]any
}

// Index builds and queries the slide-context collection that grounds
// every generation step.
type Index interface {
	// Build creates a fresh collection from the presentation and
	// returns its id.
	Build(ctx context.Context, pres *model.Presentation) (string, error)
	// Rebuild replaces the collection contents from the (reviewed)
	// presentation, keeping the collection id.
	Rebuild(ctx context.Context, collectionID string, pres *model.Presentation) error
	// Drop deletes the collection.
	Drop(ctx context.Context, collectionID string) error

	// Query retrieves the n closest slide chunks for a query text.
	Query(ctx context.Context, collectionID, queryText string, n int) ([]SlideContext, error)
	// SlideContext returns the chunk for a specific slide number.
	SlideContext(ctx context.Context, collectionID string, slideNumber int) (SlideContext, error)
	// RandomSlideContext returns the chunk of a random slide.
	RandomSlideContext(ctx context.Context, collectionID string) (SlideContext, error)
	// RandomSlideWithImage returns the chunk of a random slide that
	// contains at least one image item.
	RandomSlideWithImage(ctx context.Context, collectionID string) (SlideContext, error)
}
