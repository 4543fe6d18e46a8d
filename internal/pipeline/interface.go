package pipeline

import "context"

// Pipeline runs a deck end to end: parse, index, describe, review,
// write back.
type Pipeline interface {
	Process(ctx context.Context, deckPath string) error
}
