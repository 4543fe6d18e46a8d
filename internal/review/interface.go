package review

import (
	"context"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// Action is a reviewer's verdict on one candidate description.
type Action string

const (
	ActionApprove    Action = "approve"
	ActionEdit       Action = "edit"
	ActionRegenerate Action = "regenerate"
	ActionDelete     Action = "delete"
)

// Candidate is one image description awaiting review.
type Candidate struct {
	Item        *model.Item
	ImageNumber int // 1-based position across the deck
}

// Decision is the reviewer's verdict for a candidate. Text carries the
// replacement description when Action is ActionEdit.
type Decision struct {
	Action Action
	Text   string
}

// Reviewer collects one decision per candidate in a batch.
type Reviewer interface {
	Review(ctx context.Context, batch []Candidate) ([]Decision, error)
}

// Workflow drives candidates through review until every image is
// approved, edited or deleted.
type Workflow interface {
	Run(ctx context.Context, collectionID string, pres *model.Presentation) error
}
