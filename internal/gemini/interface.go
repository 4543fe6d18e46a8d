package gemini

import "context"

// Client wraps the hosted text/vision completion API. The model is
// externally owned; this client only handles prompting, retries and
// quota-aware key rotation.
type Client interface {
	// GenerateText prompts the text model.
	GenerateText(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
	// GenerateVision prompts the vision model with an inline image.
	GenerateVision(ctx context.Context, prompt string, image []byte, ext string, maxOutputTokens int) (string, error)
}
