package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GenerateText prompts the text model and returns the response text.
func (c *implClient) GenerateText(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	return c.generate(ctx, c.cfg.Model, genai.Text(prompt), maxOutputTokens)
}

// GenerateVision prompts the vision model with an inline image part
// followed by the prompt text.
func (c *implClient) GenerateVision(ctx context.Context, prompt string, image []byte, ext string, maxOutputTokens int) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType(ext)),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	return c.generate(ctx, c.cfg.VisionModel, contents, maxOutputTokens)
}

// generate runs the bounded retry loop. Quota errors rotate to the next
// API key; once every key has been tried in a round, the loop waits out
// the quota refill window before trying again.
func (c *implClient) generate(ctx context.Context, model string, contents []*genai.Content, maxOutputTokens int) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxOutputTokens),
	}

	var lastErr error
	rotations := 0

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		keyIdx, key := c.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, model, contents, genConfig)
		if err != nil {
			if isQuotaError(err) {
				rotations++
				if rotations > len(c.cfg.APIKeys)*c.cfg.MaxRetries {
					return "", fmt.Errorf("all API keys exhausted: %w", err)
				}
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
				c.rotateKey()
				if rotations%len(c.cfg.APIKeys) == 0 {
					c.logger.Warn(ctx, "All keys rate limited, waiting %ds for quota refill...", c.cfg.QuotaRefillSeconds)
					if err := wait(ctx, time.Duration(c.cfg.QuotaRefillSeconds)*time.Second); err != nil {
						return "", err
					}
				}
				lastErr = err
				attempt--
				continue
			}

			lastErr = err
			c.logger.Warn(ctx, "Generation attempt %d failed: %v", attempt+1, err)
			if attempt < c.cfg.MaxRetries-1 {
				if err := wait(ctx, time.Duration(c.cfg.RetryDelaySeconds)*time.Second); err != nil {
					return "", err
				}
			}
			continue
		}

		text := responseText(result)
		if text == "" {
			lastErr = fmt.Errorf("empty response from model %s", model)
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", c.cfg.MaxRetries, lastErr)
}

func (c *implClient) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.cfg.APIKeys[c.currentKey]
}

func (c *implClient) rotateKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentKey = (c.currentKey + 1) % len(c.cfg.APIKeys)
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return strings.TrimSpace(text.String())
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "Resource has been exhausted")
}

func mimeType(ext string) string {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

// wait sleeps with context awareness.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
