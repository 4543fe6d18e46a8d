package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// conversationalStarters are preambles the model sometimes emits despite
// the prompt forbidding them. Matched case-insensitively against the
// start of the response.
var conversationalStarters = []string{
	"Okay, here are", "Here are", "Here's", "Let me", "Sure!", "Certainly!",
	"Okay, let's", "Let's", "Alright,", "Sure thing,", "Of course,",
}

// GenerateAll produces notes for every slide. The returned error is
// non-nil only when the context is cancelled.
func (g *implGenerator) GenerateAll(ctx context.Context, pres *model.Presentation) (map[int]string, error) {
	out := make(map[int]string, len(pres.Slides))
	for i := range pres.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slide := &pres.Slides[i]
		out[slide.SlideNumber] = g.Generate(ctx, slide)
	}
	return out, nil
}

// Generate produces accessible notes for one slide.
func (g *implGenerator) Generate(ctx context.Context, slide *model.Slide) string {
	text, imageDescriptions := slideContent(slide)
	if text == "" && len(imageDescriptions) == 0 {
		return fmt.Sprintf("Slide %d: This slide appears to be empty or contains no text or image content.", slide.SlideNumber)
	}

	prompt := buildPrompt(slide.SlideNumber, text, imageDescriptions)
	generated, err := g.llm.GenerateText(ctx, prompt, maxOutputTokens)
	if err != nil {
		g.logger.Warn(ctx, "Could not generate notes for slide %d: %v", slide.SlideNumber, err)
		return fallbackNotes(slide.SlideNumber, text, imageDescriptions)
	}

	return stripPreamble(strings.TrimSpace(generated))
}

func slideContent(slide *model.Slide) (string, []string) {
	var texts, images []string
	for _, it := range slide.Items {
		if it.Deleted() {
			continue
		}
		content := strings.TrimSpace(it.Content)
		if content == "" {
			continue
		}
		switch it.Kind {
		case model.KindText:
			texts = append(texts, content)
		case model.KindImage:
			images = append(images, content)
		}
	}
	return strings.TrimSpace(strings.Join(texts, " ")), images
}

func buildPrompt(slideNumber int, text string, imageDescriptions []string) string {
	content := text
	if content == "" {
		content = "No text"
	}

	images := "No images"
	if len(imageDescriptions) > 0 {
		var b strings.Builder
		for i, desc := range imageDescriptions {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- ")
			b.WriteString(desc)
		}
		images = b.String()
	}

	return fmt.Sprintf(`Generate accessible study notes for slide %d.

Content: %s

Images: %s

Requirements:
- Start directly with markdown heading: ## Slide %d: [Title]
- NO conversational preambles (no "Okay", "Here are", "Let me", etc.)
- Use markdown formatting (##, *, bullet points)
- Clear, concise explanations of key concepts
- Include visual content descriptions
- Maintain academic tone`, slideNumber, content, images, slideNumber)
}

// stripPreamble removes a conversational first line or lead-in clause
// that slipped through the prompt constraints.
func stripPreamble(s string) string {
	lower := strings.ToLower(s)
	for _, starter := range conversationalStarters {
		if !strings.HasPrefix(lower, strings.ToLower(starter)) {
			continue
		}
		if idx := strings.Index(s, "\n"); idx >= 0 {
			return strings.TrimSpace(s[idx+1:])
		}
		head := s
		if len(head) > 50 {
			head = head[:50]
		}
		if idx := strings.Index(head, ":"); idx >= 0 {
			return strings.TrimSpace(s[idx+1:])
		}
		break
	}
	return s
}

func fallbackNotes(slideNumber int, text string, imageDescriptions []string) string {
	if text == "" {
		text = "No text content"
	}
	images := "No images"
	if len(imageDescriptions) > 0 {
		images = "Image Information: " + strings.Join(imageDescriptions, "\n")
	}
	return fmt.Sprintf("Slide %d Notes:\n%s\n\n%s\n\nNote: Generated accessible notes were not available for this slide.", slideNumber, text, images)
}
