package describe

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

const describePromptBase = "Analyze this image and provide a comprehensive description suitable for accessibility. " +
	"Include: main subject, key elements, context, and purpose. " +
	"Be descriptive but concise (under 125 characters for alt text). " +
	"Focus on what someone who can't see the image would need to know."

// DescribeAll generates candidate descriptions for every image item,
// bounded by the configured concurrency.
func (g *implGenerator) DescribeAll(ctx context.Context, collectionID string, pres *model.Presentation) error {
	images := pres.Images()
	if len(images) == 0 {
		g.logger.Info(ctx, "Deck has no images to describe")
		return nil
	}

	g.logger.Info(ctx, "Describing %d images (max concurrent: %d)", len(images), g.maxConcurrent)

	sem := newSemaphore(g.maxConcurrent)
	var wg sync.WaitGroup

	for num, item := range images {
		if item.Deleted() {
			continue
		}
		if err := sem.acquire(ctx); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(imageNumber int, item *model.Item) {
			defer wg.Done()
			defer sem.release()

			desc, err := g.Describe(ctx, collectionID, item)
			if err != nil {
				g.logger.Warn(ctx, "Could not describe image %d on slide %d: %v", imageNumber, item.SlideNumber, err)
				desc = fallbackDescription(item.SlideNumber, imageNumber)
			}
			item.Content = desc
		}(num+1, item)
	}

	wg.Wait()
	return nil
}

// Describe generates one candidate description from retrieved slide
// context, OCR text and the image itself.
func (g *implGenerator) Describe(ctx context.Context, collectionID string, item *model.Item) (string, error) {
	var slideContext string
	if sc, err := g.index.SlideContext(ctx, collectionID, item.SlideNumber); err == nil {
		slideContext = sc.Document
	} else {
		g.logger.Debug(ctx, "No slide context for slide %d: %v", item.SlideNumber, err)
	}

	ocrText := g.ocr.ExtractText(ctx, item.ImageBytes)

	prompt := buildPrompt(slideContext, ocrText)
	desc, err := g.llm.GenerateVision(ctx, prompt, item.ImageBytes, item.Extension, g.maxTokens)
	if err != nil {
		return "", fmt.Errorf("generate description: %w", err)
	}

	return strings.TrimSpace(desc), nil
}

func buildPrompt(slideContext, ocrText string) string {
	var b strings.Builder
	b.WriteString(describePromptBase)
	if slideContext != "" {
		b.WriteString("\n\nSlide context:\n")
		b.WriteString(slideContext)
	}
	if ocrText != "" {
		b.WriteString("\n\nText found in the image by OCR:\n")
		b.WriteString(ocrText)
	}
	return b.String()
}

func fallbackDescription(slideNumber, imageNumber int) string {
	return fmt.Sprintf("Image %d on slide %d", imageNumber, slideNumber)
}
