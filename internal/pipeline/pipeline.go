package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manhnguyen1206/deckflow/internal/describe"
	"github.com/manhnguyen1206/deckflow/internal/index"
	"github.com/manhnguyen1206/deckflow/internal/model"
	"github.com/manhnguyen1206/deckflow/internal/pptx"
)

// Process orchestrates the entire deck processing pipeline.
func (p *implPipeline) Process(ctx context.Context, deckPath string) error {
	startTime := time.Now()
	originalFilename := filepath.Base(deckPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting deck processing: %s", deckPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Parse the deck into the content model
	pres, err := pptx.ParseFile(deckPath)
	if err != nil {
		return fmt.Errorf("parse deck: %w", err)
	}
	p.logger.Info(ctx, "Parsed %d slides, %d images", len(pres.Slides), len(pres.Images()))

	// Step 2: Normalize image formats for the vision model
	p.convertImages(ctx, pres)

	// Step 3: Build the slide-context collection
	collectionID, err := p.index.Build(ctx, pres)
	if err != nil {
		if !errors.Is(err, index.ErrNoContent) {
			return fmt.Errorf("build index: %w", err)
		}
		p.logger.Warn(ctx, "Deck has no indexable text, descriptions will lack slide context")
		collectionID = ""
	}
	if collectionID != "" {
		defer func() {
			if err := p.index.Drop(context.WithoutCancel(ctx), collectionID); err != nil {
				p.logger.Warn(ctx, "Failed to drop collection %s: %v", collectionID, err)
			}
		}()
	}

	// Step 4: Generate candidate descriptions
	if err := p.describer.DescribeAll(ctx, collectionID, pres); err != nil {
		return fmt.Errorf("describe images: %w", err)
	}

	// Step 5: Review loop
	if err := p.reviewer.Run(ctx, collectionID, pres); err != nil {
		return fmt.Errorf("review: %w", err)
	}

	// Step 6: Rebuild the collection with approved descriptions
	if collectionID != "" {
		if err := p.index.Rebuild(ctx, collectionID, pres); err != nil {
			if !errors.Is(err, index.ErrNoContent) {
				return fmt.Errorf("rebuild index: %w", err)
			}
			p.logger.Warn(ctx, "Nothing left to index after review")
		}
	}

	// Step 7: Generate speaker notes
	notesBySlide, err := p.notes.GenerateAll(ctx, pres)
	if err != nil {
		return fmt.Errorf("generate notes: %w", err)
	}

	// Step 8: Write the augmented deck
	updates := pptx.UpdatesFromModel(pres, notesBySlide)
	shapeAltTexts(pres, updates)

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	outputPath := filepath.Join(p.cfg.Paths.Output, originalFilename)
	if err := pptx.WriteFile(deckPath, outputPath, updates); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}

	// Step 9: Companion accessibility report
	var reportPath string
	if p.cfg.Report.Enabled {
		base := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
		reportPath = filepath.Join(p.cfg.Paths.Output, base+"_accessibility_report.docx")
		if err := p.report.Write(ctx, pres, notesBySlide, reportPath); err != nil {
			p.logger.Warn(ctx, "Failed to write accessibility report: %v", err)
			reportPath = ""
		}
	}

	// Step 10: Move original deck to archived folder
	if err := p.moveToArchived(ctx, deckPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output deck: %s", outputPath)
	if reportPath != "" {
		p.logger.Info(ctx, "Accessibility report: %s", reportPath)
	}
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}

// convertImages rewrites non-PNG/JPEG images into PNG so the vision
// model accepts them. Failures keep the original bytes.
func (p *implPipeline) convertImages(ctx context.Context, pres *model.Presentation) {
	for _, img := range pres.Images() {
		data, ext := p.converter.ToPNG(ctx, img.ImageBytes, img.Extension)
		img.ImageBytes = data
		img.Extension = ext
	}
}

// shapeAltTexts shortens the reviewed descriptions to alt-text length
// and anchors each one to its slide.
func shapeAltTexts(pres *model.Presentation, updates []pptx.SlideUpdate) {
	imageNumber := 0
	for i := range updates {
		slide := pres.SlideByNumber(updates[i].SlideNumber)
		title := ""
		if slide != nil {
			title = slideTitle(slide)
		}
		for j, alt := range updates[i].AltTexts {
			imageNumber++
			if alt == "" {
				continue
			}
			ctxSuffix := ""
			if title != "" {
				ctxSuffix = "Slide: " + title
			}
			updates[i].AltTexts[j] = describe.AltText(alt, updates[i].SlideNumber, imageNumber, ctxSuffix)
		}
	}
}

// slideTitle approximates the slide title with the first line of the
// first on-slide text shape. Speaker notes and table text sort before
// or among the shapes but are never the title.
func slideTitle(slide *model.Slide) string {
	for _, it := range slide.Items {
		if it.Kind != model.KindText || it.Source != model.SourceShape {
			continue
		}
		text := strings.TrimSpace(it.Content)
		if text == "" {
			continue
		}
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			text = strings.TrimSpace(text[:idx])
		}
		if len(text) > 60 {
			text = strings.TrimSpace(text[:60])
		}
		return text
	}
	return ""
}
