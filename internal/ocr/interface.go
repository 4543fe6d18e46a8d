package ocr

import "context"

// Extractor pulls embedded text out of slide images.
type Extractor interface {
	// ExtractText runs OCR over image bytes. A disabled or missing OCR
	// binary yields empty text; OCR never fails the pipeline.
	ExtractText(ctx context.Context, data []byte) string
}
