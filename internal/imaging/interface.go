package imaging

import "context"

// Converter normalizes arbitrary slide image formats into ones the
// vision model accepts.
type Converter interface {
	// ToPNG converts image bytes to PNG. Already web-safe formats pass
	// through unchanged; conversion failures fall back to the original
	// bytes rather than failing the pipeline.
	ToPNG(ctx context.Context, data []byte, ext string) ([]byte, string)
}
