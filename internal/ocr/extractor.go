package ocr

import (
	"context"
	"strings"
)

// ExtractText pipes the image through tesseract, reading the recognized
// text from stdout. `-` twice means stdin in, stdout out.
func (e *implExtractor) ExtractText(ctx context.Context, data []byte) string {
	if !e.cfg.Enabled {
		return ""
	}

	out, err := e.executor.ExecuteStdin(ctx, data, e.cfg.Binary, "-", "-")
	if err != nil {
		e.logger.Debug(ctx, "OCR extraction failed: %v", err)
		return ""
	}

	return cleanText(string(out))
}

// cleanText drops blank lines and trims the remainder.
func cleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
