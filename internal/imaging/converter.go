package imaging

import (
	"context"
	"strings"
)

// vectorLikeExts need rasterization density for a readable result.
var vectorLikeExts = map[string]bool{
	"svg": true,
	"pdf": true,
	"eps": true,
	"ai":  true,
	"emf": true,
	"wmf": true,
}

// ToPNG converts image bytes to PNG via ImageMagick, streaming through
// stdin/stdout so the source extension never has to be trusted.
func (c *implConverter) ToPNG(ctx context.Context, data []byte, ext string) ([]byte, string) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")

	switch ext {
	case "jpg", "jpeg":
		return data, "jpg"
	case "png":
		return data, "png"
	}

	args := []string{}
	if vectorLikeExts[ext] {
		args = append(args, "-density", "300")
	}
	args = append(args, "-", "-colorspace", "sRGB", "png:-")

	out, err := c.executor.ExecuteStdin(ctx, data, "magick", args...)
	if err != nil {
		// Older ImageMagick installs ship `convert` instead of `magick`.
		out, err = c.executor.ExecuteStdin(ctx, data, "convert", args...)
	}
	if err != nil || len(out) == 0 {
		c.logger.Warn(ctx, "Image conversion failed for .%s, keeping original bytes: %v", ext, err)
		if ext == "" {
			ext = "png"
		}
		return data, ext
	}

	return out, "png"
}
