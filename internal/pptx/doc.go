// Package pptx reads and writes the narrow slice of the PresentationML
// format the pipeline needs: ordered text and picture extraction on the
// way in, alt text and speaker notes on the way out. Every part the
// package does not understand is copied through untouched.
package pptx
