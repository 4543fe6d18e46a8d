package ocr

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/logger"
)

type fakeExecutor struct {
	out    []byte
	err    error
	called bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return "", fmt.Errorf("not used")
}

func (f *fakeExecutor) ExecuteStdin(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	f.called = true
	return f.out, f.err
}

func TestExtractTextDisabled(t *testing.T) {
	exec := &fakeExecutor{out: []byte("should not run")}
	ext := New(config.OCRConfig{Enabled: false, Binary: "tesseract"}, exec, logger.New("error", "json"))

	got := ext.ExtractText(context.Background(), []byte{1})
	assert.Empty(t, got)
	assert.False(t, exec.called)
}

func TestExtractText(t *testing.T) {
	exec := &fakeExecutor{out: []byte("  Total Revenue\n\n  $4.2M  \n")}
	ext := New(config.OCRConfig{Enabled: true, Binary: "tesseract"}, exec, logger.New("error", "json"))

	got := ext.ExtractText(context.Background(), []byte{1})
	assert.Equal(t, "Total Revenue\n$4.2M", got)
}

func TestExtractTextFailureIsSilent(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("tesseract not installed")}
	ext := New(config.OCRConfig{Enabled: true, Binary: "tesseract"}, exec, logger.New("error", "json"))

	got := ext.ExtractText(context.Background(), []byte{1})
	assert.Empty(t, got)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \n\t\n ", ""},
		{"drops blank lines", "a\n\n\nb", "a\nb"},
		{"trims lines", "  a  \n  b  ", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}
