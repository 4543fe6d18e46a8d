package imaging

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manhnguyen1206/deckflow/internal/logger"
)

type fakeExecutor struct {
	out  []byte
	err  error
	name string
	args []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return "", fmt.Errorf("not used")
}

func (f *fakeExecutor) ExecuteStdin(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestToPNGPassThrough(t *testing.T) {
	exec := &fakeExecutor{}
	conv := New(exec, logger.New("error", "json"))

	data := []byte{1, 2, 3}
	for _, tt := range []struct {
		ext  string
		want string
	}{
		{"png", "png"},
		{".PNG", "png"},
		{"jpg", "jpg"},
		{"jpeg", "jpg"},
	} {
		out, ext := conv.ToPNG(context.Background(), data, tt.ext)
		assert.Equal(t, data, out, tt.ext)
		assert.Equal(t, tt.want, ext, tt.ext)
		assert.Empty(t, exec.name, "pass-through must not shell out")
	}
}

func TestToPNGConverts(t *testing.T) {
	exec := &fakeExecutor{out: []byte("png-bytes")}
	conv := New(exec, logger.New("error", "json"))

	out, ext := conv.ToPNG(context.Background(), []byte{1}, "tiff")
	assert.Equal(t, []byte("png-bytes"), out)
	assert.Equal(t, "png", ext)
	assert.NotContains(t, exec.args, "-density")
}

func TestToPNGVectorDensity(t *testing.T) {
	exec := &fakeExecutor{out: []byte("png-bytes")}
	conv := New(exec, logger.New("error", "json"))

	_, _ = conv.ToPNG(context.Background(), []byte{1}, "wmf")
	assert.Contains(t, exec.args, "-density")
	assert.Contains(t, exec.args, "300")
}

func TestToPNGFallbackOnFailure(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("magick not installed")}
	conv := New(exec, logger.New("error", "json"))

	data := []byte{9, 9, 9}
	out, ext := conv.ToPNG(context.Background(), data, "emf")
	assert.Equal(t, data, out)
	assert.Equal(t, "emf", ext)
}
