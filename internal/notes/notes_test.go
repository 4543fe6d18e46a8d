package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateText(_ context.Context, prompt string, _ int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) GenerateVision(_ context.Context, prompt string, _ []byte, _ string, _ int) (string, error) {
	return f.GenerateText(context.Background(), prompt, 0)
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...interface{}) {}
func (nopLogger) Info(context.Context, string, ...interface{})  {}
func (nopLogger) Warn(context.Context, string, ...interface{})  {}
func (nopLogger) Error(context.Context, string, ...interface{}) {}

func notesSlide() *model.Slide {
	img := model.NewImage([]byte("a"), "png", 3, 2)
	img.Content = "Bar chart of revenue"
	return &model.Slide{
		SlideNumber: 3,
		Items: []model.Item{
			model.NewText("Revenue grew 12%", 3, 1),
			img,
		},
	}
}

func TestGenerateBuildsPrompt(t *testing.T) {
	llm := &fakeLLM{response: "## Slide 3: Revenue\n\n* Revenue grew 12%"}
	g := New(llm, nopLogger{})

	got := g.Generate(context.Background(), notesSlide())
	assert.Equal(t, "## Slide 3: Revenue\n\n* Revenue grew 12%", got)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "slide 3")
	assert.Contains(t, llm.prompts[0], "Revenue grew 12%")
	assert.Contains(t, llm.prompts[0], "- Bar chart of revenue")
	assert.Contains(t, llm.prompts[0], "## Slide 3: [Title]")
}

func TestGenerateEmptySlide(t *testing.T) {
	llm := &fakeLLM{}
	g := New(llm, nopLogger{})

	got := g.Generate(context.Background(), &model.Slide{SlideNumber: 5})
	assert.Contains(t, got, "Slide 5")
	assert.Contains(t, got, "empty")
	assert.Empty(t, llm.prompts)
}

func TestGenerateSkipsDeletedImages(t *testing.T) {
	llm := &fakeLLM{response: "## Slide 3: Revenue"}
	g := New(llm, nopLogger{})

	slide := notesSlide()
	slide.Items[1].Content = model.DeletedContent
	g.Generate(context.Background(), slide)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "No images")
	assert.NotContains(t, llm.prompts[0], model.DeletedContent)
}

func TestGenerateFallbackOnError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("quota")}
	g := New(llm, nopLogger{})

	got := g.Generate(context.Background(), notesSlide())
	assert.Contains(t, got, "Slide 3 Notes:")
	assert.Contains(t, got, "Revenue grew 12%")
	assert.Contains(t, got, "Image Information: Bar chart of revenue")
	assert.Contains(t, got, "were not available")
}

func TestGenerateAll(t *testing.T) {
	llm := &fakeLLM{response: "## Slide N: Something"}
	g := New(llm, nopLogger{})

	pres := model.New("deck.pptx")
	pres.Slides = []model.Slide{
		{SlideNumber: 1, Items: []model.Item{model.NewText("one", 1, 1)}},
		{SlideNumber: 2, Items: []model.Item{model.NewText("two", 2, 1)}},
	}

	out, err := g.GenerateAll(context.Background(), pres)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "## Slide N: Something", out[1])
	assert.Equal(t, "## Slide N: Something", out[2])
}

func TestGenerateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New(&fakeLLM{}, nopLogger{})
	pres := model.New("deck.pptx")
	pres.Slides = []model.Slide{{SlideNumber: 1}}

	_, err := g.GenerateAll(ctx, pres)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStripPreamble(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean response untouched",
			in:   "## Slide 1: Intro\n\nNotes here",
			want: "## Slide 1: Intro\n\nNotes here",
		},
		{
			name: "preamble line dropped",
			in:   "Here are the notes you asked for:\n## Slide 1: Intro",
			want: "## Slide 1: Intro",
		},
		{
			name: "case insensitive",
			in:   "okay, here are the notes:\n## Slide 2: Body",
			want: "## Slide 2: Body",
		},
		{
			name: "single line with colon",
			in:   "Sure! Here you go: notes content",
			want: "notes content",
		},
		{
			name: "no newline no colon kept as is",
			in:   "Let's dive in without structure",
			want: "Let's dive in without structure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripPreamble(tt.in))
		})
	}
}
