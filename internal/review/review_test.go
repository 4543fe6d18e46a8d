package review

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...interface{}) {}
func (nopLogger) Info(context.Context, string, ...interface{})  {}
func (nopLogger) Warn(context.Context, string, ...interface{})  {}
func (nopLogger) Error(context.Context, string, ...interface{}) {}

// scriptedReviewer replays canned decision batches in order.
type scriptedReviewer struct {
	batches  [][]Decision
	call     int
	seen     [][]Candidate
	batchErr error
}

func (r *scriptedReviewer) Review(_ context.Context, batch []Candidate) ([]Decision, error) {
	r.seen = append(r.seen, batch)
	if r.batchErr != nil {
		return nil, r.batchErr
	}
	if r.call >= len(r.batches) {
		return nil, errors.New("no scripted batch left")
	}
	d := r.batches[r.call]
	r.call++
	return d, nil
}

type fakeDescriber struct {
	response string
	err      error
	calls    int
}

func (f *fakeDescriber) DescribeAll(context.Context, string, *model.Presentation) error {
	return nil
}

func (f *fakeDescriber) Describe(_ context.Context, _ string, _ *model.Item) (string, error) {
	f.calls++
	return f.response, f.err
}

func reviewDeck() *model.Presentation {
	pres := model.New("deck.pptx")
	img1 := model.NewImage([]byte("a"), "png", 1, 1)
	img1.Content = "first description"
	img2 := model.NewImage([]byte("b"), "jpg", 2, 1)
	img2.Content = "second description"
	pres.Slides = []model.Slide{
		{SlideNumber: 1, Items: []model.Item{img1}},
		{SlideNumber: 2, Items: []model.Item{img2}},
	}
	return pres
}

func newWorkflow(r Reviewer, d *fakeDescriber, batchSize int) *implWorkflow {
	return &implWorkflow{
		reviewer:  r,
		describer: d,
		logger:    nopLogger{},
		batchSize: batchSize,
	}
}

func TestRunApprovesAll(t *testing.T) {
	r := &scriptedReviewer{batches: [][]Decision{
		{{Action: ActionApprove}, {Action: ActionApprove}},
	}}
	pres := reviewDeck()

	err := newWorkflow(r, &fakeDescriber{}, 5).Run(context.Background(), "col", pres)
	require.NoError(t, err)

	images := pres.Images()
	assert.Equal(t, "first description", images[0].Content)
	assert.Equal(t, "second description", images[1].Content)
	assert.Len(t, r.seen, 1)
}

func TestRunEditAndDelete(t *testing.T) {
	r := &scriptedReviewer{batches: [][]Decision{
		{{Action: ActionEdit, Text: "  better text  "}, {Action: ActionDelete}},
	}}
	pres := reviewDeck()

	err := newWorkflow(r, &fakeDescriber{}, 5).Run(context.Background(), "col", pres)
	require.NoError(t, err)

	images := pres.Images()
	assert.Equal(t, "better text", images[0].Content)
	assert.Equal(t, model.DeletedContent, images[1].Content)
	assert.True(t, images[1].Deleted())
}

func TestRunEmptyEditKeepsOriginal(t *testing.T) {
	r := &scriptedReviewer{batches: [][]Decision{
		{{Action: ActionEdit, Text: "   "}, {Action: ActionApprove}},
	}}
	pres := reviewDeck()

	err := newWorkflow(r, &fakeDescriber{}, 5).Run(context.Background(), "col", pres)
	require.NoError(t, err)
	assert.Equal(t, "first description", pres.Images()[0].Content)
}

func TestRunRegenerateRequeues(t *testing.T) {
	r := &scriptedReviewer{batches: [][]Decision{
		{{Action: ActionRegenerate}, {Action: ActionApprove}},
		{{Action: ActionApprove}},
	}}
	d := &fakeDescriber{response: "regenerated description"}
	pres := reviewDeck()

	err := newWorkflow(r, d, 5).Run(context.Background(), "col", pres)
	require.NoError(t, err)

	assert.Equal(t, 1, d.calls)
	assert.Equal(t, "regenerated description", pres.Images()[0].Content)
	require.Len(t, r.seen, 2)
	assert.Equal(t, 1, r.seen[1][0].ImageNumber)
}

func TestRunRegenerateFailureKeepsOldText(t *testing.T) {
	r := &scriptedReviewer{batches: [][]Decision{
		{{Action: ActionRegenerate}, {Action: ActionApprove}},
		{{Action: ActionApprove}},
	}}
	d := &fakeDescriber{err: errors.New("quota")}
	pres := reviewDeck()

	err := newWorkflow(r, d, 5).Run(context.Background(), "col", pres)
	require.NoError(t, err)
	assert.Equal(t, "first description", pres.Images()[0].Content)
}

func TestRunBatching(t *testing.T) {
	r := &scriptedReviewer{batches: [][]Decision{
		{{Action: ActionApprove}},
		{{Action: ActionApprove}},
	}}
	pres := reviewDeck()

	err := newWorkflow(r, &fakeDescriber{}, 1).Run(context.Background(), "col", pres)
	require.NoError(t, err)
	require.Len(t, r.seen, 2)
	assert.Len(t, r.seen[0], 1)
	assert.Len(t, r.seen[1], 1)
}

func TestRunSkipsDeletedImages(t *testing.T) {
	r := &scriptedReviewer{batches: [][]Decision{
		{{Action: ActionApprove}},
	}}
	pres := reviewDeck()
	pres.Images()[0].Content = model.DeletedContent

	err := newWorkflow(r, &fakeDescriber{}, 5).Run(context.Background(), "col", pres)
	require.NoError(t, err)
	require.Len(t, r.seen, 1)
	assert.Len(t, r.seen[0], 1)
	assert.Equal(t, 2, r.seen[0][0].Item.SlideNumber)
}

func TestRunReviewerError(t *testing.T) {
	r := &scriptedReviewer{batchErr: errors.New("terminal gone")}
	err := newWorkflow(r, &fakeDescriber{}, 5).Run(context.Background(), "col", reviewDeck())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal gone")
}

func TestRunDecisionCountMismatch(t *testing.T) {
	r := &scriptedReviewer{batches: [][]Decision{
		{{Action: ActionApprove}},
	}}
	err := newWorkflow(r, &fakeDescriber{}, 5).Run(context.Background(), "col", reviewDeck())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decisions")
}

func TestAutoReviewerApprovesEverything(t *testing.T) {
	pres := reviewDeck()
	var batch []Candidate
	for i, img := range pres.Images() {
		batch = append(batch, Candidate{Item: img, ImageNumber: i + 1})
	}

	decisions, err := NewAutoReviewer(nopLogger{}).Review(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	for _, d := range decisions {
		assert.Equal(t, ActionApprove, d.Action)
	}
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		t := tea.KeyMsg{Type: tea.KeyCtrlC}
		return t
	}
}

func tuiBatch() []Candidate {
	img := model.NewImage([]byte("a"), "png", 1, 1)
	img.Content = "a chart"
	return []Candidate{{Item: &img, ImageNumber: 1}}
}

func TestReviewModelApprove(t *testing.T) {
	m := newReviewModel(tuiBatch())
	next, cmd := m.Update(key("a"))
	fm := next.(reviewModel)

	require.Len(t, fm.decisions, 1)
	assert.Equal(t, ActionApprove, fm.decisions[0].Action)
	assert.NotNil(t, cmd)
}

func TestReviewModelEditFlow(t *testing.T) {
	m := newReviewModel(tuiBatch())

	next, _ := m.Update(key("e"))
	fm := next.(reviewModel)
	assert.True(t, fm.editing)
	assert.Equal(t, "a chart", fm.input.Value())

	next, _ = fm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	fm = next.(reviewModel)

	next, _ = fm.Update(key("enter"))
	fm = next.(reviewModel)
	require.Len(t, fm.decisions, 1)
	assert.Equal(t, ActionEdit, fm.decisions[0].Action)
	assert.Equal(t, "a chart!", fm.decisions[0].Text)
}

func TestReviewModelEditCancel(t *testing.T) {
	m := newReviewModel(tuiBatch())
	next, _ := m.Update(key("e"))
	fm := next.(reviewModel)
	next, _ = fm.Update(key("esc"))
	fm = next.(reviewModel)

	assert.False(t, fm.editing)
	assert.Empty(t, fm.decisions)
}

func TestReviewModelQuitAborts(t *testing.T) {
	m := newReviewModel(tuiBatch())
	next, _ := m.Update(key("q"))
	fm := next.(reviewModel)
	assert.True(t, fm.aborted)
}

func TestReviewModelView(t *testing.T) {
	m := newReviewModel(tuiBatch())
	view := m.View()
	assert.Contains(t, view, "a chart")
	assert.Contains(t, view, "Slide 1")
}
