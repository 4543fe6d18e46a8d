package index

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhnguyen1206/deckflow/internal/chroma"
	"github.com/manhnguyen1206/deckflow/internal/logger"
	"github.com/manhnguyen1206/deckflow/internal/model"
)

// fakeChroma records operations and serves canned collection data.
type fakeChroma struct {
	created   []string
	deleted   []string
	docs      []string
	metadatas []map[string]any
	ids       []string
	getData   *chroma.CollectionData
	queryRes  *chroma.QueryResult
	err       error
}

func (f *fakeChroma) Health(ctx context.Context) error { return f.err }

func (f *fakeChroma) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return false, f.err
}

func (f *fakeChroma) CreateCollection(ctx context.Context, collection string) error {
	f.created = append(f.created, collection)
	return f.err
}

func (f *fakeChroma) DeleteCollection(ctx context.Context, collection string) error {
	f.deleted = append(f.deleted, collection)
	return f.err
}

func (f *fakeChroma) AddDocuments(ctx context.Context, collection string, docs []string, metadatas []map[string]any, ids []string) error {
	f.docs = docs
	f.metadatas = metadatas
	f.ids = ids
	return f.err
}

func (f *fakeChroma) Query(ctx context.Context, collection string, queryTexts []string, nResults int) (*chroma.QueryResult, error) {
	return f.queryRes, f.err
}

func (f *fakeChroma) GetAll(ctx context.Context, collection string) (*chroma.CollectionData, error) {
	return f.getData, f.err
}

func testDeck() *model.Presentation {
	pres := model.New("deck.pptx")

	s1 := model.Slide{ID: "slide-1", SlideNumber: 1}
	s1.Items = append(s1.Items, model.NewText("Welcome to the all hands", 1, 0))
	img := model.NewImage([]byte{1, 2, 3}, "png", 1, 1)
	img.Content = "Photo of the venue"
	s1.Items = append(s1.Items, img)

	s2 := model.Slide{ID: "slide-2", SlideNumber: 2}
	s2.Items = append(s2.Items, model.NewText("Agenda", 2, 0))
	deleted := model.NewImage([]byte{4}, "png", 2, 1)
	deleted.Content = model.DeletedContent
	s2.Items = append(s2.Items, deleted)
	undescribed := model.NewImage([]byte{5}, "png", 2, 2)
	s2.Items = append(s2.Items, undescribed)

	pres.Slides = append(pres.Slides, s1, s2)
	return pres
}

func newTestIndex(f *fakeChroma) *implIndex {
	return &implIndex{
		chroma: f,
		logger: logger.New("error", "json"),
		randFn: func(n int) int { return 0 },
	}
}

func TestBuild(t *testing.T) {
	f := &fakeChroma{}
	idx := newTestIndex(f)

	collectionID, err := idx.Build(context.Background(), testDeck())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(collectionID, "ppt_collection_"))
	assert.Len(t, strings.TrimPrefix(collectionID, "ppt_collection_"), 8)
	require.Equal(t, []string{collectionID}, f.created)

	require.Len(t, f.docs, 2)
	assert.Equal(t, "Welcome to the all hands Photo of the venue", f.docs[0])
	// Deleted and undescribed images stay out of the chunk.
	assert.Equal(t, "Agenda", f.docs[1])

	m1 := f.metadatas[0]
	assert.Equal(t, 1, m1["slide_number"])
	assert.Equal(t, "slide-1", m1["slide_id"])
	assert.Equal(t, "text", m1["item_1_type"])
	assert.Equal(t, "image", m1["item_2_type"])
	assert.Equal(t, "png", m1["item_2_extension"])
	assert.Equal(t, 3, m1["item_2_image_size"])

	m2 := f.metadatas[1]
	assert.NotContains(t, m2, "item_2_type")
}

func TestBuildEmptyDeck(t *testing.T) {
	f := &fakeChroma{}
	idx := newTestIndex(f)

	pres := model.New("empty.pptx")
	pres.Slides = append(pres.Slides, model.Slide{ID: "s", SlideNumber: 1})

	_, err := idx.Build(context.Background(), pres)
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Empty(t, f.created)
}

func TestRebuildKeepsCollectionID(t *testing.T) {
	f := &fakeChroma{}
	idx := newTestIndex(f)

	err := idx.Rebuild(context.Background(), "ppt_collection_deadbeef", testDeck())
	require.NoError(t, err)
	assert.Equal(t, []string{"ppt_collection_deadbeef"}, f.created)
}

func TestQuery(t *testing.T) {
	f := &fakeChroma{queryRes: &chroma.QueryResult{
		IDs:       [][]string{{"id-1", "id-2"}},
		Documents: [][]string{{"doc one", "doc two"}},
		Metadatas: [][]map[string]any{{{"slide_number": float64(1)}, {"slide_number": float64(2)}}},
	}}
	idx := newTestIndex(f)

	contexts, err := idx.Query(context.Background(), "c", "venue photo", 2)
	require.NoError(t, err)
	require.Len(t, contexts, 2)
	assert.Equal(t, "doc one", contexts[0].Document)
	assert.Equal(t, "id-2", contexts[1].ID)
}

func TestSlideContext(t *testing.T) {
	f := &fakeChroma{getData: &chroma.CollectionData{
		IDs:       []string{"id-1", "id-2"},
		Documents: []string{"slide one", "slide two"},
		Metadatas: []map[string]any{
			{"slide_number": float64(1)},
			{"slide_number": float64(2)},
		},
	}}
	idx := newTestIndex(f)

	sc, err := idx.SlideContext(context.Background(), "c", 2)
	require.NoError(t, err)
	assert.Equal(t, "slide two", sc.Document)

	_, err = idx.SlideContext(context.Background(), "c", 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRandomSlideWithImage(t *testing.T) {
	data := &chroma.CollectionData{
		IDs:       []string{"id-1", "id-2"},
		Documents: []string{"no image here", "image slide"},
		Metadatas: []map[string]any{
			{"slide_number": float64(1), "item_1_type": "text"},
			{"slide_number": float64(2), "item_1_type": "image"},
		},
	}

	calls := 0
	idx := newTestIndex(&fakeChroma{getData: data})
	idx.randFn = func(n int) int {
		calls++
		if calls < 3 {
			return 0 // slide without image twice, then hit
		}
		return 1
	}

	sc, err := idx.RandomSlideWithImage(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "image slide", sc.Document)
}

func TestRandomSlideWithImageExhausted(t *testing.T) {
	idx := newTestIndex(&fakeChroma{getData: &chroma.CollectionData{
		IDs:       []string{"id-1"},
		Documents: []string{"text only"},
		Metadatas: []map[string]any{{"item_1_type": "text"}},
	}})

	_, err := idx.RandomSlideWithImage(context.Background(), "c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDrop(t *testing.T) {
	f := &fakeChroma{}
	idx := newTestIndex(f)

	require.NoError(t, idx.Drop(context.Background(), "c"))
	assert.Equal(t, []string{"c"}, f.deleted)
}

func TestBuildChromaError(t *testing.T) {
	f := &fakeChroma{err: fmt.Errorf("connection refused")}
	idx := newTestIndex(f)

	_, err := idx.Build(context.Background(), testDeck())
	assert.Error(t, err)
}
