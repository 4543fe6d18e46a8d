package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

const maxRandomImageAttempts = 10

// Build creates a fresh collection from the presentation model: one
// chunk per slide with the combined per-item metadata the review and
// notes stages key off.
func (i *implIndex) Build(ctx context.Context, pres *model.Presentation) (string, error) {
	collectionID := fmt.Sprintf("ppt_collection_%s", strings.ToLower(uuid.New().String()[:8]))
	if err := i.populate(ctx, collectionID, pres); err != nil {
		return "", err
	}
	return collectionID, nil
}

// Rebuild replaces the collection contents, keeping the id stable so
// in-flight references stay valid.
func (i *implIndex) Rebuild(ctx context.Context, collectionID string, pres *model.Presentation) error {
	return i.populate(ctx, collectionID, pres)
}

func (i *implIndex) Drop(ctx context.Context, collectionID string) error {
	return i.chroma.DeleteCollection(ctx, collectionID)
}

func (i *implIndex) populate(ctx context.Context, collectionID string, pres *model.Presentation) error {
	var docs []string
	var metadatas []map[string]any
	var ids []string

	for si := range pres.Slides {
		slide := &pres.Slides[si]
		doc, metadata := slideChunk(slide)
		if strings.TrimSpace(doc) == "" {
			continue
		}
		docs = append(docs, doc)
		metadatas = append(metadatas, metadata)
		ids = append(ids, uuid.New().String())
	}

	if len(docs) == 0 {
		return ErrNoContent
	}

	if err := i.chroma.CreateCollection(ctx, collectionID); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	if err := i.chroma.AddDocuments(ctx, collectionID, docs, metadatas, ids); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}

	i.logger.Info(ctx, "Indexed %d slide chunks into %s", len(docs), collectionID)
	return nil
}

// slideChunk joins the slide's item contents into one document and
// flattens per-item metadata into item_N_* keys. Deleted images and
// items without content are skipped.
func slideChunk(slide *model.Slide) (string, map[string]any) {
	var texts []string
	metadata := map[string]any{
		"slide_number": slide.SlideNumber,
		"slide_id":     slide.ID,
	}

	itemNum := 0
	for _, item := range slide.Items {
		if item.Deleted() || strings.TrimSpace(item.Content) == "" {
			continue
		}
		texts = append(texts, item.Content)
		itemNum++

		prefix := fmt.Sprintf("item_%d_", itemNum)
		for key, value := range item.Metadata() {
			metadata[prefix+key] = value
		}
	}

	return strings.Join(texts, " "), metadata
}

func (i *implIndex) Query(ctx context.Context, collectionID, queryText string, n int) ([]SlideContext, error) {
	res, err := i.chroma.Query(ctx, collectionID, []string{queryText}, n)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	var contexts []SlideContext
	if len(res.IDs) == 0 {
		return contexts, nil
	}
	for k := range res.IDs[0] {
		sc := SlideContext{ID: res.IDs[0][k]}
		if k < len(res.Documents[0]) {
			sc.Document = res.Documents[0][k]
		}
		if k < len(res.Metadatas[0]) {
			sc.Metadata = res.Metadatas[0][k]
		}
		contexts = append(contexts, sc)
	}
	return contexts, nil
}

func (i *implIndex) SlideContext(ctx context.Context, collectionID string, slideNumber int) (SlideContext, error) {
	data, err := i.chroma.GetAll(ctx, collectionID)
	if err != nil {
		return SlideContext{}, fmt.Errorf("get collection: %w", err)
	}

	for idx, metadata := range data.Metadatas {
		if metaInt(metadata, "slide_number") == slideNumber {
			return SlideContext{
				ID:       data.IDs[idx],
				Document: data.Documents[idx],
				Metadata: metadata,
			}, nil
		}
	}

	return SlideContext{}, fmt.Errorf("slide %d: %w", slideNumber, ErrNotFound)
}

func (i *implIndex) RandomSlideContext(ctx context.Context, collectionID string) (SlideContext, error) {
	data, err := i.chroma.GetAll(ctx, collectionID)
	if err != nil {
		return SlideContext{}, fmt.Errorf("get collection: %w", err)
	}
	if len(data.IDs) == 0 {
		return SlideContext{}, ErrNotFound
	}

	idx := i.randFn(len(data.IDs))
	return SlideContext{
		ID:       data.IDs[idx],
		Document: data.Documents[idx],
		Metadata: data.Metadatas[idx],
	}, nil
}

func (i *implIndex) RandomSlideWithImage(ctx context.Context, collectionID string) (SlideContext, error) {
	data, err := i.chroma.GetAll(ctx, collectionID)
	if err != nil {
		return SlideContext{}, fmt.Errorf("get collection: %w", err)
	}
	if len(data.IDs) == 0 {
		return SlideContext{}, ErrNotFound
	}

	for attempt := 0; attempt < maxRandomImageAttempts; attempt++ {
		idx := i.randFn(len(data.IDs))
		if hasImageItem(data.Metadatas[idx]) {
			return SlideContext{
				ID:       data.IDs[idx],
				Document: data.Documents[idx],
				Metadata: data.Metadatas[idx],
			}, nil
		}
	}

	return SlideContext{}, fmt.Errorf("no slide with image after %d attempts: %w", maxRandomImageAttempts, ErrNotFound)
}

// hasImageItem reports whether any item_N_type metadata key marks an image.
func hasImageItem(metadata map[string]any) bool {
	for key, value := range metadata {
		if strings.HasSuffix(key, "_type") && value == string(model.KindImage) {
			return true
		}
	}
	return false
}

// metaInt reads an int metadata value, tolerating the float64 the JSON
// round trip produces.
func metaInt(metadata map[string]any, key string) int {
	switch v := metadata[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return -1
	}
}
