package model

import (
	"strings"

	"github.com/google/uuid"
)

// ItemKind distinguishes the two kinds of slide content the pipeline tracks.
type ItemKind string

const (
	KindText  ItemKind = "text"
	KindImage ItemKind = "image"
)

// ItemSource records where on the slide an item came from. Only shape
// pictures have a p:pic element the writer can attach alt text to, and
// only shape text is a candidate for the slide title.
type ItemSource string

const (
	// SourceShape is slide body content: sp text frames and p:pic pictures.
	SourceShape ItemSource = "shape"
	// SourceNotes is speaker-notes text from the notesSlide part.
	SourceNotes ItemSource = "notes"
	// SourceGraphic is content pulled out of a graphicFrame: table text
	// and images referenced from chart or diagram parts.
	SourceGraphic ItemSource = "graphic"
)

// DeletedContent marks an image the reviewer removed from the deck.
// Deleted images are excluded from indexing and never written back.
const DeletedContent = "__DELETED__"

// Item is a single piece of slide content in document order.
// For text items Content holds the text itself; for image items it holds
// the (generated or reviewed) description.
type Item struct {
	ID          string
	Kind        ItemKind
	Source      ItemSource
	Content     string
	SlideNumber int
	OrderNumber int

	// Image-only fields.
	Extension  string
	ImageBytes []byte
}

// Slide is one slide of the deck with its items in document order.
type Slide struct {
	ID          string
	SlideNumber int
	Items       []Item
}

// Presentation is the parsed deck.
type Presentation struct {
	ID     string
	Name   string
	Slides []Slide
}

// NewText builds a text item.
func NewText(content string, slideNumber, orderNumber int) Item {
	return Item{
		ID:          uuid.New().String(),
		Kind:        KindText,
		Source:      SourceShape,
		Content:     content,
		SlideNumber: slideNumber,
		OrderNumber: orderNumber,
	}
}

// NewImage builds an image item with no description yet.
func NewImage(data []byte, ext string, slideNumber, orderNumber int) Item {
	return Item{
		ID:          uuid.New().String(),
		Kind:        KindImage,
		Source:      SourceShape,
		Content:     "",
		SlideNumber: slideNumber,
		OrderNumber: orderNumber,
		Extension:   ext,
		ImageBytes:  data,
	}
}

// Deleted reports whether the item is a reviewer-deleted image.
func (it Item) Deleted() bool {
	return it.Kind == KindImage && it.Content == DeletedContent
}

// Metadata returns the index metadata for the item.
func (it Item) Metadata() map[string]any {
	m := map[string]any{
		"type":         string(it.Kind),
		"slide_number": it.SlideNumber,
		"order_number": it.OrderNumber,
	}
	if it.Kind == KindImage {
		m["extension"] = it.Extension
		m["image_size"] = len(it.ImageBytes)
	}
	return m
}

// Text joins the textual content of the slide, skipping empty and
// deleted items. Image descriptions count as text once present.
func (s Slide) Text() string {
	var parts []string
	for _, it := range s.Items {
		if it.Deleted() {
			continue
		}
		if c := strings.TrimSpace(it.Content); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// Images returns pointers to the slide's image items, deleted ones included.
func (s *Slide) Images() []*Item {
	var out []*Item
	for i := range s.Items {
		if s.Items[i].Kind == KindImage {
			out = append(out, &s.Items[i])
		}
	}
	return out
}

// Images returns pointers to every image item in the deck, deleted ones
// included, in slide then document order.
func (p *Presentation) Images() []*Item {
	var out []*Item
	for i := range p.Slides {
		out = append(out, p.Slides[i].Images()...)
	}
	return out
}

// SlideByNumber returns the slide with the given 1-based number, or nil.
func (p *Presentation) SlideByNumber(n int) *Slide {
	for i := range p.Slides {
		if p.Slides[i].SlideNumber == n {
			return &p.Slides[i]
		}
	}
	return nil
}

// New builds an empty presentation with a fresh id.
func New(name string) *Presentation {
	return &Presentation{
		ID:   uuid.New().String(),
		Name: name,
	}
}
