package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// ParseFile reads a .pptx from disk into the pipeline model.
func ParseFile(filePath string) (*model.Presentation, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read presentation: %w", err)
	}
	return Parse(data, filepath.Base(filePath))
}

// Parse reads an in-memory .pptx into the pipeline model. Speaker notes
// come first on each slide, then shapes in document order; grouped
// shapes are flattened in place.
func Parse(data []byte, name string) (*model.Presentation, error) {
	a, err := openArchive(data, int64(len(data)), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	slideParts, err := a.slideParts()
	if err != nil {
		return nil, err
	}
	if len(slideParts) == 0 {
		return nil, fmt.Errorf("presentation has no slides")
	}

	pres := model.New(name)
	for idx, partName := range slideParts {
		slide, err := parseSlide(a, partName, idx+1)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", idx+1, err)
		}
		pres.Slides = append(pres.Slides, slide)
	}

	return pres, nil
}

func parseSlide(a *archive, partName string, slideNumber int) (model.Slide, error) {
	data, ok := a.part(partName)
	if !ok {
		return model.Slide{}, fmt.Errorf("missing part %s", partName)
	}

	rels, err := a.relsFor(partName)
	if err != nil {
		return model.Slide{}, err
	}

	slide := model.Slide{
		ID:          uuid.New().String(),
		SlideNumber: slideNumber,
	}
	order := 0

	// Speaker notes first, matching the index chunk layout.
	if notesRel, ok := rels.firstOfType(relTypeNotesSlide); ok {
		notesPart := resolveTarget(partName, notesRel.Target)
		if notesData, ok := a.part(notesPart); ok {
			if text := extractNotesText(notesData); text != "" {
				it := model.NewText(text, slideNumber, order)
				it.Source = model.SourceNotes
				slide.Items = append(slide.Items, it)
				order++
			}
		}
	}

	items, err := walkShapeTree(a, partName, rels, data, slideNumber, &order)
	if err != nil {
		return model.Slide{}, err
	}
	slide.Items = append(slide.Items, items...)

	return slide, nil
}

// textBody mirrors the txBody element of a shape.
type textBody struct {
	Paragraphs []struct {
		Runs []string `xml:"r>t"`
	} `xml:"p"`
}

func (tb textBody) text() string {
	var lines []string
	for _, p := range tb.Paragraphs {
		line := strings.Join(p.Runs, "")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

type shapeXML struct {
	Body textBody `xml:"txBody"`
}

type pictureXML struct {
	Blip struct {
		Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
	} `xml:"blipFill>blip"`
}

type graphicFrameXML struct {
	Inner []byte `xml:",innerxml"`
}

// walkShapeTree streams through the slide XML collecting text shapes,
// pictures and graphic frames in document order. Group shapes are not
// decoded as units; the walk simply descends into them, which keeps
// nested content in place.
func walkShapeTree(a *archive, partName string, rels relationships, data []byte, slideNumber int, order *int) ([]model.Item, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var items []model.Item

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse slide xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "sp":
			var sp shapeXML
			if err := dec.DecodeElement(&sp, &start); err != nil {
				return nil, fmt.Errorf("decode shape: %w", err)
			}
			if text := sp.Body.text(); text != "" {
				items = append(items, model.NewText(text, slideNumber, *order))
				*order++
			}
		case "pic":
			var pic pictureXML
			if err := dec.DecodeElement(&pic, &start); err != nil {
				return nil, fmt.Errorf("decode picture: %w", err)
			}
			item, ok := imageItem(a, partName, rels, pic, slideNumber, *order)
			if !ok {
				continue
			}
			items = append(items, item)
			*order++
		case "graphicFrame":
			var frame graphicFrameXML
			if err := dec.DecodeElement(&frame, &start); err != nil {
				return nil, fmt.Errorf("decode graphic frame: %w", err)
			}
			items = append(items, graphicFrameItems(a, partName, rels, frame.Inner, slideNumber, order)...)
		}
	}

	return items, nil
}

// graphicFrameItems extracts table text and the image parts behind
// charts and diagrams from a graphicFrame. Frame images live in
// referenced parts rather than p:pic shapes, so they carry
// SourceGraphic and never consume a writer alt-text slot.
func graphicFrameItems(a *archive, partName string, rels relationships, inner []byte, slideNumber int, order *int) []model.Item {
	var items []model.Item

	if text := runText(inner); text != "" {
		it := model.NewText(text, slideNumber, *order)
		it.Source = model.SourceGraphic
		items = append(items, it)
		*order++
	}

	seen := make(map[string]bool)
	for _, relID := range relAttrIDs(inner) {
		if seen[relID] {
			continue
		}
		seen[relID] = true

		rel, ok := rels.byID(relID)
		if !ok {
			continue
		}
		target := resolveTarget(partName, rel.Target)
		data, ok := a.part(target)
		if !ok || len(data) == 0 {
			continue
		}

		if strings.HasPrefix(target, "ppt/media/") {
			items = append(items, graphicImage(data, target, slideNumber, order))
			continue
		}
		if !strings.HasSuffix(target, ".xml") {
			continue
		}

		// Chart and diagram-data parts reference their images through
		// their own rels.
		partRels, err := a.relsFor(target)
		if err != nil {
			continue
		}
		for _, embedID := range blipEmbeds(data) {
			embedRel, ok := partRels.byID(embedID)
			if !ok {
				continue
			}
			mediaPart := resolveTarget(target, embedRel.Target)
			blob, ok := a.part(mediaPart)
			if !ok || len(blob) == 0 {
				continue
			}
			items = append(items, graphicImage(blob, mediaPart, slideNumber, order))
		}
	}

	return items
}

func graphicImage(blob []byte, mediaPart string, slideNumber int, order *int) model.Item {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(mediaPart)), ".")
	it := model.NewImage(blob, ext, slideNumber, *order)
	it.Source = model.SourceGraphic
	*order++
	return it
}

// runText joins the non-empty a:t runs of an XML fragment.
func runText(fragment []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(fragment))
	var lines []string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "t" {
			continue
		}
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}

	return strings.Join(lines, "\n")
}

// relAttrIDs collects relationship-id attributes (r:id, r:embed, r:dm)
// from an XML fragment in document order. Fragments lack the xmlns
// declarations of the full slide, so the prefix stays unresolved; any
// prefixed attribute with a matching local name counts.
func relAttrIDs(fragment []byte) []string {
	dec := xml.NewDecoder(bytes.NewReader(fragment))
	var ids []string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Space == "" || attr.Value == "" {
				continue
			}
			switch attr.Name.Local {
			case "id", "embed", "dm":
				ids = append(ids, attr.Value)
			}
		}
	}

	return ids
}

// blipEmbeds lists the r:embed ids of every a:blip in a part.
func blipEmbeds(data []byte) []string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var ids []string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "blip" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Space != "" && attr.Name.Local == "embed" && attr.Value != "" {
				ids = append(ids, attr.Value)
			}
		}
	}

	return ids
}

func imageItem(a *archive, partName string, rels relationships, pic pictureXML, slideNumber, order int) (model.Item, bool) {
	if pic.Blip.Embed == "" {
		return model.Item{}, false
	}
	rel, ok := rels.byID(pic.Blip.Embed)
	if !ok {
		return model.Item{}, false
	}
	mediaPart := resolveTarget(partName, rel.Target)
	blob, ok := a.part(mediaPart)
	if !ok || len(blob) == 0 {
		return model.Item{}, false
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(mediaPart)), ".")
	return model.NewImage(blob, ext, slideNumber, order), true
}

// extractNotesText pulls the visible text out of a notesSlide part.
func extractNotesText(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var lines []string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "txBody" {
			continue
		}
		var tb textBody
		if err := dec.DecodeElement(&tb, &start); err != nil {
			continue
		}
		if text := tb.text(); text != "" {
			lines = append(lines, text)
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
