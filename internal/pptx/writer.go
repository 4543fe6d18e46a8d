package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

// SlideUpdate carries the reviewed content to write back for one slide.
type SlideUpdate struct {
	SlideNumber int
	Notes       string
	// AltTexts holds alt text per picture in document order. Empty
	// strings leave the picture untouched.
	AltTexts []string
}

// UpdatesFromModel derives per-slide writer updates from a reviewed
// presentation model plus generated notes keyed by slide number.
func UpdatesFromModel(pres *model.Presentation, notes map[int]string) []SlideUpdate {
	var updates []SlideUpdate
	for i := range pres.Slides {
		slide := &pres.Slides[i]
		up := SlideUpdate{
			SlideNumber: slide.SlideNumber,
			Notes:       notes[slide.SlideNumber],
		}
		for _, img := range slide.Images() {
			// Chart/diagram images have no p:pic shape to attach alt
			// text to, so they get no slot.
			if img.Source == model.SourceGraphic {
				continue
			}
			if img.Deleted() {
				up.AltTexts = append(up.AltTexts, "")
				continue
			}
			up.AltTexts = append(up.AltTexts, strings.TrimSpace(img.Content))
		}
		updates = append(updates, up)
	}
	return updates
}

// WriteFile applies the updates to the source .pptx and writes the
// result to outPath. Parts the writer does not touch are copied through
// byte-for-byte.
func WriteFile(srcPath, outPath string, updates []SlideUpdate) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read presentation: %w", err)
	}

	out, err := Write(data, updates)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("write presentation: %w", err)
	}
	return nil
}

// Write applies the updates to an in-memory .pptx and returns the new
// archive bytes.
func Write(data []byte, updates []SlideUpdate) ([]byte, error) {
	a, err := openArchive(data, int64(len(data)), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	slideParts, err := a.slideParts()
	if err != nil {
		return nil, err
	}

	byNumber := make(map[int]SlideUpdate, len(updates))
	for _, up := range updates {
		byNumber[up.SlideNumber] = up
	}

	for idx, partName := range slideParts {
		up, ok := byNumber[idx+1]
		if !ok {
			continue
		}

		if len(up.AltTexts) > 0 {
			slideXML, ok := a.part(partName)
			if !ok {
				return nil, fmt.Errorf("missing part %s", partName)
			}
			rels, err := a.relsFor(partName)
			if err != nil {
				return nil, err
			}
			embedded := func(relID string) bool {
				rel, ok := rels.byID(relID)
				if !ok {
					return false
				}
				blob, ok := a.part(resolveTarget(partName, rel.Target))
				return ok && len(blob) > 0
			}
			a.setPart(partName, applyAltTexts(slideXML, up.AltTexts, embedded))
		}

		if strings.TrimSpace(up.Notes) != "" {
			if err := writeNotes(a, partName, idx+1, up.Notes); err != nil {
				return nil, fmt.Errorf("slide %d notes: %w", idx+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := a.writeTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// applyAltTexts sets the descr attribute on the cNvPr of each picture
// shape, matched by document order. Pictures without a resolvable
// embedded image part never became model items, so they consume no
// slot. The surgery is textual on purpose: re-encoding OOXML through
// encoding/xml rewrites namespace prefixes and produces files
// PowerPoint refuses to repair.
func applyAltTexts(slideXML []byte, altTexts []string, embedded func(relID string) bool) []byte {
	out := slideXML
	offset := 0
	picIndex := 0

	for picIndex < len(altTexts) {
		picStart := findTag(out, offset, "pic")
		if picStart < 0 {
			break
		}

		picEnd := findTag(out, picStart+1, "pic")
		if picEnd < 0 {
			picEnd = len(out)
		}

		if relID := picEmbedID(out[picStart:picEnd]); relID == "" || !embedded(relID) {
			offset = picStart + 1
			continue
		}

		alt := altTexts[picIndex]
		picIndex++

		cnvStart := findTag(out, picStart, "cNvPr")
		if cnvStart < 0 || cnvStart >= picEnd {
			offset = picStart + 1
			continue
		}
		tagEnd := bytes.IndexByte(out[cnvStart:], '>')
		if tagEnd < 0 {
			break
		}
		tagEnd += cnvStart

		if alt != "" {
			patched := setDescr(out[cnvStart:tagEnd+1], alt)
			var next []byte
			next = append(next, out[:cnvStart]...)
			next = append(next, patched...)
			next = append(next, out[tagEnd+1:]...)
			offset = cnvStart + len(patched)
			out = next
		} else {
			offset = tagEnd + 1
		}
	}

	return out
}

// findTag returns the index of the next opening tag with the given local
// name at or after from, or -1.
func findTag(b []byte, from int, local string) int {
	for i := from; i < len(b); i++ {
		if b[i] != '<' || i+1 >= len(b) || b[i+1] == '/' || b[i+1] == '?' || b[i+1] == '!' {
			continue
		}
		j := i + 1
		for j < len(b) && b[j] != ' ' && b[j] != '>' && b[j] != '/' && b[j] != '\t' && b[j] != '\n' {
			j++
		}
		name := string(b[i+1 : j])
		if k := strings.IndexByte(name, ':'); k >= 0 {
			name = name[k+1:]
		}
		if name == local {
			return i
		}
		i = j
	}
	return -1
}

// picEmbedID returns the blip's r:embed relationship id within one
// picture element, or "" when the picture carries none (linked images
// use r:link instead).
func picEmbedID(pic []byte) string {
	blipStart := findTag(pic, 0, "blip")
	if blipStart < 0 {
		return ""
	}
	end := bytes.IndexByte(pic[blipStart:], '>')
	if end < 0 {
		return ""
	}
	tag := string(pic[blipStart : blipStart+end])

	idx := strings.Index(tag, `embed="`)
	if idx <= 0 {
		return ""
	}
	if c := tag[idx-1]; c != ':' && c != ' ' && c != '\t' {
		return ""
	}
	rest := tag[idx+len(`embed="`):]
	q := strings.IndexByte(rest, '"')
	if q < 0 {
		return ""
	}
	return rest[:q]
}

// setDescr replaces or inserts the descr attribute inside a single tag.
func setDescr(tag []byte, alt string) []byte {
	escaped := escapeAttr(alt)
	s := string(tag)

	if idx := strings.Index(s, `descr="`); idx >= 0 {
		end := strings.IndexByte(s[idx+len(`descr="`):], '"')
		if end >= 0 {
			return []byte(s[:idx+len(`descr="`)] + escaped + s[idx+len(`descr="`)+end:])
		}
	}

	insert := ` descr="` + escaped + `"`
	if strings.HasSuffix(s, "/>") {
		return []byte(s[:len(s)-2] + insert + "/>")
	}
	return []byte(s[:len(s)-1] + insert + ">")
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// writeNotes replaces the slide's notes part, creating the part, its
// relationships and the content-type override when the slide has none.
func writeNotes(a *archive, slidePart string, slideNumber int, notes string) error {
	rels, err := a.relsFor(slidePart)
	if err != nil {
		return err
	}

	if rel, ok := rels.firstOfType(relTypeNotesSlide); ok {
		notesPart := resolveTarget(slidePart, rel.Target)
		a.setPart(notesPart, renderNotesXML(notes))
		return nil
	}

	notesPart := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", slideNumber)
	a.setPart(notesPart, renderNotesXML(notes))

	// Relationship from the slide to the new notes part.
	relID := rels.nextRelID()
	rels.Rels = append(rels.Rels, relationship{
		ID:     relID,
		Type:   relTypeNotesSlide,
		Target: "../notesSlides/" + path.Base(notesPart),
	})
	relsName := path.Join(path.Dir(slidePart), "_rels", path.Base(slidePart)+".rels")
	a.setPart(relsName, renderRelsXML(rels))

	// Relationships from the notes part back to the slide and, when the
	// deck has one, to the notes master.
	notesRels := relationships{Rels: []relationship{{
		ID:     "rId1",
		Type:   relTypeSlide,
		Target: "../slides/" + path.Base(slidePart),
	}}}
	if _, ok := a.part("ppt/notesMasters/notesMaster1.xml"); ok {
		notesRels.Rels = append(notesRels.Rels, relationship{
			ID:     "rId2",
			Type:   relTypeNotesMaster,
			Target: "../notesMasters/notesMaster1.xml",
		})
	}
	a.setPart(path.Join("ppt/notesSlides/_rels", path.Base(notesPart)+".rels"), renderRelsXML(notesRels))

	return addContentTypeOverride(a, "/"+notesPart, notesContentType)
}

const notesSlideTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:notes xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/><p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>%s</p:txBody></p:sp></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`

func renderNotesXML(notes string) []byte {
	var paras strings.Builder
	for _, line := range strings.Split(notes, "\n") {
		paras.WriteString("<a:p><a:r><a:t>")
		var buf bytes.Buffer
		xml.EscapeText(&buf, []byte(line))
		paras.Write(buf.Bytes())
		paras.WriteString("</a:t></a:r></a:p>")
	}
	return []byte(fmt.Sprintf(notesSlideTemplate, paras.String()))
}

func renderRelsXML(rels relationships) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, rel := range rels.Rels {
		b.WriteString(fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"/>`, rel.ID, rel.Type, rel.Target))
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

// addContentTypeOverride appends an Override to [Content_Types].xml if
// the part name is not already declared.
func addContentTypeOverride(a *archive, partName, contentType string) error {
	const ctPart = "[Content_Types].xml"
	data, ok := a.part(ctPart)
	if !ok {
		return fmt.Errorf("missing %s", ctPart)
	}

	if bytes.Contains(data, []byte(`PartName="`+partName+`"`)) {
		return nil
	}

	closing := []byte("</Types>")
	idx := bytes.LastIndex(data, closing)
	if idx < 0 {
		return fmt.Errorf("malformed %s", ctPart)
	}

	override := fmt.Sprintf(`<Override PartName="%s" ContentType="%s"/>`, partName, contentType)
	var out []byte
	out = append(out, data[:idx]...)
	out = append(out, []byte(override)...)
	out = append(out, data[idx:]...)
	a.setPart(ctPart, out)
	return nil
}
