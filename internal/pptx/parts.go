package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
)

const (
	relNSAttr = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeNotesMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"

	notesContentType = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
)

// archive is a parsed pptx zip held in memory, keyed by part name.
type archive struct {
	parts map[string][]byte
	order []string
}

func openArchive(data []byte, size int64, r io.ReaderAt) (*archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pptx archive: %w", err)
	}

	a := &archive{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		a.parts[f.Name] = content
		a.order = append(a.order, f.Name)
	}
	return a, nil
}

func (a *archive) part(name string) ([]byte, bool) {
	b, ok := a.parts[name]
	return b, ok
}

// setPart replaces or appends a part, keeping original part order stable.
func (a *archive) setPart(name string, content []byte) {
	if _, ok := a.parts[name]; !ok {
		a.order = append(a.order, name)
	}
	a.parts[name] = content
}

func (a *archive) writeTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range a.order {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := f.Write(a.parts[name]); err != nil {
			return fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}
	return zw.Close()
}

// relationships models a *.rels part.
type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func (a *archive) relsFor(partName string) (relationships, error) {
	relsName := path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
	data, ok := a.part(relsName)
	if !ok {
		return relationships{}, nil
	}
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return relationships{}, fmt.Errorf("parse %s: %w", relsName, err)
	}
	return rels, nil
}

// resolveTarget turns a relationship target into an absolute part name.
// Targets are relative to the directory of the part owning the rels.
func resolveTarget(partName, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(partName), target))
}

func (r relationships) byID(id string) (relationship, bool) {
	for _, rel := range r.Rels {
		if rel.ID == id {
			return rel, true
		}
	}
	return relationship{}, false
}

func (r relationships) firstOfType(relType string) (relationship, bool) {
	for _, rel := range r.Rels {
		if rel.Type == relType {
			return rel, true
		}
	}
	return relationship{}, false
}

// nextRelID returns an unused rId for the rels part.
func (r relationships) nextRelID() string {
	used := make(map[string]bool, len(r.Rels))
	for _, rel := range r.Rels {
		used[rel.ID] = true
	}
	for i := 1; ; i++ {
		id := fmt.Sprintf("rId%d", i)
		if !used[id] {
			return id
		}
	}
}

// slideParts returns slide part names in presentation order, read from
// presentation.xml's sldIdLst via the presentation rels.
func (a *archive) slideParts() ([]string, error) {
	const presPart = "ppt/presentation.xml"
	data, ok := a.part(presPart)
	if !ok {
		return nil, fmt.Errorf("missing %s", presPart)
	}

	var pres struct {
		SlideIDs []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldIdLst>sldId"`
	}
	if err := xml.Unmarshal(data, &pres); err != nil {
		return nil, fmt.Errorf("parse %s: %w", presPart, err)
	}

	rels, err := a.relsFor(presPart)
	if err != nil {
		return nil, err
	}

	var slides []string
	for _, sid := range pres.SlideIDs {
		rel, ok := rels.byID(sid.RID)
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", sid.RID)
		}
		slides = append(slides, resolveTarget(presPart, rel.Target))
	}

	// Decks written by some tools omit sldIdLst entries; fall back to
	// the part names, ordered by their numeric suffix so slide2 comes
	// before slide10.
	if len(slides) == 0 {
		for name := range a.parts {
			if strings.HasPrefix(name, "ppt/slides/") && strings.HasSuffix(name, ".xml") {
				slides = append(slides, name)
			}
		}
		sort.Slice(slides, func(i, j int) bool {
			ni, nj := slideOrdinal(slides[i]), slideOrdinal(slides[j])
			if ni != nj {
				return ni < nj
			}
			return slides[i] < slides[j]
		})
	}

	return slides, nil
}

// slideOrdinal extracts the trailing number of a slide part base name,
// or -1 when there is none.
func slideOrdinal(name string) int {
	base := strings.TrimSuffix(path.Base(name), ".xml")
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(base[i:])
	if err != nil {
		return -1
	}
	return n
}
