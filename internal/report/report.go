package report

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/manhnguyen1206/deckflow/internal/model"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumberd = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// Write renders the accessibility report: deck title, then for each
// slide the generated notes and the final image descriptions.
func (w *implWriter) Write(ctx context.Context, pres *model.Presentation, notes map[int]string, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	w.addStyledRun(doc.AddParagraph(""), "Accessibility Report: "+pres.Name, true, w.fontSize+5)

	slideNumbers := make([]int, 0, len(pres.Slides))
	for _, s := range pres.Slides {
		slideNumbers = append(slideNumbers, s.SlideNumber)
	}
	sort.Ints(slideNumbers)

	for _, n := range slideNumbers {
		if err := ctx.Err(); err != nil {
			return err
		}
		slide := pres.SlideByNumber(n)
		if slide == nil {
			continue
		}

		doc.AddParagraph("")
		if md, ok := notes[n]; ok && strings.TrimSpace(md) != "" {
			w.addMarkdown(doc, md)
		} else {
			w.addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Slide %d", n), true, w.fontSize+3)
		}

		imageNum := 0
		for _, img := range slide.Images() {
			imageNum++
			if img.Deleted() {
				w.addRichText(doc.AddParagraph(""), fmt.Sprintf("Image %d: removed during review", imageNum))
				continue
			}
			if strings.TrimSpace(img.Content) == "" {
				continue
			}
			w.addRichText(doc.AddParagraph(""), fmt.Sprintf("Image %d alt text: %s", imageNum, img.Content))
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	w.logger.Info(ctx, "Accessibility report written to %s", outputPath)
	return nil
}

// addMarkdown converts generated markdown notes into styled paragraphs.
func (w *implWriter) addMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			w.addStyledRun(doc.AddParagraph(""), m[2], true, w.headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			w.addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if reNumberd.MatchString(trimmed) {
			w.addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		w.addRichText(doc.AddParagraph(""), trimmed)
	}
}

func (w *implWriter) headingSize(level int) uint64 {
	switch level {
	case 1:
		return w.fontSize + 5
	case 2:
		return w.fontSize + 4
	case 3:
		return w.fontSize + 3
	default:
		return w.fontSize
	}
}

func (w *implWriter) addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(w.fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func (w *implWriter) addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(w.fontName).Size(w.fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(w.fontName).Size(w.fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
