package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/course-ical/internal/course"
)

// Markup is the query capability extraction needs from a parsed page.
type Markup interface {
	// FirstText returns the trimmed text of the first element m matches,
	// or "" when nothing matches.
	FirstText(m goquery.Matcher) string
}

// Page is a parsed catalog page.
type Page struct {
	doc *goquery.Document
}

// NewPage parses HTML from r.
func NewPage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Page{doc: doc}, nil
}

func (p *Page) FirstText(m goquery.Matcher) string {
	return strings.TrimSpace(p.doc.FindMatcher(m).First().Text())
}

// Extract runs the field table over page and returns the validated record.
// A selector that matches nothing yields empty text; whether that is an
// error is up to the field's transform and the record schema. The first
// failing field aborts extraction.
func Extract(page Markup) (*course.Record, error) {
	values := make(map[string]any, len(fieldTable))
	for _, f := range fieldTable {
		v, err := f.Transform(page.FirstText(f.matcher))
		if err != nil {
			return nil, attachField(err, f.Name)
		}
		values[f.Name] = v
	}
	return course.Assemble(values)
}
