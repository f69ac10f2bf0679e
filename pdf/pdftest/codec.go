// Package pdftest provides an in-memory pdf.Codec for tests.
package pdftest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pdf_studio/pdf"
)

const (
	docPrefix = "%PDF-fake"
	outPrefix = "%PDF-out:"
)

// Codec decodes documents built by Doc. Each page is labelled "<label>#<n>";
// an assembled document is "%PDF-out:" followed by its page labels joined by commas.
type Codec struct{}

// Doc returns a fake document with the given label and page count.
func Doc(label string, pages int) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", docPrefix, label, pages))
}

// Pages decodes the page labels of an assembled document.
func Pages(data []byte) []string {
	s := strings.TrimPrefix(string(data), outPrefix)
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

type document struct {
	label string
	pages int
}

type writer struct{ pages []string }

func (Codec) Open(data []byte) (pdf.Document, error) {
	parts := strings.Split(string(data), ":")
	if len(parts) != 3 || parts[0] != docPrefix {
		return nil, &pdf.CorruptDocumentError{Err: errors.New("not a fake document")}
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, &pdf.CorruptDocumentError{Err: err}
	}
	return &document{label: parts[1], pages: n}, nil
}

func (Codec) NewWriter() pdf.Writer { return &writer{} }

func (d *document) PageCount() int { return d.pages }

func (d *document) Page(n int) (pdf.Page, error) {
	if n < 1 || n > d.pages {
		return nil, fmt.Errorf("page %d out of range (1..%d)", n, d.pages)
	}
	return fmt.Sprintf("%s#%d", d.label, n), nil
}

func (w *writer) AddPage(p pdf.Page) error {
	label, ok := p.(string)
	if !ok {
		return fmt.Errorf("foreign page handle %T", p)
	}
	w.pages = append(w.pages, label)
	return nil
}

func (w *writer) Bytes() ([]byte, error) {
	if len(w.pages) == 0 {
		return nil, pdf.ErrNoPages
	}
	return []byte(outPrefix + strings.Join(w.pages, ",")), nil
}
