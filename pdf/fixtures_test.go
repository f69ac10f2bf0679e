package pdf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// memCodec is an in-memory Codec. A document is encoded as
// "MEM:<label>:<pages>" and each page renders as "<label>#<n>".
// Assembled output is the page labels joined by newlines.
type memCodec struct {
	failPage string // page label whose AddPage fails
}

type memDoc struct {
	label string
	pages int
}

type memPage string

type memWriter struct {
	codec *memCodec
	pages []string
}

func memPDF(label string, pages int) []byte {
	return []byte(fmt.Sprintf("MEM:%s:%d", label, pages))
}

func (c *memCodec) Open(data []byte) (Document, error) {
	parts := strings.Split(string(data), ":")
	if len(parts) != 3 || parts[0] != "MEM" {
		return nil, &CorruptDocumentError{Err: errors.New("not a MEM document")}
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, &CorruptDocumentError{Err: err}
	}
	return &memDoc{label: parts[1], pages: n}, nil
}

func (c *memCodec) NewWriter() Writer { return &memWriter{codec: c} }

func (d *memDoc) PageCount() int { return d.pages }

func (d *memDoc) Page(n int) (Page, error) {
	if n < 1 || n > d.pages {
		return nil, fmt.Errorf("page %d out of range", n)
	}
	return memPage(fmt.Sprintf("%s#%d", d.label, n)), nil
}

func (w *memWriter) AddPage(p Page) error {
	label := string(p.(memPage))
	if w.codec.failPage != "" && label == w.codec.failPage {
		return errors.New("write failed")
	}
	w.pages = append(w.pages, label)
	return nil
}

func (w *memWriter) Bytes() ([]byte, error) {
	if len(w.pages) == 0 {
		return nil, ErrNoPages
	}
	return []byte(strings.Join(w.pages, "\n")), nil
}

func memPages(out AssembledOutput) []string {
	return strings.Split(string(out.Data), "\n")
}

// buildTestPDF returns an uncompressed PDF with n pages; page k shows "Page k".
func buildTestPDF(n int) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	total := 3 + 2*n
	offsets := make([]int, total+1)

	kids := make([]string, n)
	for i := 0; i < n; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), n)

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i := 0; i < n; i++ {
		pageObj, contentObj := 4+2*i, 5+2*i
		stream := fmt.Sprintf("BT\n/F1 12 Tf\n72 720 Td\n(Page %d) Tj\nET", i+1)

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n", pageObj, contentObj)

		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", total+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xref)

	return []byte(b.String())
}
