package pdf

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PdfcpuCodec implements Codec on top of the pdfcpu library.
// pdfcpu mutates its configuration while working, so every document and every
// writer gets its own copy.
type PdfcpuCodec struct{}

// NewPdfcpuCodec returns a codec using pdfcpu's default configuration.
// pdfcpu's user config directory is disabled; the codec never touches disk.
func NewPdfcpuCodec() *PdfcpuCodec {
	api.DisableConfigDir()
	return &PdfcpuCodec{}
}

type pdfcpuDocument struct {
	ctx *model.Context
}

type pdfcpuPage struct {
	doc *pdfcpuDocument
	nr  int
}

// Open reads, validates and optimizes data into a pdfcpu context.
func (c *PdfcpuCodec) Open(data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, &CorruptDocumentError{Err: errors.New("empty file")}
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, &CorruptDocumentError{Err: err}
	}
	return &pdfcpuDocument{ctx: ctx}, nil
}

func (d *pdfcpuDocument) PageCount() int { return d.ctx.PageCount }

func (d *pdfcpuDocument) Page(n int) (Page, error) {
	if n < 1 || n > d.ctx.PageCount {
		return nil, fmt.Errorf("page %d out of range (1..%d)", n, d.ctx.PageCount)
	}
	return pdfcpuPage{doc: d, nr: n}, nil
}

func (c *PdfcpuCodec) NewWriter() Writer {
	return &pdfcpuWriter{}
}

// pdfcpuWriter records pages and builds the document on Bytes.
// Consecutive pages from one source are extracted in a single pass; runs
// from different sources are concatenated with a raw merge.
type pdfcpuWriter struct {
	pages []pdfcpuPage
}

func (w *pdfcpuWriter) AddPage(p Page) error {
	pg, ok := p.(pdfcpuPage)
	if !ok {
		return fmt.Errorf("foreign page handle %T", p)
	}
	w.pages = append(w.pages, pg)
	return nil
}

type pageRun struct {
	doc *pdfcpuDocument
	nrs []int
}

func (w *pdfcpuWriter) runs() []pageRun {
	var runs []pageRun
	for _, pg := range w.pages {
		if n := len(runs); n > 0 && runs[n-1].doc == pg.doc {
			runs[n-1].nrs = append(runs[n-1].nrs, pg.nr)
			continue
		}
		runs = append(runs, pageRun{doc: pg.doc, nrs: []int{pg.nr}})
	}
	return runs
}

func (w *pdfcpuWriter) Bytes() ([]byte, error) {
	if len(w.pages) == 0 {
		return nil, ErrNoPages
	}

	runs := w.runs()
	parts := make([]io.ReadSeeker, 0, len(runs))
	var single []byte
	for _, run := range runs {
		ctx, err := pdfcpu.ExtractPages(run.doc.ctx, run.nrs, true)
		if err != nil {
			return nil, fmt.Errorf("pdfcpu extract pages: %w", err)
		}
		var buf bytes.Buffer
		if err := api.WriteContext(ctx, &buf); err != nil {
			return nil, fmt.Errorf("pdfcpu write: %w", err)
		}
		single = buf.Bytes()
		parts = append(parts, bytes.NewReader(single))
	}
	if len(parts) == 1 {
		return pinVolatileFields(single), nil
	}

	var out bytes.Buffer
	if err := api.MergeRaw(parts, &out, false, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("pdfcpu merge: %w", err)
	}
	return pinVolatileFields(out.Bytes()), nil
}

var (
	infoDateRe = regexp.MustCompile(`/(?:CreationDate|ModDate)\s*\(D:\d{14}[+\-]\d{2}'\d{2}'\)`)
	fileIDRe   = regexp.MustCompile(`/ID\s*\[\s*<([0-9A-Fa-f]*)>\s*<([0-9A-Fa-f]*)>\s*\]`)
)

// pinnedDate replaces the write time pdfcpu stamps into the info dict.
// It has the same length as any stamp infoDateRe matches.
const pinnedDate = "(D:20000101000000+00'00')"

// pinVolatileFields rewrites the info dict dates and the trailer file ID that
// pdfcpu derives from the wall clock, so equal inputs give equal bytes.
// Replacements keep their length; xref offsets stay valid.
func pinVolatileFields(data []byte) []byte {
	out := bytes.Clone(data)
	for _, loc := range infoDateRe.FindAllIndex(out, -1) {
		m := out[loc[0]:loc[1]]
		open := bytes.IndexByte(m, '(')
		copy(m[open:], pinnedDate)
	}

	ids := fileIDRe.FindAllSubmatchIndex(out, -1)
	for _, loc := range ids {
		for i := 2; i < len(loc); i += 2 {
			for j := loc[i]; j < loc[i+1]; j++ {
				out[j] = '0'
			}
		}
	}
	sum := md5.Sum(out)
	digest := hex.EncodeToString(sum[:])
	for _, loc := range ids {
		for i := 2; i < len(loc); i += 2 {
			for j := loc[i]; j < loc[i+1]; j++ {
				out[j] = digest[(j-loc[i])%len(digest)]
			}
		}
	}
	return out
}

