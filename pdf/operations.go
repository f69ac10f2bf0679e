package pdf

import (
	"errors"
	"log/slog"
)

// Source is a named input document as uploaded by the caller.
type Source struct {
	Name string
	Data []byte
}

// DocumentInfo describes a source document.
type DocumentInfo struct {
	Name       string `json:"filename"`
	TotalPages int    `json:"total_pages"`
}

// PlannedFile describes an output a split would create, without assembling it.
type PlannedFile struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Pages int    `json:"pages"`
}

// Studio runs merge, split and extract operations through a Codec.
// Each call is independent: sources are decoded per call and never retained.
type Studio struct {
	codec          Codec
	logger         *slog.Logger
	maxOutputPages int
}

// New returns a Studio. A nil logger falls back to slog.Default().
func New(codec Codec, logger *slog.Logger) *Studio {
	if logger == nil {
		logger = slog.Default()
	}
	return &Studio{codec: codec, logger: logger}
}

// WithOutputPageLimit caps the pages one operation may write across all of
// its outputs. Zero or less disables the cap.
func (s *Studio) WithOutputPageLimit(n int) *Studio {
	s.maxOutputPages = n
	return s
}

// checkOutputPages rejects plans whose combined page count exceeds the limit.
func (s *Studio) checkOutputPages(plans []OutputPlan) error {
	if s.maxOutputPages <= 0 {
		return nil
	}
	total := 0
	for _, plan := range plans {
		total += len(plan.Pages)
	}
	if total > s.maxOutputPages {
		return &OutputLimitError{Pages: total, Limit: s.maxOutputPages}
	}
	return nil
}

func (s *Studio) open(src Source) (Document, error) {
	doc, err := s.codec.Open(src.Data)
	if err != nil {
		var cde *CorruptDocumentError
		if errors.As(err, &cde) {
			return nil, &CorruptDocumentError{Name: src.Name, Err: cde.Err}
		}
		return nil, &CorruptDocumentError{Name: src.Name, Err: err}
	}
	return doc, nil
}

// Info reports the page count of src.
func (s *Studio) Info(src Source) (DocumentInfo, error) {
	doc, err := s.open(src)
	if err != nil {
		return DocumentInfo{}, err
	}
	return DocumentInfo{Name: src.Name, TotalPages: doc.PageCount()}, nil
}

// Merge concatenates every page of every source, in the order given.
func (s *Studio) Merge(sources []Source) (AssembledOutput, error) {
	if len(sources) == 0 {
		return AssembledOutput{}, ErrNoSources
	}

	docs := make([]Document, 0, len(sources))
	counts := make([]int, 0, len(sources))
	for _, src := range sources {
		doc, err := s.open(src)
		if err != nil {
			return AssembledOutput{}, err
		}
		docs = append(docs, doc)
		counts = append(counts, doc.PageCount())
	}

	plans, err := PlanMerge(counts)
	if err != nil {
		return AssembledOutput{}, err
	}
	if err := s.checkOutputPages(plans); err != nil {
		return AssembledOutput{}, err
	}
	out, err := Assemble(s.codec, plans[0], docs)
	if err != nil {
		return AssembledOutput{}, err
	}

	s.logger.Debug("merged documents", "sources", len(sources), "pages", len(plans[0].Pages), "bytes", len(out.Data))
	return out, nil
}

// Split writes one output per segment of rangeSpec, in token order.
func (s *Studio) Split(src Source, rangeSpec string) ([]AssembledOutput, error) {
	doc, err := s.open(src)
	if err != nil {
		return nil, err
	}
	segments, err := ParseSegments(rangeSpec, doc.PageCount())
	if err != nil {
		return nil, err
	}

	plans := PlanSplit(BaseName(src.Name), segments)
	if err := s.checkOutputPages(plans); err != nil {
		return nil, err
	}
	outputs, err := AssembleAll(s.codec, plans, []Document{doc})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("split document", "source", src.Name, "spec", rangeSpec, "outputs", len(outputs))
	return outputs, nil
}

// SplitPackaged splits src and packages the outputs for retrieval.
func (s *Studio) SplitPackaged(src Source, rangeSpec string) (*PackagedResult, error) {
	outputs, err := s.Split(src, rangeSpec)
	if err != nil {
		return nil, err
	}
	return Package(outputs)
}

// PreviewSplit lists the files Split would create for rangeSpec.
func (s *Studio) PreviewSplit(src Source, rangeSpec string) ([]PlannedFile, error) {
	doc, err := s.open(src)
	if err != nil {
		return nil, err
	}
	segments, err := ParseSegments(rangeSpec, doc.PageCount())
	if err != nil {
		return nil, err
	}

	plans := PlanSplit(BaseName(src.Name), segments)
	if err := s.checkOutputPages(plans); err != nil {
		return nil, err
	}
	files := make([]PlannedFile, len(plans))
	for i, plan := range plans {
		files[i] = PlannedFile{
			Name:  plan.Name,
			Start: segments[i].Start,
			End:   segments[i].End,
			Pages: segments[i].Len(),
		}
	}
	return files, nil
}

// Extract writes the pages of pageList, in the listed order, into one output.
func (s *Studio) Extract(src Source, pageList string) (AssembledOutput, error) {
	doc, err := s.open(src)
	if err != nil {
		return AssembledOutput{}, err
	}
	pages, err := ParsePageList(pageList, doc.PageCount())
	if err != nil {
		return AssembledOutput{}, err
	}

	plans := PlanExtract(pages)
	if err := s.checkOutputPages(plans); err != nil {
		return AssembledOutput{}, err
	}
	out, err := Assemble(s.codec, plans[0], []Document{doc})
	if err != nil {
		return AssembledOutput{}, err
	}

	s.logger.Debug("extracted pages", "source", src.Name, "pages", len(pages))
	return out, nil
}
