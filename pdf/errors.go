package pdf

import (
	"errors"
	"fmt"
)

// SpecErrorKind classifies a user input error in a range or page specification.
type SpecErrorKind int

const (
	EmptySpec SpecErrorKind = iota + 1
	MalformedRange
	MalformedPageNumber
	InvalidSegment
	OutOfBounds
	NoPagesSpecified
	PageOutOfBounds
)

// Sentinels matched by errors.Is against a *SpecError of the same kind.
var (
	ErrEmptySpec           = &SpecError{Kind: EmptySpec}
	ErrMalformedRange      = &SpecError{Kind: MalformedRange}
	ErrMalformedPageNumber = &SpecError{Kind: MalformedPageNumber}
	ErrInvalidSegment      = &SpecError{Kind: InvalidSegment}
	ErrOutOfBounds         = &SpecError{Kind: OutOfBounds}
	ErrNoPagesSpecified    = &SpecError{Kind: NoPagesSpecified}
	ErrPageOutOfBounds     = &SpecError{Kind: PageOutOfBounds}
)

// SpecError is returned for invalid range specifications and page lists.
// Token holds the offending token and Total the page count it was checked against.
type SpecError struct {
	Kind  SpecErrorKind
	Token string
	Total int
}

func (e *SpecError) Error() string {
	switch e.Kind {
	case EmptySpec:
		return "no ranges provided"
	case MalformedRange:
		return fmt.Sprintf("invalid range: %s", e.Token)
	case MalformedPageNumber:
		return fmt.Sprintf("invalid page number: %s", e.Token)
	case InvalidSegment:
		return fmt.Sprintf("invalid segment: %s", e.Token)
	case OutOfBounds:
		return fmt.Sprintf("segment %s exceeds total pages (%d)", e.Token, e.Total)
	case NoPagesSpecified:
		return "no pages specified"
	case PageOutOfBounds:
		return fmt.Sprintf("page %s out of bounds (1..%d)", e.Token, e.Total)
	}
	return "invalid page specification"
}

// Is reports whether target is a *SpecError of the same kind.
func (e *SpecError) Is(target error) bool {
	t, ok := target.(*SpecError)
	return ok && t.Kind == e.Kind
}

// ErrCorruptDocument matches any *CorruptDocumentError.
var ErrCorruptDocument = errors.New("corrupt document")

// CorruptDocumentError is returned when the codec cannot decode a source document.
type CorruptDocumentError struct {
	Name string
	Err  error
}

func (e *CorruptDocumentError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("cannot read PDF: %v", e.Err)
	}
	return fmt.Sprintf("cannot read PDF %q: %v", e.Name, e.Err)
}

func (e *CorruptDocumentError) Unwrap() error { return e.Err }

func (e *CorruptDocumentError) Is(target error) bool { return target == ErrCorruptDocument }

// AssemblyError reports a failure while building an output document after
// validation already passed.
type AssemblyError struct {
	Output string
	Source int
	Page   int
	Err    error
}

func (e *AssemblyError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("assemble %s: source %d page %d: %v", e.Output, e.Source, e.Page, e.Err)
	}
	return fmt.Sprintf("assemble %s: %v", e.Output, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

var (
	// ErrNoPages is returned when a plan would contain no pages.
	ErrNoPages = errors.New("no pages to assemble")

	// ErrNoPagesRemaining is returned when a removal would delete every page.
	ErrNoPagesRemaining = errors.New("cannot remove all pages")

	// ErrNoSources is returned when an operation receives no documents.
	ErrNoSources = errors.New("no documents provided")

	// ErrTooManyOutputPages matches an *OutputLimitError.
	ErrTooManyOutputPages = errors.New("too many output pages")
)

// OutputLimitError is returned before assembly when the outputs of one
// operation would hold more pages than the Studio allows.
type OutputLimitError struct {
	Pages int
	Limit int
}

func (e *OutputLimitError) Error() string {
	return fmt.Sprintf("too many output pages: %d (maximum %d)", e.Pages, e.Limit)
}

func (e *OutputLimitError) Is(target error) bool { return target == ErrTooManyOutputPages }
