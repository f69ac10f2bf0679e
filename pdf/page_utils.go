package pdf

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// PageSegment is a contiguous, inclusive, 1-indexed run of pages.
type PageSegment struct {
	Start int
	End   int
}

// Len returns the number of pages in the segment.
func (s PageSegment) Len() int { return s.End - s.Start + 1 }

// Pages lists the page numbers of the segment in ascending order.
func (s PageSegment) Pages() []int {
	pages := make([]int, 0, s.Len())
	for p := s.Start; p <= s.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

func (s PageSegment) String() string {
	if s.Start == s.End {
		return strconv.Itoa(s.Start)
	}
	return strconv.Itoa(s.Start) + "-" + strconv.Itoa(s.End)
}

// ParseSegments parses a range specification such as "1,3-5,7" into page
// segments, validated against totalPages.
// Segments keep the order of their tokens; overlaps and repeats are kept.
// Parsing stops at the first invalid token.
func ParseSegments(spec string, totalPages int) ([]PageSegment, error) {
	tokens := splitTokens(spec)
	if len(tokens) == 0 {
		return nil, &SpecError{Kind: EmptySpec}
	}

	segments := make([]PageSegment, 0, len(tokens))
	for _, tok := range tokens {
		var start, end int
		if a, b, ok := strings.Cut(tok, "-"); ok {
			if !isDigits(a) || !isDigits(b) {
				return nil, &SpecError{Kind: MalformedRange, Token: tok}
			}
			start, end = atoi(a), atoi(b)
		} else {
			if !isDigits(tok) {
				return nil, &SpecError{Kind: MalformedPageNumber, Token: tok}
			}
			start = atoi(tok)
			end = start
		}

		if start < 1 || end < 1 || end < start {
			return nil, &SpecError{Kind: InvalidSegment, Token: tok}
		}
		if end > totalPages {
			return nil, &SpecError{Kind: OutOfBounds, Token: tok, Total: totalPages}
		}
		segments = append(segments, PageSegment{Start: start, End: end})
	}

	return segments, nil
}

// ParsePageList parses a comma-separated list of single page numbers such as
// "3,1,1". Order and duplicates are preserved; ranges are not accepted.
func ParsePageList(list string, totalPages int) ([]int, error) {
	tokens := splitTokens(list)
	if len(tokens) == 0 {
		return nil, &SpecError{Kind: NoPagesSpecified}
	}

	pages := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		if !isDigits(tok) {
			return nil, &SpecError{Kind: MalformedPageNumber, Token: tok}
		}
		p := atoi(tok)
		if p < 1 || p > totalPages {
			return nil, &SpecError{Kind: PageOutOfBounds, Token: tok, Total: totalPages}
		}
		pages = append(pages, p)
	}

	return pages, nil
}

// splitTokens removes all whitespace and splits on commas, dropping empty tokens.
func splitTokens(s string) []string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	var tokens []string
	for _, tok := range strings.Split(s, ",") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoi parses a digit string, saturating at math.MaxInt on overflow so that
// oversized numbers fail the bounds checks rather than the syntax checks.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	return n
}
