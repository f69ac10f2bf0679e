package pdf

import (
	"fmt"
	"path"
	"strings"
)

// PageRef addresses one page of one source document. Source is a 0-based
// index into the operation's documents, Page is 1-based.
type PageRef struct {
	Source int
	Page   int
}

// OutputPlan is the ordered list of source pages making up one output file.
type OutputPlan struct {
	Name  string
	Pages []PageRef
}

// PlanMerge concatenates every page of every source, in source order.
func PlanMerge(pageCounts []int) ([]OutputPlan, error) {
	if len(pageCounts) == 0 {
		return nil, ErrNoSources
	}

	plan := OutputPlan{Name: MergedName}
	for src, n := range pageCounts {
		for p := 1; p <= n; p++ {
			plan.Pages = append(plan.Pages, PageRef{Source: src, Page: p})
		}
	}
	if len(plan.Pages) == 0 {
		return nil, ErrNoPages
	}
	return []OutputPlan{plan}, nil
}

// PlanSplit produces one plan per segment of source 0, named after baseName.
// A segment listed twice gets a numbered name so names stay unique.
func PlanSplit(baseName string, segments []PageSegment) []OutputPlan {
	plans := make([]OutputPlan, 0, len(segments))
	seen := make(map[string]int, len(segments))

	for _, seg := range segments {
		stem := fmt.Sprintf("%s_p%s", baseName, seg)
		seen[stem]++
		if n := seen[stem]; n > 1 {
			stem = fmt.Sprintf("%s_%d", stem, n)
		}

		plan := OutputPlan{Name: stem + PDFExt, Pages: make([]PageRef, 0, seg.Len())}
		for _, p := range seg.Pages() {
			plan.Pages = append(plan.Pages, PageRef{Source: 0, Page: p})
		}
		plans = append(plans, plan)
	}
	return plans
}

// PlanExtract produces a single plan listing pages of source 0 in the given order.
func PlanExtract(pages []int) []OutputPlan {
	plan := OutputPlan{Name: ExtractedName, Pages: make([]PageRef, 0, len(pages))}
	for _, p := range pages {
		plan.Pages = append(plan.Pages, PageRef{Source: 0, Page: p})
	}
	return []OutputPlan{plan}
}

// PlanRemove keeps every page of source 0 not covered by removed, ascending.
func PlanRemove(baseName string, totalPages int, removed []PageSegment) ([]OutputPlan, error) {
	drop := make(map[int]bool)
	for _, seg := range removed {
		for p := seg.Start; p <= seg.End; p++ {
			drop[p] = true
		}
	}

	plan := OutputPlan{Name: baseName + RemovedSuffix + PDFExt}
	for p := 1; p <= totalPages; p++ {
		if !drop[p] {
			plan.Pages = append(plan.Pages, PageRef{Source: 0, Page: p})
		}
	}
	if len(plan.Pages) == 0 {
		return nil, ErrNoPagesRemaining
	}
	return []OutputPlan{plan}, nil
}

// BaseName returns filename without directories and without its final extension.
func BaseName(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	base := path.Base(filename)
	if base == "." || base == ".." || base == "/" {
		return DefaultBaseName
	}
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[:i]
	}
	// Stems made only of dots would give hidden names.
	if strings.Trim(base, ".") == "" {
		return DefaultBaseName
	}
	return base
}
