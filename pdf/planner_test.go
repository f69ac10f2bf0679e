package pdf

import (
	"errors"
	"reflect"
	"testing"
)

func TestPlanMerge(t *testing.T) {
	plans, err := PlanMerge([]int{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected one plan, got %d", len(plans))
	}
	want := []PageRef{{0, 1}, {0, 2}, {1, 1}, {1, 2}, {1, 3}}
	if !reflect.DeepEqual(plans[0].Pages, want) {
		t.Errorf("pages = %v, want %v", plans[0].Pages, want)
	}
	if plans[0].Name != MergedName {
		t.Errorf("name = %q", plans[0].Name)
	}
}

func TestPlanMerge_Empty(t *testing.T) {
	if _, err := PlanMerge(nil); !errors.Is(err, ErrNoSources) {
		t.Errorf("nil sources: %v", err)
	}
	if _, err := PlanMerge([]int{0, 0}); !errors.Is(err, ErrNoPages) {
		t.Errorf("zero pages: %v", err)
	}
}

func TestPlanSplit_Names(t *testing.T) {
	segs := []PageSegment{{1, 1}, {3, 5}, {7, 7}}
	plans := PlanSplit("report", segs)

	names := make([]string, len(plans))
	for i, p := range plans {
		names[i] = p.Name
	}
	want := []string{"report_p1.pdf", "report_p3-5.pdf", "report_p7.pdf"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if !reflect.DeepEqual(plans[1].Pages, []PageRef{{0, 3}, {0, 4}, {0, 5}}) {
		t.Errorf("segment pages = %v", plans[1].Pages)
	}
}

func TestPlanSplit_RepeatedSegmentGetsUniqueName(t *testing.T) {
	plans := PlanSplit("a", []PageSegment{{2, 2}, {2, 2}, {1, 3}, {2, 2}})
	seen := map[string]bool{}
	for _, p := range plans {
		if seen[p.Name] {
			t.Fatalf("duplicate name %q", p.Name)
		}
		seen[p.Name] = true
	}
	if plans[0].Name != "a_p2.pdf" || plans[1].Name != "a_p2_2.pdf" || plans[3].Name != "a_p2_3.pdf" {
		t.Errorf("unexpected names: %q %q %q", plans[0].Name, plans[1].Name, plans[3].Name)
	}
}

func TestPlanExtract_KeepsOrderAndDuplicates(t *testing.T) {
	plans := PlanExtract([]int{3, 1, 1})
	want := []PageRef{{0, 3}, {0, 1}, {0, 1}}
	if len(plans) != 1 || !reflect.DeepEqual(plans[0].Pages, want) {
		t.Errorf("plans = %+v", plans)
	}
	if plans[0].Name != ExtractedName {
		t.Errorf("name = %q", plans[0].Name)
	}
}

func TestPlanRemove(t *testing.T) {
	plans, err := PlanRemove("doc", 6, []PageSegment{{2, 3}, {5, 5}, {3, 3}})
	if err != nil {
		t.Fatal(err)
	}
	want := []PageRef{{0, 1}, {0, 4}, {0, 6}}
	if !reflect.DeepEqual(plans[0].Pages, want) {
		t.Errorf("pages = %v, want %v", plans[0].Pages, want)
	}
	if plans[0].Name != "doc_pages_removed.pdf" {
		t.Errorf("name = %q", plans[0].Name)
	}

	if _, err := PlanRemove("doc", 3, []PageSegment{{1, 3}}); !errors.Is(err, ErrNoPagesRemaining) {
		t.Errorf("removing everything: %v", err)
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":        "report",
		"report.v2.pdf":     "report.v2",
		"README":            "README",
		"dir/sub/file.PDF":  "file",
		`C:\scans\file.pdf`: "file",
		".pdf":              DefaultBaseName,
		"":                  DefaultBaseName,
		".":                 DefaultBaseName,
		"..":                DefaultBaseName,
		"dir/..":            DefaultBaseName,
		"dir/../":           DefaultBaseName,
		"...pdf":            DefaultBaseName,
		"/":                 DefaultBaseName,
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}
