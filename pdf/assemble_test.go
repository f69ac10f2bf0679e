package pdf

import (
	"errors"
	"reflect"
	"testing"
)

func openMem(t *testing.T, c Codec, label string, pages int) Document {
	t.Helper()
	doc, err := c.Open(memPDF(label, pages))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestAssemble_KeepsPlanOrder(t *testing.T) {
	c := &memCodec{}
	docs := []Document{openMem(t, c, "a", 3), openMem(t, c, "b", 2)}
	plan := OutputPlan{Name: "x.pdf", Pages: []PageRef{{1, 2}, {0, 3}, {0, 3}, {1, 1}}}

	out, err := Assemble(c, plan, docs)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"b#2", "a#3", "a#3", "b#1"}
	if got := memPages(out); !reflect.DeepEqual(got, want) {
		t.Errorf("pages = %v, want %v", got, want)
	}
	if out.Name != "x.pdf" {
		t.Errorf("name = %q", out.Name)
	}
}

func TestAssemble_Errors(t *testing.T) {
	c := &memCodec{failPage: "a#2"}
	docs := []Document{openMem(t, c, "a", 3)}

	tests := []struct {
		name string
		plan OutputPlan
	}{
		{"empty plan", OutputPlan{Name: "e.pdf"}},
		{"missing source", OutputPlan{Name: "s.pdf", Pages: []PageRef{{1, 1}}}},
		{"page out of range", OutputPlan{Name: "p.pdf", Pages: []PageRef{{0, 9}}}},
		{"writer failure", OutputPlan{Name: "w.pdf", Pages: []PageRef{{0, 1}, {0, 2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(c, tt.plan, docs)
			var ae *AssemblyError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *AssemblyError, got %v", err)
			}
			if ae.Output != tt.plan.Name {
				t.Errorf("output = %q, want %q", ae.Output, tt.plan.Name)
			}
			if ae.Unwrap() == nil {
				t.Error("assembly error should wrap its cause")
			}
		})
	}
}

func TestAssembleAll_NoPartialResults(t *testing.T) {
	c := &memCodec{}
	docs := []Document{openMem(t, c, "a", 2)}
	plans := []OutputPlan{
		{Name: "ok.pdf", Pages: []PageRef{{0, 1}}},
		{Name: "bad.pdf", Pages: []PageRef{{0, 5}}},
	}
	outs, err := AssembleAll(c, plans, docs)
	if err == nil {
		t.Fatal("expected error")
	}
	if outs != nil {
		t.Errorf("expected no outputs, got %d", len(outs))
	}
}
