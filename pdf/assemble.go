package pdf

import "fmt"

// AssembledOutput is one finished output file.
type AssembledOutput struct {
	Name string
	Data []byte
}

// Assemble builds the document described by plan from docs, keeping plan order.
// Every failure is reported as an *AssemblyError.
func Assemble(codec Codec, plan OutputPlan, docs []Document) (AssembledOutput, error) {
	if len(plan.Pages) == 0 {
		return AssembledOutput{}, &AssemblyError{Output: plan.Name, Err: ErrNoPages}
	}

	w := codec.NewWriter()
	for _, ref := range plan.Pages {
		if ref.Source < 0 || ref.Source >= len(docs) {
			return AssembledOutput{}, &AssemblyError{
				Output: plan.Name, Source: ref.Source, Page: ref.Page,
				Err: fmt.Errorf("no source document %d", ref.Source),
			}
		}
		page, err := docs[ref.Source].Page(ref.Page)
		if err != nil {
			return AssembledOutput{}, &AssemblyError{Output: plan.Name, Source: ref.Source, Page: ref.Page, Err: err}
		}
		if err := w.AddPage(page); err != nil {
			return AssembledOutput{}, &AssemblyError{Output: plan.Name, Source: ref.Source, Page: ref.Page, Err: err}
		}
	}

	data, err := w.Bytes()
	if err != nil {
		return AssembledOutput{}, &AssemblyError{Output: plan.Name, Err: err}
	}
	return AssembledOutput{Name: plan.Name, Data: data}, nil
}

// AssembleAll assembles every plan, returning nothing if any plan fails.
func AssembleAll(codec Codec, plans []OutputPlan, docs []Document) ([]AssembledOutput, error) {
	outputs := make([]AssembledOutput, 0, len(plans))
	for _, plan := range plans {
		out, err := Assemble(codec, plan, docs)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}
