package pdf

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
)

// PackagedResult exposes every output individually and, when there is more
// than one, an archive bundling all of them.
type PackagedResult struct {
	Outputs []AssembledOutput
	Archive *AssembledOutput
}

// Single returns the only output when the result holds exactly one.
func (r *PackagedResult) Single() (AssembledOutput, bool) {
	if len(r.Outputs) != 1 {
		return AssembledOutput{}, false
	}
	return r.Outputs[0], true
}

// Lookup finds an output by name.
func (r *PackagedResult) Lookup(name string) (AssembledOutput, bool) {
	for _, out := range r.Outputs {
		if out.Name == name {
			return out, true
		}
	}
	return AssembledOutput{}, false
}

// Package bundles outputs. A single output is passed through unchanged; several
// outputs also get a ZIP archive holding each one under its own name.
func Package(outputs []AssembledOutput) (*PackagedResult, error) {
	if len(outputs) == 0 {
		return nil, errors.New("nothing to package")
	}

	seen := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		if seen[out.Name] {
			return nil, fmt.Errorf("duplicate output name %q", out.Name)
		}
		seen[out.Name] = true
	}

	result := &PackagedResult{Outputs: outputs}
	if len(outputs) == 1 {
		return result, nil
	}

	data, err := zipOutputs(outputs)
	if err != nil {
		return nil, err
	}
	result.Archive = &AssembledOutput{Name: ArchiveName, Data: data}
	return result, nil
}

func zipOutputs(outputs []AssembledOutput) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, out := range outputs {
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     out.Name,
			Method:   zip.Deflate,
			Modified: archiveModTime,
		})
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", out.Name, err)
		}
		if _, err := f.Write(out.Data); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", out.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}
