// Package mcptools exposes the PDF operations as MCP tools working on local files.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pdf_studio/pdf"
)

// Tools registers pdf_* tools on an MCP server.
type Tools struct {
	studio      *pdf.Studio
	maxFileSize int64
}

func New(studio *pdf.Studio, maxFileSize int64) *Tools {
	return &Tools{studio: studio, maxFileSize: maxFileSize}
}

// Register adds every tool to srv.
func (t *Tools) Register(srv *mcp.Server) {
	register(srv, &mcp.Tool{
		Name:        "pdf_info",
		Description: "Report the page count of a PDF file.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "PDF file path"},
		}, []string{"path"}),
	}, t.info)

	register(srv, &mcp.Tool{
		Name:        "pdf_merge",
		Description: "Concatenate every page of several PDF files, in the order given, into merged.pdf.",
		InputSchema: inputSchema(map[string]any{
			"paths":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "PDF files in merge order"},
			"output_dir": map[string]any{"type": "string", "description": "Directory receiving merged.pdf"},
		}, []string{"paths", "output_dir"}),
	}, t.merge)

	register(srv, &mcp.Tool{
		Name:        "pdf_split",
		Description: "Split a PDF into one file per range, e.g. \"1,3-5,7\". Several files are also bundled into split_pdfs.zip.",
		InputSchema: inputSchema(map[string]any{
			"path":       map[string]any{"type": "string", "description": "PDF file path"},
			"ranges":     map[string]any{"type": "string", "description": "Comma-separated pages or ranges"},
			"output_dir": map[string]any{"type": "string", "description": "Directory receiving the split files"},
		}, []string{"path", "ranges", "output_dir"}),
	}, t.split)

	register(srv, &mcp.Tool{
		Name:        "pdf_extract",
		Description: "Copy the listed pages, in the listed order, into extracted.pdf. Pages may repeat.",
		InputSchema: inputSchema(map[string]any{
			"path":       map[string]any{"type": "string", "description": "PDF file path"},
			"pages":      map[string]any{"type": "string", "description": "Comma-separated page numbers, e.g. \"3,1,1\""},
			"output_dir": map[string]any{"type": "string", "description": "Directory receiving extracted.pdf"},
		}, []string{"path", "pages", "output_dir"}),
	}, t.extract)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// register wires a typed handler as a tool. Argument and operation errors are
// returned as tool errors, not protocol errors.
func register[Req any](srv *mcp.Server, tool *mcp.Tool, handle func(context.Context, *Req) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r Req
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		resp, err := handle(ctx, &r)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

type infoReq struct {
	Path string `json:"path"`
}

type mergeReq struct {
	Paths     []string `json:"paths"`
	OutputDir string   `json:"output_dir"`
}

type splitReq struct {
	Path      string `json:"path"`
	Ranges    string `json:"ranges"`
	OutputDir string `json:"output_dir"`
}

type extractReq struct {
	Path      string `json:"path"`
	Pages     string `json:"pages"`
	OutputDir string `json:"output_dir"`
}

type writtenFiles struct {
	Files   []string `json:"files"`
	Archive string   `json:"archive,omitempty"`
}

func (t *Tools) info(_ context.Context, r *infoReq) (any, error) {
	src, err := t.readSource(r.Path)
	if err != nil {
		return nil, err
	}
	return t.studio.Info(src)
}

func (t *Tools) merge(_ context.Context, r *mergeReq) (any, error) {
	sources := make([]pdf.Source, 0, len(r.Paths))
	for _, p := range r.Paths {
		src, err := t.readSource(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	out, err := t.studio.Merge(sources)
	if err != nil {
		return nil, err
	}
	return writeOutputs(r.OutputDir, &pdf.PackagedResult{Outputs: []pdf.AssembledOutput{out}})
}

func (t *Tools) split(_ context.Context, r *splitReq) (any, error) {
	src, err := t.readSource(r.Path)
	if err != nil {
		return nil, err
	}
	res, err := t.studio.SplitPackaged(src, r.Ranges)
	if err != nil {
		return nil, err
	}
	return writeOutputs(r.OutputDir, res)
}

func (t *Tools) extract(_ context.Context, r *extractReq) (any, error) {
	src, err := t.readSource(r.Path)
	if err != nil {
		return nil, err
	}
	out, err := t.studio.Extract(src, r.Pages)
	if err != nil {
		return nil, err
	}
	return writeOutputs(r.OutputDir, &pdf.PackagedResult{Outputs: []pdf.AssembledOutput{out}})
}

func (t *Tools) readSource(path string) (pdf.Source, error) {
	if path == "" {
		return pdf.Source{}, fmt.Errorf("path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return pdf.Source{}, err
	}
	if info.Size() > t.maxFileSize {
		return pdf.Source{}, fmt.Errorf("%s exceeds maximum file size (%d bytes)", path, t.maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pdf.Source{}, err
	}
	return pdf.Source{Name: filepath.Base(path), Data: data}, nil
}

// writeOutputs writes every output, and the archive if any, into dir.
// Files are staged in a temporary directory inside dir and moved into place
// only once all of them are written; on failure nothing is left behind.
func writeOutputs(dir string, res *pdf.PackagedResult) (written *writtenFiles, err error) {
	if dir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	staging, err := os.MkdirTemp(dir, ".pdf_studio-*")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	outputs := res.Outputs
	if res.Archive != nil {
		outputs = append(outputs[:len(outputs):len(outputs)], *res.Archive)
	}
	for _, out := range outputs {
		p := filepath.Join(staging, filepath.Base(out.Name))
		if err := os.WriteFile(p, out.Data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", out.Name, err)
		}
	}

	var moved []string
	defer func() {
		if err != nil {
			for _, p := range moved {
				os.Remove(p)
			}
		}
	}()
	written = &writtenFiles{}
	for i, out := range outputs {
		name := filepath.Base(out.Name)
		p := filepath.Join(dir, name)
		if err := os.Rename(filepath.Join(staging, name), p); err != nil {
			return nil, fmt.Errorf("move %s into place: %w", name, err)
		}
		moved = append(moved, p)
		if i < len(res.Outputs) {
			written.Files = append(written.Files, p)
		} else {
			written.Archive = p
		}
	}
	return written, nil
}
