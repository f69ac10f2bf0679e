package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"pdf_studio/config"
	"pdf_studio/pdf"
)

// Handlers serves the PDF operations over HTTP.
type Handlers struct {
	studio  *pdf.Studio
	config  *config.Config
	results *ResultStore
	logger  *slog.Logger
}

func NewHandlers(studio *pdf.Studio, cfg *config.Config, results *ResultStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{studio: studio, config: cfg, results: results, logger: logger}
}

type fileLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int    `json:"size"`
}

type splitResponse struct {
	ID      string     `json:"id"`
	Archive fileLink   `json:"archive"`
	Files   []fileLink `json:"files"`
}

func (h *Handlers) HandleInfo(c *gin.Context) {
	src, ok := h.singleUpload(c)
	if !ok {
		return
	}
	info, err := h.studio.Info(src)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handlers) HandleMerge(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF files provided"})
		return
	}
	headers := form.File[FormFileField]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF files provided"})
		return
	}
	if len(headers) > h.config.MaxFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many files: %d (maximum %d)", len(headers), h.config.MaxFiles)})
		return
	}

	sources := make([]pdf.Source, 0, len(headers))
	for _, header := range headers {
		src, err := readUpload(header, h.config.MaxFileSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sources = append(sources, src)
	}

	out, err := h.studio.Merge(sources)
	if err != nil {
		h.writeError(c, err)
		return
	}
	sendFile(c, MimePDF, out)
}

func (h *Handlers) HandleSplitPreview(c *gin.Context) {
	ranges, ok := requiredField(c, "ranges", "No ranges provided")
	if !ok {
		return
	}
	src, ok := h.singleUpload(c)
	if !ok {
		return
	}
	files, err := h.studio.PreviewSplit(src, ranges)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": src.Name, "files": files})
}

// HandleSplit returns the PDF directly for a single segment. Several segments
// are stored and described as JSON with links to the archive and each file.
func (h *Handlers) HandleSplit(c *gin.Context) {
	ranges, ok := requiredField(c, "ranges", "No ranges provided")
	if !ok {
		return
	}
	src, ok := h.singleUpload(c)
	if !ok {
		return
	}

	res, err := h.studio.SplitPackaged(src, ranges)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if out, single := res.Single(); single {
		sendFile(c, MimePDF, out)
		return
	}

	id, err := h.results.Put(res)
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Split result is too large to keep for download"})
		return
	}
	resp := splitResponse{
		ID: id,
		Archive: fileLink{
			Name: res.Archive.Name,
			URL:  fmt.Sprintf("/api/pdf/results/%s/archive", id),
			Size: len(res.Archive.Data),
		},
	}
	for _, out := range res.Outputs {
		resp.Files = append(resp.Files, fileLink{
			Name: out.Name,
			URL:  fmt.Sprintf("/api/pdf/results/%s/files/%s", id, url.PathEscape(out.Name)),
			Size: len(out.Data),
		})
	}
	h.logger.Info("split stored", "request_id", requestID(c), "result_id", id, "files", len(res.Outputs))
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) HandleResultArchive(c *gin.Context) {
	res, ok := h.results.Get(c.Param("id"))
	if !ok || res.Archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found or expired"})
		return
	}
	sendFile(c, MimeZIP, *res.Archive)
}

func (h *Handlers) HandleResultFile(c *gin.Context) {
	res, ok := h.results.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Result not found or expired"})
		return
	}
	out, ok := res.Lookup(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found in result"})
		return
	}
	sendFile(c, MimePDF, out)
}

func (h *Handlers) HandleExtract(c *gin.Context) {
	pages, ok := requiredField(c, "pages", "Please enter at least one page number")
	if !ok {
		return
	}
	src, ok := h.singleUpload(c)
	if !ok {
		return
	}
	out, err := h.studio.Extract(src, pages)
	if err != nil {
		h.writeError(c, err)
		return
	}
	sendFile(c, MimePDF, out)
}

func (h *Handlers) HandleRemovePages(c *gin.Context) {
	pages, ok := requiredField(c, "pages", "No pages specified")
	if !ok {
		return
	}
	src, ok := h.singleUpload(c)
	if !ok {
		return
	}
	out, err := h.studio.RemovePages(src, pages)
	if err != nil {
		h.writeError(c, err)
		return
	}
	sendFile(c, MimePDF, out)
}

func (h *Handlers) singleUpload(c *gin.Context) (pdf.Source, bool) {
	header, err := c.FormFile(FormFileField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return pdf.Source{}, false
	}
	src, err := readUpload(header, h.config.MaxFileSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pdf.Source{}, false
	}
	return src, true
}

func requiredField(c *gin.Context, name, missing string) (string, bool) {
	value := c.PostForm(name)
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": missing})
		return "", false
	}
	return value, true
}

// writeError maps operation errors to status codes. Input errors are echoed
// verbatim; internal ones are logged and truncated.
func (h *Handlers) writeError(c *gin.Context, err error) {
	var specErr *pdf.SpecError
	var corrupt *pdf.CorruptDocumentError
	var assembly *pdf.AssemblyError

	switch {
	case errors.As(err, &assembly):
		h.internalError(c, err)
	case errors.As(err, &specErr),
		errors.Is(err, pdf.ErrNoPagesRemaining),
		errors.Is(err, pdf.ErrNoSources),
		errors.Is(err, pdf.ErrNoPages),
		errors.Is(err, pdf.ErrTooManyOutputPages):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &corrupt):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.internalError(c, err)
	}
}

func (h *Handlers) internalError(c *gin.Context, err error) {
	h.logger.Error("PDF operation error", "request_id", requestID(c), "error", err)
	errorMsg := err.Error()
	if len(errorMsg) > MaxErrorMessageLen {
		errorMsg = errorMsg[:MaxErrorMessageLen] + "..."
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": errorMsg})
}

func sendFile(c *gin.Context, contentType string, out pdf.AssembledOutput) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sanitizeFilename(out.Name)))
	c.Data(http.StatusOK, contentType, out.Data)
}
