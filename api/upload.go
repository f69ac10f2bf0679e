package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"pdf_studio/pdf"
)

// readUpload validates an uploaded file and reads it into a pdf.Source.
func readUpload(header *multipart.FileHeader, maxSize int64) (pdf.Source, error) {
	if header.Size > maxSize {
		return pdf.Source{}, fmt.Errorf("file %s is %s, maximum allowed is %s",
			sanitizeFilename(header.Filename), humanize.Bytes(uint64(header.Size)), humanize.Bytes(uint64(maxSize)))
	}

	file, err := header.Open()
	if err != nil {
		return pdf.Source{}, fmt.Errorf("failed to open upload: %v", err)
	}
	defer file.Close()

	if err := validatePDFFile(file); err != nil {
		return pdf.Source{}, err
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return pdf.Source{}, fmt.Errorf("failed to read upload: %v", err)
	}
	if int64(len(data)) > maxSize {
		return pdf.Source{}, fmt.Errorf("file exceeds maximum allowed %s", humanize.Bytes(uint64(maxSize)))
	}

	return pdf.Source{Name: sanitizeFilename(header.Filename), Data: data}, nil
}

// validatePDFFile checks the %PDF header and rewinds the file
func validatePDFFile(file multipart.File) error {
	buffer := make([]byte, 4)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %v", err)
	}

	if n < 4 || string(buffer[:4]) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %v", err)
	}
	return nil
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "\"", "")

	filename = filepath.Base(filename)
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == "." {
		filename = "document.pdf"
	}
	return filename
}
