package pdf

import "time"

const (
	// PDFExt is the extension given to every assembled output
	PDFExt = ".pdf"

	// MergedName is the output name of a merge
	MergedName = "merged" + PDFExt

	// ExtractedName is the output name of an extraction
	ExtractedName = "extracted" + PDFExt

	// ArchiveName is the name of the archive bundling a multi-file result
	ArchiveName = "split_pdfs.zip"

	// RemovedSuffix is appended to the base name of a remove-pages output
	RemovedSuffix = "_pages_removed"

	// DefaultBaseName is used when a source filename has no usable stem
	DefaultBaseName = "document"
)

// archiveModTime is stamped on every archive entry so packaging is deterministic
var archiveModTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
