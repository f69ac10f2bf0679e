package pdf

// Codec decodes source documents and encodes assembled ones.
type Codec interface {
	// Open decodes a document. Malformed input yields a *CorruptDocumentError.
	Open(data []byte) (Document, error)
	NewWriter() Writer
}

// Document is a decoded, read-only source document.
type Document interface {
	PageCount() int
	// Page returns page n, 1-indexed.
	Page(n int) (Page, error)
}

// Page is an opaque page handle owned by the Document it came from.
type Page interface{}

// Writer accumulates pages into a new document.
type Writer interface {
	AddPage(p Page) error
	Bytes() ([]byte, error)
}
