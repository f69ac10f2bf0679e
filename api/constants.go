package api

const (
	// FormFileField is the multipart field carrying uploaded PDFs
	FormFileField = "pdf"

	// MaxErrorMessageLen truncates long internal error messages sent to clients
	MaxErrorMessageLen = 200

	// RequestIDHeader carries the per-request id
	RequestIDHeader = "X-Request-ID"

	MimePDF = "application/pdf"
	MimeZIP = "application/zip"
)
