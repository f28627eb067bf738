package domain

import (
	"path/filepath"
	"strings"
)

// MediaType is the declared MIME type of an uploaded document. Files are
// identified by this declaration, not by sniffing bytes.
type MediaType string

const (
	MediaTypePDF   MediaType = "application/pdf"
	MediaTypeDOCX  MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypePPTX  MediaType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MediaTypeXLSX  MediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypePlain MediaType = "text/plain"
	MediaTypeOther MediaType = "application/octet-stream"
)

// IsSupported reports whether the pipeline can extract text from m. An
// unsupported declaration still flows through extraction, which reports it
// with the unsupported-format sentinel.
func (m MediaType) IsSupported() bool {
	switch m {
	case MediaTypePDF, MediaTypeDOCX, MediaTypePPTX, MediaTypeXLSX, MediaTypePlain:
		return true
	}
	return false
}

// MediaTypeFromFilename maps a file extension onto the declared media type
// used by the pipeline. Unknown extensions map to MediaTypeOther, which the
// extractor reports as unsupported.
func MediaTypeFromFilename(name string) MediaType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaTypePDF
	case ".docx":
		return MediaTypeDOCX
	case ".pptx":
		return MediaTypePPTX
	case ".xlsx":
		return MediaTypeXLSX
	case ".txt", ".text":
		return MediaTypePlain
	default:
		return MediaTypeOther
	}
}

// UploadedDocument is one received file. Immutable once constructed and
// consumed exactly once by the extractor.
type UploadedDocument struct {
	Name      string
	MediaType MediaType
	Data      []byte
}

// Sentinel strings surfaced in place of extracted text. They are produced
// only when an ExtractionResult is flattened; internally callers branch on
// the result fields instead of sniffing strings.
const (
	UnsupportedFormatMessage = "Unsupported file format"
	ExtractionErrorPrefix    = "Error processing file: "
)

// NoContentSentinel is returned by the generation step when there is no
// content to build a prompt from; the completion endpoint is never called.
const NoContentSentinel = "No content provided for question generation."

// ExtractionResult is the structured outcome of extracting one document:
// either text, an unsupported-format marker, or a parse error.
type ExtractionResult struct {
	Text        string
	Unsupported bool
	Err         error
}

// Flatten renders the result as the single string embedded into prompts,
// preserving the pipeline's fail-soft contract.
func (r ExtractionResult) Flatten() string {
	switch {
	case r.Err != nil:
		return ExtractionErrorPrefix + r.Err.Error()
	case r.Unsupported:
		return UnsupportedFormatMessage
	default:
		return r.Text
	}
}
