// Package extractor pulls plain text out of uploaded documents.
//
// Dispatch is by declared media type, never by sniffing bytes. Every branch
// is fail-soft: a malformed file or an unknown type is reported through the
// ExtractionResult, and Extract never panics past this boundary.
package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/logger"

	"go.uber.org/zap"
)

// Extractor implements domain.TextExtractor.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

var _ domain.TextExtractor = (*Extractor)(nil)

// Extract returns the plain-text content of one document. A single pass, no
// retries; problems degrade into the result instead of raising.
func (e *Extractor) Extract(doc domain.UploadedDocument) (result domain.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("Recovered panic during extraction",
				zap.String("file", doc.Name),
				zap.String("media_type", string(doc.MediaType)),
				zap.Any("panic", r),
			)
			result = domain.ExtractionResult{Err: fmt.Errorf("%v", r)}
		}
	}()

	var (
		text string
		err  error
	)
	switch doc.MediaType {
	case domain.MediaTypePDF:
		text, err = extractPDF(doc.Data)
	case domain.MediaTypeDOCX:
		text, err = extractDOCX(doc.Data)
	case domain.MediaTypePPTX:
		text, err = extractPPTX(doc.Data)
	case domain.MediaTypeXLSX:
		text, err = extractXLSX(doc.Data)
	case domain.MediaTypePlain:
		text, err = extractPlainText(doc.Data)
	default:
		return domain.ExtractionResult{Unsupported: true}
	}
	if err != nil {
		logger.Get().Warn("Extraction failed",
			zap.String("file", doc.Name),
			zap.String("media_type", string(doc.MediaType)),
			zap.Error(err),
		)
		return domain.ExtractionResult{Err: err}
	}
	return domain.ExtractionResult{Text: text}
}

// CombineAll extracts every document and joins the flattened results with a
// blank line, in upload order. Exactly one result per document.
func (e *Extractor) CombineAll(docs []domain.UploadedDocument) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, e.Extract(doc).Flatten())
	}
	return strings.Join(parts, "\n\n")
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}
