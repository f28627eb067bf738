package handler

import (
	"encoding/json"
	"io"
	"mime"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/dto"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/logger"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/service"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DownloadFilename is the fixed name of the offered PDF download.
const DownloadFilename = "exam_paper.pdf"

// ExamHandler handles exam paper generation HTTP requests
type ExamHandler struct {
	service   service.ExamService
	validator *validation.Validator
}

// NewExamHandler creates a new ExamHandler instance
func NewExamHandler(service service.ExamService, validator *validation.Validator) *ExamHandler {
	return &ExamHandler{
		service:   service,
		validator: validator,
	}
}

// GeneratePaper godoc
// @Summary Generate an exam paper
// @Description Uploads documents, generates questions for the selected types, and returns a styled PDF
// @Tags papers
// @Accept multipart/form-data
// @Produce application/pdf
// @Param documents formData file true "Documents to draw questions from (repeatable)"
// @Param settings formData string true "Generation settings JSON (see dto.GenerateRequest)"
// @Success 200 {file} binary "exam_paper.pdf"
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /papers [post]
func (h *ExamHandler) GeneratePaper(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.NewInvalidInputError("request must be multipart/form-data")
	}

	settingsJSON := c.FormValue("settings")
	if settingsJSON == "" {
		return domain.NewInvalidInputError("settings form field is required")
	}

	var req dto.GenerateRequest
	if err := json.Unmarshal([]byte(settingsJSON), &req); err != nil {
		return domain.NewInvalidInputError("settings must be valid JSON")
	}

	if len(req.Types) == 0 {
		return domain.NewNoTypeSelectedError()
	}

	settings, validationErrs := h.validator.ValidateGenerateRequest(&req)
	if len(validationErrs) > 0 {
		return validationErrs
	}

	files := form.File["documents"]
	if len(files) == 0 {
		return domain.NewInvalidInputError("at least one document must be uploaded")
	}

	docs := make([]domain.UploadedDocument, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return domain.NewInternalError("failed to open uploaded file", err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return domain.NewInternalError("failed to read uploaded file", err)
		}
		docs = append(docs, domain.UploadedDocument{
			Name:      fh.Filename,
			MediaType: declaredMediaType(fh.Header.Get(fiber.HeaderContentType), fh.Filename),
			Data:      data,
		})
	}

	result, err := h.service.GeneratePaper(c.Context(), docs, settings, req.Topic)
	if err != nil {
		return err
	}

	logger.Get().Info("Exam paper generated",
		zap.String("request_id", result.RequestID),
		zap.Int("documents", len(docs)),
		zap.Int("pdf_bytes", len(result.PDF)),
	)

	c.Set("X-Request-ID", result.RequestID)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+DownloadFilename+`"`)
	return c.Send(result.PDF)
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *ExamHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

// declaredMediaType trusts the part's Content-Type header; when the client
// declared nothing usable, the filename extension stands in as the
// declaration. Bytes are never sniffed.
func declaredMediaType(contentType, filename string) domain.MediaType {
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			declared := domain.MediaType(mt)
			if declared.IsSupported() {
				return declared
			}
			if declared != domain.MediaTypeOther {
				// An explicit, unrecognized declaration is honored so the
				// extractor reports it as unsupported.
				return declared
			}
		}
	}
	return domain.MediaTypeFromFilename(filename)
}
