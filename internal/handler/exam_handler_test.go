package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/handler"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/middleware"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/service"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockExamService
type MockExamService struct {
	GeneratePaperFunc func(ctx context.Context, docs []domain.UploadedDocument, settings domain.QuestionSettings, topic string) (*service.GeneratedPaper, error)
}

func (m *MockExamService) GeneratePaper(ctx context.Context, docs []domain.UploadedDocument, settings domain.QuestionSettings, topic string) (*service.GeneratedPaper, error) {
	if m.GeneratePaperFunc != nil {
		return m.GeneratePaperFunc(ctx, docs, settings, topic)
	}
	panic("MockExamService.GeneratePaperFunc not implemented")
}

func newTestApp(svc service.ExamService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := handler.NewExamHandler(svc, validation.NewValidator())
	app.Post("/api/papers", h.GeneratePaper)
	app.Get("/health", h.Health)
	return app
}

type uploadedFile struct {
	name        string
	contentType string
	data        string
}

// newMultipartRequest assembles a multipart body with a settings part and one
// "documents" file part per upload.
func newMultipartRequest(t *testing.T, settingsJSON string, files []uploadedFile) (*strings.Reader, string) {
	t.Helper()
	var body strings.Builder
	w := multipart.NewWriter(&body)
	if settingsJSON != "" {
		require.NoError(t, w.WriteField("settings", settingsJSON))
	}
	for _, f := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="documents"; filename="`+f.name+`"`)
		if f.contentType != "" {
			hdr.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return strings.NewReader(body.String()), w.FormDataContentType()
}

func validSettingsJSON() string {
	return `{"types":{"mcq":{"num_questions":5,"difficulty":"Medium"}},"topic":"photosynthesis"}`
}

func TestExamHandler_GeneratePaper(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		pdfBytes := []byte("%PDF-stub")
		var gotDocs []domain.UploadedDocument
		var gotSettings domain.QuestionSettings
		var gotTopic string

		mockSvc := &MockExamService{
			GeneratePaperFunc: func(ctx context.Context, docs []domain.UploadedDocument, settings domain.QuestionSettings, topic string) (*service.GeneratedPaper, error) {
				gotDocs = docs
				gotSettings = settings
				gotTopic = topic
				return &service.GeneratedPaper{
					RequestID: "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
					PDF:       pdfBytes,
				}, nil
			},
		}
		app := newTestApp(mockSvc)

		body, contentType := newMultipartRequest(t, validSettingsJSON(), []uploadedFile{
			{name: "notes.txt", contentType: "text/plain", data: "cell biology notes"},
		})
		req := httptest.NewRequest("POST", "/api/papers", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Equal(t, `attachment; filename="exam_paper.pdf"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, "01HGZ8VNRYXS8QKNJV5GRWPWDQ", resp.Header.Get("X-Request-ID"))

		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, pdfBytes, respBody)

		require.Len(t, gotDocs, 1)
		assert.Equal(t, "notes.txt", gotDocs[0].Name)
		assert.Equal(t, domain.MediaTypePlain, gotDocs[0].MediaType)
		assert.Equal(t, []byte("cell biology notes"), gotDocs[0].Data)
		assert.Equal(t, "photosynthesis", gotTopic)
		require.Contains(t, gotSettings, domain.QuestionTypeMCQ)
		assert.Equal(t, 5, gotSettings[domain.QuestionTypeMCQ].NumQuestions)
		assert.Equal(t, domain.DifficultyMedium, gotSettings[domain.QuestionTypeMCQ].Difficulty)
	})

	t.Run("Missing Settings", func(t *testing.T) {
		mockSvc := &MockExamService{
			GeneratePaperFunc: func(ctx context.Context, docs []domain.UploadedDocument, settings domain.QuestionSettings, topic string) (*service.GeneratedPaper, error) {
				assert.Fail(t, "ExamService.GeneratePaper should not be called without settings")
				return nil, nil
			},
		}
		app := newTestApp(mockSvc)

		body, contentType := newMultipartRequest(t, "", []uploadedFile{
			{name: "notes.txt", contentType: "text/plain", data: "notes"},
		})
		req := httptest.NewRequest("POST", "/api/papers", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, string(domain.ErrInvalidInput), errResp.Code)
	})

	t.Run("No Question Type Selected", func(t *testing.T) {
		mockSvc := &MockExamService{}
		app := newTestApp(mockSvc)

		body, contentType := newMultipartRequest(t, `{"types":{}}`, []uploadedFile{
			{name: "notes.txt", contentType: "text/plain", data: "notes"},
		})
		req := httptest.NewRequest("POST", "/api/papers", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, string(domain.ErrNoTypeSelected), errResp.Code)
	})

	t.Run("Out Of Range Question Count", func(t *testing.T) {
		mockSvc := &MockExamService{}
		app := newTestApp(mockSvc)

		settings := `{"types":{"mcq":{"num_questions":50,"difficulty":"Easy"}}}`
		body, contentType := newMultipartRequest(t, settings, []uploadedFile{
			{name: "notes.txt", contentType: "text/plain", data: "notes"},
		})
		req := httptest.NewRequest("POST", "/api/papers", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp middleware.ValidationErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, string(domain.CodeValidation), errResp.Code)
		require.Len(t, errResp.Errors, 1)
		assert.Equal(t, "mcq.num_questions", errResp.Errors[0].Field)
	})

	t.Run("No Documents", func(t *testing.T) {
		mockSvc := &MockExamService{}
		app := newTestApp(mockSvc)

		body, contentType := newMultipartRequest(t, validSettingsJSON(), nil)
		req := httptest.NewRequest("POST", "/api/papers", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, string(domain.ErrInvalidInput), errResp.Code)
	})

	t.Run("Service Error Maps To Status", func(t *testing.T) {
		mockSvc := &MockExamService{
			GeneratePaperFunc: func(ctx context.Context, docs []domain.UploadedDocument, settings domain.QuestionSettings, topic string) (*service.GeneratedPaper, error) {
				return nil, domain.NewNoContentError()
			},
		}
		app := newTestApp(mockSvc)

		body, contentType := newMultipartRequest(t, validSettingsJSON(), []uploadedFile{
			{name: "blank.txt", contentType: "text/plain", data: "   "},
		})
		req := httptest.NewRequest("POST", "/api/papers", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, string(domain.ErrNoContent), errResp.Code)
	})

	t.Run("Media Type From Extension When Header Missing", func(t *testing.T) {
		var gotDocs []domain.UploadedDocument
		mockSvc := &MockExamService{
			GeneratePaperFunc: func(ctx context.Context, docs []domain.UploadedDocument, settings domain.QuestionSettings, topic string) (*service.GeneratedPaper, error) {
				gotDocs = docs
				return &service.GeneratedPaper{RequestID: "01HGZ8VNRYXS8QKNJV5GRWPWDQ", PDF: []byte("%PDF-stub")}, nil
			},
		}
		app := newTestApp(mockSvc)

		body, contentType := newMultipartRequest(t, validSettingsJSON(), []uploadedFile{
			{name: "slides.pptx", data: "not real pptx bytes"},
		})
		req := httptest.NewRequest("POST", "/api/papers", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Len(t, gotDocs, 1)
		assert.Equal(t, domain.MediaTypePPTX, gotDocs[0].MediaType)
	})
}

func TestExamHandler_Health(t *testing.T) {
	app := newTestApp(&MockExamService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var health struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
}
