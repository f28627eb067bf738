package service

import (
	"context"
	"strings"
	"time"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/config"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/logger"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PaperTitle is the title rendered at the top of every generated paper and
// the basename of the download.
const PaperTitle = "Exam Paper"

// ExamService drives one generation request end to end: extract, prompt,
// complete, assemble, render. Each run is independent and stateless; nothing
// is persisted or cached across requests.
type ExamService interface {
	GeneratePaper(ctx context.Context, docs []domain.UploadedDocument, settings domain.QuestionSettings, topic string) (*GeneratedPaper, error)
}

// GeneratedPaper is the outcome of one generation request.
type GeneratedPaper struct {
	RequestID string
	Paper     domain.ExamPaper
	PDF       []byte
}

type examService struct {
	extractor domain.TextExtractor
	client    domain.CompletionClient
	renderer  domain.PaperRenderer
	prompts   *PromptBuilder
	cfg       *config.Config
}

// NewExamService creates the generation service.
func NewExamService(
	extractor domain.TextExtractor,
	client domain.CompletionClient,
	renderer domain.PaperRenderer,
	cfg *config.Config,
) ExamService {
	return &examService{
		extractor: extractor,
		client:    client,
		renderer:  renderer,
		prompts:   NewPromptBuilder(cfg.LLM.MaxPromptChars),
		cfg:       cfg,
	}
}

func (s *examService) GeneratePaper(ctx context.Context, docs []domain.UploadedDocument, settings domain.QuestionSettings, topic string) (*GeneratedPaper, error) {
	requestID := util.NewULID()
	l := logger.Get().With(zap.String("request_id", requestID))

	types := settings.SelectedTypes()
	if len(types) == 0 {
		return nil, domain.NewNoTypeSelectedError()
	}

	combined := s.extractor.CombineAll(docs)
	if strings.TrimSpace(combined) == "" {
		// Stop before any completion call when nothing could be extracted.
		return nil, domain.NewNoContentError()
	}

	l.Info("Generating exam paper",
		zap.Int("documents", len(docs)),
		zap.Int("sections", len(types)),
		zap.Bool("parallel", s.cfg.Generation.Parallel),
	)

	sections := s.assemble(ctx, l, combined, settings, topic)
	paper := domain.ExamPaper{Title: PaperTitle, Sections: sections}

	pdfBytes, err := s.renderer.Render(paper.Title, paper.Render())
	if err != nil {
		return nil, domain.NewRenderError(err)
	}

	return &GeneratedPaper{RequestID: requestID, Paper: paper, PDF: pdfBytes}, nil
}

// assemble runs one generation task per selected type. Tasks are laid out in
// the fixed mcq/short/long order and results are written by task index, so
// the section order of the paper is the same whether the tasks run
// sequentially or fanned out.
func (s *examService) assemble(ctx context.Context, l *zap.Logger, content string, settings domain.QuestionSettings, topic string) []domain.Section {
	types := settings.SelectedTypes()
	sections := make([]domain.Section, len(types))

	run := func(i int, t domain.QuestionType) {
		sections[i] = s.generateSection(ctx, l, content, t, settings[t], topic)
	}

	if s.cfg.Generation.Parallel {
		var g errgroup.Group
		for i, t := range types {
			i, t := i, t
			g.Go(func() error {
				run(i, t)
				return nil
			})
		}
		// Tasks report failures through their section, never as errors, so
		// one failing section cannot cancel the others.
		_ = g.Wait()
	} else {
		for i, t := range types {
			run(i, t)
		}
	}
	return sections
}

// generateSection produces one section. Completion failures are folded into
// the section rather than propagated: the paper keeps its slot and renders
// an error line in its place.
func (s *examService) generateSection(ctx context.Context, l *zap.Logger, content string, t domain.QuestionType, setting domain.QuestionTypeSetting, topic string) domain.Section {
	heading := t.DisplayName()

	if strings.TrimSpace(content) == "" {
		return domain.Section{Type: t, Heading: heading, Body: domain.NoContentSentinel}
	}

	prompt := s.prompts.Build(content, t, setting, topic)
	start := time.Now()
	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		l.Warn("Section generation failed",
			zap.String("question_type", string(t)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return domain.Section{Type: t, Heading: heading, Err: err}
	}

	l.Info("Section generated",
		zap.String("question_type", string(t)),
		zap.Int("num_questions", setting.NumQuestions),
		zap.String("difficulty", string(setting.Difficulty)),
		zap.Duration("duration", time.Since(start)),
	)
	return domain.Section{Type: t, Heading: heading, Body: strings.TrimSpace(text)}
}
