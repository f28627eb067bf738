// Command generate runs the exam paper pipeline once from the command line:
// it extracts text from the given files, generates the selected question
// sections, and writes the styled PDF to disk.
//
// Usage:
//
//	generate -mcq 5 -short 3 -difficulty Medium -out exam_paper.pdf notes.pdf slides.pptx
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/adapter/completion"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/config"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/extractor"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/logger"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/renderer"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/service"

	"go.uber.org/zap"
)

func main() {
	var (
		numMCQ     = flag.Int("mcq", 0, "number of multiple choice questions (0 to skip)")
		numShort   = flag.Int("short", 0, "number of short questions (0 to skip)")
		numLong    = flag.Int("long", 0, "number of long questions (0 to skip)")
		difficulty = flag.String("difficulty", "Medium", "difficulty for all sections (Easy, Medium, Hard, Mixed)")
		topic      = flag.String("topic", "", "optional topic to focus questions on")
		outPath    = flag.String("out", "exam_paper.pdf", "output PDF path")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if flag.NArg() == 0 {
		appLogger.Fatal("No input files given")
	}
	if err := cfg.ValidateCredentials(); err != nil {
		appLogger.Fatal("Missing credential", zap.Error(err))
	}

	settings := domain.QuestionSettings{}
	diff := domain.Difficulty(*difficulty)
	if !diff.IsValid() {
		appLogger.Fatal("Unknown difficulty", zap.String("difficulty", *difficulty))
	}
	addSetting := func(t domain.QuestionType, n int) {
		if n == 0 {
			return
		}
		if n < domain.MinQuestionsPerType || n > domain.MaxQuestionsPerType {
			appLogger.Fatal("Question count out of range",
				zap.String("question_type", string(t)),
				zap.Int("count", n),
				zap.Int("min", domain.MinQuestionsPerType),
				zap.Int("max", domain.MaxQuestionsPerType),
			)
		}
		settings[t] = domain.QuestionTypeSetting{NumQuestions: n, Difficulty: diff}
	}
	addSetting(domain.QuestionTypeMCQ, *numMCQ)
	addSetting(domain.QuestionTypeShort, *numShort)
	addSetting(domain.QuestionTypeLong, *numLong)

	var docs []domain.UploadedDocument
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			appLogger.Fatal("Failed to read input file", zap.String("path", path), zap.Error(err))
		}
		docs = append(docs, domain.UploadedDocument{
			Name:      path,
			MediaType: domain.MediaTypeFromFilename(path),
			Data:      data,
		})
	}

	completionClient, err := completion.NewGroqClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create completion client", zap.Error(err))
	}
	examService := service.NewExamService(extractor.New(), completionClient, renderer.New(), cfg)

	result, err := examService.GeneratePaper(context.Background(), docs, settings, *topic)
	if err != nil {
		appLogger.Fatal("Generation failed", zap.Error(err))
	}

	if err := os.WriteFile(*outPath, result.PDF, 0o644); err != nil {
		appLogger.Fatal("Failed to write PDF", zap.String("path", *outPath), zap.Error(err))
	}
	appLogger.Info("Exam paper written",
		zap.String("request_id", result.RequestID),
		zap.String("path", *outPath),
		zap.Int("sections", len(result.Paper.Sections)),
	)
}
