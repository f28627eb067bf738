// Package completion wraps the hosted completion endpoint behind the
// domain.CompletionClient port. The endpoint is OpenAI-compatible (Groq by
// default), reached through langchaingo's openai provider.
package completion

import (
	"context"
	"fmt"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/config"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// systemPrompt pins the assistant's persona and output format so sections
// generated back to back stay consistently formatted.
const systemPrompt = "You are an exam paper author. Produce only the questions requested, " +
	"using the exact Q / A)-D) line format given in the prompt. " +
	"Do not add section headings, commentary, or markdown fences."

// GroqClient issues one synchronous, non-streaming completion request per
// prompt against a single fixed model.
type GroqClient struct {
	llm         *openai.LLM
	model       string
	temperature float64
}

// NewGroqClient builds the client. The API key must be present; callers are
// expected to have validated configuration before reaching this point, and
// an empty key is refused here so no request is ever attempted without one.
func NewGroqClient(cfg config.LLMConfig) (*GroqClient, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewMissingCredentialError("GROQ_API_KEY")
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("create completion client: %w", err)
	}

	logger.Get().Info("Completion client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
	)

	return &GroqClient{
		llm:         llm,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

var _ domain.CompletionClient = (*GroqClient)(nil)

// Generate sends the prompt as a single user message and returns the first
// choice's text. Transport and auth failures are returned as-is; converting
// them into fail-soft section text is the caller's concern.
func (c *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion endpoint returned no choices")
	}
	return resp.Choices[0].Content, nil
}
