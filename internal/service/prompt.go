package service

import (
	"fmt"
	"strings"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/config"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
)

const mcqPromptTemplate = `Generate exactly %d multiple choice questions from the following content.
Difficulty level: %s.

Content:
%s

Requirements:
- Each question has exactly 4 options labeled A) to D), with exactly one correct option.
- Derive every question only from the supplied content.
- Do not repeat or duplicate questions.
- Calibrate the wording and the distractors to the %s difficulty level.

Format each question as:
Q[number]. [Question]
A) [Option 1]
B) [Option 2]
C) [Option 3]
D) [Option 4]

Do not restate the section heading and keep the line spacing between questions consistent.`

const shortPromptTemplate = `Generate exactly %d short-answer questions from the following content.
Difficulty level: %s.

Content:
%s

Requirements:
- Each question must be answerable in 2-3 sentences.
- Do not ask yes/no questions.
- Test conceptual understanding, not recall of isolated facts.
- Derive every question only from the supplied content.

Format each question as:
Q[number]. [Question]

Do not restate the section heading and keep the line spacing between questions consistent.`

const longPromptTemplate = `Generate exactly %d long-answer questions from the following content.
Difficulty level: %s.

Content:
%s

Requirements:
- Each question is a multi-part analytical question requiring synthesis of several ideas from the content.
- Questions must be of clearly higher complexity than short-answer questions.
- Derive every question only from the supplied content.

Format each question as:
Q[number]. [Detailed question, parts labeled where appropriate]

Do not restate the section heading and keep the line spacing between questions consistent.`

// PromptBuilder turns extracted content plus the per-type settings into the
// single prompt string sent to the completion endpoint.
type PromptBuilder struct {
	maxChars int
}

// NewPromptBuilder creates a PromptBuilder with the given content budget.
// Non-positive budgets fall back to the default cutoff.
func NewPromptBuilder(maxChars int) *PromptBuilder {
	if maxChars <= 0 {
		maxChars = config.DefaultMaxPromptChars
	}
	return &PromptBuilder{maxChars: maxChars}
}

// Build produces the prompt for one question type. Content is truncated to
// the configured character budget before interpolation; this bounds outbound
// request size. An optional topic narrows generation.
func (b *PromptBuilder) Build(content string, questionType domain.QuestionType, setting domain.QuestionTypeSetting, topic string) string {
	content = b.Truncate(content)

	var prompt string
	switch questionType {
	case domain.QuestionTypeShort:
		prompt = fmt.Sprintf(shortPromptTemplate, setting.NumQuestions, setting.Difficulty, content)
	case domain.QuestionTypeLong:
		prompt = fmt.Sprintf(longPromptTemplate, setting.NumQuestions, setting.Difficulty, content)
	default:
		prompt = fmt.Sprintf(mcqPromptTemplate, setting.NumQuestions, setting.Difficulty, content, setting.Difficulty)
	}

	if topic = strings.TrimSpace(topic); topic != "" {
		prompt += fmt.Sprintf("\n\nOnly generate questions about the following topic: %s.", topic)
	}
	return prompt
}

// Truncate keeps the first maxChars characters of the content. Shorter
// content passes through unmodified.
func (b *PromptBuilder) Truncate(content string) string {
	runes := []rune(content)
	if len(runes) <= b.maxChars {
		return content
	}
	return string(runes[:b.maxChars])
}
