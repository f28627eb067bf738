package domain

import (
	"context"
	"strings"
)

// QuestionType identifies one kind of exam question.
type QuestionType string

const (
	QuestionTypeMCQ   QuestionType = "mcq"
	QuestionTypeShort QuestionType = "short"
	QuestionTypeLong  QuestionType = "long"
)

// AllQuestionTypes is the canonical section order of an exam paper.
// Assembly iterates this slice restricted to the selected types, so the
// output order is stable regardless of how the settings map was built.
var AllQuestionTypes = []QuestionType{QuestionTypeMCQ, QuestionTypeShort, QuestionTypeLong}

// DisplayName returns the section heading used in the assembled paper.
func (t QuestionType) DisplayName() string {
	switch t {
	case QuestionTypeMCQ:
		return "Multiple Choice Questions"
	case QuestionTypeShort:
		return "Short Questions"
	case QuestionTypeLong:
		return "Long Questions"
	default:
		return string(t)
	}
}

// IsValid reports whether t is one of the known question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeShort, QuestionTypeLong:
		return true
	}
	return false
}

// Difficulty is passed through to the prompt verbatim; no verification of
// the generated difficulty is performed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyMixed  Difficulty = "Mixed"
)

// IsValid reports whether d is one of the known difficulty labels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
		return true
	}
	return false
}

const (
	// MinQuestionsPerType and MaxQuestionsPerType bound the per-section
	// question count a request may ask for.
	MinQuestionsPerType = 1
	MaxQuestionsPerType = 20
)

// QuestionTypeSetting holds the per-type generation knobs.
type QuestionTypeSetting struct {
	NumQuestions int
	Difficulty   Difficulty
}

// QuestionSettings maps each selected question type to its setting. A request
// selects any non-empty subset of the three types.
type QuestionSettings map[QuestionType]QuestionTypeSetting

// SelectedTypes returns the selected types in canonical section order.
func (s QuestionSettings) SelectedTypes() []QuestionType {
	var types []QuestionType
	for _, t := range AllQuestionTypes {
		if _, ok := s[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// Section is one generated block of the exam paper. Body holds the model
// output when Err is nil; a failed section keeps its slot and renders an
// error line instead, so one failure never drops the other sections.
type Section struct {
	Type    QuestionType
	Heading string
	Body    string
	Err     error
}

// Text returns the body that will appear under the section heading.
func (s Section) Text() string {
	if s.Err != nil {
		return "Error generating questions: " + s.Err.Error()
	}
	return s.Body
}

// ExamPaper is the ordered collection of generated sections. It exists only
// for the duration of one generation request and is never persisted.
type ExamPaper struct {
	Title    string
	Sections []Section
}

// Render joins the sections into the Markdown-styled text the PDF renderer
// consumes: each section as "### <Heading>" followed by its body, blocks
// separated by a blank line.
func (p ExamPaper) Render() string {
	blocks := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		blocks = append(blocks, "### "+s.Heading+"\n\n"+s.Text())
	}
	return strings.Join(blocks, "\n\n")
}

// CompletionClient is the outbound port to the hosted completion endpoint.
// One synchronous, non-streaming call per prompt.
type CompletionClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextExtractor pulls plain text out of an uploaded document. Extraction is
// fail-soft: it reports problems through the result, never through a panic
// or returned error.
type TextExtractor interface {
	Extract(doc UploadedDocument) ExtractionResult
	CombineAll(docs []UploadedDocument) string
}

// PaperRenderer turns a title and assembled body text into a styled PDF.
type PaperRenderer interface {
	Render(title, body string) ([]byte, error)
}
