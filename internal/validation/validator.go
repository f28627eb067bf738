package validation

import (
	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest checks the settings of a generate request and, when
// valid, converts them into domain settings. The returned errors carry one
// entry per offending field.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateRequest) (domain.QuestionSettings, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	settings := make(domain.QuestionSettings, len(req.Types))

	for tag, s := range req.Types {
		questionType := domain.QuestionType(tag)
		if !questionType.IsValid() {
			errors = append(errors, domain.NewInvalidFormatError("types", tag))
			continue
		}

		if s.NumQuestions < domain.MinQuestionsPerType || s.NumQuestions > domain.MaxQuestionsPerType {
			errors = append(errors, domain.NewOutOfRangeError(
				tag+".num_questions", s.NumQuestions,
				domain.MinQuestionsPerType, domain.MaxQuestionsPerType,
			))
		}

		difficulty := domain.Difficulty(s.Difficulty)
		if s.Difficulty == "" {
			errors = append(errors, domain.NewMissingFieldError(tag+".difficulty"))
		} else if !difficulty.IsValid() {
			errors = append(errors, domain.NewInvalidFormatError(tag+".difficulty", s.Difficulty))
		}

		settings[questionType] = domain.QuestionTypeSetting{
			NumQuestions: s.NumQuestions,
			Difficulty:   difficulty,
		}
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return settings, nil
}
