package validation

import (
	"testing"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGenerateRequest_Valid(t *testing.T) {
	v := NewValidator()
	req := &dto.GenerateRequest{
		Types: map[string]dto.QuestionTypeSettingRequest{
			"mcq":  {NumQuestions: 5, Difficulty: "Medium"},
			"long": {NumQuestions: 2, Difficulty: "Hard"},
		},
	}

	settings, errs := v.ValidateGenerateRequest(req)
	require.Empty(t, errs)
	require.Len(t, settings, 2)
	assert.Equal(t, domain.QuestionTypeSetting{NumQuestions: 5, Difficulty: domain.DifficultyMedium}, settings[domain.QuestionTypeMCQ])
	assert.Equal(t, domain.QuestionTypeSetting{NumQuestions: 2, Difficulty: domain.DifficultyHard}, settings[domain.QuestionTypeLong])
}

func TestValidateGenerateRequest_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		req       *dto.GenerateRequest
		wantField string
	}{
		{
			name: "unknown type tag",
			req: &dto.GenerateRequest{Types: map[string]dto.QuestionTypeSettingRequest{
				"essay": {NumQuestions: 5, Difficulty: "Easy"},
			}},
			wantField: "types",
		},
		{
			name: "count below minimum",
			req: &dto.GenerateRequest{Types: map[string]dto.QuestionTypeSettingRequest{
				"mcq": {NumQuestions: 0, Difficulty: "Easy"},
			}},
			wantField: "mcq.num_questions",
		},
		{
			name: "count above maximum",
			req: &dto.GenerateRequest{Types: map[string]dto.QuestionTypeSettingRequest{
				"short": {NumQuestions: 21, Difficulty: "Easy"},
			}},
			wantField: "short.num_questions",
		},
		{
			name: "missing difficulty",
			req: &dto.GenerateRequest{Types: map[string]dto.QuestionTypeSettingRequest{
				"mcq": {NumQuestions: 5},
			}},
			wantField: "mcq.difficulty",
		},
		{
			name: "unknown difficulty",
			req: &dto.GenerateRequest{Types: map[string]dto.QuestionTypeSettingRequest{
				"mcq": {NumQuestions: 5, Difficulty: "Impossible"},
			}},
			wantField: "mcq.difficulty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, errs := NewValidator().ValidateGenerateRequest(tt.req)
			assert.Nil(t, settings)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestValidateGenerateRequest_CollectsAllErrors(t *testing.T) {
	req := &dto.GenerateRequest{
		Types: map[string]dto.QuestionTypeSettingRequest{
			"mcq": {NumQuestions: 0, Difficulty: ""},
		},
	}

	settings, errs := NewValidator().ValidateGenerateRequest(req)
	assert.Nil(t, settings)
	assert.Len(t, errs, 2)
}
