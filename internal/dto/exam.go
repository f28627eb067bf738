package dto

// QuestionTypeSettingRequest is the per-type generation setting in a request
// @Description Settings for one question type
type QuestionTypeSettingRequest struct {
	NumQuestions int    `json:"num_questions" example:"5"`
	Difficulty   string `json:"difficulty" example:"Medium"`
}

// GenerateRequest is the JSON "settings" part of the multipart generate request
// @Description Exam paper generation settings
type GenerateRequest struct {
	// Types selects the question types to generate, keyed by type tag
	// ("mcq", "short", "long"), each with its own count and difficulty.
	Types map[string]QuestionTypeSettingRequest `json:"types"`
	// Topic optionally narrows generation to one topic.
	Topic string `json:"topic,omitempty" example:"photosynthesis"`
}

// HealthResponse is the liveness probe body
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
