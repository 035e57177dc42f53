package model

// StartQuizRequest begins a new quiz for the caller.
type StartQuizRequest struct {
	QuestionCount int    `json:"questionCount" binding:"required,min=1"`
	Mode          string `json:"mode" binding:"required,oneof=exam learn"`
	Persist       bool   `json:"persist"`
}

// AnswerRequest selects an option for the current question.
type AnswerRequest struct {
	Option string `json:"option" binding:"required"`
}

// ExplainRequest asks for an AI explanation of an answered question.
type ExplainRequest struct {
	Question      string `json:"question" binding:"required,max=2000"`
	UserAnswer    string `json:"userAnswer" binding:"required,max=1000"`
	CorrectAnswer string `json:"correctAnswer" binding:"required,max=1000"`
	Topic         string `json:"topic" binding:"omitempty,max=255"`
	Explanation   string `json:"explanation" binding:"omitempty,max=5000"`
}
