package model

import "time"

// Question is a single multiple-choice question in the bank.
type Question struct {
	ID            int       `json:"id"`
	QuestionText  string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectOption string    `json:"correct"`
	Topic         *string   `json:"topic,omitempty"`
	Explanation   *string   `json:"explanation,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AddQuestionRequest is the payload for adding a question to the bank.
type AddQuestionRequest struct {
	QuestionText  string   `json:"question" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectOption string   `json:"correct" binding:"required"`
	Topic         string   `json:"topic" binding:"omitempty,max=255"`
	Explanation   string   `json:"explanation" binding:"omitempty,max=5000"`
}

// UpdateQuestionRequest carries partial updates to a question.
type UpdateQuestionRequest struct {
	QuestionText  *string  `json:"question" binding:"omitempty,min=1,max=2000"`
	Options       []string `json:"options" binding:"omitempty,min=2,dive,required"`
	CorrectOption *string  `json:"correct"`
	Topic         *string  `json:"topic" binding:"omitempty,max=255"`
	Explanation   *string  `json:"explanation" binding:"omitempty,max=5000"`
}
