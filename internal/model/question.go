package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
	QuestionTypeEssay          = "essay"
	QuestionTypeFileUpload     = "file_upload"
)

type Question struct {
	ID            uint              `gorm:"primarykey" json:"id"`
	ExamID        uint              `json:"exam_id" gorm:"not null;index;uniqueIndex:idx_questions_exam_order"`
	QuestionText  string            `json:"question_text" gorm:"type:text;not null"`
	QuestionType  string            `json:"question_type" gorm:"not null"` // multiple_choice, true_false, short_answer, essay, file_upload
	Options       map[string]string `json:"options,omitempty" gorm:"serializer:json"`
	CorrectAnswer *string           `json:"correct_answer,omitempty"`
	Points        int               `json:"points" gorm:"not null;default:1"`
	OrderIndex    int               `json:"order_index" gorm:"not null;uniqueIndex:idx_questions_exam_order"`
	FileURL       *string           `json:"file_url,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

// IsObjective reports whether the question can be scored by exact match.
func (q *Question) IsObjective() bool {
	return q.QuestionType == QuestionTypeMultipleChoice || q.QuestionType == QuestionTypeTrueFalse
}
