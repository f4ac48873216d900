package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is keyed by (submission_id, question_id); autosave upserts on that
// pair, it never appends.
type Answer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SubmissionID   uint           `json:"submission_id" gorm:"not null;index;uniqueIndex:idx_answers_submission_question"`
	QuestionID     uint           `json:"question_id" gorm:"not null;index;uniqueIndex:idx_answers_submission_question"`
	Question       Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	StudentAnswer  string         `json:"student_answer" gorm:"type:text"`
	StudentFileURL *string        `json:"student_file_url,omitempty"`
	Score          *int           `json:"score,omitempty"`
	Feedback       *string        `json:"feedback,omitempty" gorm:"type:text"`
	IsCorrect      *bool          `json:"is_correct,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
