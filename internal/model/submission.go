package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubmissionStatusInProgress = "in_progress"
	SubmissionStatusSubmitted  = "submitted"
	SubmissionStatusGraded     = "graded"
)

// Submission is one student's timed attempt at one exam. The unique index on
// (exam_id, student_id) is the backstop against duplicate attempts created by
// concurrent tab opens.
type Submission struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ExamID     uint           `json:"exam_id" gorm:"not null;uniqueIndex:idx_submissions_exam_student"`
	Exam       Exam           `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	StudentID  uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_submissions_exam_student"`
	Student    Profile        `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Status     string         `json:"status" gorm:"not null;default:'in_progress';index"` // in_progress, submitted, graded
	StartTime  time.Time      `json:"start_time" gorm:"not null;autoCreateTime"`
	EndTime    *time.Time     `json:"end_time,omitempty"`
	TotalScore int            `json:"total_score" gorm:"not null;default:0"`
	MaxScore   int            `json:"max_score" gorm:"not null;default:0"`
	Answers    []Answer       `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Finalized reports whether the attempt has left the in_progress state.
func (s *Submission) Finalized() bool {
	return s.Status != SubmissionStatusInProgress
}
