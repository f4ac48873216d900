package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ExamStatusDraft    = "draft"
	ExamStatusActive   = "active"
	ExamStatusInactive = "inactive"
)

const (
	VisibilityAll      = "all"
	VisibilitySpecific = "specific"
	VisibilityHidden   = "hidden"
)

type Exam struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description,omitempty"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	StartDate       *time.Time     `json:"start_date,omitempty"`
	EndDate         *time.Time     `json:"end_date,omitempty"`
	Status          string         `json:"status" gorm:"not null;default:'draft';index"` // draft, active, inactive
	Visibility      string         `json:"visibility" gorm:"not null;default:'all'"`     // all, specific, hidden
	AllowReview     bool           `json:"allow_review" gorm:"default:true"`
	ShowResults     bool           `json:"show_results" gorm:"default:true"`
	CreatedBy       uint           `json:"created_by" gorm:"not null;index"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// WindowOpen reports whether t falls inside the scheduling window.
// A nil bound leaves that side open.
func (e *Exam) WindowOpen(t time.Time) bool {
	if e.StartDate != nil && t.Before(*e.StartDate) {
		return false
	}
	if e.EndDate != nil && t.After(*e.EndDate) {
		return false
	}
	return true
}

// ExamVisibility whitelists a student for an exam with visibility "specific".
type ExamVisibility struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ExamID    uint      `json:"exam_id" gorm:"not null;uniqueIndex:idx_exam_visibility_exam_student"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_exam_visibility_exam_student"`
	CreatedAt time.Time `json:"created_at"`
}
