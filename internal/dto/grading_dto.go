package dto

import "time"

type GradeItem struct {
	AnswerID uint   `json:"answer_id" binding:"required"`
	Score    int    `json:"score" binding:"min=0"`
	Feedback string `json:"feedback"`
}

type GradeSubmissionRequest struct {
	SubmissionID uint        `json:"submission_id" binding:"required"`
	Grades       []GradeItem `json:"grades" binding:"required,min=1,dive"`
}

type GradeFailure struct {
	AnswerID uint   `json:"answer_id"`
	Error    string `json:"error"`
}

// GradingResultResponse reports the post-write aggregate plus any items that
// could not be applied.
type GradingResultResponse struct {
	SubmissionID uint           `json:"submission_id"`
	TotalScore   int            `json:"total_score"`
	MaxScore     int            `json:"max_score"`
	Status       string         `json:"status"`
	Failed       []GradeFailure `json:"failed,omitempty"`
}

// SubmissionSummaryResponse is one row in the admin grading list.
type SubmissionSummaryResponse struct {
	ID           uint       `json:"id"`
	StudentID    uint       `json:"student_id"`
	StudentEmail string     `json:"student_email,omitempty"`
	Status       string     `json:"status"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	TotalScore   int        `json:"total_score"`
	MaxScore     int        `json:"max_score"`
}
