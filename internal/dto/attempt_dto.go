package dto

import "time"

type AnswerInput struct {
	QuestionID uint    `json:"question_id" binding:"required"`
	Answer     string  `json:"answer"`
	FileURL    *string `json:"file_url"`
}

// SaveAnswersRequest is the periodic autosave payload.
type SaveAnswersRequest struct {
	Answers []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// SubmitRequest finalizes the attempt. Answers may be empty when everything
// was already autosaved.
type SubmitRequest struct {
	Answers []AnswerInput `json:"answers" binding:"omitempty,dive"`
}

// StudentQuestionResponse is the exam-taking view of a question. It never
// carries the correct answer.
type StudentQuestionResponse struct {
	ID           uint              `json:"id"`
	QuestionText string            `json:"question_text"`
	QuestionType string            `json:"question_type"`
	Options      map[string]string `json:"options,omitempty"`
	Points       int               `json:"points"`
	OrderIndex   int               `json:"order_index"`
	FileURL      *string           `json:"file_url,omitempty"`
}

type AnswerStateResponse struct {
	QuestionID     uint    `json:"question_id"`
	StudentAnswer  string  `json:"student_answer"`
	StudentFileURL *string `json:"student_file_url,omitempty"`
}

// AttemptSessionResponse is returned on start or resume. RemainingSeconds is
// computed server-side from the persisted start time.
type AttemptSessionResponse struct {
	SubmissionID     uint                      `json:"submission_id"`
	ExamID           uint                      `json:"exam_id"`
	ExamTitle        string                    `json:"exam_title"`
	ExamDescription  string                    `json:"exam_description,omitempty"`
	DurationMinutes  int                       `json:"duration_minutes"`
	Status           string                    `json:"status"`
	StartTime        time.Time                 `json:"start_time"`
	RemainingSeconds int                       `json:"remaining_seconds"`
	Questions        []StudentQuestionResponse `json:"questions"`
	Answers          []AnswerStateResponse     `json:"answers,omitempty"`
}

type SubmitResultResponse struct {
	SubmissionID uint   `json:"submission_id"`
	Status       string `json:"status"`
	TotalScore   int    `json:"total_score"`
	MaxScore     int    `json:"max_score"`
	FullyGraded  bool   `json:"fully_graded"`
	Late         bool   `json:"late,omitempty"`
}

// StudentExamResponse is one entry on the student dashboard.
type StudentExamResponse struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	SubmissionID    *uint      `json:"submission_id,omitempty"`
	AttemptStatus   string     `json:"attempt_status,omitempty"`
	TotalScore      *int       `json:"total_score,omitempty"`
	MaxScore        *int       `json:"max_score,omitempty"`
}

type StudentExamListResponse struct {
	Available []StudentExamResponse `json:"available_exams"`
	Completed []StudentExamResponse `json:"completed_exams"`
}

// GradeReportResponse is one row on the student grades page.
type GradeReportResponse struct {
	SubmissionID uint       `json:"submission_id"`
	ExamID       uint       `json:"exam_id"`
	ExamTitle    string     `json:"exam_title"`
	Status       string     `json:"status"`
	TotalScore   int        `json:"total_score"`
	MaxScore     int        `json:"max_score"`
	Percentage   int        `json:"percentage"`
	LetterGrade  string     `json:"letter_grade"`
	Passed       bool       `json:"passed"`
	AllowReview  bool       `json:"allow_review"`
	EndTime      *time.Time `json:"end_time,omitempty"`
}
