package dto

import "time"

// QuestionInput is one question in a full question-set replacement. Order is
// taken from slice position; order_index is recomputed server-side.
type QuestionInput struct {
	QuestionText  string            `json:"question_text" binding:"required"`
	QuestionType  string            `json:"question_type" binding:"required,oneof=multiple_choice true_false short_answer essay file_upload"`
	Options       map[string]string `json:"options"`
	CorrectAnswer *string           `json:"correct_answer"`
	Points        int               `json:"points" binding:"omitempty,min=1"`
	FileURL       *string           `json:"file_url"`
}

type ExamCreateRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,gt=0"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Visibility      string     `json:"visibility" binding:"omitempty,oneof=all specific hidden"`
	AllowReview     *bool      `json:"allow_review"`
	ShowResults     *bool      `json:"show_results"`
}

type ExamUpdateRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,gt=0"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Status          string     `json:"status" binding:"omitempty,oneof=draft active inactive"`
	Visibility      string     `json:"visibility" binding:"omitempty,oneof=all specific hidden"`
	AllowReview     *bool      `json:"allow_review"`
	ShowResults     *bool      `json:"show_results"`
}

type SetQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,dive"`
}

// QuestionResponse is the admin view and includes the correct answer.
type QuestionResponse struct {
	ID            uint              `json:"id"`
	ExamID        uint              `json:"exam_id"`
	QuestionText  string            `json:"question_text"`
	QuestionType  string            `json:"question_type"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectAnswer *string           `json:"correct_answer,omitempty"`
	Points        int               `json:"points"`
	OrderIndex    int               `json:"order_index"`
	FileURL       *string           `json:"file_url,omitempty"`
}

type ExamResponse struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	DurationMinutes int                `json:"duration_minutes"`
	StartDate       *time.Time         `json:"start_date,omitempty"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	Status          string             `json:"status"`
	Visibility      string             `json:"visibility"`
	AllowReview     bool               `json:"allow_review"`
	ShowResults     bool               `json:"show_results"`
	CreatedBy       uint               `json:"created_by"`
	Questions       []QuestionResponse `json:"questions,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ExamSummaryResponse lists an exam on the admin dashboard.
type ExamSummaryResponse struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Status          string     `json:"status"`
	SubmissionCount int        `json:"submission_count"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ExamStatsResponse struct {
	TotalExams       int64 `json:"total_exams"`
	ActiveExams      int64 `json:"active_exams"`
	UpcomingExams    int64 `json:"upcoming_exams"`
	TotalSubmissions int64 `json:"total_submissions"`
}
