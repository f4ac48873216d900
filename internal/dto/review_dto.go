package dto

import "time"

type ReviewSubmissionResponse struct {
	ID         uint       `json:"id"`
	ExamID     uint       `json:"exam_id"`
	StudentID  uint       `json:"student_id"`
	Status     string     `json:"status"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	TotalScore int        `json:"total_score"`
	MaxScore   int        `json:"max_score"`
}

type ReviewExamResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AllowReview bool   `json:"allow_review"`
	ShowResults bool   `json:"show_results"`
}

type ReviewAnswerResponse struct {
	ID             uint             `json:"id"`
	QuestionID     uint             `json:"question_id"`
	Question       QuestionResponse `json:"question"`
	StudentAnswer  string           `json:"student_answer"`
	StudentFileURL *string          `json:"student_file_url,omitempty"`
	Score          *int             `json:"score,omitempty"`
	Feedback       *string          `json:"feedback,omitempty"`
	IsCorrect      *bool            `json:"is_correct,omitempty"`
}

// ReviewResponse joins a finalized attempt with its exam and per-question
// answers, ordered by question order.
type ReviewResponse struct {
	Submission  ReviewSubmissionResponse `json:"submission"`
	Exam        ReviewExamResponse       `json:"exam"`
	Answers     []ReviewAnswerResponse   `json:"answers"`
	Percentage  int                      `json:"percentage"`
	LetterGrade string                   `json:"letter_grade"`
	Passed      bool                     `json:"passed"`
}
