package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ctrls-academy/exam-platform/internal/auth"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/model"
	"github.com/ctrls-academy/exam-platform/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// ExamService owns exam authoring: metadata, scheduling, visibility and the
// ordered question set.
type ExamService interface {
	CreateExam(actx auth.Context, req dto.ExamCreateRequest) (*dto.ExamResponse, error)
	UpdateExam(actx auth.Context, examID uint, req dto.ExamUpdateRequest) (*dto.ExamResponse, error)
	GetExam(actx auth.Context, examID uint) (*dto.ExamResponse, error)
	ListExams(actx auth.Context) ([]dto.ExamSummaryResponse, error)
	GetStats(actx auth.Context) (*dto.ExamStatsResponse, error)
	ReplaceQuestions(actx auth.Context, examID uint, req dto.SetQuestionsRequest) (*dto.ExamResponse, error)
}

type examService struct {
	examRepo       repository.ExamRepository
	submissionRepo repository.SubmissionRepository
}

func NewExamService(examRepo repository.ExamRepository, submissionRepo repository.SubmissionRepository) ExamService {
	return &examService{examRepo: examRepo, submissionRepo: submissionRepo}
}

func (s *examService) CreateExam(actx auth.Context, req dto.ExamCreateRequest) (*dto.ExamResponse, error) {
	if !actx.IsAdmin {
		return nil, ErrForbidden
	}
	if err := validateExamFields(req.Title, req.DurationMinutes, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	exam := model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          model.ExamStatusDraft,
		Visibility:      model.VisibilityAll,
		AllowReview:     true,
		ShowResults:     true,
		CreatedBy:       actx.UserID,
	}
	if req.Visibility != "" {
		exam.Visibility = req.Visibility
	}
	if req.AllowReview != nil {
		exam.AllowReview = *req.AllowReview
	}
	if req.ShowResults != nil {
		exam.ShowResults = *req.ShowResults
	}

	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateExam: failed to persist exam")
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}
	return examToResponse(&exam), nil
}

func (s *examService) UpdateExam(actx auth.Context, examID uint, req dto.ExamUpdateRequest) (*dto.ExamResponse, error) {
	if !actx.IsAdmin {
		return nil, ErrForbidden
	}
	if err := validateExamFields(req.Title, req.DurationMinutes, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return nil, fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}

	exam.Title = req.Title
	exam.Description = req.Description
	exam.DurationMinutes = req.DurationMinutes
	exam.StartDate = req.StartDate
	exam.EndDate = req.EndDate
	if req.Status != "" {
		exam.Status = req.Status
	}
	if req.Visibility != "" {
		exam.Visibility = req.Visibility
	}
	if req.AllowReview != nil {
		exam.AllowReview = *req.AllowReview
	}
	if req.ShowResults != nil {
		exam.ShowResults = *req.ShowResults
	}

	if err := s.examRepo.Update(exam); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("UpdateExam: failed to persist exam")
		return nil, fmt.Errorf("failed to update exam %d: %w", examID, err)
	}
	return examToResponse(exam), nil
}

func (s *examService) GetExam(actx auth.Context, examID uint) (*dto.ExamResponse, error) {
	if !actx.IsAdmin {
		return nil, ErrForbidden
	}
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}
	return examToResponse(exam), nil
}

func (s *examService) ListExams(actx auth.Context) ([]dto.ExamSummaryResponse, error) {
	if !actx.IsAdmin {
		return nil, ErrForbidden
	}
	examsWithCount, err := s.examRepo.FindAllWithSubmissionCount()
	if err != nil {
		log.Error().Err(err).Msg("ListExams: repository failure")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}

	summaries := make([]dto.ExamSummaryResponse, 0, len(examsWithCount))
	for _, ewc := range examsWithCount {
		var summary dto.ExamSummaryResponse
		if err := copier.Copy(&summary, &ewc.Exam); err != nil {
			log.Error().Err(err).Uint("examID", ewc.Exam.ID).Msg("ListExams: failed to map exam")
			continue
		}
		summary.SubmissionCount = ewc.SubmissionCount
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *examService) GetStats(actx auth.Context) (*dto.ExamStatsResponse, error) {
	if !actx.IsAdmin {
		return nil, ErrForbidden
	}

	total, err := s.examRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("error counting exams: %w", err)
	}
	active, err := s.examRepo.CountByStatus(model.ExamStatusActive)
	if err != nil {
		return nil, fmt.Errorf("error counting active exams: %w", err)
	}
	upcoming, err := s.examRepo.CountByStatus(model.ExamStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("error counting draft exams: %w", err)
	}
	submissions, err := s.submissionRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("error counting submissions: %w", err)
	}

	return &dto.ExamStatsResponse{
		TotalExams:       total,
		ActiveExams:      active,
		UpcomingExams:    upcoming,
		TotalSubmissions: submissions,
	}, nil
}

// ReplaceQuestions swaps the exam's entire ordered question set. Editing is
// refused once any attempt exists: questions are hard-deleted on replace, and
// answers of submitted attempts awaiting manual grading still reference them.
func (s *examService) ReplaceQuestions(actx auth.Context, examID uint, req dto.SetQuestionsRequest) (*dto.ExamResponse, error) {
	if !actx.IsAdmin {
		return nil, ErrForbidden
	}

	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}

	attempts, err := s.submissionRepo.CountByExam(examID)
	if err != nil {
		return nil, fmt.Errorf("error checking attempts for exam %d: %w", examID, err)
	}
	if attempts > 0 {
		return nil, newValidationError("exam %d has %d attempt(s); questions cannot be edited once attempts exist", examID, attempts)
	}

	questions, err := buildQuestionSet(req.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.examRepo.ReplaceQuestions(examID, questions); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("ReplaceQuestions: transaction failed")
		return nil, fmt.Errorf("failed to replace questions for exam %d: %w", examID, err)
	}

	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}
	return examToResponse(exam), nil
}

func validateExamFields(title string, durationMinutes int, startDate, endDate *time.Time) error {
	if strings.TrimSpace(title) == "" {
		return newValidationError("title is required")
	}
	if durationMinutes <= 0 {
		return newValidationError("duration_minutes must be greater than zero")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return newValidationError("end_date must not be before start_date")
	}
	return nil
}

// buildQuestionSet validates each submitted question and assigns order
// indices 0..n-1 from slice position, so the stored order always matches the
// submitted order with no duplicates or gaps.
func buildQuestionSet(inputs []dto.QuestionInput) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(inputs))
	for i, in := range inputs {
		q, err := buildQuestion(in, i)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func buildQuestion(in dto.QuestionInput, orderIndex int) (model.Question, error) {
	q := model.Question{
		QuestionText:  in.QuestionText,
		QuestionType:  in.QuestionType,
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		Points:        in.Points,
		OrderIndex:    orderIndex,
		FileURL:       in.FileURL,
	}
	if q.Points == 0 {
		q.Points = 1
	}
	if q.Points < 0 {
		return q, newValidationError("question %d: points must be a positive integer", orderIndex+1)
	}
	if strings.TrimSpace(q.QuestionText) == "" {
		return q, newValidationError("question %d: question_text is required", orderIndex+1)
	}

	switch q.QuestionType {
	case model.QuestionTypeMultipleChoice:
		if len(q.Options) < 2 {
			return q, newValidationError("question %d: multiple_choice requires at least 2 options", orderIndex+1)
		}
		if q.CorrectAnswer == nil || *q.CorrectAnswer == "" {
			return q, newValidationError("question %d: multiple_choice requires a correct_answer", orderIndex+1)
		}
		if !optionExists(q.Options, *q.CorrectAnswer) {
			return q, newValidationError("question %d: correct_answer %q is not among the options", orderIndex+1, *q.CorrectAnswer)
		}
	case model.QuestionTypeTrueFalse:
		if len(q.Options) == 0 {
			q.Options = map[string]string{"true": "True", "false": "False"}
		}
		if len(q.Options) != 2 {
			return q, newValidationError("question %d: true_false requires exactly 2 options", orderIndex+1)
		}
		if q.CorrectAnswer == nil || *q.CorrectAnswer == "" {
			return q, newValidationError("question %d: true_false requires a correct_answer", orderIndex+1)
		}
		if !optionExists(q.Options, *q.CorrectAnswer) {
			return q, newValidationError("question %d: correct_answer %q is not among the options", orderIndex+1, *q.CorrectAnswer)
		}
	case model.QuestionTypeShortAnswer:
		if len(q.Options) > 0 {
			return q, newValidationError("question %d: short_answer takes no options", orderIndex+1)
		}
		// correct_answer is optional reference text here.
	case model.QuestionTypeEssay, model.QuestionTypeFileUpload:
		if len(q.Options) > 0 {
			return q, newValidationError("question %d: %s takes no options", orderIndex+1, q.QuestionType)
		}
		if q.CorrectAnswer != nil && *q.CorrectAnswer != "" {
			return q, newValidationError("question %d: %s takes no correct_answer", orderIndex+1, q.QuestionType)
		}
	default:
		return q, newValidationError("question %d: unknown question_type %q", orderIndex+1, q.QuestionType)
	}
	return q, nil
}

// optionExists accepts either an option key or an option value as the
// correct-answer reference.
func optionExists(options map[string]string, answer string) bool {
	for key, value := range options {
		if key == answer || value == answer {
			return true
		}
	}
	return false
}

func examToResponse(exam *model.Exam) *dto.ExamResponse {
	var resp dto.ExamResponse
	if err := copier.Copy(&resp, exam); err != nil {
		log.Error().Err(err).Uint("examID", exam.ID).Msg("failed to map exam to response")
	}
	return &resp
}
