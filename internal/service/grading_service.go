package service

import (
	"fmt"

	"github.com/ctrls-academy/exam-platform/internal/auth"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/model"
	"github.com/ctrls-academy/exam-platform/internal/repository"
	"github.com/rs/zerolog/log"
)

// GradingService converges the automatic and manual grading paths onto the
// same submission score fields.
type GradingService interface {
	// AutoGrade scores every objective answer of a submission and persists
	// the aggregate. Runs once right after finalization; safe to re-run.
	AutoGrade(submissionID uint) (totalScore, maxScore int, fullyGraded bool, err error)

	// GradeSubmission applies a batch of manual scores. Individual failures
	// are reported without blocking the rest; the aggregate is recomputed
	// from re-fetched post-write state only.
	GradeSubmission(actx auth.Context, req dto.GradeSubmissionRequest) (*dto.GradingResultResponse, error)

	// ListSubmissions returns an exam's submissions for the grading UI.
	ListSubmissions(actx auth.Context, examID uint) ([]dto.SubmissionSummaryResponse, error)
}

type gradingService struct {
	examRepo       repository.ExamRepository
	submissionRepo repository.SubmissionRepository
	answerRepo     repository.AnswerRepository
	scoring        ScoringService
}

func NewGradingService(
	examRepo repository.ExamRepository,
	submissionRepo repository.SubmissionRepository,
	answerRepo repository.AnswerRepository,
	scoring ScoringService,
) GradingService {
	return &gradingService{
		examRepo:       examRepo,
		submissionRepo: submissionRepo,
		answerRepo:     answerRepo,
		scoring:        scoring,
	}
}

func (s *gradingService) AutoGrade(submissionID uint) (int, int, bool, error) {
	answers, err := s.answerRepo.FindBySubmissionID(submissionID)
	if err != nil {
		return 0, 0, false, fmt.Errorf("error loading answers for submission %d: %w", submissionID, err)
	}

	for i := range answers {
		answer := &answers[i]
		if !answer.Question.IsObjective() {
			continue
		}
		score, isCorrect := s.scoring.ScoreAnswer(&answer.Question, answer.StudentAnswer)
		if err := s.answerRepo.UpdateScore(answer.ID, score, isCorrect); err != nil {
			log.Error().Err(err).Uint("answerID", answer.ID).Msg("AutoGrade: failed to persist score")
			return 0, 0, false, fmt.Errorf("error scoring answer %d: %w", answer.ID, err)
		}
	}

	return s.recomputeAggregate(submissionID)
}

func (s *gradingService) GradeSubmission(actx auth.Context, req dto.GradeSubmissionRequest) (*dto.GradingResultResponse, error) {
	if !actx.IsAdmin {
		return nil, ErrForbidden
	}

	sub, err := s.submissionRepo.FindByID(req.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("submission %d: %w", req.SubmissionID, ErrNotFound)
	}
	if !sub.Finalized() {
		return nil, newValidationError("submission %d is still in progress and cannot be graded", req.SubmissionID)
	}

	var failed []dto.GradeFailure
	for _, grade := range req.Grades {
		if err := s.applyGrade(sub.ID, grade); err != nil {
			log.Warn().Err(err).Uint("answerID", grade.AnswerID).Msg("GradeSubmission: grade item rejected")
			failed = append(failed, dto.GradeFailure{AnswerID: grade.AnswerID, Error: err.Error()})
		}
	}

	// Aggregate from the store's post-write state, never from assumed
	// success of the loop above.
	totalScore, maxScore, fullyGraded, err := s.recomputeAggregate(sub.ID)
	if err != nil {
		return nil, err
	}

	status := model.SubmissionStatusSubmitted
	if fullyGraded {
		status = model.SubmissionStatusGraded
	}

	return &dto.GradingResultResponse{
		SubmissionID: sub.ID,
		TotalScore:   totalScore,
		MaxScore:     maxScore,
		Status:       status,
		Failed:       failed,
	}, nil
}

func (s *gradingService) ListSubmissions(actx auth.Context, examID uint) ([]dto.SubmissionSummaryResponse, error) {
	if !actx.IsAdmin {
		return nil, ErrForbidden
	}
	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}

	subs, err := s.submissionRepo.FindAllByExam(examID)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("ListSubmissions: repository failure")
		return nil, fmt.Errorf("error fetching submissions for exam %d: %w", examID, err)
	}

	summaries := make([]dto.SubmissionSummaryResponse, 0, len(subs))
	for i := range subs {
		summaries = append(summaries, dto.SubmissionSummaryResponse{
			ID:           subs[i].ID,
			StudentID:    subs[i].StudentID,
			StudentEmail: subs[i].Student.Email,
			Status:       subs[i].Status,
			StartTime:    subs[i].StartTime,
			EndTime:      subs[i].EndTime,
			TotalScore:   subs[i].TotalScore,
			MaxScore:     subs[i].MaxScore,
		})
	}
	return summaries, nil
}

func (s *gradingService) applyGrade(submissionID uint, grade dto.GradeItem) error {
	answer, err := s.answerRepo.FindByID(grade.AnswerID)
	if err != nil {
		return fmt.Errorf("answer %d: %w", grade.AnswerID, ErrNotFound)
	}
	if answer.SubmissionID != submissionID {
		return newValidationError("answer %d does not belong to submission %d", grade.AnswerID, submissionID)
	}
	points := questionPoints(&answer.Question)
	if grade.Score < 0 || grade.Score > points {
		return newValidationError("score %d for answer %d is outside 0..%d", grade.Score, grade.AnswerID, points)
	}
	return s.answerRepo.UpdateGrade(grade.AnswerID, grade.Score, grade.Feedback)
}

// recomputeAggregate re-fetches all answers, sums scores and points, and
// persists them. A submission becomes graded only once every answer has a
// score; otherwise it stays submitted awaiting manual grading.
func (s *gradingService) recomputeAggregate(submissionID uint) (int, int, bool, error) {
	answers, err := s.answerRepo.FindBySubmissionID(submissionID)
	if err != nil {
		return 0, 0, false, fmt.Errorf("error reloading answers for submission %d: %w", submissionID, err)
	}

	totalScore, maxScore := s.scoring.Aggregate(answers)
	fullyGraded := len(answers) > 0 && s.scoring.FullyScored(answers)

	status := model.SubmissionStatusSubmitted
	if fullyGraded {
		status = model.SubmissionStatusGraded
	}
	if err := s.submissionRepo.UpdateScores(submissionID, totalScore, maxScore, status); err != nil {
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("recomputeAggregate: failed to persist scores")
		return 0, 0, false, fmt.Errorf("error saving scores for submission %d: %w", submissionID, err)
	}
	return totalScore, maxScore, fullyGraded, nil
}
