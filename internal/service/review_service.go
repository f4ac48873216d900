package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctrls-academy/exam-platform/internal/auth"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

const passPercentage = 70

// ReviewService assembles the read-only review of a finalized attempt for
// the owning student or an admin.
type ReviewService interface {
	GetReview(actx auth.Context, submissionID uint) (*dto.ReviewResponse, error)
}

type reviewService struct {
	submissionRepo repository.SubmissionRepository
}

func NewReviewService(submissionRepo repository.SubmissionRepository) ReviewService {
	return &reviewService{submissionRepo: submissionRepo}
}

func (s *reviewService) GetReview(actx auth.Context, submissionID uint) (*dto.ReviewResponse, error) {
	sub, err := s.submissionRepo.FindByIDWithDetails(submissionID)
	if err != nil {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrNotFound)
	}

	if sub.StudentID != actx.UserID && !actx.IsAdmin {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrForbidden)
	}
	if !sub.Exam.AllowReview && !actx.IsAdmin {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrReviewNotAllowed)
	}
	if !sub.Finalized() {
		return nil, newValidationError("submission %d has not been submitted yet", submissionID)
	}

	sort.SliceStable(sub.Answers, func(i, j int) bool {
		return sub.Answers[i].Question.OrderIndex < sub.Answers[j].Question.OrderIndex
	})

	resp := &dto.ReviewResponse{}
	if err := copier.Copy(&resp.Submission, sub); err != nil {
		log.Error().Err(err).Uint("submissionID", sub.ID).Msg("GetReview: failed to map submission")
		return nil, fmt.Errorf("error preparing review: %w", err)
	}
	if err := copier.Copy(&resp.Exam, &sub.Exam); err != nil {
		log.Error().Err(err).Uint("examID", sub.Exam.ID).Msg("GetReview: failed to map exam")
		return nil, fmt.Errorf("error preparing review: %w", err)
	}

	resp.Answers = make([]dto.ReviewAnswerResponse, len(sub.Answers))
	for i := range sub.Answers {
		if err := copier.Copy(&resp.Answers[i], &sub.Answers[i]); err != nil {
			log.Error().Err(err).Uint("answerID", sub.Answers[i].ID).Msg("GetReview: failed to map answer")
		}
	}

	resp.Percentage = percentageOf(sub.TotalScore, sub.MaxScore)
	resp.LetterGrade = letterGrade(resp.Percentage)
	resp.Passed = resp.Percentage >= passPercentage
	return resp, nil
}

func percentageOf(totalScore, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(totalScore) / float64(maxScore)))
}

func letterGrade(percentage int) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}
