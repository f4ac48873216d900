package service

import (
	"github.com/ctrls-academy/exam-platform/internal/model"
)

// ScoringService computes per-answer correctness and aggregate scores. All
// methods are pure; callers persist the results.
type ScoringService interface {
	// ScoreAnswer returns the earned score and correctness for one answer.
	// Subjective question types return (nil, nil): the score stays open until
	// a human grades it.
	ScoreAnswer(question *model.Question, studentAnswer string) (score *int, isCorrect *bool)

	// Aggregate sums current answer scores (nil counts as 0) and the linked
	// questions' points. Idempotent for unchanged input.
	Aggregate(answers []model.Answer) (totalScore, maxScore int)

	// FullyScored reports whether every answer has a score.
	FullyScored(answers []model.Answer) bool
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) ScoreAnswer(question *model.Question, studentAnswer string) (*int, *bool) {
	if !question.IsObjective() || question.CorrectAnswer == nil {
		return nil, nil
	}

	isCorrect := studentAnswer == *question.CorrectAnswer
	earned := 0
	if isCorrect {
		earned = questionPoints(question)
	}
	return &earned, &isCorrect
}

func (s *scoringService) Aggregate(answers []model.Answer) (int, int) {
	totalScore := 0
	maxScore := 0
	for i := range answers {
		if answers[i].Score != nil {
			totalScore += *answers[i].Score
		}
		maxScore += questionPoints(&answers[i].Question)
	}
	return totalScore, maxScore
}

func (s *scoringService) FullyScored(answers []model.Answer) bool {
	for i := range answers {
		if answers[i].Score == nil {
			return false
		}
	}
	return true
}

func questionPoints(q *model.Question) int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}
