package service

import (
	"errors"
	"testing"

	"github.com/ctrls-academy/exam-platform/internal/model"
)

// newReviewFixture seeds a fully graded attempt worth 6/7 (86%).
func newReviewFixture(t *testing.T, allowReview bool) (ReviewService, *fakeSubmissionRepo, *model.Submission) {
	t.Helper()
	examRepo := newFakeExamRepo()
	ansRepo := newFakeAnswerRepo(examRepo)
	subRepo := newFakeSubmissionRepo(examRepo, ansRepo)

	exam := examRepo.add(model.Exam{Title: "Final", DurationMinutes: 60, Status: model.ExamStatusActive, AllowReview: allowReview})
	examRepo.questions[exam.ID] = []model.Question{
		{ID: 101, ExamID: exam.ID, QuestionText: "2+2?", QuestionType: model.QuestionTypeMultipleChoice,
			Options: map[string]string{"a": "3", "b": "4"}, CorrectAnswer: strPtr("b"), Points: 2, OrderIndex: 0},
		{ID: 102, ExamID: exam.ID, QuestionText: "Explain inertia", QuestionType: model.QuestionTypeEssay, Points: 5, OrderIndex: 1},
	}

	sub := subRepo.add(model.Submission{
		ExamID:     exam.ID,
		StudentID:  studentCtx.UserID,
		Status:     model.SubmissionStatusGraded,
		TotalScore: 6,
		MaxScore:   7,
	})
	ansRepo.add(model.Answer{ID: 2, SubmissionID: sub.ID, QuestionID: 102, StudentAnswer: "Things keep moving.", Score: intPtr(4), Feedback: strPtr("Good.")})
	ansRepo.add(model.Answer{ID: 1, SubmissionID: sub.ID, QuestionID: 101, StudentAnswer: "b", Score: intPtr(2), IsCorrect: boolPtr(true)})

	return NewReviewService(subRepo), subRepo, sub
}

func TestGetReview(t *testing.T) {
	svc, _, sub := newReviewFixture(t, true)

	review, err := svc.GetReview(studentCtx, sub.ID)
	if err != nil {
		t.Fatalf("GetReview: %v", err)
	}
	if review.Percentage != 86 {
		t.Errorf("percentage = %d, want 86", review.Percentage)
	}
	if review.LetterGrade != "B" {
		t.Errorf("letter_grade = %q, want B", review.LetterGrade)
	}
	if !review.Passed {
		t.Error("passed = false, want true at 86%")
	}
	if len(review.Answers) != 2 {
		t.Fatalf("len(answers) = %d, want 2", len(review.Answers))
	}
	// Answers come back in question order, not insertion order.
	if review.Answers[0].QuestionID != 101 || review.Answers[1].QuestionID != 102 {
		t.Errorf("answer order = [%d, %d], want [101, 102]",
			review.Answers[0].QuestionID, review.Answers[1].QuestionID)
	}
	if review.Answers[1].Feedback == nil || *review.Answers[1].Feedback != "Good." {
		t.Errorf("feedback = %v, want carried into the review", review.Answers[1].Feedback)
	}
	// The nested question maps along with the answer in one pass.
	if q := review.Answers[0].Question; q.QuestionText != "2+2?" || q.Points != 2 {
		t.Errorf("nested question = %+v, want text and points mapped", q)
	}
}

func TestGetReviewAccess(t *testing.T) {
	otherStudent := studentCtx
	otherStudent.UserID = 8

	t.Run("review disabled for owner", func(t *testing.T) {
		svc, _, sub := newReviewFixture(t, false)
		if _, err := svc.GetReview(studentCtx, sub.ID); !errors.Is(err, ErrReviewNotAllowed) {
			t.Errorf("err = %v, want ErrReviewNotAllowed", err)
		}
	})

	t.Run("review disabled but admin reads anyway", func(t *testing.T) {
		svc, _, sub := newReviewFixture(t, false)
		if _, err := svc.GetReview(adminCtx, sub.ID); err != nil {
			t.Errorf("admin review err = %v, want nil", err)
		}
	})

	t.Run("foreign student is rejected", func(t *testing.T) {
		svc, _, sub := newReviewFixture(t, true)
		if _, err := svc.GetReview(otherStudent, sub.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown submission", func(t *testing.T) {
		svc, _, _ := newReviewFixture(t, true)
		if _, err := svc.GetReview(studentCtx, 4242); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("in-progress attempt has no review", func(t *testing.T) {
		svc, subRepo, sub := newReviewFixture(t, true)
		subRepo.subs[sub.ID].Status = model.SubmissionStatusInProgress
		if _, err := svc.GetReview(studentCtx, sub.ID); !IsValidation(err) {
			t.Errorf("err = %v, want validation error", err)
		}
	})
}

func TestLetterGrades(t *testing.T) {
	tests := []struct {
		total, max int
		percentage int
		letter     string
		passed     bool
	}{
		{10, 10, 100, "A", true},
		{9, 10, 90, "A", true},
		{85, 100, 85, "B", true},
		{7, 10, 70, "C", true},
		{13, 20, 65, "D", false},
		{1, 10, 10, "F", false},
		{0, 0, 0, "F", false}, // empty exam never divides by zero
	}

	for _, tc := range tests {
		p := percentageOf(tc.total, tc.max)
		if p != tc.percentage {
			t.Errorf("percentageOf(%d, %d) = %d, want %d", tc.total, tc.max, p, tc.percentage)
		}
		if g := letterGrade(p); g != tc.letter {
			t.Errorf("letterGrade(%d) = %q, want %q", p, g, tc.letter)
		}
		if passed := p >= passPercentage; passed != tc.passed {
			t.Errorf("passed at %d%% = %v, want %v", p, passed, tc.passed)
		}
	}
}
