package service

import (
	"testing"
	"time"

	"github.com/ctrls-academy/exam-platform/internal/model"
)

func TestStudentListExams(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	examRepo := newFakeExamRepo()
	ansRepo := newFakeAnswerRepo(examRepo)
	subRepo := newFakeSubmissionRepo(examRepo, ansRepo)

	open := examRepo.add(model.Exam{Title: "Open", DurationMinutes: 30, Status: model.ExamStatusActive, Visibility: model.VisibilityAll})
	notYet := examRepo.add(model.Exam{Title: "Not yet", DurationMinutes: 30, Status: model.ExamStatusActive, Visibility: model.VisibilityAll, StartDate: &future})
	over := examRepo.add(model.Exam{Title: "Over", DurationMinutes: 30, Status: model.ExamStatusActive, Visibility: model.VisibilityAll, EndDate: &past})
	done := examRepo.add(model.Exam{Title: "Done", DurationMinutes: 30, Status: model.ExamStatusActive, Visibility: model.VisibilityAll})
	examRepo.add(model.Exam{Title: "Draft", DurationMinutes: 30, Status: model.ExamStatusDraft, Visibility: model.VisibilityAll})
	examRepo.add(model.Exam{Title: "Hidden", DurationMinutes: 30, Status: model.ExamStatusActive, Visibility: model.VisibilityHidden})

	started := subRepo.add(model.Submission{ExamID: open.ID, StudentID: studentCtx.UserID, Status: model.SubmissionStatusInProgress})
	subRepo.add(model.Submission{ExamID: done.ID, StudentID: studentCtx.UserID, Status: model.SubmissionStatusGraded, TotalScore: 8, MaxScore: 10})

	svc := NewStudentExamService(examRepo, subRepo).(*studentExamService)
	svc.now = func() time.Time { return now }

	list, err := svc.ListExams(studentCtx)
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}

	if len(list.Available) != 1 {
		t.Fatalf("available = %+v, want only %q", list.Available, "Open")
	}
	if list.Available[0].ID != open.ID {
		t.Errorf("available[0].id = %d, want %d", list.Available[0].ID, open.ID)
	}
	// A resumed attempt keeps its submission handle so the client can go
	// straight back into the session.
	if list.Available[0].SubmissionID == nil || *list.Available[0].SubmissionID != started.ID {
		t.Errorf("available[0].submission_id = %v, want %d", list.Available[0].SubmissionID, started.ID)
	}
	if list.Available[0].AttemptStatus != model.SubmissionStatusInProgress {
		t.Errorf("attempt_status = %q, want in_progress", list.Available[0].AttemptStatus)
	}

	if len(list.Completed) != 1 {
		t.Fatalf("completed = %+v, want only %q", list.Completed, "Done")
	}
	comp := list.Completed[0]
	if comp.ID != done.ID {
		t.Errorf("completed[0].id = %d, want %d", comp.ID, done.ID)
	}
	if comp.TotalScore == nil || *comp.TotalScore != 8 || comp.MaxScore == nil || *comp.MaxScore != 10 {
		t.Errorf("completed score = %v/%v, want 8/10", comp.TotalScore, comp.MaxScore)
	}

	for _, entry := range list.Available {
		if entry.ID == notYet.ID || entry.ID == over.ID {
			t.Errorf("exam %q leaked into the available list", entry.Title)
		}
	}
}

func TestStudentListExamsSpecificVisibility(t *testing.T) {
	examRepo := newFakeExamRepo()
	ansRepo := newFakeAnswerRepo(examRepo)
	subRepo := newFakeSubmissionRepo(examRepo, ansRepo)

	exam := examRepo.add(model.Exam{Title: "Invite only", DurationMinutes: 30, Status: model.ExamStatusActive, Visibility: model.VisibilitySpecific})
	examRepo.whitelist[exam.ID] = []uint{studentCtx.UserID}

	svc := NewStudentExamService(examRepo, subRepo)

	list, err := svc.ListExams(studentCtx)
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}
	if len(list.Available) != 1 {
		t.Errorf("whitelisted student sees %d exams, want 1", len(list.Available))
	}

	other := studentCtx
	other.UserID = 8
	list, err = svc.ListExams(other)
	if err != nil {
		t.Fatalf("ListExams(other): %v", err)
	}
	if len(list.Available) != 0 {
		t.Errorf("non-whitelisted student sees %d exams, want 0", len(list.Available))
	}
}

func TestStudentListGrades(t *testing.T) {
	examRepo := newFakeExamRepo()
	ansRepo := newFakeAnswerRepo(examRepo)
	subRepo := newFakeSubmissionRepo(examRepo, ansRepo)

	exam := examRepo.add(model.Exam{Title: "Final", DurationMinutes: 60, Status: model.ExamStatusActive, AllowReview: true})
	subRepo.add(model.Submission{ExamID: exam.ID, StudentID: studentCtx.UserID, Status: model.SubmissionStatusGraded, TotalScore: 9, MaxScore: 10})
	subRepo.add(model.Submission{ExamID: exam.ID, StudentID: 8, Status: model.SubmissionStatusGraded, TotalScore: 2, MaxScore: 10})
	subRepo.add(model.Submission{ExamID: exam.ID, StudentID: 9, Status: model.SubmissionStatusSubmitted})

	svc := NewStudentExamService(examRepo, subRepo)

	grades, err := svc.ListGrades(studentCtx)
	if err != nil {
		t.Fatalf("ListGrades: %v", err)
	}
	if len(grades) != 1 {
		t.Fatalf("len(grades) = %d, want only the caller's graded attempt", len(grades))
	}
	g := grades[0]
	if g.ExamTitle != "Final" {
		t.Errorf("exam_title = %q, want Final", g.ExamTitle)
	}
	if g.Percentage != 90 || g.LetterGrade != "A" || !g.Passed {
		t.Errorf("report = %d%% %q passed=%v, want 90%% A passed=true", g.Percentage, g.LetterGrade, g.Passed)
	}
	if !g.AllowReview {
		t.Error("allow_review = false, want the exam's flag carried through")
	}
}
