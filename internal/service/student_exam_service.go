package service

import (
	"fmt"
	"time"

	"github.com/ctrls-academy/exam-platform/internal/auth"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/model"
	"github.com/ctrls-academy/exam-platform/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// StudentExamService backs the student dashboard: which exams can be taken,
// which are done, and the grade reports.
type StudentExamService interface {
	ListExams(actx auth.Context) (*dto.StudentExamListResponse, error)
	ListGrades(actx auth.Context) ([]dto.GradeReportResponse, error)
}

type studentExamService struct {
	examRepo       repository.ExamRepository
	submissionRepo repository.SubmissionRepository
	now            func() time.Time
}

func NewStudentExamService(examRepo repository.ExamRepository, submissionRepo repository.SubmissionRepository) StudentExamService {
	return &studentExamService{examRepo: examRepo, submissionRepo: submissionRepo, now: time.Now}
}

func (s *studentExamService) ListExams(actx auth.Context) (*dto.StudentExamListResponse, error) {
	exams, err := s.examRepo.FindActiveVisibleToStudent(actx.UserID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", actx.UserID).Msg("ListExams: repository failure")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}

	examIDs := make([]uint, len(exams))
	for i := range exams {
		examIDs[i] = exams[i].ID
	}
	subs, err := s.submissionRepo.FindByExamIDsAndStudent(examIDs, actx.UserID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", actx.UserID).Msg("ListExams: failed to load submissions")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}
	subsByExam := make(map[uint]*model.Submission, len(subs))
	for i := range subs {
		subsByExam[subs[i].ExamID] = &subs[i]
	}

	available, completed := categorizeExams(exams, subsByExam, s.now())
	return &dto.StudentExamListResponse{Available: available, Completed: completed}, nil
}

func (s *studentExamService) ListGrades(actx auth.Context) ([]dto.GradeReportResponse, error) {
	subs, err := s.submissionRepo.FindGradedByStudent(actx.UserID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", actx.UserID).Msg("ListGrades: repository failure")
		return nil, fmt.Errorf("error fetching grades: %w", err)
	}

	reports := make([]dto.GradeReportResponse, 0, len(subs))
	for i := range subs {
		sub := &subs[i]
		percentage := percentageOf(sub.TotalScore, sub.MaxScore)
		reports = append(reports, dto.GradeReportResponse{
			SubmissionID: sub.ID,
			ExamID:       sub.ExamID,
			ExamTitle:    sub.Exam.Title,
			Status:       sub.Status,
			TotalScore:   sub.TotalScore,
			MaxScore:     sub.MaxScore,
			Percentage:   percentage,
			LetterGrade:  letterGrade(percentage),
			Passed:       percentage >= passPercentage,
			AllowReview:  sub.Exam.AllowReview,
			EndTime:      sub.EndTime,
		})
	}
	return reports, nil
}

// categorizeExams splits the student's visible exams: finalized attempts go
// to completed; the rest stay available only while the scheduling window is
// open, so an exam with a future start date never appears.
func categorizeExams(exams []model.Exam, subsByExam map[uint]*model.Submission, now time.Time) (available, completed []dto.StudentExamResponse) {
	for i := range exams {
		exam := &exams[i]
		sub := subsByExam[exam.ID]

		var entry dto.StudentExamResponse
		if err := copier.Copy(&entry, exam); err != nil {
			log.Error().Err(err).Uint("examID", exam.ID).Msg("categorizeExams: failed to map exam")
			continue
		}
		if sub != nil {
			entry.SubmissionID = &sub.ID
			entry.AttemptStatus = sub.Status
		}

		if sub != nil && sub.Finalized() {
			entry.TotalScore = &sub.TotalScore
			entry.MaxScore = &sub.MaxScore
			completed = append(completed, entry)
			continue
		}
		if exam.WindowOpen(now) {
			available = append(available, entry)
		}
	}
	return available, completed
}
