package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ctrls-academy/exam-platform/internal/auth"
	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/model"
	"github.com/ctrls-academy/exam-platform/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// lateGrace is how far past the computed deadline a finalize payload is still
// accepted, to absorb clock skew and slow requests.
const lateGrace = 60 * time.Second

// AttemptService drives the per-(exam, student) attempt state machine:
// none -> in_progress -> submitted -> graded.
type AttemptService interface {
	// StartOrResume opens the exam-taking session. It creates the submission
	// on first access and reuses it afterwards; concurrent first opens are
	// resolved by the (exam_id, student_id) unique key.
	StartOrResume(actx auth.Context, examID uint) (*dto.AttemptSessionResponse, error)

	// SaveAnswers is the autosave upsert. It never changes attempt status.
	SaveAnswers(actx auth.Context, submissionID uint, req dto.SaveAnswersRequest) error

	// Submit finalizes the attempt and runs the automatic grading pass. The
	// time window is re-validated server-side.
	Submit(actx auth.Context, submissionID uint, req dto.SubmitRequest) (*dto.SubmitResultResponse, error)
}

type attemptService struct {
	examRepo       repository.ExamRepository
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
	answerRepo     repository.AnswerRepository
	grading        GradingService
	now            func() time.Time
}

func NewAttemptService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
	answerRepo repository.AnswerRepository,
	grading GradingService,
) AttemptService {
	return &attemptService{
		examRepo:       examRepo,
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		answerRepo:     answerRepo,
		grading:        grading,
		now:            time.Now,
	}
}

func (s *attemptService) StartOrResume(actx auth.Context, examID uint) (*dto.AttemptSessionResponse, error) {
	now := s.now()

	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}
	if exam.Status != model.ExamStatusActive {
		return nil, fmt.Errorf("exam %d is %s: %w", examID, exam.Status, ErrExamNotAvailable)
	}
	visible, err := s.examRepo.VisibleToStudent(examID, actx.UserID)
	if err != nil {
		return nil, fmt.Errorf("error checking visibility of exam %d: %w", examID, err)
	}
	if !visible {
		return nil, fmt.Errorf("exam %d: %w", examID, ErrNotFound)
	}

	sub, err := s.getOrCreateSubmission(exam, actx.UserID, now)
	if err != nil {
		return nil, err
	}
	if sub.Finalized() {
		return nil, fmt.Errorf("exam %d: %w", examID, ErrAttemptFinalized)
	}

	// An expired attempt left open (browser closed, never submitted) is
	// finalized here from whatever was autosaved.
	if now.After(deadline(sub, exam).Add(lateGrace)) {
		if _, err := s.finalize(sub, exam, nil, true); err != nil {
			log.Error().Err(err).Uint("submissionID", sub.ID).Msg("StartOrResume: failed to finalize expired attempt")
		}
		return nil, fmt.Errorf("exam %d: %w", examID, ErrAttemptFinalized)
	}

	answers, err := s.answerRepo.FindBySubmissionID(sub.ID)
	if err != nil {
		log.Error().Err(err).Uint("submissionID", sub.ID).Msg("StartOrResume: failed to load saved answers")
		return nil, fmt.Errorf("error loading saved answers: %w", err)
	}

	return buildSessionResponse(exam, sub, answers, remainingSeconds(sub, exam, now)), nil
}

func (s *attemptService) SaveAnswers(actx auth.Context, submissionID uint, req dto.SaveAnswersRequest) error {
	sub, err := s.ownedSubmission(actx, submissionID)
	if err != nil {
		return err
	}
	if sub.Finalized() {
		return fmt.Errorf("submission %d: %w", submissionID, ErrAttemptFinalized)
	}
	return s.upsertAnswers(sub, req.Answers)
}

func (s *attemptService) Submit(actx auth.Context, submissionID uint, req dto.SubmitRequest) (*dto.SubmitResultResponse, error) {
	now := s.now()

	sub, err := s.ownedSubmission(actx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Finalized() {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrDuplicateSubmit)
	}

	exam, err := s.examRepo.FindByID(sub.ExamID)
	if err != nil {
		return nil, fmt.Errorf("exam %d: %w", sub.ExamID, ErrNotFound)
	}

	// Past the grace window the stale payload is discarded and the attempt is
	// finalized from autosaved answers, with end_time clamped to the deadline.
	late := now.After(deadline(sub, exam).Add(lateGrace))
	if late {
		log.Warn().
			Uint("submissionID", sub.ID).
			Time("deadline", deadline(sub, exam)).
			Msg("Submit: deadline exceeded, discarding payload and finalizing from autosaved answers")
		return s.finalize(sub, exam, nil, true)
	}
	return s.finalize(sub, exam, req.Answers, false)
}

// getOrCreateSubmission reuses the student's existing attempt when there is
// one. The scheduling window gates only the creation of a new attempt: a
// running attempt keeps its full duration even if end_date passes mid-take,
// matching the submit-side deadline of start_time + duration.
func (s *attemptService) getOrCreateSubmission(exam *model.Exam, studentID uint, now time.Time) (*model.Submission, error) {
	sub, err := s.submissionRepo.FindByExamAndStudent(exam.ID, studentID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error looking up attempt: %w", err)
	}

	if !exam.WindowOpen(now) {
		return nil, fmt.Errorf("exam %d is outside its scheduling window: %w", exam.ID, ErrExamNotAvailable)
	}

	created := &model.Submission{
		ExamID:    exam.ID,
		StudentID: studentID,
		Status:    model.SubmissionStatusInProgress,
		StartTime: now,
	}
	err = s.submissionRepo.Create(created)
	if err == nil {
		return created, nil
	}
	// A concurrent open won the insert race; the unique key guarantees there
	// is exactly one row to fall back to.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return s.submissionRepo.FindByExamAndStudent(exam.ID, studentID)
	}
	log.Error().Err(err).Uint("examID", exam.ID).Uint("studentID", studentID).Msg("getOrCreateSubmission: insert failed")
	return nil, fmt.Errorf("error creating attempt: %w", err)
}

func (s *attemptService) ownedSubmission(actx auth.Context, submissionID uint) (*model.Submission, error) {
	sub, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrNotFound)
	}
	if sub.StudentID != actx.UserID {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrForbidden)
	}
	return sub, nil
}

func (s *attemptService) upsertAnswers(sub *model.Submission, inputs []dto.AnswerInput) error {
	if len(inputs) == 0 {
		return nil
	}
	questions, err := s.questionRepo.FindByExamID(sub.ExamID)
	if err != nil {
		return fmt.Errorf("error loading questions: %w", err)
	}
	known := make(map[uint]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	for _, in := range inputs {
		if !known[in.QuestionID] {
			log.Warn().Uint("questionID", in.QuestionID).Uint("submissionID", sub.ID).Msg("upsertAnswers: answer for a question not in this exam, skipping")
			continue
		}
		answer := model.Answer{
			SubmissionID:   sub.ID,
			QuestionID:     in.QuestionID,
			StudentAnswer:  in.Answer,
			StudentFileURL: in.FileURL,
		}
		if err := s.answerRepo.Upsert(&answer); err != nil {
			log.Error().Err(err).Uint("submissionID", sub.ID).Uint("questionID", in.QuestionID).Msg("upsertAnswers: upsert failed")
			return fmt.Errorf("error saving answer for question %d: %w", in.QuestionID, err)
		}
	}
	return nil
}

// finalize transitions the attempt to submitted and runs the automatic
// grading pass. With clampEnd the recorded end time is the deadline, not now.
func (s *attemptService) finalize(sub *model.Submission, exam *model.Exam, answers []dto.AnswerInput, clampEnd bool) (*dto.SubmitResultResponse, error) {
	if len(answers) > 0 {
		if err := s.upsertAnswers(sub, answers); err != nil {
			return nil, err
		}
	}

	endTime := s.now()
	if clampEnd || endTime.After(deadline(sub, exam)) {
		endTime = deadline(sub, exam)
	}

	if err := s.submissionRepo.Finalize(sub.ID, endTime, model.SubmissionStatusSubmitted); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %d: %w", sub.ID, ErrDuplicateSubmit)
		}
		log.Error().Err(err).Uint("submissionID", sub.ID).Msg("finalize: failed to update submission")
		return nil, fmt.Errorf("error finalizing attempt: %w", err)
	}

	totalScore, maxScore, fullyGraded, err := s.grading.AutoGrade(sub.ID)
	if err != nil {
		// The attempt is already submitted; grading can be re-run manually.
		log.Error().Err(err).Uint("submissionID", sub.ID).Msg("finalize: automatic grading failed")
	}

	status := model.SubmissionStatusSubmitted
	if err == nil && fullyGraded {
		status = model.SubmissionStatusGraded
	}

	return &dto.SubmitResultResponse{
		SubmissionID: sub.ID,
		Status:       status,
		TotalScore:   totalScore,
		MaxScore:     maxScore,
		FullyGraded:  fullyGraded,
		Late:         clampEnd,
	}, nil
}

func deadline(sub *model.Submission, exam *model.Exam) time.Time {
	return sub.StartTime.Add(time.Duration(exam.DurationMinutes) * time.Minute)
}

// remainingSeconds recomputes the countdown from the persisted start time, so
// a client cannot stretch it by adjusting its own clock.
func remainingSeconds(sub *model.Submission, exam *model.Exam, now time.Time) int {
	total := exam.DurationMinutes * 60
	elapsed := int(now.Sub(sub.StartTime).Seconds())
	if elapsed >= total {
		return 0
	}
	return total - elapsed
}

func buildSessionResponse(exam *model.Exam, sub *model.Submission, answers []model.Answer, remaining int) *dto.AttemptSessionResponse {
	resp := &dto.AttemptSessionResponse{
		SubmissionID:     sub.ID,
		ExamID:           exam.ID,
		ExamTitle:        exam.Title,
		ExamDescription:  exam.Description,
		DurationMinutes:  exam.DurationMinutes,
		Status:           sub.Status,
		StartTime:        sub.StartTime,
		RemainingSeconds: remaining,
	}

	// StudentQuestionResponse has no correct-answer field, so copier drops it.
	resp.Questions = make([]dto.StudentQuestionResponse, len(exam.Questions))
	for i := range exam.Questions {
		if err := copier.Copy(&resp.Questions[i], &exam.Questions[i]); err != nil {
			log.Error().Err(err).Uint("questionID", exam.Questions[i].ID).Msg("buildSessionResponse: failed to map question")
		}
	}

	resp.Answers = make([]dto.AnswerStateResponse, len(answers))
	for i := range answers {
		resp.Answers[i] = dto.AnswerStateResponse{
			QuestionID:     answers[i].QuestionID,
			StudentAnswer:  answers[i].StudentAnswer,
			StudentFileURL: answers[i].StudentFileURL,
		}
	}
	return resp
}
