package service

import (
	"sort"
	"time"

	"github.com/ctrls-academy/exam-platform/internal/model"
	"github.com/ctrls-academy/exam-platform/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mimic the store's contract closely enough
// for service tests: record-not-found and duplicate-key come back as the gorm
// sentinels, and Finalize keeps its status guard.

type fakeExamRepo struct {
	exams     map[uint]*model.Exam
	questions map[uint][]model.Question
	whitelist map[uint][]uint // examID -> studentIDs
	nextID    uint
	nextQID   uint
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{
		exams:     make(map[uint]*model.Exam),
		questions: make(map[uint][]model.Question),
		whitelist: make(map[uint][]uint),
		nextID:    1,
		nextQID:   1000,
	}
}

func (r *fakeExamRepo) add(exam model.Exam) *model.Exam {
	if exam.ID == 0 {
		exam.ID = r.nextID
	}
	if exam.ID >= r.nextID {
		r.nextID = exam.ID + 1
	}
	r.exams[exam.ID] = &exam
	return &exam
}

func (r *fakeExamRepo) Create(exam *model.Exam) error {
	exam.ID = r.nextID
	r.nextID++
	exam.CreatedAt = time.Now()
	cp := *exam
	r.exams[exam.ID] = &cp
	return nil
}

func (r *fakeExamRepo) Update(exam *model.Exam) error {
	if _, ok := r.exams[exam.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *exam
	r.exams[exam.ID] = &cp
	return nil
}

func (r *fakeExamRepo) FindByID(id uint) (*model.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *exam
	return &cp, nil
}

func (r *fakeExamRepo) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	exam, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	qs := append([]model.Question(nil), r.questions[id]...)
	sort.Slice(qs, func(i, j int) bool { return qs[i].OrderIndex < qs[j].OrderIndex })
	exam.Questions = qs
	return exam, nil
}

func (r *fakeExamRepo) FindAllWithSubmissionCount() ([]repository.ExamWithSubmissionCount, error) {
	var out []repository.ExamWithSubmissionCount
	for _, exam := range r.exams {
		out = append(out, repository.ExamWithSubmissionCount{Exam: *exam})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeExamRepo) FindActiveVisibleToStudent(studentID uint) ([]model.Exam, error) {
	var out []model.Exam
	for _, exam := range r.exams {
		if exam.Status != model.ExamStatusActive {
			continue
		}
		visible, _ := r.VisibleToStudent(exam.ID, studentID)
		if visible {
			out = append(out, *exam)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeExamRepo) VisibleToStudent(examID, studentID uint) (bool, error) {
	exam, ok := r.exams[examID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	switch exam.Visibility {
	case model.VisibilityAll:
		return true, nil
	case model.VisibilitySpecific:
		for _, id := range r.whitelist[examID] {
			if id == studentID {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, nil
	}
}

func (r *fakeExamRepo) ReplaceQuestions(examID uint, questions []model.Question) error {
	if _, ok := r.exams[examID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := make([]model.Question, len(questions))
	for i := range questions {
		stored[i] = questions[i]
		stored[i].ID = r.nextQID
		stored[i].ExamID = examID
		r.nextQID++
	}
	r.questions[examID] = stored
	return nil
}

func (r *fakeExamRepo) CountByStatus(status string) (int64, error) {
	var count int64
	for _, exam := range r.exams {
		if exam.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeExamRepo) Count() (int64, error) {
	return int64(len(r.exams)), nil
}

type fakeQuestionRepo struct {
	exams *fakeExamRepo
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	for _, qs := range r.exams.questions {
		for i := range qs {
			if qs[i].ID == id {
				cp := qs[i]
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) FindByExamID(examID uint) ([]model.Question, error) {
	qs := append([]model.Question(nil), r.exams.questions[examID]...)
	sort.Slice(qs, func(i, j int) bool { return qs[i].OrderIndex < qs[j].OrderIndex })
	return qs, nil
}

type fakeSubmissionRepo struct {
	subs    map[uint]*model.Submission
	exams   *fakeExamRepo
	answers *fakeAnswerRepo
	nextID  uint

	// raceOnCreate makes the next Create fail with a duplicate-key error, as
	// if a concurrent insert won.
	raceOnCreate bool
}

func newFakeSubmissionRepo(exams *fakeExamRepo, answers *fakeAnswerRepo) *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		subs:    make(map[uint]*model.Submission),
		exams:   exams,
		answers: answers,
		nextID:  1,
	}
}

func (r *fakeSubmissionRepo) add(sub model.Submission) *model.Submission {
	if sub.ID == 0 {
		sub.ID = r.nextID
	}
	if sub.ID >= r.nextID {
		r.nextID = sub.ID + 1
	}
	r.subs[sub.ID] = &sub
	return &sub
}

func (r *fakeSubmissionRepo) Create(sub *model.Submission) error {
	if r.raceOnCreate {
		r.raceOnCreate = false
		racer := *sub
		racer.ID = r.nextID
		r.nextID++
		r.subs[racer.ID] = &racer
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range r.subs {
		if existing.ExamID == sub.ExamID && existing.StudentID == sub.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	sub.ID = r.nextID
	r.nextID++
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubmissionRepo) Update(sub *model.Submission) error {
	if _, ok := r.subs[sub.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubmissionRepo) Finalize(id uint, endTime time.Time, status string) error {
	sub, ok := r.subs[id]
	if !ok || sub.Status != model.SubmissionStatusInProgress {
		return gorm.ErrRecordNotFound
	}
	t := endTime
	sub.EndTime = &t
	sub.Status = status
	return nil
}

func (r *fakeSubmissionRepo) UpdateScores(id uint, totalScore, maxScore int, status string) error {
	sub, ok := r.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sub.TotalScore = totalScore
	sub.MaxScore = maxScore
	sub.Status = status
	return nil
}

func (r *fakeSubmissionRepo) FindByID(id uint) (*model.Submission, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubmissionRepo) FindByIDWithDetails(id uint) (*model.Submission, error) {
	sub, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if exam, ok := r.exams.exams[sub.ExamID]; ok {
		sub.Exam = *exam
	}
	if r.answers != nil {
		answers, _ := r.answers.FindBySubmissionID(sub.ID)
		sub.Answers = answers
	}
	return sub, nil
}

func (r *fakeSubmissionRepo) FindByExamAndStudent(examID, studentID uint) (*model.Submission, error) {
	for _, sub := range r.subs {
		if sub.ExamID == examID && sub.StudentID == studentID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubmissionRepo) FindAllByExam(examID uint) ([]model.Submission, error) {
	var out []model.Submission
	for _, sub := range r.subs {
		if sub.ExamID == examID {
			out = append(out, *sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSubmissionRepo) FindByExamIDsAndStudent(examIDs []uint, studentID uint) ([]model.Submission, error) {
	wanted := make(map[uint]bool, len(examIDs))
	for _, id := range examIDs {
		wanted[id] = true
	}
	var out []model.Submission
	for _, sub := range r.subs {
		if sub.StudentID == studentID && wanted[sub.ExamID] {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) FindGradedByStudent(studentID uint) ([]model.Submission, error) {
	var out []model.Submission
	for _, sub := range r.subs {
		if sub.StudentID == studentID && sub.Status == model.SubmissionStatusGraded {
			cp := *sub
			if exam, ok := r.exams.exams[sub.ExamID]; ok {
				cp.Exam = *exam
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSubmissionRepo) CountByExam(examID uint) (int64, error) {
	var count int64
	for _, sub := range r.subs {
		if sub.ExamID == examID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubmissionRepo) Count() (int64, error) {
	return int64(len(r.subs)), nil
}

type fakeAnswerRepo struct {
	answers map[uint]*model.Answer
	exams   *fakeExamRepo
	nextID  uint
}

func newFakeAnswerRepo(exams *fakeExamRepo) *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: make(map[uint]*model.Answer), exams: exams, nextID: 1}
}

func (r *fakeAnswerRepo) add(answer model.Answer) *model.Answer {
	if answer.ID == 0 {
		answer.ID = r.nextID
	}
	if answer.ID >= r.nextID {
		r.nextID = answer.ID + 1
	}
	r.answers[answer.ID] = &answer
	return &answer
}

func (r *fakeAnswerRepo) question(id uint) model.Question {
	for _, qs := range r.exams.questions {
		for i := range qs {
			if qs[i].ID == id {
				return qs[i]
			}
		}
	}
	return model.Question{ID: id}
}

func (r *fakeAnswerRepo) Upsert(answer *model.Answer) error {
	for _, existing := range r.answers {
		if existing.SubmissionID == answer.SubmissionID && existing.QuestionID == answer.QuestionID {
			existing.StudentAnswer = answer.StudentAnswer
			existing.StudentFileURL = answer.StudentFileURL
			answer.ID = existing.ID
			return nil
		}
	}
	answer.ID = r.nextID
	r.nextID++
	cp := *answer
	r.answers[answer.ID] = &cp
	return nil
}

func (r *fakeAnswerRepo) FindByID(id uint) (*model.Answer, error) {
	answer, ok := r.answers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *answer
	cp.Question = r.question(cp.QuestionID)
	return &cp, nil
}

func (r *fakeAnswerRepo) FindBySubmissionID(submissionID uint) ([]model.Answer, error) {
	var out []model.Answer
	for _, answer := range r.answers {
		if answer.SubmissionID == submissionID {
			cp := *answer
			cp.Question = r.question(cp.QuestionID)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAnswerRepo) UpdateScore(id uint, score *int, isCorrect *bool) error {
	answer, ok := r.answers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	answer.Score = score
	answer.IsCorrect = isCorrect
	return nil
}

func (r *fakeAnswerRepo) UpdateGrade(id uint, score int, feedback string) error {
	answer, ok := r.answers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s := score
	answer.Score = &s
	if feedback != "" {
		f := feedback
		answer.Feedback = &f
	}
	return nil
}

func strPtr(s string) *string { return &s }
