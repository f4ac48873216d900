package repository

import (
	"github.com/ctrls-academy/exam-platform/internal/model"
	"gorm.io/gorm"
)

// ExamWithSubmissionCount backs the admin exam list.
type ExamWithSubmissionCount struct {
	model.Exam
	SubmissionCount int
}

type ExamRepository interface {
	Create(exam *model.Exam) error
	Update(exam *model.Exam) error
	FindByID(id uint) (*model.Exam, error)
	FindByIDWithQuestions(id uint) (*model.Exam, error)
	FindAllWithSubmissionCount() ([]ExamWithSubmissionCount, error)
	FindActiveVisibleToStudent(studentID uint) ([]model.Exam, error)
	VisibleToStudent(examID, studentID uint) (bool, error)
	ReplaceQuestions(examID uint, questions []model.Question) error
	CountByStatus(status string) (int64, error)
	Count() (int64, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	return r.db.Create(exam).Error
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAllWithSubmissionCount() ([]ExamWithSubmissionCount, error) {
	var results []ExamWithSubmissionCount
	err := r.db.Model(&model.Exam{}).
		Select("exams.*, (SELECT COUNT(*) FROM submissions WHERE submissions.exam_id = exams.id AND submissions.deleted_at IS NULL) as submission_count").
		Order("exams.created_at DESC").
		Scan(&results).Error
	return results, err
}

// FindActiveVisibleToStudent returns active exams the student may see:
// visibility "all", or "specific" with a whitelist row. "hidden" is excluded.
func (r *examRepository) FindActiveVisibleToStudent(studentID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.
		Where("status = ?", model.ExamStatusActive).
		Where(
			r.db.Where("visibility = ?", model.VisibilityAll).
				Or("visibility = ? AND EXISTS (SELECT 1 FROM exam_visibilities ev WHERE ev.exam_id = exams.id AND ev.student_id = ?)",
					model.VisibilitySpecific, studentID),
		).
		Order("start_date ASC NULLS FIRST").
		Find(&exams).Error
	return exams, err
}

// VisibleToStudent answers the per-exam visibility check used when a student
// opens an exam directly.
func (r *examRepository) VisibleToStudent(examID, studentID uint) (bool, error) {
	var exam model.Exam
	if err := r.db.Select("id", "visibility").First(&exam, examID).Error; err != nil {
		return false, err
	}
	switch exam.Visibility {
	case model.VisibilityAll:
		return true, nil
	case model.VisibilitySpecific:
		var count int64
		err := r.db.Model(&model.ExamVisibility{}).
			Where("exam_id = ? AND student_id = ?", examID, studentID).
			Count(&count).Error
		return count > 0, err
	default:
		return false, nil
	}
}

// ReplaceQuestions swaps the full ordered question set in one transaction.
// Prior rows are hard-deleted so the recomputed order indices cannot collide
// with tombstones.
func (r *examRepository) ReplaceQuestions(examID uint, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("exam_id = ?", examID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].ExamID = examID
		}
		return tx.Create(&questions).Error
	})
}

func (r *examRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Exam{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *examRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Exam{}).Count(&count).Error
	return count, err
}
