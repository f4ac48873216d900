package repository

import (
	"time"

	"github.com/ctrls-academy/exam-platform/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(sub *model.Submission) error
	Update(sub *model.Submission) error
	Finalize(id uint, endTime time.Time, status string) error
	UpdateScores(id uint, totalScore, maxScore int, status string) error
	FindByID(id uint) (*model.Submission, error)
	FindByIDWithDetails(id uint) (*model.Submission, error)
	FindByExamAndStudent(examID, studentID uint) (*model.Submission, error)
	FindAllByExam(examID uint) ([]model.Submission, error)
	FindByExamIDsAndStudent(examIDs []uint, studentID uint) ([]model.Submission, error)
	FindGradedByStudent(studentID uint) ([]model.Submission, error)
	CountByExam(examID uint) (int64, error)
	Count() (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(sub *model.Submission) error {
	return r.db.Create(sub).Error
}

func (r *submissionRepository) Update(sub *model.Submission) error {
	return r.db.Save(sub).Error
}

// Finalize transitions the attempt out of in_progress in a single statement.
// The status guard keeps a racing finalize from overwriting the first one.
func (r *submissionRepository) Finalize(id uint, endTime time.Time, status string) error {
	result := r.db.Model(&model.Submission{}).
		Where("id = ? AND status = ?", id, model.SubmissionStatusInProgress).
		Updates(map[string]any{"end_time": endTime, "status": status})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *submissionRepository) UpdateScores(id uint, totalScore, maxScore int, status string) error {
	return r.db.Model(&model.Submission{}).
		Where("id = ?", id).
		Updates(map[string]any{"total_score": totalScore, "max_score": maxScore, "status": status}).Error
}

func (r *submissionRepository) FindByID(id uint) (*model.Submission, error) {
	var sub model.Submission
	if err := r.db.First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) FindByIDWithDetails(id uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.
		Preload("Exam").
		Preload("Answers.Question").
		First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) FindByExamAndStudent(examID, studentID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.Where("exam_id = ? AND student_id = ?", examID, studentID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) FindAllByExam(examID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.
		Preload("Student").
		Where("exam_id = ?", examID).
		Order("start_time DESC").
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) FindByExamIDsAndStudent(examIDs []uint, studentID uint) ([]model.Submission, error) {
	if len(examIDs) == 0 {
		return nil, nil
	}
	var subs []model.Submission
	err := r.db.
		Where("exam_id IN ? AND student_id = ?", examIDs, studentID).
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) FindGradedByStudent(studentID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.
		Preload("Exam").
		Where("student_id = ? AND status = ?", studentID, model.SubmissionStatusGraded).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) CountByExam(examID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Submission{}).
		Where("exam_id = ?", examID).
		Count(&count).Error
	return count, err
}

func (r *submissionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Submission{}).Count(&count).Error
	return count, err
}
