package repository

import (
	"github.com/ctrls-academy/exam-platform/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	Upsert(answer *model.Answer) error
	FindByID(id uint) (*model.Answer, error)
	FindBySubmissionID(submissionID uint) ([]model.Answer, error)
	UpdateScore(id uint, score *int, isCorrect *bool) error
	UpdateGrade(id uint, score int, feedback string) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Upsert writes one answer keyed by (submission_id, question_id). Concurrent
// autosaves for the same question are last-write-wins full replacements.
func (r *answerRepository) Upsert(answer *model.Answer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "submission_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"student_answer", "student_file_url", "updated_at",
		}),
	}).Create(answer).Error
}

func (r *answerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.Preload("Question").First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindBySubmissionID(submissionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Preload("Question").
		Where("submission_id = ?", submissionID).
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) UpdateScore(id uint, score *int, isCorrect *bool) error {
	return r.db.Model(&model.Answer{}).
		Where("id = ?", id).
		Updates(map[string]any{"score": score, "is_correct": isCorrect}).Error
}

func (r *answerRepository) UpdateGrade(id uint, score int, feedback string) error {
	return r.db.Model(&model.Answer{}).
		Where("id = ?", id).
		Updates(map[string]any{"score": score, "feedback": feedback}).Error
}
