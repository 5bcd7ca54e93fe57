package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/models"
)

// SubmissionRepository defines data operations for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID uint) ([]models.Submission, error)
	ListByVotes(ctx context.Context, assignmentID uint) ([]models.Submission, error)
	Reveal(ctx context.Context, id uint) (models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByAssignment(ctx context.Context, assignmentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("created_at DESC, id DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// ListByVotes orders a gallery by popularity, oldest submission first on ties.
func (r *submissionRepository) ListByVotes(ctx context.Context, assignmentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("votes DESC, created_at ASC, id ASC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

// Reveal flips the anonymity flag. The transition is one-way: revealing an
// already revealed submission is a no-op, never an error.
func (r *submissionRepository) Reveal(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&submission, id).Error; err != nil {
			return err
		}

		if submission.IsRevealed {
			return nil
		}

		if err := tx.Model(&submission).UpdateColumn("is_revealed", true).Error; err != nil {
			return err
		}
		submission.IsRevealed = true

		return nil
	})
	if err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}
