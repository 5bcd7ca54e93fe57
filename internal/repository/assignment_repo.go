package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/models"
)

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	ListActive(ctx context.Context, classID *uint) ([]models.Assignment, error)
	OldestActive(ctx context.Context) (models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) ListActive(ctx context.Context, classID *uint) ([]models.Assignment, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if classID != nil {
		query = query.Where("class_id = ?", *classID)
	}

	var assignments []models.Assignment
	if err := query.Order("created_at DESC, id DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

// OldestActive returns the default assignment: the oldest row still active.
func (r *assignmentRepository) OldestActive(ctx context.Context) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		First(&assignment).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}
