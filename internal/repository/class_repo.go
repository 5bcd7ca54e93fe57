package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/models"
)

// ClassRepository defines persistence operations for classes.
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id uint) (models.Class, error)
	GetByCode(ctx context.Context, code string) (models.Class, error)
	Delete(ctx context.Context, id uint) error
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository instantiates a GORM-backed repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return models.Class{}, err
	}

	return class, nil
}

func (r *classRepository) GetByCode(ctx context.Context, code string) (models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).Where("class_code = ?", code).First(&class).Error; err != nil {
		return models.Class{}, err
	}

	return class, nil
}

// Delete removes the class and everything hanging off it. The cascade is
// spelled out inside one transaction so it behaves identically across the
// postgres and sqlite drivers.
func (r *classRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignmentIDs := tx.Model(&models.Assignment{}).Select("id").Where("class_id = ?", id)
		submissionIDs := tx.Model(&models.Submission{}).Select("id").Where("assignment_id IN (?)", assignmentIDs)

		if err := tx.Where("submission_id IN (?)", submissionIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_id IN (?)", assignmentIDs).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", id).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Class{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
