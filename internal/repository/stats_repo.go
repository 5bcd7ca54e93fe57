package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/models"
)

// TableCounts holds per-table row counts reported by the health dashboard.
type TableCounts struct {
	Classes     int64 `json:"classes"`
	Assignments int64 `json:"assignments"`
	Submissions int64 `json:"submissions"`
	Votes       int64 `json:"votes"`
}

// StatsRepository exposes read-only diagnostics over the schema.
type StatsRepository interface {
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (TableCounts, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository instantiates the repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (r *statsRepository) Counts(ctx context.Context) (TableCounts, error) {
	var counts TableCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Class{}).Count(&counts.Classes).Error; err != nil {
		return TableCounts{}, err
	}
	if err := db.Model(&models.Assignment{}).Count(&counts.Assignments).Error; err != nil {
		return TableCounts{}, err
	}
	if err := db.Model(&models.Submission{}).Count(&counts.Submissions).Error; err != nil {
		return TableCounts{}, err
	}
	if err := db.Model(&models.Vote{}).Count(&counts.Votes).Error; err != nil {
		return TableCounts{}, err
	}

	return counts, nil
}
