package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/models"
)

// VoteRepository defines data operations for votes and the denormalized
// vote counter they drive.
type VoteRepository interface {
	Exists(ctx context.Context, submissionID uint, voterID string) (bool, error)
	ExistsByFingerprint(ctx context.Context, submissionID uint, fingerprint string) (bool, error)
	Cast(ctx context.Context, vote *models.Vote) (int, error)
	Revoke(ctx context.Context, submissionID uint, voterID string) (int, error)
	VotedSubmissionIDs(ctx context.Context, voterID string, submissionIDs []uint) ([]uint, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository instantiates the repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Exists(ctx context.Context, submissionID uint, voterID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("submission_id = ? AND voter_id = ?", submissionID, voterID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *voteRepository) ExistsByFingerprint(ctx context.Context, submissionID uint, fingerprint string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("submission_id = ? AND voter_fingerprint = ?", submissionID, fingerprint).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// Cast inserts the vote row and bumps the submission counter in one
// transaction. A concurrent duplicate loses on the (submission_id, voter_id)
// unique index and surfaces as gorm.ErrDuplicatedKey; callers translate that
// into the duplicate-vote response. Returns the updated counter.
func (r *voteRepository) Cast(ctx context.Context, vote *models.Vote) (int, error) {
	var votes int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission models.Submission
		if err := tx.First(&submission, vote.SubmissionID).Error; err != nil {
			return err
		}

		if err := tx.Create(vote).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Submission{}).
			Where("id = ?", vote.SubmissionID).
			UpdateColumn("votes", gorm.Expr("COALESCE(votes, 0) + 1")).Error; err != nil {
			return err
		}

		return tx.Model(&models.Submission{}).
			Where("id = ?", vote.SubmissionID).
			Select("votes").
			Scan(&votes).Error
	})
	if err != nil {
		return 0, err
	}

	return votes, nil
}

// Revoke deletes the voter's vote and decrements the counter with a floor of
// zero, all in one transaction. Returns gorm.ErrRecordNotFound when the voter
// has no vote on the submission.
func (r *voteRepository) Revoke(ctx context.Context, submissionID uint, voterID string) (int, error) {
	var votes int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("submission_id = ? AND voter_id = ?", submissionID, voterID).
			Delete(&models.Vote{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&models.Submission{}).
			Where("id = ?", submissionID).
			UpdateColumn("votes", gorm.Expr("CASE WHEN COALESCE(votes, 0) > 0 THEN votes - 1 ELSE 0 END")).Error; err != nil {
			return err
		}

		return tx.Model(&models.Submission{}).
			Where("id = ?", submissionID).
			Select("votes").
			Scan(&votes).Error
	})
	if err != nil {
		return 0, err
	}

	return votes, nil
}

func (r *voteRepository) VotedSubmissionIDs(ctx context.Context, voterID string, submissionIDs []uint) ([]uint, error) {
	voted := make([]uint, 0, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return voted, nil
	}

	if err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("voter_id = ? AND submission_id IN ?", voterID, submissionIDs).
		Order("submission_id ASC").
		Pluck("submission_id", &voted).Error; err != nil {
		return nil, err
	}

	return voted, nil
}
