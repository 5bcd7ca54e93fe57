package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/models"
)

func TestClassCodeUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassRepository(db)

	first := models.Class{Name: "Prompting 101", InstructorName: "Bu Sari", ClassCode: "ABC234"}
	require.NoError(t, repo.Create(context.Background(), &first))

	duplicate := models.Class{Name: "Prompting 102", InstructorName: "Pak Budi", ClassCode: "ABC234"}
	err := repo.Create(context.Background(), &duplicate)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestClassGetByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassRepository(db)

	class := models.Class{Name: "Prompting 101", InstructorName: "Bu Sari", ClassCode: "XYZ789"}
	require.NoError(t, repo.Create(context.Background(), &class))

	found, err := repo.GetByCode(context.Background(), "XYZ789")
	require.NoError(t, err)
	require.Equal(t, class.ID, found.ID)

	_, err = repo.GetByCode(context.Background(), "NOPE22")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClassDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassRepository(db)

	class := models.Class{Name: "Prompting 101", InstructorName: "Bu Sari", ClassCode: "CASC42"}
	require.NoError(t, repo.Create(context.Background(), &class))

	assignment := models.Assignment{ClassID: &class.ID, Title: "Sunset Scenes", Technique: models.TechniqueFewShot, IsActive: true}
	require.NoError(t, db.Create(&assignment).Error)

	submission := models.Submission{
		AssignmentID:   assignment.ID,
		StudentName:    "Dewi",
		PromptData:     []byte(`{}`),
		ImageURL:       "https://img.example.com/1.png",
		SubmissionCode: "sub_cascade_1",
	}
	require.NoError(t, db.Create(&submission).Error)
	require.NoError(t, db.Create(&models.Vote{SubmissionID: submission.ID, VoterID: "voter-aaaa-0001"}).Error)

	require.NoError(t, repo.Delete(context.Background(), class.ID))

	for _, model := range []interface{}{&models.Assignment{}, &models.Submission{}, &models.Vote{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}

	require.ErrorIs(t, repo.Delete(context.Background(), class.ID), gorm.ErrRecordNotFound)
}
