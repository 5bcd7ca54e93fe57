package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Class{}, &models.Assignment{}, &models.Submission{}, &models.Vote{}))

	return db
}

func createTestSubmission(t *testing.T, db *gorm.DB) models.Submission {
	t.Helper()

	assignment := models.Assignment{Title: "Golden Hour Portraits", Technique: models.TechniqueZeroShot, IsActive: true}
	require.NoError(t, db.Create(&assignment).Error)

	submission := models.Submission{
		AssignmentID:   assignment.ID,
		StudentName:    "Dewi",
		PromptData:     []byte(`{"raw_prompt":"a portrait at sunset"}`),
		ImageURL:       "https://img.example.com/1.png",
		SubmissionCode: "sub_" + t.Name(),
	}
	require.NoError(t, db.Create(&submission).Error)

	return submission
}
