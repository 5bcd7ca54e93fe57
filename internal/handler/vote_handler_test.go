package handler_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/models"
)

func createTestAssignment(t *testing.T, app *fiber.App) dto.AssignmentResponse {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/assignments", dto.AssignmentCreateRequest{
		Title:     "Sunset Cityscape",
		Technique: models.TechniqueZeroShot,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.AssignmentResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	return created.Data
}

func createGallerySubmission(t *testing.T, app *fiber.App, assignmentID uint, student string) dto.SubmissionResponse {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/submissions", dto.SubmissionCreateRequest{
		AssignmentID: assignmentID,
		StudentName:  student,
		PromptData:   json.RawMessage(`{"technique":"zero-shot","prompt":"a neon city at dusk"}`),
		ImageURL:     "https://image.example.com/prompt/a%20neon%20city",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.SubmissionResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	return created.Data
}

func TestVoteHandlerCastAndDuplicate(t *testing.T) {
	app := setupApp(t)

	assignment := createTestAssignment(t, app)
	submission := createGallerySubmission(t, app, assignment.ID, "Aisha")

	votePath := fmt.Sprintf("/api/v1/submissions/%d/vote", submission.ID)
	payload := dto.VoteRequest{VoterID: "voter-abcdef123456", VoterFingerprint: "fp-1"}

	resp, err := app.Test(jsonRequest(t, "POST", votePath, payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var voted struct {
		Data dto.VoteResponse `json:"data"`
	}
	decodeResponse(t, resp, &voted)
	require.Equal(t, 1, voted.Data.Votes)

	dupResp, err := app.Test(jsonRequest(t, "POST", votePath, payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, dupResp.StatusCode)
}

func TestVoteHandlerUnlike(t *testing.T) {
	app := setupApp(t)

	assignment := createTestAssignment(t, app)
	submission := createGallerySubmission(t, app, assignment.ID, "Ben")

	payload := dto.VoteRequest{VoterID: "voter-abcdef123456"}

	resp, err := app.Test(jsonRequest(t, "POST", fmt.Sprintf("/api/v1/submissions/%d/vote", submission.ID), payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	unlikeResp, err := app.Test(jsonRequest(t, "DELETE", fmt.Sprintf("/api/v1/submissions/%d/unlike", submission.ID), payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, unlikeResp.StatusCode)

	var unliked struct {
		Data dto.VoteResponse `json:"data"`
	}
	decodeResponse(t, unlikeResp, &unliked)
	require.Equal(t, 0, unliked.Data.Votes)

	repeatResp, err := app.Test(jsonRequest(t, "DELETE", fmt.Sprintf("/api/v1/submissions/%d/unlike", submission.ID), payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, repeatResp.StatusCode)
}

func TestVoteHandlerCheck(t *testing.T) {
	app := setupApp(t)

	assignment := createTestAssignment(t, app)
	first := createGallerySubmission(t, app, assignment.ID, "Cora")
	second := createGallerySubmission(t, app, assignment.ID, "Dev")

	payload := dto.VoteRequest{VoterID: "voter-abcdef123456"}
	resp, err := app.Test(jsonRequest(t, "POST", fmt.Sprintf("/api/v1/submissions/%d/vote", first.ID), payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	checkResp, err := app.Test(jsonRequest(t, "POST", "/api/v1/votes/check", dto.VoteCheckRequest{
		VoterID:       payload.VoterID,
		SubmissionIDs: []uint{first.ID, second.ID},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, checkResp.StatusCode)

	var checked struct {
		Data dto.VoteCheckResponse `json:"data"`
	}
	decodeResponse(t, checkResp, &checked)
	require.Equal(t, []uint{first.ID}, checked.Data.VotedSubmissions)
}

func TestVoteHandlerMissingSubmission(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/submissions/9999/vote", dto.VoteRequest{VoterID: "voter-abcdef123456"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestVoteHandlerShortVoterIDRejected(t *testing.T) {
	app := setupApp(t)

	assignment := createTestAssignment(t, app)
	submission := createGallerySubmission(t, app, assignment.ID, "Eli")

	resp, err := app.Test(jsonRequest(t, "POST", fmt.Sprintf("/api/v1/submissions/%d/vote", submission.ID), dto.VoteRequest{VoterID: "short"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
