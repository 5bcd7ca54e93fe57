package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/config"
	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/events"
	"github.com/noah-isme/promptclass-api/internal/handler"
	"github.com/noah-isme/promptclass-api/internal/middleware"
	"github.com/noah-isme/promptclass-api/internal/models"
	"github.com/noah-isme/promptclass-api/internal/repository"
	"github.com/noah-isme/promptclass-api/internal/router"
	"github.com/noah-isme/promptclass-api/internal/service"
)

func setupAPI(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Class{}, &models.Assignment{}, &models.Submission{}, &models.Vote{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)
	hub := events.NewHub()
	publishers := events.Fanout{hub}

	classRepo := repository.NewClassRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	classService := service.NewClassService(classRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, classRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, validate, publishers, logger)
	resultsService := service.NewResultsService(submissionRepo, nil, 0, logger)
	voteService := service.NewVoteService(voteRepo, submissionRepo, resultsService, validate, publishers, logger)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})

	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		ClassHandler:      handler.NewClassHandler(classService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, resultsService, logger),
		VoteHandler:       handler.NewVoteHandler(voteService, logger),
		LiveHandler:       handler.NewLiveHandler(hub, logger),
	})

	return app, db
}

func request(t *testing.T, app *fiber.App, method, target string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response, target *T) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func TestClassroomVotingFlow(t *testing.T) {
	app, db := setupAPI(t)

	// Instructor sets up the class and its assignment.
	resp := request(t, app, "POST", "/api/v1/classes", dto.ClassCreateRequest{
		Name:           "Period 3 Art",
		InstructorName: "Ms. Rivera",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var class envelope[dto.ClassResponse]
	decode(t, resp, &class)

	resp = request(t, app, "POST", "/api/v1/assignments", dto.AssignmentCreateRequest{
		ClassID:   &class.Data.ID,
		Title:     "Dream Landscape",
		Technique: models.TechniqueStructured,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var assignment envelope[dto.AssignmentResponse]
	decode(t, resp, &assignment)

	// Two students submit to the gallery.
	submit := func(name string) dto.SubmissionResponse {
		resp := request(t, app, "POST", "/api/v1/submissions", dto.SubmissionCreateRequest{
			AssignmentID: assignment.Data.ID,
			StudentName:  name,
			PromptData:   json.RawMessage(`{"technique":"structured","prompt":"subject: mountain | style: oil"}`),
			ImageURL:     "https://image.example.com/prompt/mountain",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		var created envelope[dto.SubmissionResponse]
		decode(t, resp, &created)
		return created.Data
	}
	first := submit("Aisha")
	second := submit("Ben")

	resp = request(t, app, "GET", fmt.Sprintf("/api/v1/assignments/%d/submissions", assignment.Data.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var gallery envelope[[]dto.SubmissionResponse]
	decode(t, resp, &gallery)
	require.Len(t, gallery.Data, 2)

	// Anonymous voting with duplicate protection.
	voter := dto.VoteRequest{VoterID: "voter-abcdef123456", VoterFingerprint: "fp-e2e"}
	resp = request(t, app, "POST", fmt.Sprintf("/api/v1/submissions/%d/vote", first.ID), voter)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var voted envelope[dto.VoteResponse]
	decode(t, resp, &voted)
	require.Equal(t, 1, voted.Data.Votes)

	resp = request(t, app, "POST", fmt.Sprintf("/api/v1/submissions/%d/vote", first.ID), voter)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = request(t, app, "POST", "/api/v1/votes/check", dto.VoteCheckRequest{
		VoterID:       voter.VoterID,
		SubmissionIDs: []uint{first.ID, second.ID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var checked envelope[dto.VoteCheckResponse]
	decode(t, resp, &checked)
	require.Equal(t, []uint{first.ID}, checked.Data.VotedSubmissions)

	// Results rank the voted submission first.
	resp = request(t, app, "GET", fmt.Sprintf("/api/v1/assignments/%d/results", assignment.Data.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var results envelope[[]dto.SubmissionResponse]
	decode(t, resp, &results)
	require.Equal(t, first.ID, results.Data[0].ID)

	// Unliking frees the voter to vote elsewhere.
	resp = request(t, app, "DELETE", fmt.Sprintf("/api/v1/submissions/%d/unlike", first.ID), voter)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var unliked envelope[dto.VoteResponse]
	decode(t, resp, &unliked)
	require.Equal(t, 0, unliked.Data.Votes)

	resp = request(t, app, "POST", fmt.Sprintf("/api/v1/submissions/%d/vote", second.ID), voter)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Reveal is one way.
	resp = request(t, app, "POST", fmt.Sprintf("/api/v1/submissions/%d/reveal", first.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var revealed envelope[dto.SubmissionResponse]
	decode(t, resp, &revealed)
	require.True(t, revealed.Data.IsRevealed)

	// Deleting the class cascades to assignments, submissions and votes.
	resp = request(t, app, "DELETE", fmt.Sprintf("/api/v1/classes/%d", class.Data.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, model := range []interface{}{&models.Assignment{}, &models.Submission{}, &models.Vote{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}

	resp = request(t, app, "GET", "/api/v1/classes/"+class.Data.ClassCode, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
