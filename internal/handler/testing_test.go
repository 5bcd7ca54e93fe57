package handler_test

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
	"github.com/noah-isme/promptclass-api/internal/events"
	"github.com/noah-isme/promptclass-api/internal/handler"
	"github.com/noah-isme/promptclass-api/internal/models"
	"github.com/noah-isme/promptclass-api/internal/repository"
	"github.com/noah-isme/promptclass-api/internal/router"
	"github.com/noah-isme/promptclass-api/internal/service"
)

func setupApp(t *testing.T) *fiber.App {
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
	promptService := service.NewPromptService(nil, validate, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		ClassHandler:      handler.NewClassHandler(classService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, resultsService, logger),
		VoteHandler:       handler.NewVoteHandler(voteService, logger),
		PromptHandler:     handler.NewPromptHandler(promptService, logger),
		LiveHandler:       handler.NewLiveHandler(hub, logger),
	})

	return app
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
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

	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
