package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/repository"
)

// ResultsService serves the per-assignment leaderboard: submissions ordered
// by vote count. Listings are cached in Redis with a short TTL and the cache
// is invalidated whenever votes change; without Redis it falls through to the
// database on every call.
type ResultsService interface {
	List(ctx context.Context, assignmentID uint) ([]dto.SubmissionResponse, error)
	Invalidate(ctx context.Context, assignmentID uint)
}

type resultsService struct {
	submissions repository.SubmissionRepository
	cache       *redis.Client
	ttl         time.Duration
	logger      zerolog.Logger
}

// NewResultsService constructs a ResultsService. The cache client may be nil.
func NewResultsService(subRepo repository.SubmissionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ResultsService {
	return &resultsService{
		submissions: subRepo,
		cache:       cache,
		ttl:         ttl,
		logger:      logger.With().Str("component", "results_service").Logger(),
	}
}

func resultsCacheKey(assignmentID uint) string {
	return fmt.Sprintf("promptclass:results:%d", assignmentID)
}

func (s *resultsService) List(ctx context.Context, assignmentID uint) ([]dto.SubmissionResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, resultsCacheKey(assignmentID)).Bytes()
		if err == nil {
			var results []dto.SubmissionResponse
			if err := json.Unmarshal(cached, &results); err == nil {
				return results, nil
			}
			// A corrupt entry falls through to the database.
			s.cache.Del(ctx, resultsCacheKey(assignmentID))
		}
	}

	submissions, err := s.submissions.ListByVotes(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	results := dto.NewSubmissionResponseSlice(submissions)

	if s.cache != nil {
		payload, err := json.Marshal(results)
		if err == nil {
			if err := s.cache.Set(ctx, resultsCacheKey(assignmentID), payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache results")
			}
		}
	}

	return results, nil
}

func (s *resultsService) Invalidate(ctx context.Context, assignmentID uint) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, resultsCacheKey(assignmentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("assignment_id", assignmentID).Msg("failed to invalidate results cache")
	}
}
