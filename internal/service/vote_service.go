package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/promptclass-api/internal/dto"
	"github.com/noah-isme/promptclass-api/internal/events"
	"github.com/noah-isme/promptclass-api/internal/models"
	"github.com/noah-isme/promptclass-api/internal/repository"
)

// ErrDuplicateVote indicates the voter already voted on the submission.
var ErrDuplicateVote = errors.New("vote already recorded")

// ErrVoteNotFound indicates no vote exists for the voter and submission.
var ErrVoteNotFound = errors.New("vote not found")

// VoteService enforces the at-most-one-vote-per-voter-per-submission rule.
type VoteService interface {
	Cast(ctx context.Context, submissionID uint, payload dto.VoteRequest, voterIP string) (dto.VoteResponse, error)
	Revoke(ctx context.Context, submissionID uint, payload dto.VoteRequest) (dto.VoteResponse, error)
	Check(ctx context.Context, payload dto.VoteCheckRequest) (dto.VoteCheckResponse, error)
}

type voteService struct {
	votes       repository.VoteRepository
	submissions repository.SubmissionRepository
	results     ResultsService
	validator   *validator.Validate
	publisher   events.Publisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewVoteService constructs a VoteService instance.
func NewVoteService(voteRepo repository.VoteRepository, subRepo repository.SubmissionRepository, results ResultsService, validate *validator.Validate, publisher events.Publisher, logger zerolog.Logger) VoteService {
	return &voteService{
		votes:       voteRepo,
		submissions: subRepo,
		results:     results,
		validator:   validate,
		publisher:   publisher,
		logger:      logger.With().Str("component", "vote_service").Logger(),
		now:         time.Now,
	}
}

// Cast records a vote. The voter_id and fingerprint existence checks are a
// fast path only; two concurrent casts can both pass them, and the database
// unique index on (submission_id, voter_id) is what actually guarantees
// at-most-one. Its violation is translated to ErrDuplicateVote here.
func (s *voteService) Cast(ctx context.Context, submissionID uint, payload dto.VoteRequest, voterIP string) (dto.VoteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VoteResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VoteResponse{}, ErrSubmissionNotFound
		}
		return dto.VoteResponse{}, err
	}

	exists, err := s.votes.Exists(ctx, submissionID, payload.VoterID)
	if err != nil {
		return dto.VoteResponse{}, err
	}
	if exists {
		return dto.VoteResponse{}, ErrDuplicateVote
	}

	// Secondary heuristic: a voter who cleared storage gets a fresh voter_id
	// but usually keeps the same browser fingerprint.
	if payload.VoterFingerprint != "" {
		matched, err := s.votes.ExistsByFingerprint(ctx, submissionID, payload.VoterFingerprint)
		if err != nil {
			return dto.VoteResponse{}, err
		}
		if matched {
			return dto.VoteResponse{}, ErrDuplicateVote
		}
	}

	vote := models.Vote{
		SubmissionID:     submissionID,
		VoterID:          payload.VoterID,
		VoterFingerprint: payload.VoterFingerprint,
		VoterIP:          voterIP,
	}

	votes, err := s.votes.Cast(ctx, &vote)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.VoteResponse{}, ErrDuplicateVote
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VoteResponse{}, ErrSubmissionNotFound
		}
		return dto.VoteResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submissionID).Int("votes", votes).Msg("vote cast")

	if s.results != nil {
		s.results.Invalidate(ctx, submission.AssignmentID)
	}
	if s.publisher != nil {
		s.publisher.Publish(events.Event{
			Type:         events.TypeVoteCast,
			AssignmentID: submission.AssignmentID,
			SubmissionID: submissionID,
			Votes:        votes,
			At:           s.now(),
		})
	}

	return dto.VoteResponse{Votes: votes}, nil
}

// Revoke removes the voter's vote and decrements the counter, floored at zero.
func (s *voteService) Revoke(ctx context.Context, submissionID uint, payload dto.VoteRequest) (dto.VoteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VoteResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VoteResponse{}, ErrSubmissionNotFound
		}
		return dto.VoteResponse{}, err
	}

	votes, err := s.votes.Revoke(ctx, submissionID, payload.VoterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VoteResponse{}, ErrVoteNotFound
		}
		return dto.VoteResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submissionID).Int("votes", votes).Msg("vote revoked")

	if s.results != nil {
		s.results.Invalidate(ctx, submission.AssignmentID)
	}
	if s.publisher != nil {
		s.publisher.Publish(events.Event{
			Type:         events.TypeVoteRevoked,
			AssignmentID: submission.AssignmentID,
			SubmissionID: submissionID,
			Votes:        votes,
			At:           s.now(),
		})
	}

	return dto.VoteResponse{Votes: votes}, nil
}

// Check is a read-only batch lookup the gallery uses to paint button state.
func (s *voteService) Check(ctx context.Context, payload dto.VoteCheckRequest) (dto.VoteCheckResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VoteCheckResponse{}, err
	}

	voted, err := s.votes.VotedSubmissionIDs(ctx, payload.VoterID, payload.SubmissionIDs)
	if err != nil {
		return dto.VoteCheckResponse{}, err
	}

	return dto.VoteCheckResponse{VotedSubmissions: voted}, nil
}
