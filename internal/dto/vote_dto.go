package dto

// VoteRequest carries the anonymous voter identity for a cast or revoke.
type VoteRequest struct {
	VoterID          string `json:"voter_id" validate:"required,min=8,max=64"`
	VoterFingerprint string `json:"voter_fingerprint" validate:"omitempty,max=128"`
}

// VoteResponse reports the updated denormalized counter.
type VoteResponse struct {
	Votes int `json:"votes"`
}

// VoteCheckRequest asks which of the listed submissions a voter already voted on.
type VoteCheckRequest struct {
	VoterID       string `json:"voter_id" validate:"required,min=8,max=64"`
	SubmissionIDs []uint `json:"submission_ids" validate:"required,min=1,max=200,dive,gt=0"`
}

// VoteCheckResponse lists the subset of submissions the voter has voted on.
type VoteCheckResponse struct {
	VotedSubmissions []uint `json:"voted_submissions"`
}
