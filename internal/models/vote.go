package models

import "time"

// Vote records a single anonymous like against a submission.
//
// The composite unique index on (submission_id, voter_id) is the correctness
// boundary for duplicate-vote prevention; application-level pre-checks are a
// fast path only.
type Vote struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SubmissionID     uint      `gorm:"not null;uniqueIndex:idx_votes_submission_voter" json:"submission_id"`
	VoterID          string    `gorm:"size:64;not null;uniqueIndex:idx_votes_submission_voter" json:"voter_id"`
	VoterFingerprint string    `gorm:"size:128;index" json:"voter_fingerprint"`
	VoterIP          string    `gorm:"size:64" json:"voter_ip"`
	CreatedAt        time.Time `json:"voted_at"`
}
