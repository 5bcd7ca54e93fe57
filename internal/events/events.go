package events

import "time"

// Event types emitted by the submission and vote services.
const (
	TypeSubmissionCreated = "submission.created"
	TypeVoteCast          = "vote.cast"
	TypeVoteRevoked       = "vote.revoked"
)

// Event is the payload pushed to live-feed subscribers and mirrored to NATS.
type Event struct {
	Type         string    `json:"type"`
	AssignmentID uint      `json:"assignment_id"`
	SubmissionID uint      `json:"submission_id"`
	Votes        int       `json:"votes"`
	At           time.Time `json:"at"`
}

// Publisher delivers events to interested parties. Implementations must not
// block the request path.
type Publisher interface {
	Publish(event Event)
}

// Fanout forwards every event to each wrapped publisher.
type Fanout []Publisher

// Publish implements Publisher.
func (f Fanout) Publish(event Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(event)
		}
	}
}
