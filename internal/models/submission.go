package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission represents a student's prompt-and-image entry for an assignment.
//
// PromptData is an opaque JSON document owned by the frontend builders; the
// API stores and returns it without imposing a schema. Votes is a
// denormalized counter whose authoritative source is the VoteRecords rows;
// it is only ever mutated inside the vote/revoke transactions.
type Submission struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	AssignmentID   uint           `gorm:"not null;index" json:"assignment_id"`
	StudentName    string         `gorm:"size:255;not null" json:"student_name"`
	StudentEmail   string         `gorm:"size:255" json:"student_email"`
	PromptData     datatypes.JSON `gorm:"type:json" json:"prompt_data"`
	ImageURL       string         `gorm:"size:1024" json:"image_url"`
	SubmissionCode string         `gorm:"size:64;uniqueIndex;not null" json:"submission_code"`
	Votes          int            `gorm:"not null;default:0" json:"votes"`
	IsRevealed     bool           `gorm:"not null;default:false" json:"is_revealed"`
	CreatedAt      time.Time      `json:"submitted_at"`
	UpdatedAt      time.Time      `json:"-"`
	VoteRecords    []Vote         `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
