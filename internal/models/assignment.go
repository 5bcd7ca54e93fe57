package models

import "time"

// Prompting techniques offered by the assignment builders.
const (
	TechniqueZeroShot     = "zero-shot"
	TechniqueFewShot      = "few-shot"
	TechniqueChainThought = "chain-thought"
	TechniqueRolePlay     = "role-play"
	TechniqueStructured   = "structured"
)

// Techniques lists every accepted prompting technique.
func Techniques() []string {
	return []string{
		TechniqueZeroShot,
		TechniqueFewShot,
		TechniqueChainThought,
		TechniqueRolePlay,
		TechniqueStructured,
	}
}

// Assignment represents a prompt-engineering exercise students submit against.
type Assignment struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ClassID      *uint        `gorm:"index" json:"class_id"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Requirements string       `gorm:"type:text" json:"requirements"`
	Technique    string       `gorm:"size:32;not null" json:"technique"`
	DueDate      *time.Time   `json:"due_date"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Submissions  []Submission `gorm:"foreignKey:AssignmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsPastDue returns true when a due date is set and already behind the reference time.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return a.DueDate != nil && reference.After(*a.DueDate)
}
