package models

import "time"

// Class represents a classroom that assignments are published under.
type Class struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"size:255;not null" json:"name"`
	Description    string       `gorm:"type:text" json:"description"`
	InstructorName string       `gorm:"size:255;not null" json:"instructor_name"`
	ClassCode      string       `gorm:"size:16;uniqueIndex;not null" json:"class_code"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Assignments    []Assignment `gorm:"foreignKey:ClassID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
