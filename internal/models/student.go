package models

import "time"

// Student represents an enrolled learner that can submit assignments.
// Enrollment is owned by an external system; the engine only reads the
// roster to compute expected-submitter sets.
type Student struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	ClassroomID string    `gorm:"size:64;not null;index" json:"classroom_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
