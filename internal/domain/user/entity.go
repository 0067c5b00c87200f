package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User carries both the account and the learner profile. Interests and
// Skills stay nil when the user never filled them in; an empty non-nil
// slice means the user cleared them. The recommendation core cares about
// the difference for its difficulty boosts.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	IsAdmin      bool
	Status       string
	LastLoginAt  *time.Time

	Bio             string
	Interests       []string
	Skills          []string
	ExperienceLevel string

	AcademicBranch     string
	AcademicSemester   string
	AcademicUniversity string

	CreatedAt time.Time
	UpdatedAt time.Time
}
