package dto

import (
	"time"

	"project-compass/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsAdmin     bool       `json:"is_admin"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`

	Bio             string   `json:"bio"`
	Interests       []string `json:"interests"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`

	AcademicBranch     string `json:"academic_branch"`
	AcademicSemester   string `json:"academic_semester"`
	AcademicUniversity string `json:"academic_university"`

	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		IsAdmin:            u.IsAdmin,
		Status:             u.Status,
		LastLoginAt:        u.LastLoginAt,
		Bio:                u.Bio,
		Interests:          emptyIfNil(u.Interests),
		Skills:             emptyIfNil(u.Skills),
		ExperienceLevel:    u.ExperienceLevel,
		AcademicBranch:     u.AcademicBranch,
		AcademicSemester:   u.AcademicSemester,
		AcademicUniversity: u.AcademicUniversity,
		CreatedAt:          u.CreatedAt,
	}
}
