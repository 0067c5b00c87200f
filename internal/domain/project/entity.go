package project

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Project is one catalog entry. Descriptive fields (EstimatedTime,
// Prerequisites, LearningOutcomes) are passed through untouched by the
// recommendation core.
type Project struct {
	ID               uuid.UUID
	Title            string
	Description      string
	Domain           string
	TechStack        []string
	Difficulty       Difficulty
	Tags             []string
	EstimatedTime    string
	Prerequisites    []string
	LearningOutcomes []string

	IsActive   bool
	Source     string
	ExternalID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
