package dto

import (
	"time"

	"project-compass/internal/domain/project"

	"github.com/google/uuid"
)

type ProjectResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Domain           string    `json:"domain"`
	TechStack        []string  `json:"tech_stack"`
	Difficulty       string    `json:"difficulty"`
	Tags             []string  `json:"tags"`
	EstimatedTime    string    `json:"estimated_time"`
	Prerequisites    []string  `json:"prerequisites"`
	LearningOutcomes []string  `json:"learning_outcomes"`
	CreatedAt        time.Time `json:"created_at"`
}

type ProjectListResponse struct {
	Items   []ProjectResponse `json:"items"`
	Total   int               `json:"total"`
	Preview bool              `json:"preview"`
}

type ProjectFacetsResponse struct {
	Domains      []string `json:"domains"`
	Difficulties []string `json:"difficulties"`
	TechStack    []string `json:"tech_stack"`
}

func FromProject(p project.Project) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Domain:           p.Domain,
		TechStack:        emptyIfNil(p.TechStack),
		Difficulty:       string(p.Difficulty),
		Tags:             emptyIfNil(p.Tags),
		EstimatedTime:    p.EstimatedTime,
		Prerequisites:    emptyIfNil(p.Prerequisites),
		LearningOutcomes: emptyIfNil(p.LearningOutcomes),
		CreatedAt:        p.CreatedAt,
	}
}

func FromProjects(items []project.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProject(p))
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
