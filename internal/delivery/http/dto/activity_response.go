package dto

import (
	"time"

	"project-compass/internal/repository"

	"github.com/google/uuid"
)

type ActivityResponse struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	ActorID   *uuid.UUID `json:"actor_id"`
	Subject   string     `json:"subject"`
	Detail    string     `json:"detail"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromActivity(items []repository.ActivityEntry) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for _, e := range items {
		out = append(out, ActivityResponse{
			ID:        e.ID,
			Kind:      e.Kind,
			ActorID:   e.ActorID,
			Subject:   e.Subject,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

type CompletionResponse struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Title       string    `json:"title"`
	Domain      string    `json:"domain"`
	CompletedAt time.Time `json:"completed_at"`
}

func FromCompletions(items []repository.Completion) []CompletionResponse {
	out := make([]CompletionResponse, 0, len(items))
	for _, c := range items {
		out = append(out, CompletionResponse{
			ProjectID:   c.ProjectID,
			Title:       c.Title,
			Domain:      c.Domain,
			CompletedAt: c.CompletedAt,
		})
	}
	return out
}
