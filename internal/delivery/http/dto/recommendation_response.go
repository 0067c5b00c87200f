package dto

import "project-compass/internal/usecase"

type RecommendationResponse struct {
	Project ProjectResponse `json:"project"`
	Score   int             `json:"score"`
	Reason  string          `json:"reason"`
}

func FromRecommendations(items []usecase.RecommendationItem) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, RecommendationResponse{
			Project: FromProject(it.Project),
			Score:   it.Score,
			Reason:  it.Reason,
		})
	}
	return out
}
