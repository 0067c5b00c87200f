package handler

import (
	"project-compass/internal/delivery/http/dto"
	"project-compass/internal/delivery/http/middleware"
	"project-compass/internal/pkg/response"
	"project-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/recommendations", h.Recommendations)
}

// Recommendations is personalized when the optional auth middleware tagged
// the request and a shuffled discovery sample otherwise. A negative limit
// is a client error, not a silent clamp.
func (h *RecommendationHandler) Recommendations(c fiber.Ctx) error {
	userID, _ := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)

	limit := queryInt(c, "limit", 0)
	if limit < 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Limit must not be negative", nil, nil)
	}

	items, err := h.uc.GetRecommendations(c.Context(), userID, limit)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRecommendations(items))
}
