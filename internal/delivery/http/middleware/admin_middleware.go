package middleware

import (
	"errors"

	"project-compass/internal/domain/user"
	"project-compass/internal/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AdminMiddleware runs after AuthMiddleware and checks the stored is_admin
// flag on every request. Admin rights live in the users row, not in the
// token, so revocation takes effect immediately.
type AdminMiddleware struct {
	users repository.UserRepository
}

func NewAdminMiddleware(users repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{users: users}
}

func (m *AdminMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
		if !ok || userID == uuid.Nil {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		u, err := m.users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		if !u.IsAdmin || u.Status != user.StatusActive {
			return NewAppError(fiber.StatusForbidden, "Admin access required", nil, nil)
		}

		return c.Next()
	}
}
