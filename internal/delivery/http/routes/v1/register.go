package v1

import (
	"log"

	"project-compass/internal/config"
	"project-compass/internal/database"
	"project-compass/internal/delivery/http/handler"
	"project-compass/internal/delivery/http/middleware"
	"project-compass/internal/infrastructure/cache"
	"project-compass/internal/pkg/jwt"
	"project-compass/internal/repository"
	"project-compass/internal/usecase"
	useruc "project-compass/internal/usecase/user"
	"project-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Register builds the whole v1 dependency graph and mounts the routes.
func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)
	activityRepo := repository.NewPostgresActivityRepository(db)

	authMw := middleware.NewAuthMiddleware(jwtSvc)
	adminMw := middleware.NewAdminMiddleware(userRepo)

	authUC := usecase.NewAuthUsecase(userRepo, activityRepo, jwtSvc, ws.Notifier{}, logger)
	profileUC := useruc.NewService(userRepo, redis, logger)
	projectUC := usecase.NewProjectListUsecase(projectRepo, redis, logger)
	recUC := usecase.NewRecommendationUsecase(userRepo, projectRepo, nil, redis, logger)
	completionUC := usecase.NewCompletionUsecase(projectRepo, completionRepo, activityRepo, ws.Notifier{}, logger)
	adminUC := usecase.NewAdminUsecase(userRepo, projectRepo, completionRepo, activityRepo, redis, ws.Notifier{}, logger)

	authHandler := handler.NewAuthHandler(authUC)
	projectHandler := handler.NewProjectHandler(projectUC)
	recHandler := handler.NewRecommendationHandler(recUC)
	userHandler := handler.NewUserHandler(profileUC, completionUC)
	completionHandler := handler.NewCompletionHandler(completionUC)
	adminHandler := handler.NewAdminHandler(adminUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	// Catalog browsing and recommendations degrade gracefully without a
	// session, so they only get the optional variant.
	public := r.Group("/projects", authMw.Optional())
	recHandler.RegisterRoutes(public)
	projectHandler.RegisterRoutes(public)

	protected := r.Group("", authMw.Middleware())
	userHandler.RegisterRoutes(protected.Group("/users"))
	completionHandler.RegisterRoutes(protected.Group("/projects"))

	admin := protected.Group("/admin", adminMw.Middleware())
	adminHandler.RegisterRoutes(admin)
}
