package http

import (
	"todo_webapp/internal/cloudinary"
	"todo_webapp/internal/config"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	hub := ws.NewHub(taskRepo)

	authService := service.NewAuthService(userRepo)
	taskService := service.NewTaskService(taskRepo, hub)

	uploader := cloudinary.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset)
	h := handlers.NewHandler(db, authService, taskService, userRepo, uploader)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth gets its own tighter window
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)

	// Profile
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.PUT("/profile", middleware.JWT(), h.UpdateProfile)
	v1.POST("/profile/photo", middleware.JWT(), h.UploadPhoto)

	// Per-user limiter for mutations so one session can't hammer the store
	mutRL := middleware.UserRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)

	// Tasks
	v1.GET("/tasks", middleware.JWT(), h.ListTasks)
	v1.POST("/tasks", middleware.JWT(), mutRL, h.CreateTask)
	v1.PUT("/tasks/:id", middleware.JWT(), mutRL, h.EditTask)
	v1.PATCH("/tasks/:id/complete", middleware.JWT(), mutRL, h.CompleteTask)
	v1.DELETE("/tasks/:id", middleware.JWT(), mutRL, h.DeleteTask)

	// Live task subscription
	r.GET("/ws", h.WS(hub))
}
