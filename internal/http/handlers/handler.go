package handlers

import (
	"context"
	"io"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Uploader is the image-hosting boundary; implemented by cloudinary.Client.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type Handler struct {
	DB       *pgxpool.Pool
	Auth     *service.AuthService
	Tasks    *service.TaskService
	UserRepo *repository.UserRepository
	Uploader Uploader
}

func NewHandler(db *pgxpool.Pool, auth *service.AuthService, tasks *service.TaskService, userRepo *repository.UserRepository, uploader Uploader) *Handler {
	return &Handler{
		DB:       db,
		Auth:     auth,
		Tasks:    tasks,
		UserRepo: userRepo,
		Uploader: uploader,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func userJSON(u *domain.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"email":        u.Email,
		"display_name": u.DisplayName,
		"photo_url":    u.PhotoURL,
		"created_at":   u.CreatedAt,
	}
}
