package handlers

import (
	"errors"
	"net/http"
	"strings"

	"todo_webapp/internal/cloudinary"
	"todo_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// UpdateProfile sets the display name; the photo URL is left unchanged.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req updateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "display name is empty"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.UserRepo.UpdateProfile(ctx, userID, req.DisplayName, user.PhotoURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}

	user.DisplayName = req.DisplayName
	c.JSON(http.StatusOK, userJSON(user))
}

// UploadPhoto forwards the uploaded file to the image host and stores
// the returned public URL on the user.
func (h *Handler) UploadPhoto(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	photoURL, err := h.Uploader.Upload(ctx, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, cloudinary.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image upload is not configured"})
			return
		}
		logger.Warn("photo upload failed", "user_id", userID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}

	user, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := h.UserRepo.UpdateProfile(ctx, userID, user.DisplayName, photoURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": photoURL})
}
