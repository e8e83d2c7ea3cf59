package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/railbook/railway-booking-backend/internal/storage"
)

// saveUpload stores an uploaded image and writes the error response itself
// on failure
func saveUpload(c *gin.Context, media *storage.MediaStore, entity, name string, file *multipart.FileHeader) (string, error) {
	path, err := media.SaveImage(entity, name, file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedImageType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only jpg, jpeg, png and webp images are accepted"})
		case errors.Is(err, storage.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds the upload size limit"})
		default:
			logrus.WithError(err).Error("Failed to store uploaded image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		}
		return "", err
	}
	return path, nil
}
