package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxManuscriptSize = 25 << 20 // 25 MB

// UploadManuscript stores a manuscript file and returns its path for
// use as storage_path on paper submission or versioning
func UploadManuscript(c *gin.Context) {
	profile := currentProfile(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > maxManuscriptSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 25MB limit"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	upload := models.FileUpload{
		OriginalName: filepath.Base(file.Filename),
		FileSize:     file.Size,
		MimeType:     mimeType,
		UploadedBy:   profile.ID,
	}
	if !upload.IsValidManuscriptType() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF and Word manuscripts are accepted"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	storedName := uuid.NewString() + ext
	storedPath := filepath.Join(uploadPath, storedName)

	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	now := time.Now()
	upload.StoredPath = storedPath
	upload.UploadedAt = &now
	if err := config.DB.Create(&upload).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":           true,
		"file_id":      upload.ID,
		"storage_path": upload.StoredPath,
		"mime_type":    upload.MimeType,
	})
}

// DownloadManuscript streams a stored manuscript back to the caller
func DownloadManuscript(c *gin.Context) {
	var upload models.FileUpload
	if err := config.DB.Where("id = ? AND delete_at IS NULL", c.Param("id")).First(&upload).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if _, err := os.Stat(upload.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File missing from storage"})
		return
	}

	c.FileAttachment(upload.StoredPath, upload.OriginalName)
}
