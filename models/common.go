package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileUpload represents the file_uploads table. The workflow only
// stores and passes through StoredPath; bytes live on disk or in an
// object store.
type FileUpload struct {
	ID           string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	OriginalName string     `gorm:"column:original_name" json:"original_name"`
	StoredPath   string     `gorm:"column:stored_path" json:"stored_path"`
	FileSize     int64      `gorm:"column:file_size" json:"file_size"`
	MimeType     string     `gorm:"column:mime_type" json:"mime_type"`
	UploadedBy   string     `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt   *time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Uploader *Profile `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

// TableName overrides
func (FileUpload) TableName() string {
	return "file_uploads"
}

func (f *FileUpload) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// IsValidManuscriptType limits uploads to the formats reviewers can open.
func (f *FileUpload) IsValidManuscriptType() bool {
	validTypes := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	for _, validType := range validTypes {
		if f.MimeType == validType {
			return true
		}
	}
	return false
}
