package services

import (
	"strings"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// COIService records conflict-of-interest declarations. Inserts are
// unconditional; the latest declaration per (paper, user) pair is the
// authoritative one for any "is conflict declared" check.
type COIService struct {
	db *gorm.DB
}

// NewCOIService instantiates the service.
func NewCOIService(db *gorm.DB) *COIService {
	if db == nil {
		db = config.DB
	}
	return &COIService{db: db}
}

// Declare files a declaration for (paperID, userID) with the role the
// declarant holds at filing time.
func (s *COIService) Declare(paperID, userID, role, statement string) (*models.COIDeclaration, error) {
	if paperID == "" || userID == "" || role == "" {
		return nil, &ValidationError{Field: "paper_id/user_id/role", Message: "paper_id, user_id and role are required"}
	}

	now := time.Now()
	declaration := models.COIDeclaration{
		PaperID:    paperID,
		UserID:     userID,
		Role:       role,
		Statement:  strings.TrimSpace(statement),
		DeclaredAt: &now,
	}
	if err := s.db.Create(&declaration).Error; err != nil {
		return nil, err
	}
	return &declaration, nil
}

// HasDeclaration reports whether any declaration exists for the pair.
func (s *COIService) HasDeclaration(paperID, userID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.COIDeclaration{}).
		Where("paper_id = ? AND user_id = ?", paperID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LatestForPair returns the authoritative declaration for the pair, or
// nil when none was filed.
func (s *COIService) LatestForPair(paperID, userID string) (*models.COIDeclaration, error) {
	var declarations []models.COIDeclaration
	err := s.db.Where("paper_id = ? AND user_id = ?", paperID, userID).
		Order("declared_at DESC").
		Limit(1).
		Find(&declarations).Error
	if err != nil {
		return nil, err
	}
	if len(declarations) == 0 {
		return nil, nil
	}
	return &declarations[0], nil
}

// ListForPaper returns declarations on a paper, newest first, for the
// editorial decision panel.
func (s *COIService) ListForPaper(paperID string) ([]models.COIDeclaration, error) {
	var declarations []models.COIDeclaration
	err := s.db.Preload("Declarant").
		Where("paper_id = ?", paperID).
		Order("declared_at DESC").
		Find(&declarations).Error
	return declarations, err
}
