package services

import (
	"errors"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// Decision actions
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// DecisionService renders editor decisions on papers. The decision is a
// direct status flip; review aggregation is a display concern and never
// gates it.
type DecisionService struct {
	db     *gorm.DB
	notify *NotificationService
}

// NewDecisionService instantiates the service.
func NewDecisionService(db *gorm.DB) *DecisionService {
	if db == nil {
		db = config.DB
	}
	return &DecisionService{db: db, notify: NewNotificationService(db)}
}

// Decide applies approve -> accepted or reject -> rejected. Papers that
// already reached a terminal status refuse further decisions.
func (s *DecisionService) Decide(paperID, action string, actor *models.Profile) (*models.Paper, error) {
	if actor.Role != models.RoleEditor && actor.Role != models.RoleAdmin {
		return nil, &ForbiddenError{Reason: "only editors and admins may decide on papers"}
	}
	if action != DecisionApprove && action != DecisionReject {
		return nil, &ValidationError{Field: "action", Message: "action must be approve or reject"}
	}

	var paper models.Paper
	err := s.db.Where("id = ?", paperID).First(&paper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "paper", ID: paperID}
	}
	if err != nil {
		return nil, err
	}
	if paper.IsTerminal() {
		return nil, &ConflictError{Entity: "paper", Message: "paper is already " + paper.Status}
	}

	newStatus := models.PaperStatusAccepted
	if action == DecisionReject {
		newStatus = models.PaperStatusRejected
	}

	now := time.Now()
	err = s.db.Model(&models.Paper{}).Where("id = ?", paperID).
		Updates(map[string]interface{}{"status": newStatus, "update_at": now}).Error
	if err != nil {
		return nil, err
	}
	paper.Status = newStatus
	paper.UpdateAt = &now

	s.notify.Notify(paper.CreatedBy, &actor.ID, models.NotificationPaperStatusChange, map[string]interface{}{
		"paper_id":   paper.ID,
		"title":      paper.Title,
		"new_status": newStatus,
	})

	return &paper, nil
}
