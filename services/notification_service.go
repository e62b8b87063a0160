package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// NotificationService accepts fire-and-forget workflow events. A row is
// written for the in-app feed and mirrored to email when SMTP is
// configured; neither failure propagates to the caller.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService instantiates the service.
func NewNotificationService(db *gorm.DB) *NotificationService {
	if db == nil {
		db = config.DB
	}
	return &NotificationService{db: db}
}

// Notify dispatches a {type, recipient, payload} triple asynchronously.
func (s *NotificationService) Notify(recipientID string, actorID *string, ntype string, payload map[string]interface{}) {
	go s.deliver(recipientID, actorID, ntype, payload)
}

func (s *NotificationService) deliver(recipientID string, actorID *string, ntype string, payload map[string]interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notification payload marshal failed (type=%s recipient=%s): %v", ntype, recipientID, err)
		return
	}

	now := time.Now()
	row := models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        ntype,
		Payload:     string(raw),
		SentAt:      &now,
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("notification insert failed (type=%s recipient=%s): %v", ntype, recipientID, err)
		return
	}

	var recipient models.Profile
	if err := s.db.Where("id = ? AND delete_at IS NULL", recipientID).First(&recipient).Error; err != nil {
		return
	}
	subject := RenderNotificationTitle(ntype, payload)
	body := fmt.Sprintf("<p>%s</p>", subject)
	if err := config.SendMail([]string{recipient.Email}, subject, body); err != nil {
		log.Printf("notification email failed (type=%s recipient=%s): %v", ntype, recipientID, err)
	}
}

// RenderNotificationTitle renders a human-readable title for a
// notification type and payload.
func RenderNotificationTitle(ntype string, payload map[string]interface{}) string {
	switch ntype {
	case models.NotificationPaperStatusChange:
		title := payload["title"]
		if title == nil || title == "" {
			title = payload["paper_id"]
		}
		return fmt.Sprintf("Paper %q %v", title, payload["new_status"])
	case models.NotificationReviewAssignment:
		return fmt.Sprintf("You were assigned to review paper #%v", payload["paper_id"])
	case models.NotificationNeedsDecision:
		return fmt.Sprintf("Paper #%v needs decision", payload["paper_id"])
	default:
		return ntype
	}
}

// ListForRecipient returns the recipient's notifications, newest first.
func (s *NotificationService) ListForRecipient(recipientID string) ([]models.Notification, error) {
	var rows []models.Notification
	err := s.db.Where("recipient_id = ?", recipientID).
		Order("sent_at DESC").
		Find(&rows).Error
	return rows, err
}

// MarkRead marks one notification read; only the recipient may do so.
func (s *NotificationService) MarkRead(id, recipientID string) error {
	var row models.Notification
	err := s.db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: "notification", ID: id}
	}
	if err != nil {
		return err
	}
	if row.RecipientID != recipientID {
		return &ForbiddenError{Reason: "notification belongs to another recipient"}
	}
	return s.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

// MarkAllRead marks every unread notification for the recipient.
func (s *NotificationService) MarkAllRead(recipientID string) error {
	return s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}
