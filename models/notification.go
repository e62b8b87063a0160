package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types emitted by the editorial workflow.
const (
	NotificationPaperStatusChange = "paper_status_change"
	NotificationReviewAssignment  = "review_assignment"
	NotificationNeedsDecision     = "paper_needs_decision"
)

// Notification is a fire-and-forget message to a profile. Delivery
// beyond the row (email mirror) is best effort.
type Notification struct {
	ID          string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	RecipientID string     `gorm:"column:recipient_id" json:"recipient_id"`
	ActorID     *string    `gorm:"column:actor_id" json:"actor_id,omitempty"`
	Type        string     `gorm:"column:type" json:"type"`
	Payload     string     `gorm:"column:payload" json:"payload"`
	IsRead      bool       `gorm:"column:is_read" json:"is_read"`
	SentAt      *time.Time `gorm:"column:sent_at" json:"sent_at"`
}

// TableName specifies the table name for Notification.
func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
