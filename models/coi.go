package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// COIDeclaration is a conflict-of-interest statement filed by a paper
// participant. Inserts are unconditional; when duplicates exist for the
// same (paper, user) pair the most recently declared one is authoritative.
type COIDeclaration struct {
	ID         string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	PaperID    string     `gorm:"column:paper_id" json:"paper_id"`
	UserID     string     `gorm:"column:user_id" json:"user_id"`
	Role       string     `gorm:"column:role" json:"role"`
	Statement  string     `gorm:"column:statement" json:"statement"`
	DeclaredAt *time.Time `gorm:"column:declared_at" json:"declared_at"`

	Declarant *Profile `gorm:"foreignKey:UserID" json:"declarant,omitempty"`
}

// TableName specifies the table name for COIDeclaration.
func (COIDeclaration) TableName() string {
	return "coi_declarations"
}

func (d *COIDeclaration) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
