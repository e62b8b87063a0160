package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values stored on profiles.role
const (
	RoleAuthor   = "author"
	RoleReviewer = "reviewer"
	RoleEditor   = "editor"
	RoleAdmin    = "admin"
)

// Profile maps an authenticated subject to a durable journal identity.
type Profile struct {
	ID          string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	AuthID      string     `gorm:"column:auth_id;uniqueIndex" json:"auth_id"`
	FullName    string     `gorm:"column:full_name" json:"full_name"`
	Email       string     `gorm:"column:email;uniqueIndex" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	Role        string     `gorm:"column:role" json:"role"`
	Spec        *string    `gorm:"column:spec" json:"spec,omitempty"`
	Affiliation *string    `gorm:"column:affiliation" json:"affiliation,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ValidRole reports whether role is one of the known journal roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAuthor, RoleReviewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}
