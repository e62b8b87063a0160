package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Paper status values
const (
	PaperStatusSubmitted   = "submitted"
	PaperStatusUnderReview = "under_review"
	PaperStatusAccepted    = "accepted"
	PaperStatusRejected    = "rejected"
	PaperStatusPublished   = "published"
)

// Paper represents a manuscript submission and its evolving status.
// CurrentVersion always equals the highest version_number among the
// paper's versions; the versioning operation maintains this, not the DB.
type Paper struct {
	ID             string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Title          string     `gorm:"column:title" json:"title"`
	Abstract       *string    `gorm:"column:abstract" json:"abstract,omitempty"`
	Keywords       *string    `gorm:"column:keywords" json:"keywords,omitempty"`
	CategoryID     *string    `gorm:"column:category_id" json:"category_id,omitempty"`
	Status         string     `gorm:"column:status" json:"status"`
	CurrentVersion int        `gorm:"column:current_version" json:"current_version"`
	CreatedBy      string     `gorm:"column:created_by" json:"created_by"`
	PublishedDate  *time.Time `gorm:"column:published_date" json:"published_date,omitempty"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Creator  *Profile       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Versions []PaperVersion `gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE" json:"versions,omitempty"`
}

// PaperVersion is one immutable uploaded artifact tied to a paper.
// (paper_id, version_number) is unique; numbers start at 1 and only grow.
type PaperVersion struct {
	ID            string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	PaperID       string     `gorm:"column:paper_id;uniqueIndex:uniq_paper_version" json:"paper_id"`
	VersionNumber int        `gorm:"column:version_number;uniqueIndex:uniq_paper_version" json:"version_number"`
	FilePath      string     `gorm:"column:file_path" json:"file_path"`
	FileMime      string     `gorm:"column:file_mime" json:"file_mime"`
	Notes         *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
}

// PaperCheck is an automated-check placeholder queued on submission,
// e.g. the plagiarism check. An external worker picks queued rows up.
type PaperCheck struct {
	ID       string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	PaperID  string     `gorm:"column:paper_id" json:"paper_id"`
	Type     string     `gorm:"column:type" json:"type"`
	Status   string     `gorm:"column:status" json:"status"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (Paper) TableName() string {
	return "papers"
}

func (PaperVersion) TableName() string {
	return "paper_versions"
}

func (PaperCheck) TableName() string {
	return "paper_checks"
}

func (p *Paper) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (v *PaperVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

func (c *PaperCheck) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsTerminal reports whether the paper has reached a state where editor
// decisions no longer apply.
func (p *Paper) IsTerminal() bool {
	switch p.Status {
	case PaperStatusAccepted, PaperStatusRejected, PaperStatusPublished:
		return true
	}
	return false
}
