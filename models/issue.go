package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Issue is a published grouping of papers. published flips exactly once
// from false to true; there is no unpublish path.
type Issue struct {
	ID                   string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Title                string     `gorm:"column:title" json:"title"`
	Slug                 string     `gorm:"column:slug" json:"slug"`
	Volume               *int       `gorm:"column:volume" json:"volume,omitempty"`
	Number               *int       `gorm:"column:number" json:"number,omitempty"`
	Description          *string    `gorm:"column:description" json:"description,omitempty"`
	Published            bool       `gorm:"column:published" json:"published"`
	PublishedAt          *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	ScheduledReleaseDate *time.Time `gorm:"column:scheduled_release_date" json:"scheduled_release_date,omitempty"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at"`
}

// IssuePaper orders papers within an issue. Positions are assigned as
// max existing position + 1 and never reused, even after removals.
type IssuePaper struct {
	ID       string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	IssueID  string     `gorm:"column:issue_id;uniqueIndex:uniq_issue_paper" json:"issue_id"`
	PaperID  string     `gorm:"column:paper_id;uniqueIndex:uniq_issue_paper" json:"paper_id"`
	Position int        `gorm:"column:position" json:"position"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`

	Paper *Paper `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
}

// TableName overrides
func (Issue) TableName() string {
	return "issues"
}

func (IssuePaper) TableName() string {
	return "issue_papers"
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (p *IssuePaper) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
