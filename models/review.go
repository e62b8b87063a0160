package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewAssignment status values. "late" is normally derived at read
// time (due date passed without a terminal status) but remains a legal
// stored value for assignments flagged by hand.
const (
	AssignmentStatusAssigned   = "assigned"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusSubmitted  = "submitted"
	AssignmentStatusDeclined   = "declined"
	AssignmentStatusLate       = "late"
)

// Assignment priority values
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Review recommendation values
const (
	RecommendationAccept        = "accept"
	RecommendationReject        = "reject"
	RecommendationMajorRevision = "major_revision"
	RecommendationMinorRevision = "minor_revision"
)

// ReviewAssignment links a paper to a reviewer. The unique index on
// (paper_id, reviewer_id) is the sole serialization point when two
// editors race to assign the same reviewer.
type ReviewAssignment struct {
	ID                  string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	PaperID             string     `gorm:"column:paper_id;uniqueIndex:uniq_paper_reviewer" json:"paper_id"`
	ReviewerID          string     `gorm:"column:reviewer_id;uniqueIndex:uniq_paper_reviewer" json:"reviewer_id"`
	AssignedBy          string     `gorm:"column:assigned_by" json:"assigned_by"`
	Status              string     `gorm:"column:status" json:"status"`
	Priority            string     `gorm:"column:priority" json:"priority"`
	DueDate             *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	ExpertiseMatchScore *int       `gorm:"column:expertise_match_score" json:"expertise_match_score,omitempty"`
	Notes               *string    `gorm:"column:notes" json:"notes,omitempty"`
	AssignedAt          *time.Time `gorm:"column:assigned_at" json:"assigned_at"`
	UpdateAt            *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Paper    *Paper   `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
	Reviewer *Profile `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// Review is immutable after creation. A reviewer who must revise
// resubmits a new row on the same assignment; the latest by
// submitted_at is the one that counts.
type Review struct {
	ID             string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	AssignmentID   string     `gorm:"column:assignment_id" json:"assignment_id"`
	PaperID        string     `gorm:"column:paper_id" json:"paper_id"`
	ReviewerID     string     `gorm:"column:reviewer_id" json:"reviewer_id"`
	ReviewText     string     `gorm:"column:review_text" json:"review_text"`
	OverallScore   int        `gorm:"column:overall_score" json:"overall_score"`
	Recommendation string     `gorm:"column:recommendation" json:"recommendation"`
	IsAnonymous    bool       `gorm:"column:is_anonymous" json:"is_anonymous"`
	SubmittedAt    *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
}

// ReviewerActivity is an append-only audit trail of reviewer actions.
type ReviewerActivity struct {
	ID           string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	ReviewerID   string     `gorm:"column:reviewer_id" json:"reviewer_id"`
	AssignmentID *string    `gorm:"column:assignment_id" json:"assignment_id,omitempty"`
	Action       string     `gorm:"column:action" json:"action"`
	Details      *string    `gorm:"column:details" json:"details,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (ReviewAssignment) TableName() string {
	return "review_assignments"
}

func (Review) TableName() string {
	return "reviews"
}

func (ReviewerActivity) TableName() string {
	return "reviewer_activity"
}

func (a *ReviewAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (a *ReviewerActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsTerminal reports whether the assignment has reached a final status.
func (a *ReviewAssignment) IsTerminal() bool {
	return a.Status == AssignmentStatusSubmitted || a.Status == AssignmentStatusDeclined
}

// EffectiveStatus derives "late" for overdue assignments that never
// reached a terminal status. The stored status is left untouched.
func (a *ReviewAssignment) EffectiveStatus(now time.Time) string {
	if a.IsTerminal() {
		return a.Status
	}
	if a.DueDate != nil && a.DueDate.Before(now) {
		return AssignmentStatusLate
	}
	return a.Status
}

// ValidRecommendation reports whether r is a known recommendation.
func ValidRecommendation(r string) bool {
	switch r {
	case RecommendationAccept, RecommendationReject, RecommendationMajorRevision, RecommendationMinorRevision:
		return true
	}
	return false
}
