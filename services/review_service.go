package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// ReviewService runs the per-assignment state machine
// (assigned -> in_progress -> submitted, with a decline branch) and
// accepts review submissions against assignments.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService instantiates the service.
func NewReviewService(db *gorm.DB) *ReviewService {
	if db == nil {
		db = config.DB
	}
	return &ReviewService{db: db}
}

// Get loads an assignment and enforces reviewer ownership.
func (s *ReviewService) Get(assignmentID string, actor *models.Profile) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	err := s.db.Preload("Paper").Where("id = ?", assignmentID).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "assignment", ID: assignmentID}
	}
	if err != nil {
		return nil, err
	}
	if assignment.ReviewerID != actor.ID {
		return nil, &ForbiddenError{Reason: "assignment belongs to another reviewer"}
	}
	return &assignment, nil
}

// canTransition encodes the legal stored transitions. "late" is derived
// at read time and never a transition target here.
func canTransition(from, to string) bool {
	switch to {
	case models.AssignmentStatusInProgress:
		return from == models.AssignmentStatusAssigned
	case models.AssignmentStatusDeclined:
		return from == models.AssignmentStatusAssigned || from == models.AssignmentStatusInProgress
	}
	return false
}

// UpdateStatus applies a reviewer-initiated transition (start working
// or decline). Submission goes through SubmitReview.
func (s *ReviewService) UpdateStatus(assignmentID, status string, actor *models.Profile) (*models.ReviewAssignment, error) {
	assignment, err := s.Get(assignmentID, actor)
	if err != nil {
		return nil, err
	}
	if !canTransition(assignment.Status, status) {
		return nil, &ValidationError{
			Field:   "status",
			Message: "cannot move assignment from " + assignment.Status + " to " + status,
		}
	}

	now := time.Now()
	err = s.db.Model(&models.ReviewAssignment{}).Where("id = ?", assignmentID).
		Updates(map[string]interface{}{"status": status, "update_at": now}).Error
	if err != nil {
		return nil, err
	}
	assignment.Status = status
	assignment.UpdateAt = &now
	return assignment, nil
}

// SubmitReviewInput carries a review submission.
type SubmitReviewInput struct {
	ReviewText     string
	OverallScore   int
	Recommendation string
	IsAnonymous    bool
}

// SubmitReviewResult reports the stored review. Warning is set when the
// review committed but the assignment-status bookkeeping failed.
type SubmitReviewResult struct {
	Review  *models.Review `json:"review"`
	Warning string         `json:"warning,omitempty"`
}

// SubmitReview validates and stores a review, then flips the assignment
// to "submitted". The two steps are sequenced and the review is the
// primary artifact: a failure on the status flip keeps the review and
// reports a warning instead of rolling back. The stored reviewer_id
// comes from the assignment row, not from the caller's raw identity.
func (s *ReviewService) SubmitReview(assignmentID string, in *SubmitReviewInput, actor *models.Profile) (*SubmitReviewResult, error) {
	assignment, err := s.Get(assignmentID, actor)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.AssignmentStatusDeclined {
		return nil, &ValidationError{Field: "status", Message: "assignment was declined"}
	}

	text := strings.TrimSpace(in.ReviewText)
	if len(text) < 10 {
		return nil, &ValidationError{Field: "review_text", Message: "review text must be at least 10 characters"}
	}
	if in.OverallScore < 0 || in.OverallScore > 5 {
		return nil, &ValidationError{Field: "overall_score", Message: "overall score must be between 0 and 5"}
	}
	if !models.ValidRecommendation(in.Recommendation) {
		return nil, &ValidationError{Field: "recommendation", Message: "unknown recommendation"}
	}

	now := time.Now()
	review := models.Review{
		AssignmentID:   assignment.ID,
		PaperID:        assignment.PaperID,
		ReviewerID:     assignment.ReviewerID,
		ReviewText:     text,
		OverallScore:   in.OverallScore,
		Recommendation: in.Recommendation,
		IsAnonymous:    in.IsAnonymous,
		SubmittedAt:    &now,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}

	result := &SubmitReviewResult{Review: &review}
	err = s.db.Model(&models.ReviewAssignment{}).Where("id = ?", assignment.ID).
		Updates(map[string]interface{}{"status": models.AssignmentStatusSubmitted, "update_at": now}).Error
	if err != nil {
		log.Printf("assignment %s: status update failed after review %s insert: %v", assignment.ID, review.ID, err)
		result.Warning = "review saved but failed to update assignment status"
	}

	s.logActivity(assignment.ReviewerID, assignment.ID, "submitted_review", map[string]interface{}{
		"paper_id":       assignment.PaperID,
		"overall_score":  in.OverallScore,
		"recommendation": in.Recommendation,
	})

	return result, nil
}

// LatestReview returns the authoritative review for an assignment: the
// newest by submitted_at. Older rows are superseded resubmissions.
func (s *ReviewService) LatestReview(assignmentID string) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC").
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListForPaper returns every review on a paper, newest first, for the
// editorial panel.
func (s *ReviewService) ListForPaper(paperID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("paper_id = ?", paperID).
		Order("submitted_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// logActivity appends to the reviewer audit trail, best effort.
func (s *ReviewService) logActivity(reviewerID, assignmentID, action string, details map[string]interface{}) {
	var raw *string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			str := string(b)
			raw = &str
		}
	}
	now := time.Now()
	row := models.ReviewerActivity{
		ReviewerID:   reviewerID,
		AssignmentID: &assignmentID,
		Action:       action,
		Details:      raw,
		CreateAt:     &now,
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("reviewer activity log failed (reviewer=%s action=%s): %v", reviewerID, action, err)
	}
}

// LogActivity records a reviewer action reported by the client.
func (s *ReviewService) LogActivity(reviewerID string, assignmentID *string, action string, details map[string]interface{}) error {
	if action == "" {
		return &ValidationError{Field: "action", Message: "action is required"}
	}
	var raw *string
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return &ValidationError{Field: "details", Message: "details must be JSON-encodable"}
		}
		str := string(b)
		raw = &str
	}
	now := time.Now()
	row := models.ReviewerActivity{
		ReviewerID:   reviewerID,
		AssignmentID: assignmentID,
		Action:       action,
		Details:      raw,
		CreateAt:     &now,
	}
	return s.db.Create(&row).Error
}
