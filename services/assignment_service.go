package services

import (
	"errors"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// AssignmentService creates and owns review assignments: the work items
// linking a paper to a reviewer. Only editors and admins may assign.
type AssignmentService struct {
	db     *gorm.DB
	notify *NotificationService
}

// NewAssignmentService instantiates the service.
func NewAssignmentService(db *gorm.DB) *AssignmentService {
	if db == nil {
		db = config.DB
	}
	return &AssignmentService{db: db, notify: NewNotificationService(db)}
}

// CreateAssignmentInput carries a new reviewer assignment.
type CreateAssignmentInput struct {
	PaperID             string
	ReviewerID          string
	DueDate             *time.Time
	Priority            *string
	ExpertiseMatchScore *int
	Notes               *string
}

// Create inserts a review assignment with status "assigned". A second
// assignment of the same reviewer to the same paper loses against the
// unique (paper_id, reviewer_id) index and surfaces as a duplicate.
func (s *AssignmentService) Create(in *CreateAssignmentInput, actor *models.Profile) (*models.ReviewAssignment, error) {
	if actor.Role != models.RoleEditor && actor.Role != models.RoleAdmin {
		return nil, &ForbiddenError{Reason: "only editors and admins may assign reviewers"}
	}
	if in.PaperID == "" || in.ReviewerID == "" {
		return nil, &ValidationError{Field: "paper_id/reviewer_id", Message: "paper_id and reviewer_id are required"}
	}

	var paper models.Paper
	err := s.db.Where("id = ?", in.PaperID).First(&paper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "paper", ID: in.PaperID}
	}
	if err != nil {
		return nil, err
	}

	var reviewer models.Profile
	err = s.db.Where("id = ? AND delete_at IS NULL", in.ReviewerID).First(&reviewer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "reviewer", ID: in.ReviewerID}
	}
	if err != nil {
		return nil, err
	}

	priority := models.PriorityNormal
	if in.Priority != nil && *in.Priority != "" {
		priority = *in.Priority
	}

	now := time.Now()
	assignment := models.ReviewAssignment{
		PaperID:             in.PaperID,
		ReviewerID:          in.ReviewerID,
		AssignedBy:          actor.ID,
		Status:              models.AssignmentStatusAssigned,
		Priority:            priority,
		DueDate:             in.DueDate,
		ExpertiseMatchScore: in.ExpertiseMatchScore,
		Notes:               in.Notes,
		AssignedAt:          &now,
		UpdateAt:            &now,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Entity: "review assignment", Message: "reviewer is already assigned to this paper"}
		}
		return nil, err
	}

	s.notify.Notify(in.ReviewerID, &actor.ID, models.NotificationReviewAssignment, map[string]interface{}{
		"paper_id": paper.ID,
		"title":    paper.Title,
		"due_date": in.DueDate,
	})

	return &assignment, nil
}

// Candidates lists reviewers eligible for a paper: role reviewer,
// specialty matching the paper's category, not already assigned to it.
func (s *AssignmentService) Candidates(paperID string) ([]models.Profile, error) {
	var paper models.Paper
	err := s.db.Where("id = ?", paperID).First(&paper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "paper", ID: paperID}
	}
	if err != nil {
		return nil, err
	}

	var assignedIDs []string
	if err := s.db.Model(&models.ReviewAssignment{}).
		Where("paper_id = ?", paperID).
		Pluck("reviewer_id", &assignedIDs).Error; err != nil {
		return nil, err
	}

	q := s.db.Where("role = ? AND delete_at IS NULL", models.RoleReviewer)
	if paper.CategoryID != nil && *paper.CategoryID != "" {
		q = q.Where("spec = ?", *paper.CategoryID)
	}
	if len(assignedIDs) > 0 {
		q = q.Where("id NOT IN ?", assignedIDs)
	}

	var candidates []models.Profile
	err = q.Order("full_name ASC").Find(&candidates).Error
	return candidates, err
}

// ReviewerAssignmentView pairs an assignment with the latest manuscript
// version of its paper for the reviewer workspace.
type ReviewerAssignmentView struct {
	models.ReviewAssignment
	LatestVersion *models.PaperVersion `json:"latest_version,omitempty"`
}

// ListForReviewer returns a reviewer's assignments ordered by due date.
// Overdue non-terminal assignments read as "late"; the stored status is
// not rewritten.
func (s *AssignmentService) ListForReviewer(reviewerID string) ([]ReviewerAssignmentView, error) {
	var assignments []models.ReviewAssignment
	err := s.db.Preload("Paper").
		Where("reviewer_id = ?", reviewerID).
		Order("due_date ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	paperIDs := make([]string, 0, len(assignments))
	seen := map[string]bool{}
	for _, a := range assignments {
		if !seen[a.PaperID] {
			seen[a.PaperID] = true
			paperIDs = append(paperIDs, a.PaperID)
		}
	}

	latestByPaper := map[string]models.PaperVersion{}
	if len(paperIDs) > 0 {
		var versions []models.PaperVersion
		if err := s.db.Where("paper_id IN ?", paperIDs).
			Order("version_number DESC").
			Find(&versions).Error; err != nil {
			return nil, err
		}
		for _, v := range versions {
			if _, ok := latestByPaper[v.PaperID]; !ok {
				latestByPaper[v.PaperID] = v
			}
		}
	}

	now := time.Now()
	views := make([]ReviewerAssignmentView, 0, len(assignments))
	for _, a := range assignments {
		a.Status = a.EffectiveStatus(now)
		view := ReviewerAssignmentView{ReviewAssignment: a}
		if v, ok := latestByPaper[a.PaperID]; ok {
			latest := v
			view.LatestVersion = &latest
		}
		views = append(views, view)
	}
	return views, nil
}

// ListForPaper returns every assignment on a paper, for the editorial
// decision panel.
func (s *AssignmentService) ListForPaper(paperID string) ([]models.ReviewAssignment, error) {
	var assignments []models.ReviewAssignment
	err := s.db.Preload("Reviewer").
		Where("paper_id = ?", paperID).
		Order("assigned_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range assignments {
		assignments[i].Status = assignments[i].EffectiveStatus(now)
	}
	return assignments, nil
}
