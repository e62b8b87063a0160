package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"
	"journal-management-api/utils"

	"gorm.io/gorm"
)

// IssueService groups accepted papers into issues and performs the bulk
// status flip that makes them publicly visible.
type IssueService struct {
	db *gorm.DB
}

// NewIssueService instantiates the service.
func NewIssueService(db *gorm.DB) *IssueService {
	if db == nil {
		db = config.DB
	}
	return &IssueService{db: db}
}

func requireEditor(actor *models.Profile) error {
	if actor.Role != models.RoleEditor && actor.Role != models.RoleAdmin {
		return &ForbiddenError{Reason: "only editors and admins may manage issues"}
	}
	return nil
}

// CreateIssueInput carries a new issue.
type CreateIssueInput struct {
	Title                string
	Slug                 string
	Volume               *int
	Number               *int
	Description          *string
	ScheduledReleaseDate *time.Time
}

// Create inserts an unpublished issue. The slug derives from the title
// when not given.
func (s *IssueService) Create(in *CreateIssueInput, actor *models.Profile) (*models.Issue, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = utils.Slugify(title)
	}

	now := time.Now()
	issue := models.Issue{
		Title:                title,
		Slug:                 slug,
		Volume:               in.Volume,
		Number:               in.Number,
		Description:          in.Description,
		ScheduledReleaseDate: in.ScheduledReleaseDate,
		CreateAt:             &now,
		UpdateAt:             &now,
	}
	if err := s.db.Create(&issue).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Entity: "issue", Message: "issue slug already in use"}
		}
		return nil, err
	}
	return &issue, nil
}

// Get loads an issue by id.
func (s *IssueService) Get(issueID string) (*models.Issue, error) {
	var issue models.Issue
	err := s.db.Where("id = ?", issueID).First(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "issue", ID: issueID}
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// List returns issues, newest first. Unpublished issues are only
// visible to editors and admins.
func (s *IssueService) List(actor *models.Profile) ([]models.Issue, error) {
	q := s.db.Order("create_at DESC")
	if actor == nil || (actor.Role != models.RoleEditor && actor.Role != models.RoleAdmin) {
		q = q.Where("published = ?", true)
	}
	var issues []models.Issue
	err := q.Find(&issues).Error
	return issues, err
}

// AddPaper links a paper to an issue at position max+1. Positions are
// never reused, even after removals. Duplicates are rejected.
func (s *IssueService) AddPaper(issueID, paperID string, actor *models.Profile) (*models.IssuePaper, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}
	if paperID == "" {
		return nil, &ValidationError{Field: "paper_id", Message: "paper_id is required"}
	}

	var paper models.Paper
	err := s.db.Where("id = ?", paperID).First(&paper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "paper", ID: paperID}
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.Get(issueID); err != nil {
		return nil, err
	}

	var maxPosition int
	err = s.db.Model(&models.IssuePaper{}).
		Where("issue_id = ?", issueID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	link := models.IssuePaper{
		IssueID:  issueID,
		PaperID:  paperID,
		Position: maxPosition + 1,
		CreateAt: &now,
	}
	if err := s.db.Create(&link).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Entity: "issue paper", Message: "paper already added to this issue"}
		}
		return nil, err
	}
	return &link, nil
}

// PublishResult reports the outcome of a publish call.
type PublishResult struct {
	Issue            *models.Issue `json:"issue"`
	UpdatedPaperIDs  []string      `json:"updated_paper_ids"`
	AlreadyPublished bool          `json:"already_published,omitempty"`
}

// Publish flips the issue to published and bulk-publishes its linked
// papers, strictly in that order. Publishing an already-published issue
// is a no-op. If the paper update fails after the issue flip committed,
// the flip is rolled back best-effort and the failure reported; no
// partial subset of the bulk update is undone.
func (s *IssueService) Publish(issueID string, actor *models.Profile) (*PublishResult, error) {
	if err := requireEditor(actor); err != nil {
		return nil, err
	}

	issue, err := s.Get(issueID)
	if err != nil {
		return nil, err
	}
	if issue.Published {
		return &PublishResult{Issue: issue, AlreadyPublished: true}, nil
	}

	var paperIDs []string
	if err := s.db.Model(&models.IssuePaper{}).
		Where("issue_id = ?", issueID).
		Pluck("paper_id", &paperIDs).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Model(&models.Issue{}).Where("id = ?", issueID).
		Updates(map[string]interface{}{"published": true, "published_at": now, "update_at": now}).Error
	if err != nil {
		return nil, err
	}

	if len(paperIDs) > 0 {
		err = s.db.Model(&models.Paper{}).Where("id IN ?", paperIDs).
			Updates(map[string]interface{}{
				"status":         models.PaperStatusPublished,
				"published_date": now,
				"update_at":      now,
			}).Error
		if err != nil {
			// best-effort rollback of the issue flip; the bulk paper
			// update is assumed atomic at the storage layer
			rbErr := s.db.Model(&models.Issue{}).Where("id = ?", issueID).
				Updates(map[string]interface{}{"published": false, "published_at": nil}).Error
			if rbErr != nil {
				log.Printf("issue %s: rollback after failed paper publish also failed: %v", issueID, rbErr)
			}
			return nil, &DependencyFailureError{Step: "publish linked papers", Err: err}
		}
	}

	issue.Published = true
	issue.PublishedAt = &now
	issue.UpdateAt = &now
	return &PublishResult{Issue: issue, UpdatedPaperIDs: paperIDs}, nil
}

// Candidates lists accepted or published papers not yet linked to the
// issue.
func (s *IssueService) Candidates(issueID string) ([]models.Paper, error) {
	if _, err := s.Get(issueID); err != nil {
		return nil, err
	}

	var linkedIDs []string
	if err := s.db.Model(&models.IssuePaper{}).
		Where("issue_id = ?", issueID).
		Pluck("paper_id", &linkedIDs).Error; err != nil {
		return nil, err
	}

	q := s.db.Where("status IN ?", []string{models.PaperStatusAccepted, models.PaperStatusPublished})
	if len(linkedIDs) > 0 {
		q = q.Where("id NOT IN ?", linkedIDs)
	}

	var papers []models.Paper
	err := q.Order("create_at DESC").Find(&papers).Error
	return papers, err
}

// Papers returns the issue's papers in position order.
func (s *IssueService) Papers(issueID string) ([]models.IssuePaper, error) {
	if _, err := s.Get(issueID); err != nil {
		return nil, err
	}
	var links []models.IssuePaper
	err := s.db.Preload("Paper").
		Where("issue_id = ?", issueID).
		Order("position ASC").
		Find(&links).Error
	return links, err
}
