package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// SubmissionService creates papers and their versions and maintains the
// current_version invariant: papers.current_version always equals the
// highest version_number among the paper's versions.
type SubmissionService struct {
	db *gorm.DB
}

// NewSubmissionService instantiates the service.
func NewSubmissionService(db *gorm.DB) *SubmissionService {
	if db == nil {
		db = config.DB
	}
	return &SubmissionService{db: db}
}

// SubmitPaperInput carries a new manuscript submission.
type SubmitPaperInput struct {
	Title       string
	Abstract    *string
	Keywords    *string
	CategoryID  *string
	StoragePath *string
	FileMime    *string
}

// SubmitPaper creates the paper, its first version when a manuscript
// path was uploaded, and queues the plagiarism check. The check and
// version inserts are best effort: the paper record is the primary
// artifact.
func (s *SubmissionService) SubmitPaper(in *SubmitPaperInput, actor *models.Profile) (*models.Paper, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}

	now := time.Now()
	paper := models.Paper{
		Title:          title,
		Abstract:       in.Abstract,
		Keywords:       in.Keywords,
		CategoryID:     in.CategoryID,
		Status:         models.PaperStatusSubmitted,
		CurrentVersion: 1,
		CreatedBy:      actor.ID,
		CreateAt:       &now,
		UpdateAt:       &now,
	}
	if err := s.db.Create(&paper).Error; err != nil {
		return nil, err
	}

	if in.StoragePath != nil && strings.TrimSpace(*in.StoragePath) != "" {
		mime := "application/pdf"
		if in.FileMime != nil && *in.FileMime != "" {
			mime = *in.FileMime
		}
		version := models.PaperVersion{
			PaperID:       paper.ID,
			VersionNumber: 1,
			FilePath:      strings.TrimSpace(*in.StoragePath),
			FileMime:      mime,
			CreateAt:      &now,
		}
		if err := s.db.Create(&version).Error; err != nil {
			log.Printf("paper %s: first version insert failed: %v", paper.ID, err)
		}
	}

	check := models.PaperCheck{
		PaperID:  paper.ID,
		Type:     "plagiarism",
		Status:   "queued",
		CreateAt: &now,
	}
	if err := s.db.Create(&check).Error; err != nil {
		log.Printf("paper %s: plagiarism check enqueue failed: %v", paper.ID, err)
	}

	return &paper, nil
}

// AddVersionInput carries a revision upload.
type AddVersionInput struct {
	StoragePath string
	FileMime    *string
	Notes       *string
}

// AddVersionResult reports the created version. Warning is set when the
// version committed but the paper's current_version bookkeeping failed.
type AddVersionResult struct {
	Version *models.PaperVersion `json:"version"`
	Warning string               `json:"warning,omitempty"`
}

// AddVersion inserts the next immutable version for a paper and then
// advances papers.current_version. The version insert is authoritative:
// if the follow-up paper update fails the version is kept and the
// failure reported as a warning.
func (s *SubmissionService) AddVersion(paperID string, in *AddVersionInput, actor *models.Profile) (*AddVersionResult, error) {
	path := strings.TrimSpace(in.StoragePath)
	if path == "" {
		return nil, &ValidationError{Field: "storage_path", Message: "storage_path is required"}
	}

	paper, err := s.GetPaper(paperID)
	if err != nil {
		return nil, err
	}
	if paper.CreatedBy != actor.ID && actor.Role != models.RoleEditor && actor.Role != models.RoleAdmin {
		return nil, &ForbiddenError{Reason: "only the submitting author or an editor may add versions"}
	}

	// highest existing version, not the cached current_version
	var latest models.PaperVersion
	next := 1
	err = s.db.Where("paper_id = ?", paperID).
		Order("version_number DESC").
		First(&latest).Error
	if err == nil {
		next = latest.VersionNumber + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	mime := "application/pdf"
	if in.FileMime != nil && *in.FileMime != "" {
		mime = *in.FileMime
	}
	now := time.Now()
	version := models.PaperVersion{
		PaperID:       paperID,
		VersionNumber: next,
		FilePath:      path,
		FileMime:      mime,
		Notes:         in.Notes,
		CreateAt:      &now,
	}
	if err := s.db.Create(&version).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Entity: "paper version", Message: "version number already taken, retry"}
		}
		return nil, err
	}

	result := &AddVersionResult{Version: &version}
	err = s.db.Model(&models.Paper{}).Where("id = ?", paperID).
		Updates(map[string]interface{}{"current_version": next, "update_at": now}).Error
	if err != nil {
		log.Printf("paper %s: current_version update failed after version %d insert: %v", paperID, next, err)
		result.Warning = "version saved but failed to update paper current_version"
	}
	return result, nil
}

// GetPaper loads a paper by id.
func (s *SubmissionService) GetPaper(paperID string) (*models.Paper, error) {
	var paper models.Paper
	err := s.db.Where("id = ?", paperID).First(&paper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "paper", ID: paperID}
	}
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// ListPapers returns the actor's own submissions, or every paper for
// editors and admins.
func (s *SubmissionService) ListPapers(actor *models.Profile) ([]models.Paper, error) {
	q := s.db.Order("create_at DESC")
	if actor.Role != models.RoleEditor && actor.Role != models.RoleAdmin {
		q = q.Where("created_by = ?", actor.ID)
	}
	var papers []models.Paper
	err := q.Find(&papers).Error
	return papers, err
}

// ListVersions returns a paper's versions, newest first.
func (s *SubmissionService) ListVersions(paperID string) ([]models.PaperVersion, error) {
	var versions []models.PaperVersion
	err := s.db.Where("paper_id = ?", paperID).
		Order("version_number DESC").
		Find(&versions).Error
	return versions, err
}

// LatestVersion returns the newest version for a paper, or nil when the
// paper has no uploaded manuscript yet.
func (s *SubmissionService) LatestVersion(paperID string) (*models.PaperVersion, error) {
	var version models.PaperVersion
	err := s.db.Where("paper_id = ?", paperID).
		Order("version_number DESC").
		First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// ListPublished returns published papers for the public archive.
func (s *SubmissionService) ListPublished() ([]models.Paper, error) {
	var papers []models.Paper
	err := s.db.Where("status = ?", models.PaperStatusPublished).
		Order("published_date DESC").
		Find(&papers).Error
	return papers, err
}
