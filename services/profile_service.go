package services

import (
	"errors"
	"strings"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileService resolves authenticated subjects to durable journal
// profiles and owns profile lifecycle (create at first login, self
// service updates, soft delete only).
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService instantiates the service.
func NewProfileService(db *gorm.DB) *ProfileService {
	if db == nil {
		db = config.DB
	}
	return &ProfileService{db: db}
}

// RegisterInput carries the self-registration form.
type RegisterInput struct {
	Email    string
	Password string // already hashed by the caller
	FullName string
	Role     string
	Spec     *string
}

// Register creates a profile for a locally-authenticated user. The
// auth_id doubles as the subject identifier for password accounts.
func (s *ProfileService) Register(in *RegisterInput) (*models.Profile, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, &ValidationError{Field: "email", Message: "email is required"}
	}
	if in.Password == "" {
		return nil, &ValidationError{Field: "password", Message: "password is required"}
	}

	role := in.Role
	if role == "" {
		role = models.RoleAuthor
	}
	if !models.ValidRole(role) {
		return nil, &ValidationError{Field: "role", Message: "unknown role"}
	}

	now := time.Now()
	profile := models.Profile{
		AuthID:   uuid.NewString(),
		Email:    email,
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
		Role:     role,
		Spec:     in.Spec,
		CreateAt: &now,
		UpdateAt: &now,
	}

	if err := s.db.Create(&profile).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Entity: "profile", Message: "email already registered"}
		}
		return nil, err
	}
	return &profile, nil
}

// ByAuthID maps an external subject identifier to its profile.
func (s *ProfileService) ByAuthID(authID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("auth_id = ? AND delete_at IS NULL", authID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "profile"}
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ByID loads a live profile by primary key.
func (s *ProfileService) ByID(id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("id = ? AND delete_at IS NULL", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "profile", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ByEmail loads a live profile by email, used by the login flow.
func (s *ProfileService) ByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("email = ? AND delete_at IS NULL", strings.TrimSpace(strings.ToLower(email))).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "profile"}
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// EnsureProfile provisions a profile at first login for subjects
// arriving from an external identity provider. Existing profiles are
// returned untouched.
func (s *ProfileService) EnsureProfile(authID, email, fullName string) (*models.Profile, error) {
	if authID == "" {
		return nil, &ValidationError{Field: "auth_id", Message: "auth id is required"}
	}

	profile, err := s.ByAuthID(authID)
	if err == nil {
		return profile, nil
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	now := time.Now()
	created := models.Profile{
		AuthID:   authID,
		Email:    strings.TrimSpace(strings.ToLower(email)),
		FullName: strings.TrimSpace(fullName),
		Role:     models.RoleAuthor,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := s.db.Create(&created).Error; err != nil {
		if isDuplicateKey(err) {
			// lost a first-login race; the winner's row is authoritative
			return s.ByAuthID(authID)
		}
		return nil, err
	}
	return &created, nil
}

// SettingsInput carries the self-service settings form. Nil fields are
// left unchanged.
type SettingsInput struct {
	FullName    *string
	Affiliation *string
	Spec        *string
}

// UpdateSettings applies self-service profile changes.
func (s *ProfileService) UpdateSettings(id string, in *SettingsInput) (*models.Profile, error) {
	profile, err := s.ByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Affiliation != nil {
		updates["affiliation"] = *in.Affiliation
	}
	if in.Spec != nil {
		updates["spec"] = *in.Spec
	}
	if len(updates) == 0 {
		return profile, nil
	}
	updates["update_at"] = time.Now()

	if err := s.db.Model(&models.Profile{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.ByID(id)
}
