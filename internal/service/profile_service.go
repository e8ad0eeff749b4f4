package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devhub/internal/cache"
	"devhub/internal/models"
	"devhub/internal/repository"
	"devhub/internal/validation"
)

// ProfileService manages developer profiles and their history entries.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// UpsertProfileInput creates or updates the caller's profile. Optional
// fields use pointers so an absent field leaves the stored value untouched
// while an explicit empty string clears it.
type UpsertProfileInput struct {
	UserID         uint
	Status         string               `json:"status"`
	Skills         validation.SkillList `json:"skills"`
	Company        *string              `json:"company"`
	Website        *string              `json:"website"`
	Location       *string              `json:"location"`
	Bio            *string              `json:"bio"`
	GithubUsername *string              `json:"github_username"`
	Social         *SocialInput         `json:"social"`
}

// SocialInput mirrors models.SocialLinks with per-field sparse semantics.
type SocialInput struct {
	Youtube   *string `json:"youtube"`
	Twitter   *string `json:"twitter"`
	Facebook  *string `json:"facebook"`
	Linkedin  *string `json:"linkedin"`
	Instagram *string `json:"instagram"`
}

// apply merges the input into the profile. The same merge serves both the
// create and the update path.
func (in UpsertProfileInput) apply(profile *models.Profile) {
	profile.Status = strings.TrimSpace(in.Status)
	profile.Skills = in.Skills

	setIfPresent(&profile.Company, in.Company)
	setIfPresent(&profile.Website, in.Website)
	setIfPresent(&profile.Location, in.Location)
	setIfPresent(&profile.Bio, in.Bio)
	setIfPresent(&profile.GithubUsername, in.GithubUsername)

	if in.Social != nil {
		setIfPresent(&profile.Social.Youtube, in.Social.Youtube)
		setIfPresent(&profile.Social.Twitter, in.Social.Twitter)
		setIfPresent(&profile.Social.Facebook, in.Social.Facebook)
		setIfPresent(&profile.Social.Linkedin, in.Social.Linkedin)
		setIfPresent(&profile.Social.Instagram, in.Social.Instagram)
	}
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// ExperienceInput is the payload for adding a work history entry.
type ExperienceInput struct {
	UserID      uint
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// EducationInput is the payload for adding a schooling history entry.
type EducationInput struct {
	UserID       uint
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}

// Upsert creates the caller's profile or partially updates the existing one.
// Absent optional fields are left untouched on update and omitted on create.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	var fields []models.FieldError
	if strings.TrimSpace(in.Status) == "" {
		fields = append(fields, models.FieldError{Field: "status", Message: "Status is required"})
	}
	if len(in.Skills) == 0 {
		fields = append(fields, models.FieldError{Field: "skills", Message: "Skills is required"})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldErrors(fields)
	}

	profile := &models.Profile{UserID: in.UserID}
	existing, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	switch {
	case err == nil:
		profile = existing
	case !isNotFound(err):
		return nil, err
	}

	in.apply(profile)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// GetByUser returns the profile belonging to the given user.
func (s *ProfileService) GetByUser(ctx context.Context, userID uint) (*models.Profile, error) {
	return cache.Aside(ctx, cache.ProfileKey(userID), cache.ProfileTTL, func() (*models.Profile, error) {
		return s.profileRepo.GetByUserID(ctx, userID)
	})
}

// List returns all profiles.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return cache.Aside(ctx, cache.ProfilesListKey, cache.ProfileListTTL, func() ([]models.Profile, error) {
		return s.profileRepo.List(ctx)
	})
}

// Delete removes the caller's profile, leaving the account intact.
func (s *ProfileService) Delete(ctx context.Context, userID uint) error {
	return s.profileRepo.Delete(ctx, userID)
}

// AddExperience prepends a work history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, in ExperienceInput) (*models.Profile, error) {
	var fields []models.FieldError
	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, models.FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(in.Company) == "" {
		fields = append(fields, models.FieldError{Field: "company", Message: "Company is required"})
	}
	if in.From.IsZero() {
		fields = append(fields, models.FieldError{Field: "from", Message: "From date is required"})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldErrors(fields)
	}

	exp := &models.Experience{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	return s.profileRepo.AddExperience(ctx, in.UserID, exp)
}

// RemoveExperience deletes one work history entry from the caller's profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	return s.profileRepo.RemoveExperience(ctx, userID, expID)
}

// AddEducation prepends a schooling history entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, in EducationInput) (*models.Profile, error) {
	var fields []models.FieldError
	if strings.TrimSpace(in.School) == "" {
		fields = append(fields, models.FieldError{Field: "school", Message: "School is required"})
	}
	if strings.TrimSpace(in.Degree) == "" {
		fields = append(fields, models.FieldError{Field: "degree", Message: "Degree is required"})
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		fields = append(fields, models.FieldError{Field: "fieldofstudy", Message: "Field of study is required"})
	}
	if in.From.IsZero() {
		fields = append(fields, models.FieldError{Field: "from", Message: "From date is required"})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldErrors(fields)
	}

	edu := &models.Education{
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	return s.profileRepo.AddEducation(ctx, in.UserID, edu)
}

// RemoveEducation deletes one schooling history entry from the caller's profile.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	return s.profileRepo.RemoveEducation(ctx, userID, eduID)
}
