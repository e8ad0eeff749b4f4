package service

import (
	"context"
	"testing"
	"time"

	"devhub/internal/models"
	"devhub/internal/repository"
	"devhub/internal/testutil"
	"devhub/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (*ProfileService, uint) {
	t.Helper()
	db := testutil.NewTestDB(t)
	user := &models.User{Name: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	return NewProfileService(repository.NewProfileRepository(db)), user.ID
}

func strPtr(s string) *string { return &s }

func TestProfileService_Upsert(t *testing.T) {
	svc, userID := newProfileService(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, UpsertProfileInput{
		UserID:  userID,
		Status:  "Developer",
		Skills:  validation.SkillList{"go", "rust"},
		Company: strPtr("Acme"),
		Social:  &SocialInput{Twitter: strPtr("https://twitter.com/jane")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Developer", created.Status)
	assert.Equal(t, "Acme", created.Company)
	assert.Equal(t, "https://twitter.com/jane", created.Social.Twitter)

	// Absent optional fields stay untouched on update
	updated, err := svc.Upsert(ctx, UpsertProfileInput{
		UserID: userID,
		Status: "Senior Developer",
		Skills: validation.SkillList{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "https://twitter.com/jane", updated.Social.Twitter)

	// An explicit empty string clears the stored value
	cleared, err := svc.Upsert(ctx, UpsertProfileInput{
		UserID:  userID,
		Status:  "Senior Developer",
		Skills:  validation.SkillList{"go"},
		Company: strPtr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, cleared.Company)
	assert.Equal(t, "https://twitter.com/jane", cleared.Social.Twitter)
}

func TestProfileService_Upsert_Validation(t *testing.T) {
	svc, userID := newProfileService(t)

	_, err := svc.Upsert(context.Background(), UpsertProfileInput{UserID: userID})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Fields, 2)
}

func TestProfileService_Upsert_KeepsHistory(t *testing.T) {
	svc, userID := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, UpsertProfileInput{
		UserID: userID, Status: "Developer", Skills: validation.SkillList{"go"},
	})
	require.NoError(t, err)

	_, err = svc.AddExperience(ctx, ExperienceInput{
		UserID: userID, Title: "Engineer", Company: "Acme", From: time.Now().AddDate(-1, 0, 0),
	})
	require.NoError(t, err)

	updated, err := svc.Upsert(ctx, UpsertProfileInput{
		UserID: userID, Status: "Lead", Skills: validation.SkillList{"go"},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Experience, 1, "history entries survive a profile replace")
}

func TestProfileService_ExperienceValidation(t *testing.T) {
	svc, userID := newProfileService(t)

	_, err := svc.AddExperience(context.Background(), ExperienceInput{UserID: userID})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Fields, 3)
}

func TestProfileService_EducationFlow(t *testing.T) {
	svc, userID := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, UpsertProfileInput{
		UserID: userID, Status: "Student", Skills: validation.SkillList{"go"},
	})
	require.NoError(t, err)

	profile, err := svc.AddEducation(ctx, EducationInput{
		UserID: userID, School: "MIT", Degree: "BSc", FieldOfStudy: "CS",
		From: time.Now().AddDate(-4, 0, 0),
	})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)

	profile, err = svc.RemoveEducation(ctx, userID, profile.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Education)
}

func TestProfileService_DeleteAndList(t *testing.T) {
	svc, userID := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, UpsertProfileInput{
		UserID: userID, Status: "Developer", Skills: validation.SkillList{"go"},
	})
	require.NoError(t, err)

	profiles, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	require.NoError(t, svc.Delete(ctx, userID))

	_, err = svc.GetByUser(ctx, userID)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
