// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"

	"devhub/internal/auth"
	"devhub/internal/models"
	"devhub/internal/repository"
	"devhub/internal/validation"
)

// UserService handles registration, authentication and account lifecycle.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the payload for authenticating an existing account.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// Register creates an account and returns the user with a signed token.
// The email is checked first so duplicate registrations report the account,
// not the display name, as taken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if fields := validation.ValidateRegistration(name, email, in.Password); len(fields) > 0 {
		return nil, "", models.NewFieldErrors(fields)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.NewConflictError("User already exists")
	}

	existing, err = s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.NewConflictError("Name already taken")
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Avatar:   gravatarURL(email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Authenticate verifies credentials and returns the user with a signed token.
// Unknown email and wrong password produce the same error.
func (s *UserService) Authenticate(ctx context.Context, in LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, "", models.NewFieldErrors([]models.FieldError{
			{Field: "email", Message: "Please include a valid email"},
			{Field: "password", Message: "Password is required"},
		})
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !auth.CheckPassword(in.Password, user.Password) {
		return nil, "", models.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// GetByID returns the user for the given ID.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteAccount removes the user, their profile and their posts.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.DeleteAccount(ctx, userID)
}

// gravatarURL builds the Gravatar URL for an email: 200px, PG-rated, with the
// "mystery man" fallback for addresses without a Gravatar account.
func gravatarURL(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", "200")
	q.Set("r", "pg")
	q.Set("d", "mm")
	return fmt.Sprintf("https://gravatar.com/avatar/%x?%s", hash, q.Encode())
}
