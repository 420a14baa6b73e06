package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/builddost/builddost-api/internal/constants"
	"github.com/builddost/builddost-api/internal/models"
	"github.com/builddost/builddost-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, profiles and authentication.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the information used to create a user.
// Email and Password are optional; an account without a password cannot log in.
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DisplayName string
}

// Register creates a new user.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	user := &models.User{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		DisplayName: strings.TrimSpace(input.DisplayName),
	}

	if email := normalizeEmail(input.Email); email != "" {
		if !strings.Contains(email, "@") {
			return nil, invalid("email", "must be a valid email address")
		}
		user.Email = &email
	}

	if input.Password != "" {
		if user.Email == nil {
			return nil, invalid("email", "is required when a password is set")
		}
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if user.DisplayName == "" {
		user.DisplayName = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	if err := checkNameLengths(map[string]*string{
		"firstName":   &user.FirstName,
		"lastName":    &user.LastName,
		"displayName": &user.DisplayName,
	}); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// EnsureUser returns the user registered with email, creating it when absent.
func (s *UserService) EnsureUser(email, displayName string) (*models.User, error) {
	email = normalizeEmail(email)
	user, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.Register(RegisterInput{Email: email, DisplayName: displayName})
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *UserService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput holds the profile fields to change.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	DisplayName *string
	AvatarURL   *string
	Bio         *string
	Company     *string
	Location    *string
	Website     *string
}

// UpdateProfile applies a profile edit.
func (s *UserService) UpdateProfile(id string, input UpdateProfileInput) (*models.User, error) {
	if err := checkNameLengths(map[string]*string{
		"firstName":   input.FirstName,
		"lastName":    input.LastName,
		"displayName": input.DisplayName,
		"company":     input.Company,
		"location":    input.Location,
	}); err != nil {
		return nil, err
	}
	if err := optionalText("bio", input.Bio, constants.MaxDescriptionLength); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(id, repository.UserPatch{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
		Bio:         input.Bio,
		Company:     input.Company,
		Location:    input.Location,
		Website:     input.Website,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
