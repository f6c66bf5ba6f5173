package services

import (
	"errors"
	"strings"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user account. The timezone preference is accepted
// as-is when it resolves and stored empty otherwise; every later
// operation resolves it through LocationOrDefault.
func (service *AuthService) Register(email string, password string, timezone string) (models.User, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))

	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	taken, err := service.users.ExistsByNormalizedEmail(normalizedEmail)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	storedTimezone := ""
	if _, err := ResolveLocation(timezone); err == nil {
		storedTimezone = strings.TrimSpace(timezone)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		Timezone:     storedTimezone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies credentials. The failure reason never reveals
// whether the email exists.
func (service *AuthService) Authenticate(email string, password string) (models.User, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))

	user, err := service.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) ChangePassword(user models.User, currentPassword string, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(user.ID, string(passwordHash))
}
