package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrSettingsPasswordInvalid = errors.New("settings password invalid")

type SettingsUserRepository interface {
	UpdateProfile(userID uint, updates map[string]any) error
	DeleteAccountAndRelatedData(userID uint) error
}

type SettingsService struct {
	users SettingsUserRepository
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users}
}

// UpdateTimezone validates the IANA name before persisting it so a
// typo cannot poison every later day lookup.
func (service *SettingsService) UpdateTimezone(userID uint, timezone string) error {
	trimmed := strings.TrimSpace(timezone)
	if _, err := ResolveLocation(trimmed); err != nil {
		return err
	}
	return service.users.UpdateProfile(userID, map[string]any{"timezone": trimmed})
}

func (service *SettingsService) UpdateDisplayName(userID uint, displayName string) error {
	return service.users.UpdateProfile(userID, map[string]any{"display_name": strings.TrimSpace(displayName)})
}

// DeleteAccount removes the user together with all logs and insights
// after re-checking the password.
func (service *SettingsService) DeleteAccount(userID uint, passwordHash string, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrSettingsPasswordInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrSettingsPasswordInvalid
	}
	return service.users.DeleteAccountAndRelatedData(userID)
}
