package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
	"github.com/nwestbury/pulselog/internal/services"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

// FindByID loads a log only when it belongs to the given user. A log
// owned by someone else is reported exactly like a missing one.
func (repo *DailyLogRepository) FindByID(userID uint, logID uint) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.
		Where("id = ? AND user_id = ?", logID, userID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) ListByUser(userID uint) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	query := repo.database.Model(&models.DailyLog{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) ListRecent(userID uint, limit int) ([]models.DailyLog, error) {
	query := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) Create(entry *models.DailyLog) error {
	if err := repo.database.Create(entry).Error; err != nil {
		if IsDuplicateKey(err) {
			return fmt.Errorf("%w: user %d date %s", services.ErrDuplicateDayLog, entry.UserID, entry.Date.Format("2006-01-02"))
		}
		return err
	}
	return nil
}

// SaveVersioned writes back a previously-fetched log guarded by its
// version counter. It reports false when another write landed in
// between; the caller re-reads and re-applies.
func (repo *DailyLogRepository) SaveVersioned(entry *models.DailyLog) (bool, error) {
	fetchedVersion := entry.Version
	entry.Version = fetchedVersion + 1

	result := repo.database.
		Model(&models.DailyLog{}).
		Where("id = ? AND version = ?", entry.ID, fetchedVersion).
		Select("*").
		Omit("id", "user_id", "date", "created_at").
		Updates(entry)
	if result.Error != nil {
		entry.Version = fetchedVersion
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		entry.Version = fetchedVersion
		return false, nil
	}
	return true, nil
}

// DeleteWithInsights removes the log and any insight derived from it.
// It reports false when no owned log matched.
func (repo *DailyLogRepository) DeleteWithInsights(userID uint, logID uint) (bool, error) {
	deleted := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND daily_log_id = ?", userID, logID).Delete(&models.Insight{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", logID, userID).Delete(&models.DailyLog{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// IsDuplicateKey reports whether err came from the unique (user_id,
// date) index rejecting a second log for the same day.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
