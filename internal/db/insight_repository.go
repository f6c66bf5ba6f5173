package db

import (
	"github.com/nwestbury/pulselog/internal/models"
	"gorm.io/gorm"
)

type InsightRepository struct {
	database *gorm.DB
}

func NewInsightRepository(database *gorm.DB) *InsightRepository {
	return &InsightRepository{database: database}
}

func (repo *InsightRepository) FindByDailyLogID(userID uint, logID uint) (models.Insight, bool, error) {
	insight := models.Insight{}
	result := repo.database.
		Where("user_id = ? AND daily_log_id = ?", userID, logID).
		Limit(1).
		Find(&insight)
	if result.Error != nil {
		return models.Insight{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Insight{}, false, nil
	}
	return insight, true, nil
}

func (repo *InsightRepository) ListByUser(userID uint) ([]models.Insight, error) {
	insights := make([]models.Insight, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("generated_at DESC, id DESC").Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

// Upsert keeps at most one insight per log, replacing the content when
// the user regenerates.
func (repo *InsightRepository) Upsert(insight *models.Insight) error {
	existing := models.Insight{}
	result := repo.database.
		Where("user_id = ? AND daily_log_id = ?", insight.UserID, insight.DailyLogID).
		Limit(1).
		Find(&existing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.database.Create(insight).Error
	}

	insight.ID = existing.ID
	insight.CreatedAt = existing.CreatedAt
	return repo.database.Save(insight).Error
}
