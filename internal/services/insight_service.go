package services

import (
	"errors"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
)

var (
	ErrInsightNotFound = errors.New("insight not found")
	// ErrLogIncomplete refuses insight generation before all five
	// sections are in. Generation can be forced, with the caveat that
	// opinion quality on partial data is undefined.
	ErrLogIncomplete = errors.New("daily log not complete")
)

// InsightGenerator is the boundary to the opinion writer. The engine
// treats it as a black box from a record to a text.
type InsightGenerator interface {
	Generate(entry models.DailyLog) (string, error)
}

type InsightLogReader interface {
	FindByID(userID uint, logID uint) (models.DailyLog, bool, error)
}

type InsightStore interface {
	FindByDailyLogID(userID uint, logID uint) (models.Insight, bool, error)
	ListByUser(userID uint) ([]models.Insight, error)
	Upsert(insight *models.Insight) error
}

type InsightService struct {
	logs      InsightLogReader
	insights  InsightStore
	generator InsightGenerator
}

func NewInsightService(logs InsightLogReader, insights InsightStore, generator InsightGenerator) *InsightService {
	return &InsightService{
		logs:      logs,
		insights:  insights,
		generator: generator,
	}
}

// GenerateForLog produces (or regenerates) the insight for one log.
// Generation only ever runs on demand, never as a side effect of a
// section merge.
func (service *InsightService) GenerateForLog(userID uint, logID uint, force bool, now time.Time) (models.Insight, error) {
	entry, found, err := service.logs.FindByID(userID, logID)
	if err != nil {
		return models.Insight{}, err
	}
	if !found {
		return models.Insight{}, ErrLogNotFound
	}
	if !entry.IsComplete && !force {
		return models.Insight{}, ErrLogIncomplete
	}

	content, err := service.generator.Generate(entry)
	if err != nil {
		return models.Insight{}, err
	}

	insight := models.Insight{
		UserID:      userID,
		DailyLogID:  entry.ID,
		Content:     content,
		GeneratedAt: now.UTC(),
	}
	if err := service.insights.Upsert(&insight); err != nil {
		return models.Insight{}, err
	}
	return insight, nil
}

func (service *InsightService) FetchForLog(userID uint, logID uint) (models.Insight, error) {
	insight, found, err := service.insights.FindByDailyLogID(userID, logID)
	if err != nil {
		return models.Insight{}, err
	}
	if !found {
		return models.Insight{}, ErrInsightNotFound
	}
	return insight, nil
}

func (service *InsightService) ListForUser(userID uint) ([]models.Insight, error) {
	return service.insights.ListByUser(userID)
}
