package services

import (
	"time"

	"github.com/nwestbury/pulselog/internal/models"
)

type SummaryLogReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error)
}

type SummaryService struct {
	logs SummaryLogReader
}

func NewSummaryService(logs SummaryLogReader) *SummaryService {
	return &SummaryService{logs: logs}
}

// WeeklySummary is the rollup behind the weekly reflection view: the
// seven civil days ending on the anchor day, in the user's timezone.
type WeeklySummary struct {
	From                string  `json:"from"`
	To                  string  `json:"to"`
	DaysLogged          int     `json:"days_logged"`
	DaysCompleted       int     `json:"days_completed"`
	MedicationTakenDays int     `json:"medication_taken_days"`
	AvgSleepHours       float64 `json:"avg_sleep_hours"`
	AvgMorningMood      float64 `json:"avg_morning_mood"`
	AvgOverallMood      float64 `json:"avg_overall_mood"`
	AvgAnxietyLevel     float64 `json:"avg_anxiety_level"`
	AvgDayRating        float64 `json:"avg_day_rating"`
}

func (service *SummaryService) BuildWeeklySummary(userID uint, anchor time.Time, location *time.Location) (WeeklySummary, error) {
	anchorStart, anchorEnd := DayRange(anchor, location)
	fromStart := anchorStart.AddDate(0, 0, -6)

	logs, err := service.logs.ListByUserRange(userID, &fromStart, &anchorEnd)
	if err != nil {
		return WeeklySummary{}, err
	}

	summary := WeeklySummary{
		From:       fromStart.Format(DayKeyLayout),
		To:         anchorStart.Format(DayKeyLayout),
		DaysLogged: len(logs),
	}

	var sleepSum, morningMoodSum, overallMoodSum, anxietySum, ratingSum float64
	sleepCount, morningMoodCount, overallMoodCount, anxietyCount, ratingCount := 0, 0, 0, 0, 0
	for _, entry := range logs {
		if entry.IsComplete {
			summary.DaysCompleted++
		}
		if entry.MedicationCompleted && entry.MedicationTaken {
			summary.MedicationTakenDays++
		}
		if entry.MorningCompleted {
			sleepSum += entry.SleepHours
			sleepCount++
			morningMoodSum += float64(entry.MorningMood)
			morningMoodCount++
		}
		if entry.AfternoonCompleted {
			anxietySum += float64(entry.AnxietyLevel)
			anxietyCount++
		}
		if entry.EveningCompleted {
			overallMoodSum += float64(entry.OverallMood)
			overallMoodCount++
		}
		if entry.DayRating > 0 {
			ratingSum += float64(entry.DayRating)
			ratingCount++
		}
	}

	summary.AvgSleepHours = average(sleepSum, sleepCount)
	summary.AvgMorningMood = average(morningMoodSum, morningMoodCount)
	summary.AvgOverallMood = average(overallMoodSum, overallMoodCount)
	summary.AvgAnxietyLevel = average(anxietySum, anxietyCount)
	summary.AvgDayRating = average(ratingSum, ratingCount)
	return summary, nil
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
