package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Complete",
	"Sleep hours",
	"Sleep quality",
	"Morning mood",
	"Medication taken",
	"Dose",
	"Reason for skipping",
	"Focus",
	"Energy",
	"Rumination",
	"Anxiety",
	"Crash",
	"Overall mood",
	"Day rating",
	"Accomplishments",
	"Challenges",
	"Gratitude",
	"Improvements",
}

type ExportLogReader interface {
	FetchLogsForOptionalRange(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.DailyLog, error)
}

type ExportService struct {
	logs ExportLogReader
}

func NewExportService(logs ExportLogReader) *ExportService {
	return &ExportService{logs: logs}
}

type ExportSummary struct {
	TotalEntries int
	HasData      bool
	DateFrom     string
	DateTo       string
}

type ExportJSONEntry struct {
	Date            string   `json:"date"`
	Complete        bool     `json:"complete"`
	SectionsDone    int      `json:"sections_done"`
	SleepHours      float64  `json:"sleep_hours"`
	SleepQuality    int      `json:"sleep_quality"`
	MorningMood     int      `json:"morning_mood"`
	MedicationTaken bool     `json:"medication_taken"`
	Dose            string   `json:"dose"`
	SkipReason      string   `json:"skip_reason"`
	FocusLevel      int      `json:"focus_level"`
	EnergyLevel     int      `json:"energy_level"`
	RuminationLevel int      `json:"rumination_level"`
	AnxietyLevel    int      `json:"anxiety_level"`
	CrashOccurred   bool     `json:"crash_occurred"`
	OverallMood     int      `json:"overall_mood"`
	DayRating       int      `json:"day_rating"`
	Accomplishments string   `json:"accomplishments"`
	Challenges      string   `json:"challenges"`
	Gratitude       string   `json:"gratitude"`
	Improvements    string   `json:"improvements"`
}

// LoadDataForRange fetches the rows to export. Dates are shifted into
// the requester's timezone so the builders format the civil day the
// user logged, not the day of the stored instant's wall clock.
func (service *ExportService) LoadDataForRange(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.DailyLog, error) {
	logs, err := service.logs.FetchLogsForOptionalRange(userID, from, to, location)
	if err != nil {
		return nil, err
	}
	if location != nil {
		for index := range logs {
			logs[index].Date = logs[index].Date.In(location)
		}
	}
	return logs, nil
}

func (service *ExportService) BuildSummary(logs []models.DailyLog) ExportSummary {
	summary := ExportSummary{TotalEntries: len(logs), HasData: len(logs) > 0}
	if len(logs) > 0 {
		summary.DateFrom = logs[0].Date.Format(DayKeyLayout)
		summary.DateTo = logs[len(logs)-1].Date.Format(DayKeyLayout)
	}
	return summary
}

func (service *ExportService) BuildCSVRows(logs []models.DailyLog) [][]string {
	rows := make([][]string, 0, len(logs))
	for _, entry := range logs {
		rows = append(rows, []string{
			entry.Date.Format(DayKeyLayout),
			strconv.FormatBool(entry.IsComplete),
			fmt.Sprintf("%.1f", entry.SleepHours),
			strconv.Itoa(entry.SleepQuality),
			strconv.Itoa(entry.MorningMood),
			strconv.FormatBool(entry.MedicationTaken),
			entry.Dose,
			entry.ReasonForSkipping,
			strconv.Itoa(entry.FocusLevel),
			strconv.Itoa(entry.EnergyLevel),
			strconv.Itoa(entry.RuminationLevel),
			strconv.Itoa(entry.AnxietyLevel),
			strconv.FormatBool(entry.CrashOccurred),
			strconv.Itoa(entry.OverallMood),
			strconv.Itoa(entry.DayRating),
			entry.Accomplishments,
			entry.Challenges,
			entry.Gratitude,
			entry.Improvements,
		})
	}
	return rows
}

func (service *ExportService) BuildJSONEntries(logs []models.DailyLog) []ExportJSONEntry {
	entries := make([]ExportJSONEntry, 0, len(logs))
	for _, entry := range logs {
		entries = append(entries, ExportJSONEntry{
			Date:            entry.Date.Format(DayKeyLayout),
			Complete:        entry.IsComplete,
			SectionsDone:    entry.CompletedSectionCount(),
			SleepHours:      entry.SleepHours,
			SleepQuality:    entry.SleepQuality,
			MorningMood:     entry.MorningMood,
			MedicationTaken: entry.MedicationTaken,
			Dose:            entry.Dose,
			SkipReason:      entry.ReasonForSkipping,
			FocusLevel:      entry.FocusLevel,
			EnergyLevel:     entry.EnergyLevel,
			RuminationLevel: entry.RuminationLevel,
			AnxietyLevel:    entry.AnxietyLevel,
			CrashOccurred:   entry.CrashOccurred,
			OverallMood:     entry.OverallMood,
			DayRating:       entry.DayRating,
			Accomplishments: entry.Accomplishments,
			Challenges:      entry.Challenges,
			Gratitude:       entry.Gratitude,
			Improvements:    entry.Improvements,
		})
	}
	return entries
}
