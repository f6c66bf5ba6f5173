package models

import "time"

const (
	RatingMin = 0
	RatingMax = 10
)

// DailyLog is the single record a user fills over the course of one
// calendar day in their own timezone. Each of the five sections arrives
// from its own form and only touches its own fields.
type DailyLog struct {
	ID      uint      `gorm:"primaryKey"`
	UserID  uint      `gorm:"not null;uniqueIndex:uidx_user_date"`
	Date    time.Time `gorm:"not null;uniqueIndex:uidx_user_date"`
	Version uint      `gorm:"not null;default:0"`

	// Morning
	SleepHours       float64
	SleepQuality     int
	DreamNotes       string
	MorningMood      int
	PhysicalStatus   string
	Breakfast        string
	MorningCompleted bool `gorm:"not null;default:false"`

	// Medication. Exactly one branch is populated: the taken branch
	// (taken-at, dose, ate-within-hour, first-hour feeling) or the
	// skipped branch (reason for skipping).
	MedicationTaken     bool `gorm:"not null;default:false"`
	MedicationTakenAt   *time.Time
	Dose                string
	AteWithinHour       bool `gorm:"not null;default:false"`
	FirstHourFeeling    string
	ReasonForSkipping   string
	MedicationCompleted bool `gorm:"not null;default:false"`

	// Midday
	Lunch           string
	FocusLevel      int
	EnergyLevel     int
	RuminationLevel int
	MiddayActivity  string
	Distractions    string
	EmotionalEvent  string
	CopingStrategy  string
	MiddayCompleted bool `gorm:"not null;default:false"`

	// Afternoon
	AfternoonSnack        string
	CrashOccurred         bool `gorm:"not null;default:false"`
	CrashSymptoms         string
	AnxietyLevel          int
	AfternoonFeeling      string
	TriggeringInteraction bool `gorm:"not null;default:false"`
	TriggerDetails        string
	SelfWorthRating       int
	OverextensionRating   int
	AfternoonCompleted    bool `gorm:"not null;default:false"`

	// Evening
	Dinner               string
	OverallMood          int
	Sleepiness           int
	MedicationReflection string
	HelpfulFactors       string
	DistractingFactors   string
	ThoughtForTomorrow   string
	MetPhysicalGoals     bool `gorm:"not null;default:false"`
	MetMentalGoals       bool `gorm:"not null;default:false"`
	EveningCompleted     bool `gorm:"not null;default:false"`

	// Aggregates. IsComplete is derived from the five section flags and
	// is only ever written by the completion evaluator.
	IsComplete      bool `gorm:"not null;default:false"`
	DayRating       int
	Accomplishments string
	Challenges      string
	Gratitude       string
	Improvements    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SectionFlags returns the five completion flags in fixed section order
// (morning, medication, midday, afternoon, evening).
func (entry DailyLog) SectionFlags() [5]bool {
	return [5]bool{
		entry.MorningCompleted,
		entry.MedicationCompleted,
		entry.MiddayCompleted,
		entry.AfternoonCompleted,
		entry.EveningCompleted,
	}
}

// CompletedSectionCount counts sections submitted at least once.
func (entry DailyLog) CompletedSectionCount() int {
	count := 0
	for _, flag := range entry.SectionFlags() {
		if flag {
			count++
		}
	}
	return count
}
