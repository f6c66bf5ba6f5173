package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
)

var (
	ErrInvalidSection   = errors.New("invalid section")
	ErrRatingOutOfRange = errors.New("rating out of range")
)

// Section names the five fixed time-boxed forms composing a daily log.
type Section string

const (
	SectionMorning    Section = "morning"
	SectionMedication Section = "medication"
	SectionMidday     Section = "midday"
	SectionAfternoon  Section = "afternoon"
	SectionEvening    Section = "evening"
)

// SectionOrder lists the sections in their in-day order. Submissions
// may still arrive in any order.
var SectionOrder = [5]Section{
	SectionMorning,
	SectionMedication,
	SectionMidday,
	SectionAfternoon,
	SectionEvening,
}

func ParseSection(raw string) (Section, error) {
	section := Section(raw)
	for _, known := range SectionOrder {
		if section == known {
			return section, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSection, raw)
}

// SectionPayload is a partial update for exactly one section. Nil
// fields were absent from the submission and keep their stored value;
// applying a payload always marks its section complete, and a section
// never returns to incomplete once submitted.
type SectionPayload interface {
	Section() Section
	apply(entry *models.DailyLog)
}

type MorningPayload struct {
	SleepHours     *float64
	SleepQuality   *int
	DreamNotes     *string
	Mood           *int
	PhysicalStatus *string
	Breakfast      *string
}

func (MorningPayload) Section() Section { return SectionMorning }

func (payload MorningPayload) apply(entry *models.DailyLog) {
	setFloat(&entry.SleepHours, payload.SleepHours)
	setInt(&entry.SleepQuality, payload.SleepQuality)
	setString(&entry.DreamNotes, payload.DreamNotes)
	setInt(&entry.MorningMood, payload.Mood)
	setString(&entry.PhysicalStatus, payload.PhysicalStatus)
	setString(&entry.Breakfast, payload.Breakfast)
	entry.MorningCompleted = true
}

type MedicationPayload struct {
	Taken             *bool
	TakenAt           *time.Time
	Dose              *string
	AteWithinHour     *bool
	FirstHourFeeling  *string
	ReasonForSkipping *string
}

func (MedicationPayload) Section() Section { return SectionMedication }

// apply stores exactly one medication branch. The unused branch is
// reset to defaults so a later "not taken" day cannot carry a stale
// dose from an earlier "taken" day, and vice versa.
func (payload MedicationPayload) apply(entry *models.DailyLog) {
	setBool(&entry.MedicationTaken, payload.Taken)

	if entry.MedicationTaken {
		if payload.TakenAt != nil {
			takenAt := *payload.TakenAt
			entry.MedicationTakenAt = &takenAt
		}
		setString(&entry.Dose, payload.Dose)
		setBool(&entry.AteWithinHour, payload.AteWithinHour)
		setString(&entry.FirstHourFeeling, payload.FirstHourFeeling)
		entry.ReasonForSkipping = ""
	} else {
		setString(&entry.ReasonForSkipping, payload.ReasonForSkipping)
		entry.MedicationTakenAt = nil
		entry.Dose = ""
		entry.AteWithinHour = false
		entry.FirstHourFeeling = ""
	}
	entry.MedicationCompleted = true
}

type MiddayPayload struct {
	Lunch           *string
	FocusLevel      *int
	EnergyLevel     *int
	RuminationLevel *int
	Activity        *string
	Distractions    *string
	EmotionalEvent  *string
	CopingStrategy  *string
}

func (MiddayPayload) Section() Section { return SectionMidday }

func (payload MiddayPayload) apply(entry *models.DailyLog) {
	setString(&entry.Lunch, payload.Lunch)
	setInt(&entry.FocusLevel, payload.FocusLevel)
	setInt(&entry.EnergyLevel, payload.EnergyLevel)
	setInt(&entry.RuminationLevel, payload.RuminationLevel)
	setString(&entry.MiddayActivity, payload.Activity)
	setString(&entry.Distractions, payload.Distractions)
	setString(&entry.EmotionalEvent, payload.EmotionalEvent)
	setString(&entry.CopingStrategy, payload.CopingStrategy)
	entry.MiddayCompleted = true
}

type AfternoonPayload struct {
	Snack                 *string
	CrashOccurred         *bool
	CrashSymptoms         *string
	AnxietyLevel          *int
	Feeling               *string
	TriggeringInteraction *bool
	TriggerDetails        *string
	SelfWorthRating       *int
	OverextensionRating   *int
}

func (AfternoonPayload) Section() Section { return SectionAfternoon }

func (payload AfternoonPayload) apply(entry *models.DailyLog) {
	setString(&entry.AfternoonSnack, payload.Snack)
	setBool(&entry.CrashOccurred, payload.CrashOccurred)
	setString(&entry.CrashSymptoms, payload.CrashSymptoms)
	setInt(&entry.AnxietyLevel, payload.AnxietyLevel)
	setString(&entry.AfternoonFeeling, payload.Feeling)
	setBool(&entry.TriggeringInteraction, payload.TriggeringInteraction)
	setString(&entry.TriggerDetails, payload.TriggerDetails)
	setInt(&entry.SelfWorthRating, payload.SelfWorthRating)
	setInt(&entry.OverextensionRating, payload.OverextensionRating)
	entry.AfternoonCompleted = true
}

type EveningPayload struct {
	Dinner               *string
	OverallMood          *int
	Sleepiness           *int
	MedicationReflection *string
	HelpfulFactors       *string
	DistractingFactors   *string
	ThoughtForTomorrow   *string
	MetPhysicalGoals     *bool
	MetMentalGoals       *bool
}

func (EveningPayload) Section() Section { return SectionEvening }

func (payload EveningPayload) apply(entry *models.DailyLog) {
	setString(&entry.Dinner, payload.Dinner)
	setInt(&entry.OverallMood, payload.OverallMood)
	setInt(&entry.Sleepiness, payload.Sleepiness)
	setString(&entry.MedicationReflection, payload.MedicationReflection)
	setString(&entry.HelpfulFactors, payload.HelpfulFactors)
	setString(&entry.DistractingFactors, payload.DistractingFactors)
	setString(&entry.ThoughtForTomorrow, payload.ThoughtForTomorrow)
	setBool(&entry.MetPhysicalGoals, payload.MetPhysicalGoals)
	setBool(&entry.MetMentalGoals, payload.MetMentalGoals)
	entry.EveningCompleted = true
}

// MergeSection folds a partial payload into the record. Fields absent
// from the payload keep their previous value; the section's completed
// flag only ever moves to true.
func MergeSection(entry *models.DailyLog, payload SectionPayload) {
	payload.apply(entry)
}

// ValidateRating checks a 0-10 scale value.
func ValidateRating(value int) error {
	if value < models.RatingMin || value > models.RatingMax {
		return fmt.Errorf("%w: %d", ErrRatingOutOfRange, value)
	}
	return nil
}

func setString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

func setInt(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}

func setFloat(target *float64, value *float64) {
	if value != nil {
		*target = *value
	}
}

func setBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
