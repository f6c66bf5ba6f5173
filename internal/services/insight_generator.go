package services

import (
	"fmt"
	"strings"

	"github.com/nwestbury/pulselog/internal/models"
)

// SummaryGenerator is the built-in InsightGenerator: a deterministic
// narrative assembled from the record's own numbers. Deployments that
// plug in a model-backed generator swap this out at wiring time.
type SummaryGenerator struct{}

func NewSummaryGenerator() *SummaryGenerator {
	return &SummaryGenerator{}
}

func (SummaryGenerator) Generate(entry models.DailyLog) (string, error) {
	parts := make([]string, 0, 6)

	parts = append(parts, fmt.Sprintf(
		"You slept %.1f hours at quality %d/10 and woke up at mood %d/10.",
		entry.SleepHours, entry.SleepQuality, entry.MorningMood,
	))

	if entry.MedicationTaken {
		medication := "You took your medication"
		if entry.AteWithinHour {
			medication += " and ate within the first hour"
		}
		if feeling := strings.TrimSpace(entry.FirstHourFeeling); feeling != "" {
			medication += fmt.Sprintf("; the first hour felt %q", feeling)
		}
		parts = append(parts, medication+".")
	} else if reason := strings.TrimSpace(entry.ReasonForSkipping); reason != "" {
		parts = append(parts, fmt.Sprintf("You skipped your medication (%s).", reason))
	}

	parts = append(parts, fmt.Sprintf(
		"Midday focus was %d/10 with energy %d/10 and rumination %d/10.",
		entry.FocusLevel, entry.EnergyLevel, entry.RuminationLevel,
	))

	if entry.CrashOccurred {
		parts = append(parts, "You hit an afternoon crash; watch the lunch-to-snack gap on days like this.")
	}
	if entry.AnxietyLevel >= 7 {
		parts = append(parts, fmt.Sprintf("Afternoon anxiety ran high (%d/10).", entry.AnxietyLevel))
	}

	closing := fmt.Sprintf("The day closed at mood %d/10", entry.OverallMood)
	if gratitude := strings.TrimSpace(entry.Gratitude); gratitude != "" {
		closing += fmt.Sprintf("; you were grateful for %s", gratitude)
	}
	parts = append(parts, closing+".")

	return strings.Join(parts, " "), nil
}
