package services

import (
	"errors"
	"testing"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
)

func stringPtr(value string) *string     { return &value }
func intPtr(value int) *int              { return &value }
func floatPtr(value float64) *float64    { return &value }
func boolPtr(value bool) *bool           { return &value }
func timePtr(value time.Time) *time.Time { return &value }

func TestParseSection(t *testing.T) {
	tests := []struct {
		raw     string
		want    Section
		wantErr bool
	}{
		{raw: "morning", want: SectionMorning},
		{raw: "medication", want: SectionMedication},
		{raw: "midday", want: SectionMidday},
		{raw: "afternoon", want: SectionAfternoon},
		{raw: "evening", want: SectionEvening},
		{raw: "Morning", wantErr: true},
		{raw: "night", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			section, err := ParseSection(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSection) {
					t.Fatalf("ParseSection(%q) error = %v, want ErrInvalidSection", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSection(%q) error: %v", tt.raw, err)
			}
			if section != tt.want {
				t.Fatalf("ParseSection(%q) = %s, want %s", tt.raw, section, tt.want)
			}
		})
	}
}

func TestMergeSectionKeepsAbsentFields(t *testing.T) {
	entry := models.DailyLog{
		SleepHours:   7.5,
		SleepQuality: 8,
		DreamNotes:   "vivid",
	}

	MergeSection(&entry, MorningPayload{
		Mood:      intPtr(6),
		Breakfast: stringPtr("oatmeal"),
	})

	if entry.SleepHours != 7.5 || entry.SleepQuality != 8 || entry.DreamNotes != "vivid" {
		t.Fatal("fields absent from the payload must keep their stored values")
	}
	if entry.MorningMood != 6 || entry.Breakfast != "oatmeal" {
		t.Fatal("fields present in the payload must be written")
	}
	if !entry.MorningCompleted {
		t.Fatal("applying a payload must mark its section complete")
	}
}

func TestMergeSectionCompletionIsMonotonic(t *testing.T) {
	entry := models.DailyLog{}

	MergeSection(&entry, MiddayPayload{FocusLevel: intPtr(4)})
	if !entry.MiddayCompleted {
		t.Fatal("first submission must complete the section")
	}

	// A later resubmission with no fields at all still leaves the flag set.
	MergeSection(&entry, MiddayPayload{})
	if !entry.MiddayCompleted {
		t.Fatal("resubmission must never return a section to incomplete")
	}
	if entry.FocusLevel != 4 {
		t.Fatal("empty resubmission must not clear earlier answers")
	}
}

func TestMedicationTakenBranchClearsSkipFields(t *testing.T) {
	entry := models.DailyLog{
		MedicationTaken:   false,
		ReasonForSkipping: "forgot at home",
	}

	takenAt := time.Date(2025, 7, 6, 8, 30, 0, 0, time.UTC)
	MergeSection(&entry, MedicationPayload{
		Taken:            boolPtr(true),
		TakenAt:          timePtr(takenAt),
		Dose:             stringPtr("20mg"),
		AteWithinHour:    boolPtr(true),
		FirstHourFeeling: stringPtr("steady"),
	})

	if !entry.MedicationTaken || !entry.MedicationCompleted {
		t.Fatal("taken submission must set the taken branch and complete the section")
	}
	if entry.Dose != "20mg" || !entry.AteWithinHour || entry.FirstHourFeeling != "steady" {
		t.Fatal("taken branch fields must be stored")
	}
	if entry.MedicationTakenAt == nil || !entry.MedicationTakenAt.Equal(takenAt) {
		t.Fatalf("MedicationTakenAt = %v, want %s", entry.MedicationTakenAt, takenAt)
	}
	if entry.ReasonForSkipping != "" {
		t.Fatalf("stale skip reason %q must be cleared on the taken branch", entry.ReasonForSkipping)
	}
}

func TestMedicationSkippedBranchClearsTakenFields(t *testing.T) {
	takenAt := time.Date(2025, 7, 5, 8, 0, 0, 0, time.UTC)
	entry := models.DailyLog{
		MedicationTaken:     true,
		MedicationTakenAt:   &takenAt,
		Dose:                "20mg",
		AteWithinHour:       true,
		FirstHourFeeling:    "focused",
		MedicationCompleted: true,
	}

	MergeSection(&entry, MedicationPayload{
		Taken:             boolPtr(false),
		ReasonForSkipping: stringPtr("ran out"),
	})

	if entry.MedicationTaken {
		t.Fatal("skip submission must flip the taken flag")
	}
	if entry.ReasonForSkipping != "ran out" {
		t.Fatalf("ReasonForSkipping = %q, want %q", entry.ReasonForSkipping, "ran out")
	}
	if entry.MedicationTakenAt != nil || entry.Dose != "" || entry.AteWithinHour || entry.FirstHourFeeling != "" {
		t.Fatal("stale taken-branch fields must be cleared on the skip branch")
	}
	if !entry.MedicationCompleted {
		t.Fatal("section must stay complete across a branch switch")
	}
}

func TestMedicationOmittedTakenFlagKeepsBranch(t *testing.T) {
	entry := models.DailyLog{
		MedicationTaken: true,
		Dose:            "10mg",
	}

	// A payload that only adjusts the dose must not move branches.
	MergeSection(&entry, MedicationPayload{Dose: stringPtr("20mg")})

	if !entry.MedicationTaken {
		t.Fatal("omitted taken flag must keep the stored branch")
	}
	if entry.Dose != "20mg" {
		t.Fatalf("Dose = %q, want 20mg", entry.Dose)
	}
}

func TestEveningPayloadAppliesGoalFlags(t *testing.T) {
	entry := models.DailyLog{}

	MergeSection(&entry, EveningPayload{
		Dinner:           stringPtr("soup"),
		OverallMood:      intPtr(7),
		MetPhysicalGoals: boolPtr(true),
		MetMentalGoals:   boolPtr(false),
	})

	if entry.Dinner != "soup" || entry.OverallMood != 7 {
		t.Fatal("evening fields must be stored")
	}
	if !entry.MetPhysicalGoals || entry.MetMentalGoals {
		t.Fatal("goal flags must follow the payload")
	}
	if !entry.EveningCompleted {
		t.Fatal("evening section must be marked complete")
	}
}

func TestValidateRating(t *testing.T) {
	for _, value := range []int{models.RatingMin, 5, models.RatingMax} {
		if err := ValidateRating(value); err != nil {
			t.Fatalf("ValidateRating(%d) error: %v", value, err)
		}
	}
	for _, value := range []int{-1, models.RatingMax + 1, 100} {
		if err := ValidateRating(value); !errors.Is(err, ErrRatingOutOfRange) {
			t.Fatalf("ValidateRating(%d) error = %v, want ErrRatingOutOfRange", value, err)
		}
	}
}
