package api

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/services"
)

var (
	errInvalidDate       = errors.New("invalid date")
	errInvalidSleepHours = errors.New("invalid sleep hours")
)

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}

	credentials.Email = strings.ToLower(strings.TrimSpace(credentials.Email))
	credentials.Password = strings.TrimSpace(credentials.Password)
	credentials.Timezone = strings.TrimSpace(credentials.Timezone)

	if credentials.Email == "" || credentials.Password == "" {
		return credentialsInput{}, errors.New("missing credentials")
	}
	if _, err := mail.ParseAddress(credentials.Email); err != nil {
		return credentialsInput{}, errors.New("invalid email")
	}

	return credentials, nil
}

// parseDayParam accepts a civil date ("2006-01-02", read in the user's
// timezone) or a full RFC 3339 instant. Route parameters arrive
// percent-encoded, so the offset sign of an instant needs unescaping.
func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if unescaped, err := url.PathUnescape(trimmed); err == nil {
		trimmed = unescaped
	}
	if trimmed == "" {
		return time.Time{}, errInvalidDate
	}
	if day, err := time.ParseInLocation(services.DayKeyLayout, trimmed, location); err == nil {
		return day, nil
	}
	if instant, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return instant, nil
	}
	return time.Time{}, errInvalidDate
}

func validateOptionalRating(value *int) error {
	if value == nil {
		return nil
	}
	return services.ValidateRating(*value)
}

func (input morningInput) toPayload() (services.MorningPayload, error) {
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
		return services.MorningPayload{}, errInvalidSleepHours
	}
	for _, rating := range []*int{input.SleepQuality, input.Mood} {
		if err := validateOptionalRating(rating); err != nil {
			return services.MorningPayload{}, err
		}
	}

	return services.MorningPayload{
		SleepHours:     input.SleepHours,
		SleepQuality:   input.SleepQuality,
		DreamNotes:     input.DreamNotes,
		Mood:           input.Mood,
		PhysicalStatus: input.PhysicalStatus,
		Breakfast:      input.Breakfast,
	}, nil
}

func (input medicationInput) toPayload() (services.MedicationPayload, error) {
	payload := services.MedicationPayload{
		Taken:             input.Taken,
		Dose:              input.Dose,
		AteWithinHour:     input.AteWithinHour,
		FirstHourFeeling:  input.FirstHourFeeling,
		ReasonForSkipping: input.ReasonForSkipping,
	}
	if input.TakenAt != nil {
		takenAt, err := time.Parse(time.RFC3339, strings.TrimSpace(*input.TakenAt))
		if err != nil {
			return services.MedicationPayload{}, errInvalidDate
		}
		payload.TakenAt = &takenAt
	}
	return payload, nil
}

func (input middayInput) toPayload() (services.MiddayPayload, error) {
	for _, rating := range []*int{input.FocusLevel, input.EnergyLevel, input.RuminationLevel} {
		if err := validateOptionalRating(rating); err != nil {
			return services.MiddayPayload{}, err
		}
	}

	return services.MiddayPayload{
		Lunch:           input.Lunch,
		FocusLevel:      input.FocusLevel,
		EnergyLevel:     input.EnergyLevel,
		RuminationLevel: input.RuminationLevel,
		Activity:        input.Activity,
		Distractions:    input.Distractions,
		EmotionalEvent:  input.EmotionalEvent,
		CopingStrategy:  input.CopingStrategy,
	}, nil
}

func (input afternoonInput) toPayload() (services.AfternoonPayload, error) {
	for _, rating := range []*int{input.AnxietyLevel, input.SelfWorthRating, input.OverextensionRating} {
		if err := validateOptionalRating(rating); err != nil {
			return services.AfternoonPayload{}, err
		}
	}

	return services.AfternoonPayload{
		Snack:                 input.Snack,
		CrashOccurred:         input.CrashOccurred,
		CrashSymptoms:         input.CrashSymptoms,
		AnxietyLevel:          input.AnxietyLevel,
		Feeling:               input.Feeling,
		TriggeringInteraction: input.TriggeringInteraction,
		TriggerDetails:        input.TriggerDetails,
		SelfWorthRating:       input.SelfWorthRating,
		OverextensionRating:   input.OverextensionRating,
	}, nil
}

func (input eveningInput) toPayload() (services.EveningPayload, error) {
	for _, rating := range []*int{input.OverallMood, input.Sleepiness} {
		if err := validateOptionalRating(rating); err != nil {
			return services.EveningPayload{}, err
		}
	}

	return services.EveningPayload{
		Dinner:               input.Dinner,
		OverallMood:          input.OverallMood,
		Sleepiness:           input.Sleepiness,
		MedicationReflection: input.MedicationReflection,
		HelpfulFactors:       input.HelpfulFactors,
		DistractingFactors:   input.DistractingFactors,
		ThoughtForTomorrow:   input.ThoughtForTomorrow,
		MetPhysicalGoals:     input.MetPhysicalGoals,
		MetMentalGoals:       input.MetMentalGoals,
	}, nil
}

func (input aggregatesInput) toPayload() (services.AggregatesPayload, error) {
	if err := validateOptionalRating(input.DayRating); err != nil {
		return services.AggregatesPayload{}, err
	}

	return services.AggregatesPayload{
		DayRating:       input.DayRating,
		Accomplishments: input.Accomplishments,
		Challenges:      input.Challenges,
		Gratitude:       input.Gratitude,
		Improvements:    input.Improvements,
	}, nil
}

// parseSectionPayload decodes the request body as the named section.
func parseSectionPayload(c *fiber.Ctx, section services.Section) (services.SectionPayload, error) {
	switch section {
	case services.SectionMorning:
		input := morningInput{}
		if err := c.BodyParser(&input); err != nil {
			return nil, err
		}
		return input.toPayload()
	case services.SectionMedication:
		input := medicationInput{}
		if err := c.BodyParser(&input); err != nil {
			return nil, err
		}
		return input.toPayload()
	case services.SectionMidday:
		input := middayInput{}
		if err := c.BodyParser(&input); err != nil {
			return nil, err
		}
		return input.toPayload()
	case services.SectionAfternoon:
		input := afternoonInput{}
		if err := c.BodyParser(&input); err != nil {
			return nil, err
		}
		return input.toPayload()
	case services.SectionEvening:
		input := eveningInput{}
		if err := c.BodyParser(&input); err != nil {
			return nil, err
		}
		return input.toPayload()
	default:
		return nil, services.ErrInvalidSection
	}
}
