package api

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	Timezone   string `json:"timezone" form:"timezone"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}

type timezoneInput struct {
	Timezone string `json:"timezone" form:"timezone"`
}

type displayNameInput struct {
	DisplayName string `json:"display_name" form:"display_name"`
}

// Section inputs use pointers throughout: a nil field was absent from
// the submission and keeps whatever the record already holds.

type morningInput struct {
	SleepHours     *float64 `json:"sleep_hours"`
	SleepQuality   *int     `json:"sleep_quality"`
	DreamNotes     *string  `json:"dream_notes"`
	Mood           *int     `json:"mood"`
	PhysicalStatus *string  `json:"physical_status"`
	Breakfast      *string  `json:"breakfast"`
}

type createLogInput struct {
	Date    string       `json:"date"`
	Morning morningInput `json:"morning"`
}

type medicationInput struct {
	Taken             *bool   `json:"taken"`
	TakenAt           *string `json:"taken_at"`
	Dose              *string `json:"dose"`
	AteWithinHour     *bool   `json:"ate_within_hour"`
	FirstHourFeeling  *string `json:"first_hour_feeling"`
	ReasonForSkipping *string `json:"reason_for_skipping"`
}

type middayInput struct {
	Lunch           *string `json:"lunch"`
	FocusLevel      *int    `json:"focus_level"`
	EnergyLevel     *int    `json:"energy_level"`
	RuminationLevel *int    `json:"rumination_level"`
	Activity        *string `json:"activity"`
	Distractions    *string `json:"distractions"`
	EmotionalEvent  *string `json:"emotional_event"`
	CopingStrategy  *string `json:"coping_strategy"`
}

type afternoonInput struct {
	Snack                 *string `json:"snack"`
	CrashOccurred         *bool   `json:"crash_occurred"`
	CrashSymptoms         *string `json:"crash_symptoms"`
	AnxietyLevel          *int    `json:"anxiety_level"`
	Feeling               *string `json:"feeling"`
	TriggeringInteraction *bool   `json:"triggering_interaction"`
	TriggerDetails        *string `json:"trigger_details"`
	SelfWorthRating       *int    `json:"self_worth_rating"`
	OverextensionRating   *int    `json:"overextension_rating"`
}

type eveningInput struct {
	Dinner               *string `json:"dinner"`
	OverallMood          *int    `json:"overall_mood"`
	Sleepiness           *int    `json:"sleepiness"`
	MedicationReflection *string `json:"medication_reflection"`
	HelpfulFactors       *string `json:"helpful_factors"`
	DistractingFactors   *string `json:"distracting_factors"`
	ThoughtForTomorrow   *string `json:"thought_for_tomorrow"`
	MetPhysicalGoals     *bool   `json:"met_physical_goals"`
	MetMentalGoals       *bool   `json:"met_mental_goals"`
}

type aggregatesInput struct {
	DayRating       *int    `json:"day_rating"`
	Accomplishments *string `json:"accomplishments"`
	Challenges      *string `json:"challenges"`
	Gratitude       *string `json:"gratitude"`
	Improvements    *string `json:"improvements"`
}
