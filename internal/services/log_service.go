package services

import (
	"errors"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
)

var (
	// ErrDuplicateDayLog rejects a second log for a (user, day) pair.
	ErrDuplicateDayLog = errors.New("daily log already exists for this day")
	// ErrLogNotFound covers both a missing log and a log owned by
	// another user. The two cases must stay indistinguishable to the
	// caller.
	ErrLogNotFound = errors.New("daily log not found")
	// ErrSaveConflict surfaces when concurrent writers exhausted the
	// merge retry budget.
	ErrSaveConflict = errors.New("daily log save conflict")
)

// saveRetryLimit bounds the re-read-and-merge loop used when two
// sections of the same log are submitted concurrently.
const saveRetryLimit = 3

type LogRepository interface {
	FindByID(userID uint, logID uint) (models.DailyLog, bool, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error)
	ListByUser(userID uint) ([]models.DailyLog, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error)
	ListRecent(userID uint, limit int) ([]models.DailyLog, error)
	// Create must fail with an error matching ErrDuplicateDayLog when
	// the (user, date) uniqueness constraint rejects the row.
	Create(entry *models.DailyLog) error
	// SaveVersioned reports false without error when the entry's
	// version no longer matches the stored row.
	SaveVersioned(entry *models.DailyLog) (bool, error)
	DeleteWithInsights(userID uint, logID uint) (bool, error)
}

type LogService struct {
	logs LogRepository
}

func NewLogService(logs LogRepository) *LogService {
	return &LogService{logs: logs}
}

// CreateMorningLog creates the day's record from the morning form, the
// only section allowed to bring a new log into existence. The stored
// date is midnight of the submitted day in the user's timezone and
// never changes afterwards.
func (service *LogService) CreateMorningLog(userID uint, day time.Time, payload MorningPayload, location *time.Location) (models.DailyLog, error) {
	dayStart, dayEnd := DayRange(day, location)

	_, exists, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, err
	}
	if exists {
		return models.DailyLog{}, ErrDuplicateDayLog
	}

	entry := models.DailyLog{
		UserID: userID,
		Date:   dayStart,
	}
	MergeSection(&entry, payload)
	EvaluateCompletion(&entry)

	if err := service.logs.Create(&entry); err != nil {
		// A concurrent submission can slip past the pre-check and hit
		// the unique index instead.
		if errors.Is(err, ErrDuplicateDayLog) {
			return models.DailyLog{}, ErrDuplicateDayLog
		}
		return models.DailyLog{}, err
	}
	return entry, nil
}

// ApplySection folds one section's partial payload into an existing
// log. The write is guarded by the log's version counter: when another
// section landed in between, the merge re-reads and re-applies so
// neither submission loses the other's fields.
func (service *LogService) ApplySection(userID uint, logID uint, payload SectionPayload) (models.DailyLog, error) {
	for attempt := 0; attempt < saveRetryLimit; attempt++ {
		entry, found, err := service.logs.FindByID(userID, logID)
		if err != nil {
			return models.DailyLog{}, err
		}
		if !found {
			return models.DailyLog{}, ErrLogNotFound
		}

		MergeSection(&entry, payload)
		EvaluateCompletion(&entry)

		saved, err := service.logs.SaveVersioned(&entry)
		if err != nil {
			return models.DailyLog{}, err
		}
		if saved {
			return entry, nil
		}
	}
	return models.DailyLog{}, ErrSaveConflict
}

// AggregatesPayload updates the day-level free-form fields that live
// outside the five sections. Nil fields keep their stored value.
type AggregatesPayload struct {
	DayRating       *int
	Accomplishments *string
	Challenges      *string
	Gratitude       *string
	Improvements    *string
}

// UpdateAggregates edits the aggregate fields without touching any
// section or its completion flag.
func (service *LogService) UpdateAggregates(userID uint, logID uint, payload AggregatesPayload) (models.DailyLog, error) {
	for attempt := 0; attempt < saveRetryLimit; attempt++ {
		entry, found, err := service.logs.FindByID(userID, logID)
		if err != nil {
			return models.DailyLog{}, err
		}
		if !found {
			return models.DailyLog{}, ErrLogNotFound
		}

		setInt(&entry.DayRating, payload.DayRating)
		setString(&entry.Accomplishments, payload.Accomplishments)
		setString(&entry.Challenges, payload.Challenges)
		setString(&entry.Gratitude, payload.Gratitude)
		setString(&entry.Improvements, payload.Improvements)

		saved, err := service.logs.SaveVersioned(&entry)
		if err != nil {
			return models.DailyLog{}, err
		}
		if saved {
			return entry, nil
		}
	}
	return models.DailyLog{}, ErrSaveConflict
}

func (service *LogService) FetchLogByID(userID uint, logID uint) (models.DailyLog, error) {
	entry, found, err := service.logs.FindByID(userID, logID)
	if err != nil {
		return models.DailyLog{}, err
	}
	if !found {
		return models.DailyLog{}, ErrLogNotFound
	}
	return entry, nil
}

// FetchLogByDay locates the log for the civil day the instant falls on
// in the given location. Absence is an expected state, not an error.
func (service *LogService) FetchLogByDay(userID uint, instant time.Time, location *time.Location) (models.DailyLog, bool, error) {
	dayStart, dayEnd := DayRange(instant, location)
	return service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
}

// FetchLogsForRange returns logs whose day falls in [from, to]
// inclusive, ordered by day ascending.
func (service *LogService) FetchLogsForRange(userID uint, from time.Time, to time.Time, location *time.Location) ([]models.DailyLog, error) {
	fromStart, _ := DayRange(from, location)
	_, toEnd := DayRange(to, location)
	return service.logs.ListByUserRange(userID, &fromStart, &toEnd)
}

// FetchLogsForOptionalRange leaves either bound open when nil.
func (service *LogService) FetchLogsForOptionalRange(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.DailyLog, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from, location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, location)
		toEnd = &end
	}
	return service.logs.ListByUserRange(userID, fromStart, toEnd)
}

func (service *LogService) FetchRecentLogs(userID uint, limit int) ([]models.DailyLog, error) {
	return service.logs.ListRecent(userID, limit)
}

func (service *LogService) FetchAllLogs(userID uint) ([]models.DailyLog, error) {
	return service.logs.ListByUser(userID)
}

// DeleteLog removes the whole record and its derived insight. Deletion
// is the only way a log ever goes away; sections are never removed
// individually.
func (service *LogService) DeleteLog(userID uint, logID uint) error {
	deleted, err := service.logs.DeleteWithInsights(userID, logID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrLogNotFound
	}
	return nil
}
