package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
)

// logRepositoryStub is an in-memory LogRepository with real version
// checking, so the optimistic save path is exercised without a
// database.
type logRepositoryStub struct {
	entries map[uint]models.DailyLog
	nextID  uint

	// conflictsBefore makes the first N SaveVersioned calls fail the
	// version check, simulating interleaved writers.
	conflictsBefore int
	saveCalls       int

	// hideFromDayLookup blinds FindByUserAndDayRange, simulating a
	// concurrent insert that lands between pre-check and Create.
	hideFromDayLookup bool
}

func newLogRepositoryStub() *logRepositoryStub {
	return &logRepositoryStub{entries: map[uint]models.DailyLog{}, nextID: 1}
}

func (stub *logRepositoryStub) FindByID(userID uint, logID uint) (models.DailyLog, bool, error) {
	entry, ok := stub.entries[logID]
	if !ok || entry.UserID != userID {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (stub *logRepositoryStub) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error) {
	if stub.hideFromDayLookup {
		return models.DailyLog{}, false, nil
	}
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if !entry.Date.Before(dayStart) && entry.Date.Before(dayEnd) {
			return entry, true, nil
		}
	}
	return models.DailyLog{}, false, nil
}

func (stub *logRepositoryStub) ListByUser(userID uint) ([]models.DailyLog, error) {
	return stub.ListByUserRange(userID, nil, nil)
}

func (stub *logRepositoryStub) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	var result []models.DailyLog
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if fromStart != nil && entry.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			continue
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (stub *logRepositoryStub) ListRecent(userID uint, limit int) ([]models.DailyLog, error) {
	all, _ := stub.ListByUser(userID)
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (stub *logRepositoryStub) Create(entry *models.DailyLog) error {
	for _, existing := range stub.entries {
		if existing.UserID == entry.UserID && existing.Date.Equal(entry.Date) {
			return ErrDuplicateDayLog
		}
	}
	entry.ID = stub.nextID
	stub.nextID++
	stub.entries[entry.ID] = *entry
	return nil
}

func (stub *logRepositoryStub) SaveVersioned(entry *models.DailyLog) (bool, error) {
	stub.saveCalls++
	stored, ok := stub.entries[entry.ID]
	if !ok {
		return false, nil
	}
	if stub.conflictsBefore > 0 {
		stub.conflictsBefore--
		// Another writer got there first: bump the stored version so
		// the caller's copy is stale.
		stored.Version++
		stub.entries[entry.ID] = stored
		return false, nil
	}
	if stored.Version != entry.Version {
		return false, nil
	}
	entry.Version++
	stub.entries[entry.ID] = *entry
	return true, nil
}

func (stub *logRepositoryStub) DeleteWithInsights(userID uint, logID uint) (bool, error) {
	entry, ok := stub.entries[logID]
	if !ok || entry.UserID != userID {
		return false, nil
	}
	delete(stub.entries, logID)
	return true, nil
}

func newTestLogService() (*LogService, *logRepositoryStub) {
	stub := newLogRepositoryStub()
	return NewLogService(stub), stub
}

func TestCreateMorningLogStoresLocalMidnight(t *testing.T) {
	service, _ := newTestLogService()
	tokyo := mustLoadLocation(t, "Asia/Tokyo")

	submitted := time.Date(2025, 7, 7, 9, 45, 0, 0, tokyo)
	entry, err := service.CreateMorningLog(1, submitted, MorningPayload{
		SleepHours:   floatPtr(6.5),
		SleepQuality: intPtr(7),
		Mood:         intPtr(5),
	}, tokyo)
	if err != nil {
		t.Fatalf("CreateMorningLog error: %v", err)
	}

	wantDate := time.Date(2025, 7, 7, 0, 0, 0, 0, tokyo)
	if !entry.Date.Equal(wantDate) {
		t.Fatalf("Date = %s, want local midnight %s", entry.Date, wantDate)
	}
	if !entry.MorningCompleted {
		t.Fatal("creating from the morning form must complete the morning section")
	}
	if entry.IsComplete {
		t.Fatal("a one-section log must not be complete")
	}
	if entry.SleepHours != 6.5 || entry.SleepQuality != 7 || entry.MorningMood != 5 {
		t.Fatal("morning answers must be stored on the new log")
	}
}

func TestCreateMorningLogRejectsSecondLogForSameDay(t *testing.T) {
	service, _ := newTestLogService()
	location := mustLoadLocation(t, "America/New_York")

	morning := time.Date(2025, 7, 6, 7, 30, 0, 0, location)
	if _, err := service.CreateMorningLog(1, morning, MorningPayload{}, location); err != nil {
		t.Fatalf("first create error: %v", err)
	}

	// A later instant on the same civil day collides.
	evening := time.Date(2025, 7, 6, 22, 0, 0, 0, location)
	if _, err := service.CreateMorningLog(1, evening, MorningPayload{}, location); !errors.Is(err, ErrDuplicateDayLog) {
		t.Fatalf("second create error = %v, want ErrDuplicateDayLog", err)
	}

	// A different user on the same day does not.
	if _, err := service.CreateMorningLog(2, morning, MorningPayload{}, location); err != nil {
		t.Fatalf("other user create error: %v", err)
	}
}

func TestCreateMorningLogSurfacesUniqueIndexRace(t *testing.T) {
	service, stub := newTestLogService()
	location := time.UTC
	day := time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)

	stub.entries[99] = models.DailyLog{ID: 99, UserID: 1, Date: day}
	stub.hideFromDayLookup = true
	if _, err := service.CreateMorningLog(1, day, MorningPayload{}, location); !errors.Is(err, ErrDuplicateDayLog) {
		t.Fatalf("create error = %v, want ErrDuplicateDayLog", err)
	}
}

func TestApplySectionMergesWithoutLosingFields(t *testing.T) {
	service, _ := newTestLogService()
	location := time.UTC
	day := time.Date(2025, 7, 6, 12, 0, 0, 0, time.UTC)

	created, err := service.CreateMorningLog(1, day, MorningPayload{
		SleepHours: floatPtr(8),
		Breakfast:  stringPtr("toast"),
	}, location)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	updated, err := service.ApplySection(1, created.ID, MiddayPayload{
		Lunch:      stringPtr("salad"),
		FocusLevel: intPtr(6),
	})
	if err != nil {
		t.Fatalf("ApplySection error: %v", err)
	}

	if updated.SleepHours != 8 || updated.Breakfast != "toast" {
		t.Fatal("midday submission must not erase morning answers")
	}
	if updated.Lunch != "salad" || updated.FocusLevel != 6 {
		t.Fatal("midday answers must be stored")
	}
	if !updated.MorningCompleted || !updated.MiddayCompleted {
		t.Fatal("both submitted sections must stay complete")
	}
}

func TestApplySectionUnknownOrForeignLog(t *testing.T) {
	service, _ := newTestLogService()
	location := time.UTC
	day := time.Date(2025, 7, 6, 12, 0, 0, 0, time.UTC)

	created, err := service.CreateMorningLog(1, day, MorningPayload{}, location)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if _, err := service.ApplySection(1, created.ID+100, MiddayPayload{}); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("unknown log error = %v, want ErrLogNotFound", err)
	}
	// Another user's id must look exactly like a missing log.
	if _, err := service.ApplySection(2, created.ID, MiddayPayload{}); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("foreign log error = %v, want ErrLogNotFound", err)
	}
}

func TestCompletionReachedInAnySectionOrder(t *testing.T) {
	orders := [][]SectionPayload{
		{MedicationPayload{Taken: boolPtr(true)}, MiddayPayload{}, AfternoonPayload{}, EveningPayload{}},
		{EveningPayload{}, AfternoonPayload{}, MiddayPayload{}, MedicationPayload{Taken: boolPtr(false)}},
		{MiddayPayload{}, EveningPayload{}, MedicationPayload{Taken: boolPtr(true)}, AfternoonPayload{}},
	}

	for i, order := range orders {
		service, _ := newTestLogService()
		day := time.Date(2025, 7, 6, 8, 0, 0, 0, time.UTC)
		created, err := service.CreateMorningLog(1, day, MorningPayload{}, time.UTC)
		if err != nil {
			t.Fatalf("order %d: create error: %v", i, err)
		}

		var entry models.DailyLog
		for _, payload := range order {
			entry, err = service.ApplySection(1, created.ID, payload)
			if err != nil {
				t.Fatalf("order %d: apply %s error: %v", i, payload.Section(), err)
			}
		}

		if !entry.IsComplete {
			t.Fatalf("order %d: all five sections submitted, IsComplete still false", i)
		}
		if got := entry.CompletedSectionCount(); got != 5 {
			t.Fatalf("order %d: CompletedSectionCount = %d, want 5", i, got)
		}
	}
}

func TestApplySectionRetriesOnVersionConflict(t *testing.T) {
	service, stub := newTestLogService()
	day := time.Date(2025, 7, 6, 8, 0, 0, 0, time.UTC)
	created, err := service.CreateMorningLog(1, day, MorningPayload{}, time.UTC)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	stub.conflictsBefore = 2
	entry, err := service.ApplySection(1, created.ID, EveningPayload{Dinner: stringPtr("rice")})
	if err != nil {
		t.Fatalf("ApplySection after conflicts error: %v", err)
	}
	if entry.Dinner != "rice" || !entry.EveningCompleted {
		t.Fatal("retried merge must land the submitted fields")
	}
	if stub.saveCalls != 3 {
		t.Fatalf("saveCalls = %d, want 3 (two conflicts then success)", stub.saveCalls)
	}
}

func TestApplySectionGivesUpAfterRetryBudget(t *testing.T) {
	service, stub := newTestLogService()
	day := time.Date(2025, 7, 6, 8, 0, 0, 0, time.UTC)
	created, err := service.CreateMorningLog(1, day, MorningPayload{}, time.UTC)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	stub.conflictsBefore = saveRetryLimit
	if _, err := service.ApplySection(1, created.ID, MiddayPayload{}); !errors.Is(err, ErrSaveConflict) {
		t.Fatalf("error = %v, want ErrSaveConflict", err)
	}
}

func TestUpdateAggregatesLeavesSectionsAlone(t *testing.T) {
	service, _ := newTestLogService()
	day := time.Date(2025, 7, 6, 8, 0, 0, 0, time.UTC)
	created, err := service.CreateMorningLog(1, day, MorningPayload{}, time.UTC)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	entry, err := service.UpdateAggregates(1, created.ID, AggregatesPayload{
		DayRating: intPtr(7),
		Gratitude: stringPtr("quiet afternoon"),
	})
	if err != nil {
		t.Fatalf("UpdateAggregates error: %v", err)
	}

	if entry.DayRating != 7 || entry.Gratitude != "quiet afternoon" {
		t.Fatal("aggregate fields must be stored")
	}
	if got := entry.CompletedSectionCount(); got != 1 {
		t.Fatalf("aggregates must not touch section flags, CompletedSectionCount = %d", got)
	}
	if entry.IsComplete {
		t.Fatal("aggregates must not mark the log complete")
	}
}

func TestFetchLogByDayRespectsTimezone(t *testing.T) {
	service, _ := newTestLogService()
	newYork := mustLoadLocation(t, "America/New_York")

	day := time.Date(2025, 7, 6, 9, 0, 0, 0, newYork)
	if _, err := service.CreateMorningLog(1, day, MorningPayload{}, newYork); err != nil {
		t.Fatalf("create error: %v", err)
	}

	// 2025-07-07T03:30Z is still July 6 in New York.
	lateUTC := time.Date(2025, 7, 7, 3, 30, 0, 0, time.UTC)
	_, found, err := service.FetchLogByDay(1, lateUTC, newYork)
	if err != nil {
		t.Fatalf("FetchLogByDay error: %v", err)
	}
	if !found {
		t.Fatal("instant on the same New York day must find the log")
	}

	// The same instant read as UTC is already July 7: no log.
	_, found, err = service.FetchLogByDay(1, lateUTC, time.UTC)
	if err != nil {
		t.Fatalf("FetchLogByDay error: %v", err)
	}
	if found {
		t.Fatal("instant on the next UTC day must not find the log")
	}
}

func TestFetchLogsForRangeIsInclusive(t *testing.T) {
	service, _ := newTestLogService()
	for day := 1; day <= 5; day++ {
		date := time.Date(2025, 7, day, 8, 0, 0, 0, time.UTC)
		if _, err := service.CreateMorningLog(1, date, MorningPayload{}, time.UTC); err != nil {
			t.Fatalf("create day %d error: %v", day, err)
		}
	}

	from := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	logs, err := service.FetchLogsForRange(1, from, to, time.UTC)
	if err != nil {
		t.Fatalf("FetchLogsForRange error: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("got %d logs, want 3 (both bounds inclusive)", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].Date.Before(logs[i-1].Date) {
			t.Fatal("range results must be ordered by day ascending")
		}
	}
}

func TestDeleteLog(t *testing.T) {
	service, _ := newTestLogService()
	day := time.Date(2025, 7, 6, 8, 0, 0, 0, time.UTC)
	created, err := service.CreateMorningLog(1, day, MorningPayload{}, time.UTC)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := service.DeleteLog(2, created.ID); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("foreign delete error = %v, want ErrLogNotFound", err)
	}
	if err := service.DeleteLog(1, created.ID); err != nil {
		t.Fatalf("DeleteLog error: %v", err)
	}
	if _, err := service.FetchLogByID(1, created.ID); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("fetch after delete error = %v, want ErrLogNotFound", err)
	}
	// The deleted day becomes creatable again.
	if _, err := service.CreateMorningLog(1, day, MorningPayload{}, time.UTC); err != nil {
		t.Fatalf("recreate after delete error: %v", err)
	}
}
