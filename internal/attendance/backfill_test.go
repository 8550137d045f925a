package attendance

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/rule"
	"go-workforce/internal/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(repo *fakeRepo, schedules *fakeScheduleRepo) *AutoCompletionEngine {
	holidays := NewHolidayResolver(schedules, &fakeResolver{rule: rule.DefaultRule()})
	return NewAutoCompletionEngine(repo, schedules, holidays)
}

func TestBackfillMissedWorkdayIsAbsent(t *testing.T) {
	repo := newFakeRepo()
	engine := newEngine(repo, newFakeScheduleRepo())

	employeeID := uuid.New()
	monday := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	created, err := engine.Backfill(context.Background(), employeeID, monday, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	record := repo.records[dayKey(employeeID, monday)]
	require.NotNil(t, record)
	assert.Equal(t, StatusAbsent, record.AttendanceStatus)
	require.NotNil(t, record.ExceptionType)
	assert.Equal(t, ExceptionAbsenteeism, *record.ExceptionType)
	assert.Equal(t, "0.00", record.WorkHours.StringFixed(2))
	assert.Equal(t, "0.00", record.OvertimeHours.StringFixed(2))
	assert.Nil(t, record.PunchInTime)
	assert.Nil(t, record.PunchOutTime)
}

func TestBackfillSkipsNonWorkingDaysWithoutSchedule(t *testing.T) {
	repo := newFakeRepo()
	engine := newEngine(repo, newFakeScheduleRepo())

	employeeID := uuid.New()
	friday := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	created, err := engine.Backfill(context.Background(), employeeID, friday, monday)
	require.NoError(t, err)

	// Friday and Monday are absences; the weekend produces nothing.
	assert.Equal(t, 2, created)
	assert.Nil(t, repo.records[dayKey(employeeID, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))])
	assert.Nil(t, repo.records[dayKey(employeeID, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC))])
}

func TestBackfillSynthesizesFromScheduleType(t *testing.T) {
	employeeID := uuid.New()
	schedules := newFakeScheduleRepo()

	monday := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	wednesday := monday.AddDate(0, 0, 2)
	schedules.put(scheduleEntry(employeeID, monday, schedule.TypeLeave, false))
	schedules.put(scheduleEntry(employeeID, tuesday, schedule.TypeHoliday, false))
	schedules.put(scheduleEntry(employeeID, wednesday, schedule.TypeRest, false))

	repo := newFakeRepo()
	engine := newEngine(repo, schedules)

	created, err := engine.Backfill(context.Background(), employeeID, monday, wednesday)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	for day, want := range map[time.Time]string{
		monday:    StatusLeave,
		tuesday:   StatusHoliday,
		wednesday: StatusRest,
	} {
		record := repo.records[dayKey(employeeID, day)]
		require.NotNil(t, record, day.Format("2006-01-02"))
		assert.Equal(t, want, record.AttendanceStatus)
		assert.Nil(t, record.ExceptionType)
		assert.Equal(t, "0.00", record.WorkHours.StringFixed(2))
	}
}

func TestBackfillMissedOvertimeScheduleIsAbsent(t *testing.T) {
	employeeID := uuid.New()
	saturday := time.Date(2025, 2, 8, 0, 0, 0, 0, time.UTC)

	schedules := newFakeScheduleRepo()
	schedules.put(scheduleEntry(employeeID, saturday, schedule.TypeOvertime, true))

	repo := newFakeRepo()
	engine := newEngine(repo, schedules)

	created, err := engine.Backfill(context.Background(), employeeID, saturday, saturday)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	record := repo.records[dayKey(employeeID, saturday)]
	require.NotNil(t, record)
	assert.Equal(t, StatusAbsent, record.AttendanceStatus)
	require.NotNil(t, record.ExceptionType)
	assert.Equal(t, ExceptionAbsenteeism, *record.ExceptionType)
}

func TestBackfillNeverOverwritesExistingRecords(t *testing.T) {
	employeeID := uuid.New()
	monday := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	punchIn := monday.Add(9 * time.Hour)

	repo := newFakeRepo()
	existing := &AttendanceRecord{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		RecordDate:       monday,
		PunchInTime:      &punchIn,
		AttendanceStatus: StatusNormal,
	}
	repo.records[dayKey(employeeID, monday)] = existing

	engine := newEngine(repo, newFakeScheduleRepo())

	created, err := engine.Backfill(context.Background(), employeeID, monday, monday)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Empty(t, repo.created)
	assert.Same(t, existing, repo.records[dayKey(employeeID, monday)])
}

func TestBackfillIsIdempotent(t *testing.T) {
	employeeID := uuid.New()
	monday := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	friday := monday.AddDate(0, 0, 4)

	repo := newFakeRepo()
	engine := newEngine(repo, newFakeScheduleRepo())

	created, err := engine.Backfill(context.Background(), employeeID, monday, friday)
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	created, err = engine.Backfill(context.Background(), employeeID, monday, friday)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, repo.created, 5)
}
