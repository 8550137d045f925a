package attendance

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/domain"
	"go-workforce/internal/rule"
	"go-workforce/internal/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func scheduleEntry(employeeID uuid.UUID, day time.Time, scheduleType string, isHoliday bool) *schedule.AttendanceSchedule {
	return &schedule.AttendanceSchedule{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		ScheduleDate:  day,
		ScheduleType:  scheduleType,
		IsHoliday:     isHoliday,
		WorkStartTime: domain.NewTimeOfDay(9, 0),
		WorkEndTime:   domain.NewTimeOfDay(18, 0),
	}
}

func TestIsHolidayScheduleOverridesRuleList(t *testing.T) {
	employeeID := uuid.New()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	schedules := newFakeScheduleRepo()
	schedules.put(scheduleEntry(employeeID, monday, schedule.TypeHoliday, false))

	// The rule does not list the date; the schedule still wins.
	resolver := NewHolidayResolver(schedules, &fakeResolver{rule: rule.DefaultRule()})
	holiday, err := resolver.IsHoliday(context.Background(), employeeID, monday)
	assert.NoError(t, err)
	assert.True(t, holiday)
}

func TestIsHolidayWorkingScheduleShortCircuitsFalse(t *testing.T) {
	employeeID := uuid.New()
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	schedules := newFakeScheduleRepo()
	// The holiday flag on a working-type entry is ignored and the weekend
	// fallback is never reached.
	schedules.put(scheduleEntry(employeeID, saturday, schedule.TypeNormal, true))

	resolver := NewHolidayResolver(schedules, &fakeResolver{rule: rule.DefaultRule()})
	holiday, err := resolver.IsHoliday(context.Background(), employeeID, saturday)
	assert.NoError(t, err)
	assert.False(t, holiday)
}

func TestIsHolidayFromRuleDateList(t *testing.T) {
	employeeID := uuid.New()
	monday := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	r := rule.DefaultRule()
	r.HolidayRules = domain.NewDateSet("2026-05-04", "2026-05-05")

	resolver := NewHolidayResolver(newFakeScheduleRepo(), &fakeResolver{rule: r})
	holiday, err := resolver.IsHoliday(context.Background(), employeeID, monday)
	assert.NoError(t, err)
	assert.True(t, holiday)
}

func TestIsHolidayWeekendFallback(t *testing.T) {
	resolver := NewHolidayResolver(newFakeScheduleRepo(), &fakeResolver{rule: rule.DefaultRule()})

	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	for _, day := range []time.Time{saturday, sunday} {
		holiday, err := resolver.IsHoliday(context.Background(), uuid.New(), day)
		assert.NoError(t, err)
		assert.True(t, holiday, day.Weekday().String())
	}

	holiday, err := resolver.IsHoliday(context.Background(), uuid.New(), monday)
	assert.NoError(t, err)
	assert.False(t, holiday)
}

func TestIsWorkingDayScheduleDecides(t *testing.T) {
	employeeID := uuid.New()
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	schedules := newFakeScheduleRepo()
	schedules.put(scheduleEntry(employeeID, saturday, schedule.TypeOvertime, false))
	schedules.put(scheduleEntry(employeeID, monday, schedule.TypeLeave, false))

	resolver := NewHolidayResolver(schedules, &fakeResolver{rule: rule.DefaultRule()})

	working, err := resolver.IsWorkingDay(context.Background(), employeeID, saturday)
	assert.NoError(t, err)
	assert.True(t, working, "scheduled overtime on a Saturday is a working day")

	working, err = resolver.IsWorkingDay(context.Background(), employeeID, monday)
	assert.NoError(t, err)
	assert.False(t, working, "leave on a Monday is not a working day")
}

func TestIsWorkingDayFromRuleWorkweek(t *testing.T) {
	employeeID := uuid.New()
	r := rule.DefaultRule()
	r.WorkSchedule = domain.NewWeekdaySet(1, 2, 3, 4, 5, 6) // Saturdays on

	resolver := NewHolidayResolver(newFakeScheduleRepo(), &fakeResolver{rule: r})

	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	working, err := resolver.IsWorkingDay(context.Background(), employeeID, saturday)
	assert.NoError(t, err)
	// The weekend fallback still classifies Saturday a holiday before the
	// workweek set is consulted.
	assert.False(t, working)

	wednesday := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	working, err = resolver.IsWorkingDay(context.Background(), employeeID, wednesday)
	assert.NoError(t, err)
	assert.True(t, working)
}

func TestIsWorkingDayDefaultsMondayToFriday(t *testing.T) {
	resolver := NewHolidayResolver(newFakeScheduleRepo(), &fakeResolver{rule: rule.DefaultRule()})

	friday := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	working, err := resolver.IsWorkingDay(context.Background(), uuid.New(), friday)
	assert.NoError(t, err)
	assert.True(t, working)

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	working, err = resolver.IsWorkingDay(context.Background(), uuid.New(), sunday)
	assert.NoError(t, err)
	assert.False(t, working)
}
