package attendance

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/domain"
	"go-workforce/internal/rule"
	"go-workforce/internal/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newCalculator(schedules *fakeScheduleRepo) OvertimeCalculator {
	holidays := NewHolidayResolver(schedules, &fakeResolver{rule: rule.DefaultRule()})
	return NewOvertimeCalculator(schedules, holidays)
}

func TestWorkHoursRoundsHalfUp(t *testing.T) {
	calc := newCalculator(newFakeScheduleRepo())
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
		out  time.Time
		want string
	}{
		{"full day with late start", day.Add(9*time.Hour + 15*time.Minute), day.Add(18 * time.Hour), "8.75"},
		{"four hours", day.Add(10 * time.Hour), day.Add(14 * time.Hour), "4.00"},
		{"twenty minutes rounds to 0.33", day.Add(9 * time.Hour), day.Add(9*time.Hour + 20*time.Minute), "0.33"},
		{"out before in yields zero", day.Add(18 * time.Hour), day.Add(9 * time.Hour), "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, calc.WorkHours(tc.in, tc.out).StringFixed(2))
		})
	}
}

func TestOvertimeZeroWhenOutAtOrBeforeScheduledEnd(t *testing.T) {
	calc := newCalculator(newFakeScheduleRepo())
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := domain.NewTimeOfDay(18, 0)

	result, err := calc.Overtime(context.Background(), uuid.New(), day, day.Add(18*time.Hour), end)
	assert.NoError(t, err)
	assert.True(t, result.OvertimeHours.IsZero())
	assert.Equal(t, "1.00", result.Rate.StringFixed(2))
	assert.False(t, result.IsHolidayOvertime)
}

func TestOvertimeRateFromHolidaySchedule(t *testing.T) {
	schedules := newFakeScheduleRepo()
	employeeID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	rate := decimal.RequireFromString("3.0")
	schedules.put(&schedule.AttendanceSchedule{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		ScheduleDate:  day,
		ScheduleType:  schedule.TypeOvertime,
		IsHoliday:     true,
		OvertimeRate:  &rate,
		WorkStartTime: domain.NewTimeOfDay(9, 0),
		WorkEndTime:   domain.NewTimeOfDay(18, 0),
	})

	calc := newCalculator(schedules)
	result, err := calc.Overtime(context.Background(), employeeID, day, day.Add(20*time.Hour), domain.NewTimeOfDay(18, 0))
	assert.NoError(t, err)
	assert.Equal(t, "2.00", result.OvertimeHours.StringFixed(2))
	assert.Equal(t, "3.00", result.Rate.StringFixed(2))
	assert.True(t, result.IsHolidayOvertime)
}

func TestOvertimeScheduleWithoutRateUsesDefaults(t *testing.T) {
	schedules := newFakeScheduleRepo()
	employeeID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	schedules.put(&schedule.AttendanceSchedule{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		ScheduleDate:  day,
		ScheduleType:  schedule.TypeOvertime,
		WorkStartTime: domain.NewTimeOfDay(9, 0),
		WorkEndTime:   domain.NewTimeOfDay(18, 0),
	})

	calc := newCalculator(schedules)
	result, err := calc.Overtime(context.Background(), employeeID, day, day.Add(19*time.Hour), domain.NewTimeOfDay(18, 0))
	assert.NoError(t, err)
	assert.Equal(t, "1.50", result.Rate.StringFixed(2))
	assert.False(t, result.IsHolidayOvertime)
}

func TestOvertimeWeekendFallbackUsesHolidayRate(t *testing.T) {
	calc := newCalculator(newFakeScheduleRepo())
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	result, err := calc.Overtime(context.Background(), uuid.New(), saturday, saturday.Add(20*time.Hour), domain.NewTimeOfDay(18, 0))
	assert.NoError(t, err)
	assert.Equal(t, "3.00", result.Rate.StringFixed(2))
	assert.True(t, result.IsHolidayOvertime)
}

func TestOvertimeWorkdayFallbackUsesWorkdayRate(t *testing.T) {
	calc := newCalculator(newFakeScheduleRepo())
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	result, err := calc.Overtime(context.Background(), uuid.New(), monday, monday.Add(19*time.Hour+30*time.Minute), domain.NewTimeOfDay(18, 0))
	assert.NoError(t, err)
	assert.Equal(t, "1.50", result.OvertimeHours.StringFixed(2))
	assert.Equal(t, "1.50", result.Rate.StringFixed(2))
}

// Later punch-outs never shrink overtime.
func TestOvertimeMonotonic(t *testing.T) {
	calc := newCalculator(newFakeScheduleRepo())
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := domain.NewTimeOfDay(18, 0)

	prev := decimal.Zero
	for minutes := 0; minutes <= 240; minutes += 17 {
		out := day.Add(18*time.Hour + time.Duration(minutes)*time.Minute)
		result, err := calc.Overtime(context.Background(), uuid.New(), day, out, end)
		assert.NoError(t, err)
		assert.True(t, result.OvertimeHours.GreaterThanOrEqual(prev),
			"overtime decreased at +%d minutes", minutes)
		prev = result.OvertimeHours
	}
}
