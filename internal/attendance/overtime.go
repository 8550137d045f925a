package attendance

import (
	"context"
	"errors"
	"time"

	"go-workforce/internal/domain"
	"go-workforce/internal/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	sixty              = decimal.NewFromInt(60)
	defaultHolidayRate = decimal.RequireFromString("3.0")
	defaultWorkdayRate = decimal.RequireFromString("1.5")
	rateOne            = decimal.NewFromInt(1)
)

// OvertimeResult carries base overtime hours with the multiplier reported
// alongside; the rate is for downstream payroll and is never pre-multiplied
// into the hours.
type OvertimeResult struct {
	OvertimeHours     decimal.Decimal
	Rate              decimal.Decimal
	IsHolidayOvertime bool
}

// OvertimeCalculator computes worked hours and overtime from punch times,
// the day's schedule, and holiday classification.
type OvertimeCalculator interface {
	WorkHours(in, out time.Time) decimal.Decimal
	Overtime(ctx context.Context, employeeID uuid.UUID, date time.Time, actualOut time.Time, scheduledEnd domain.TimeOfDay) (OvertimeResult, error)
}

type overtimeCalculator struct {
	schedules schedule.Repository
	holidays  HolidayResolver
}

func NewOvertimeCalculator(schedules schedule.Repository, holidays HolidayResolver) OvertimeCalculator {
	return &overtimeCalculator{schedules: schedules, holidays: holidays}
}

// WorkHours is minutes between punches divided by 60, two decimals half-up.
func (c *overtimeCalculator) WorkHours(in, out time.Time) decimal.Decimal {
	if !out.After(in) {
		return decimal.Zero.Round(2)
	}
	minutes := decimal.NewFromFloat(out.Sub(in).Minutes())
	return minutes.DivRound(sixty, 2)
}

func (c *overtimeCalculator) Overtime(ctx context.Context, employeeID uuid.UUID, date time.Time, actualOut time.Time, scheduledEnd domain.TimeOfDay) (OvertimeResult, error) {
	overMinutes := domain.FromClock(actualOut).MinutesSince(scheduledEnd)
	if overMinutes <= 0 {
		return OvertimeResult{OvertimeHours: decimal.Zero.Round(2), Rate: rateOne}, nil
	}
	baseHours := decimal.NewFromInt(int64(overMinutes)).DivRound(sixty, 2)

	entry, err := c.scheduleFor(ctx, employeeID, date)
	if err != nil {
		return OvertimeResult{}, err
	}

	if entry != nil && entry.ScheduleType == schedule.TypeOvertime {
		if entry.IsHoliday {
			return OvertimeResult{
				OvertimeHours:     baseHours,
				Rate:              rateOrDefault(entry.OvertimeRate, defaultHolidayRate),
				IsHolidayOvertime: true,
			}, nil
		}
		return OvertimeResult{
			OvertimeHours: baseHours,
			Rate:          rateOrDefault(entry.OvertimeRate, defaultWorkdayRate),
		}, nil
	}

	holiday, err := c.holidays.IsHoliday(ctx, employeeID, date)
	if err != nil {
		return OvertimeResult{}, err
	}
	if holiday {
		return OvertimeResult{
			OvertimeHours:     baseHours,
			Rate:              defaultHolidayRate,
			IsHolidayOvertime: true,
		}, nil
	}
	return OvertimeResult{OvertimeHours: baseHours, Rate: defaultWorkdayRate}, nil
}

func (c *overtimeCalculator) scheduleFor(ctx context.Context, employeeID uuid.UUID, date time.Time) (*schedule.AttendanceSchedule, error) {
	entry, err := c.schedules.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func rateOrDefault(rate *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if rate != nil && rate.IsPositive() {
		return *rate
	}
	return fallback
}
