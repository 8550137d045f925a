package attendance

import (
	"context"
	"errors"
	"time"

	"go-workforce/internal/domain"
	"go-workforce/internal/rule"
	"go-workforce/internal/schedule"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HolidayResolver classifies a date for an employee. The schedule entry, if
// one exists, always wins; the resolved rule's holiday list comes next; the
// weekend convention is the last resort. Once a tier decides, lower tiers
// are not consulted.
type HolidayResolver interface {
	IsHoliday(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error)
	IsWorkingDay(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error)
}

type holidayResolver struct {
	schedules schedule.Repository
	rules     rule.Resolver
}

func NewHolidayResolver(schedules schedule.Repository, rules rule.Resolver) HolidayResolver {
	return &holidayResolver{schedules: schedules, rules: rules}
}

func (h *holidayResolver) IsHoliday(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
	entry, err := h.scheduleFor(ctx, employeeID, date)
	if err != nil {
		return false, err
	}
	if entry != nil {
		if entry.IsWorkingType() {
			return false, nil
		}
		if entry.MarksHoliday() {
			return true, nil
		}
	}

	resolved, err := h.rules.Resolve(ctx, employeeID, date)
	if err != nil {
		return false, err
	}
	if resolved.HolidayRules.Contains(date) {
		return true, nil
	}

	return isWeekend(date), nil
}

func (h *holidayResolver) IsWorkingDay(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
	entry, err := h.scheduleFor(ctx, employeeID, date)
	if err != nil {
		return false, err
	}
	if entry != nil {
		return entry.IsWorkingType(), nil
	}

	holiday, err := h.IsHoliday(ctx, employeeID, date)
	if err != nil {
		return false, err
	}
	if holiday {
		return false, nil
	}

	resolved, err := h.rules.Resolve(ctx, employeeID, date)
	if err != nil {
		return false, err
	}
	if resolved.WorkSchedule.Len() > 0 {
		return resolved.WorkSchedule.Contains(date), nil
	}

	// No configured workweek: Monday through Friday.
	return domain.ISOWeekday(date) <= 5, nil
}

func (h *holidayResolver) scheduleFor(ctx context.Context, employeeID uuid.UUID, date time.Time) (*schedule.AttendanceSchedule, error) {
	entry, err := h.schedules.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func isWeekend(date time.Time) bool {
	return domain.ISOWeekday(date) >= 6
}
