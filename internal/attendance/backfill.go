package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "go-workforce/internal/attendance/errors"
	"go-workforce/internal/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoCompletionEngine synthesizes the records that live punches never
// produced: leave days, holidays, rest days, and plain absences. Existing
// records are never touched, so the engine can be re-run over the same range
// safely.
type AutoCompletionEngine struct {
	repo      Repository
	schedules schedule.Repository
	holidays  HolidayResolver
	logger    *zap.Logger
}

func NewAutoCompletionEngine(repo Repository, schedules schedule.Repository, holidays HolidayResolver) *AutoCompletionEngine {
	return &AutoCompletionEngine{
		repo:      repo,
		schedules: schedules,
		holidays:  holidays,
		logger:    zap.L().Named("attendance.autocompletion"),
	}
}

// Backfill walks the inclusive range in ascending order and returns how many
// records it created.
func (e *AutoCompletionEngine) Backfill(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int, error) {
	created := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		made, err := e.backfillDay(ctx, employeeID, day)
		if err != nil {
			return created, err
		}
		if made {
			created++
		}
	}

	e.logger.Info("backfill finished",
		zap.String("employee_id", employeeID.String()),
		zap.String("start", start.Format("2006-01-02")),
		zap.String("end", end.Format("2006-01-02")),
		zap.Int("created", created),
	)
	return created, nil
}

func (e *AutoCompletionEngine) backfillDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (bool, error) {
	if _, err := e.repo.FindByEmployeeAndDate(ctx, employeeID, day); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	entry, err := e.scheduleFor(ctx, employeeID, day)
	if err != nil {
		return false, err
	}

	var status string
	var exception *string
	if entry != nil {
		switch entry.ScheduleType {
		case schedule.TypeLeave:
			status = StatusLeave
		case schedule.TypeHoliday:
			status = StatusHoliday
		case schedule.TypeRest:
			status = StatusRest
		default:
			// Scheduled work with no punch is a missed obligation, for
			// overtime days included.
			status = StatusAbsent
			exception = strPtr(ExceptionAbsenteeism)
		}
	} else {
		working, err := e.holidays.IsWorkingDay(ctx, employeeID, day)
		if err != nil {
			return false, err
		}
		if !working {
			return false, nil
		}
		status = StatusAbsent
		exception = strPtr(ExceptionAbsenteeism)
	}

	record := &AttendanceRecord{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		RecordDate:       day,
		AttendanceStatus: status,
		ExceptionType:    exception,
		WorkHours:        decimal.Zero.Round(2),
		OvertimeHours:    decimal.Zero.Round(2),
	}
	if err := e.repo.Create(ctx, record); err != nil {
		// A concurrent punch won the day; leave its record alone.
		if errors.Is(mapRepositoryError(err), attendanceerrors.ErrRecordConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (e *AutoCompletionEngine) scheduleFor(ctx context.Context, employeeID uuid.UUID, day time.Time) (*schedule.AttendanceSchedule, error) {
	entry, err := e.schedules.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}
