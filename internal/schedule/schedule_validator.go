package schedule

import (
	"context"

	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	scheduleerrors "go-workforce/internal/schedule/errors"

	"github.com/google/uuid"
)

// ConflictValidator decides whether a proposed schedule entry may be
// written. Checks run in a fixed order and the first failure is returned;
// every check must pass before the entry is accepted.
type ConflictValidator interface {
	Validate(ctx context.Context, entry *AttendanceSchedule) error
}

type conflictValidator struct {
	repo      Repository
	directory employee.Directory
}

func NewConflictValidator(repo Repository, directory employee.Directory) ConflictValidator {
	return &conflictValidator{repo: repo, directory: directory}
}

func (v *conflictValidator) Validate(ctx context.Context, entry *AttendanceSchedule) error {
	exists, err := v.directory.Exists(ctx, entry.EmployeeID.String())
	if err != nil {
		return err
	}
	if !exists {
		return employeeerrors.ErrEmployeeNotFound
	}
	active, err := v.directory.IsActive(ctx, entry.EmployeeID.String())
	if err != nil {
		return err
	}
	if !active {
		return employeeerrors.ErrEmployeeInactive
	}

	// TODO: also check the referenced shift exists and is enabled once the
	// shift registry exposes a lookup collaborator here.
	if entry.ShiftID != nil && *entry.ShiftID == uuid.Nil {
		return scheduleerrors.ErrInvalidShiftRef
	}

	var exclude *uuid.UUID
	if entry.ID != uuid.Nil {
		exclude = &entry.ID
	}
	taken, err := v.repo.ExistsForDay(ctx, entry.EmployeeID, entry.ScheduleDate, exclude)
	if err != nil {
		return err
	}
	if taken {
		return scheduleerrors.ErrScheduleConflict
	}

	if !entry.WorkStartTime.Before(entry.WorkEndTime) {
		return scheduleerrors.ErrInvalidWorkWindow
	}

	if entry.BreakStartTime != nil || entry.BreakEndTime != nil {
		if entry.BreakStartTime == nil || entry.BreakEndTime == nil {
			return scheduleerrors.ErrInvalidBreakWindow
		}
		bs, be := *entry.BreakStartTime, *entry.BreakEndTime
		if !bs.Before(be) || bs.Before(entry.WorkStartTime) || be.After(entry.WorkEndTime) {
			return scheduleerrors.ErrInvalidBreakWindow
		}
	}
	return nil
}
