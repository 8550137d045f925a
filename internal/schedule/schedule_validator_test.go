package schedule

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-workforce/internal/domain"
	employeeerrors "go-workforce/internal/employee/errors"
	scheduleerrors "go-workforce/internal/schedule/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeScheduleRepo struct {
	createFn          func(ctx context.Context, s *AttendanceSchedule) error
	findByIDFn        func(ctx context.Context, id uuid.UUID) (*AttendanceSchedule, error)
	findByDayFn       func(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceSchedule, error)
	findByRangeFn     func(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AttendanceSchedule, error)
	existsForDayFn    func(ctx context.Context, employeeID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error)
	updateFn          func(ctx context.Context, s *AttendanceSchedule) error
	deleteFn          func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeScheduleRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeScheduleRepo) Create(ctx context.Context, s *AttendanceSchedule) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*AttendanceSchedule, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeScheduleRepo) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceSchedule, error) {
	if f.findByDayFn != nil {
		return f.findByDayFn(ctx, employeeID, date)
	}
	return nil, nil
}

func (f *fakeScheduleRepo) FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AttendanceSchedule, error) {
	if f.findByRangeFn != nil {
		return f.findByRangeFn(ctx, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeScheduleRepo) ExistsForDay(ctx context.Context, employeeID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
	if f.existsForDayFn != nil {
		return f.existsForDayFn(ctx, employeeID, date, excludeID)
	}
	return false, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, s *AttendanceSchedule) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, s)
	}
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeDirectory struct {
	existsFn   func(ctx context.Context, employeeID string) (bool, error)
	isActiveFn func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeDirectory) Exists(ctx context.Context, employeeID string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeDirectory) IsActive(ctx context.Context, employeeID string) (bool, error) {
	if f.isActiveFn != nil {
		return f.isActiveFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeDirectory) DepartmentID(ctx context.Context, employeeID string) (string, error) {
	return "", nil
}

func validEntry() *AttendanceSchedule {
	return &AttendanceSchedule{
		ID:            uuid.New(),
		EmployeeID:    uuid.New(),
		ScheduleDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ScheduleType:  TypeNormal,
		WorkStartTime: domain.NewTimeOfDay(9, 0),
		WorkEndTime:   domain.NewTimeOfDay(18, 0),
	}
}

func TestValidateAcceptsCleanEntry(t *testing.T) {
	v := NewConflictValidator(&fakeScheduleRepo{}, &fakeDirectory{})
	assert.NoError(t, v.Validate(context.Background(), validEntry()))
}

func TestValidateRejectsUnknownEmployee(t *testing.T) {
	dir := &fakeDirectory{existsFn: func(ctx context.Context, id string) (bool, error) {
		return false, nil
	}}
	v := NewConflictValidator(&fakeScheduleRepo{}, dir)
	err := v.Validate(context.Background(), validEntry())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestValidateRejectsInactiveEmployee(t *testing.T) {
	dir := &fakeDirectory{isActiveFn: func(ctx context.Context, id string) (bool, error) {
		return false, nil
	}}
	v := NewConflictValidator(&fakeScheduleRepo{}, dir)
	err := v.Validate(context.Background(), validEntry())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeInactive)
}

func TestValidateRejectsDuplicateDay(t *testing.T) {
	repo := &fakeScheduleRepo{
		existsForDayFn: func(ctx context.Context, employeeID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	v := NewConflictValidator(repo, &fakeDirectory{})
	err := v.Validate(context.Background(), validEntry())
	assert.ErrorIs(t, err, scheduleerrors.ErrScheduleConflict)
}

func TestValidateExcludesSelfOnUpdate(t *testing.T) {
	entry := validEntry()
	var gotExclude *uuid.UUID
	repo := &fakeScheduleRepo{
		existsForDayFn: func(ctx context.Context, employeeID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
			gotExclude = excludeID
			return false, nil
		},
	}
	v := NewConflictValidator(repo, &fakeDirectory{})
	assert.NoError(t, v.Validate(context.Background(), entry))
	if assert.NotNil(t, gotExclude) {
		assert.Equal(t, entry.ID, *gotExclude)
	}
}

func TestValidateRejectsInvertedWorkWindow(t *testing.T) {
	entry := validEntry()
	entry.WorkStartTime = domain.NewTimeOfDay(18, 0)
	entry.WorkEndTime = domain.NewTimeOfDay(9, 0)

	v := NewConflictValidator(&fakeScheduleRepo{}, &fakeDirectory{})
	err := v.Validate(context.Background(), entry)
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidWorkWindow)
}

func TestValidateRejectsBreakOutsideWorkWindow(t *testing.T) {
	entry := validEntry()
	bs := domain.NewTimeOfDay(8, 0)
	be := domain.NewTimeOfDay(12, 30)
	entry.BreakStartTime = &bs
	entry.BreakEndTime = &be

	v := NewConflictValidator(&fakeScheduleRepo{}, &fakeDirectory{})
	err := v.Validate(context.Background(), entry)
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidBreakWindow)
}

func TestValidateRejectsHalfOpenBreakWindow(t *testing.T) {
	entry := validEntry()
	bs := domain.NewTimeOfDay(12, 0)
	entry.BreakStartTime = &bs

	v := NewConflictValidator(&fakeScheduleRepo{}, &fakeDirectory{})
	err := v.Validate(context.Background(), entry)
	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidBreakWindow)
}
