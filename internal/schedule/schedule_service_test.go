package schedule

import (
	"context"
	"testing"
	"time"

	scheduleerrors "go-workforce/internal/schedule/errors"
	"go-workforce/internal/shared/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validCreateRequest() CreateScheduleRequest {
	return CreateScheduleRequest{
		EmployeeID:    uuid.NewString(),
		ScheduleDate:  "2026-03-02",
		ScheduleType:  TypeNormal,
		WorkStartTime: "09:00",
		WorkEndTime:   "18:00",
	}
}

func TestCreateSchedulePersistsEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var created *AttendanceSchedule
	repo := &fakeScheduleRepo{
		createFn: func(ctx context.Context, s *AttendanceSchedule) error {
			created = s
			return nil
		},
	}
	validator := NewConflictValidator(repo, &fakeDirectory{})

	svc := NewService(db, repo, validator, cache.Noop{})
	resp, err := svc.Create(context.Background(), validCreateRequest())

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, TypeNormal, created.ScheduleType)
	assert.Equal(t, "2026-03-02", resp.ScheduleDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateScheduleRejectsConflictBeforeWriting(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeScheduleRepo{
		existsForDayFn: func(ctx context.Context, employeeID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		},
		createFn: func(ctx context.Context, s *AttendanceSchedule) error {
			t.Fatal("conflicting entry must not reach the repository")
			return nil
		},
	}
	validator := NewConflictValidator(repo, &fakeDirectory{})

	svc := NewService(db, repo, validator, cache.Noop{})
	_, err = svc.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, scheduleerrors.ErrScheduleConflict)
	// No transaction should have been opened for a rejected entry.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateScheduleRejectsBadOvertimeRate(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rate := "-1.5"
	req := validCreateRequest()
	req.ScheduleType = TypeOvertime
	req.OvertimeRate = &rate

	svc := NewService(db, &fakeScheduleRepo{}, NewConflictValidator(&fakeScheduleRepo{}, &fakeDirectory{}), cache.Noop{})
	_, err = svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, scheduleerrors.ErrInvalidOvertimeRate)
}

func TestCreateScheduleInvalidatesDayCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	rc := &recordingCache{}
	repo := &fakeScheduleRepo{}
	req := validCreateRequest()

	svc := NewService(db, repo, NewConflictValidator(repo, &fakeDirectory{}), rc)
	_, err = svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, []string{cache.ScheduleKey(req.EmployeeID, req.ScheduleDate)}, rc.invalidated)
}

type recordingCache struct {
	cache.Noop
	invalidated []string
}

func (c *recordingCache) Invalidate(ctx context.Context, keys ...string) error {
	c.invalidated = append(c.invalidated, keys...)
	return nil
}
