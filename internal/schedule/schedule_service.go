package schedule

import (
	"context"
	"database/sql"
	"time"

	"go-workforce/internal/domain"
	employeeerrors "go-workforce/internal/employee/errors"
	scheduleerrors "go-workforce/internal/schedule/errors"
	"go-workforce/internal/shared/cache"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=schedule_service.go -destination=mocks/schedule_service_mock.go -package=mocks
type Service interface {
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (ScheduleResponse, error)
	GetByEmployeeAndRange(ctx context.Context, employeeID, from, to string) ([]ScheduleResponse, error)
	Update(ctx context.Context, id string, req UpdateScheduleRequest) (ScheduleResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	validator ConflictValidator
	cache     cache.Cache
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, validator ConflictValidator, c cache.Cache) Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &service{
		db:        db,
		repo:      repo,
		validator: validator,
		cache:     c,
		logger:    zap.L().Named("schedule.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	entry, err := entityFromCreate(req)
	if err != nil {
		return ScheduleResponse{}, err
	}

	if err := s.validator.Validate(ctx, entry); err != nil {
		return ScheduleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
		s.logger.Error("create schedule persist failed", zap.String("request_id", rid), zap.Error(err))
		return ScheduleResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ScheduleResponse{}, err
	}

	s.invalidateDay(ctx, entry.EmployeeID, entry.ScheduleDate)
	s.logger.Info("schedule entry created",
		zap.String("request_id", rid),
		zap.String("schedule_id", entry.ID.String()),
		zap.String("employee_id", entry.EmployeeID.String()),
		zap.String("date", entry.ScheduleDate.Format(domain.ISODate)),
	)
	return mapToResponse(*entry), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ScheduleResponse, error) {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidScheduleID
	}
	entry, err := s.repo.FindByID(ctx, scheduleID)
	if err != nil {
		return ScheduleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*entry), nil
}

func (s *service) GetByEmployeeAndRange(ctx context.Context, employeeID, from, to string) ([]ScheduleResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	fromDate, err := time.Parse(domain.ISODate, from)
	if err != nil {
		return nil, scheduleerrors.ErrInvalidDate
	}
	toDate, err := time.Parse(domain.ISODate, to)
	if err != nil {
		return nil, scheduleerrors.ErrInvalidDate
	}

	rows, err := s.repo.FindByEmployeeAndRange(ctx, empID, fromDate, toDate)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	out := make([]ScheduleResponse, len(rows))
	for i, row := range rows {
		out[i] = mapToResponse(row)
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateScheduleRequest) (ScheduleResponse, error) {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidScheduleID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	entry, err := qtx.FindByID(ctx, scheduleID)
	if err != nil {
		return ScheduleResponse{}, mapRepositoryError(err)
	}

	if err := applyUpdate(entry, req); err != nil {
		return ScheduleResponse{}, err
	}
	if err := s.validator.Validate(ctx, entry); err != nil {
		return ScheduleResponse{}, err
	}

	if err := qtx.Update(ctx, entry); err != nil {
		return ScheduleResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ScheduleResponse{}, err
	}

	s.invalidateDay(ctx, entry.EmployeeID, entry.ScheduleDate)
	return mapToResponse(*entry), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return scheduleerrors.ErrInvalidScheduleID
	}
	entry, err := s.repo.FindByID(ctx, scheduleID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, scheduleID); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidateDay(ctx, entry.EmployeeID, entry.ScheduleDate)
	return nil
}

func (s *service) invalidateDay(ctx context.Context, employeeID uuid.UUID, date time.Time) {
	key := cache.ScheduleKey(employeeID.String(), date.Format(domain.ISODate))
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.Error("invalidate schedule cache failed", zap.String("key", key), zap.Error(err))
	}
}

func entityFromCreate(req CreateScheduleRequest) (*AttendanceSchedule, error) {
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	date, err := time.Parse(domain.ISODate, req.ScheduleDate)
	if err != nil {
		return nil, scheduleerrors.ErrInvalidDate
	}

	entry := &AttendanceSchedule{
		ID:           uuid.New(),
		EmployeeID:   empID,
		ScheduleDate: date,
		Remark:       req.Remark,
	}
	if err := applyFields(entry, req.ScheduleType, req.IsHoliday, req.OvertimeRate, req.ShiftID,
		req.WorkStartTime, req.WorkEndTime, req.BreakStartTime, req.BreakEndTime); err != nil {
		return nil, err
	}
	return entry, nil
}

func applyUpdate(entry *AttendanceSchedule, req UpdateScheduleRequest) error {
	entry.Remark = req.Remark
	return applyFields(entry, req.ScheduleType, req.IsHoliday, req.OvertimeRate, req.ShiftID,
		req.WorkStartTime, req.WorkEndTime, req.BreakStartTime, req.BreakEndTime)
}

func applyFields(entry *AttendanceSchedule, scheduleType string, isHoliday bool, rate, shiftID *string,
	workStart, workEnd string, breakStart, breakEnd *string) error {

	if !validScheduleType(scheduleType) {
		return scheduleerrors.ErrInvalidScheduleType
	}
	entry.ScheduleType = scheduleType
	entry.IsHoliday = isHoliday

	entry.OvertimeRate = nil
	if rate != nil {
		d, err := decimal.NewFromString(*rate)
		if err != nil || d.IsNegative() {
			return scheduleerrors.ErrInvalidOvertimeRate
		}
		entry.OvertimeRate = &d
	}

	entry.ShiftID = nil
	if shiftID != nil {
		id, err := uuid.Parse(*shiftID)
		if err != nil {
			return scheduleerrors.ErrInvalidShiftRef
		}
		entry.ShiftID = &id
	}

	ws, err := domain.ParseTimeOfDay(workStart)
	if err != nil {
		return scheduleerrors.ErrInvalidWorkWindow
	}
	we, err := domain.ParseTimeOfDay(workEnd)
	if err != nil {
		return scheduleerrors.ErrInvalidWorkWindow
	}
	entry.WorkStartTime = ws
	entry.WorkEndTime = we

	entry.BreakStartTime = nil
	entry.BreakEndTime = nil
	if breakStart != nil && *breakStart != "" {
		bs, err := domain.ParseTimeOfDay(*breakStart)
		if err != nil {
			return scheduleerrors.ErrInvalidBreakWindow
		}
		entry.BreakStartTime = &bs
	}
	if breakEnd != nil && *breakEnd != "" {
		be, err := domain.ParseTimeOfDay(*breakEnd)
		if err != nil {
			return scheduleerrors.ErrInvalidBreakWindow
		}
		entry.BreakEndTime = &be
	}
	return nil
}

func mapToResponse(s AttendanceSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:            s.ID.String(),
		EmployeeID:    s.EmployeeID.String(),
		ScheduleDate:  s.ScheduleDate.Format(domain.ISODate),
		ScheduleType:  s.ScheduleType,
		IsHoliday:     s.IsHoliday,
		WorkStartTime: s.WorkStartTime.String(),
		WorkEndTime:   s.WorkEndTime.String(),
		Remark:        s.Remark,
	}
	if s.OvertimeRate != nil {
		v := s.OvertimeRate.StringFixed(2)
		resp.OvertimeRate = &v
	}
	if s.ShiftID != nil {
		v := s.ShiftID.String()
		resp.ShiftID = &v
	}
	if s.BreakStartTime != nil {
		v := s.BreakStartTime.String()
		resp.BreakStartTime = &v
	}
	if s.BreakEndTime != nil {
		v := s.BreakEndTime.String()
		resp.BreakEndTime = &v
	}
	return resp
}
