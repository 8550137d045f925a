package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "go-workforce/internal/attendance/errors"
	"go-workforce/internal/domain"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/rule"
	"go-workforce/internal/shared/cache"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Punches before this wall-clock time are treated as device clock garbage.
var earliestPunch = domain.NewTimeOfDay(4, 0)

//go:generate mockgen -source=attendance_service.go -destination=mocks/attendance_service_mock.go -package=mocks
type Service interface {
	SubmitPunch(ctx context.Context, req SubmitPunchRequest) (RecordResponse, error)
	GetToday(ctx context.Context, employeeID string) (RecordResponse, error)
	GetByEmployeeAndRange(ctx context.Context, employeeID, from, to string) ([]RecordResponse, error)
	ListAbnormal(ctx context.Context, from, to string) ([]RecordResponse, error)
	ApplyMakeupPunch(ctx context.Context, req MakeupPunchRequest) (RecordResponse, error)
	RecalculateRange(ctx context.Context, req RecalculateRangeRequest) (RecalculateResponse, error)
	Backfill(ctx context.Context, req BackfillRequest) (BackfillResponse, error)
	DayStatus(ctx context.Context, employeeID, date string) (DayStatusResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	rules     rule.Resolver
	overtime  OvertimeCalculator
	holidays  HolidayResolver
	directory employee.Directory
	engine    *AutoCompletionEngine
	cache     cache.Cache
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	rules rule.Resolver,
	overtime OvertimeCalculator,
	holidays HolidayResolver,
	directory employee.Directory,
	engine *AutoCompletionEngine,
	c cache.Cache,
) Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outbox,
		rules:     rules,
		overtime:  overtime,
		holidays:  holidays,
		directory: directory,
		engine:    engine,
		cache:     c,
		logger:    zap.L().Named("attendance.service"),
	}
}

func (s *service) SubmitPunch(ctx context.Context, req SubmitPunchRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RecordResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	punchTime, err := time.Parse(time.RFC3339, req.PunchTime)
	if err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidDate
	}
	if req.Direction != DirectionIn && req.Direction != DirectionOut {
		return RecordResponse{}, attendanceerrors.ErrInvalidDirection
	}
	if domain.FromClock(punchTime).Before(earliestPunch) {
		return RecordResponse{}, attendanceerrors.ErrPunchOutsideWindow
	}

	if err := s.requireActiveEmployee(ctx, employeeID); err != nil {
		return RecordResponse{}, err
	}

	day := domain.DateOf(punchTime)
	resolved, err := s.rules.Resolve(ctx, employeeID, day)
	if err != nil {
		return RecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	record, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return RecordResponse{}, err
	}

	creating := record == nil || errors.Is(err, gorm.ErrRecordNotFound)
	if creating {
		record = &AttendanceRecord{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			RecordDate: day,
		}
	}

	switch req.Direction {
	case DirectionIn:
		// Re-punching IN before any OUT overwrites the time in place; a
		// day never has more than one record.
		record.PunchInTime = &punchTime
		if req.Location != "" {
			record.PunchInLocation = req.Location
		}
	case DirectionOut:
		record.PunchOutTime = &punchTime
		if req.Location != "" {
			record.PunchOutLocation = req.Location
		}
	}
	if req.DeviceRef != "" {
		record.DeviceRef = req.DeviceRef
	}

	if err := s.classify(ctx, record, resolved); err != nil {
		return RecordResponse{}, err
	}

	if creating {
		err = qtx.Create(ctx, record)
	} else {
		err = qtx.Update(ctx, record)
	}
	if err != nil {
		s.logger.Error("persist punch failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
		return RecordResponse{}, mapRepositoryError(err)
	}

	if err := s.queueRecordedEvent(ctx, tx, rid, record); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.invalidateDay(ctx, employeeID, day)
	s.logger.Info("punch processed",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID.String()),
		zap.String("direction", req.Direction),
		zap.String("status", record.AttendanceStatus),
	)
	return mapToResponse(*record), nil
}

// classify re-derives status, exception, hours, and overtime from the
// record's punch times against the resolved rule. It is the single source of
// truth for both live punches and recalculation.
func (s *service) classify(ctx context.Context, record *AttendanceRecord, resolved rule.AttendanceRule) error {
	late := record.PunchInTime != nil && domain.FromClock(*record.PunchInTime).After(resolved.WorkStartTime)
	early := record.PunchOutTime != nil && domain.FromClock(*record.PunchOutTime).Before(resolved.WorkEndTime)

	switch {
	case late && early:
		record.AttendanceStatus = StatusAbnormal
		record.ExceptionType = strPtr(ExceptionLateEarlyLeave)
	case late:
		record.AttendanceStatus = StatusLate
		record.ExceptionType = strPtr(ExceptionLate)
	case early:
		record.AttendanceStatus = StatusEarlyLeave
		record.ExceptionType = strPtr(ExceptionEarlyLeave)
	default:
		record.AttendanceStatus = StatusNormal
		record.ExceptionType = nil
	}

	record.WorkHours = decimal.Zero.Round(2)
	if record.PunchInTime != nil && record.PunchOutTime != nil {
		record.WorkHours = s.overtime.WorkHours(*record.PunchInTime, *record.PunchOutTime)
	}

	record.OvertimeHours = decimal.Zero.Round(2)
	record.OvertimeRate = nil
	if record.PunchOutTime != nil && domain.FromClock(*record.PunchOutTime).After(resolved.WorkEndTime) {
		result, err := s.overtime.Overtime(ctx, record.EmployeeID, record.RecordDate, *record.PunchOutTime, resolved.WorkEndTime)
		if err != nil {
			return err
		}
		record.OvertimeHours = result.OvertimeHours
		if result.OvertimeHours.IsPositive() {
			rate := result.Rate
			record.OvertimeRate = &rate
		}
	}
	return nil
}

func (s *service) queueRecordedEvent(ctx context.Context, tx *sql.Tx, rid string, record *AttendanceRecord) error {
	event := events.AttendanceRecordedEvent{
		EventType:     "attendance_recorded",
		EmployeeID:    record.EmployeeID.String(),
		Date:          record.RecordDate.Format(domain.ISODate),
		Status:        record.AttendanceStatus,
		WorkHours:     record.WorkHours.StringFixed(2),
		OvertimeHours: record.OvertimeHours.StringFixed(2),
		OccurredAt:    time.Now().UTC(),
	}
	if record.ExceptionType != nil {
		event.ExceptionType = *record.ExceptionType
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "attendance_record",
		AggregateID:   record.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AttendanceRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetToday(ctx context.Context, employeeID string) (RecordResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return RecordResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	today := domain.DateOf(time.Now().UTC())
	key := cache.RecordKey(employeeID, today.Format(domain.ISODate))
	if raw, ok, cerr := s.cache.Get(ctx, key); cerr == nil && ok {
		var resp RecordResponse
		if json.Unmarshal([]byte(raw), &resp) == nil {
			return resp, nil
		}
	}

	record, err := s.repo.FindByEmployeeAndDate(ctx, id, today)
	if err != nil {
		return RecordResponse{}, mapRepositoryError(err)
	}

	resp := mapToResponse(*record)
	if raw, jerr := json.Marshal(resp); jerr == nil {
		_ = s.cache.Set(ctx, key, string(raw), cache.DefaultTTL)
	}
	return resp, nil
}

// DayStatus classifies a calendar day for an employee without touching any
// attendance record.
func (s *service) DayStatus(ctx context.Context, employeeID, date string) (DayStatusResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return DayStatusResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	day, err := time.Parse(domain.ISODate, date)
	if err != nil {
		return DayStatusResponse{}, attendanceerrors.ErrInvalidDate
	}

	holiday, err := s.holidays.IsHoliday(ctx, id, day)
	if err != nil {
		return DayStatusResponse{}, err
	}
	working, err := s.holidays.IsWorkingDay(ctx, id, day)
	if err != nil {
		return DayStatusResponse{}, err
	}

	return DayStatusResponse{
		EmployeeID:   employeeID,
		Date:         day.Format(domain.ISODate),
		IsHoliday:    holiday,
		IsWorkingDay: working,
	}, nil
}

func (s *service) GetByEmployeeAndRange(ctx context.Context, employeeID, from, to string) ([]RecordResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByEmployeeAndRange(ctx, id, fromDate, toDate)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListAbnormal(ctx context.Context, from, to string) ([]RecordResponse, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAbnormal(ctx, fromDate, toDate)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) ApplyMakeupPunch(ctx context.Context, req MakeupPunchRequest) (RecordResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RecordResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	day, err := time.Parse(domain.ISODate, req.Date)
	if err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidDate
	}
	if err := s.requireActiveEmployee(ctx, employeeID); err != nil {
		return RecordResponse{}, err
	}

	var processedBy *uuid.UUID
	if actor := contextutil.GetActorID(ctx); actor != "" {
		if actorID, perr := uuid.Parse(actor); perr == nil {
			processedBy = &actorID
		}
	}
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	record, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	creating := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, err
		}
		creating = true
		record = &AttendanceRecord{
			ID:               uuid.New(),
			EmployeeID:       employeeID,
			RecordDate:       day,
			AttendanceStatus: StatusNormal,
			WorkHours:        decimal.Zero.Round(2),
			OvertimeHours:    decimal.Zero.Round(2),
		}
	}

	record.ExceptionType = strPtr(ExceptionForgetPunch)
	record.Processed = true
	record.ProcessedBy = processedBy
	record.ProcessedTime = &now
	if req.Remark != "" {
		record.Remark = req.Remark
	}

	if creating {
		err = qtx.Create(ctx, record)
	} else {
		err = qtx.Update(ctx, record)
	}
	if err != nil {
		return RecordResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.invalidateDay(ctx, employeeID, day)
	return mapToResponse(*record), nil
}

// RecalculateRange re-derives punched records against current rules.
// Synthesized records (no punches) keep the status the backfill gave them.
func (s *service) RecalculateRange(ctx context.Context, req RecalculateRangeRequest) (RecalculateResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RecalculateResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	fromDate, toDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return RecalculateResponse{}, err
	}

	rows, err := s.repo.FindByEmployeeAndRange(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return RecalculateResponse{}, mapRepositoryError(err)
	}

	updated := 0
	for i := range rows {
		record := &rows[i]
		if record.PunchInTime == nil && record.PunchOutTime == nil {
			continue
		}
		resolved, err := s.rules.Resolve(ctx, employeeID, record.RecordDate)
		if err != nil {
			return RecalculateResponse{}, err
		}
		if err := s.classify(ctx, record, resolved); err != nil {
			return RecalculateResponse{}, err
		}
		if err := s.repo.Update(ctx, record); err != nil {
			return RecalculateResponse{}, mapRepositoryError(err)
		}
		s.invalidateDay(ctx, employeeID, record.RecordDate)
		updated++
	}

	s.logger.Info("range recalculated",
		zap.String("employee_id", employeeID.String()),
		zap.Int("updated", updated),
	)
	return RecalculateResponse{Updated: updated}, nil
}

func (s *service) Backfill(ctx context.Context, req BackfillRequest) (BackfillResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BackfillResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	fromDate, toDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return BackfillResponse{}, err
	}
	if err := s.requireActiveEmployee(ctx, employeeID); err != nil {
		return BackfillResponse{}, err
	}

	created, err := s.engine.Backfill(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return BackfillResponse{}, err
	}
	return BackfillResponse{Created: created}, nil
}

func (s *service) requireActiveEmployee(ctx context.Context, employeeID uuid.UUID) error {
	exists, err := s.directory.Exists(ctx, employeeID.String())
	if err != nil {
		return err
	}
	if !exists {
		return employeeerrors.ErrEmployeeNotFound
	}
	active, err := s.directory.IsActive(ctx, employeeID.String())
	if err != nil {
		return err
	}
	if !active {
		return employeeerrors.ErrEmployeeInactive
	}
	return nil
}

func (s *service) invalidateDay(ctx context.Context, employeeID uuid.UUID, date time.Time) {
	key := cache.RecordKey(employeeID.String(), date.Format(domain.ISODate))
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.Error("invalidate record cache failed", zap.String("key", key), zap.Error(err))
	}
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.Parse(domain.ISODate, from)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
	}
	toDate, err := time.Parse(domain.ISODate, to)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
	}
	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateRange
	}
	return fromDate, toDate, nil
}

func strPtr(s string) *string { return &s }

func mapToResponse(r AttendanceRecord) RecordResponse {
	resp := RecordResponse{
		ID:               r.ID.String(),
		EmployeeID:       r.EmployeeID.String(),
		RecordDate:       r.RecordDate.Format(domain.ISODate),
		AttendanceStatus: r.AttendanceStatus,
		ExceptionType:    r.ExceptionType,
		WorkHours:        r.WorkHours.StringFixed(2),
		OvertimeHours:    r.OvertimeHours.StringFixed(2),
		Processed:        r.Processed,
		Remark:           r.Remark,
	}
	if r.PunchInTime != nil {
		v := r.PunchInTime.Format(time.RFC3339)
		resp.PunchInTime = &v
	}
	if r.PunchOutTime != nil {
		v := r.PunchOutTime.Format(time.RFC3339)
		resp.PunchOutTime = &v
	}
	if r.OvertimeRate != nil {
		v := r.OvertimeRate.StringFixed(2)
		resp.OvertimeRate = &v
	}
	return resp
}

func mapToListResponse(rows []AttendanceRecord) []RecordResponse {
	out := make([]RecordResponse, len(rows))
	for i, r := range rows {
		out[i] = mapToResponse(r)
	}
	return out
}
