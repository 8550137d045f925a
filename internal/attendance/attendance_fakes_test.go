package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/rule"
	"go-workforce/internal/schedule"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	records map[string]*AttendanceRecord
	created []*AttendanceRecord
	updated []*AttendanceRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*AttendanceRecord)}
}

func dayKey(employeeID uuid.UUID, date time.Time) string {
	return employeeID.String() + ":" + date.Format("2006-01-02")
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, r *AttendanceRecord) error {
	f.records[dayKey(r.EmployeeID, r.RecordDate)] = r
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceRecord, error) {
	if r, ok := f.records[dayKey(employeeID, date)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if r, ok := f.records[dayKey(employeeID, day)]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAbnormal(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	for _, r := range f.records {
		if r.HasException() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, r *AttendanceRecord) error {
	f.records[dayKey(r.EmployeeID, r.RecordDate)] = r
	f.updated = append(f.updated, r)
	return nil
}

type fakeScheduleRepo struct {
	entries map[string]*schedule.AttendanceSchedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{entries: make(map[string]*schedule.AttendanceSchedule)}
}

func (f *fakeScheduleRepo) put(entry *schedule.AttendanceSchedule) {
	f.entries[dayKey(entry.EmployeeID, entry.ScheduleDate)] = entry
}

func (f *fakeScheduleRepo) WithTx(tx *sql.Tx) schedule.Repository { return f }

func (f *fakeScheduleRepo) Create(ctx context.Context, s *schedule.AttendanceSchedule) error {
	f.put(s)
	return nil
}

func (f *fakeScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*schedule.AttendanceSchedule, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeScheduleRepo) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*schedule.AttendanceSchedule, error) {
	if e, ok := f.entries[dayKey(employeeID, date)]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeScheduleRepo) FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]schedule.AttendanceSchedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ExistsForDay(ctx context.Context, employeeID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
	_, ok := f.entries[dayKey(employeeID, date)]
	return ok, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, s *schedule.AttendanceSchedule) error {
	f.put(s)
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeResolver struct {
	rule rule.AttendanceRule
}

func (f *fakeResolver) Resolve(ctx context.Context, employeeID uuid.UUID, date time.Time) (rule.AttendanceRule, error) {
	return f.rule, nil
}

type fakeDirectory struct {
	exists bool
	active bool
}

func activeDirectory() *fakeDirectory { return &fakeDirectory{exists: true, active: true} }

func (f *fakeDirectory) Exists(ctx context.Context, employeeID string) (bool, error) {
	return f.exists, nil
}

func (f *fakeDirectory) IsActive(ctx context.Context, employeeID string) (bool, error) {
	return f.active, nil
}

func (f *fakeDirectory) DepartmentID(ctx context.Context, employeeID string) (string, error) {
	return "", nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }
