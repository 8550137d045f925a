package schedule

//go:generate mockgen -source=schedule_repo.go -destination=mocks/schedule_repo_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *AttendanceSchedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*AttendanceSchedule, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceSchedule, error)
	FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AttendanceSchedule, error)
	// ExistsForDay reports whether a live entry exists for (employee, date),
	// optionally excluding one row so updates do not conflict with themselves.
	ExistsForDay(ctx context.Context, employeeID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, s *AttendanceSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, s *AttendanceSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*AttendanceSchedule, error) {
	var entry AttendanceSchedule
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceSchedule, error) {
	var entry AttendanceSchedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND schedule_date = ?", employeeID, date.Format("2006-01-02")).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AttendanceSchedule, error) {
	var rows []AttendanceSchedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND schedule_date BETWEEN ? AND ?",
			employeeID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("schedule_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ExistsForDay(ctx context.Context, employeeID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&AttendanceSchedule{}).
		Where("employee_id = ? AND schedule_date = ?", employeeID, date.Format("2006-01-02"))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Update(ctx context.Context, s *AttendanceSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&AttendanceSchedule{}, "id = ?", id).Error
}
