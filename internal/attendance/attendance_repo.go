package attendance

//go:generate mockgen -source=attendance_repo.go -destination=mocks/attendance_repo_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *AttendanceRecord) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceRecord, error)
	FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AttendanceRecord, error)
	// ListAbnormal returns records in the range carrying any exception,
	// newest day first.
	ListAbnormal(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error)
	Update(ctx context.Context, r *AttendanceRecord) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds a session to the caller's transaction so every repository
// call on it commits or rolls back with that transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, record *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceRecord, error) {
	var record AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND record_date = ?", employeeID, date.Format("2006-01-02")).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND record_date BETWEEN ? AND ?",
			employeeID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("record_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListAbnormal(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("record_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Where("exception_type IS NOT NULL AND exception_type <> ''").
		Order("record_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, record *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}
