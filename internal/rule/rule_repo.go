package rule

//go:generate mockgen -source=rule_repo.go -destination=mocks/rule_repo_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rule *AttendanceRule) error
	FindByID(ctx context.Context, id uuid.UUID) (*AttendanceRule, error)
	FindAll(ctx context.Context) ([]AttendanceRule, error)
	// FindIndividualRules returns enabled individual rules for the employee
	// valid on date, highest priority first, newest first on ties.
	FindIndividualRules(ctx context.Context, employeeID uuid.UUID, date time.Time) ([]AttendanceRule, error)
	FindDepartmentRules(ctx context.Context, departmentID uuid.UUID, date time.Time) ([]AttendanceRule, error)
	FindGlobalRules(ctx context.Context, date time.Time) ([]AttendanceRule, error)
	Update(ctx context.Context, rule *AttendanceRule) error
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

func (r *repository) Create(ctx context.Context, rule *AttendanceRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*AttendanceRule, error) {
	var rule AttendanceRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) FindAll(ctx context.Context) ([]AttendanceRule, error) {
	var rules []AttendanceRule
	err := r.db.WithContext(ctx).
		Order("scope ASC, priority DESC, created_at DESC").
		Find(&rules).Error
	return rules, err
}

// validOn filters to enabled rules whose effective window covers date.
// A nil bound is open-ended.
func validOn(db *gorm.DB, date time.Time) *gorm.DB {
	day := date.Format("2006-01-02")
	return db.Where("enabled = ?", true).
		Where("effective_from IS NULL OR effective_from <= ?", day).
		Where("effective_to IS NULL OR effective_to >= ?", day)
}

func (r *repository) FindIndividualRules(ctx context.Context, employeeID uuid.UUID, date time.Time) ([]AttendanceRule, error) {
	var rules []AttendanceRule
	err := validOn(r.db.WithContext(ctx), date).
		Where("scope = ? AND employee_id = ?", ScopeIndividual, employeeID).
		Order("priority DESC, created_at DESC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) FindDepartmentRules(ctx context.Context, departmentID uuid.UUID, date time.Time) ([]AttendanceRule, error) {
	var rules []AttendanceRule
	err := validOn(r.db.WithContext(ctx), date).
		Where("scope = ? AND department_id = ?", ScopeDepartment, departmentID).
		Order("priority DESC, created_at DESC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) FindGlobalRules(ctx context.Context, date time.Time) ([]AttendanceRule, error) {
	var rules []AttendanceRule
	err := validOn(r.db.WithContext(ctx), date).
		Where("scope = ?", ScopeGlobal).
		Order("priority DESC, created_at DESC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) Update(ctx context.Context, rule *AttendanceRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&AttendanceRule{}, "id = ?", id).Error
}
