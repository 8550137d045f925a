package employee

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Directory is the narrow lookup contract the attendance engine depends on.
// It deliberately exposes nothing about the employee row itself so engine
// packages stay decoupled from directory CRUD.
type Directory interface {
	Exists(ctx context.Context, employeeID string) (bool, error)
	IsActive(ctx context.Context, employeeID string) (bool, error)
	DepartmentID(ctx context.Context, employeeID string) (string, error)
}

type directory struct {
	repo Repository
}

func NewDirectory(repo Repository) Directory {
	return &directory{repo: repo}
}

func (d *directory) Exists(ctx context.Context, employeeID string) (bool, error) {
	_, err := d.repo.FindByID(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *directory) IsActive(ctx context.Context, employeeID string) (bool, error) {
	e, err := d.repo.FindByID(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return e.EmploymentStatus == StatusActive, nil
}

// DepartmentID returns "" without error for employees outside any department,
// so rule resolution can skip the department tier cleanly.
func (d *directory) DepartmentID(ctx context.Context, employeeID string) (string, error) {
	e, err := d.repo.FindByID(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if e.DepartmentID == nil {
		return "", nil
	}
	return e.DepartmentID.String(), nil
}

