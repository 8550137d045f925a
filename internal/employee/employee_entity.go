package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber   string         `gorm:"column:employee_number;type:varchar(30);not null;uniqueIndex:uq_employee_number"`
	FullName         string         `gorm:"column:full_name;type:varchar(150);not null"`
	Email            string         `gorm:"column:email;type:varchar(150);not null;uniqueIndex:uq_employee_email"`
	Phone            *string        `gorm:"column:phone;type:varchar(30)"`
	DepartmentID     *uuid.UUID     `gorm:"column:department_id;type:uuid;index"`
	HireDate         time.Time      `gorm:"column:hire_date;type:date;not null"`
	EmploymentStatus string         `gorm:"column:employment_status;type:varchar(20);not null;default:ACTIVE"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
