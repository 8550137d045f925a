package rbac

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_role_name"`
	Description string    `gorm:"column:description;type:varchar(255)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Role) TableName() string { return "roles" }

// Permission is a resource/action pair the enforcer can grant. The catalog is
// seeded by migration; the API only reads it.
type Permission struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Resource string    `gorm:"column:resource;type:varchar(50);not null"`
	Action   string    `gorm:"column:action;type:varchar(50);not null"`
	Label    string    `gorm:"column:label;type:varchar(100)"`
	Category string    `gorm:"column:category;type:varchar(50)"`
}

func (Permission) TableName() string { return "permissions" }

type EmployeeRole struct {
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;primaryKey"`
	RoleID     uuid.UUID `gorm:"column:role_id;type:uuid;primaryKey"`
}

func (EmployeeRole) TableName() string { return "employee_roles" }

type RolePermission struct {
	RoleID       uuid.UUID `gorm:"column:role_id;type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"column:permission_id;type:uuid;primaryKey"`
}

func (RolePermission) TableName() string { return "role_permissions" }

// grantRow is the flattened join the enforcer loads policies from.
type grantRow struct {
	RoleID   uuid.UUID
	Resource string
	Action   string
}
