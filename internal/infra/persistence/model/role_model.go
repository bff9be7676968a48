package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleModel mirrors the 'roles' table.
type RoleModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex:uk_roles_name;not null"`
	Description string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// PermissionModel mirrors the 'permissions' table.
type PermissionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex:uk_permissions_name;not null"`
	Description string    `gorm:"type:varchar(255)"`
	Resource    string    `gorm:"type:varchar(50);not null"`
	Action      string    `gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PermissionModel) TableName() string {
	return "permissions"
}

// RolePermissionModel mirrors the 'role_permissions' relation table.
type RolePermissionModel struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}
