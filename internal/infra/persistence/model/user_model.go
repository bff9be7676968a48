// Package model holds the GORM persistence models. They mirror the SQL schema
// in migrations/ and never leave the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username              string    `gorm:"type:varchar(50);uniqueIndex:uk_users_username;not null"`
	Email                 string    `gorm:"type:varchar(100);uniqueIndex:uk_users_email;not null"`
	PasswordHash          string    `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName             string    `gorm:"type:varchar(50)"`
	LastName              string    `gorm:"type:varchar(50)"`
	Enabled               bool      `gorm:"not null"`
	AccountNonExpired     bool      `gorm:"not null"`
	AccountNonLocked      bool      `gorm:"not null"`
	CredentialsNonExpired bool      `gorm:"not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	LastLogin             *time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserRoleModel mirrors the 'user_roles' relation table.
type UserRoleModel struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (UserRoleModel) TableName() string {
	return "user_roles"
}
