package user

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	RoleAdmin    = "admin"
	RoleResident = "resident"
	RoleSecurity = "security"
)

type User struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName     string         `gorm:"column:full_name;size:120;not null" json:"full_name"`
	Email        string         `gorm:"column:email;size:120;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role         string         `gorm:"column:role;size:30;not null" json:"role"`
	NationalID   string         `gorm:"column:national_id;size:20" json:"national_id,omitempty"`
	ResidentID   *uint64        `gorm:"column:resident_id;index" json:"resident_id,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string { return "users" }

// HasRole compares case-insensitively; tokens minted by older deployments
// carry mixed-case role names.
func (u *User) HasRole(role string) bool { return strings.EqualFold(u.Role, role) }
