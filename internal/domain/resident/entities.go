package resident

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var ErrNotFound = errors.New("resident not found")

// Resident rows are created only by promoting an approved membership request,
// never directly by a resident.
type Resident struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"resident_id"`
	ResidentName string         `gorm:"column:resident_name;size:120;not null" json:"resident_name"`
	NationalID   string         `gorm:"column:national_id;size:20;not null;uniqueIndex:ux_residents_national_id" json:"national_id"`
	PhoneNumber  string         `gorm:"column:phone_number;size:20;not null" json:"phone_number"`
	Email        string         `gorm:"column:email;size:120;not null" json:"email"`
	HouseNumber  string         `gorm:"column:house_number;size:20;not null" json:"house_number"`
	CourtName    string         `gorm:"column:court_name;size:60;not null" json:"court_name"`
	RoleName     string         `gorm:"column:role_name;size:30;not null" json:"role_name"`
	DateJoined   time.Time      `gorm:"column:date_joined;not null" json:"date_joined"`
	Status       Status         `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	TotalDue     float64        `gorm:"column:total_due;type:decimal(18,2);default:0" json:"total_due"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Resident) TableName() string { return "residents" }
