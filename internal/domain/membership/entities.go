package membership

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusSynced   Status = "synced"
)

var (
	ErrNotFound          = errors.New("membership request not found")
	ErrDuplicateNational = errors.New("an open request already exists for this national id")
	ErrInvalidTransition = errors.New("invalid membership request transition")
)

type Request struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	RequestID    string     `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_membership_requests_request_id" json:"request_id"`
	ResidentName string     `gorm:"column:resident_name;size:120;not null" json:"resident_name"`
	NationalID   string     `gorm:"column:national_id;size:20;not null;index:idx_membership_requests_national" json:"national_id"`
	PhoneNumber  string     `gorm:"column:phone_number;size:20;not null" json:"phone_number"`
	Email        string     `gorm:"column:email;size:120;not null" json:"email"`
	HouseNumber  string     `gorm:"column:house_number;size:20;not null" json:"house_number"`
	CourtName    string     `gorm:"column:court_name;size:60;not null" json:"court_name"`
	RoleName     string     `gorm:"column:role_name;size:30;not null" json:"role_name"`
	Status       Status     `gorm:"column:status;type:varchar(20);default:'pending';index" json:"status"`
	RejectReason string     `gorm:"column:reject_reason;type:text" json:"reject_reason,omitempty"`
	RequestedAt  time.Time  `gorm:"column:requested_at;autoCreateTime" json:"requested_at"`
	ProcessedAt  *time.Time `gorm:"column:processed_at" json:"processed_at,omitempty"`
	// Filled once the request has been promoted into a resident row.
	RecordID  *uint64        `gorm:"column:record_id;index" json:"record_id,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Request) TableName() string { return "membership_requests" }
