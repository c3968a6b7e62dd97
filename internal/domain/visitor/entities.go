package visitor

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
)

var (
	ErrNotFound = errors.New("visitor pass not found")
	// ErrInvalidTransition covers check-in on a pass that is not approved,
	// double check-in, and check-out before check-in.
	ErrInvalidTransition = errors.New("invalid visitor pass transition")
	ErrNotL2Approved     = errors.New("visitor pass lacks security approval")
)

// Pass is keyed publicly by its opaque pass code for every operation;
// the numeric id never leaves the store.
type Pass struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PassCode    string `gorm:"column:pass_code;size:12;not null;uniqueIndex:ux_visitor_passes_code" json:"pass_code"`
	VisitorName string `gorm:"column:visitor_name;size:120;not null" json:"visitor_name"`
	NationalID  string `gorm:"column:national_id;size:20;not null" json:"national_id"`
	PhoneNumber string `gorm:"column:phone_number;size:20;not null" json:"phone_number"`
	ResidentID  uint64 `gorm:"column:resident_id;not null;index:idx_visitor_passes_resident" json:"resident_id"`
	Status      Status `gorm:"column:status;type:varchar(20);default:'pending';index" json:"status"`
	// Secondary security-level approval, required before the gate honours the pass.
	L2Approved   bool           `gorm:"column:l2_approved;default:false" json:"l2_approved"`
	CheckedInAt  *time.Time     `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time     `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Pass) TableName() string { return "visitor_passes" }
