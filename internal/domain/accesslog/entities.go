package accesslog

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("access log entry not found")

type LogType string

const (
	LogTypeAccess  LogType = "access"
	LogTypeAudit   LogType = "audit"
	LogTypeVisitor LogType = "visitor"
)

// Entry is append-only: the application never mutates or deletes rows,
// it only reads them back for dashboards and export.
type Entry struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TimestampUTC time.Time `gorm:"column:timestamp_utc;not null;index:idx_access_logs_ts" json:"timestamp_utc"`
	UserID       *uint64   `gorm:"column:user_id;index" json:"user_id,omitempty"`
	Action       string    `gorm:"column:action;size:60;not null" json:"action"`
	Resource     string    `gorm:"column:resource;size:120" json:"resource"`
	IPAddress    string    `gorm:"column:ip_address;size:45" json:"ip_address"`
	UserAgent    string    `gorm:"column:user_agent;size:255" json:"user_agent"`
	Referrer     string    `gorm:"column:referrer;size:255" json:"referrer"`
	Metadata     string    `gorm:"column:metadata;type:text" json:"metadata,omitempty"`
	LogType      LogType   `gorm:"column:log_type;type:varchar(20);default:'access'" json:"log_type"`
}

func (Entry) TableName() string { return "access_logs" }

// GateOverride records a manual gate action by security or an admin. Append-only.
type GateOverride struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GateID    string    `gorm:"column:gate_id;size:30;not null" json:"gate_id"`
	Action    string    `gorm:"column:action;size:30;not null" json:"action"`
	Reason    string    `gorm:"column:reason;type:text;not null" json:"reason"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (GateOverride) TableName() string { return "gate_overrides" }

// DailyCount feeds chart aggregation, ascending by day.
type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}
