package payment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusArchived Status = "archived"
	StatusFailed   Status = "failed"
)

var (
	ErrNotFound          = errors.New("payment not found")
	ErrInvalidTransition = errors.New("invalid payment transition")
	// ErrAlreadyFailed surfaces an admin verify racing a failed provider callback.
	ErrAlreadyFailed = errors.New("payment already reported failed by provider")
)

type Payment struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	PaymentID  string  `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	ResidentID uint64  `gorm:"column:resident_id;not null;index:idx_payments_resident" json:"resident_id"`
	Amount     float64 `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Method     string  `gorm:"column:payment_method;size:30;not null" json:"payment_method"`
	Reference  string  `gorm:"column:reference;size:64" json:"reference"`
	// Provider correlation id for the STK push; callbacks are matched on it.
	CheckoutRequestID string         `gorm:"column:checkout_request_id;size:64;index:idx_payments_checkout" json:"-"`
	MpesaReceipt      string         `gorm:"column:mpesa_receipt;size:32" json:"mpesa_receipt,omitempty"`
	PhoneNumber       string         `gorm:"column:phone_number;size:20;not null" json:"phone_number"`
	Status            Status         `gorm:"column:status;type:varchar(20);default:'pending';index" json:"status"`
	PaymentDate       time.Time      `gorm:"column:payment_date;not null" json:"payment_date"`
	VerifiedBy        string         `gorm:"column:verified_by;size:120" json:"verified_by,omitempty"`
	VerifiedDate      *time.Time     `gorm:"column:verified_date" json:"verified_date,omitempty"`
	FailReason        string         `gorm:"column:fail_reason;type:text" json:"-"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Payment) TableName() string { return "payments" }

// VerifiedPayment is the denormalized reporting copy written when a payment is
// verified and archived. Exactly one row per archived payment.
type VerifiedPayment struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PaymentID    string    `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_verified_payments_payment_id" json:"payment_id"`
	ResidentID   uint64    `gorm:"column:resident_id;not null;index" json:"resident_id"`
	ResidentName string    `gorm:"column:resident_name;size:120;not null" json:"resident_name"`
	Amount       float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Reference    string    `gorm:"column:reference;size:64" json:"reference"`
	MpesaReceipt string    `gorm:"column:mpesa_receipt;size:32" json:"mpesa_receipt,omitempty"`
	VerifiedBy   string    `gorm:"column:verified_by;size:120;not null" json:"verified_by"`
	VerifiedDate time.Time `gorm:"column:verified_date;not null" json:"verified_date"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (VerifiedPayment) TableName() string { return "verified_payments" }

// Balance is the per-resident aggregate of verified payments against total due.
type Balance struct {
	ResidentID uint64  `json:"resident_id"`
	TotalPaid  float64 `json:"total_paid"`
	TotalDue   float64 `json:"total_due"`
	Balance    float64 `json:"balance"`
}
