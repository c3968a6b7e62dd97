package membership

import "time"

type SubmitInput struct {
	ResidentName string `json:"resident_name" validate:"required"`
	NationalID   string `json:"national_id" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	HouseNumber  string `json:"house_number" validate:"required"`
	CourtName    string `json:"court_name" validate:"required"`
	RoleName     string `json:"role_name" validate:"required"`
}

type RequestDTO struct {
	RequestID    string     `json:"request_id"`
	ResidentName string     `json:"resident_name"`
	NationalID   string     `json:"national_id"`
	PhoneNumber  string     `json:"phone_number"`
	Email        string     `json:"email"`
	HouseNumber  string     `json:"house_number"`
	CourtName    string     `json:"court_name"`
	RoleName     string     `json:"role_name"`
	Status       string     `json:"status"`
	RequestedAt  time.Time  `json:"requested_at"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	ResidentID   *uint64    `json:"resident_id,omitempty"`
}

type PromoteResult struct {
	RequestID  string `json:"request_id"`
	ResidentID uint64 `json:"resident_id"`
	// Reused is true when an existing resident with the same national id was
	// merged into instead of creating a new row.
	Reused bool `json:"reused"`
}

type SyncAllResult struct {
	SyncedCount int `json:"synced_count"`
}
