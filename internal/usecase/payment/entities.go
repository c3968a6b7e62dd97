package payment

import (
	"time"

	"estate-access-service/internal/infrastructure/mpesa"
)

type InitiateInput struct {
	ResidentID uint64  `json:"resident_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Phone      string  `json:"phone" validate:"required"`
	Reference  string  `json:"reference"`
}

type InitiateResult struct {
	PaymentID   string                 `json:"payment_id"`
	STKResponse *mpesa.STKPushResponse `json:"stk_response"`
}

type PaymentDTO struct {
	PaymentID    string     `json:"payment_id"`
	ResidentID   uint64     `json:"resident_id"`
	Amount       float64    `json:"amount"`
	Method       string     `json:"payment_method"`
	Reference    string     `json:"reference"`
	MpesaReceipt string     `json:"mpesa_receipt,omitempty"`
	PhoneNumber  string     `json:"phone_number"`
	Status       string     `json:"status"`
	PaymentDate  time.Time  `json:"payment_date"`
	VerifiedBy   string     `json:"verified_by,omitempty"`
	VerifiedDate *time.Time `json:"verified_date,omitempty"`
}

// CallbackPayload is the Daraja STK callback envelope.
type CallbackPayload struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []CallbackItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

type CallbackItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// Receipt extracts the MpesaReceiptNumber metadata item, if present.
func (p *CallbackPayload) Receipt() string {
	for _, it := range p.Body.StkCallback.CallbackMetadata.Item {
		if it.Name == "MpesaReceiptNumber" {
			if s, ok := it.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}
