package http

import (
	"net/http"

	"estate-access-service/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type MpesaHandler struct{ uc *payment.Usecase }

func NewMpesaHandler(uc *payment.Usecase) *MpesaHandler { return &MpesaHandler{uc: uc} }

// Callback acknowledges every delivery with ResultCode 0 so Daraja stops
// retrying. Malformed or unknown payloads are absorbed, never surfaced.
func (h *MpesaHandler) Callback(c echo.Context) error {
	var payload payment.CallbackPayload
	if err := c.Bind(&payload); err == nil && payload.Body.StkCallback.CheckoutRequestID != "" {
		h.uc.HandleCallback(c.Request().Context(), &payload)
	}
	return c.JSON(http.StatusOK, map[string]any{"ResultCode": 0, "ResultDesc": "Accepted"})
}
