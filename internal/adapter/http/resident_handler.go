package http

import (
	"net/http"
	"strconv"

	"estate-access-service/internal/adapter/middleware"
	"estate-access-service/internal/usecase/payment"
	"estate-access-service/internal/usecase/resident"

	"github.com/labstack/echo/v4"
)

type ResidentHandler struct {
	uc       *resident.Usecase
	payments *payment.Usecase
}

func NewResidentHandler(uc *resident.Usecase, payments *payment.Usecase) *ResidentHandler {
	return &ResidentHandler{uc: uc, payments: payments}
}

// Profile returns the caller's own resident row, scoped by token claims.
func (h *ResidentHandler) Profile(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.ResidentID == nil {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "no resident identity on token"})
	}
	r, err := h.uc.Profile(c.Request().Context(), *claims.ResidentID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ResidentHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type selfPayReq struct {
	Phone       string `json:"phone" validate:"required,msisdn"`
	ServiceName string `json:"service_name"`
	// Whole shillings only, matching what the STK push sends to the payer.
	Amount float64 `json:"amount" validate:"required,gt=0,intlike"`
}

// Pay initiates an STK push for the caller's own resident account.
func (h *ResidentHandler) Pay(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.ResidentID == nil {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "no resident identity on token"})
	}
	var req selfPayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	res, err := h.payments.Initiate(c.Request().Context(), payment.InitiateInput{
		ResidentID: *claims.ResidentID,
		Amount:     req.Amount,
		Phone:      req.Phone,
		Reference:  req.ServiceName,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"payment": res})
}

type setDueReq struct {
	TotalDue float64 `json:"total_due" validate:"gte=0,dec2"`
}

func (h *ResidentHandler) SetTotalDue(c echo.Context) error {
	residentID, err := strconv.ParseUint(c.Param("resident_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid resident_id"})
	}
	var req setDueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.uc.SetTotalDue(c.Request().Context(), residentID, req.TotalDue); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "total due updated"})
}
