package http

import (
	"net/http"
	"strings"

	"estate-access-service/internal/adapter/middleware"
	domainUser "estate-access-service/internal/domain/user"
	"estate-access-service/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type makePaymentReq struct {
	ResidentID uint64 `json:"resident_id" validate:"required"`
	// Daraja charges whole shillings; fractional amounts would be silently truncated.
	Amount    float64 `json:"amount" validate:"required,gt=0,intlike"`
	Phone     string  `json:"phone" validate:"required,msisdn"`
	Reference string  `json:"reference"`
}

func (h *PaymentHandler) MakePayment(c echo.Context) error {
	var req makePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	// Residents may only initiate payments against their own account.
	claims := middleware.ClaimsFrom(c)
	if claims != nil && strings.EqualFold(claims.Role, domainUser.RoleResident) {
		if claims.ResidentID == nil || *claims.ResidentID != req.ResidentID {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "cannot pay for another resident"})
		}
	}

	res, err := h.uc.Initiate(c.Request().Context(), payment.InitiateInput{
		ResidentID: req.ResidentID,
		Amount:     req.Amount,
		Phone:      req.Phone,
		Reference:  req.Reference,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"payment_id":   res.PaymentID,
		"stk_response": res.STKResponse,
	})
}

func (h *PaymentHandler) Verify(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	verifier := ""
	if claims != nil {
		verifier = claims.Email
	}
	if err := h.uc.VerifyAndArchive(c.Request().Context(), c.Param("payment_id"), verifier); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "payment verified"})
}

// Balances narrows to the caller's own row unless the caller is an admin.
func (h *PaymentHandler) Balances(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	var residentID uint64
	if claims != nil && strings.EqualFold(claims.Role, domainUser.RoleResident) {
		if claims.ResidentID == nil {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "no resident identity on token"})
		}
		residentID = *claims.ResidentID
	}
	out, err := h.uc.Balances(c.Request().Context(), residentID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) List(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims != nil && strings.EqualFold(claims.Role, domainUser.RoleResident) {
		if claims.ResidentID == nil {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "no resident identity on token"})
		}
		out, err := h.uc.ListByResident(c.Request().Context(), *claims.ResidentID)
		if err != nil {
			return writeDomainErr(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
