package http

import (
	"errors"
	"log"
	"net/http"

	domainMembership "estate-access-service/internal/domain/membership"
	domainPayment "estate-access-service/internal/domain/payment"
	domainResident "estate-access-service/internal/domain/resident"
	domainUser "estate-access-service/internal/domain/user"
	domainVisitor "estate-access-service/internal/domain/visitor"
	"estate-access-service/internal/infrastructure/mpesa"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// writeDomainErr maps domain errors onto the HTTP taxonomy. Anything
// unrecognized is a 500 with a generic message; full detail stays in the
// server log only.
func writeDomainErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainUser.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
	case errors.Is(err, domainMembership.ErrNotFound),
		errors.Is(err, domainResident.ErrNotFound),
		errors.Is(err, domainPayment.ErrNotFound),
		errors.Is(err, domainVisitor.ErrNotFound),
		errors.Is(err, domainUser.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domainMembership.ErrDuplicateNational):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainMembership.ErrInvalidTransition),
		errors.Is(err, domainPayment.ErrInvalidTransition),
		errors.Is(err, domainPayment.ErrAlreadyFailed),
		errors.Is(err, domainVisitor.ErrInvalidTransition),
		errors.Is(err, domainVisitor.ErrNotL2Approved):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "duplicate record"})
	case errors.Is(err, mpesa.ErrProvider):
		log.Printf("payment provider error: %v", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "payment provider unavailable"})
	default:
		log.Printf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
