package http

import (
	"net/http"
	"strings"

	"estate-access-service/internal/adapter/middleware"
	domainUser "estate-access-service/internal/domain/user"
	"estate-access-service/internal/usecase/visitor"

	"github.com/labstack/echo/v4"
)

type VisitorHandler struct{ uc *visitor.Usecase }

func NewVisitorHandler(uc *visitor.Usecase) *VisitorHandler { return &VisitorHandler{uc: uc} }

// Register creates a pass hosted by the calling resident.
func (h *VisitorHandler) Register(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.ResidentID == nil {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "no resident identity on token"})
	}

	var req visitor.RegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	p, err := h.uc.Register(c.Request().Context(), *claims.ResidentID, req)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *VisitorHandler) Get(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("pass_code"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	// Residents only see passes they host.
	claims := middleware.ClaimsFrom(c)
	if claims != nil && strings.EqualFold(claims.Role, domainUser.RoleResident) {
		if claims.ResidentID == nil || *claims.ResidentID != p.ResidentID {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "visitor pass not found"})
		}
	}
	return c.JSON(http.StatusOK, p)
}

func (h *VisitorHandler) Approve(c echo.Context) error {
	if err := h.uc.Approve(c.Request().Context(), c.Param("pass_code")); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "visitor pass approved"})
}

func (h *VisitorHandler) Reject(c echo.Context) error {
	if err := h.uc.Reject(c.Request().Context(), c.Param("pass_code")); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "visitor pass rejected"})
}

func (h *VisitorHandler) L2Approve(c echo.Context) error {
	if err := h.uc.L2Approve(c.Request().Context(), c.Param("pass_code")); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "visitor pass cleared by security"})
}

func (h *VisitorHandler) CheckIn(c echo.Context) error {
	if err := h.uc.CheckIn(c.Request().Context(), c.Param("pass_code"), actorID(c)); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "visitor checked in"})
}

func (h *VisitorHandler) CheckOut(c echo.Context) error {
	if err := h.uc.CheckOut(c.Request().Context(), c.Param("pass_code"), actorID(c)); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "visitor checked out"})
}

// List returns the caller's own passes for residents, everything (optionally
// filtered by status) for staff.
func (h *VisitorHandler) List(c echo.Context) error {
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
	out, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func actorID(c echo.Context) uint64 {
	if claims := middleware.ClaimsFrom(c); claims != nil {
		return claims.UserID
	}
	return 0
}
