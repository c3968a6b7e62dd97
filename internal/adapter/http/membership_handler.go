package http

import (
	"net/http"

	"estate-access-service/internal/usecase/membership"

	"github.com/labstack/echo/v4"
)

type MembershipHandler struct{ uc *membership.Usecase }

func NewMembershipHandler(uc *membership.Usecase) *MembershipHandler {
	return &MembershipHandler{uc: uc}
}

func (h *MembershipHandler) Submit(c echo.Context) error {
	var req membership.SubmitInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Submit(c.Request().Context(), req)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MembershipHandler) Count(c echo.Context) error {
	n, err := h.uc.Count(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}

func (h *MembershipHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MembershipHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MembershipHandler) Approve(c echo.Context) error {
	if err := h.uc.Approve(c.Request().Context(), c.Param("request_id")); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "request approved"})
}

type rejectReq struct {
	Reason string `json:"reason"`
}

func (h *MembershipHandler) Reject(c echo.Context) error {
	var req rejectReq
	// reason body is optional
	_ = c.Bind(&req)
	if err := h.uc.Reject(c.Request().Context(), c.Param("request_id"), req.Reason); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "request rejected"})
}

func (h *MembershipHandler) Promote(c echo.Context) error {
	res, err := h.uc.Promote(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *MembershipHandler) SyncAll(c echo.Context) error {
	res, err := h.uc.SyncAll(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":      "residents synced",
		"synced_count": res.SyncedCount,
	})
}
