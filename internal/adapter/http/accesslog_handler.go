package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"estate-access-service/internal/adapter/middleware"
	"estate-access-service/internal/usecase/accesslog"

	"github.com/labstack/echo/v4"
)

type AccessLogHandler struct{ uc *accesslog.Usecase }

func NewAccessLogHandler(uc *accesslog.Usecase) *AccessLogHandler {
	return &AccessLogHandler{uc: uc}
}

func (h *AccessLogHandler) Record(c echo.Context) error {
	var req accesslog.RecordInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	// The request context, not the body, is authoritative for actor and client.
	if claims := middleware.ClaimsFrom(c); claims != nil {
		uid := claims.UserID
		req.UserID = &uid
	}
	if req.IPAddress == "" {
		req.IPAddress = c.RealIP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request().UserAgent()
	}
	if req.Referrer == "" {
		req.Referrer = c.Request().Referer()
	}

	if err := h.uc.Record(c.Request().Context(), req); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "log recorded"})
}

func (h *AccessLogHandler) Query(c echo.Context) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	limit := queryInt(c, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	out, err := h.uc.Query(c.Request().Context(), from, to, limit, offset)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccessLogHandler) DailyCounts(c echo.Context) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	out, err := h.uc.DailyCounts(c.Request().Context(), from, to)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccessLogHandler) RecordOverride(c echo.Context) error {
	var req accesslog.OverrideInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	var userID uint64
	if claims := middleware.ClaimsFrom(c); claims != nil {
		userID = claims.UserID
	}
	o, err := h.uc.RecordOverride(c.Request().Context(), userID, req)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *AccessLogHandler) ListOverrides(c echo.Context) error {
	out, err := h.uc.ListOverrides(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// parseRange reads from/to query params as RFC 3339. Missing bounds default
// to the last 7 days.
func parseRange(c echo.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from, to := now.AddDate(0, 0, -7), now
	if s := c.QueryParam("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from timestamp, want RFC 3339")
		}
		from = t
	}
	if s := c.QueryParam("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to timestamp, want RFC 3339")
		}
		to = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to precedes from")
	}
	return from, to, nil
}

func queryInt(c echo.Context, name string, def int) int {
	s := c.QueryParam(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
