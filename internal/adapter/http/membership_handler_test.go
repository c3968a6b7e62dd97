package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainMembership "estate-access-service/internal/domain/membership"
	domainResident "estate-access-service/internal/domain/resident"
	"estate-access-service/internal/domain/uow"
	"estate-access-service/internal/testutil/membershipmock"
	"estate-access-service/internal/testutil/residentmock"
	"estate-access-service/internal/testutil/uowmock"
	"estate-access-service/internal/usecase/membership"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func membershipHandler(requests *membershipmock.Repo) *MembershipHandler {
	uc := membership.NewUsecase(requests, &residentmock.Repo{}, uowmock.New())
	return NewMembershipHandler(uc)
}

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	e := newTestEcho()
	h := membershipHandler(&membershipmock.Repo{
		GetOpenByNationalIDFn: func(ctx context.Context, nationalID string) (*domainMembership.Request, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})

	body := `{"resident_name":"Jane Wanjiku","national_id":"12345678","phone_number":"254712345678",
		"email":"jane@example.com","house_number":"B12","court_name":"Acacia","role_name":"tenant"}`
	req := httptest.NewRequest(http.MethodPost, "/membership/requests", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Submit(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code: want 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var dto membership.RequestDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(dto.RequestID) != 32 || dto.Status != "pending" {
		t.Errorf("unexpected dto: %+v", dto)
	}
}

func TestSubmit_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	h := membershipHandler(&membershipmock.Repo{
		CreateFn: func(ctx context.Context, r *domainMembership.Request) error {
			t.Fatalf("Create must not be called on invalid input")
			return nil
		},
	})

	// missing everything but name, and a malformed email
	body := `{"resident_name":"Jane","email":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/membership/requests", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Submit(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code: want 400, got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !containsFieldMsg(resp.Details, "NationalID", "is required") {
		t.Errorf("missing NationalID detail: %+v", resp.Details)
	}
	if !containsFieldMsg(resp.Details, "Email", "valid email") {
		t.Errorf("missing Email detail: %+v", resp.Details)
	}
}

func TestSubmit_DuplicateNationalID_Conflicts(t *testing.T) {
	e := newTestEcho()
	h := membershipHandler(&membershipmock.Repo{
		GetOpenByNationalIDFn: func(ctx context.Context, nationalID string) (*domainMembership.Request, error) {
			return &domainMembership.Request{NationalID: nationalID}, nil
		},
	})

	body := `{"resident_name":"Jane Wanjiku","national_id":"12345678","phone_number":"254712345678",
		"email":"jane@example.com","house_number":"B12","court_name":"Acacia","role_name":"tenant"}`
	req := httptest.NewRequest(http.MethodPost, "/membership/requests", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Submit(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("code: want 409, got %d", rec.Code)
	}
}

func TestCount_ServesWithoutAuthContext(t *testing.T) {
	e := newTestEcho()
	h := membershipHandler(&membershipmock.Repo{
		CountFn: func(ctx context.Context) (int64, error) { return 12, nil },
	})

	// No claims on the context: the count endpoint is public.
	req := httptest.NewRequest(http.MethodGet, "/membership/requests/count", nil)
	rec := httptest.NewRecorder()

	if err := h.Count(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Count: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code: want 200, got %d", rec.Code)
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["count"] != 12 {
		t.Errorf("count: want 12, got %d", resp["count"])
	}
}

func TestApprove_UnknownRequest_NotFound(t *testing.T) {
	e := newTestEcho()
	h := membershipHandler(&membershipmock.Repo{
		ClaimStatusFn: func(ctx context.Context, requestID string, from, to domainMembership.Status) (bool, error) {
			return false, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/membership/requests/:request_id/approve")
	c.SetParamNames("request_id")
	c.SetParamValues(strings.Repeat("f", 32))

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code: want 404, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestPromote_DuplicateKeyRace_Conflicts(t *testing.T) {
	e := newTestEcho()
	requests := &membershipmock.Repo{
		GetByRequestIDForUpdateFn: func(ctx context.Context, requestID string) (*domainMembership.Request, error) {
			return &domainMembership.Request{
				RequestID:  requestID,
				NationalID: "12345678",
				Status:     domainMembership.StatusApproved,
			}, nil
		},
	}
	// A concurrent promote already inserted the resident between our existence
	// check and the insert; the unique index rejects the second row.
	residents := &residentmock.Repo{
		GetByNationalIDFn: func(ctx context.Context, nationalID string) (*domainResident.Resident, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, r *domainResident.Resident) error {
			return gorm.ErrDuplicatedKey
		},
	}
	uc := membership.NewUsecase(requests, residents,
		uowmock.Passthrough(uow.Repos{Memberships: requests, Residents: residents}))
	h := NewMembershipHandler(uc)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/membership/requests/:request_id/promote")
	c.SetParamNames("request_id")
	c.SetParamValues(strings.Repeat("f", 32))

	if err := h.Promote(c); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("code: want 409, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestPromote_NotApproved_Conflicts(t *testing.T) {
	e := newTestEcho()
	requests := &membershipmock.Repo{
		GetByRequestIDForUpdateFn: func(ctx context.Context, requestID string) (*domainMembership.Request, error) {
			return &domainMembership.Request{RequestID: requestID, Status: domainMembership.StatusPending}, nil
		},
	}
	uc := membership.NewUsecase(requests, &residentmock.Repo{},
		uowmock.Passthrough(uow.Repos{Memberships: requests, Residents: &residentmock.Repo{}}))
	h := NewMembershipHandler(uc)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/membership/requests/:request_id/promote")
	c.SetParamNames("request_id")
	c.SetParamValues(strings.Repeat("f", 32))

	if err := h.Promote(c); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("code: want 409, got %d (%s)", rec.Code, rec.Body.String())
	}
}
