package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	domainUser "estate-access-service/internal/domain/user"
	"estate-access-service/internal/testutil/usermock"
	"estate-access-service/internal/usecase/auth"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func tokenUsecase(t *testing.T) (*auth.Usecase, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	usr := &domainUser.User{ID: 3, Email: "sec@example.com", PasswordHash: string(hash), Role: domainUser.RoleSecurity}
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domainUser.User, error) {
			return usr, nil
		},
	}
	uc := auth.NewUsecase(users, "test-secret", 24)
	res, err := uc.Login(context.Background(), auth.LoginInput{Email: usr.Email, Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return uc, res.Token
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
}

func TestRequireAuth(t *testing.T) {
	uc, token := tokenUsecase(t)

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "valid bearer token", header: "Bearer " + token, wantCode: http.StatusOK},
		{name: "raw token without prefix", header: token, wantCode: http.StatusOK},
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.token", wantCode: http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/visitors", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := RequireAuth(uc)(func(c echo.Context) error {
				if ClaimsFrom(c) == nil {
					t.Fatalf("claims not stashed on context")
				}
				return okHandler(c)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler err: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("code: want %d, got %d (%s)", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{name: "exact match", role: "admin", allowed: []string{"admin"}, wantCode: http.StatusOK},
		{name: "case-insensitive match", role: "Admin", allowed: []string{"admin"}, wantCode: http.StatusOK},
		{name: "any of several", role: "security", allowed: []string{"admin", "security"}, wantCode: http.StatusOK},
		{name: "wrong role", role: "resident", allowed: []string{"admin"}, wantCode: http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/logs", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(claimsContextKey, &auth.Claims{UserID: 3, Role: tc.role})

			h := RequireRoles(tc.allowed...)(okHandler)
			if err := h(c); err != nil {
				t.Fatalf("handler err: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("code: want %d, got %d", tc.wantCode, rec.Code)
			}
		})
	}
}

func TestRequireRoles_WithoutAuth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireRoles("admin")(okHandler)
	if err := h(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code: want 401, got %d", rec.Code)
	}
}
