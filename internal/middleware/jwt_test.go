package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/utils"
)

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	at, err := utils.NewAccessToken(secret, 42, "USER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + at.Token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var gotUser, gotRole interface{}
			next := func(c echo.Context) error {
				gotUser = c.Get("user_id")
				gotRole = c.Get("role")
				return c.String(http.StatusOK, "ok")
			}
			if err := JWTAuth(secret)(next)(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if sub, _ := gotUser.(float64); uint64(sub) != 42 {
					t.Errorf("user_id = %v", gotUser)
				}
				if gotRole != "USER" {
					t.Errorf("role = %v", gotRole)
				}
			}
		})
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 1, "USER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	if err := JWTAuth("right-secret")(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
