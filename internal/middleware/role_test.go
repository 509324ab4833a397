package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name       string
		role       interface{}
		allowed    []string
		wantStatus int
	}{
		{"admin allowed", "ADMIN", []string{"ADMIN"}, http.StatusOK},
		{"user rejected on admin route", "USER", []string{"ADMIN"}, http.StatusForbidden},
		{"either role allowed", "USER", []string{"ADMIN", "USER"}, http.StatusOK},
		{"missing role rejected", nil, []string{"ADMIN"}, http.StatusForbidden},
		{"non-string role rejected", 7, []string{"ADMIN"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}

			next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
			if err := RequireRole(tc.allowed...)(next)(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
