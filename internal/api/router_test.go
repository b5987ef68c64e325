package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleet-management/internal/models"
	"fleet-management/internal/modules/company"
	"fleet-management/internal/modules/dashboard"
	"fleet-management/internal/modules/driver"
	"fleet-management/internal/modules/fixedtrip"
	"fleet-management/internal/modules/floatingtrip"
	"fleet-management/internal/modules/payment"
	"fleet-management/internal/modules/report"
	"fleet-management/internal/modules/route"
	"fleet-management/internal/modules/user"
	"fleet-management/internal/modules/vehicle"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "router-secret"

// Handlers without services: only requests rejected by middleware may reach them.
func newRouter() *echo.Echo {
	e := echo.New()
	SetupRoutes(e, Handlers{
		User:         user.NewHandler(nil),
		Driver:       driver.NewHandler(nil),
		Vehicle:      vehicle.NewHandler(nil),
		Route:        route.NewHandler(nil),
		FixedTrip:    fixedtrip.NewHandler(nil),
		FloatingTrip: floatingtrip.NewHandler(nil),
		Payment:      payment.NewHandler(nil),
		Report:       report.NewHandler(nil),
		Company:      company.NewHandler(nil),
		Dashboard:    dashboard.NewHandler(nil),
	}, secret, 0)
	return e
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: "6f1c7a52-24a4-4c1c-9f5e-0d9a3b7e1a10",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(e *echo.Echo, method, target, auth string) int {
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestSetupRoutes_Registered(t *testing.T) {
	e := newRouter()
	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /auth/login",
		"GET /auth/me",
		"DELETE /users/:userId",
		"POST /vehicle-types",
		"GET /fixed-trips/next-document-no",
		"POST /floating-trips/preview",
		"GET /floating-trips/export.xlsx",
		"GET /payments/balance",
		"GET /reports/driver-ledger/export.xlsx",
		"POST /reports/driver-ledger/email",
		"POST /company",
		"GET /dashboard",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestSetupRoutes_Public(t *testing.T) {
	e := newRouter()
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/", ""))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/healthz", ""))
}

func TestSetupRoutes_RequiresToken(t *testing.T) {
	e := newRouter()
	for _, target := range []string{"/drivers", "/floating-trips", "/payments/balance?driver_id=1", "/dashboard", "/company", "/auth/me"} {
		assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, target, ""), target)
	}
}

func TestSetupRoutes_AdminOnly(t *testing.T) {
	e := newRouter()
	userToken := bearer(t, models.RoleUser)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/users"},
		{http.MethodDelete, "/drivers/1"},
		{http.MethodDelete, "/vehicles/1"},
		{http.MethodDelete, "/routes/1"},
		{http.MethodDelete, "/fixed-trips/1"},
		{http.MethodDelete, "/floating-trips/1"},
		{http.MethodDelete, "/payments/1"},
		{http.MethodPost, "/vehicle-types"},
		{http.MethodPost, "/company"},
	}
	for _, tt := range tests {
		assert.Equal(t, http.StatusForbidden, serve(e, tt.method, tt.target, userToken), tt.method+" "+tt.target)
	}
}
