package company

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleet-management/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	saved *models.CompanySettings
}

func (f *fakeRepo) Get(context.Context) (*models.CompanySettings, error) {
	if f.saved == nil {
		return &models.CompanySettings{}, nil
	}
	return f.saved, nil
}

func (f *fakeRepo) Upsert(_ context.Context, req models.CompanySettingsRequest) (*models.CompanySettings, error) {
	now := time.Now()
	f.saved = &models.CompanySettings{CompanyName: req.CompanyName, Address: req.Address, Phone: req.Phone, UpdatedAt: &now}
	return f.saved, nil
}

func TestHandler_GetCompany_Empty(t *testing.T) {
	h := NewHandler(NewService(&fakeRepo{}))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/company", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.GetCompany(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"company_name":"","address":"","phone":""}`, rec.Body.String())
}

func TestHandler_SaveCompany(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(NewService(repo))
	e := echo.New()

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "valid", body: `{"company_name":" Sri Murugan Transports ","address":"12 Anna Salai","phone":"+914422334455"}`, code: http.StatusOK},
		{name: "no phone", body: `{"company_name":"Sri Murugan Transports"}`, code: http.StatusOK},
		{name: "phone with letters", body: `{"company_name":"X","phone":"+91-44-2233"}`, code: http.StatusBadRequest},
		{name: "missing name", body: `{"address":"12 Anna Salai"}`, code: http.StatusBadRequest},
		{name: "blank name", body: `{"company_name":"   "}`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/company", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			require.NoError(t, h.SaveCompany(e.NewContext(req, rec)))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}

	settings, err := NewService(repo).GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sri Murugan Transports", settings.CompanyName)
}
