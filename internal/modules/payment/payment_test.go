package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/internal/modules/fleet"
	"fleet-management/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo mirrors the balance arithmetic of the SQL repository.
type fakeRepo struct {
	seq      int64
	credits  map[int]float64
	payments map[int]*models.Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{credits: map[int]float64{}, payments: map[int]*models.Payment{}}
}

func (f *fakeRepo) NextDocumentNo(context.Context) (string, error) {
	return utils.FormatDocumentNo(utils.PrefixPayment, f.seq+1), nil
}

func (f *fakeRepo) Balance(_ context.Context, driverID, excludeID int) (*models.DriverBalance, error) {
	b := &models.DriverBalance{DriverID: driverID, Credit: f.credits[driverID]}
	for _, p := range f.payments {
		if p.DriverID == driverID && p.ID != excludeID {
			b.Debit += p.Amount
		}
	}
	b.Balance = allowance.Round2(b.Credit - b.Debit)
	return b, nil
}

func (f *fakeRepo) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	b, _ := f.Balance(ctx, p.DriverID, 0)
	cp := *p
	cp.DocumentNo, _ = f.NextDocumentNo(ctx)
	f.seq++
	cp.ID = int(f.seq)
	cp.CurrentBalance = allowance.Round2(b.Balance - cp.Amount)
	f.payments[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) List(_ context.Context, _ models.ListFilter, _ models.TripDateRange) ([]*models.Payment, int, error) {
	out := []*models.Payment{}
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	existing, ok := f.payments[p.ID]
	if !ok {
		return nil, models.ErrNotFound
	}
	b, _ := f.Balance(ctx, p.DriverID, p.ID)
	cp := *p
	cp.DocumentNo = existing.DocumentNo
	cp.CurrentBalance = allowance.Round2(b.Balance - cp.Amount)
	f.payments[p.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.payments[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.payments, id)
	return nil
}

type drivers map[int]string

func (d drivers) GetDriver(_ context.Context, id int) (*models.Driver, error) {
	status, ok := d[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &models.Driver{ID: id, Name: "Driver", Status: status}, nil
}

func (d drivers) GetVehicle(context.Context, int) (*models.Vehicle, error) {
	return nil, models.ErrNotFound
}

func (d drivers) GetRoute(context.Context, int) (*models.Route, error) {
	return nil, models.ErrNotFound
}

func newService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	repo.credits[1] = 1500
	d := drivers{1: models.StatusActive, 2: models.StatusInactive}
	return NewService(repo, fleet.NewChecker(d, d, d), nil), repo
}

func TestService_CreatePayment_CurrentBalance(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	first, err := svc.CreatePayment(ctx, models.PaymentRequest{PaymentDate: "2024-05-10", DriverID: 1, Amount: 500, PaymentMode: models.PaymentModeCash})
	require.NoError(t, err)
	assert.Equal(t, "PAY-0001", first.DocumentNo)
	assert.Equal(t, 1000.0, first.CurrentBalance)

	second, err := svc.CreatePayment(ctx, models.PaymentRequest{PaymentDate: "2024-05-11", DriverID: 1, Amount: 1200.456, PaymentMode: models.PaymentModeBank, Remarks: "  advance "})
	require.NoError(t, err)
	assert.Equal(t, 1200.46, second.Amount)
	assert.Equal(t, -200.46, second.CurrentBalance, "overpayment goes negative")
	assert.Equal(t, "advance", second.Remarks)
}

func TestService_CreatePayment_InactiveDriver(t *testing.T) {
	svc, repo := newService()

	_, err := svc.CreatePayment(context.Background(), models.PaymentRequest{PaymentDate: "2024-05-10", DriverID: 2, Amount: 10, PaymentMode: models.PaymentModeCash})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Empty(t, repo.payments)
}

func TestService_GetBalance_ExcludePayment(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, err := svc.CreatePayment(ctx, models.PaymentRequest{PaymentDate: "2024-05-10", DriverID: 1, Amount: 400, PaymentMode: models.PaymentModeCash})
	require.NoError(t, err)

	b, err := svc.GetBalance(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1100.0, b.Balance)

	b, err = svc.GetBalance(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, b.Balance)

	_, err = svc.GetBalance(ctx, 42, 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestService_UpdatePayment_RecomputesBalance(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, err := svc.CreatePayment(ctx, models.PaymentRequest{PaymentDate: "2024-05-10", DriverID: 1, Amount: 400, PaymentMode: models.PaymentModeCash})
	require.NoError(t, err)

	updated, err := svc.UpdatePayment(ctx, p.ID, models.PaymentRequest{PaymentDate: "2024-05-10", DriverID: 1, Amount: 700, PaymentMode: models.PaymentModeCash})
	require.NoError(t, err)
	assert.Equal(t, p.DocumentNo, updated.DocumentNo)
	assert.Equal(t, 800.0, updated.CurrentBalance)

	_, err = svc.UpdatePayment(ctx, 99, models.PaymentRequest{PaymentDate: "2024-05-10", DriverID: 1, Amount: 1, PaymentMode: models.PaymentModeCash})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestHandler_GetBalance(t *testing.T) {
	svc, _ := newService()
	h := NewHandler(svc)
	e := echo.New()

	tests := []struct {
		target string
		code   int
	}{
		{"/payments/balance?driver_id=1", http.StatusOK},
		{"/payments/balance?driver_id=1&exclude_payment_id=3", http.StatusOK},
		{"/payments/balance", http.StatusBadRequest},
		{"/payments/balance?driver_id=1&exclude_payment_id=x", http.StatusBadRequest},
		{"/payments/balance?driver_id=9", http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.target, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.GetBalance(e.NewContext(req, rec)))
		assert.Equal(t, tt.code, rec.Code, tt.target)
	}
}

func TestHandler_CreatePayment_Validation(t *testing.T) {
	svc, _ := newService()
	h := NewHandler(svc)
	e := echo.New()

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "valid", body: `{"payment_date":"2024-05-10","driver_id":1,"amount":250,"payment_mode":"CASH"}`, code: http.StatusCreated},
		{name: "zero amount", body: `{"payment_date":"2024-05-10","driver_id":1,"amount":0,"payment_mode":"CASH"}`, code: http.StatusBadRequest},
		{name: "negative amount", body: `{"payment_date":"2024-05-10","driver_id":1,"amount":-5,"payment_mode":"CASH"}`, code: http.StatusBadRequest},
		{name: "unknown mode", body: `{"payment_date":"2024-05-10","driver_id":1,"amount":5,"payment_mode":"UPI"}`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			require.NoError(t, h.CreatePayment(e.NewContext(req, rec)))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestLockOrder(t *testing.T) {
	assert.Equal(t, []int64{3}, lockOrder(3, 3))
	assert.Equal(t, []int64{2, 7}, lockOrder(7, 2))
	assert.Equal(t, []int64{2, 7}, lockOrder(2, 7))
	assert.Equal(t, []int64{5}, lockOrder(0, 5))
	assert.Empty(t, lockOrder())
}
