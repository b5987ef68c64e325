package report

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-management/internal/models"
	"fleet-management/internal/modules/fleet"
	"fleet-management/pkg/email"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeRepo stores dated transactions and answers ledger queries over them.
type fakeRepo struct {
	entries []*models.LedgerEntry
}

func (f *fakeRepo) OpeningBalance(_ context.Context, _ int, before string) (float64, error) {
	var net float64
	for _, e := range f.entries {
		if e.TransDate < before {
			net += e.CrAmount - e.DrAmount
		}
	}
	return net, nil
}

func (f *fakeRepo) Entries(_ context.Context, _ int, from, to string) ([]*models.LedgerEntry, error) {
	out := []*models.LedgerEntry{}
	for _, e := range f.entries {
		if e.TransDate >= from && e.TransDate <= to {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type drivers struct{}

func (drivers) GetDriver(_ context.Context, id int) (*models.Driver, error) {
	if id != 1 {
		return nil, models.ErrNotFound
	}
	return &models.Driver{ID: 1, Name: "Ravi Kumar", Status: models.StatusInactive}, nil
}

func (drivers) GetVehicle(context.Context, int) (*models.Vehicle, error) { return nil, models.ErrNotFound }
func (drivers) GetRoute(context.Context, int) (*models.Route, error)     { return nil, models.ErrNotFound }

type company struct{}

func (company) GetSettings(context.Context) (*models.CompanySettings, error) {
	return &models.CompanySettings{CompanyName: "Sri Murugan Transports"}, nil
}

type recordingSender struct {
	to, subject, text, html string
	err                     error
}

func (r *recordingSender) SendEmail(_ context.Context, to, subject, text, html string) error {
	r.to, r.subject, r.text, r.html = to, subject, text, html
	return r.err
}

func sampleRepo() *fakeRepo {
	return &fakeRepo{entries: []*models.LedgerEntry{
		{TransDate: "2024-04-28", BillNo: "FX-0001", TransactionType: models.TransactionFixedTrip, CrAmount: 750},
		{TransDate: "2024-04-30", BillNo: "PAY-0001", TransactionType: models.TransactionPayment, DrAmount: 500},
		{TransDate: "2024-05-02", BillNo: "FT-0001", TransactionType: models.TransactionFloatingTrip, Description: "Ambattur", CrAmount: 553},
		{TransDate: "2024-05-02", BillNo: "FX-0002", TransactionType: models.TransactionFixedTrip, Description: "Chennai - Vellore", CrAmount: 750},
		{TransDate: "2024-05-10", BillNo: "PAY-0002", TransactionType: models.TransactionPayment, Description: "CASH", DrAmount: 1000.5},
		{TransDate: "2024-06-01", BillNo: "FT-0002", TransactionType: models.TransactionFloatingTrip, CrAmount: 60},
	}}
}

func newService(sender email.ServiceInterface) *Service {
	tm, _ := email.NewTemplateManager()
	return NewService(sampleRepo(), fleet.NewChecker(drivers{}, drivers{}, drivers{}), company{}, sender, tm)
}

func mayLedger() models.LedgerRequest {
	return models.LedgerRequest{DriverID: 1, FromDate: "2024-05-01", ToDate: "2024-05-31"}
}

func TestService_DriverLedger(t *testing.T) {
	svc := newService(nil)

	l, err := svc.DriverLedger(context.Background(), mayLedger())
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", l.Driver.Name)
	assert.Equal(t, models.LedgerSummary{OpeningBalance: 250, TotalCredit: 1303, TotalDebit: 1000.5, Balance: 552.5}, l.Summary)

	require.Len(t, l.Transactions, 3)
	assert.Equal(t, "FT-0001", l.Transactions[0].BillNo)
	assert.Equal(t, 803.0, l.Transactions[0].RunningBalance)
	assert.Equal(t, 1553.0, l.Transactions[1].RunningBalance)
	assert.Equal(t, 552.5, l.Transactions[2].RunningBalance)
	assert.Equal(t, l.Summary.Balance, l.Transactions[2].RunningBalance)
}

func TestService_DriverLedger_Errors(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	_, err := svc.DriverLedger(ctx, models.LedgerRequest{DriverID: 1, FromDate: "2024-06-01", ToDate: "2024-05-01"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.DriverLedger(ctx, models.LedgerRequest{DriverID: 7, FromDate: "2024-05-01", ToDate: "2024-05-31"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestService_DriverLedger_EmptyPeriod(t *testing.T) {
	svc := newService(nil)

	l, err := svc.DriverLedger(context.Background(), models.LedgerRequest{DriverID: 1, FromDate: "2025-01-01", ToDate: "2025-01-31"})
	require.NoError(t, err)
	assert.Empty(t, l.Transactions)
	assert.Equal(t, 612.5, l.Summary.OpeningBalance)
	assert.Equal(t, 612.5, l.Summary.Balance)
}

func TestService_EmailDriverLedger(t *testing.T) {
	sender := &recordingSender{}
	svc := newService(sender)

	req := models.EmailLedgerRequest{LedgerRequest: mayLedger(), To: "owner@example.com"}
	require.NoError(t, svc.EmailDriverLedger(context.Background(), req))
	assert.Equal(t, "owner@example.com", sender.to)
	assert.Contains(t, sender.subject, "Ravi Kumar")
	assert.Contains(t, sender.html, "Sri Murugan Transports")
	assert.Contains(t, sender.text, "Closing balance: 552.50")

	sender.err = errors.New("ses down")
	assert.ErrorIs(t, svc.EmailDriverLedger(context.Background(), req), sender.err)
}

func TestService_EmailDriverLedger_Disabled(t *testing.T) {
	svc := newService(nil)
	err := svc.EmailDriverLedger(context.Background(), models.EmailLedgerRequest{LedgerRequest: mayLedger(), To: "owner@example.com"})
	assert.ErrorIs(t, err, models.ErrEmailDisabled)
}

func TestHandler_DriverLedger(t *testing.T) {
	h := NewHandler(newService(nil))
	e := echo.New()

	tests := []struct {
		target string
		code   int
	}{
		{"/reports/driver-ledger?driver_id=1&from_date=2024-05-01&to_date=2024-05-31", http.StatusOK},
		{"/reports/driver-ledger?driver_id=1&from_date=2024-05-01", http.StatusBadRequest},
		{"/reports/driver-ledger?from_date=2024-05-01&to_date=2024-05-31", http.StatusBadRequest},
		{"/reports/driver-ledger?driver_id=1&from_date=2024-06-01&to_date=2024-05-31", http.StatusBadRequest},
		{"/reports/driver-ledger?driver_id=1&from_date=May&to_date=2024-05-31", http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.target, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.DriverLedger(e.NewContext(req, rec)))
		assert.Equal(t, tt.code, rec.Code, tt.target)
	}
}

func TestHandler_ExportDriverLedger(t *testing.T) {
	h := NewHandler(newService(nil))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reports/driver-ledger/export.xlsx?driver_id=1&from_date=2024-05-01&to_date=2024-05-31", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ExportDriverLedger(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "Driver_Ledger_Ravi_Kumar_")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Driver Ledger")
	require.NoError(t, err)
	require.Len(t, rows, 9) // 2 title lines, blank, header, opening, 3 entries, totals
	assert.Equal(t, "Opening balance", rows[4][3])
	assert.Equal(t, "250", rows[4][6])
	assert.Equal(t, "PAY-0002", rows[7][1])
	assert.Equal(t, "552.5", rows[8][6])
}

func TestHandler_EmailDriverLedger(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name   string
		sender email.ServiceInterface
		body   string
		code   int
	}{
		{name: "sent", sender: &recordingSender{}, body: `{"driver_id":1,"from_date":"2024-05-01","to_date":"2024-05-31","to":"owner@example.com"}`, code: http.StatusAccepted},
		{name: "bad address", sender: &recordingSender{}, body: `{"driver_id":1,"from_date":"2024-05-01","to_date":"2024-05-31","to":"owner"}`, code: http.StatusBadRequest},
		{name: "email disabled", sender: nil, body: `{"driver_id":1,"from_date":"2024-05-01","to_date":"2024-05-31","to":"owner@example.com"}`, code: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(newService(tt.sender))
			req := httptest.NewRequest(http.MethodPost, "/reports/driver-ledger/email", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			require.NoError(t, h.EmailDriverLedger(e.NewContext(req, rec)))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestEntriesQuery_OrdersByAllocation(t *testing.T) {
	assert.Contains(t, entriesQuery, "ORDER BY l.trans_date, l.type_order, l.row_id")
	assert.NotContains(t, entriesQuery, "ORDER BY l.trans_date, l.bill_no")
	for _, col := range []string{"t.id AS row_id", "2, f.id", "3, p.id"} {
		assert.Contains(t, ledgerSource, col)
	}
}
