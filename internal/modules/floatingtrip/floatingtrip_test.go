package floatingtrip

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/internal/modules/fleet"
	"fleet-management/pkg/export"
	"fleet-management/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeRepo struct {
	seq   int64
	trips map[int]*models.FloatingTrip
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{trips: map[int]*models.FloatingTrip{}}
}

func (f *fakeRepo) withTotal(t *models.FloatingTrip) *models.FloatingTrip {
	t.DriverName, t.VehicleName = "Ravi", "Tata 407"
	t.TotalAmount = allowance.Total(t.FoodAllowance, t.MileageAllowance, t.TimeBonus)
	return t
}

func (f *fakeRepo) NextDocumentNo(context.Context) (string, error) {
	return utils.FormatDocumentNo(utils.PrefixFloatingTrip, f.seq+1), nil
}

func (f *fakeRepo) Create(ctx context.Context, trip *models.FloatingTrip) (*models.FloatingTrip, error) {
	cp := *trip
	cp.DocumentNo, _ = f.NextDocumentNo(ctx)
	f.seq++
	cp.ID = int(f.seq)
	f.trips[cp.ID] = f.withTotal(&cp)
	return &cp, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int) (*models.FloatingTrip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) List(ctx context.Context, _ models.ListFilter, dates models.TripDateRange) ([]*models.FloatingTrip, int, error) {
	out, _ := f.ListAll(ctx, "", dates)
	return out, len(out), nil
}

func (f *fakeRepo) ListAll(_ context.Context, search string, _ models.TripDateRange) ([]*models.FloatingTrip, error) {
	out := []*models.FloatingTrip{}
	for id := 1; id <= int(f.seq); id++ {
		if t, ok := f.trips[id]; ok && strings.Contains(t.AreaName, search) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, trip *models.FloatingTrip) (*models.FloatingTrip, error) {
	existing, ok := f.trips[trip.ID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *trip
	cp.DocumentNo = existing.DocumentNo
	f.trips[cp.ID] = f.withTotal(&cp)
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.trips[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.trips, id)
	return nil
}

type masters struct {
	driverStatus string
}

func (m *masters) GetDriver(_ context.Context, id int) (*models.Driver, error) {
	if id != 1 {
		return nil, models.ErrNotFound
	}
	return &models.Driver{ID: 1, Name: "Ravi", Status: m.driverStatus}, nil
}

func (m *masters) GetVehicle(_ context.Context, id int) (*models.Vehicle, error) {
	if id != 1 {
		return nil, models.ErrNotFound
	}
	return &models.Vehicle{ID: 1, Name: "Tata 407", Status: models.StatusActive}, nil
}

func (m *masters) GetRoute(context.Context, int) (*models.Route, error) {
	return nil, models.ErrNotFound
}

func newService(repo *fakeRepo) (*Service, *masters) {
	m := &masters{driverStatus: models.StatusActive}
	return NewService(repo, allowance.NewCalculator(allowance.DefaultPolicy()), fleet.NewChecker(m, m, m), nil), m
}

func sampleRequest() models.FloatingTripRequest {
	return models.FloatingTripRequest{
		TripDate:      "2024-05-02",
		DriverID:      1,
		VehicleID:     1,
		AreaName:      " Ambattur ",
		StartTime:     "08:00",
		EndTime:       "14:40",
		StartKm:       "100.00",
		EndKm:         "150.50",
		FoodAllowance: "75.50",
	}
}

func TestService_CreateFloatingTrip_ComputesFields(t *testing.T) {
	svc, _ := newService(newFakeRepo())

	trip, err := svc.CreateFloatingTrip(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "FT-0001", trip.DocumentNo)
	assert.Equal(t, "Ambattur", trip.AreaName)
	assert.Equal(t, 100.0, trip.StartKm)
	assert.Equal(t, 150.5, trip.EndKm)
	assert.Equal(t, 50.5, trip.TotalDistance)
	assert.Equal(t, 177.0, trip.MileageAllowance)
	assert.Equal(t, "06:40:00", trip.TotalTime)
	assert.Equal(t, 300.0, trip.TimeBonus)
	assert.Equal(t, 75.5, trip.FoodAllowance)
	assert.Equal(t, 553.0, trip.TotalAmount)
}

func TestService_CreateFloatingTrip_ReversedOdometer(t *testing.T) {
	svc, _ := newService(newFakeRepo())
	req := sampleRequest()
	req.StartKm, req.EndKm = "200", "150"

	trip, err := svc.CreateFloatingTrip(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, trip.TotalDistance)
	assert.Zero(t, trip.MileageAllowance)
	assert.Equal(t, 200.0, trip.StartKm)
}

func TestService_CreateFloatingTrip_DistanceFromStoredReadings(t *testing.T) {
	svc, _ := newService(newFakeRepo())
	req := sampleRequest()
	req.StartKm, req.EndKm = "100.004", "100.006"

	trip, err := svc.CreateFloatingTrip(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, trip.StartKm)
	assert.Equal(t, 100.01, trip.EndKm)
	assert.Equal(t, allowance.Round2(trip.EndKm-trip.StartKm), trip.TotalDistance)
}

func TestService_CreateFloatingTrip_InactiveDriver(t *testing.T) {
	repo := newFakeRepo()
	svc, m := newService(repo)
	m.driverStatus = models.StatusInactive

	_, err := svc.CreateFloatingTrip(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Empty(t, repo.trips)
}

func TestService_UpdateFloatingTrip_Recomputes(t *testing.T) {
	svc, m := newService(newFakeRepo())
	ctx := context.Background()

	trip, err := svc.CreateFloatingTrip(ctx, sampleRequest())
	require.NoError(t, err)

	m.driverStatus = models.StatusInactive
	req := sampleRequest()
	req.EndTime = "09:10"
	req.FoodAllowance = ""
	updated, err := svc.UpdateFloatingTrip(ctx, trip.ID, req)
	require.NoError(t, err)
	assert.Equal(t, trip.DocumentNo, updated.DocumentNo)
	assert.Equal(t, "01:10:00", updated.TotalTime)
	assert.Equal(t, 50.0, updated.TimeBonus)
	assert.Zero(t, updated.FoodAllowance)
	assert.Equal(t, 227.0, updated.TotalAmount)
}

func TestHandler_Preview(t *testing.T) {
	svc, _ := newService(newFakeRepo())
	h := NewHandler(svc)
	e := echo.New()

	body := `{"start_km":"200","end_km":"150","start_time":"22:00","end_time":"02:00","food_allowance":"50"}`
	req := httptest.NewRequest(http.MethodPost, "/floating-trips/preview", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Preview(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res allowance.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.DistanceClamped)
	assert.Equal(t, "04:00:00", res.TotalTime)
	assert.Equal(t, "200.00", res.TimeBonus)
	assert.Equal(t, 250.0, res.TotalAmount)
}

func TestHandler_CreateFloatingTrip_Validation(t *testing.T) {
	svc, _ := newService(newFakeRepo())
	h := NewHandler(svc)
	e := echo.New()

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "valid", body: `{"trip_date":"2024-05-02","driver_id":1,"vehicle_id":1,"area_name":"Ambattur","start_time":"08:00","end_time":"09:00","start_km":"10","end_km":"20"}`, code: http.StatusCreated},
		{name: "blank odometer", body: `{"trip_date":"2024-05-02","driver_id":1,"vehicle_id":1,"area_name":"Ambattur","start_time":"08:00","end_time":"09:00"}`, code: http.StatusCreated},
		{name: "bad clock", body: `{"trip_date":"2024-05-02","driver_id":1,"vehicle_id":1,"area_name":"Ambattur","start_time":"8am","end_time":"09:00"}`, code: http.StatusBadRequest},
		{name: "non numeric km", body: `{"trip_date":"2024-05-02","driver_id":1,"vehicle_id":1,"area_name":"Ambattur","start_time":"08:00","end_time":"09:00","start_km":"ten"}`, code: http.StatusBadRequest},
		{name: "negative food", body: `{"trip_date":"2024-05-02","driver_id":1,"vehicle_id":1,"area_name":"Ambattur","start_time":"08:00","end_time":"09:00","food_allowance":"-500"}`, code: http.StatusBadRequest},
		{name: "negative km", body: `{"trip_date":"2024-05-02","driver_id":1,"vehicle_id":1,"area_name":"Ambattur","start_time":"08:00","end_time":"09:00","start_km":"-100","end_km":"-50"}`, code: http.StatusBadRequest},
		{name: "missing area", body: `{"trip_date":"2024-05-02","driver_id":1,"vehicle_id":1,"start_time":"08:00","end_time":"09:00"}`, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/floating-trips", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			require.NoError(t, h.CreateFloatingTrip(e.NewContext(req, rec)))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_ExportFloatingTrips(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)
	ctx := context.Background()
	_, err := svc.CreateFloatingTrip(ctx, sampleRequest())
	require.NoError(t, err)
	second := sampleRequest()
	second.AreaName = "Porur"
	second.FoodAllowance = "0"
	_, err = svc.CreateFloatingTrip(ctx, second)
	require.NoError(t, err)

	h := NewHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/floating-trips/export.xlsx?from=2024-05-01&to=2024-05-31", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ExportFloatingTrips(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "Floating_Trips_")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Floating Trips")
	require.NoError(t, err)
	require.Len(t, rows, 7) // 2 title lines, blank, header, 2 trips, totals
	assert.Equal(t, "Period: 2024-05-01 to 2024-05-31", rows[1][0])
	assert.Equal(t, "FT-0001", rows[4][0])
	assert.Equal(t, "Porur", rows[5][4])
	assert.Equal(t, "Total", rows[6][0])
	assert.Equal(t, "1030", rows[6][14]) // 553 + 477
}

func TestHandler_ExportFloatingTrips_BadRange(t *testing.T) {
	svc, _ := newService(newFakeRepo())
	h := NewHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/floating-trips/export.xlsx?to=31-05-2024", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ExportFloatingTrips(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
