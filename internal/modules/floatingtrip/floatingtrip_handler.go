package floatingtrip

import (
	"net/http"
	"time"

	"fleet-management/internal/allowance"
	"fleet-management/internal/models"
	"fleet-management/pkg/export"
	"fleet-management/pkg/utils"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc ServiceInterface
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func dateRange(c echo.Context) (models.TripDateRange, error) {
	dates := models.TripDateRange{From: c.QueryParam("from"), To: c.QueryParam("to")}
	return dates, utils.GetValidator().Validate(dates)
}

// Preview recomputes the derived fields for an unsaved form.
func (h *Handler) Preview(c echo.Context) error {
	var in allowance.Input
	if err := c.Bind(&in); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.Preview(in))
}

func (h *Handler) NextDocumentNo(c echo.Context) error {
	no, err := h.svc.NextDocumentNo(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"document_no": no})
}

func (h *Handler) CreateFloatingTrip(c echo.Context) error {
	var req models.FloatingTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	trip, err := h.svc.CreateFloatingTrip(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, trip)
}

func (h *Handler) ListFloatingTrips(c echo.Context) error {
	dates, err := dateRange(c)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	trips, total, err := h.svc.ListFloatingTrips(c.Request().Context(), utils.GetListFilter(c), dates)
	if err != nil {
		c.Logger().Error("Handler.ListFloatingTrips: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve floating trips")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"floating_trips": trips, "total": total})
}

// ExportFloatingTrips downloads the filtered trips as a spreadsheet.
func (h *Handler) ExportFloatingTrips(c echo.Context) error {
	dates, err := dateRange(c)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	trips, err := h.svc.ExportFloatingTrips(c.Request().Context(), c.QueryParam("q"), dates)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	f, err := workbook(trips, dates)
	if err != nil {
		c.Logger().Error("Handler.ExportFloatingTrips: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build export")
	}
	return export.Attach(c, f, export.Filename("Floating_Trips", time.Now()))
}

func (h *Handler) GetFloatingTrip(c echo.Context) error {
	tripID, err := utils.ParseIDParam(c, "tripId")
	if err != nil {
		return err
	}

	trip, err := h.svc.GetFloatingTrip(c.Request().Context(), tripID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, trip)
}

func (h *Handler) UpdateFloatingTrip(c echo.Context) error {
	tripID, err := utils.ParseIDParam(c, "tripId")
	if err != nil {
		return err
	}

	var req models.FloatingTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	trip, err := h.svc.UpdateFloatingTrip(c.Request().Context(), tripID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, trip)
}

func (h *Handler) DeleteFloatingTrip(c echo.Context) error {
	tripID, err := utils.ParseIDParam(c, "tripId")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteFloatingTrip(c.Request().Context(), tripID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
