package fixedtrip

import (
	"net/http"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc ServiceInterface
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) NextDocumentNo(c echo.Context) error {
	no, err := h.svc.NextDocumentNo(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"document_no": no})
}

func (h *Handler) CreateFixedTrip(c echo.Context) error {
	var req models.FixedTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	trip, err := h.svc.CreateFixedTrip(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, trip)
}

func (h *Handler) ListFixedTrips(c echo.Context) error {
	dates := models.TripDateRange{From: c.QueryParam("from"), To: c.QueryParam("to")}
	if err := utils.GetValidator().Validate(dates); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	trips, total, err := h.svc.ListFixedTrips(c.Request().Context(), utils.GetListFilter(c), dates)
	if err != nil {
		c.Logger().Error("Handler.ListFixedTrips: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve fixed trips")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"fixed_trips": trips, "total": total})
}

func (h *Handler) GetFixedTrip(c echo.Context) error {
	tripID, err := utils.ParseIDParam(c, "tripId")
	if err != nil {
		return err
	}

	trip, err := h.svc.GetFixedTrip(c.Request().Context(), tripID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, trip)
}

func (h *Handler) UpdateFixedTrip(c echo.Context) error {
	tripID, err := utils.ParseIDParam(c, "tripId")
	if err != nil {
		return err
	}

	var req models.FixedTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	trip, err := h.svc.UpdateFixedTrip(c.Request().Context(), tripID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, trip)
}

func (h *Handler) DeleteFixedTrip(c echo.Context) error {
	tripID, err := utils.ParseIDParam(c, "tripId")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteFixedTrip(c.Request().Context(), tripID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
