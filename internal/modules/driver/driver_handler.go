package driver

import (
	"net/http"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for drivers.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new driver handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateDriver(c echo.Context) error {
	var req models.DriverRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.svc.CreateDriver(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, d)
}

func (h *Handler) ListDrivers(c echo.Context) error {
	drivers, total, err := h.svc.ListDrivers(c.Request().Context(), utils.GetListFilter(c))
	if err != nil {
		c.Logger().Error("Handler.ListDrivers: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve drivers")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"drivers": drivers, "total": total})
}

func (h *Handler) GetDriver(c echo.Context) error {
	driverID, err := utils.ParseIDParam(c, "driverId")
	if err != nil {
		return err
	}

	d, err := h.svc.GetDriver(c.Request().Context(), driverID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, d)
}

func (h *Handler) UpdateDriver(c echo.Context) error {
	driverID, err := utils.ParseIDParam(c, "driverId")
	if err != nil {
		return err
	}

	var req models.DriverRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.svc.UpdateDriver(c.Request().Context(), driverID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, d)
}

func (h *Handler) DeleteDriver(c echo.Context) error {
	driverID, err := utils.ParseIDParam(c, "driverId")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteDriver(c.Request().Context(), driverID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
