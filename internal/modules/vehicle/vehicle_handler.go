package vehicle

import (
	"errors"
	"net/http"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for vehicles and vehicle types.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new vehicle handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateVehicle(c echo.Context) error {
	var req models.VehicleRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	v, err := h.svc.CreateVehicle(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Vehicle number already exists")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, v)
}

func (h *Handler) ListVehicles(c echo.Context) error {
	vehicles, total, err := h.svc.ListVehicles(c.Request().Context(), utils.GetListFilter(c))
	if err != nil {
		c.Logger().Error("Handler.ListVehicles: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"vehicles": vehicles, "total": total})
}

func (h *Handler) GetVehicle(c echo.Context) error {
	vehicleID, err := utils.ParseIDParam(c, "vehicleId")
	if err != nil {
		return err
	}

	v, err := h.svc.GetVehicle(c.Request().Context(), vehicleID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, v)
}

func (h *Handler) UpdateVehicle(c echo.Context) error {
	vehicleID, err := utils.ParseIDParam(c, "vehicleId")
	if err != nil {
		return err
	}

	var req models.VehicleRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	v, err := h.svc.UpdateVehicle(c.Request().Context(), vehicleID, req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Vehicle number already exists")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, v)
}

func (h *Handler) DeleteVehicle(c echo.Context) error {
	vehicleID, err := utils.ParseIDParam(c, "vehicleId")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteVehicle(c.Request().Context(), vehicleID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListVehicleTypes(c echo.Context) error {
	types, err := h.svc.ListVehicleTypes(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListVehicleTypes: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicle types")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"vehicle_types": types})
}

func (h *Handler) AddVehicleType(c echo.Context) error {
	var req models.VehicleTypeRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	name, err := h.svc.AddVehicleType(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Vehicle type already exists")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, map[string]string{"name": name})
}
