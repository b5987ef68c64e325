package route

import (
	"errors"
	"net/http"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the trip master.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new route handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateRoute(c echo.Context) error {
	var req models.RouteRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	rt, err := h.svc.CreateRoute(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Route name already exists")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, rt)
}

func (h *Handler) ListRoutes(c echo.Context) error {
	routes, total, err := h.svc.ListRoutes(c.Request().Context(), utils.GetListFilter(c))
	if err != nil {
		c.Logger().Error("Handler.ListRoutes: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve routes")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"routes": routes, "total": total})
}

func (h *Handler) GetRoute(c echo.Context) error {
	routeID, err := utils.ParseIDParam(c, "routeId")
	if err != nil {
		return err
	}

	rt, err := h.svc.GetRoute(c.Request().Context(), routeID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, rt)
}

func (h *Handler) UpdateRoute(c echo.Context) error {
	routeID, err := utils.ParseIDParam(c, "routeId")
	if err != nil {
		return err
	}

	var req models.RouteRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	rt, err := h.svc.UpdateRoute(c.Request().Context(), routeID, req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Route name already exists")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, rt)
}

func (h *Handler) DeleteRoute(c echo.Context) error {
	routeID, err := utils.ParseIDParam(c, "routeId")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteRoute(c.Request().Context(), routeID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
