package company

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

func (h *Handler) GetCompany(c echo.Context) error {
	settings, err := h.svc.GetSettings(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, settings)
}

func (h *Handler) SaveCompany(c echo.Context) error {
	var req models.CompanySettingsRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	settings, err := h.svc.SaveSettings(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, settings)
}
