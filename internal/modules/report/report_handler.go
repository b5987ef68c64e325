package report

import (
	"net/http"
	"strconv"
	"time"

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

func ledgerRequest(c echo.Context) (models.LedgerRequest, error) {
	driverID, _ := strconv.Atoi(c.QueryParam("driver_id"))
	req := models.LedgerRequest{
		DriverID: driverID,
		FromDate: c.QueryParam("from_date"),
		ToDate:   c.QueryParam("to_date"),
	}
	return req, utils.GetValidator().Validate(req)
}

func (h *Handler) DriverLedger(c echo.Context) error {
	req, err := ledgerRequest(c)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	ledger, err := h.svc.DriverLedger(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, ledger)
}

func (h *Handler) ExportDriverLedger(c echo.Context) error {
	req, err := ledgerRequest(c)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	ledger, err := h.svc.DriverLedger(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	f, err := ledgerWorkbook(ledger)
	if err != nil {
		c.Logger().Error("Handler.ExportDriverLedger: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build export")
	}
	return export.Attach(c, f, export.Filename("Driver_Ledger_"+ledger.Driver.Name, time.Now()))
}

func (h *Handler) EmailDriverLedger(c echo.Context) error {
	var req models.EmailLedgerRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.EmailDriverLedger(c.Request().Context(), req); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusAccepted, map[string]string{"message": "Statement sent to " + req.To})
}
