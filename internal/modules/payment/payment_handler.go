package payment

import (
	"net/http"
	"strconv"

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

// GetBalance handles GET /payments/balance?driver_id=X[&exclude_payment_id=Y].
func (h *Handler) GetBalance(c echo.Context) error {
	driverID, err := strconv.Atoi(c.QueryParam("driver_id"))
	if err != nil || driverID < 1 {
		return utils.RespondWithError(c, http.StatusBadRequest, "driver_id is required")
	}
	var excludeID int
	if raw := c.QueryParam("exclude_payment_id"); raw != "" {
		excludeID, err = strconv.Atoi(raw)
		if err != nil || excludeID < 1 {
			return utils.RespondWithError(c, http.StatusBadRequest, "Invalid exclude_payment_id")
		}
	}

	b, err := h.svc.GetBalance(c.Request().Context(), driverID, excludeID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, b)
}

func (h *Handler) CreatePayment(c echo.Context) error {
	var req models.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.CreatePayment(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, p)
}

func (h *Handler) ListPayments(c echo.Context) error {
	dates := models.TripDateRange{From: c.QueryParam("from"), To: c.QueryParam("to")}
	if err := utils.GetValidator().Validate(dates); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	payments, total, err := h.svc.ListPayments(c.Request().Context(), utils.GetListFilter(c), dates)
	if err != nil {
		c.Logger().Error("Handler.ListPayments: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"payments": payments, "total": total})
}

func (h *Handler) GetPayment(c echo.Context) error {
	paymentID, err := utils.ParseIDParam(c, "paymentId")
	if err != nil {
		return err
	}

	p, err := h.svc.GetPayment(c.Request().Context(), paymentID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, p)
}

func (h *Handler) UpdatePayment(c echo.Context) error {
	paymentID, err := utils.ParseIDParam(c, "paymentId")
	if err != nil {
		return err
	}

	var req models.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.UpdatePayment(c.Request().Context(), paymentID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, p)
}

func (h *Handler) DeletePayment(c echo.Context) error {
	paymentID, err := utils.ParseIDParam(c, "paymentId")
	if err != nil {
		return err
	}

	if err := h.svc.DeletePayment(c.Request().Context(), paymentID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
