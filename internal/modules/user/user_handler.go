package user

import (
	"errors"
	"net/http"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new user handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	authResponse, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid username or password"})
		}
		if errors.Is(err, models.ErrInactiveAccount) {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Account is inactive"})
		}
		c.Logger().Error("Handler.Login: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to log in"})
	}

	return c.JSON(http.StatusOK, authResponse)
}

// GetMe returns the profile of the authenticated caller.
func (h *Handler) GetMe(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Request().Context(), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, user)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, total, err := h.service.ListUsers(c.Request().Context(), utils.GetListFilter(c))
	if err != nil {
		c.Logger().Error("Handler.ListUsers: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"users": users, "total": total})
}

func (h *Handler) GetUser(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, user)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Username is already taken")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("userId"), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Username is already taken")
		}
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, user)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	actorID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), actorID, c.Param("userId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
