package utils

import (
	"errors"
	"net/http"

	"fleet-management/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithError writes a models.ErrorResponse with the given status.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}

// RespondWithJSON writes payload as JSON with the given status.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// HandleServiceError maps domain errors returned by a service to HTTP responses.
// Anything unrecognised is logged and reported as a 500.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		return RespondWithError(c, http.StatusConflict, "Resource already exists")
	case errors.Is(err, models.ErrReferenced):
		return RespondWithError(c, http.StatusConflict, "Resource is in use by trips or payments")
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, models.ErrInactiveAccount):
		return RespondWithError(c, http.StatusForbidden, "Account is inactive")
	case errors.Is(err, models.ErrForbidden):
		return RespondWithError(c, http.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, models.ErrInvalidInput):
		return RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrEmailDisabled):
		return RespondWithError(c, http.StatusServiceUnavailable, "Email delivery is not configured")
	}

	c.Logger().Error("HandleServiceError: ", err)
	return RespondWithError(c, http.StatusInternalServerError, "Internal server error")
}
