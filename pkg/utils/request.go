package utils

import (
	"net/http"
	"strconv"
	"strings"

	"fleet-management/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// GetPageLimit reads the page and limit query parameters, falling back to
// page 1 and 20 rows when absent or out of range.
func GetPageLimit(c echo.Context) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

// GetListFilter builds a models.ListFilter from page, limit, q and status.
func GetListFilter(c echo.Context) models.ListFilter {
	page, limit := GetPageLimit(c)
	return models.ListFilter{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.QueryParam("q")),
		Status: strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
	}
}

// ClampFilter normalises a filter coming from outside the HTTP layer.
func ClampFilter(f models.ListFilter) models.ListFilter {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 || f.Limit > maxLimit {
		f.Limit = defaultLimit
	}
	return f
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// ExtractUserInfo returns the user ID and role placed in the context by the
// JWT middleware.
func ExtractUserInfo(c echo.Context) (string, string, error) {
	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Missing user identity")
	}
	role, _ := c.Get("role").(string)
	return userID, role, nil
}
