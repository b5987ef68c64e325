package middleware

import (
	"net/http"
	"time"

	"fleet-management/internal/models"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// LoginRateLimiter allows perMinute attempts per client IP, with bursts of
// the same size. A non-positive perMinute disables limiting.
func LoginRateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(time.Minute / time.Duration(perMinute)),
		Burst:     perMinute,
		ExpiresIn: 10 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Unable to identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Message: "Too many login attempts, try again later"})
		},
	})
}
