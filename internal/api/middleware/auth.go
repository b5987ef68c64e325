package middleware

import (
	"errors"
	"net/http"

	"fleet-management/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTMAuth configures and returns Echo's JWT middleware.
// On success the caller's ID, username and role are placed in the context.
func JWTMAuth(jwtSecretKey string) echo.MiddlewareFunc {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.JwtCustomClaims)
		},
		SigningKey: []byte(jwtSecretKey),
		// TokenLookup defaults to "header:Authorization:Bearer ".

		SuccessHandler: func(c echo.Context) {
			// "user" is the default context key used by echo-jwt
			userToken := c.Get("user").(*jwt.Token)
			claims := userToken.Claims.(*models.JwtCustomClaims)

			c.Set("userID", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
		},

		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Errorf("JWT Error: %v", err)

			var extractErr *echojwt.TokenExtractionError
			if errors.Is(err, echojwt.ErrJWTMissing) || errors.As(err, &extractErr) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Missing or malformed JWT"})
			}
			if errors.Is(err, jwt.ErrTokenMalformed) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Token is malformed"})
			} else if errors.Is(err, jwt.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Token has expired"})
			} else if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid token signature"})
			}

			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid or expired JWT"})
		},
	}
	return echojwt.WithConfig(config)
}

// AdminRequired rejects callers whose token does not carry the ADMIN role.
// It must run after JWTMAuth.
func AdminRequired() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != models.RoleAdmin {
				return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Administrator access required"})
			}
			return next(c)
		}
	}
}
