package middleware

import (
	"net/http"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
}

type TokenRepository interface {
	IsRevoked(jti string) (bool, error)
}

type AuthMiddlewareConfig struct {
	UserRepo  UserRepository
	TokenRepo TokenRepository
}

// NewAuthMiddleware resolves the bearer token into a user and stores
// both on the request context.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, contract.Fail(apierror.InvalidAuthTokenError))
			}

			revoked, err := cfg.TokenRepo.IsRevoked(tokenData.JTI)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, contract.Fail(apierror.InternalServerError))
			}

			if revoked {
				// Logged out; the token is valid but no longer welcome
				return c.JSON(http.StatusUnauthorized, contract.Fail(apierror.InvalidAuthTokenError))
			}

			user, err := cfg.UserRepo.FindByID(tokenData.UserID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, contract.Fail(apierror.InternalServerError))
			}

			if user == nil {
				// User deleted in DB but still has a valid token???
				return c.JSON(http.StatusUnauthorized, contract.Fail(apierror.UnauthorizedError))
			}

			c.Set("user", user)
			c.Set("token", tokenData)
			return next(c)
		}
	}
}
