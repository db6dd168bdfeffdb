package handler

import (
	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, contract.OK(message, data))
}

func fail(c echo.Context, err apierror.ErrorResponse) error {
	return c.JSON(err.Code(), contract.Fail(err))
}
