package handler

import (
	"net/http"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type AuthService interface {
	Register(req *contract.RegisterRequest) (*contract.AuthResponse, apierror.ErrorResponse)
	Login(req *contract.LoginRequest) (*contract.AuthResponse, apierror.ErrorResponse)
	SendPasswordResetLink(req *contract.ResetLinkRequest) (string, apierror.ErrorResponse)
	ResetPassword(req *contract.ResetPasswordRequest) apierror.ErrorResponse
	GetProfile(actor *entity.User) *contract.UserResponse
	Logout(token *utils.TokenData) apierror.ErrorResponse
	DeleteAccount(actor *entity.User) apierror.ErrorResponse
}

type DefaultAuthRoute struct {
	AuthService AuthService
}

func NewAuthDefault(authService AuthService) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService}
}

func (a *DefaultAuthRoute) Register(c echo.Context) error {
	var req contract.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	resp, apierr := a.AuthService.Register(&req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusCreated, "User registered successfully", resp)
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	resp, apierr := a.AuthService.Login(&req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Login successful", resp)
}

func (a *DefaultAuthRoute) SendPasswordResetLink(c echo.Context) error {
	var req contract.ResetLinkRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	// The raw token goes to the mail collaborator, never the response.
	_, apierr := a.AuthService.SendPasswordResetLink(&req)
	if apierr != nil {
		return fail(c, apierr)
	}

	log.Infof("password reset link issued for %s", req.Email)
	return respond(c, http.StatusOK, "Password reset link sent", nil)
}

func (a *DefaultAuthRoute) ResetPassword(c echo.Context) error {
	var req contract.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	if apierr := a.AuthService.ResetPassword(&req); apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Password reset successfully", nil)
}

func (a *DefaultAuthRoute) GetProfile(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	resp := a.AuthService.GetProfile(user)
	return respond(c, http.StatusOK, "Profile retrieved successfully", echo.Map{"user": resp})
}

func (a *DefaultAuthRoute) Logout(c echo.Context) error {
	token, cerr := utils.GetTokenFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	if apierr := a.AuthService.Logout(token); apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (a *DefaultAuthRoute) DeleteAccount(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	if apierr := a.AuthService.DeleteAccount(user); apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Account deleted successfully", nil)
}
