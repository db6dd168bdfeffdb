package handler

import (
	"net/http"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ProfileService interface {
	UpdateProfile(actor *entity.User, req *contract.UpdateProfileRequest) (*contract.UserResponse, apierror.ErrorResponse)
	UpdatePassword(actor *entity.User, req *contract.UpdatePasswordRequest) apierror.ErrorResponse
}

type DefaultProfileRoute struct {
	ProfileService ProfileService
}

func NewProfileDefault(profileService ProfileService) *DefaultProfileRoute {
	return &DefaultProfileRoute{ProfileService: profileService}
}

func (p *DefaultProfileRoute) UpdateProfile(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	var req contract.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	resp, apierr := p.ProfileService.UpdateProfile(user, &req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Profile updated successfully", echo.Map{"user": resp})
}

func (p *DefaultProfileRoute) UpdatePassword(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	var req contract.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	if apierr := p.ProfileService.UpdatePassword(user, &req); apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Password updated successfully", nil)
}
