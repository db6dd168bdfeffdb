package handler

import (
	"net/http"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type PolicyService interface {
	GetActivePolicy() (*contract.PolicyResponse, apierror.ErrorResponse)
}

type DefaultPolicyRoute struct {
	PolicyService PolicyService
}

func NewPolicyDefault(policyService PolicyService) *DefaultPolicyRoute {
	return &DefaultPolicyRoute{PolicyService: policyService}
}

func (p *DefaultPolicyRoute) GetPrivacyPolicy(c echo.Context) error {
	policy, apierr := p.PolicyService.GetActivePolicy()
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Privacy policy retrieved successfully", echo.Map{"policy": policy})
}
