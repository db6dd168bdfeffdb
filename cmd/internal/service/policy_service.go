package service

import (
	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type PolicyRepository interface {
	FindActive() (*entity.PrivacyPolicy, error)
	FindByVersion(version string) (*entity.PrivacyPolicy, error)
	FindAll() ([]*entity.PrivacyPolicy, error)
	Activate(policy *entity.PrivacyPolicy) error
}

type PolicyService struct {
	PolicyRepo PolicyRepository
}

func NewPolicyService(policyRepo PolicyRepository) *PolicyService {
	return &PolicyService{PolicyRepo: policyRepo}
}

func (p *PolicyService) GetActivePolicy() (*contract.PolicyResponse, apierror.ErrorResponse) {
	policy, err := p.PolicyRepo.FindActive()
	if err != nil {
		log.Errorf("failed to fetch active privacy policy: %v", err)
		return nil, apierror.InternalServerError
	}

	if policy == nil {
		return nil, apierror.PolicyNotFoundError
	}
	return toPolicyResponse(policy), nil
}

func (p *PolicyService) GetPolicyByVersion(version string) (*contract.PolicyResponse, apierror.ErrorResponse) {
	policy, err := p.PolicyRepo.FindByVersion(version)
	if err != nil {
		log.Errorf("failed to fetch privacy policy %s: %v", version, err)
		return nil, apierror.InternalServerError
	}

	if policy == nil {
		return nil, apierror.PolicyNotFoundError
	}
	return toPolicyResponse(policy), nil
}

// ActivatePolicy makes the named version the single active policy.
func (p *PolicyService) ActivatePolicy(version string) (*contract.PolicyResponse, apierror.ErrorResponse) {
	policy, err := p.PolicyRepo.FindByVersion(version)
	if err != nil {
		log.Errorf("failed to fetch privacy policy %s: %v", version, err)
		return nil, apierror.InternalServerError
	}

	if policy == nil {
		return nil, apierror.PolicyNotFoundError
	}

	if err := p.PolicyRepo.Activate(policy); err != nil {
		log.Errorf("failed to activate privacy policy %s: %v", version, err)
		return nil, apierror.InternalServerError
	}
	return toPolicyResponse(policy), nil
}

func toPolicyResponse(policy *entity.PrivacyPolicy) *contract.PolicyResponse {
	return &contract.PolicyResponse{
		Version:       policy.Version,
		Content:       policy.Content,
		IsActive:      policy.IsActive,
		EffectiveDate: utils.FormatEpoch(policy.EffectiveDate),
		UpdatedAt:     utils.FormatEpoch(policy.UpdatedAt),
	}
}
