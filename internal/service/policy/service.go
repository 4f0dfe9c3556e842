package policy

import (
	"context"
	"fmt"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
)

type PolicyServiceImpl struct {
	policy.PolicyRepository
}

func NewPolicyService(policyRepo policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{PolicyRepository: policyRepo}
}

func toResponse(pol policy.CompanyPolicy) policy.PolicyResponse {
	return policy.PolicyResponse{
		Timezone:               pol.Timezone,
		PunchInTime:            pol.PunchInTime,
		PunchOutTime:           pol.PunchOutTime,
		LateBufferMinutes:      pol.LateBufferMinutes,
		AbsentCutoffMinutes:    pol.AbsentCutoffMinutes,
		HoursPerDay:            pol.HoursPerDay,
		HoursPerWeek:           pol.HoursPerWeek,
		HoursPerMonth:          pol.HoursPerMonth,
		OvertimeAllowanceHours: pol.OvertimeAllowanceHours,
		TotalAllowedLeaves:     pol.TotalAllowedLeaves,
		TotalWorkingDays:       pol.TotalWorkingDays,
	}
}

// Get implements policy.PolicyService.
func (p *PolicyServiceImpl) Get(ctx context.Context, companyID string) (policy.PolicyResponse, error) {
	pol, err := p.PolicyRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if err == policy.ErrPolicyNotFound {
			return toResponse(policy.Default(companyID)), nil
		}
		return policy.PolicyResponse{}, fmt.Errorf("failed to get company policy: %w", err)
	}
	return toResponse(pol), nil
}

// Update implements policy.PolicyService.
func (p *PolicyServiceImpl) Update(ctx context.Context, companyID string, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	current, err := p.PolicyRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if err != policy.ErrPolicyNotFound {
			return policy.PolicyResponse{}, fmt.Errorf("failed to get company policy: %w", err)
		}
		current = policy.Default(companyID)
	}

	if req.Timezone != nil {
		current.Timezone = *req.Timezone
	}
	if req.PunchInTime != nil {
		current.PunchInTime = *req.PunchInTime
	}
	if req.PunchOutTime != nil {
		current.PunchOutTime = *req.PunchOutTime
	}
	if req.LateBufferMinutes != nil {
		current.LateBufferMinutes = *req.LateBufferMinutes
	}
	if req.AbsentCutoffMinutes != nil {
		current.AbsentCutoffMinutes = *req.AbsentCutoffMinutes
	}
	if req.HoursPerDay != nil {
		current.HoursPerDay = *req.HoursPerDay
	}
	if req.HoursPerWeek != nil {
		current.HoursPerWeek = req.HoursPerWeek
	}
	if req.HoursPerMonth != nil {
		current.HoursPerMonth = req.HoursPerMonth
	}
	if req.OvertimeAllowanceHours != nil {
		current.OvertimeAllowanceHours = *req.OvertimeAllowanceHours
	}
	if req.TotalAllowedLeaves != nil {
		current.TotalAllowedLeaves = *req.TotalAllowedLeaves
	}
	if req.TotalWorkingDays != nil {
		current.TotalWorkingDays = *req.TotalWorkingDays
	}

	updated, err := p.PolicyRepository.Upsert(ctx, current)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to update company policy: %w", err)
	}

	return toResponse(updated), nil
}
