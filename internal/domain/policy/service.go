package policy

import "context"

type PolicyService interface {
	// Get returns the tenant's policy, defaults when never configured.
	Get(ctx context.Context, companyID string) (PolicyResponse, error)

	// Update applies the supplied fields over the current policy (owner).
	Update(ctx context.Context, companyID string, req UpdatePolicyRequest) (PolicyResponse, error)
}
