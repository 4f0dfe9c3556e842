package policy

import (
	"context"
)

// PolicyRepository defines data access for tenant policy settings.
type PolicyRepository interface {
	// GetByCompanyID returns the tenant's policy (ErrPolicyNotFound when the
	// tenant has never configured one).
	GetByCompanyID(ctx context.Context, companyID string) (CompanyPolicy, error)

	// Upsert creates or replaces the tenant's policy row.
	Upsert(ctx context.Context, pol CompanyPolicy) (CompanyPolicy, error)
}
