package employee

import (
	"context"
)

// EmployeeRepository defines the employee lookups this core needs. Profile
// management itself belongs to the HR administration surface.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, companyID string, code string) (Employee, error)
}
