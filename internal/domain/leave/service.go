package leave

import (
	"context"
)

// LeaveService defines the leave-balance business logic.
type LeaveService interface {
	// CreateRequest files a pending request, reclassifying it to loss_of_pay
	// when it exceeds the remaining yearly quota.
	CreateRequest(ctx context.Context, companyID, employeeID string, req CreateLeaveRequest) (CreateLeaveResponse, error)

	// GetStats returns the quota-year usage summary.
	GetStats(ctx context.Context, companyID, employeeID string, year int) (LeaveStatsResponse, error)

	// Approve transitions a pending request to approved (manager/owner).
	Approve(ctx context.Context, companyID, requestID, approverID string) (LeaveRequestResponse, error)

	// Reject transitions a pending request to rejected (manager/owner).
	Reject(ctx context.Context, companyID, requestID, approverID string, req RejectLeaveRequest) (LeaveRequestResponse, error)

	// List retrieves leave requests with filters (manager/owner).
	List(ctx context.Context, companyID string, filter LeaveFilter) (ListLeaveResponse, error)
}
