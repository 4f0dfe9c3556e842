package leave

import (
	"context"
)

// LeaveRequestRepository defines data access for leave requests.
type LeaveRequestRepository interface {
	// Create inserts a pending request, guarded against an existing pending
	// request for the same employee (ErrPendingLeaveExists).
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)

	// SumApprovedDays sums no_of_days over approved requests of the given
	// types whose start or end date falls within the calendar year.
	SumApprovedDays(ctx context.Context, employeeID, companyID string, year int, types []string) (int, error)

	// GetYearStats aggregates taken/pending day counts for the year.
	GetYearStats(ctx context.Context, employeeID, companyID string, year int) (YearStats, error)

	// SetStatus transitions a pending request to approved or rejected,
	// guarded by status = 'pending' (ErrLeaveAlreadyProcessed otherwise).
	SetStatus(ctx context.Context, id, companyID, status, approvedBy string, rejectionReason *string) (LeaveRequest, error)

	List(ctx context.Context, filter LeaveFilter, companyID string) ([]LeaveRequest, int64, error)
}
