package leave

import "errors"

var (
	ErrPendingLeaveExists    = errors.New("a pending leave request already exists")
	ErrInvalidDateRange      = errors.New("start date must not be after end date")
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request has already been approved or rejected")
)
