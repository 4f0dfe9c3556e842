package attendance

import (
	"context"
)

// AttendanceService defines the punch-in/punch-out/break business logic.
// Identity is resolved by the transport layer and passed in explicitly.
type AttendanceService interface {
	// PunchIn records the day's punch-in, classifying it against the
	// tenant's scheduled shift start, late buffer and absent cutoff.
	PunchIn(ctx context.Context, companyID, employeeID string, req PunchInRequest) (PunchInResponse, error)

	// PunchOut closes the day's record and computes productive hours.
	PunchOut(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)

	// StartBreak opens a break interval on the day's record.
	StartBreak(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)

	// EndBreak closes the open interval and recomputes the break total.
	EndBreak(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)

	// GetToday returns the day's record for the calling employee.
	GetToday(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)

	// List retrieves attendance records with filters (manager/owner).
	List(ctx context.Context, companyID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ApproveOvertime grants an overtime window on a record (manager/owner).
	ApproveOvertime(ctx context.Context, companyID, attendanceID string, req ApproveOvertimeRequest) (AttendanceResponse, error)
}
