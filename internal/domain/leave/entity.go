package leave

import (
	"time"
)

const (
	TypeCasual    = "casual"
	TypeSick      = "sick"
	TypeLossOfPay = "loss_of_pay"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveRequest is an employee's request for leave days. LeaveType holds the
// effective type after quota reclassification; RequestedType preserves what
// the caller asked for.
type LeaveRequest struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	LeaveType       string
	RequestedType   string
	StartDate       time.Time
	EndDate         time.Time
	NoOfDays        int
	Reason          string
	Status          string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

// YearStats aggregates a quota year's usage.
type YearStats struct {
	TotalTaken     int
	SickTaken      int
	LossOfPayTaken int
	PendingDays    int
}
