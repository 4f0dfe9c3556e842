package leave

import (
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	NoOfDays  int    `json:"no_of_days"`
}

func (r CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.LeaveType, []string{TypeCasual, TypeSick, TypeLossOfPay}) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "must be one of casual, sick, loss_of_pay",
		})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "must be a valid date (YYYY-MM-DD)",
		})
	}
	if r.NoOfDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "no_of_days",
			Message: "must be greater than zero",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

func (r RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	RequestedType   string  `json:"requested_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	NoOfDays        int     `json:"no_of_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// CreateLeaveResponse surfaces the quota reclassification explicitly instead
// of burying it in a message string.
type CreateLeaveResponse struct {
	Request       LeaveRequestResponse `json:"request"`
	Reclassified  bool                 `json:"reclassified"`
	RemainingDays int                  `json:"remaining_days"`
}

type LeaveStatsResponse struct {
	Year           int `json:"year"`
	TotalAllowed   int `json:"total_allowed"`
	TotalTaken     int `json:"total_taken"`
	SickTaken      int `json:"sick_taken"`
	LossOfPayTaken int `json:"loss_of_pay_taken"`
	PendingDays    int `json:"pending_days"`
}

type LeaveFilter struct {
	EmployeeID *string
	Status     *string
	Year       *int
	Page       int
	Limit      int
}

type ListLeaveResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}
