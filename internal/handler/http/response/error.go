package response

import (
	"errors"
	"net/http"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/auth"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/leave"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/user"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance state conflicts
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "Already punched out")
	case errors.Is(err, attendance.ErrNotPunchedIn):
		Conflict(w, "Not punched in today")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break is already open")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No open break to end")

	// Attendance policy violations
	case errors.Is(err, attendance.ErrTooEarly):
		BadRequest(w, "Too early to punch in", nil)
	case errors.Is(err, attendance.ErrPunchWindowClosed):
		BadRequest(w, "Punch-in window has closed", nil)
	case errors.Is(err, attendance.ErrTooEarlyToLeave):
		BadRequest(w, "Too early to punch out", nil)
	case errors.Is(err, attendance.ErrOvertimeWindowNotElapsed):
		BadRequest(w, "Approved overtime window has not elapsed", nil)

	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrPendingLeaveExists):
		Conflict(w, "A pending leave request already exists")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")

	// Lookups
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Company policy not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "A user with this email already exists")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Access control
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
