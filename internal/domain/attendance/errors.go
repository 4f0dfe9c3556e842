package attendance

import "errors"

// Attendance domain errors
var (
	// Punch-in errors
	ErrAlreadyPunchedIn  = errors.New("you have already punched in today")
	ErrTooEarly          = errors.New("too early to punch in")
	ErrPunchWindowClosed = errors.New("punch-in window has closed for today")

	// Punch-out errors
	ErrNotPunchedIn             = errors.New("you have not punched in yet")
	ErrAlreadyPunchedOut        = errors.New("you have already punched out")
	ErrTooEarlyToLeave          = errors.New("too early to punch out")
	ErrOvertimeWindowNotElapsed = errors.New("approved overtime window has not elapsed yet")

	// Break errors
	ErrBreakAlreadyOpen = errors.New("a break is already in progress")
	ErrNoOpenBreak      = errors.New("no break is in progress")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
