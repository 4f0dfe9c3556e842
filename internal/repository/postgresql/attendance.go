package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.company_id, a.employee_id, a.date, a.punch_in, a.punch_out,
	a.status, a.late_minutes, a.total_break_minutes, a.productive_hours,
	a.overtime_approved_hours, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut,
		&att.Status, &att.LateMinutes, &att.TotalBreakMinutes, &att.ProductiveHours,
		&att.OvertimeApprovedHours, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			company_id, employee_id, date, punch_in, status, late_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.CompanyID,
		att.EmployeeID,
		att.Date,
		att.PunchIn,
		att.Status,
		att.LateMinutes,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND a.company_id = $3
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.id = $1 AND a.company_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// ClosePunch implements attendance.AttendanceRepository. The punch_out IS
// NULL guard makes concurrent punch-outs race safely: only one wins.
func (a *attendanceRepository) ClosePunch(ctx context.Context, id string, companyID string, punchOut time.Time, breakMinutes int, productiveHours float64) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET punch_out = $1,
			total_break_minutes = $2,
			productive_hours = $3,
			updated_at = NOW()
		WHERE id = $4 AND company_id = $5 AND punch_out IS NULL
	`

	tag, err := q.Exec(ctx, query, punchOut, breakMinutes, productiveHours, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to close punch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyPunchedOut
	}

	return nil
}

// OpenBreak implements attendance.AttendanceRepository. The insert is
// guarded by a NOT EXISTS on an open interval for the same record.
func (a *attendanceRepository) OpenBreak(ctx context.Context, attendanceID string, start time.Time) (attendance.BreakInterval, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_breaks (attendance_id, break_start)
		SELECT $1, $2
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_breaks
			WHERE attendance_id = $1 AND break_end IS NULL
		)
		RETURNING id, created_at
	`

	br := attendance.BreakInterval{AttendanceID: attendanceID, BreakStart: start}
	err := q.QueryRow(ctx, query, attendanceID, start).Scan(&br.ID, &br.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.BreakInterval{}, attendance.ErrBreakAlreadyOpen
		}
		return attendance.BreakInterval{}, fmt.Errorf("failed to open break: %w", err)
	}

	return br, nil
}

// CloseOpenBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseOpenBreak(ctx context.Context, attendanceID string, end time.Time) (attendance.BreakInterval, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_breaks
		SET break_end = $1
		WHERE attendance_id = $2 AND break_end IS NULL
		RETURNING id, attendance_id, break_start, break_end, created_at
	`

	var br attendance.BreakInterval
	err := q.QueryRow(ctx, query, end, attendanceID).Scan(
		&br.ID, &br.AttendanceID, &br.BreakStart, &br.BreakEnd, &br.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.BreakInterval{}, attendance.ErrNoOpenBreak
		}
		return attendance.BreakInterval{}, fmt.Errorf("failed to close break: %w", err)
	}

	return br, nil
}

// GetBreaks implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetBreaks(ctx context.Context, attendanceID string) ([]attendance.BreakInterval, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, attendance_id, break_start, break_end, created_at
		FROM attendance_breaks
		WHERE attendance_id = $1
		ORDER BY break_start ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.BreakInterval
	for rows.Next() {
		var br attendance.BreakInterval
		if err := rows.Scan(&br.ID, &br.AttendanceID, &br.BreakStart, &br.BreakEnd, &br.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, br)
	}

	return breaks, rows.Err()
}

// SetBreakMinutes implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetBreakMinutes(ctx context.Context, attendanceID string, minutes int) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET total_break_minutes = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := q.Exec(ctx, query, minutes, attendanceID); err != nil {
		return fmt.Errorf("failed to set break minutes: %w", err)
	}
	return nil
}

// SetOvertimeApproved implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetOvertimeApproved(ctx context.Context, id string, companyID string, hours float64) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET overtime_approved_hours = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, hours, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to approve overtime: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		WHERE ` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortBy := "a.date"
	switch filter.SortBy {
	case "punch_in":
		sortBy = "a.punch_in"
	case "status":
		sortBy = "a.status"
	case "late_minutes":
		sortBy = "a.late_minutes"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit

	listQuery := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s, a.id DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, sortBy, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut,
			&att.Status, &att.LateMinutes, &att.TotalBreakMinutes, &att.ProductiveHours,
			&att.OvertimeApprovedHours, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, rows.Err()
}

// GetStaleOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetStaleOpenSessions(ctx context.Context, punchedInBefore time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.punch_out IS NULL
		  AND a.punch_in < $1
		ORDER BY a.punch_in ASC
	`

	rows, err := q.Query(ctx, query, punchedInBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale open sessions: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut,
			&att.Status, &att.LateMinutes, &att.TotalBreakMinutes, &att.ProductiveHours,
			&att.OvertimeApprovedHours, &att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, rows.Err()
}
