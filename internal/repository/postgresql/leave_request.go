package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/leave"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

// NewLeaveRequestRepository creates a new instance of LeaveRequestRepository.
func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveColumns = `
	l.id, l.company_id, l.employee_id, l.leave_type, l.requested_type,
	l.start_date, l.end_date, l.no_of_days, l.reason, l.status,
	l.approved_by, l.approved_at, l.rejection_reason, l.created_at, l.updated_at
`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.CompanyID, &lr.EmployeeID, &lr.LeaveType, &lr.RequestedType,
		&lr.StartDate, &lr.EndDate, &lr.NoOfDays, &lr.Reason, &lr.Status,
		&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository. The NOT EXISTS guard keeps
// one pending request per employee; a losing concurrent insert gets no row
// back.
func (l *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			company_id, employee_id, leave_type, requested_type,
			start_date, end_date, no_of_days, reason, status
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, 'pending'
		WHERE NOT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $2 AND company_id = $1 AND status = 'pending'
		)
		RETURNING id, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.CompanyID,
		req.EmployeeID,
		req.LeaveType,
		req.RequestedType,
		req.StartDate,
		req.EndDate,
		req.NoOfDays,
		req.Reason,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrPendingLeaveExists
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests l
		WHERE l.id = $1 AND l.company_id = $2
	`

	lr, err := scanLeave(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// SumApprovedDays implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) SumApprovedDays(ctx context.Context, employeeID, companyID string, year int, types []string) (int, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT COALESCE(SUM(no_of_days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND company_id = $2
		  AND status = 'approved'
		  AND leave_type = ANY($3)
		  AND (EXTRACT(YEAR FROM start_date) = $4 OR EXTRACT(YEAR FROM end_date) = $4)
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, companyID, types, year).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum approved days: %w", err)
	}

	return total, nil
}

// GetYearStats implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetYearStats(ctx context.Context, employeeID, companyID string, year int) (leave.YearStats, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT
			COALESCE(SUM(no_of_days) FILTER (WHERE status = 'approved'), 0),
			COALESCE(SUM(no_of_days) FILTER (WHERE status = 'approved' AND leave_type = 'sick'), 0),
			COALESCE(SUM(no_of_days) FILTER (WHERE status = 'approved' AND leave_type = 'loss_of_pay'), 0),
			COALESCE(SUM(no_of_days) FILTER (WHERE status = 'pending'), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND company_id = $2
		  AND (EXTRACT(YEAR FROM start_date) = $3 OR EXTRACT(YEAR FROM end_date) = $3)
	`

	var stats leave.YearStats
	err := q.QueryRow(ctx, query, employeeID, companyID, year).Scan(
		&stats.TotalTaken, &stats.SickTaken, &stats.LossOfPayTaken, &stats.PendingDays,
	)
	if err != nil {
		return leave.YearStats{}, fmt.Errorf("failed to get year stats: %w", err)
	}

	return stats, nil
}

// SetStatus implements leave.LeaveRequestRepository. The status = 'pending'
// guard makes approve/reject idempotence race safe.
func (l *leaveRequestRepository) SetStatus(ctx context.Context, id, companyID, status, approvedBy string, rejectionReason *string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests l
		SET status = $1,
			approved_by = $2,
			approved_at = NOW(),
			rejection_reason = $3,
			updated_at = NOW()
		WHERE l.id = $4 AND l.company_id = $5 AND l.status = 'pending'
		RETURNING ` + leaveColumns

	lr, err := scanLeave(q.QueryRow(ctx, query, status, approvedBy, rejectionReason, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish missing from already processed.
			if _, getErr := l.GetByID(ctx, id, companyID); getErr != nil {
				return leave.LeaveRequest{}, getErr
			}
			return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to set leave status: %w", err)
	}

	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveFilter, companyID string) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "l.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM l.start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM leave_requests l
		WHERE ` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit

	listQuery := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $%d OFFSET $%d
	`, leaveColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.CompanyID, &lr.EmployeeID, &lr.LeaveType, &lr.RequestedType,
			&lr.StartDate, &lr.EndDate, &lr.NoOfDays, &lr.Reason, &lr.Status,
			&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	return requests, total, rows.Err()
}
