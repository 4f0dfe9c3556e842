package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

// NewPolicyRepository creates a new instance of PolicyRepository.
func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}

// GetByCompanyID implements policy.PolicyRepository.
func (p *policyRepository) GetByCompanyID(ctx context.Context, companyID string) (policy.CompanyPolicy, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT company_id, timezone, punch_in_time, punch_out_time,
			   late_buffer_minutes, absent_cutoff_minutes,
			   hours_per_day, hours_per_week, hours_per_month,
			   overtime_allowance_hours, total_allowed_leaves, total_working_days,
			   updated_at
		FROM company_policies
		WHERE company_id = $1
	`

	var pol policy.CompanyPolicy
	err := q.QueryRow(ctx, query, companyID).Scan(
		&pol.CompanyID, &pol.Timezone, &pol.PunchInTime, &pol.PunchOutTime,
		&pol.LateBufferMinutes, &pol.AbsentCutoffMinutes,
		&pol.HoursPerDay, &pol.HoursPerWeek, &pol.HoursPerMonth,
		&pol.OvertimeAllowanceHours, &pol.TotalAllowedLeaves, &pol.TotalWorkingDays,
		&pol.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.CompanyPolicy{}, policy.ErrPolicyNotFound
		}
		return policy.CompanyPolicy{}, fmt.Errorf("failed to get company policy: %w", err)
	}

	return pol, nil
}

// Upsert implements policy.PolicyRepository.
func (p *policyRepository) Upsert(ctx context.Context, pol policy.CompanyPolicy) (policy.CompanyPolicy, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO company_policies (
			company_id, timezone, punch_in_time, punch_out_time,
			late_buffer_minutes, absent_cutoff_minutes,
			hours_per_day, hours_per_week, hours_per_month,
			overtime_allowance_hours, total_allowed_leaves, total_working_days
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (company_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			punch_in_time = EXCLUDED.punch_in_time,
			punch_out_time = EXCLUDED.punch_out_time,
			late_buffer_minutes = EXCLUDED.late_buffer_minutes,
			absent_cutoff_minutes = EXCLUDED.absent_cutoff_minutes,
			hours_per_day = EXCLUDED.hours_per_day,
			hours_per_week = EXCLUDED.hours_per_week,
			hours_per_month = EXCLUDED.hours_per_month,
			overtime_allowance_hours = EXCLUDED.overtime_allowance_hours,
			total_allowed_leaves = EXCLUDED.total_allowed_leaves,
			total_working_days = EXCLUDED.total_working_days,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		pol.CompanyID, pol.Timezone, pol.PunchInTime, pol.PunchOutTime,
		pol.LateBufferMinutes, pol.AbsentCutoffMinutes,
		pol.HoursPerDay, pol.HoursPerWeek, pol.HoursPerMonth,
		pol.OvertimeAllowanceHours, pol.TotalAllowedLeaves, pol.TotalWorkingDays,
	).Scan(&pol.UpdatedAt)
	if err != nil {
		return policy.CompanyPolicy{}, fmt.Errorf("failed to upsert company policy: %w", err)
	}

	return pol, nil
}
