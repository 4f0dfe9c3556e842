package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/workpulse-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/leave"
	"github.com/workpulse-hq/hrms-backend-go/internal/domain/policy"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/sse"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	policy.PolicyRepository
	hub *sse.Hub
	now func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	policyRepo policy.PolicyRepository,
	hub *sse.Hub,
	now func() time.Time,
) leave.LeaveService {
	if now == nil {
		now = time.Now
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		EmployeeRepository:     employeeRepo,
		PolicyRepository:       policyRepo,
		hub:                    hub,
		now:                    now,
	}
}

func (l *LeaveServiceImpl) allowedLeaves(ctx context.Context, companyID string) (int, error) {
	pol, err := l.PolicyRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if err == policy.ErrPolicyNotFound {
			return policy.Default(companyID).TotalAllowedLeaves, nil
		}
		return 0, fmt.Errorf("failed to load company policy: %w", err)
	}
	return pol.TotalAllowedLeaves, nil
}

func toResponse(lr leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		LeaveType:       lr.LeaveType,
		RequestedType:   lr.RequestedType,
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		NoOfDays:        lr.NoOfDays,
		Reason:          lr.Reason,
		Status:          lr.Status,
		RejectionReason: lr.RejectionReason,
		CreatedAt:       lr.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lr.EmployeeName != nil {
		resp.EmployeeName = *lr.EmployeeName
	}
	return resp
}

// CreateRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateRequest(ctx context.Context, companyID, employeeID string, req leave.CreateLeaveRequest) (leave.CreateLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.CreateLeaveResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	if end.Before(start) {
		return leave.CreateLeaveResponse{}, leave.ErrInvalidDateRange
	}

	if _, err := l.EmployeeRepository.GetByID(ctx, employeeID, companyID); err != nil {
		return leave.CreateLeaveResponse{}, err
	}

	allowed, err := l.allowedLeaves(ctx, companyID)
	if err != nil {
		return leave.CreateLeaveResponse{}, err
	}

	alreadyTaken, err := l.LeaveRequestRepository.SumApprovedDays(
		ctx, employeeID, companyID, start.Year(),
		[]string{leave.TypeCasual, leave.TypeSick},
	)
	if err != nil {
		return leave.CreateLeaveResponse{}, err
	}

	remaining := allowed - alreadyTaken
	if remaining < 0 {
		remaining = 0
	}

	effectiveType := req.LeaveType
	reclassified := false
	if req.LeaveType != leave.TypeLossOfPay && req.NoOfDays > remaining {
		effectiveType = leave.TypeLossOfPay
		reclassified = true
	}

	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		CompanyID:     companyID,
		EmployeeID:    employeeID,
		LeaveType:     effectiveType,
		RequestedType: req.LeaveType,
		StartDate:     start,
		EndDate:       end,
		NoOfDays:      req.NoOfDays,
		Reason:        req.Reason,
	})
	if err != nil {
		return leave.CreateLeaveResponse{}, err
	}

	remainingAfter := remaining - req.NoOfDays
	if remainingAfter < 0 {
		remainingAfter = 0
	}

	resp := leave.CreateLeaveResponse{
		Request:       toResponse(created),
		Reclassified:  reclassified,
		RemainingDays: remainingAfter,
	}

	l.hub.Publish(companyID, "leave.requested", resp.Request)

	return resp, nil
}

// GetStats implements leave.LeaveService.
func (l *LeaveServiceImpl) GetStats(ctx context.Context, companyID, employeeID string, year int) (leave.LeaveStatsResponse, error) {
	if year == 0 {
		year = l.now().UTC().Year()
	}

	if _, err := l.EmployeeRepository.GetByID(ctx, employeeID, companyID); err != nil {
		return leave.LeaveStatsResponse{}, err
	}

	allowed, err := l.allowedLeaves(ctx, companyID)
	if err != nil {
		return leave.LeaveStatsResponse{}, err
	}

	stats, err := l.LeaveRequestRepository.GetYearStats(ctx, employeeID, companyID, year)
	if err != nil {
		return leave.LeaveStatsResponse{}, err
	}

	return leave.LeaveStatsResponse{
		Year:           year,
		TotalAllowed:   allowed,
		TotalTaken:     stats.TotalTaken,
		SickTaken:      stats.SickTaken,
		LossOfPayTaken: stats.LossOfPayTaken,
		PendingDays:    stats.PendingDays,
	}, nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, companyID, requestID, approverID string) (leave.LeaveRequestResponse, error) {
	updated, err := l.LeaveRequestRepository.SetStatus(ctx, requestID, companyID, leave.StatusApproved, approverID, nil)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	resp := toResponse(updated)
	l.hub.Publish(companyID, "leave.approved", resp)

	return resp, nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, companyID, requestID, approverID string, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	updated, err := l.LeaveRequestRepository.SetStatus(ctx, requestID, companyID, leave.StatusRejected, approverID, &req.Reason)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	resp := toResponse(updated)
	l.hub.Publish(companyID, "leave.rejected", resp)

	return resp, nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, companyID string, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter, companyID)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	resp := leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}
	for _, lr := range requests {
		resp.Requests = append(resp.Requests, toResponse(lr))
	}

	return resp, nil
}
