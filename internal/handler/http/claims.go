package http

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
)

var errMissingClaim = errors.New("required claim missing from token")

// identity is the per-request caller extracted from verified token claims.
// Services receive these explicitly; nothing below the handler layer touches
// the token.
type identity struct {
	UserID     string
	CompanyID  string
	EmployeeID string
	Role       string
}

func callerFromContext(ctx context.Context) (identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return identity{}, err
	}

	id := identity{}
	if v, ok := claims["user_id"].(string); ok {
		id.UserID = v
	}
	if v, ok := claims["company_id"].(string); ok {
		id.CompanyID = v
	}
	if v, ok := claims["employee_id"].(string); ok {
		id.EmployeeID = v
	}
	if v, ok := claims["role"].(string); ok {
		id.Role = v
	}

	if id.UserID == "" || id.CompanyID == "" {
		return identity{}, errMissingClaim
	}
	return id, nil
}
