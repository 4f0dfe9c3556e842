package policy

import "errors"

var (
	ErrPolicyNotFound = errors.New("company policy not found")
)
