package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrApproverNotFound = errors.New("no approver with the required role in this department")
)
