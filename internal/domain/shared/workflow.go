package shared

import "errors"

// RequestStatus defines the lifecycle of an approval workflow request.
// Requests start PENDING and become terminal once resolved.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusDenied   RequestStatus = "DENIED"
)

// IsTerminal reports whether a request in this status may no longer transition.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusDenied
}

// Workflow validation failures. All are caller-correctable and raised before
// any persisted mutation.
var (
	ErrNoManagerAssigned   = errors.New("client has no assigned manager")
	ErrUnauthorizedManager = errors.New("request may only be resolved by its assigned manager")
	ErrAlreadyResolved     = errors.New("request has already been resolved")
	ErrNotEligible         = errors.New("client is not eligible for the requested card product")
)
