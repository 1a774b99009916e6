package payment

import (
	"fmt"
)

// ValidationError marks client-fixable input problems. The message is safe
// to return verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type PlanNotFoundError struct {
	PlanID string
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("plan not found: %s", e.PlanID)
}

// PlanLookupError is a database failure while resolving the plan. It happens
// before any gateway call, so no money has moved yet.
type PlanLookupError struct {
	Err error
}

func (e *PlanLookupError) Error() string {
	return fmt.Sprintf("plan lookup failed: %v", e.Err)
}

func (e *PlanLookupError) Unwrap() error {
	return e.Err
}

type GatewayErrorKind string

const (
	GatewayRejected          GatewayErrorKind = "rejected"
	GatewayTimeout           GatewayErrorKind = "timeout"
	GatewayUnreachable       GatewayErrorKind = "unreachable"
	GatewayMalformedResponse GatewayErrorKind = "malformed_response"
)

// GatewayError carries the upstream detail for operator logs. Handlers must
// not echo Detail to end users.
type GatewayError struct {
	Kind   GatewayErrorKind
	Detail string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %s", e.Kind, e.Detail)
}

// PersistenceError wraps a failed write after the gateway has confirmed a
// charge. Callers must surface it for reconciliation, never absorb it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
