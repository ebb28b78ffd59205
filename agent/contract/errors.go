package contract

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrGatewayUnavailable = errors.New("tool gateway unavailable")
	ErrUnknownOperation   = errors.New("unknown gateway operation")
	ErrGatewayProtocol    = errors.New("malformed gateway response")
	ErrAgentExecution     = errors.New("agent execution failed")
	ErrPlanGeneration     = errors.New("plan generation failed")
)

// AgentError marks a specialist failure with the role that caused it, so the
// boundary can report which stage aborted the request.
type AgentError struct {
	Role AgentRole
	Err  error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("%v: role=%s: %v", ErrAgentExecution, e.Role, e.Err)
}

func (e *AgentError) Unwrap() error { return e.Err }

func (e *AgentError) Is(target error) bool { return target == ErrAgentExecution }

// PlanError wraps a planner failure together with the raw model output that
// could not be turned into a TripPlan.
type PlanError struct {
	Raw string
	Err error
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPlanGeneration, e.Err)
}

func (e *PlanError) Unwrap() error { return e.Err }

func (e *PlanError) Is(target error) bool { return target == ErrPlanGeneration }
